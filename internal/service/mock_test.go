package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"participation-service/internal/domain"
)

// MockParticipationRepository is a mock implementation of ParticipationRepository
type MockParticipationRepository struct {
	UpsertFunc               func(ctx context.Context, participation *domain.Participation) (*domain.Participation, error)
	FindByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.Participation, error)
	FindByUserAndSessionFunc func(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Participation, error)
	UpdateFunc               func(ctx context.Context, participation *domain.Participation) error
	DeleteFunc               func(ctx context.Context, id uuid.UUID) error
	AverageQualityFunc       func(ctx context.Context, userID uuid.UUID) (*float64, error)
}

func (m *MockParticipationRepository) Upsert(ctx context.Context, participation *domain.Participation) (*domain.Participation, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, participation)
	}
	return participation, nil
}

func (m *MockParticipationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Participation, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockParticipationRepository) FindByUserAndSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Participation, error) {
	if m.FindByUserAndSessionFunc != nil {
		return m.FindByUserAndSessionFunc(ctx, userID, sessionID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockParticipationRepository) Update(ctx context.Context, participation *domain.Participation) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, participation)
	}
	return nil
}

func (m *MockParticipationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockParticipationRepository) AverageQuality(ctx context.Context, userID uuid.UUID) (*float64, error) {
	if m.AverageQualityFunc != nil {
		return m.AverageQualityFunc(ctx, userID)
	}
	return nil, nil
}

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	CreateFunc      func(ctx context.Context, session *domain.CourseSession) error
	FindByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.CourseSession, error)
	FindInRangeFunc func(ctx context.Context, userID uuid.UUID, from, to time.Time, inclusiveEnd bool) ([]*domain.CourseSession, error)
	FindBeforeFunc  func(ctx context.Context, userID uuid.UUID, cursor domain.SessionCursor, limit int) ([]*domain.CourseSession, error)
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.CourseSession) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.CourseSession, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &domain.CourseSession{BaseModel: domain.BaseModel{ID: id}}, nil
}

func (m *MockSessionRepository) FindInRange(ctx context.Context, userID uuid.UUID, from, to time.Time, inclusiveEnd bool) ([]*domain.CourseSession, error) {
	if m.FindInRangeFunc != nil {
		return m.FindInRangeFunc(ctx, userID, from, to, inclusiveEnd)
	}
	return nil, nil
}

func (m *MockSessionRepository) FindBefore(ctx context.Context, userID uuid.UUID, cursor domain.SessionCursor, limit int) ([]*domain.CourseSession, error) {
	if m.FindBeforeFunc != nil {
		return m.FindBeforeFunc(ctx, userID, cursor, limit)
	}
	return nil, nil
}

// MockCourseRepository is a mock implementation of CourseRepository
type MockCourseRepository struct {
	CreateFunc                  func(ctx context.Context, course *domain.Course) error
	FindAllFunc                 func(ctx context.Context) ([]*domain.Course, error)
	FindByNameFunc              func(ctx context.Context, name string) (*domain.Course, error)
	FindAllWithPastSessionsFunc func(ctx context.Context, userID uuid.UUID, before time.Time) ([]*domain.Course, error)
	NextSessionStartFunc        func(ctx context.Context, from time.Time) (*time.Time, error)
}

func (m *MockCourseRepository) Create(ctx context.Context, course *domain.Course) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, course)
	}
	return nil
}

func (m *MockCourseRepository) FindAll(ctx context.Context) ([]*domain.Course, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockCourseRepository) FindByName(ctx context.Context, name string) (*domain.Course, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockCourseRepository) FindAllWithPastSessions(ctx context.Context, userID uuid.UUID, before time.Time) ([]*domain.Course, error) {
	if m.FindAllWithPastSessionsFunc != nil {
		return m.FindAllWithPastSessionsFunc(ctx, userID, before)
	}
	return nil, nil
}

func (m *MockCourseRepository) NextSessionStart(ctx context.Context, from time.Time) (*time.Time, error) {
	if m.NextSessionStartFunc != nil {
		return m.NextSessionStartFunc(ctx, from)
	}
	return nil, nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *domain.User) error
	FindByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &domain.User{BaseModel: domain.BaseModel{ID: id}}, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

// MockAuthGateway resolves every non-nil id to a user with that id
type MockAuthGateway struct {
	ResolveCurrentUserFunc func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

func (m *MockAuthGateway) ResolveCurrentUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.ResolveCurrentUserFunc != nil {
		return m.ResolveCurrentUserFunc(ctx, userID)
	}
	if userID == uuid.Nil {
		return nil, errUnauthenticated()
	}
	return &domain.User{BaseModel: domain.BaseModel{ID: userID}}, nil
}

// memoryViewCache is a ViewCache kept in a map, storing JSON like the redis cache does
type memoryViewCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	invalidated []uuid.UUID
}

func newMemoryViewCache() *memoryViewCache {
	return &memoryViewCache{entries: make(map[string][]byte)}
}

func (c *memoryViewCache) Get(_ context.Context, view string, userID uuid.UUID, dest interface{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[viewCacheKey(view, userID)]
	if !ok {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (c *memoryViewCache) Set(_ context.Context, view string, userID uuid.UUID, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := json.Marshal(value)
	if err == nil {
		c.entries[viewCacheKey(view, userID)] = data
	}
}

func (c *memoryViewCache) Invalidate(_ context.Context, userID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, view := range cachedViews {
		delete(c.entries, viewCacheKey(view, userID))
	}
	c.invalidated = append(c.invalidated, userID)
}

func (c *memoryViewCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// fixedClock returns a Clock pinned to t
func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// steppedClock is a Clock tests can move forward
type steppedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *steppedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *steppedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }
