package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"participation-service/internal/dto"
	"participation-service/internal/middleware"
)

// MockParticipationService is a mock implementation of ParticipationService
type MockParticipationService struct {
	RecordParticipationFunc     func(ctx context.Context, userID uuid.UUID, req *dto.RecordParticipationRequest) (*dto.ParticipationResponse, error)
	UpdateParticipationFunc     func(ctx context.Context, userID, participationID uuid.UUID, req *dto.UpdateParticipationRequest) (*dto.ParticipationResponse, error)
	DeleteParticipationFunc     func(ctx context.Context, userID, participationID uuid.UUID) error
	GetSessionParticipationFunc func(ctx context.Context, userID, sessionID uuid.UUID) (*dto.ParticipationResponse, error)
}

func (m *MockParticipationService) RecordParticipation(ctx context.Context, userID uuid.UUID, req *dto.RecordParticipationRequest) (*dto.ParticipationResponse, error) {
	if m.RecordParticipationFunc != nil {
		return m.RecordParticipationFunc(ctx, userID, req)
	}
	return &dto.ParticipationResponse{}, nil
}

func (m *MockParticipationService) UpdateParticipation(ctx context.Context, userID, participationID uuid.UUID, req *dto.UpdateParticipationRequest) (*dto.ParticipationResponse, error) {
	if m.UpdateParticipationFunc != nil {
		return m.UpdateParticipationFunc(ctx, userID, participationID, req)
	}
	return &dto.ParticipationResponse{}, nil
}

func (m *MockParticipationService) DeleteParticipation(ctx context.Context, userID, participationID uuid.UUID) error {
	if m.DeleteParticipationFunc != nil {
		return m.DeleteParticipationFunc(ctx, userID, participationID)
	}
	return nil
}

func (m *MockParticipationService) GetSessionParticipation(ctx context.Context, userID, sessionID uuid.UUID) (*dto.ParticipationResponse, error) {
	if m.GetSessionParticipationFunc != nil {
		return m.GetSessionParticipationFunc(ctx, userID, sessionID)
	}
	return &dto.ParticipationResponse{}, nil
}

// MockScheduleService is a mock implementation of ScheduleService
type MockScheduleService struct {
	GetTodaysAgendaFunc func(ctx context.Context, userID uuid.UUID) ([]dto.SessionView, error)
	GetWeekFunc         func(ctx context.Context, userID uuid.UUID, offset int) (*dto.WeekResponse, error)
	GetHistoryPageFunc  func(ctx context.Context, userID uuid.UUID, cursor string, limit int) (*dto.HistoryPageResponse, error)
}

func (m *MockScheduleService) GetTodaysAgenda(ctx context.Context, userID uuid.UUID) ([]dto.SessionView, error) {
	if m.GetTodaysAgendaFunc != nil {
		return m.GetTodaysAgendaFunc(ctx, userID)
	}
	return []dto.SessionView{}, nil
}

func (m *MockScheduleService) GetWeek(ctx context.Context, userID uuid.UUID, offset int) (*dto.WeekResponse, error) {
	if m.GetWeekFunc != nil {
		return m.GetWeekFunc(ctx, userID, offset)
	}
	return &dto.WeekResponse{Sessions: []dto.SessionView{}}, nil
}

func (m *MockScheduleService) GetHistoryPage(ctx context.Context, userID uuid.UUID, cursor string, limit int) (*dto.HistoryPageResponse, error) {
	if m.GetHistoryPageFunc != nil {
		return m.GetHistoryPageFunc(ctx, userID, cursor, limit)
	}
	return &dto.HistoryPageResponse{Groups: []dto.HistoryGroup{}}, nil
}

// MockStatsService is a mock implementation of StatsService
type MockStatsService struct {
	GetCourseTrackingFunc func(ctx context.Context, userID uuid.UUID) ([]dto.CourseTrackingEntry, error)
	GetUserStatisticsFunc func(ctx context.Context, userID uuid.UUID) (*dto.UserStatistics, error)
}

func (m *MockStatsService) GetCourseTracking(ctx context.Context, userID uuid.UUID) ([]dto.CourseTrackingEntry, error) {
	if m.GetCourseTrackingFunc != nil {
		return m.GetCourseTrackingFunc(ctx, userID)
	}
	return []dto.CourseTrackingEntry{}, nil
}

func (m *MockStatsService) GetUserStatistics(ctx context.Context, userID uuid.UUID) (*dto.UserStatistics, error) {
	if m.GetUserStatisticsFunc != nil {
		return m.GetUserStatisticsFunc(ctx, userID)
	}
	return &dto.UserStatistics{}, nil
}

// MockCourseService is a mock implementation of CourseService
type MockCourseService struct {
	ListCoursesFunc func(ctx context.Context) ([]dto.CourseResponse, error)
}

func (m *MockCourseService) ListCourses(ctx context.Context) ([]dto.CourseResponse, error) {
	if m.ListCoursesFunc != nil {
		return m.ListCoursesFunc(ctx)
	}
	return []dto.CourseResponse{}, nil
}

func (m *MockCourseService) SeedCourses(ctx context.Context, names []string) (int, error) {
	return len(names), nil
}

// withUser stands in for the auth middleware
func withUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, userID)
		c.Set(middleware.ContextKeyToken, "test-token")
		c.Next()
	}
}

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }
