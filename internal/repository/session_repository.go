package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"participation-service/internal/domain"
)

// SessionRepository defines data access for course sessions. Every read that returns
// sessions preloads the course and only the given user's participation.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.CourseSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.CourseSession, error)
	FindInRange(ctx context.Context, userID uuid.UUID, from, to time.Time, inclusiveEnd bool) ([]*domain.CourseSession, error)
	FindBefore(ctx context.Context, userID uuid.UUID, cursor domain.SessionCursor, limit int) ([]*domain.CourseSession, error)
}

// sessionRepositoryImpl is the GORM implementation of SessionRepository
type sessionRepositoryImpl struct {
	db *gorm.DB
}

// NewSessionRepository creates a new instance of SessionRepository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepositoryImpl{db: db}
}

func (r *sessionRepositoryImpl) withUserView(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Course").
		Preload("Participations", "user_id = ?", userID)
}

// Create creates a new course session
func (r *sessionRepositoryImpl) Create(ctx context.Context, session *domain.CourseSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// FindByID finds a session by ID together with its course
func (r *sessionRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.CourseSession, error) {
	var session domain.CourseSession
	if err := r.db.WithContext(ctx).
		Preload("Course").
		Where("id = ?", id).
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// FindInRange returns sessions with from <= start_at < to (or <= to when inclusiveEnd), ascending
func (r *sessionRepositoryImpl) FindInRange(ctx context.Context, userID uuid.UUID, from, to time.Time, inclusiveEnd bool) ([]*domain.CourseSession, error) {
	upper := "start_at < ?"
	if inclusiveEnd {
		upper = "start_at <= ?"
	}

	var sessions []*domain.CourseSession
	if err := r.withUserView(ctx, userID).
		Where("start_at >= ?", from.UTC()).
		Where(upper, to.UTC()).
		Order("start_at ASC").
		Order("id ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// FindBefore returns up to limit sessions strictly before the cursor, newest first.
// Sessions sharing the cursor's start time are ordered by ID so pages never overlap.
func (r *sessionRepositoryImpl) FindBefore(ctx context.Context, userID uuid.UUID, cursor domain.SessionCursor, limit int) ([]*domain.CourseSession, error) {
	before := cursor.StartAt.UTC()

	q := r.withUserView(ctx, userID)
	if cursor.ID == uuid.Nil {
		q = q.Where("start_at < ?", before)
	} else {
		q = q.Where("(start_at < ? OR (start_at = ? AND id < ?))", before, before, cursor.ID)
	}

	var sessions []*domain.CourseSession
	if err := q.
		Order("start_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}
