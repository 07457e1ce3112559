package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"participation-service/internal/domain"
)

// CourseRepository defines data access for courses
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	FindAll(ctx context.Context) ([]*domain.Course, error)
	FindByName(ctx context.Context, name string) (*domain.Course, error)
	FindAllWithPastSessions(ctx context.Context, userID uuid.UUID, before time.Time) ([]*domain.Course, error)
	NextSessionStart(ctx context.Context, from time.Time) (*time.Time, error)
}

// courseRepositoryImpl is the GORM implementation of CourseRepository
type courseRepositoryImpl struct {
	db *gorm.DB
}

// NewCourseRepository creates a new instance of CourseRepository
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepositoryImpl{db: db}
}

// Create creates a new course
func (r *courseRepositoryImpl) Create(ctx context.Context, course *domain.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

// FindAll returns every course ordered by name
func (r *courseRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Course, error) {
	var courses []*domain.Course
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// FindByName finds a course by its unique name
func (r *courseRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.Course, error) {
	var course domain.Course
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// FindAllWithPastSessions returns every course with its sessions that started before the
// given instant, newest first, each joined with the user's participation.
func (r *courseRepositoryImpl) FindAllWithPastSessions(ctx context.Context, userID uuid.UUID, before time.Time) ([]*domain.Course, error) {
	var courses []*domain.Course
	if err := r.db.WithContext(ctx).
		Preload("Sessions", func(db *gorm.DB) *gorm.DB {
			return db.Where("start_at < ?", before.UTC()).
				Order("start_at DESC").
				Order("id DESC")
		}).
		Preload("Sessions.Participations", "user_id = ?", userID).
		Order("name ASC").
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// NextSessionStart returns the earliest session start at or after from, or nil when
// nothing is scheduled. Views derived from past sessions change at that instant.
func (r *courseRepositoryImpl) NextSessionStart(ctx context.Context, from time.Time) (*time.Time, error) {
	var sessions []domain.CourseSession
	if err := r.db.WithContext(ctx).
		Where("start_at >= ?", from.UTC()).
		Order("start_at ASC").
		Limit(1).
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	next := sessions[0].StartAt.UTC()
	return &next, nil
}
