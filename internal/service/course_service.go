package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"participation-service/internal/domain"
	"participation-service/internal/dto"
	"participation-service/internal/repository"
)

// CourseService lists and seeds the course reference data
type CourseService interface {
	ListCourses(ctx context.Context) ([]dto.CourseResponse, error)
	SeedCourses(ctx context.Context, names []string) (int, error)
}

type courseServiceImpl struct {
	courseRepo repository.CourseRepository
	logger     *zap.Logger
}

// NewCourseService creates a new instance of CourseService
func NewCourseService(courseRepo repository.CourseRepository, logger *zap.Logger) CourseService {
	return &courseServiceImpl{courseRepo: courseRepo, logger: logger}
}

// ListCourses returns every course by name with its display theme
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.courseRepo.FindAll(ctx)
	if err != nil {
		return nil, storeFailure(s.logger, "Failed to load courses", err)
	}

	resp := make([]dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		resp = append(resp, dto.NewCourseResponse(c))
	}
	return resp, nil
}

// SeedCourses creates the named courses that do not exist yet and returns how many were created
func (s *courseServiceImpl) SeedCourses(ctx context.Context, names []string) (int, error) {
	created := 0
	for _, name := range names {
		_, err := s.courseRepo.FindByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, storeFailure(s.logger, "Failed to look up course", err, zap.String("course", name))
		}

		if err := s.courseRepo.Create(ctx, &domain.Course{Name: name}); err != nil {
			return created, storeFailure(s.logger, "Failed to create course", err, zap.String("course", name))
		}
		created++
		s.logger.Info("Course created", zap.String("course", name))
	}
	return created, nil
}
