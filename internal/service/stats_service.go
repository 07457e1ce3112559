package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"participation-service/internal/domain"
	"participation-service/internal/dto"
	"participation-service/internal/metrics"
	"participation-service/internal/repository"
)

// StatsService derives the caller's per-course tracking and statistics
type StatsService interface {
	GetCourseTracking(ctx context.Context, userID uuid.UUID) ([]dto.CourseTrackingEntry, error)
	GetUserStatistics(ctx context.Context, userID uuid.UUID) (*dto.UserStatistics, error)
}

// statsServiceImpl is the implementation of StatsService
type statsServiceImpl struct {
	courseRepo        repository.CourseRepository
	participationRepo repository.ParticipationRepository
	auth              AuthGateway
	cache             ViewCache
	now               Clock
	logger            *zap.Logger
}

// NewStatsService creates a new instance of StatsService
func NewStatsService(
	courseRepo repository.CourseRepository,
	participationRepo repository.ParticipationRepository,
	auth AuthGateway,
	cache ViewCache,
	clock Clock,
	logger *zap.Logger,
) StatsService {
	if cache == nil {
		cache = NewNoopViewCache()
	}
	return &statsServiceImpl{
		courseRepo:        courseRepo,
		participationRepo: participationRepo,
		auth:              auth,
		cache:             cache,
		now:               clock,
		logger:            logger,
	}
}

// cachedView is a derived view stored with the start of the next session. Passing that
// instant moves a session into the past, so the entry is stale from then on.
type cachedView[T any] struct {
	Value      T          `json:"value"`
	ValidUntil *time.Time `json:"validUntil,omitempty"`
}

func (v *cachedView[T]) current(now time.Time) bool {
	return v.ValidUntil == nil || !now.After(*v.ValidUntil)
}

// storeView caches value until the next session starts. When that lookup fails the
// value is not cached.
func storeView[T any](ctx context.Context, s *statsServiceImpl, view string, userID uuid.UUID, now time.Time, value T) {
	next, err := s.courseRepo.NextSessionStart(ctx, now)
	if err != nil {
		s.logger.Warn("Skipping view cache, next session unknown",
			zap.String("view", view),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return
	}
	s.cache.Set(ctx, view, userID, cachedView[T]{Value: value, ValidUntil: next})
}

// GetCourseTracking returns every course's streak and status, most urgent first.
// Courses without past sessions are reported as good with a zero streak.
func (s *statsServiceImpl) GetCourseTracking(ctx context.Context, userID uuid.UUID) ([]dto.CourseTrackingEntry, error) {
	user, err := s.auth.ResolveCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var cached cachedView[[]dto.CourseTrackingEntry]
	if s.cache.Get(ctx, metrics.ViewTracking, user.ID, &cached) && cached.current(now) {
		return cached.Value, nil
	}

	courses, err := s.courseRepo.FindAllWithPastSessions(ctx, user.ID, now)
	if err != nil {
		return nil, storeFailure(s.logger, "Failed to load course tracking", err, zap.String("user_id", user.ID.String()))
	}

	entries := make([]dto.CourseTrackingEntry, 0, len(courses))
	for _, course := range courses {
		entries = append(entries, trackingEntry(course))
	}
	SortTracking(entries)

	storeView(ctx, s, metrics.ViewTracking, user.ID, now, entries)
	return entries, nil
}

// GetUserStatistics returns statistics for every course with at least one past session
// and the totals across them
func (s *statsServiceImpl) GetUserStatistics(ctx context.Context, userID uuid.UUID) (*dto.UserStatistics, error) {
	user, err := s.auth.ResolveCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var cached cachedView[dto.UserStatistics]
	if s.cache.Get(ctx, metrics.ViewStatistics, user.ID, &cached) && cached.current(now) {
		return &cached.Value, nil
	}

	var (
		courses        []*domain.Course
		averageQuality *float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		courses, err = s.courseRepo.FindAllWithPastSessions(gctx, user.ID, now)
		return err
	})
	g.Go(func() error {
		var err error
		averageQuality, err = s.participationRepo.AverageQuality(gctx, user.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, storeFailure(s.logger, "Failed to load statistics", err, zap.String("user_id", user.ID.String()))
	}

	stats := &dto.UserStatistics{
		CourseStatistics: make([]dto.CourseStatistics, 0, len(courses)),
	}
	for _, course := range courses {
		if len(course.Sessions) == 0 {
			continue
		}
		cs := courseStatistics(course)
		stats.CourseStatistics = append(stats.CourseStatistics, cs)

		stats.OverallStatistics.TotalSessionsPassed += cs.TotalSessionsPassed
		stats.OverallStatistics.ParticipatedSessions += cs.ParticipatedSessions
	}

	overall := &stats.OverallStatistics
	overall.TotalCourses = len(stats.CourseStatistics)
	overall.OverallParticipationPercentage = Percentage(overall.ParticipatedSessions, overall.TotalSessionsPassed)
	overall.AverageQuality = averageQuality

	storeView(ctx, s, metrics.ViewStatistics, user.ID, now, *stats)
	return stats, nil
}
