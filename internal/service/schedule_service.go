package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"participation-service/internal/domain"
	"participation-service/internal/dto"
	"participation-service/internal/repository"
	"participation-service/internal/response"
)

const (
	defaultHistoryPageSize    = 20
	defaultHistoryMaxPageSize = 100
)

// ScheduleConfig holds the calendar settings of the session views
type ScheduleConfig struct {
	// Location defines local days and weeks and labels history groups
	Location           *time.Location
	HistoryPageSize    int
	HistoryMaxPageSize int
}

// ScheduleService derives the caller's session views: today, a week, and the paged history
type ScheduleService interface {
	GetTodaysAgenda(ctx context.Context, userID uuid.UUID) ([]dto.SessionView, error)
	GetWeek(ctx context.Context, userID uuid.UUID, offset int) (*dto.WeekResponse, error)
	GetHistoryPage(ctx context.Context, userID uuid.UUID, cursor string, limit int) (*dto.HistoryPageResponse, error)
}

// scheduleServiceImpl is the implementation of ScheduleService
type scheduleServiceImpl struct {
	sessionRepo repository.SessionRepository
	auth        AuthGateway
	cfg         ScheduleConfig
	now         Clock
	logger      *zap.Logger
}

// NewScheduleService creates a new instance of ScheduleService
func NewScheduleService(sessionRepo repository.SessionRepository, auth AuthGateway, cfg ScheduleConfig, clock Clock, logger *zap.Logger) ScheduleService {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.HistoryPageSize <= 0 {
		cfg.HistoryPageSize = defaultHistoryPageSize
	}
	if cfg.HistoryMaxPageSize <= 0 {
		cfg.HistoryMaxPageSize = defaultHistoryMaxPageSize
	}
	if cfg.HistoryPageSize > cfg.HistoryMaxPageSize {
		cfg.HistoryPageSize = cfg.HistoryMaxPageSize
	}
	return &scheduleServiceImpl{
		sessionRepo: sessionRepo,
		auth:        auth,
		cfg:         cfg,
		now:         clock,
		logger:      logger,
	}
}

// GetTodaysAgenda returns the sessions starting today, earliest first, each tagged with its status
func (s *scheduleServiceImpl) GetTodaysAgenda(ctx context.Context, userID uuid.UUID) ([]dto.SessionView, error) {
	user, err := s.auth.ResolveCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	from, to := DayBounds(now, s.cfg.Location)

	sessions, err := s.sessionRepo.FindInRange(ctx, user.ID, from, to, false)
	if err != nil {
		return nil, storeFailure(s.logger, "Failed to load today's sessions", err, zap.String("user_id", user.ID.String()))
	}
	return s.views(sessions, now), nil
}

// GetWeek returns the sessions of the week offset weeks from the current one
func (s *scheduleServiceImpl) GetWeek(ctx context.Context, userID uuid.UUID, offset int) (*dto.WeekResponse, error) {
	user, err := s.auth.ResolveCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	start, end := WeekBounds(now, offset, s.cfg.Location)

	sessions, err := s.sessionRepo.FindInRange(ctx, user.ID, start, end, true)
	if err != nil {
		return nil, storeFailure(s.logger, "Failed to load week sessions", err,
			zap.String("user_id", user.ID.String()),
			zap.Int("offset", offset),
		)
	}

	return &dto.WeekResponse{
		WeekStart: start,
		WeekEnd:   end,
		Sessions:  s.views(sessions, now),
	}, nil
}

// GetHistoryPage returns up to limit sessions before the cursor (or now), newest first,
// grouped by local date
func (s *scheduleServiceImpl) GetHistoryPage(ctx context.Context, userID uuid.UUID, cursor string, limit int) (*dto.HistoryPageResponse, error) {
	user, err := s.auth.ResolveCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	position, err := repository.DecodeCursor(cursor)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid cursor", err.Error())
	}

	now := s.now()
	if position == nil {
		position = &domain.SessionCursor{StartAt: now}
	}
	limit = s.pageSize(limit)

	sessions, err := s.sessionRepo.FindBefore(ctx, user.ID, *position, limit+1)
	if err != nil {
		return nil, storeFailure(s.logger, "Failed to load session history", err, zap.String("user_id", user.ID.String()))
	}

	page := &dto.HistoryPageResponse{}
	if len(sessions) > limit {
		page.HasMore = true
		sessions = sessions[:limit]

		last := sessions[len(sessions)-1]
		next := repository.EncodeCursor(&domain.SessionCursor{StartAt: last.StartAt, ID: last.ID})
		page.NextCursor = &next
	}
	page.Groups = GroupByDate(s.views(sessions, now), s.cfg.Location)

	return page, nil
}

// pageSize applies the default and cap to a requested page size
func (s *scheduleServiceImpl) pageSize(limit int) int {
	switch {
	case limit <= 0:
		return s.cfg.HistoryPageSize
	case limit > s.cfg.HistoryMaxPageSize:
		return s.cfg.HistoryMaxPageSize
	default:
		return limit
	}
}

func (s *scheduleServiceImpl) views(sessions []*domain.CourseSession, now time.Time) []dto.SessionView {
	views := make([]dto.SessionView, 0, len(sessions))
	for _, session := range sessions {
		status := SessionStatusAt(now, session.StartAt, session.UserParticipation() != nil)
		views = append(views, *dto.NewSessionView(session, status))
	}
	return views
}
