package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"participation-service/internal/domain"
	"participation-service/internal/dto"
	"participation-service/internal/metrics"
	"participation-service/internal/repository"
	"participation-service/internal/response"
)

// participationNotFound is shared by NOT_FOUND and FORBIDDEN so callers cannot tell
// another user's record from a missing one
const participationNotFound = "Participation not found"

// ParticipationService defines the write operations on the caller's participation records
type ParticipationService interface {
	RecordParticipation(ctx context.Context, userID uuid.UUID, req *dto.RecordParticipationRequest) (*dto.ParticipationResponse, error)
	UpdateParticipation(ctx context.Context, userID, participationID uuid.UUID, req *dto.UpdateParticipationRequest) (*dto.ParticipationResponse, error)
	DeleteParticipation(ctx context.Context, userID, participationID uuid.UUID) error
	GetSessionParticipation(ctx context.Context, userID, sessionID uuid.UUID) (*dto.ParticipationResponse, error)
}

// participationServiceImpl is the implementation of ParticipationService
type participationServiceImpl struct {
	participationRepo repository.ParticipationRepository
	sessionRepo       repository.SessionRepository
	auth              AuthGateway
	cache             ViewCache
	metrics           *metrics.Metrics
	now               Clock
	logger            *zap.Logger
}

// NewParticipationService creates a new instance of ParticipationService
func NewParticipationService(
	participationRepo repository.ParticipationRepository,
	sessionRepo repository.SessionRepository,
	auth AuthGateway,
	cache ViewCache,
	m *metrics.Metrics,
	clock Clock,
	logger *zap.Logger,
) ParticipationService {
	if cache == nil {
		cache = NewNoopViewCache()
	}
	return &participationServiceImpl{
		participationRepo: participationRepo,
		sessionRepo:       sessionRepo,
		auth:              auth,
		cache:             cache,
		metrics:           m,
		now:               clock,
		logger:            logger,
	}
}

// RecordParticipation creates or overwrites the caller's record for a session
func (s *participationServiceImpl) RecordParticipation(ctx context.Context, userID uuid.UUID, req *dto.RecordParticipationRequest) (*dto.ParticipationResponse, error) {
	user, err := s.auth.ResolveCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	participated, quality, err := s.validateMark(req.Participated, req.Quality)
	if err != nil {
		return nil, err
	}

	if _, err := s.sessionRepo.FindByID(ctx, req.SessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Session not found", "")
		}
		return nil, storeFailure(s.logger, "Failed to verify session", err, zap.String("session_id", req.SessionID.String()))
	}

	stored, err := s.participationRepo.Upsert(ctx, &domain.Participation{
		UserID:          user.ID,
		CourseSessionID: req.SessionID,
		Participated:    participated,
		Quality:         quality,
		Note:            noteOrNil(req.Note),
	})
	if err != nil {
		return nil, storeFailure(s.logger, "Failed to record participation", err,
			zap.String("user_id", user.ID.String()),
			zap.String("session_id", req.SessionID.String()),
		)
	}

	s.cache.Invalidate(ctx, user.ID)
	s.metrics.RecordParticipation(participated)

	s.logger.Debug("Participation recorded",
		zap.String("participation_id", stored.ID.String()),
		zap.String("session_id", req.SessionID.String()),
		zap.Bool("participated", participated),
		zap.Int("quality", quality),
	)

	return dto.NewParticipationResponse(stored), nil
}

// UpdateParticipation rewrites a record owned by the caller
func (s *participationServiceImpl) UpdateParticipation(ctx context.Context, userID, participationID uuid.UUID, req *dto.UpdateParticipationRequest) (*dto.ParticipationResponse, error) {
	user, err := s.auth.ResolveCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.loadOwned(ctx, user.ID, participationID)
	if err != nil {
		return nil, err
	}

	participated, quality, err := s.validateMark(req.Participated, req.Quality)
	if err != nil {
		return nil, err
	}

	existing.Participated = participated
	existing.Quality = quality
	existing.Note = noteOrNil(req.Note)
	existing.UpdatedAt = s.now().UTC()

	if err := s.participationRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, participationNotFound, "")
		}
		return nil, storeFailure(s.logger, "Failed to update participation", err, zap.String("participation_id", participationID.String()))
	}

	updated, err := s.participationRepo.FindByID(ctx, participationID)
	if err != nil {
		return nil, storeFailure(s.logger, "Failed to load participation", err, zap.String("participation_id", participationID.String()))
	}

	s.cache.Invalidate(ctx, user.ID)
	s.metrics.IncrementParticipationUpdated()

	return dto.NewParticipationResponse(updated), nil
}

// DeleteParticipation removes a record owned by the caller
func (s *participationServiceImpl) DeleteParticipation(ctx context.Context, userID, participationID uuid.UUID) error {
	user, err := s.auth.ResolveCurrentUser(ctx, userID)
	if err != nil {
		return err
	}

	if _, err := s.loadOwned(ctx, user.ID, participationID); err != nil {
		return err
	}

	if err := s.participationRepo.Delete(ctx, participationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, participationNotFound, "")
		}
		return storeFailure(s.logger, "Failed to delete participation", err, zap.String("participation_id", participationID.String()))
	}

	s.cache.Invalidate(ctx, user.ID)
	s.metrics.IncrementParticipationDeleted()
	return nil
}

// GetSessionParticipation returns the caller's record for a session
func (s *participationServiceImpl) GetSessionParticipation(ctx context.Context, userID, sessionID uuid.UUID) (*dto.ParticipationResponse, error) {
	user, err := s.auth.ResolveCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	p, err := s.participationRepo.FindByUserAndSession(ctx, user.ID, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, participationNotFound, "")
		}
		return nil, storeFailure(s.logger, "Failed to load participation", err, zap.String("session_id", sessionID.String()))
	}
	return dto.NewParticipationResponse(p), nil
}

// noteOrNil stores an empty note as no note
func noteOrNil(note *string) *string {
	if note == nil || *note == "" {
		return nil
	}
	return note
}

// loadOwned fetches a record and checks it belongs to userID
func (s *participationServiceImpl) loadOwned(ctx context.Context, userID, participationID uuid.UUID) (*domain.Participation, error) {
	existing, err := s.participationRepo.FindByID(ctx, participationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, participationNotFound, "")
		}
		return nil, storeFailure(s.logger, "Failed to load participation", err, zap.String("participation_id", participationID.String()))
	}

	if existing.UserID != userID {
		s.logger.Warn("Participation access denied",
			zap.String("participation_id", participationID.String()),
			zap.String("user_id", userID.String()),
		)
		return nil, response.NewAppError(response.ErrCodeForbidden, participationNotFound, "")
	}
	return existing, nil
}

// validateMark checks the participated flag and quality before anything is written
func (s *participationServiceImpl) validateMark(participated *bool, quality *int) (bool, int, error) {
	if participated == nil || quality == nil {
		return false, 0, response.NewAppError(response.ErrCodeValidation, "participated and quality are required", "")
	}
	if !domain.ValidQuality(*quality) {
		s.metrics.IncrementInvalidQuality()
		return false, 0, response.NewAppError(response.ErrCodeInvalidQuality,
			fmt.Sprintf("Quality must be between %d and %d", domain.MinQuality, domain.MaxQuality), "")
	}
	return *participated, *quality, nil
}
