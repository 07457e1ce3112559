package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"participation-service/internal/domain"
	"participation-service/internal/repository"
	"participation-service/internal/response"
)

// AuthGateway resolves the caller identified by the auth middleware to a known user
type AuthGateway interface {
	ResolveCurrentUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

type authGatewayImpl struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewAuthGateway creates a new instance of AuthGateway
func NewAuthGateway(userRepo repository.UserRepository, logger *zap.Logger) AuthGateway {
	return &authGatewayImpl{userRepo: userRepo, logger: logger}
}

// ResolveCurrentUser returns the user or an UNAUTHORIZED error when the id is unknown
func (g *authGatewayImpl) ResolveCurrentUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if userID == uuid.Nil {
		return nil, errUnauthenticated()
	}

	user, err := g.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUnauthenticated()
		}
		g.logger.Error("Failed to resolve current user", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve user", "")
	}
	return user, nil
}

func errUnauthenticated() error {
	return response.NewAppError(response.ErrCodeUnauthorized, "Authentication required", "")
}

// storeFailure logs a data store error and returns the generic error surfaced to callers
func storeFailure(logger *zap.Logger, message string, err error, fields ...zap.Field) error {
	logger.Error(message, append(fields, zap.Error(err))...)
	return response.NewAppError(response.ErrCodeInternal, message, "")
}
