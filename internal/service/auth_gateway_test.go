package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"participation-service/internal/domain"
	"participation-service/internal/response"
)

func TestAuthGateway_ResolveCurrentUser(t *testing.T) {
	known := uuid.New()

	repo := &MockUserRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			switch id {
			case known:
				return &domain.User{BaseModel: domain.BaseModel{ID: known}, Name: "alice"}, nil
			case uuid.Nil:
				t.Fatal("nil id must not reach the store")
			}
			if id.String() == "00000000-0000-0000-0000-0000000000ff" {
				return nil, errors.New("connection refused")
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	gateway := NewAuthGateway(repo, zap.NewNop())

	tests := []struct {
		name     string
		userID   uuid.UUID
		wantCode string
	}{
		{"known user", known, ""},
		{"no identity", uuid.Nil, response.ErrCodeUnauthorized},
		{"unknown user", uuid.New(), response.ErrCodeUnauthorized},
		{"store failure", uuid.MustParse("00000000-0000-0000-0000-0000000000ff"), response.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := gateway.ResolveCurrentUser(context.Background(), tt.userID)
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, "alice", user.Name)
				return
			}
			assert.Nil(t, user)
			assert.True(t, response.HasCode(err, tt.wantCode), err)
		})
	}
}
