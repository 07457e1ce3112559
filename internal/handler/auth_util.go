package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"participation-service/internal/middleware"
	"participation-service/internal/response"
)

// AuthData holds the extracted user ID and JWT token string.
type AuthData struct {
	UserID uuid.UUID
	Token  string
}

// ExtractAuthData extracts user_id and jwtToken from the Gin context.
// On failure the 401 response has already been written.
func ExtractAuthData(c *gin.Context) (AuthData, bool) {
	userID, exists := c.Get(middleware.ContextKeyUserID)
	if !exists {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in context")
		return AuthData{}, false
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid user ID format")
		return AuthData{}, false
	}

	tokenStr := c.GetString(middleware.ContextKeyToken)

	return AuthData{
		UserID: userUUID,
		Token:  tokenStr,
	}, true
}

// parseUUIDParam parses a UUID path parameter, writing a 400 on failure
func parseUUIDParam(c *gin.Context, name, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, message)
		return uuid.Nil, false
	}
	return id, true
}
