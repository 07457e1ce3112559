package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"participation-service/internal/response"
)

// Context keys set by the auth middlewares
const (
	ContextKeyUserID = "user_id"
	ContextKeyToken  = "jwtToken"
)

// TokenValidator interface for auth-service token validation
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenStr string) (uuid.UUID, error)
}

// AuthWithValidator returns a middleware that validates bearer tokens via the auth service,
// so revoked tokens are rejected
func AuthWithValidator(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		userID, err := validator.ValidateToken(ctx, tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyToken, tokenString)
		c.Next()
	}
}

// Auth returns a middleware that validates HMAC-signed JWTs locally. Used when no auth
// service is configured; revocation is not checked.
func Auth(jwtSecret string) gin.HandlerFunc {
	return AuthWithValidator(NewLocalTokenValidator(jwtSecret))
}

// LocalTokenValidator validates HMAC-signed JWTs with a shared secret
type LocalTokenValidator struct {
	secret []byte
}

// NewLocalTokenValidator creates a new LocalTokenValidator
func NewLocalTokenValidator(secret string) *LocalTokenValidator {
	return &LocalTokenValidator{secret: []byte(secret)}
}

// ValidateToken parses the token and extracts the user ID from the user_id, sub or uid claim
func (v *LocalTokenValidator) ValidateToken(_ context.Context, tokenStr string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if !token.Valid {
		return uuid.Nil, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid token claims")
	}

	for _, key := range []string{"user_id", "sub", "uid"} {
		if raw, ok := claims[key].(string); ok {
			return uuid.Parse(raw)
		}
	}
	return uuid.Nil, errors.New("user ID not found in token")
}

// bearerToken extracts the token from "Authorization: Bearer <token>", aborting on failure
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		abortUnauthorized(c, "Authorization header is required")
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		abortUnauthorized(c, "Invalid authorization header format")
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func abortUnauthorized(c *gin.Context, message string) {
	response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, message)
	c.Abort()
}
