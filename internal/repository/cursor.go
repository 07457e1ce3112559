package repository

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"participation-service/internal/domain"
)

// EncodeCursor serialises the cursor to an opaque token
func EncodeCursor(c *domain.SessionCursor) string {
	if c == nil {
		return ""
	}
	raw := fmt.Sprintf("%s|%s", c.StartAt.UTC().Format(time.RFC3339Nano), c.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses a token produced by EncodeCursor. A bare RFC3339 timestamp is also
// accepted and yields a cursor without tie-break ID. An empty token returns nil.
func DecodeCursor(token string) (*domain.SessionCursor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}

	if ts, err := time.Parse(time.RFC3339Nano, token); err == nil {
		return &domain.SessionCursor{StartAt: ts.UTC()}, nil
	}

	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor encoding: %w", err)
	}
	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid cursor format")
	}
	ts, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid cursor timestamp: %w", err)
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid cursor id: %w", err)
	}
	return &domain.SessionCursor{StartAt: ts.UTC(), ID: id}, nil
}
