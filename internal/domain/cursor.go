package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionCursor is a keyset position in the descending session history.
// A zero ID means "strictly before StartAt" with no tie-break.
type SessionCursor struct {
	StartAt time.Time
	ID      uuid.UUID
}
