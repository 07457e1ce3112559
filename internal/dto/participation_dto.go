package dto

import (
	"time"

	"github.com/google/uuid"

	"participation-service/internal/domain"
)

// RecordParticipationRequest marks the caller's participation for a session
// @Description Creates the caller's record for the session or overwrites the existing one
// @Description quality must be between 0 and 3; 0 means "did not participate"
type RecordParticipationRequest struct {
	SessionID    uuid.UUID `json:"sessionId" binding:"required" example:"1275eac5-f0f9-4bee-8235-576a0042f42b"`
	Participated *bool     `json:"participated" binding:"required" example:"true"`
	Quality      *int      `json:"quality" binding:"required" example:"2"`
	Note         *string   `json:"note,omitempty" binding:"omitempty,max=2000" example:"Asked about the pricing model"`
}

// UpdateParticipationRequest rewrites an existing participation record
// @Description All fields are replaced; omit note to clear it
type UpdateParticipationRequest struct {
	Participated *bool   `json:"participated" binding:"required" example:"false"`
	Quality      *int    `json:"quality" binding:"required" example:"0"`
	Note         *string `json:"note,omitempty" binding:"omitempty,max=2000"`
}

// ParticipationSummary is the caller's record as embedded in session views
type ParticipationSummary struct {
	ID           uuid.UUID `json:"id" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	Participated bool      `json:"participated" example:"true"`
	Quality      int       `json:"quality" example:"2"`
	Note         *string   `json:"note,omitempty"`
	CreatedAt    time.Time `json:"createdAt" example:"2026-01-15T10:30:00Z"`
	UpdatedAt    time.Time `json:"updatedAt" example:"2026-01-15T10:30:00Z"`
}

// ParticipationResponse is a participation record joined with its session and course
type ParticipationResponse struct {
	ID              uuid.UUID    `json:"id" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	UserID          uuid.UUID    `json:"userId" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	CourseSessionID uuid.UUID    `json:"courseSessionId" example:"1275eac5-f0f9-4bee-8235-576a0042f42b"`
	Participated    bool         `json:"participated" example:"true"`
	Quality         int          `json:"quality" example:"2"`
	Note            *string      `json:"note,omitempty"`
	CreatedAt       time.Time    `json:"createdAt" example:"2026-01-15T10:30:00Z"`
	UpdatedAt       time.Time    `json:"updatedAt" example:"2026-01-15T10:30:00Z"`
	Session         *SessionView `json:"session,omitempty"`
}

// NewParticipationSummary converts a stored record, returning nil for nil
func NewParticipationSummary(p *domain.Participation) *ParticipationSummary {
	if p == nil {
		return nil
	}
	return &ParticipationSummary{
		ID:           p.ID,
		Participated: p.Participated,
		Quality:      p.Quality,
		Note:         p.Note,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// NewParticipationResponse converts a record joined with its session
func NewParticipationResponse(p *domain.Participation) *ParticipationResponse {
	resp := &ParticipationResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		CourseSessionID: p.CourseSessionID,
		Participated:    p.Participated,
		Quality:         p.Quality,
		Note:            p.Note,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.CourseSession != nil {
		resp.Session = NewSessionView(p.CourseSession, "")
	}
	return resp
}
