package dto

import (
	"time"

	"github.com/google/uuid"

	"participation-service/internal/domain"
)

// SessionView is a course session as seen by the caller
type SessionView struct {
	ID            uuid.UUID             `json:"id" example:"1275eac5-f0f9-4bee-8235-576a0042f42b"`
	CourseID      uuid.UUID             `json:"courseId" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	CourseName    string                `json:"courseName" example:"MKT"`
	Theme         domain.CourseTheme    `json:"theme" example:"red"`
	StartAt       time.Time             `json:"startAt" example:"2026-01-15T09:00:00Z"`
	EndAt         time.Time             `json:"endAt" example:"2026-01-15T10:30:00Z"`
	Case          *string               `json:"case,omitempty" example:"Netflix pricing"`
	Status        domain.SessionStatus  `json:"status,omitempty" example:"pending"`
	Participation *ParticipationSummary `json:"participation"`
}

// WeekResponse lists the sessions of one calendar week
type WeekResponse struct {
	WeekStart time.Time     `json:"weekStart" example:"2026-01-11T00:00:00-05:00"`
	WeekEnd   time.Time     `json:"weekEnd" example:"2026-01-17T23:59:59.999-05:00"`
	Sessions  []SessionView `json:"sessions"`
}

// HistoryGroup holds the sessions of one calendar date
type HistoryGroup struct {
	Date     string        `json:"date" example:"Thursday, January 15, 2026"`
	Sessions []SessionView `json:"sessions"`
}

// HistoryPageResponse is one page of the descending session history
// @Description Pass nextCursor back as ?cursor= to fetch the following page
type HistoryPageResponse struct {
	Groups     []HistoryGroup `json:"groups"`
	HasMore    bool           `json:"hasMore" example:"true"`
	NextCursor *string        `json:"nextCursor" example:"MjAyNi0wMS0xNVQwOTowMDowMFp8MTI3NWVhYzUtZjBmOS00YmVlLTgyMzUtNTc2YTAwNDJmNDJi"`
}

// CourseResponse is a course with its display theme
type CourseResponse struct {
	ID    uuid.UUID          `json:"id" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	Name  string             `json:"name" example:"FIN 1"`
	Theme domain.CourseTheme `json:"theme" example:"blue"`
}

// NewSessionView converts a session preloaded with its course and the caller's participation
func NewSessionView(s *domain.CourseSession, status domain.SessionStatus) *SessionView {
	view := &SessionView{
		ID:            s.ID,
		CourseID:      s.CourseID,
		StartAt:       s.StartAt,
		EndAt:         s.EndAt,
		Case:          s.Case,
		Status:        status,
		Participation: NewParticipationSummary(s.UserParticipation()),
	}
	if s.Course != nil {
		view.CourseName = s.Course.Name
		view.Theme = domain.ThemeForCourse(s.Course.Name)
	}
	return view
}

// NewCourseResponse converts a course
func NewCourseResponse(c *domain.Course) CourseResponse {
	return CourseResponse{
		ID:    c.ID,
		Name:  c.Name,
		Theme: domain.ThemeForCourse(c.Name),
	}
}
