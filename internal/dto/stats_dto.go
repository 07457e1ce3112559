package dto

import (
	"time"

	"github.com/google/uuid"

	"participation-service/internal/domain"
)

// CourseTrackingEntry is a course's participation health
type CourseTrackingEntry struct {
	CourseID                       uuid.UUID             `json:"courseId" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	CourseName                     string                `json:"courseName" example:"MKT"`
	Theme                          domain.CourseTheme    `json:"theme" example:"red"`
	SessionsSinceLastParticipation int                   `json:"sessionsSinceLastParticipation" example:"2"`
	Status                         domain.TrackingStatus `json:"status" example:"attention"`
	LastParticipationDate          *time.Time            `json:"lastParticipationDate" example:"2026-01-12T09:00:00Z"`
	LastQuality                    *int                  `json:"lastQuality" example:"3"`
}

// SessionDetail is one past session inside a course's statistics
type SessionDetail struct {
	SessionID    uuid.UUID `json:"sessionId" example:"1275eac5-f0f9-4bee-8235-576a0042f42b"`
	StartAt      time.Time `json:"startAt" example:"2026-01-15T09:00:00Z"`
	Case         *string   `json:"case,omitempty"`
	Participated bool      `json:"participated" example:"false"`
	Quality      *int      `json:"quality" example:"2"`
	Note         *string   `json:"note,omitempty"`
}

// CourseStatistics aggregates a course's past sessions for the caller
type CourseStatistics struct {
	CourseID                       uuid.UUID          `json:"courseId" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	CourseName                     string             `json:"courseName" example:"FIN 1"`
	Theme                          domain.CourseTheme `json:"theme" example:"blue"`
	TotalSessionsPassed            int                `json:"totalSessionsPassed" example:"3"`
	ParticipatedSessions           int                `json:"participatedSessions" example:"2"`
	ParticipationPercentage        int                `json:"participationPercentage" example:"67"`
	SessionsSinceLastParticipation int                `json:"sessionsSinceLastParticipation" example:"1"`
	LastParticipationDate          *time.Time         `json:"lastParticipationDate"`
	LastQuality                    *int               `json:"lastQuality" example:"2"`
	SessionDetails                 []SessionDetail    `json:"sessionDetails"`
}

// OverallStatistics aggregates every course with at least one past session
type OverallStatistics struct {
	TotalCourses                   int      `json:"totalCourses" example:"6"`
	TotalSessionsPassed            int      `json:"totalSessionsPassed" example:"42"`
	ParticipatedSessions           int      `json:"participatedSessions" example:"30"`
	OverallParticipationPercentage int      `json:"overallParticipationPercentage" example:"71"`
	AverageQuality                 *float64 `json:"averageQuality" example:"2.5"`
}

// UserStatistics is the caller's statistics dashboard
type UserStatistics struct {
	CourseStatistics  []CourseStatistics `json:"courseStatistics"`
	OverallStatistics OverallStatistics  `json:"overallStatistics"`
}
