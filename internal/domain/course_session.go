package domain

import (
	"time"

	"github.com/google/uuid"
)

// CourseSession is one scheduled occurrence of a course
type CourseSession struct {
	BaseModel
	CourseID uuid.UUID `gorm:"type:uuid;not null;index:idx_course_sessions_course_id" json:"courseId"`
	StartAt  time.Time `gorm:"type:timestamp;not null;index:idx_course_sessions_start_at" json:"startAt"`
	EndAt    time.Time `gorm:"type:timestamp;not null" json:"endAt"`
	Case     *string   `gorm:"type:varchar(255)" json:"case,omitempty"`
	Course   *Course   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`

	// Participations is preloaded filtered to a single user, so it holds at most one row.
	Participations []Participation `gorm:"foreignKey:CourseSessionID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for CourseSession
func (CourseSession) TableName() string {
	return "course_sessions"
}

// UserParticipation returns the preloaded participation of the scoped user, if any
func (s *CourseSession) UserParticipation() *Participation {
	if len(s.Participations) == 0 {
		return nil
	}
	return &s.Participations[0]
}
