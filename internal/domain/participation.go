package domain

import "github.com/google/uuid"

// Quality bounds. Zero is the sentinel recorded when the user did not participate.
const (
	MinQuality = 0
	MaxQuality = 3
)

// Participation is one user's record for one session. (UserID, CourseSessionID) is unique.
type Participation struct {
	BaseModel
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index:idx_participations_user_id;uniqueIndex:uq_participations_user_session,priority:1" json:"userId"`
	CourseSessionID uuid.UUID      `gorm:"type:uuid;not null;index:idx_participations_course_session_id;uniqueIndex:uq_participations_user_session,priority:2" json:"courseSessionId"`
	Participated    bool           `gorm:"not null" json:"participated"`
	Quality         int            `gorm:"type:int;not null" json:"quality"`
	Note            *string        `gorm:"type:text" json:"note,omitempty"`
	User            *User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CourseSession   *CourseSession `gorm:"foreignKey:CourseSessionID" json:"courseSession,omitempty"`
}

// TableName specifies the table name for Participation
func (Participation) TableName() string {
	return "participations"
}

// ValidQuality reports whether q is inside the accepted rating range
func ValidQuality(q int) bool {
	return q >= MinQuality && q <= MaxQuality
}
