package domain

// Course represents a named subject such as "MKT" or "FIN 1"
type Course struct {
	BaseModel
	Name     string          `gorm:"type:varchar(100);not null;uniqueIndex:uq_courses_name" json:"name"`
	Sessions []CourseSession `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"sessions,omitempty"`
}

// TableName specifies the table name for Course
func (Course) TableName() string {
	return "courses"
}

// DefaultCourseNames is the course list used when seeding a fresh database
var DefaultCourseNames = []string{"MKT", "LEAD", "FIN 1", "FRC", "STRAT", "TOM"}
