package domain

// User is the authenticated identity. Rows are provisioned by the auth side;
// this service only reads them.
type User struct {
	BaseModel
	Name  string `gorm:"type:varchar(255);not null" json:"name"`
	Email string `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
