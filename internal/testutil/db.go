// Package testutil provides an in-memory store and fixtures shared by package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"participation-service/internal/database"
	"participation-service/internal/domain"
)

// NewTestDB opens a migrated sqlite in-memory database. The pool is pinned to a single
// connection so every query sees the same in-memory schema.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// CreateUser inserts a user with a unique email
func CreateUser(t testing.TB, db *gorm.DB, name string) *domain.User {
	t.Helper()
	user := &domain.User{Name: name, Email: name + "-" + uuid.NewString() + "@example.com"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// CreateCourse inserts a course
func CreateCourse(t testing.TB, db *gorm.DB, name string) *domain.Course {
	t.Helper()
	course := &domain.Course{Name: name}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	return course
}

// CreateSession inserts a 90 minute session of the course starting at startAt
func CreateSession(t testing.TB, db *gorm.DB, course *domain.Course, startAt time.Time) *domain.CourseSession {
	t.Helper()
	session := &domain.CourseSession{
		CourseID: course.ID,
		StartAt:  startAt.UTC(),
		EndAt:    startAt.Add(90 * time.Minute).UTC(),
	}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return session
}

// CreateParticipation inserts a participation for the user and session
func CreateParticipation(t testing.TB, db *gorm.DB, user *domain.User, session *domain.CourseSession, participated bool, quality int) *domain.Participation {
	t.Helper()
	participation := &domain.Participation{
		UserID:          user.ID,
		CourseSessionID: session.ID,
		Participated:    participated,
		Quality:         quality,
	}
	if err := db.Create(participation).Error; err != nil {
		t.Fatalf("failed to create participation: %v", err)
	}
	return participation
}
