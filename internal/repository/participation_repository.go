package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"participation-service/internal/domain"
)

// ParticipationRepository defines data access for participation records
type ParticipationRepository interface {
	Upsert(ctx context.Context, participation *domain.Participation) (*domain.Participation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Participation, error)
	FindByUserAndSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Participation, error)
	Update(ctx context.Context, participation *domain.Participation) error
	Delete(ctx context.Context, id uuid.UUID) error
	AverageQuality(ctx context.Context, userID uuid.UUID) (*float64, error)
}

// participationRepositoryImpl is the GORM implementation of ParticipationRepository
type participationRepositoryImpl struct {
	db *gorm.DB
}

// NewParticipationRepository creates a new instance of ParticipationRepository
func NewParticipationRepository(db *gorm.DB) ParticipationRepository {
	return &participationRepositoryImpl{db: db}
}

func (r *participationRepositoryImpl) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("CourseSession.Course")
}

// Upsert inserts the record or, when (user_id, course_session_id) already exists, overwrites
// participated/quality/note/updated_at in the same statement. Returns the stored row joined
// with its session and course.
func (r *participationRepositoryImpl) Upsert(ctx context.Context, participation *domain.Participation) (*domain.Participation, error) {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "course_session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"participated", "quality", "note", "updated_at",
			}),
		}).
		Create(participation).Error; err != nil {
		return nil, err
	}

	return r.FindByUserAndSession(ctx, participation.UserID, participation.CourseSessionID)
}

// FindByID finds a participation by ID joined with its session and course
func (r *participationRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Participation, error) {
	var participation domain.Participation
	if err := r.joined(ctx).
		Where("id = ?", id).
		First(&participation).Error; err != nil {
		return nil, err
	}
	return &participation, nil
}

// FindByUserAndSession finds a participation by its natural key
func (r *participationRepositoryImpl) FindByUserAndSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Participation, error) {
	var participation domain.Participation
	if err := r.joined(ctx).
		Where("user_id = ? AND course_session_id = ?", userID, sessionID).
		First(&participation).Error; err != nil {
		return nil, err
	}
	return &participation, nil
}

// Update writes participated/quality/note/updated_at, including zero values
func (r *participationRepositoryImpl) Update(ctx context.Context, participation *domain.Participation) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Participation{}).
		Where("id = ?", participation.ID).
		Updates(map[string]interface{}{
			"participated": participation.Participated,
			"quality":      participation.Quality,
			"note":         participation.Note,
			"updated_at":   participation.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete hard deletes a participation record
func (r *participationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Participation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AverageQuality returns the mean quality over the user's participated records with a
// positive rating, or nil when there are none.
func (r *participationRepositoryImpl) AverageQuality(ctx context.Context, userID uuid.UUID) (*float64, error) {
	var row struct {
		Average *float64
		Total   int64
	}
	if err := r.db.WithContext(ctx).
		Model(&domain.Participation{}).
		Select("AVG(quality) AS average, COUNT(*) AS total").
		Where("user_id = ? AND participated = ? AND quality > ?", userID, true, 0).
		Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.Total == 0 {
		return nil, nil
	}
	return row.Average, nil
}
