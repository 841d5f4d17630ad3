package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/NefariousNGGA/backend/internal/domain"
	"github.com/NefariousNGGA/backend/internal/infrastructure/database/models"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// LastSeen is the latest comment, reaction or submission by the identity, or
// nil when it has done none of those.
func (r *ProfileRepository) LastSeen(ctx context.Context, identityID int64) (*time.Time, error) {
	var latest *time.Time
	for _, model := range []any{&models.Comment{}, &models.Reaction{}, &models.Submission{}} {
		var stamps []time.Time
		err := r.db.WithContext(ctx).
			Model(model).
			Where("identity_id = ?", identityID).
			Order("created_at DESC").
			Limit(1).
			Pluck("created_at", &stamps).Error
		if err != nil {
			return nil, domain.NewStoreError("profiles.last_seen", err)
		}
		if len(stamps) > 0 && (latest == nil || stamps[0].After(*latest)) {
			t := stamps[0]
			latest = &t
		}
	}
	return latest, nil
}

func (r *ProfileRepository) RecentComments(ctx context.Context, identityID int64, limit int) ([]domain.ProfileComment, error) {
	var rows []struct {
		Body      string
		CreatedAt time.Time
		PostID    int64
		PostTitle *string
	}
	err := r.db.WithContext(ctx).
		Table("comments").
		Select("comments.body, comments.created_at, comments.post_id, posts.title AS post_title").
		Joins("LEFT JOIN posts ON posts.id = comments.post_id").
		Where("comments.identity_id = ?", identityID).
		Order("comments.created_at DESC, comments.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, domain.NewStoreError("profiles.recent_comments", err)
	}

	result := make([]domain.ProfileComment, 0, len(rows))
	for _, row := range rows {
		result = append(result, domain.ProfileComment{
			Body:      row.Body,
			CreatedAt: row.CreatedAt,
			PostID:    row.PostID,
			PostTitle: row.PostTitle,
		})
	}
	return result, nil
}
