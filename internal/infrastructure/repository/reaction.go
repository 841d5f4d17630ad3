package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/NefariousNGGA/backend/internal/domain"
	"github.com/NefariousNGGA/backend/internal/infrastructure/database/models"
)

type ReactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

// Upsert keeps a single row per (post, identity); a later reaction replaces
// the emoji and refreshes the timestamp in one statement.
func (r *ReactionRepository) Upsert(ctx context.Context, reaction domain.Reaction) error {
	ctx, span := tracer.Start(ctx, "Reaction.Repository.Upsert")
	defer span.End()

	row := models.Reaction{
		PostID:     reaction.PostID,
		IdentityID: reaction.IdentityID,
		Emoji:      reaction.Emoji,
		CreatedAt:  stamp(reaction.CreatedAt),
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "identity_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"emoji", "created_at"}),
	}).Create(&row).Error
	if err != nil {
		span.RecordError(err)
		return domain.NewStoreError("reactions.upsert", err)
	}
	return nil
}

func (r *ReactionRepository) Counts(ctx context.Context, postID int64) (map[string]int64, error) {
	var rows []struct {
		Emoji string
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Select("emoji, COUNT(*) AS count").
		Where("post_id = ?", postID).
		Group("emoji").
		Scan(&rows).Error
	if err != nil {
		return nil, domain.NewStoreError("reactions.counts", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Emoji] = row.Count
	}
	return counts, nil
}

func (r *ReactionRepository) Get(ctx context.Context, postID, identityID int64) (*string, error) {
	var row models.Reaction
	err := r.db.WithContext(ctx).Where("post_id = ? AND identity_id = ?", postID, identityID).Take(&row).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewStoreError("reactions.get", err)
	}
	return &row.Emoji, nil
}
