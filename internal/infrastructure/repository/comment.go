package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/NefariousNGGA/backend/internal/domain"
	"github.com/NefariousNGGA/backend/internal/infrastructure/database/models"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts the comment and runs afterInsert in the same transaction.
// Repository calls made with afterInsert's context join that transaction, and
// an afterInsert error rolls the comment back.
func (r *CommentRepository) Create(ctx context.Context, comment domain.Comment, afterInsert func(ctx context.Context, saved domain.Comment) error) (domain.Comment, error) {
	ctx, span := tracer.Start(ctx, "Comment.Repository.Create")
	defer span.End()

	var saved domain.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := models.Comment{
			PostID:     comment.PostID,
			IdentityID: comment.IdentityID,
			Body:       comment.Body,
			CreatedAt:  stamp(comment.CreatedAt),
		}
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return storeError("comments.create", "comment", err)
		}
		saved = domain.Comment{
			ID:         row.ID,
			PostID:     row.PostID,
			IdentityID: row.IdentityID,
			Body:       row.Body,
			CreatedAt:  row.CreatedAt,
		}
		if afterInsert == nil {
			return nil
		}
		return afterInsert(withTx(ctx, tx), saved)
	})
	if err != nil {
		span.RecordError(err)
		return domain.Comment{}, err
	}
	return saved, nil
}

type commentRow struct {
	ID          int64
	PostID      int64
	IdentityID  int64
	Body        string
	CreatedAt   time.Time
	Handle      string
	DisplayName string
}

// ListByPost returns a post's comments oldest first.
func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]domain.CommentView, error) {
	var rows []commentRow
	err := r.db.WithContext(ctx).
		Table("comments").
		Select("comments.id, comments.post_id, comments.identity_id, comments.body, comments.created_at, identities.handle, identities.display_name").
		Joins("JOIN identities ON identities.id = comments.identity_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at ASC, comments.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, domain.NewStoreError("comments.list", err)
	}

	result := make([]domain.CommentView, 0, len(rows))
	for _, row := range rows {
		result = append(result, domain.CommentView{
			Comment: domain.Comment{
				ID:         row.ID,
				PostID:     row.PostID,
				IdentityID: row.IdentityID,
				Body:       row.Body,
				CreatedAt:  row.CreatedAt,
			},
			Handle:      row.Handle,
			DisplayName: row.DisplayName,
		})
	}
	return result, nil
}
