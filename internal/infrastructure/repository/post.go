package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/NefariousNGGA/backend/internal/domain"
	"github.com/NefariousNGGA/backend/internal/infrastructure/database/models"
)

type PostRepository struct {
	db    *gorm.DB
	cache PostCache
}

// NewPostRepository builds the post store. cache may be nil.
func NewPostRepository(db *gorm.DB, cache PostCache) *PostRepository {
	return &PostRepository{db: db, cache: cache}
}

type postRow struct {
	ID                int64
	AuthorID          int64
	Title             *string
	Body              string
	MoodTags          models.TagArray
	SubmissionID      *int64
	CreatedAt         time.Time
	AuthorHandle      string
	AuthorDisplayName string
}

func (row postRow) view() domain.PostView {
	return domain.PostView{
		Post: domain.Post{
			ID:           row.ID,
			AuthorID:     row.AuthorID,
			Title:        row.Title,
			Body:         row.Body,
			MoodTags:     row.MoodTags.Strings(),
			SubmissionID: row.SubmissionID,
			CreatedAt:    row.CreatedAt,
		},
		AuthorHandle:      row.AuthorHandle,
		AuthorDisplayName: row.AuthorDisplayName,
	}
}

func (r *PostRepository) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("posts").
		Select("posts.id, posts.author_id, posts.title, posts.body, posts.mood_tags, posts.submission_id, posts.created_at, " +
			"identities.handle AS author_handle, identities.display_name AS author_display_name").
		Joins("JOIN identities ON identities.id = posts.author_id")
}

func (r *PostRepository) Get(ctx context.Context, id int64) (*domain.PostView, error) {
	ctx, span := tracer.Start(ctx, "Post.Repository.Get")
	defer span.End()

	if r.cache != nil {
		if post, ok := r.cache.Get(ctx, id); ok {
			return post, nil
		}
	}

	var rows []postRow
	if err := r.query(ctx).Where("posts.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		span.RecordError(err)
		return nil, domain.NewStoreError("posts.get", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	post := rows[0].view()
	if r.cache != nil {
		r.cache.Set(ctx, post)
	}
	return &post, nil
}

func (r *PostRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, domain.NewStoreError("posts.exists", err)
	}
	return count > 0, nil
}

// List returns posts newest first. A limit of zero returns every post.
func (r *PostRepository) List(ctx context.Context, limit int) ([]domain.PostView, error) {
	q := r.query(ctx).Order("posts.created_at DESC, posts.id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []postRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, domain.NewStoreError("posts.list", err)
	}

	result := make([]domain.PostView, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.view())
	}
	return result, nil
}
