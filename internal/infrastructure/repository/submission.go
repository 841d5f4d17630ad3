package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/NefariousNGGA/backend/internal/domain"
	"github.com/NefariousNGGA/backend/internal/infrastructure/database/models"
)

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission domain.Submission) (domain.Submission, error) {
	row := models.Submission{
		IdentityID: submission.IdentityID,
		Title:      submission.Title,
		Body:       submission.Body,
		MoodTags:   models.TagArray(submission.MoodTags),
		Status:     string(domain.SubmissionPending),
		CreatedAt:  stamp(submission.CreatedAt),
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return domain.Submission{}, storeError("submissions.create", "submission", err)
	}
	return toSubmission(row), nil
}

type submissionRow struct {
	ID          int64
	IdentityID  int64
	Title       *string
	Body        string
	MoodTags    models.TagArray
	Status      string
	CreatedAt   time.Time
	Handle      string
	DisplayName string
}

// ListPending returns the moderation queue, oldest first.
func (r *SubmissionRepository) ListPending(ctx context.Context) ([]domain.SubmissionView, error) {
	var rows []submissionRow
	err := r.db.WithContext(ctx).
		Table("submissions").
		Select("submissions.id, submissions.identity_id, submissions.title, submissions.body, submissions.mood_tags, " +
			"submissions.status, submissions.created_at, identities.handle, identities.display_name").
		Joins("JOIN identities ON identities.id = submissions.identity_id").
		Where("submissions.status = ?", string(domain.SubmissionPending)).
		Order("submissions.created_at ASC, submissions.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, domain.NewStoreError("submissions.list_pending", err)
	}

	result := make([]domain.SubmissionView, 0, len(rows))
	for _, row := range rows {
		result = append(result, domain.SubmissionView{
			Submission: domain.Submission{
				ID:         row.ID,
				IdentityID: row.IdentityID,
				Title:      row.Title,
				Body:       row.Body,
				MoodTags:   row.MoodTags.Strings(),
				Status:     domain.SubmissionStatus(row.Status),
				CreatedAt:  row.CreatedAt,
			},
			Handle:      row.Handle,
			DisplayName: row.DisplayName,
		})
	}
	return result, nil
}

// Publish claims the submission with a conditional status update and inserts
// its post in the same transaction. Only one caller can win the claim; the
// rest see domain.NotFoundError, as does a submission that never existed.
// Any other failure, including a post already bound to the submission, rolls
// the claim back and surfaces as a store error.
func (r *SubmissionRepository) Publish(ctx context.Context, id int64) (domain.Post, error) {
	ctx, span := tracer.Start(ctx, "Submission.Repository.Publish")
	defer span.End()

	var post models.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claim := tx.Model(&models.Submission{}).
			Where("id = ? AND status = ?", id, string(domain.SubmissionPending)).
			Update("status", string(domain.SubmissionPublished))
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return domain.NotFoundError{Resource: "submission"}
		}

		var submission models.Submission
		if err := tx.Take(&submission, "id = ?", id).Error; err != nil {
			return err
		}

		submissionID := submission.ID
		post = models.Post{
			AuthorID:     submission.IdentityID,
			Title:        submission.Title,
			Body:         submission.Body,
			MoodTags:     submission.MoodTags,
			SubmissionID: &submissionID,
			CreatedAt:    now(),
		}
		return tx.Omit(clause.Associations).Create(&post).Error
	})
	if err != nil {
		var notFound domain.NotFoundError
		if errors.As(err, &notFound) {
			return domain.Post{}, notFound
		}
		span.RecordError(err)
		return domain.Post{}, domain.NewStoreError("submissions.publish", err)
	}

	return domain.Post{
		ID:           post.ID,
		AuthorID:     post.AuthorID,
		Title:        post.Title,
		Body:         post.Body,
		MoodTags:     post.MoodTags.Strings(),
		SubmissionID: post.SubmissionID,
		CreatedAt:    post.CreatedAt,
	}, nil
}

func toSubmission(row models.Submission) domain.Submission {
	return domain.Submission{
		ID:         row.ID,
		IdentityID: row.IdentityID,
		Title:      row.Title,
		Body:       row.Body,
		MoodTags:   row.MoodTags.Strings(),
		Status:     domain.SubmissionStatus(row.Status),
		CreatedAt:  row.CreatedAt,
	}
}
