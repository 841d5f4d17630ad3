package usecase

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/NefariousNGGA/backend/internal/domain"
	"github.com/NefariousNGGA/backend/internal/monitoring"
)

type SubmissionUsecase struct {
	repo  SubmissionRepository
	admin AdminGuard
}

func NewSubmissionUsecase(repo SubmissionRepository, admin AdminGuard) *SubmissionUsecase {
	return &SubmissionUsecase{
		repo:  repo,
		admin: admin,
	}
}

// Submit always creates a new pending submission.
func (uc *SubmissionUsecase) Submit(ctx context.Context, requester *domain.Identity, title *string, body string, moodTags []string) (domain.Submission, error) {
	ctx, span := tracer.Start(ctx, "Submission.Usecase.Submit")
	defer span.End()

	if requester == nil {
		return domain.Submission{}, domain.UnauthorizedError{Reason: "identity required to submit"}
	}
	body, err := normalizeBody(body)
	if err != nil {
		return domain.Submission{}, err
	}
	tags, err := normalizeMoodTags(moodTags)
	if err != nil {
		return domain.Submission{}, err
	}

	submission, err := uc.repo.Create(ctx, domain.Submission{
		IdentityID: requester.ID,
		Title:      normalizeTitle(title),
		Body:       body,
		MoodTags:   tags,
		Status:     domain.SubmissionPending,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		span.RecordError(err)
		return domain.Submission{}, errors.Wrap(err, "SubmissionUsecase.Submit: Create failed")
	}

	monitoring.SubmissionsCreated.Inc()
	return submission, nil
}

// Publish turns a pending submission into a post owned by the submitter.
// The status transition and the post insert commit together, so a
// submission yields at most one post; a repeated or concurrent publish
// observes domain.NotFoundError.
func (uc *SubmissionUsecase) Publish(ctx context.Context, submissionID int64, adminSecret string) (domain.Post, error) {
	ctx, span := tracer.Start(ctx, "Submission.Usecase.Publish")
	defer span.End()

	if err := uc.admin.Check(adminSecret); err != nil {
		monitoring.Publishes.WithLabelValues("forbidden").Inc()
		return domain.Post{}, err
	}

	span.SetAttributes(attribute.Int64("SubmissionID", submissionID))
	post, err := uc.repo.Publish(ctx, submissionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			monitoring.Publishes.WithLabelValues("not_found").Inc()
			return domain.Post{}, err
		}
		span.RecordError(err)
		monitoring.Publishes.WithLabelValues("error").Inc()
		return domain.Post{}, errors.Wrap(err, "SubmissionUsecase.Publish failed")
	}

	monitoring.Publishes.WithLabelValues("published").Inc()
	return post, nil
}

// ListPending returns pending submissions, oldest first.
func (uc *SubmissionUsecase) ListPending(ctx context.Context, adminSecret string) ([]domain.SubmissionView, error) {
	if err := uc.admin.Check(adminSecret); err != nil {
		return nil, err
	}
	return uc.repo.ListPending(ctx)
}
