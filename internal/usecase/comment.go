package usecase

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/NefariousNGGA/backend/internal/domain"
	"github.com/NefariousNGGA/backend/internal/monitoring"
)

type CommentUsecase struct {
	posts    PostRepository
	comments CommentRepository
	fanout   *NotificationUsecase
}

func NewCommentUsecase(posts PostRepository, comments CommentRepository, fanout *NotificationUsecase) *CommentUsecase {
	return &CommentUsecase{
		posts:    posts,
		comments: comments,
		fanout:   fanout,
	}
}

// Create stores a comment and its mention notifications together: if the
// fan-out fails the comment is not kept. Realtime delivery happens after
// commit.
func (uc *CommentUsecase) Create(ctx context.Context, requester *domain.Identity, postID int64, body string) (domain.CommentResult, error) {
	ctx, span := tracer.Start(ctx, "Comment.Usecase.Create")
	defer span.End()

	if requester == nil {
		return domain.CommentResult{}, domain.UnauthorizedError{}
	}
	if postID <= 0 {
		return domain.CommentResult{}, domain.InvalidInputError{Field: "post_id", Reason: "required"}
	}
	body, err := normalizeBody(body)
	if err != nil {
		return domain.CommentResult{}, err
	}

	exists, err := uc.posts.Exists(ctx, postID)
	if err != nil {
		span.RecordError(err)
		return domain.CommentResult{}, errors.Wrap(err, "CommentUsecase.Create: posts.Exists failed")
	}
	if !exists {
		return domain.CommentResult{}, domain.NotFoundError{Resource: "post"}
	}

	var saved []domain.Notification
	comment, err := uc.comments.Create(ctx, domain.Comment{
		PostID:     postID,
		IdentityID: requester.ID,
		Body:       body,
		CreatedAt:  time.Now(),
	}, func(ctx context.Context, comment domain.Comment) error {
		var err error
		saved, err = uc.fanout.OnCommentCreated(ctx, comment, *requester)
		return err
	})
	if err != nil {
		span.RecordError(err)
		return domain.CommentResult{}, errors.Wrap(err, "CommentUsecase.Create: comments.Create failed")
	}
	monitoring.CommentsCreated.Inc()

	uc.fanout.Deliver(ctx, saved)

	return domain.CommentResult{
		CommentID:     comment.ID,
		CreatedAt:     comment.CreatedAt,
		Notifications: len(saved),
	}, nil
}

func (uc *CommentUsecase) ListByPost(ctx context.Context, postID int64) ([]domain.CommentView, error) {
	return uc.comments.ListByPost(ctx, postID)
}
