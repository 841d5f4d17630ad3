package usecase

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/NefariousNGGA/backend/internal/domain"
	"github.com/NefariousNGGA/backend/internal/monitoring"
)

type ReactionUsecase struct {
	posts     PostRepository
	reactions ReactionRepository
}

func NewReactionUsecase(posts PostRepository, reactions ReactionRepository) *ReactionUsecase {
	return &ReactionUsecase{
		posts:     posts,
		reactions: reactions,
	}
}

// React sets the requester's single reaction on a post, replacing any earlier
// one. Reacting twice with the same emoji only refreshes the timestamp.
func (uc *ReactionUsecase) React(ctx context.Context, requester *domain.Identity, postID int64, emoji string) error {
	ctx, span := tracer.Start(ctx, "Reaction.Usecase.React")
	defer span.End()

	if requester == nil {
		return domain.UnauthorizedError{}
	}
	if postID <= 0 {
		return domain.InvalidInputError{Field: "post_id", Reason: "required"}
	}
	canonical, ok := domain.NormalizeEmoji(emoji)
	if !ok {
		return domain.InvalidInputError{Field: "emoji", Reason: "invalid reaction"}
	}

	exists, err := uc.posts.Exists(ctx, postID)
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "ReactionUsecase.React: posts.Exists failed")
	}
	if !exists {
		return domain.NotFoundError{Resource: "post"}
	}

	err = uc.reactions.Upsert(ctx, domain.Reaction{
		PostID:     postID,
		IdentityID: requester.ID,
		Emoji:      canonical,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "ReactionUsecase.React: Upsert failed")
	}

	monitoring.Reactions.WithLabelValues(canonical).Inc()
	return nil
}

func (uc *ReactionUsecase) CountsFor(ctx context.Context, postID int64) (map[string]int64, error) {
	return uc.reactions.Counts(ctx, postID)
}

// MyReaction is nil for anonymous requesters or when nothing was chosen yet.
func (uc *ReactionUsecase) MyReaction(ctx context.Context, postID int64, requester *domain.Identity) (*string, error) {
	if requester == nil {
		return nil, nil
	}
	return uc.reactions.Get(ctx, postID, requester.ID)
}

func (uc *ReactionUsecase) Summary(ctx context.Context, postID int64, requester *domain.Identity) (domain.ReactionSummary, error) {
	counts, err := uc.CountsFor(ctx, postID)
	if err != nil {
		return domain.ReactionSummary{}, err
	}
	mine, err := uc.MyReaction(ctx, postID, requester)
	if err != nil {
		return domain.ReactionSummary{}, err
	}
	return domain.ReactionSummary{Counts: counts, MyReaction: mine}, nil
}
