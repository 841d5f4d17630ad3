package usecase

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/NefariousNGGA/backend/internal/domain"
)

const recentCommentLimit = 5

type ProfileUsecase struct {
	identities IdentityRepository
	profiles   ProfileRepository
}

func NewProfileUsecase(identities IdentityRepository, profiles ProfileRepository) *ProfileUsecase {
	return &ProfileUsecase{
		identities: identities,
		profiles:   profiles,
	}
}

// Get loads a profile by handle. Last seen is the latest comment, reaction or
// submission, falling back to the creation time.
func (uc *ProfileUsecase) Get(ctx context.Context, handle string) (domain.Profile, error) {
	if !strings.HasPrefix(handle, domain.HandlePrefix) {
		return domain.Profile{}, domain.InvalidInputError{Field: "username", Reason: "must start with @"}
	}

	identity, err := uc.identities.GetByHandle(ctx, handle)
	if err != nil {
		return domain.Profile{}, errors.Wrap(err, "ProfileUsecase.Get: GetByHandle failed")
	}
	if identity == nil {
		return domain.Profile{}, domain.NotFoundError{Resource: "user"}
	}

	lastSeen := identity.CreatedAt
	seen, err := uc.profiles.LastSeen(ctx, identity.ID)
	if err != nil {
		return domain.Profile{}, errors.Wrap(err, "ProfileUsecase.Get: LastSeen failed")
	}
	if seen != nil {
		lastSeen = *seen
	}

	comments, err := uc.profiles.RecentComments(ctx, identity.ID, recentCommentLimit)
	if err != nil {
		return domain.Profile{}, errors.Wrap(err, "ProfileUsecase.Get: RecentComments failed")
	}

	return domain.Profile{
		Identity:       *identity,
		LastSeen:       lastSeen,
		RecentComments: comments,
	}, nil
}
