package usecase

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NefariousNGGA/backend/internal/domain"
)

func TestCommentCreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newLairFixture(t)
	plato := f.issue(t, "@plato")
	post := f.store.addPost(plato.ID)

	cases := []struct {
		name      string
		requester *domain.Identity
		postID    int64
		body      string
		target    error
	}{
		{"anonymous", nil, post.ID, "hi", domain.ErrUnauthorized},
		{"missing post id", &plato, 0, "hi", domain.ErrInvalidInput},
		{"blank body", &plato, post.ID, "   ", domain.ErrInvalidInput},
		{"unknown post", &plato, post.ID + 100, "hi", domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.comments.Create(ctx, tc.requester, tc.postID, tc.body)
			assert.ErrorIs(t, err, tc.target)
		})
	}
	assert.Empty(t, f.store.comments)
}

func TestCommentCreateKeepsBodyVerbatim(t *testing.T) {
	ctx := context.Background()
	f := newLairFixture(t)
	plato := f.issue(t, "@plato")
	socrates := f.issue(t, "@socrates")
	post := f.store.addPost(plato.ID)

	result, err := f.comments.Create(ctx, &plato, post.ID, "  is x<y @socrates and y>z? <b>&amp;</b>  ")
	require.NoError(t, err)
	assert.NotZero(t, result.CommentID)
	assert.False(t, result.CreatedAt.IsZero())
	assert.Equal(t, 1, result.Notifications)

	comments, err := f.comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "is x<y @socrates and y>z? <b>&amp;</b>", comments[0].Body)
	assert.Equal(t, plato.ID, comments[0].IdentityID)
	assert.Len(t, f.store.notificationsFor(socrates.ID), 1)
}

func TestCommentCreateRollsBackWhenFanOutFails(t *testing.T) {
	ctx := context.Background()
	f := newLairFixture(t)
	plato := f.issue(t, "@plato")
	socrates := f.issue(t, "@socrates")
	post := f.store.addPost(plato.ID)

	f.store.failNotifications = domain.NewStoreError("notifications.create", errors.New("connection reset"))

	_, err := f.comments.Create(ctx, &socrates, post.ID, "hey @plato")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Empty(t, f.store.comments)
	assert.Empty(t, f.store.notificationsFor(plato.ID))
	assert.Empty(t, f.notifier.sent)

	f.store.failNotifications = nil

	result, err := f.comments.Create(ctx, &socrates, post.ID, "hey @plato")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Notifications)
	assert.Len(t, f.store.comments, 1)
}
