package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NefariousNGGA/backend/internal/domain"
)

func TestProfileGet(t *testing.T) {
	ctx := context.Background()
	f := newLairFixture(t)
	uc := NewProfileUsecase(memIdentities{f.store}, memProfiles{f.store})
	plato := f.issue(t, "@plato")

	profile, err := uc.Get(ctx, "@plato")
	require.NoError(t, err)
	assert.Equal(t, plato.ID, profile.Identity.ID)
	assert.Equal(t, plato.CreatedAt, profile.LastSeen)
	assert.Empty(t, profile.RecentComments)

	post := f.store.addPost(plato.ID)
	for i := 0; i < 7; i++ {
		_, err := f.comments.Create(ctx, &plato, post.ID, "musing")
		require.NoError(t, err)
	}
	time.Sleep(time.Millisecond)
	_, err = f.comments.Create(ctx, &plato, post.ID, "latest")
	require.NoError(t, err)

	profile, err = uc.Get(ctx, "@plato")
	require.NoError(t, err)
	require.Len(t, profile.RecentComments, 5)
	assert.Equal(t, "latest", profile.RecentComments[0].Body)
	assert.True(t, profile.LastSeen.After(plato.CreatedAt))
}

func TestProfileGetErrors(t *testing.T) {
	ctx := context.Background()
	f := newLairFixture(t)
	uc := NewProfileUsecase(memIdentities{f.store}, memProfiles{f.store})

	_, err := uc.Get(ctx, "plato")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Get(ctx, "@nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
