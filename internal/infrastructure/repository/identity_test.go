package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NefariousNGGA/backend/internal/domain"
	"github.com/NefariousNGGA/backend/internal/usecase"
)

func TestIdentityRepositoryCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	db := createTestDB(t)
	repo := NewIdentityRepository(db)

	created, err := repo.Create(ctx, usecase.NewIdentity{
		Handle:         "@plato",
		DisplayName:    "Plato",
		CredentialHash: "hash",
		LookupKey:      "key-1",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = repo.Create(ctx, usecase.NewIdentity{Handle: "@plato", DisplayName: "Again", CredentialHash: "h", LookupKey: "key-2"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	exists, err := repo.HandleExists(ctx, "@plato")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.HandleExists(ctx, "@socrates")
	require.NoError(t, err)
	assert.False(t, exists)

	got, err := repo.GetByHandle(ctx, "@plato")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)

	byID, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Plato", byID.DisplayName)

	missing, err := repo.GetByHandle(ctx, "@nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	cred, err := repo.GetCredentialByLookupKey(ctx, "key-1")
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Equal(t, "hash", cred.Hash)
	assert.Equal(t, created.ID, cred.Identity.ID)

	cred, err = repo.GetCredentialByLookupKey(ctx, "key-unknown")
	require.NoError(t, err)
	assert.Nil(t, cred)
}

func TestIdentityRepositoryFindByHandles(t *testing.T) {
	ctx := context.Background()
	db := createTestDB(t)
	repo := NewIdentityRepository(db)
	plato := seedIdentity(t, db, "@plato")
	socrates := seedIdentity(t, db, "@socrates")

	found, err := repo.FindByHandles(ctx, []string{"@socrates", "@ghost", "@plato"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, plato.ID, found[0].ID)
	assert.Equal(t, socrates.ID, found[1].ID)

	found, err = repo.FindByHandles(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestIdentityRepositoryScanCredentials(t *testing.T) {
	ctx := context.Background()
	db := createTestDB(t)
	repo := NewIdentityRepository(db)

	var want []int64
	for _, handle := range []string{"@a_one", "@b_two", "@c_three", "@d_four", "@e_five"} {
		want = append(want, seedIdentity(t, db, handle).ID)
	}

	var visited []int64
	err := repo.ScanCredentials(ctx, 2, func(cred usecase.StoredCredential) bool {
		visited = append(visited, cred.Identity.ID)
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, want, visited)

	visited = nil
	err = repo.ScanCredentials(ctx, 2, func(cred usecase.StoredCredential) bool {
		visited = append(visited, cred.Identity.ID)
		return len(visited) < 3
	})
	require.NoError(t, err)
	assert.Equal(t, want[:3], visited)
}
