package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCredentialRoundTrip(t *testing.T) {
	svc := NewCredentialService(bcrypt.MinCost)

	raw, err := svc.Generate()
	require.NoError(t, err)
	assert.Len(t, raw, credentialLength)

	other, err := svc.Generate()
	require.NoError(t, err)
	assert.NotEqual(t, raw, other)

	hash, err := svc.Hash(raw)
	require.NoError(t, err)
	assert.NotContains(t, hash, raw)

	assert.True(t, svc.Verify(hash, raw))
	assert.False(t, svc.Verify(hash, other))
	assert.False(t, svc.Verify("not-a-bcrypt-hash", raw))
}

func TestCredentialServiceClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewCredentialService(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewCredentialService(99).cost)
	assert.Equal(t, 12, NewCredentialService(12).cost)
}
