package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	hasher, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := hasher.Hash("pw12345678")
	require.NoError(t, err)
	assert.NotEqual(t, "pw12345678", hash)

	assert.True(t, hasher.Verify("pw12345678", hash))
	assert.False(t, hasher.Verify("pw12345679", hash))
	assert.False(t, hasher.Verify("", hash))
}

func TestBcryptHasher_SaltedOutput(t *testing.T) {
	hasher, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	first, err := hasher.Hash("same-password")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("same-password", first))
	assert.True(t, hasher.Verify("same-password", second))
}

func TestBcryptHasher_VerifyMalformedHash(t *testing.T) {
	hasher, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	assert.False(t, hasher.Verify("whatever", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Verify("whatever", ""))
}

func TestNewBcryptHasher_CostBounds(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost - 1)
	assert.Error(t, err)
	_, err = NewBcryptHasher(bcrypt.MaxCost + 1)
	assert.Error(t, err)
}
