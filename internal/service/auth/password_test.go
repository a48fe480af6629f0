package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	hashed, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)
	require.NotEmpty(t, hashed)
	assert.NotEqual(t, "correct horse battery", hashed)

	assert.NoError(t, hasher.Compare(hashed, "correct horse battery"))
	assert.ErrorIs(t, hasher.Compare(hashed, "wrong password"), ErrIncorrectPassword)
	assert.ErrorIs(t, hasher.Compare("not a bcrypt hash", "anything"), ErrIncorrectPassword)
}

func TestBcryptHasherCostFallback(t *testing.T) {
	t.Parallel()

	// Out-of-range costs must not panic; they fall back to the default.
	hasher := NewBcryptHasher(-1)

	hashed, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
