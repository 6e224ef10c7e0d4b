package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	passwords := []string{"secret1", "other12", "p@ss wörd", "123456"}

	for _, p := range passwords {
		hash, err := h.Hash(p)
		require.NoError(t, err)
		assert.NotEqual(t, p, hash)

		ok, err := h.Verify(hash, p)
		require.NoError(t, err)
		assert.True(t, ok, "password %q", p)

		for _, other := range passwords {
			if other == p {
				continue
			}
			ok, err := h.Verify(hash, other)
			require.NoError(t, err)
			assert.False(t, ok, "hash of %q accepted %q", p, other)
		}
	}
}

func TestPasswordHasher_Salted(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	a, err := h.Hash("secret1")
	require.NoError(t, err)
	b, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPasswordHasher_CostFixed(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost + 1)
	hash, err := h.Hash("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)
}

func TestPasswordHasher_InvalidCostFallsBack(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(99).cost)
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	ok, err := h.Verify("not-a-bcrypt-hash", "secret1")
	require.Error(t, err)
	assert.False(t, ok)
}
