package hasher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	h := New(bcrypt.MinCost)
	hashed, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hashed)
	assert.True(t, h.Compare(hashed, "secret1"))
	assert.False(t, h.Compare(hashed, "secret2"))
}

func TestNewFallsBackToDefaultCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, New(99).Cost)
	assert.Equal(t, bcrypt.DefaultCost, New(0).Cost)
}
