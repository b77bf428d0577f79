package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashAndCompare(t *testing.T) {
	hash, err := HashPassword("Secret1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "Secret1", hash)

	assert.NoError(t, ComparePassword(hash, "Secret1"))
	assert.Error(t, ComparePassword(hash, "secret1"))
}

func TestPasswordHashesDiffer(t *testing.T) {
	first, err := HashPassword("Secret1", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("Secret1", bcrypt.MinCost)
	require.NoError(t, err)

	// bcrypt salts, so equal inputs never share a hash.
	assert.NotEqual(t, first, second)
}
