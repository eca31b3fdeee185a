package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse-battery", hash)

	assert.True(t, CheckPasswordHash("correct-horse-battery", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestGenerateRandomTokenLength(t *testing.T) {
	token := GenerateRandomToken(6)
	assert.Len(t, token, 6)

	// Two draws colliding would be a charset^-6 fluke.
	assert.NotEqual(t, token, GenerateRandomToken(6))
}
