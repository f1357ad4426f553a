package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cure-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cure-password", hash)

	assert.True(t, CheckPassword(hash, "s3cure-password"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
}

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	h1, err := HashPassword("same-input")
	require.NoError(t, err)
	h2, err := HashPassword("same-input")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestGenerateJoinCode(t *testing.T) {
	code := GenerateJoinCode(8)
	require.Len(t, code, 8)
	for _, ch := range code {
		assert.True(t, strings.ContainsRune(joinCodeAlphabet, ch), "unexpected character %q", ch)
	}

	// ambiguous characters never appear
	assert.NotContains(t, code, "0")
	assert.NotContains(t, code, "O")
	assert.NotContains(t, code, "1")
	assert.NotContains(t, code, "I")
}

func TestGenerateRandomToken(t *testing.T) {
	tok := GenerateRandomToken(32)
	assert.Len(t, tok, 32)
	assert.NotEqual(t, tok, GenerateRandomToken(32))
}
