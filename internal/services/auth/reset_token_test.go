package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResetToken(t *testing.T) {
	token, tokenHash, err := newResetToken()
	require.NoError(t, err)

	// 32 bytes em hexadecimal
	assert.Len(t, token, 64)
	assert.Len(t, tokenHash, 64)
	assert.NotEqual(t, token, tokenHash)

	// O hash armazenado bate com o token enviado por e-mail
	assert.Equal(t, tokenHash, hashResetToken(token))
}

func TestNewResetToken_Unique(t *testing.T) {
	a, _, err := newResetToken()
	require.NoError(t, err)

	b, _, err := newResetToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHashResetToken_Deterministic(t *testing.T) {
	assert.Equal(t, hashResetToken("abc"), hashResetToken("abc"))
	assert.NotEqual(t, hashResetToken("abc"), hashResetToken("abd"))
}
