package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	for _, password := range []string{"secret123", "", "pässwörd", strings.Repeat("x", 72)} {
		hash, err := HashPassword(password)
		require.NoError(t, err)
		assert.True(t, VerifyPassword(password, hash), "password %q should verify", password)
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("secret123")
	require.NoError(t, err)
	second, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword("secret123", first))
	assert.True(t, VerifyPassword("secret123", second))
}

func TestVerifyPasswordRejectsOtherPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.False(t, VerifyPassword("secret124", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestVerifyPasswordAcceptsDigestAtOtherCost(t *testing.T) {
	// Digests written with a different cost must keep verifying
	digest, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, VerifyPassword("secret123", string(digest)))
	assert.False(t, VerifyPassword("secret", string(digest)))
}

func TestVerifyPasswordRejectsMalformedDigest(t *testing.T) {
	assert.False(t, VerifyPassword("secret123", "not-a-bcrypt-hash"))
}

func TestHashPasswordTooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", 73))
	assert.Error(t, err)
}
