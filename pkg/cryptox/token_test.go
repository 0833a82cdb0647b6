package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	t.Run("produces url-safe base64 of the right length", func(t *testing.T) {
		token, err := GenerateToken(TokenSize128)
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(token)
		require.NoError(t, err)
		require.Len(t, raw, TokenSize128)
	})

	t.Run("rejects non-positive sizes", func(t *testing.T) {
		_, err := GenerateToken(0)
		require.Error(t, err)

		_, err = GenerateToken(-4)
		require.Error(t, err)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		seen := make(map[string]struct{})
		for range 100 {
			tok, err := GenerateToken(TokenSize256)
			require.NoError(t, err)
			_, dup := seen[tok]
			require.False(t, dup)
			seen[tok] = struct{}{}
		}
	})
}

func TestPasswordRoundTrip(t *testing.T) {
	t.Parallel()

	pw, err := GeneratePassword()
	require.NoError(t, err)
	require.Len(t, pw, 16)

	hash, err := HashPassword(pw)
	require.NoError(t, err)
	require.Contains(t, hash, "$argon2id$v=19$")

	require.NoError(t, VerifyPassword(pw, hash))
	require.Error(t, VerifyPassword("wrong-password", hash))
}

func TestVerifyPasswordRejectsMalformedHashes(t *testing.T) {
	t.Parallel()

	for _, h := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA",
	} {
		require.Error(t, VerifyPassword("pw", h))
	}
}
