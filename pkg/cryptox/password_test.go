package cryptox_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/suntowerrwa/portal/pkg/cryptox"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := cryptox.HashPassword("S3cret!pass")
	require.NoError(t, err)
	require.Contains(t, hash, "$argon2id$v=19$")

	require.NoError(t, cryptox.VerifyPassword("S3cret!pass", hash))
	require.Error(t, cryptox.VerifyPassword("wrong", hash))
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	require.Error(t, cryptox.VerifyPassword("x", "not-a-hash"))
	require.Error(t, cryptox.VerifyPassword("x", "$bcrypt$v=19$m=1,t=1,p=1$aaaa$bbbb"))
}

func TestGeneratePasswordShape(t *testing.T) {
	pw, err := cryptox.GeneratePassword()
	require.NoError(t, err)
	require.Len(t, pw, cryptox.PasswordLength)

	for _, c := range pw {
		ok := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		require.True(t, ok, "unexpected character %q", c)
	}
}

// Temporary passwords are handed out for new accounts; repeated invocations
// must not collide in any realistic batch.
func TestGeneratePasswordDistinct(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for range 1000 {
		pw, err := cryptox.GeneratePassword()
		require.NoError(t, err)

		_, dup := seen[pw]
		require.False(t, dup, "duplicate password generated: %s", pw)
		seen[pw] = struct{}{}
	}
}

func TestGenerateTokenAndFingerprint(t *testing.T) {
	tok, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	require.Len(t, tok, 43) // 32 bytes base64url, no padding

	fp := cryptox.FingerprintToken(tok)
	require.Equal(t, fp, cryptox.FingerprintToken(tok))
	require.NotEqual(t, fp, cryptox.FingerprintToken(tok+"x"))

	_, err = cryptox.GenerateToken(0)
	require.Error(t, err)
}
