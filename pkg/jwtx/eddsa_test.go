package jwtx_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/suntowerrwa/portal/pkg/jwtx"
)

func newTestSigner(t *testing.T, kid string) (*jwtx.EdDSASigner, *jwtx.KeySet) {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	signer := jwtx.NewSignerFromKey(kid, priv)
	keys := jwtx.NewKeySet()
	keys.Add(kid, signer.PublicKey())
	return signer, keys
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	signer, keys := newTestSigner(t, "k1")
	verifier := jwtx.NewVerifierEdDSA(keys, "suntower-portal")

	claims := jwtx.NewAccessClaims(
		"user-1", "sess-1", "admin@suntower.test", "admin",
		[]string{"portal:read", "admin:write"},
		time.Minute, "suntower-portal", time.Now(),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "sess-1", got.SID)
	require.Equal(t, "admin", got.Role)
	require.Contains(t, got.Scopes, "admin:write")
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	signer, keys := newTestSigner(t, "k1")
	verifier := jwtx.NewVerifierEdDSA(keys, "someone-else")

	claims := jwtx.NewAccessClaims(
		"user-1", "sess-1", "", "resident", nil,
		time.Minute, "suntower-portal", time.Now(),
	)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestVerifyRejectsExpired(t *testing.T) {
	signer, keys := newTestSigner(t, "k1")
	verifier := jwtx.NewVerifierEdDSA(keys, "suntower-portal")

	claims := jwtx.NewAccessClaims(
		"user-1", "sess-1", "", "resident", nil,
		time.Minute, "suntower-portal", time.Now().Add(-time.Hour),
	)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsUnknownKID(t *testing.T) {
	signer, _ := newTestSigner(t, "k1")
	_, otherKeys := newTestSigner(t, "k2")
	verifier := jwtx.NewVerifierEdDSA(otherKeys, "suntower-portal")

	claims := jwtx.NewAccessClaims(
		"user-1", "sess-1", "", "resident", nil,
		time.Minute, "suntower-portal", time.Now(),
	)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}
