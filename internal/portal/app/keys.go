package app

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	"github.com/suntowerrwa/portal/pkg/jwtx"
)

// InitSigningKeys loads the Ed25519 signing key and builds the verification
// key set.
//
// With PORTAL_SIGNING_KEY_FILE set, the key is read from a PKCS8 PEM file and
// sessions survive restarts. Without it an ephemeral key is generated, which
// invalidates every outstanding access token on restart; refresh tokens are
// opaque and unaffected.
func InitSigningKeys(cfg Config, logger *slog.Logger) (jwtx.Signer, *jwtx.KeySet, error) {
	var signer jwtx.Signer

	if cfg.SigningKeyFile != "" {
		pemBytes, err := os.ReadFile(cfg.SigningKeyFile)
		if err != nil {
			return nil, nil, fmt.Errorf("read signing key: %w", err)
		}

		priv, err := jwtx.ParsePrivateKeyPEM(pemBytes)
		if err != nil {
			return nil, nil, err
		}
		signer = jwtx.NewSignerFromKey(keyID(priv.Public().(ed25519.PublicKey)), priv)
		logger.Info("signing key loaded", "path", cfg.SigningKeyFile, "kid", signer.KID())
	} else {
		_, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, nil, fmt.Errorf("generate signing key: %w", err)
		}
		signer = jwtx.NewSignerFromKey(keyID(priv.Public().(ed25519.PublicKey)), priv)
		logger.Warn("no signing key configured, generated ephemeral key", "kid", signer.KID())
	}

	keys := jwtx.NewKeySet()
	keys.Add(signer.KID(), signer.PublicKey())
	return signer, keys, nil
}

// keyID derives a stable kid from the public key so restarts with the same
// persistent key keep issuing tokens verifiable against cached JWKS copies.
func keyID(pub ed25519.PublicKey) string {
	sum := sha256.Sum256(pub)
	return hex.EncodeToString(sum[:8])
}
