package jwt

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeysSignVerifyToken(t *testing.T) {
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	edPublic, edPrivate, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	keys := Keys{}
	keys.Register(RS256, "app-2024", &rsaKey.PublicKey, rsaKey)
	keys.Register(EdDSA, "app-2025", edPublic, edPrivate)
	keys.Register(HS256, "legacy", testSecret, testSecret)

	for _, kid := range []string{"app-2024", "app-2025", "legacy"} {
		t.Run(kid, func(t *testing.T) {
			token, err := keys.SignToken(kid, MapClaims{"sub": "alice"})
			require.NoError(t, err)

			got, err := DecodeUnverified[MapClaims](token)
			require.NoError(t, err)
			require.Equal(t, kid, got.Header.KeyID)

			var claims MapClaims
			require.NoError(t, keys.VerifyToken(token, &claims))
			require.Equal(t, "alice", claims["sub"])
		})
	}
}

func TestKeysLookupFailures(t *testing.T) {
	keys := Keys{}
	keys.Register(HS256, "k1", testSecret, testSecret)

	_, err := keys.Get("")
	require.ErrorIs(t, err, ErrEmptyKid)

	_, err = keys.Get("nope")
	require.ErrorIs(t, err, ErrUnknownKid)

	_, err = keys.SignToken("nope", MapClaims{})
	require.ErrorIs(t, err, ErrUnknownKid)

	// A token signed under an unregistered kid never verifies, there is
	// no fallback key.
	header := NewHeader()
	header.KeyID = "rotated-away"
	token, err := SignWithHeader(SignerHS256(testSecret), header, MapClaims{"sub": "x"})
	require.NoError(t, err)
	require.ErrorIs(t, keys.VerifyToken(token, nil), ErrUnknownKid)
}

func TestKeysVerifyOnlyEntry(t *testing.T) {
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	signingKeys := Keys{}
	signingKeys.Register(RS256, "k1", nil, rsaKey)

	verifyKeys := Keys{}
	verifyKeys.Register(RS256, "k1", &rsaKey.PublicKey, nil)

	token, err := signingKeys.SignToken("k1", MapClaims{"sub": "alice"})
	require.NoError(t, err)
	require.NoError(t, verifyKeys.VerifyToken(token, nil))

	_, err = verifyKeys.SignerFor("k1")
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestKeysRegisterPEM(t *testing.T) {
	privatePEM, publicPEM := generateRSAPEM(t)

	keys := Keys{}
	require.NoError(t, keys.RegisterPEM(RS256, "pem-key", publicPEM, privatePEM))

	token, err := keys.SignToken("pem-key", MapClaims{"sub": "alice"})
	require.NoError(t, err)
	require.NoError(t, keys.VerifyToken(token, nil))

	// HMAC has no PEM form to parse.
	require.ErrorIs(t, keys.RegisterPEM(HS256, "h", nil, nil), ErrInvalidKey)
}
