package jwt

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAlg(t *testing.T) {
	for _, name := range []string{
		"none",
		"HS256", "HS384", "HS512",
		"RS256", "RS384", "RS512",
		"PS256", "PS384", "PS512",
		"ES256", "ES384", "ES512",
		"EdDSA",
	} {
		alg, err := ParseAlg(name)
		require.NoError(t, err)
		require.Equal(t, name, alg.Name())
	}
}

func TestParseAlgUnknown(t *testing.T) {
	for _, name := range []string{"", "HS128", "hs256", "NONE", "RS256 "} {
		_, err := ParseAlg(name)
		require.ErrorIs(t, err, ErrTokenUnsupportedAlg, "name %q", name)
	}
}

// testSignVerify runs a sign/verify round trip plus a tampering check
// through a raw algorithm adapter.
func testSignVerify(t *testing.T, alg Alg, private PrivateKey, public PublicKey) {
	t.Helper()

	input := []byte("eyJhbGciOiJYWCJ9.eyJzdWIiOiIxMjM0NTY3ODkwIn0")

	signature, err := alg.Sign(private, input)
	require.NoError(t, err)

	require.NoError(t, alg.Verify(public, input, signature))

	tampered := append([]byte{}, input...)
	tampered[len(tampered)-1] ^= 0x01
	require.ErrorIs(t, alg.Verify(public, tampered, signature), ErrTokenSignature)
}

func TestAlgHMAC(t *testing.T) {
	secret := []byte("sercrethatmaycontainch@r$32chars!")

	for _, alg := range []Alg{HS256, HS384, HS512} {
		t.Run(alg.Name(), func(t *testing.T) {
			testSignVerify(t, alg, secret, secret)

			require.ErrorIs(t, alg.Verify([]byte("wrong secret"), []byte("x.y"), nil), ErrTokenSignature)

			_, err := alg.Sign("not a byte slice", []byte("x.y"))
			require.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestAlgRSA(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	for _, alg := range []Alg{RS256, RS384, RS512, PS256, PS384, PS512} {
		t.Run(alg.Name(), func(t *testing.T) {
			testSignVerify(t, alg, key, &key.PublicKey)

			// A private key also works for verification.
			testSignVerify(t, alg, key, key)

			_, err := alg.Sign([]byte("not an rsa key"), []byte("x.y"))
			require.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestAlgECDSA(t *testing.T) {
	curves := map[string]elliptic.Curve{
		"ES256": elliptic.P256(),
		"ES384": elliptic.P384(),
		"ES512": elliptic.P521(),
	}

	for _, alg := range []Alg{ES256, ES384, ES512} {
		t.Run(alg.Name(), func(t *testing.T) {
			key, err := ecdsa.GenerateKey(curves[alg.Name()], rand.Reader)
			require.NoError(t, err)

			testSignVerify(t, alg, key, &key.PublicKey)
			testSignVerify(t, alg, key, key)
		})
	}
}

func TestAlgECDSACurveMismatch(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)

	_, err = ES256.Sign(key, []byte("x.y"))
	require.ErrorIs(t, err, ErrInvalidKey)

	// Verification with a wrong-curve key is the same key problem,
	// never reported as a mere signature mismatch.
	right, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	signature, err := ES256.Sign(right, []byte("x.y"))
	require.NoError(t, err)

	require.ErrorIs(t, ES256.Verify(&key.PublicKey, []byte("x.y"), signature), ErrInvalidKey)
	require.ErrorIs(t, ES256.Verify(key, []byte("x.y"), signature), ErrInvalidKey)
}

func TestAlgECDSASignatureWidth(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	input := []byte("x.y")
	signature, err := ES256.Sign(key, input)
	require.NoError(t, err)
	require.Len(t, signature, 64)

	// A truncated signature is rejected before any curve math runs.
	require.ErrorIs(t, ES256.Verify(&key.PublicKey, input, signature[:63]), ErrTokenSignature)
}

func TestAlgEdDSA(t *testing.T) {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	testSignVerify(t, EdDSA, private, public)
	testSignVerify(t, EdDSA, private, private)

	_, err = EdDSA.Sign([]byte("short"), []byte("x.y"))
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestAlgNone(t *testing.T) {
	signature, err := NONE.Sign(nil, []byte("x.y"))
	require.NoError(t, err)
	require.Empty(t, signature)

	require.NoError(t, NONE.Verify(nil, []byte("x.y"), nil))
	require.ErrorIs(t, NONE.Verify(nil, []byte("x.y"), []byte("sig")), ErrTokenSignature)
}

// Tokens signed under one algorithm must not verify under another,
// whatever the key material.
func TestCrossAlgorithmRejection(t *testing.T) {
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	secret := []byte("shared secret of decent length!!")

	signers := map[string]*Signer{
		"RS256": NewSigner(RS256, rsaKey),
		"PS256": NewSigner(PS256, rsaKey),
		"ES256": NewSigner(ES256, ecKey),
		"HS256": NewSigner(HS256, secret),
	}
	verifiers := map[string]*Verifier{
		"RS256": NewVerifier(RS256, &rsaKey.PublicKey),
		"PS256": NewVerifier(PS256, &rsaKey.PublicKey),
		"ES256": NewVerifier(ES256, &ecKey.PublicKey),
		"HS256": NewVerifier(HS256, secret),
	}

	for signName, signer := range signers {
		token, err := Sign(signer, MapClaims{"sub": "1234567890"})
		require.NoError(t, err)

		for verifyName, verifier := range verifiers {
			if signName == verifyName {
				require.NoError(t, verifier.Verify(token), "%s self", signName)
				continue
			}

			require.Error(t, verifier.Verify(token), "signed %s, verified %s", signName, verifyName)
		}
	}
}
