package jwt

import "fmt"

// Signer pairs an algorithm name with its adapter and a signing key.
// A Signer is immutable after construction and safe for concurrent
// reuse; every Sign call keeps its intermediate state call-local.
//
// Use the per-algorithm factory functions (SignerHS256, SignerRS256,
// SignerES256, ...) with raw key material, or NewSigner with an
// already-parsed crypto key.
type Signer struct {
	name string
	alg  Alg
	key  PrivateKey
}

// NewSigner bundles an algorithm with an already-parsed signing key.
// The key is type-checked lazily: a mismatched key surfaces as
// ErrInvalidKey on the first Sign call.
func NewSigner(alg Alg, key PrivateKey) *Signer {
	return &Signer{name: alg.Name(), alg: alg, key: key}
}

// Name returns the algorithm name this signer stamps into Header.Algorithm.
func (s *Signer) Name() string {
	return s.name
}

// Sign signs the base64url "header.payload" input and returns the raw signature.
func (s *Signer) Sign(headerAndPayload []byte) ([]byte, error) {
	return s.alg.Sign(s.key, headerAndPayload)
}

// Verifier pairs an algorithm name with its adapter and a verification
// key. Like Signer it is immutable and safe for concurrent reuse.
//
// The "alg" header of a token handed to Verify is informational only:
// the Verifier always runs the algorithm it was built with, so a forged
// header cannot downgrade verification. Callers that resolve verifiers
// by key ID get the header/registry agreement check from the Keys
// registry and the Decoder instead.
type Verifier struct {
	name string
	alg  Alg
	key  PublicKey
}

// NewVerifier bundles an algorithm with an already-parsed verification key.
func NewVerifier(alg Alg, key PublicKey) *Verifier {
	return &Verifier{name: alg.Name(), alg: alg, key: key}
}

// Name returns the algorithm name this verifier runs.
func (v *Verifier) Name() string {
	return v.name
}

// Verify checks a whole compact-form token: it splits off the signature
// segment, base64url-decodes it and verifies it over the untouched
// "header.payload" bytes. Byte-for-byte fidelity matters here, the
// signed input is reconstructed from the original token and never from
// re-encoded JSON.
//
// A cryptographic mismatch is ErrTokenSignature; a token that is not in
// compact form at all is ErrTokenForm.
func (v *Verifier) Verify(token []byte) error {
	headerAndPayload, _, _, signature, err := splitToken(token)
	if err != nil {
		return err
	}

	return v.verifySegments(headerAndPayload, signature)
}

func (v *Verifier) verifySegments(headerAndPayload, signatureB64 []byte) error {
	signature, err := Base64Decode(signatureB64)
	if err != nil {
		return fmt.Errorf("%w: signature: %v", ErrTokenForm, err)
	}

	return v.alg.Verify(v.key, headerAndPayload, signature)
}

// HMAC family. The secret is used as-is, no encoding conversion.

// SignerHS256 returns an HS256 signer over a shared secret.
func SignerHS256(secret []byte) *Signer { return NewSigner(HS256, secret) }

// SignerHS384 returns an HS384 signer over a shared secret.
func SignerHS384(secret []byte) *Signer { return NewSigner(HS384, secret) }

// SignerHS512 returns an HS512 signer over a shared secret.
func SignerHS512(secret []byte) *Signer { return NewSigner(HS512, secret) }

// VerifierHS256 returns an HS256 verifier over the same shared secret.
func VerifierHS256(secret []byte) *Verifier { return NewVerifier(HS256, secret) }

// VerifierHS384 returns an HS384 verifier over the same shared secret.
func VerifierHS384(secret []byte) *Verifier { return NewVerifier(HS384, secret) }

// VerifierHS512 returns an HS512 verifier over the same shared secret.
func VerifierHS512(secret []byte) *Verifier { return NewVerifier(HS512, secret) }

// RSA PKCS#1 v1.5 family. Signers take a PEM private key, verifiers a
// PEM public key or, through the Cert variants, an X.509 certificate
// whose embedded public key is extracted (verification only).

// SignerRS256 returns an RS256 signer from a PEM-encoded RSA private key.
func SignerRS256(privateKeyPEM []byte) (*Signer, error) { return rsaSigner(RS256, privateKeyPEM) }

// SignerRS384 returns an RS384 signer from a PEM-encoded RSA private key.
func SignerRS384(privateKeyPEM []byte) (*Signer, error) { return rsaSigner(RS384, privateKeyPEM) }

// SignerRS512 returns an RS512 signer from a PEM-encoded RSA private key.
func SignerRS512(privateKeyPEM []byte) (*Signer, error) { return rsaSigner(RS512, privateKeyPEM) }

// VerifierRS256 returns an RS256 verifier from a PEM-encoded RSA public key.
func VerifierRS256(publicKeyPEM []byte) (*Verifier, error) { return rsaVerifier(RS256, publicKeyPEM) }

// VerifierRS384 returns an RS384 verifier from a PEM-encoded RSA public key.
func VerifierRS384(publicKeyPEM []byte) (*Verifier, error) { return rsaVerifier(RS384, publicKeyPEM) }

// VerifierRS512 returns an RS512 verifier from a PEM-encoded RSA public key.
func VerifierRS512(publicKeyPEM []byte) (*Verifier, error) { return rsaVerifier(RS512, publicKeyPEM) }

// VerifierRS256Cert returns an RS256 verifier from a PEM-encoded certificate.
func VerifierRS256Cert(certPEM []byte) (*Verifier, error) { return rsaCertVerifier(RS256, certPEM) }

// VerifierRS384Cert returns an RS384 verifier from a PEM-encoded certificate.
func VerifierRS384Cert(certPEM []byte) (*Verifier, error) { return rsaCertVerifier(RS384, certPEM) }

// VerifierRS512Cert returns an RS512 verifier from a PEM-encoded certificate.
func VerifierRS512Cert(certPEM []byte) (*Verifier, error) { return rsaCertVerifier(RS512, certPEM) }

// RSA-PSS family. Same key material as plain RSA.

// SignerPS256 returns a PS256 signer from a PEM-encoded RSA private key.
func SignerPS256(privateKeyPEM []byte) (*Signer, error) { return rsaSigner(PS256, privateKeyPEM) }

// SignerPS384 returns a PS384 signer from a PEM-encoded RSA private key.
func SignerPS384(privateKeyPEM []byte) (*Signer, error) { return rsaSigner(PS384, privateKeyPEM) }

// SignerPS512 returns a PS512 signer from a PEM-encoded RSA private key.
func SignerPS512(privateKeyPEM []byte) (*Signer, error) { return rsaSigner(PS512, privateKeyPEM) }

// VerifierPS256 returns a PS256 verifier from a PEM-encoded RSA public key.
func VerifierPS256(publicKeyPEM []byte) (*Verifier, error) { return rsaVerifier(PS256, publicKeyPEM) }

// VerifierPS384 returns a PS384 verifier from a PEM-encoded RSA public key.
func VerifierPS384(publicKeyPEM []byte) (*Verifier, error) { return rsaVerifier(PS384, publicKeyPEM) }

// VerifierPS512 returns a PS512 verifier from a PEM-encoded RSA public key.
func VerifierPS512(publicKeyPEM []byte) (*Verifier, error) { return rsaVerifier(PS512, publicKeyPEM) }

// VerifierPS256Cert returns a PS256 verifier from a PEM-encoded certificate.
func VerifierPS256Cert(certPEM []byte) (*Verifier, error) { return rsaCertVerifier(PS256, certPEM) }

// VerifierPS384Cert returns a PS384 verifier from a PEM-encoded certificate.
func VerifierPS384Cert(certPEM []byte) (*Verifier, error) { return rsaCertVerifier(PS384, certPEM) }

// VerifierPS512Cert returns a PS512 verifier from a PEM-encoded certificate.
func VerifierPS512Cert(certPEM []byte) (*Verifier, error) { return rsaCertVerifier(PS512, certPEM) }

// ECDSA family. The curve must match the algorithm: a P-384 key given
// to SignerES256 fails on the first Sign call with ErrInvalidKey.

// SignerES256 returns an ES256 (P-256) signer from a PEM-encoded ECDSA private key.
func SignerES256(privateKeyPEM []byte) (*Signer, error) { return ecdsaSigner(ES256, privateKeyPEM) }

// SignerES384 returns an ES384 (P-384) signer from a PEM-encoded ECDSA private key.
func SignerES384(privateKeyPEM []byte) (*Signer, error) { return ecdsaSigner(ES384, privateKeyPEM) }

// SignerES512 returns an ES512 (P-521) signer from a PEM-encoded ECDSA private key.
func SignerES512(privateKeyPEM []byte) (*Signer, error) { return ecdsaSigner(ES512, privateKeyPEM) }

// VerifierES256 returns an ES256 verifier from a PEM-encoded ECDSA public key.
func VerifierES256(publicKeyPEM []byte) (*Verifier, error) { return ecdsaVerifier(ES256, publicKeyPEM) }

// VerifierES384 returns an ES384 verifier from a PEM-encoded ECDSA public key.
func VerifierES384(publicKeyPEM []byte) (*Verifier, error) { return ecdsaVerifier(ES384, publicKeyPEM) }

// VerifierES512 returns an ES512 verifier from a PEM-encoded ECDSA public key.
func VerifierES512(publicKeyPEM []byte) (*Verifier, error) { return ecdsaVerifier(ES512, publicKeyPEM) }

// VerifierES256Cert returns an ES256 verifier from a PEM-encoded certificate.
func VerifierES256Cert(certPEM []byte) (*Verifier, error) { return ecdsaCertVerifier(ES256, certPEM) }

// VerifierES384Cert returns an ES384 verifier from a PEM-encoded certificate.
func VerifierES384Cert(certPEM []byte) (*Verifier, error) { return ecdsaCertVerifier(ES384, certPEM) }

// VerifierES512Cert returns an ES512 verifier from a PEM-encoded certificate.
func VerifierES512Cert(certPEM []byte) (*Verifier, error) { return ecdsaCertVerifier(ES512, certPEM) }

// EdDSA.

// SignerEdDSA returns an EdDSA signer from a PEM-encoded Ed25519 private key.
func SignerEdDSA(privateKeyPEM []byte) (*Signer, error) {
	key, err := ParsePrivateKeyEdDSA(privateKeyPEM)
	if err != nil {
		return nil, err
	}

	return NewSigner(EdDSA, key), nil
}

// VerifierEdDSA returns an EdDSA verifier from a PEM-encoded Ed25519 public key.
func VerifierEdDSA(publicKeyPEM []byte) (*Verifier, error) {
	key, err := ParsePublicKeyEdDSA(publicKeyPEM)
	if err != nil {
		return nil, err
	}

	return NewVerifier(EdDSA, key), nil
}

// The "none" pair, the only entry point to unsecured tokens.

// SignerNone returns the signer for explicitly-unsecured tokens.
// The produced tokens carry an empty signature segment.
func SignerNone() *Signer { return NewSigner(NONE, nil) }

// VerifierNone returns the verifier that accepts unsecured tokens.
// It still rejects tokens carrying a non-empty signature.
func VerifierNone() *Verifier { return NewVerifier(NONE, nil) }

func rsaSigner(alg Alg, privateKeyPEM []byte) (*Signer, error) {
	key, err := ParsePrivateKeyRSA(privateKeyPEM)
	if err != nil {
		return nil, err
	}

	return NewSigner(alg, key), nil
}

func rsaVerifier(alg Alg, publicKeyPEM []byte) (*Verifier, error) {
	key, err := ParsePublicKeyRSA(publicKeyPEM)
	if err != nil {
		return nil, err
	}

	return NewVerifier(alg, key), nil
}

func rsaCertVerifier(alg Alg, certPEM []byte) (*Verifier, error) {
	key, err := ParseCertificateRSA(certPEM)
	if err != nil {
		return nil, err
	}

	return NewVerifier(alg, key), nil
}

func ecdsaSigner(alg Alg, privateKeyPEM []byte) (*Signer, error) {
	key, err := ParsePrivateKeyECDSA(privateKeyPEM)
	if err != nil {
		return nil, err
	}

	return NewSigner(alg, key), nil
}

func ecdsaVerifier(alg Alg, publicKeyPEM []byte) (*Verifier, error) {
	key, err := ParsePublicKeyECDSA(publicKeyPEM)
	if err != nil {
		return nil, err
	}

	return NewVerifier(alg, key), nil
}

func ecdsaCertVerifier(alg Alg, certPEM []byte) (*Verifier, error) {
	key, err := ParseCertificateECDSA(certPEM)
	if err != nil {
		return nil, err
	}

	return NewVerifier(alg, key), nil
}
