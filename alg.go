package jwt

import (
	"crypto"
	"crypto/rsa"
	_ "crypto/sha256" // ignore:lint
	_ "crypto/sha512"
	"errors"
	"fmt"
)

var (
	// ErrTokenSignature indicates that the JWT signature verification has failed.
	// It is returned when the computed signature does not match the one carried
	// by the token: tampering, a wrong verification key or a token signed with
	// a different algorithm. Intentionally distinct from the malformed-input
	// errors so callers can report the two differently.
	ErrTokenSignature = errors.New("jwt: invalid token signature")
	// ErrInvalidKey indicates that a key of the wrong type or role was given
	// to an algorithm, e.g. a public key passed to an RSA signer or an ECDSA
	// key on a curve other than the one the algorithm declares.
	ErrInvalidKey = errors.New("jwt: invalid key")
)

type (
	// PrivateKey is any signing key accepted by an Alg:
	// []byte for HMAC, *rsa.PrivateKey, *ecdsa.PrivateKey or ed25519.PrivateKey.
	PrivateKey = any
	// PublicKey is any verification key accepted by an Alg:
	// []byte for HMAC, *rsa.PublicKey, *ecdsa.PublicKey or ed25519.PublicKey.
	PublicKey = any
)

// Alg is the signature algorithm adapter contract.
// One implementation exists per algorithm family and all of them are
// stateless: a single instance is safe for concurrent reuse and every
// call keeps its intermediate buffers local.
type Alg interface {
	// Name returns the "alg" header value, case-sensitive per RFC 7518.
	Name() string
	// Sign signs the base64url-encoded "header.payload" input and
	// returns the raw (not yet encoded) signature bytes.
	// It fails with ErrInvalidKey when the key type does not fit the algorithm.
	Sign(key PrivateKey, headerAndPayload []byte) ([]byte, error)
	// Verify checks the raw signature over the exact "header.payload"
	// bytes that were signed. A cryptographic mismatch is reported as
	// ErrTokenSignature, a structurally unusable key as ErrInvalidKey.
	Verify(key PublicKey, headerAndPayload []byte, signature []byte) error
}

// AlgParser is implemented by algorithms that know how to parse
// their own PEM key material. At least one of private/public should
// be non-empty; a private key also yields its public half.
type AlgParser interface {
	Parse(private, public []byte) (PrivateKey, PublicKey, error)
}

// The algorithm singletons. Each pairs a wire name with a hash width
// and, where relevant, a padding mode or curve.
var (
	// NONE is the unsecured "none" algorithm: empty signature on sign,
	// only an empty signature accepted on verify. It is never selected
	// implicitly; callers must construct a none signer/verifier on purpose.
	NONE Alg = &algNONE{}

	// HMAC-SHA family (symmetric, shared secret).
	HS256 Alg = &algHMAC{"HS256", crypto.SHA256}
	HS384 Alg = &algHMAC{"HS384", crypto.SHA384}
	HS512 Alg = &algHMAC{"HS512", crypto.SHA512}

	// RSA PKCS#1 v1.5 family (deterministic padding).
	RS256 Alg = &algRSA{"RS256", crypto.SHA256}
	RS384 Alg = &algRSA{"RS384", crypto.SHA384}
	RS512 Alg = &algRSA{"RS512", crypto.SHA512}

	// RSA-PSS family (probabilistic padding, salted per signature).
	PS256 Alg = &algRSAPSS{"PS256", &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthAuto, Hash: crypto.SHA256}}
	PS384 Alg = &algRSAPSS{"PS384", &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthAuto, Hash: crypto.SHA384}}
	PS512 Alg = &algRSAPSS{"PS512", &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthAuto, Hash: crypto.SHA512}}

	// ECDSA family. Signatures are the fixed-width r||s concatenation,
	// not ASN.1 DER, for interoperability with other JWT implementations.
	// Note that ES512 runs on the P-521 curve; the name follows the hash.
	ES256 Alg = &algECDSA{"ES256", crypto.SHA256, 32, 256}
	ES384 Alg = &algECDSA{"ES384", crypto.SHA384, 48, 384}
	ES512 Alg = &algECDSA{"ES512", crypto.SHA512, 66, 521}

	// EdDSA runs on Ed25519 (RFC 8037).
	EdDSA Alg = &algEdDSA{"EdDSA"}

	allAlgs = []Alg{
		NONE,
		HS256,
		HS384,
		HS512,
		RS256,
		RS384,
		RS512,
		PS256,
		PS384,
		PS512,
		ES256,
		ES384,
		ES512,
		EdDSA,
	}
)

// ErrTokenUnsupportedAlg indicates an "alg" value no implementation
// exists for. Case matters per RFC 7518; guessing on a near-miss would
// open the door to algorithm confusion.
var ErrTokenUnsupportedAlg = errors.New("jwt: unsupported algorithm")

// ParseAlg returns the algorithm implementation for a case-sensitive
// "alg" header value.
func ParseAlg(name string) (Alg, error) {
	for _, alg := range allAlgs {
		if alg.Name() == name {
			return alg, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrTokenUnsupportedAlg, name)
}
