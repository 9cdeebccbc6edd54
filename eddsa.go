package jwt

import (
	"crypto/ed25519"
	"crypto/x509"
	"fmt"
)

// algEdDSA implements Alg for Ed25519 signatures (RFC 8037).
// Signing is deterministic, no per-call randomness is consumed.
type algEdDSA struct {
	name string
}

// Parse implements the AlgParser interface, see ParsePrivateKeyEdDSA
// and ParsePublicKeyEdDSA.
func (a *algEdDSA) Parse(private, public []byte) (privateKey PrivateKey, publicKey PublicKey, err error) {
	if len(private) > 0 {
		privateKey, err = ParsePrivateKeyEdDSA(private)
		if err != nil {
			return nil, nil, fmt.Errorf("EdDSA: private key: %w", err)
		}
	}

	if len(public) > 0 {
		publicKey, err = ParsePublicKeyEdDSA(public)
		if err != nil {
			return nil, nil, fmt.Errorf("EdDSA: public key: %w", err)
		}
	}

	return
}

func (a *algEdDSA) Name() string {
	return a.name
}

func (a *algEdDSA) Sign(key PrivateKey, headerAndPayload []byte) ([]byte, error) {
	privateKey, ok := key.(ed25519.PrivateKey)
	if !ok {
		return nil, ErrInvalidKey
	}

	if len(privateKey) != ed25519.PrivateKeySize {
		return nil, ErrInvalidKey
	}

	return ed25519.Sign(privateKey, headerAndPayload), nil
}

func (a *algEdDSA) Verify(key PublicKey, headerAndPayload []byte, signature []byte) error {
	publicKey, ok := key.(ed25519.PublicKey)
	if !ok {
		if privateKey, ok := key.(ed25519.PrivateKey); ok {
			publicKey = privateKey.Public().(ed25519.PublicKey)
		} else {
			return ErrInvalidKey
		}
	}

	if len(publicKey) != ed25519.PublicKeySize {
		return ErrInvalidKey
	}

	if !ed25519.Verify(publicKey, headerAndPayload, signature) {
		return ErrTokenSignature
	}

	return nil
}

// Key Helpers.

// ParsePrivateKeyEdDSA decodes and parses PEM-encoded Ed25519 private
// key bytes in PKCS#8 form.
func ParsePrivateKeyEdDSA(key []byte) (ed25519.PrivateKey, error) {
	block, err := decodePEM(key)
	if err != nil {
		return nil, err
	}

	parsedKey, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}

	privateKey, ok := parsedKey.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: expected a type of ed25519.PrivateKey", ErrInvalidKey)
	}

	return privateKey, nil
}

// ParsePublicKeyEdDSA decodes and parses PEM-encoded Ed25519 public
// key bytes in PKIX form.
func ParsePublicKeyEdDSA(key []byte) (ed25519.PublicKey, error) {
	block, err := decodePEM(key)
	if err != nil {
		return nil, err
	}

	parsedKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}

	publicKey, ok := parsedKey.(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: expected a type of ed25519.PublicKey", ErrInvalidKey)
	}

	return publicKey, nil
}
