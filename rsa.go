package jwt

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
)

// algRSA implements Alg for RS256, RS384 and RS512:
// RSA signatures with the deterministic PKCS#1 v1.5 padding scheme.
type algRSA struct {
	name   string
	hasher crypto.Hash
}

// Parse implements the AlgParser interface, see ParsePrivateKeyRSA
// and ParsePublicKeyRSA.
func (a *algRSA) Parse(private, public []byte) (privateKey PrivateKey, publicKey PublicKey, err error) {
	if len(private) > 0 {
		privateKey, err = ParsePrivateKeyRSA(private)
		if err != nil {
			return nil, nil, fmt.Errorf("RSA: private key: %w", err)
		}
	}

	if len(public) > 0 {
		publicKey, err = ParsePublicKeyRSA(public)
		if err != nil {
			return nil, nil, fmt.Errorf("RSA: public key: %w", err)
		}
	}

	return
}

func (a *algRSA) Name() string {
	return a.name
}

func (a *algRSA) Sign(key PrivateKey, headerAndPayload []byte) ([]byte, error) {
	privateKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, ErrInvalidKey
	}

	h := a.hasher.New()
	// header.payload
	_, err := h.Write(headerAndPayload)
	if err != nil {
		return nil, err
	}

	hashed := h.Sum(nil)
	return rsa.SignPKCS1v15(rand.Reader, privateKey, a.hasher, hashed)
}

func (a *algRSA) Verify(key PublicKey, headerAndPayload []byte, signature []byte) error {
	publicKey, ok := key.(*rsa.PublicKey)
	if !ok {
		if privateKey, ok := key.(*rsa.PrivateKey); ok {
			publicKey = &privateKey.PublicKey
		} else {
			return ErrInvalidKey
		}
	}

	h := a.hasher.New()
	// header.payload
	_, err := h.Write(headerAndPayload)
	if err != nil {
		return err
	}

	hashed := h.Sum(nil)
	if err = rsa.VerifyPKCS1v15(publicKey, a.hasher, hashed, signature); err != nil {
		return fmt.Errorf("%w: %v", ErrTokenSignature, err)
	}

	return nil
}

// Key Helpers.

// MustLoadRSA accepts private and public PEM file paths
// and returns a pair of private and public RSA keys.
// It panics on any read or parse failure.
func MustLoadRSA(privateKeyFilename, publicKeyFilename string) (*rsa.PrivateKey, *rsa.PublicKey) {
	privateKey, err := LoadPrivateKeyRSA(privateKeyFilename)
	if err != nil {
		panicHandler(err)
	}

	publicKey, err := LoadPublicKeyRSA(publicKeyFilename)
	if err != nil {
		panicHandler(err)
	}

	return privateKey, publicKey
}

// LoadPrivateKeyRSA loads and parses a PEM-encoded RSA private key from a file.
func LoadPrivateKeyRSA(filename string) (*rsa.PrivateKey, error) {
	b, err := ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return ParsePrivateKeyRSA(b)
}

// LoadPublicKeyRSA loads and parses a PEM-encoded RSA public key
// (or a certificate carrying one) from a file.
func LoadPublicKeyRSA(filename string) (*rsa.PublicKey, error) {
	b, err := ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return ParsePublicKeyRSA(b)
}

// ParsePrivateKeyRSA decodes and parses PEM-encoded RSA private key bytes
// in PKCS#1 or PKCS#8 form.
func ParsePrivateKeyRSA(key []byte) (*rsa.PrivateKey, error) {
	block, err := decodePEM(key)
	if err != nil {
		return nil, err
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
			pKey, ok := key.(*rsa.PrivateKey)
			if !ok {
				return nil, fmt.Errorf("%w: expected a type of *rsa.PrivateKey", ErrInvalidKey)
			}

			privateKey = pKey
		} else {
			return nil, err
		}
	}

	return privateKey, nil
}

// ParsePublicKeyRSA decodes and parses PEM-encoded RSA public key bytes
// in PKIX form, or an X.509 certificate embedding an RSA public key.
func ParsePublicKeyRSA(key []byte) (*rsa.PublicKey, error) {
	block, err := decodePEM(key)
	if err != nil {
		return nil, err
	}

	parsedKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		if cert, err := x509.ParseCertificate(block.Bytes); err == nil {
			parsedKey = cert.PublicKey
		} else {
			return nil, err
		}
	}

	publicKey, ok := parsedKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: expected a type of *rsa.PublicKey", ErrInvalidKey)
	}

	return publicKey, nil
}

// ParseCertificateRSA extracts the RSA public key out of a PEM-encoded
// X.509 certificate. The result verifies tokens; it can never sign them.
func ParseCertificateRSA(certPEM []byte) (*rsa.PublicKey, error) {
	parsedKey, err := parseCertificatePublicKey(certPEM)
	if err != nil {
		return nil, err
	}

	publicKey, ok := parsedKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: certificate does not carry an RSA public key", ErrInvalidKey)
	}

	return publicKey, nil
}
