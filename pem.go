package jwt

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/youmark/pkcs8"
)

// ErrMissingPEM indicates that key material could not be decoded because
// the PEM headers are malformed or absent entirely.
var ErrMissingPEM = errors.New("jwt: malformed or missing PEM headers")

// decodePEM extracts the DER bytes out of a single PEM block.
func decodePEM(key []byte) (*pem.Block, error) {
	block, _ := pem.Decode(key)
	if block == nil {
		return nil, ErrMissingPEM
	}

	return block, nil
}

// ParseEncryptedPrivateKey decodes a passphrase-protected PKCS#8 PEM
// private key. The returned value is one of *rsa.PrivateKey,
// *ecdsa.PrivateKey or ed25519.PrivateKey; pass it to NewSigner together
// with the matching algorithm.
func ParseEncryptedPrivateKey(key, password []byte) (PrivateKey, error) {
	block, err := decodePEM(key)
	if err != nil {
		return nil, err
	}

	privateKey, err := pkcs8.ParsePKCS8PrivateKey(block.Bytes, password)
	if err != nil {
		return nil, fmt.Errorf("encrypted private key: %w", err)
	}

	return privateKey, nil
}

// parseCertificatePublicKey extracts the embedded public key out of a
// PEM-encoded X.509 certificate. Certificate key material is usable for
// verification only, never for signing.
func parseCertificatePublicKey(certPEM []byte) (PublicKey, error) {
	block, err := decodePEM(certPEM)
	if err != nil {
		return nil, err
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("certificate: %w", err)
	}

	return cert.PublicKey, nil
}
