package jwt

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/x509"
	"fmt"
	"math/big"
)

// algECDSA implements Alg for ES256 (P-256), ES384 (P-384) and
// ES512 (P-521). The signature wire format is the concatenation of the
// fixed-width big-endian r and s values, not the ASN.1 DER form the
// stdlib produces by default; that is what every other JWT
// implementation expects on the wire.
type algECDSA struct {
	name      string
	hasher    crypto.Hash
	keySize   int
	curveBits int
}

// Parse implements the AlgParser interface, see ParsePrivateKeyECDSA
// and ParsePublicKeyECDSA.
func (a *algECDSA) Parse(private, public []byte) (privateKey PrivateKey, publicKey PublicKey, err error) {
	if len(private) > 0 {
		privateKey, err = ParsePrivateKeyECDSA(private)
		if err != nil {
			return nil, nil, fmt.Errorf("ECDSA: private key: %w", err)
		}
	}

	if len(public) > 0 {
		publicKey, err = ParsePublicKeyECDSA(public)
		if err != nil {
			return nil, nil, fmt.Errorf("ECDSA: public key: %w", err)
		}
	}

	return
}

func (a *algECDSA) Name() string {
	return a.name
}

func (a *algECDSA) Sign(key PrivateKey, headerAndPayload []byte) ([]byte, error) {
	privateKey, ok := key.(*ecdsa.PrivateKey)
	if !ok {
		return nil, ErrInvalidKey
	}

	// A key on the wrong curve would produce r/s values that do not fit
	// the fixed width this algorithm declares; refuse it outright.
	curveBits := privateKey.Curve.Params().BitSize
	if a.curveBits != curveBits {
		return nil, ErrInvalidKey
	}

	h := a.hasher.New()
	// header.payload
	_, err := h.Write(headerAndPayload)
	if err != nil {
		return nil, err
	}

	hashed := h.Sum(nil)
	r, s, err := ecdsa.Sign(rand.Reader, privateKey, hashed)
	if err != nil {
		return nil, err
	}

	keyBytes := curveBits / 8
	if curveBits%8 > 0 {
		keyBytes++
	}

	rBytes := r.Bytes()
	rBytesPadded := make([]byte, keyBytes)
	copy(rBytesPadded[keyBytes-len(rBytes):], rBytes)

	sBytes := s.Bytes()
	sBytesPadded := make([]byte, keyBytes)
	copy(sBytesPadded[keyBytes-len(sBytes):], sBytes)

	signature := append(rBytesPadded, sBytesPadded...)
	return signature, nil
}

func (a *algECDSA) Verify(key PublicKey, headerAndPayload []byte, signature []byte) error {
	publicKey, ok := key.(*ecdsa.PublicKey)
	if !ok {
		if privateKey, ok := key.(*ecdsa.PrivateKey); ok {
			publicKey = &privateKey.PublicKey
		} else {
			return ErrInvalidKey
		}
	}

	// Same curve check as Sign: a key on the wrong curve is a key
	// problem, not a signature mismatch.
	if a.curveBits != publicKey.Curve.Params().BitSize {
		return ErrInvalidKey
	}

	if len(signature) != 2*a.keySize {
		return ErrTokenSignature
	}

	r := big.NewInt(0).SetBytes(signature[:a.keySize])
	s := big.NewInt(0).SetBytes(signature[a.keySize:])

	h := a.hasher.New()
	// header.payload
	_, err := h.Write(headerAndPayload)
	if err != nil {
		return err
	}

	hashed := h.Sum(nil)
	if !ecdsa.Verify(publicKey, hashed, r, s) {
		return ErrTokenSignature
	}

	return nil
}

// Key Helpers.

// MustLoadECDSA accepts private and public PEM file paths
// and returns a pair of private and public ECDSA keys.
// It panics on any read or parse failure.
func MustLoadECDSA(privateKeyFilename, publicKeyFilename string) (*ecdsa.PrivateKey, *ecdsa.PublicKey) {
	privateKey, err := LoadPrivateKeyECDSA(privateKeyFilename)
	if err != nil {
		panicHandler(err)
	}

	publicKey, err := LoadPublicKeyECDSA(publicKeyFilename)
	if err != nil {
		panicHandler(err)
	}

	return privateKey, publicKey
}

// LoadPrivateKeyECDSA loads and parses a PEM-encoded ECDSA private key from a file.
func LoadPrivateKeyECDSA(filename string) (*ecdsa.PrivateKey, error) {
	b, err := ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return ParsePrivateKeyECDSA(b)
}

// LoadPublicKeyECDSA loads and parses a PEM-encoded ECDSA public key
// (or a certificate carrying one) from a file.
func LoadPublicKeyECDSA(filename string) (*ecdsa.PublicKey, error) {
	b, err := ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return ParsePublicKeyECDSA(b)
}

// ParsePrivateKeyECDSA decodes and parses PEM-encoded ECDSA private key
// bytes in SEC1 or PKCS#8 form.
func ParsePrivateKeyECDSA(key []byte) (*ecdsa.PrivateKey, error) {
	block, err := decodePEM(key)
	if err != nil {
		return nil, err
	}

	privateKey, err := x509.ParseECPrivateKey(block.Bytes)
	if err != nil {
		if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
			pKey, ok := key.(*ecdsa.PrivateKey)
			if !ok {
				return nil, fmt.Errorf("%w: expected a type of *ecdsa.PrivateKey", ErrInvalidKey)
			}

			privateKey = pKey
		} else {
			return nil, err
		}
	}

	return privateKey, nil
}

// ParsePublicKeyECDSA decodes and parses PEM-encoded ECDSA public key
// bytes in PKIX form, or an X.509 certificate embedding an ECDSA public key.
func ParsePublicKeyECDSA(key []byte) (*ecdsa.PublicKey, error) {
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

	publicKey, ok := parsedKey.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: expected a type of *ecdsa.PublicKey", ErrInvalidKey)
	}

	return publicKey, nil
}

// ParseCertificateECDSA extracts the ECDSA public key out of a
// PEM-encoded X.509 certificate. Verification only.
func ParseCertificateECDSA(certPEM []byte) (*ecdsa.PublicKey, error) {
	parsedKey, err := parseCertificatePublicKey(certPEM)
	if err != nil {
		return nil, err
	}

	publicKey, ok := parsedKey.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: certificate does not carry an ECDSA public key", ErrInvalidKey)
	}

	return publicKey, nil
}
