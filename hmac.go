package jwt

import (
	"crypto"
	"crypto/hmac"
	_ "crypto/sha256" // ignore:lint
	_ "crypto/sha512"
)

// algHMAC implements Alg for the HS256/HS384/HS512 family.
// The same raw secret signs and verifies; no encoding conversion
// is applied to the key material.
type algHMAC struct {
	name   string
	hasher crypto.Hash
}

func (a *algHMAC) Name() string {
	return a.name
}

func (a *algHMAC) Sign(key PrivateKey, headerAndPayload []byte) ([]byte, error) {
	secret, ok := key.([]byte)
	if !ok {
		return nil, ErrInvalidKey
	}

	h := hmac.New(a.hasher.New, secret)
	// header.payload
	_, err := h.Write(headerAndPayload)
	if err != nil {
		return nil, err // this should never happen according to the internal docs.
	}

	return h.Sum(nil), nil
}

// Verify recomputes the MAC over the signed input and compares it to the
// supplied signature in constant time.
func (a *algHMAC) Verify(key PublicKey, headerAndPayload []byte, signature []byte) error {
	expectedSignature, err := a.Sign(key, headerAndPayload)
	if err != nil {
		return err
	}

	if !hmac.Equal(expectedSignature, signature) {
		return ErrTokenSignature
	}

	return nil
}

// Key Helper.

// MustLoadHMAC accepts a filename or a raw value.
// If a file exists under that name its plain text contents become the
// HMAC shared secret, otherwise the argument itself is the secret.
// It panics if the file exists but cannot be read.
func MustLoadHMAC(filenameOrRaw string) []byte {
	key, err := LoadHMAC(filenameOrRaw)
	if err != nil {
		panicHandler(err)
	}

	return key
}

// LoadHMAC accepts a filename or a raw value, see MustLoadHMAC.
func LoadHMAC(filenameOrRaw string) ([]byte, error) {
	if fileExists(filenameOrRaw) {
		// load contents from file.
		return ReadFile(filenameOrRaw)
	}

	// otherwise just cast the argument to []byte.
	return []byte(filenameOrRaw), nil
}
