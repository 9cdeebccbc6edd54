package jwt

import (
	"encoding/json"
	"fmt"
)

// Header is the typed JOSE header of a token (RFC 7515 §4).
//
// Every field is optional except Algorithm, which is never set by the
// caller: Sign overwrites it with the name of the signer in use on every
// call, whatever its previous value was. Decoding fills the struct from
// the wire and ignores unknown fields for forward compatibility.
//
// The SHA-256 certificate thumbprint uses the wire name "x5t#S256",
// which no Go identifier can carry; the struct tag does the mapping.
type Header struct {
	Type      string `json:"typ,omitempty"`
	Algorithm string `json:"alg,omitempty"`
	// ContentType declares the type of a nested payload (RFC 7519 §5.2).
	ContentType string `json:"cty,omitempty"`
	// KeyID selects among multiple candidate keys during verification.
	KeyID string `json:"kid,omitempty"`
	// JWKSetURL points to a JWK Set carrying the verification key.
	// The value travels untouched; fetching and parsing JWK documents
	// is outside this package.
	JWKSetURL string `json:"jku,omitempty"`
	// JSONWebKey is the raw embedded JWK, kept unparsed for the same reason.
	JSONWebKey json.RawMessage `json:"jwk,omitempty"`
	// X.509 fields: URL, certificate chain and the SHA-1/SHA-256
	// certificate thumbprints.
	X509URL            string   `json:"x5u,omitempty"`
	X509CertChain      []string `json:"x5c,omitempty"`
	X509Thumbprint     string   `json:"x5t,omitempty"`
	X509ThumbprintS256 string   `json:"x5t#S256,omitempty"`
	// Critical lists header extensions the receiver must understand.
	Critical []string `json:"crit,omitempty"`
}

// NewHeader returns a Header with the defaults applied.
func NewHeader() Header {
	return Header{Type: "JWT"}
}

// Encode serializes the header to JSON and base64url-encodes the result.
func (h Header) Encode() ([]byte, error) {
	b, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("jwt: header: %w", err)
	}

	return Base64Encode(b), nil
}

// DecodeHeader reads back a Header from a base64url-encoded JSON segment.
// Unknown fields are dropped silently.
func DecodeHeader(segment []byte) (Header, error) {
	var h Header

	b, err := Base64Decode(segment)
	if err != nil {
		return h, fmt.Errorf("%w: header: %v", ErrTokenForm, err)
	}

	if err = json.Unmarshal(b, &h); err != nil {
		return h, fmt.Errorf("jwt: header: %w", err)
	}

	return h, nil
}
