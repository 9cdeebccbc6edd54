package jwt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTokenForm indicates that a token is not in compact form:
	// wrong number of segments or a segment that is not valid base64url.
	ErrTokenForm = errors.New("jwt: invalid token form")
	// ErrTokenAlg indicates a mismatch between the algorithm the token
	// header declares and the algorithm the resolved key is bound to.
	ErrTokenAlg = errors.New("jwt: unexpected token algorithm")
	// ErrMissing indicates an empty or absent token input.
	ErrMissing = errors.New("jwt: token is empty")
	// ErrClaimsNotObject indicates a payload whose JSON form is not an
	// object. RFC 7519 requires the claims set to be a JSON object.
	ErrClaimsNotObject = errors.New("jwt: claims are not a json object")
)

// JWT is the in-memory shape of a token: a typed header plus a typed
// claims payload. It is what Decode returns and what Sign consumes.
//
// The type parameter fixes the claims shape at compile time; use
// MapClaims when the payload is open-ended.
type JWT[T Claims] struct {
	Header Header
	Claims T
}

// New wraps a claims payload with the default header ("typ":"JWT").
// The algorithm slot stays empty until Sign stamps it.
func New[T Claims](claims T) *JWT[T] {
	return &JWT[T]{Header: NewHeader(), Claims: claims}
}

// NewWithHeader wraps a claims payload with a caller-supplied header,
// for tokens that carry extra header parameters such as "kid" or "cty".
// Sign still owns the "alg" slot.
func NewWithHeader[T Claims](header Header, claims T) *JWT[T] {
	return &JWT[T]{Header: header, Claims: claims}
}

// Sign serializes the token and signs it with the given signer,
// returning the compact form.
//
// The header is copied and its Algorithm field is overwritten with the
// signer's name before encoding, so the "alg" on the wire always tells
// the truth about the signature that follows. The receiver is not
// mutated. Claims that do not serialize to a JSON object are rejected
// with ErrClaimsNotObject before any signing happens.
//
// The "none" signer produces the unsecured form with a trailing dot and
// an empty third segment.
func (t *JWT[T]) Sign(signer *Signer) ([]byte, error) {
	header := t.Header
	header.Algorithm = signer.Name()

	headerB64, err := header.Encode()
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(t.Claims)
	if err != nil {
		return nil, fmt.Errorf("jwt: claims: %w", err)
	}

	if len(payload) == 0 || payload[0] != '{' {
		return nil, ErrClaimsNotObject
	}

	return encodeToken(signer, headerB64, Base64Encode(payload))
}

// SignEncoded signs pre-serialized claim bytes under the given header.
// It backs Sign and the option-merging entry points; the payload must
// already be a JSON object.
func SignEncoded(signer *Signer, header Header, payload []byte) ([]byte, error) {
	header.Algorithm = signer.Name()

	headerB64, err := header.Encode()
	if err != nil {
		return nil, err
	}

	if len(payload) == 0 || payload[0] != '{' {
		return nil, ErrClaimsNotObject
	}

	return encodeToken(signer, headerB64, Base64Encode(payload))
}

func encodeToken(signer *Signer, headerB64, payloadB64 []byte) ([]byte, error) {
	headerAndPayload := joinParts(headerB64, payloadB64)

	signature, err := signer.Sign(headerAndPayload)
	if err != nil {
		return nil, err
	}

	// An empty signature still gets its separator: unsecured tokens
	// keep the three-segment shape with a trailing dot.
	return joinParts(headerAndPayload, Base64Encode(signature)), nil
}

// Decode verifies a compact-form token and unmarshals its header and
// claims into a typed envelope.
//
// Verification runs over the original base64url bytes of the token
// before either JSON document is touched, so nothing attacker-shaped is
// parsed until the signature has held up. Use DecodeUnverified only
// when that guarantee is explicitly not wanted.
//
// Decode performs no time validation; call ValidateClaims on the result
// or use a Decoder for the full pipeline.
func Decode[T Claims](verifier *Verifier, token []byte) (*JWT[T], error) {
	headerAndPayload, headerB64, payloadB64, signatureB64, err := splitToken(token)
	if err != nil {
		return nil, err
	}

	if err = verifier.verifySegments(headerAndPayload, signatureB64); err != nil {
		return nil, err
	}

	return decodeSegments[T](headerB64, payloadB64)
}

// DecodeUnverified unmarshals a token without any signature check.
// The name is the warning: the result is attacker-controlled data and
// must never feed an authorization decision. Intended for routing
// inspection, debugging and tests.
func DecodeUnverified[T Claims](token []byte) (*JWT[T], error) {
	_, headerB64, payloadB64, _, err := splitToken(token)
	if err != nil {
		return nil, err
	}

	return decodeSegments[T](headerB64, payloadB64)
}

func decodeSegments[T Claims](headerB64, payloadB64 []byte) (*JWT[T], error) {
	header, err := DecodeHeader(headerB64)
	if err != nil {
		return nil, err
	}

	payload, err := Base64Decode(payloadB64)
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrTokenForm, err)
	}

	trimmed := bytes.TrimLeft(payload, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrClaimsNotObject
	}

	out := &JWT[T]{Header: header}
	if err = json.Unmarshal(payload, &out.Claims); err != nil {
		return nil, fmt.Errorf("jwt: claims: %w", err)
	}

	return out, nil
}

// Verify checks only the signature of a token, decoding nothing.
func Verify(verifier *Verifier, token []byte) error {
	return verifier.Verify(token)
}

// ValidateClaims runs the standard time checks on the decoded claims.
// See the package-level ValidateClaims for the exact semantics.
func (t *JWT[T]) ValidateClaims(leeway time.Duration) error {
	return ValidateClaims(t.Claims, leeway).Err()
}

// splitToken cuts a compact-form token into its three segments without
// copying. It accepts the canonical "h.p.s" shape, the unsecured
// "h.p." shape (empty signature) and, leniently, the bare two-segment
// "h.p" shape some unsecured-token producers emit. Anything else is
// ErrTokenForm; an empty input is ErrMissing.
func splitToken(token []byte) (headerAndPayload, header, payload, signature []byte, err error) {
	if len(token) == 0 {
		return nil, nil, nil, nil, ErrMissing
	}

	firstDot := bytes.IndexByte(token, '.')
	if firstDot <= 0 {
		return nil, nil, nil, nil, ErrTokenForm
	}

	lastDot := bytes.LastIndexByte(token, '.')
	if lastDot == firstDot {
		// Two segments only: tolerated for unsecured tokens.
		return token, token[:firstDot], token[firstDot+1:], nil, nil
	}

	header = token[:firstDot]
	payload = token[firstDot+1 : lastDot]
	signature = token[lastDot+1:]

	if bytes.IndexByte(payload, '.') >= 0 || len(payload) == 0 {
		return nil, nil, nil, nil, ErrTokenForm
	}

	return token[:lastDot], header, payload, signature, nil
}
