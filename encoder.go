package jwt

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// ErrInvalidUTF8 indicates token input that is not valid UTF-8.
// Compact-form tokens are base64url text by construction, so anything
// failing this check never was a token.
var ErrInvalidUTF8 = errors.New("jwt: token contains invalid utf-8 bytes")

// SignerResolver picks a signer for a key ID. A nil result means the
// kid is unknown.
type SignerResolver func(kid string) *Signer

// VerifierResolver picks a verifier for a key ID. A nil result means
// the kid is unknown; verification then fails instead of falling back
// to anything weaker.
type VerifierResolver func(kid string) *Verifier

// Encoder produces tokens with a fixed header template, either under a
// single signer or by resolving one per key ID. The zero value is not
// usable; construct with NewEncoder or NewEncoderWithResolver.
type Encoder struct {
	signer  *Signer
	resolve SignerResolver
	header  Header
}

// NewEncoder returns an Encoder bound to a single signer.
// The header template's Type defaults to "JWT" when empty.
func NewEncoder(signer *Signer, header Header) *Encoder {
	if header.Type == "" {
		header.Type = "JWT"
	}

	return &Encoder{signer: signer, header: header}
}

// NewEncoderWithResolver returns an Encoder that selects the signer by
// the "kid" of the header template passed to Encode.
func NewEncoderWithResolver(resolve SignerResolver, header Header) *Encoder {
	if header.Type == "" {
		header.Type = "JWT"
	}

	return &Encoder{resolve: resolve, header: header}
}

// Encode signs "claims" under the encoder's header template, applying
// any sign options (MaxAge, WithIssuer, ...) on top of the payload.
//
// With a resolver-backed encoder the template's KeyID chooses the
// signer: an empty kid is ErrEmptyKid, an unresolvable one ErrUnknownKid.
func (e *Encoder) Encode(claims any, opts ...SignOption) ([]byte, error) {
	signer := e.signer
	if signer == nil {
		kid := e.header.KeyID
		if kid == "" {
			return nil, ErrEmptyKid
		}

		if signer = e.resolve(kid); signer == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKid, kid)
		}
	}

	payload, err := buildPayload(claims, opts)
	if err != nil {
		return nil, err
	}

	return SignEncoded(signer, e.header, payload)
}

// Sign is the package-level one-shot: it signs "claims" with the given
// signer under a default header, applying the sign options.
func Sign(signer *Signer, claims any, opts ...SignOption) ([]byte, error) {
	payload, err := buildPayload(claims, opts)
	if err != nil {
		return nil, err
	}

	return SignEncoded(signer, NewHeader(), payload)
}

// SignWithHeader is Sign with a caller-supplied header template.
func SignWithHeader(signer *Signer, header Header, claims any, opts ...SignOption) ([]byte, error) {
	payload, err := buildPayload(claims, opts)
	if err != nil {
		return nil, err
	}

	return SignEncoded(signer, header, payload)
}

func buildPayload(claims any, opts []SignOption) ([]byte, error) {
	if len(opts) == 0 {
		b, err := json.Marshal(claims)
		if err != nil {
			return nil, fmt.Errorf("jwt: claims: %w", err)
		}

		return b, nil
	}

	return Merge(claims, BuildClaims(opts))
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithLeeway widens the time-claim acceptance window to tolerate clock
// skew between issuer and consumer. Zero by default.
func WithLeeway(leeway time.Duration) DecoderOption {
	return func(d *Decoder) { d.leeway = leeway }
}

// WithBlocklist rejects tokens that were invalidated before their
// natural expiry, see Blocklist.
func WithBlocklist(b *Blocklist) DecoderOption {
	return func(d *Decoder) { d.blocklist = b }
}

// WithExpected adds exact-match checks on registered claims, see Expected.
func WithExpected(e Expected) DecoderOption {
	return func(d *Decoder) { d.expected = append(d.expected, e) }
}

// Decoder runs the full consumption pipeline: signature verification,
// time validation, optional blocklist and expectation checks, then
// unmarshals the claims into the caller's destination. It is safe for
// concurrent use.
type Decoder struct {
	verifier  *Verifier
	resolve   VerifierResolver
	leeway    time.Duration
	blocklist *Blocklist
	expected  []Expected
}

// NewDecoder returns a Decoder bound to a single verifier. The "alg"
// header of incoming tokens is informational at this level; the bound
// verifier's algorithm always runs.
func NewDecoder(verifier *Verifier, opts ...DecoderOption) *Decoder {
	d := &Decoder{verifier: verifier}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// NewDecoderWithResolver returns a Decoder that selects the verifier by
// the token's "kid" header. The token's "alg" header must name the
// resolved verifier's algorithm exactly, anything else is ErrTokenAlg.
func NewDecoderWithResolver(resolve VerifierResolver, opts ...DecoderOption) *Decoder {
	d := &Decoder{resolve: resolve}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Decode verifies and validates "token" and unmarshals its claims into
// "dest". Dest follows encoding/json pointer semantics and additionally
// honors the ",required" field tag, see Unmarshal.
//
// The pipeline order is fixed: form checks, verifier resolution,
// signature verification over the original bytes, blocklist, time
// validation, expectations and only then claim unmarshaling into dest.
func (d *Decoder) Decode(token []byte, dest any) error {
	if !utf8.Valid(token) {
		return ErrInvalidUTF8
	}

	headerAndPayload, headerB64, payloadB64, signatureB64, err := splitToken(token)
	if err != nil {
		return err
	}

	header, err := DecodeHeader(headerB64)
	if err != nil {
		return err
	}

	verifier := d.verifier
	if verifier == nil {
		if header.KeyID == "" {
			return ErrEmptyKid
		}

		if verifier = d.resolve(header.KeyID); verifier == nil {
			return fmt.Errorf("%w: %q", ErrUnknownKid, header.KeyID)
		}

		if header.Algorithm != verifier.Name() {
			return fmt.Errorf("%w: got %q, key %q requires %q",
				ErrTokenAlg, header.Algorithm, header.KeyID, verifier.Name())
		}
	}

	if err = verifier.verifySegments(headerAndPayload, signatureB64); err != nil {
		return err
	}

	if d.blocklist != nil && d.blocklist.Has(token) {
		return ErrBlocked
	}

	payload, err := Base64Decode(payloadB64)
	if err != nil {
		return fmt.Errorf("%w: payload: %v", ErrTokenForm, err)
	}

	var registered RegisteredClaims
	if err = json.Unmarshal(payload, &registered); err != nil {
		return fmt.Errorf("jwt: claims: %w", err)
	}

	if err = ValidateClaims(registered, d.leeway).Err(); err != nil {
		return err
	}

	for _, expect := range d.expected {
		if err = expect.Validate(registered); err != nil {
			return err
		}
	}

	if dest == nil {
		return nil
	}

	return Unmarshal(payload, dest)
}

// VerifyToken runs the whole pipeline without unmarshaling the claims
// into a caller value. Useful when only the yes/no answer matters.
func (d *Decoder) VerifyToken(token []byte) error {
	return d.Decode(token, nil)
}
