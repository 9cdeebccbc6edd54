package jwt

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyKid indicates a key-ID lookup with an empty kid.
	ErrEmptyKid = errors.New("jwt: kid is empty")
	// ErrUnknownKid indicates a kid with no registered key.
	ErrUnknownKid = errors.New("jwt: unknown kid")
)

// Key is one entry of a Keys registry: an algorithm bound to a key
// pair under a stable ID. Private may be nil for verify-only entries.
type Key struct {
	ID      string
	Alg     Alg
	Public  PublicKey
	Private PrivateKey
}

// Keys maps key IDs to their keys. It backs multi-tenant setups where
// each issuer or rotation generation signs under its own kid.
//
// The map is meant to be filled once at startup and read thereafter;
// concurrent mutation needs external locking.
type Keys map[string]*Key

// Register adds a key pair under "kid", replacing any previous entry.
func (keys Keys) Register(alg Alg, kid string, public PublicKey, private PrivateKey) {
	keys[kid] = &Key{ID: kid, Alg: alg, Public: public, Private: private}
}

// RegisterPEM parses PEM key material through the algorithm's parser
// and registers the result. Either side may be empty.
func (keys Keys) RegisterPEM(alg Alg, kid string, publicPEM, privatePEM []byte) error {
	parser, ok := alg.(AlgParser)
	if !ok {
		return fmt.Errorf("%w: algorithm %q cannot parse PEM key material", ErrInvalidKey, alg.Name())
	}

	private, public, err := parser.Parse(privatePEM, publicPEM)
	if err != nil {
		return err
	}

	keys.Register(alg, kid, public, private)
	return nil
}

// Get returns the key registered under "kid".
func (keys Keys) Get(kid string) (*Key, error) {
	if kid == "" {
		return nil, ErrEmptyKid
	}

	key, ok := keys[kid]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKid, kid)
	}

	return key, nil
}

// SignerFor returns a Signer for the key under "kid".
func (keys Keys) SignerFor(kid string) (*Signer, error) {
	key, err := keys.Get(kid)
	if err != nil {
		return nil, err
	}

	if key.Private == nil {
		return nil, fmt.Errorf("%w: key %q has no private part", ErrInvalidKey, kid)
	}

	return NewSigner(key.Alg, key.Private), nil
}

// VerifierFor returns a Verifier for the key under "kid". Verification
// falls back to the private key when no public part was registered,
// which the RSA, ECDSA and EdDSA adapters all support.
func (keys Keys) VerifierFor(kid string) (*Verifier, error) {
	key, err := keys.Get(kid)
	if err != nil {
		return nil, err
	}

	k := key.Public
	if k == nil {
		k = key.Private
	}

	return NewVerifier(key.Alg, k), nil
}

// SignerResolver adapts the registry to the Encoder's resolver shape.
// Lookup failures map to a nil signer, which Encode reports as
// ErrUnknownKid.
func (keys Keys) SignerResolver() SignerResolver {
	return func(kid string) *Signer {
		signer, err := keys.SignerFor(kid)
		if err != nil {
			return nil
		}

		return signer
	}
}

// VerifierResolver adapts the registry to the Decoder's resolver shape.
func (keys Keys) VerifierResolver() VerifierResolver {
	return func(kid string) *Verifier {
		verifier, err := keys.VerifierFor(kid)
		if err != nil {
			return nil
		}

		return verifier
	}
}

// SignToken signs "claims" under the key registered at "kid", stamping
// the kid into the header so consumers can resolve the right key back.
func (keys Keys) SignToken(kid string, claims any, opts ...SignOption) ([]byte, error) {
	signer, err := keys.SignerFor(kid)
	if err != nil {
		return nil, err
	}

	header := NewHeader()
	header.KeyID = kid
	return SignWithHeader(signer, header, claims, opts...)
}

// VerifyToken verifies a token against the key its "kid" header names
// and unmarshals the claims into "dest". The token's "alg" must match
// the registered key's algorithm; there is no fallback on a failed
// lookup, the error is final.
func (keys Keys) VerifyToken(token []byte, dest any, opts ...DecoderOption) error {
	return NewDecoderWithResolver(keys.VerifierResolver(), opts...).Decode(token, dest)
}
