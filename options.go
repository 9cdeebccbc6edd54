package jwt

import (
	"time"

	"github.com/google/uuid"
)

// SignOption mutates the registered claims that Sign and Encoder.Encode
// splice into the payload on top of the caller's claims.
type SignOption func(*RegisteredClaims)

// BuildClaims applies the options to an empty RegisteredClaims.
func BuildClaims(opts []SignOption) RegisteredClaims {
	var c RegisteredClaims
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// MaxAge stamps "iat" with the current Clock time and "exp" with
// now+maxAge. Durations of a second or less are ignored.
func MaxAge(maxAge time.Duration) SignOption {
	return func(c *RegisteredClaims) {
		if maxAge <= time.Second {
			return
		}

		now := Clock()
		c.IssuedAt = NewNumericDate(now)
		c.ExpiresAt = NewNumericDate(now.Add(maxAge))
	}
}

// WithIssuer sets the "iss" claim.
func WithIssuer(issuer string) SignOption {
	return func(c *RegisteredClaims) { c.Issuer = issuer }
}

// WithSubject sets the "sub" claim.
func WithSubject(subject string) SignOption {
	return func(c *RegisteredClaims) { c.Subject = subject }
}

// WithAudience sets the "aud" claim.
func WithAudience(audience ...string) SignOption {
	return func(c *RegisteredClaims) { c.Audience = audience }
}

// WithNotBefore sets the "nbf" claim.
func WithNotBefore(t time.Time) SignOption {
	return func(c *RegisteredClaims) { c.NotBefore = NewNumericDate(t) }
}

// WithIssuedAt sets the "iat" claim.
func WithIssuedAt(t time.Time) SignOption {
	return func(c *RegisteredClaims) { c.IssuedAt = NewNumericDate(t) }
}

// WithExpiresAt sets the "exp" claim.
func WithExpiresAt(t time.Time) SignOption {
	return func(c *RegisteredClaims) { c.ExpiresAt = NewNumericDate(t) }
}

// WithJWTID sets the "jti" claim.
func WithJWTID(id string) SignOption {
	return func(c *RegisteredClaims) { c.ID = id }
}

// WithGeneratedID sets "jti" to a freshly generated UUIDv4, giving each
// token a unique identity a Blocklist or replay cache can key on.
func WithGeneratedID() SignOption {
	return func(c *RegisteredClaims) { c.ID = uuid.NewString() }
}
