package jwt

import (
	"errors"
	"time"
)

// Clock is the time source used to validate time-based claims.
// It can be overridden, which is mostly useful for testing.
//
// Usage: now := Clock()
var Clock = time.Now

var (
	// ErrExpired indicates that a token is used after the instant in its "exp" claim.
	ErrExpired = errors.New("jwt: token expired")
	// ErrNotValidYet indicates that a token is used before the instant in its "nbf" claim.
	ErrNotValidYet = errors.New("jwt: token not valid yet")
	// ErrIssuedInTheFuture indicates that the "iat" claim is in the future.
	ErrIssuedInTheFuture = errors.New("jwt: token issued in the future")
	// ErrInvalidTimeClaim indicates that a present time-based claim could
	// not be interpreted as an instant at all.
	ErrInvalidTimeClaim = errors.New("jwt: time claim is not a numeric date")
)

// ValidateClaimsResult is the outcome of a ValidateClaims call.
// The zero value is success. Each time-based claim has a "violated"
// variant (the check failed) and an "invalid" variant (the claim was
// present but not interpretable as an instant).
type ValidateClaimsResult uint8

const (
	// ValidationSuccess: every present time claim passed.
	ValidationSuccess ValidateClaimsResult = iota
	// ValidationExpired: "exp" plus leeway lies before now.
	ValidationExpired
	// ValidationInvalidExpiresAt: "exp" present but not a numeric date.
	ValidationInvalidExpiresAt
	// ValidationNotBefore: "nbf" lies after now plus leeway.
	ValidationNotBefore
	// ValidationInvalidNotBefore: "nbf" present but not a numeric date.
	ValidationInvalidNotBefore
	// ValidationIssuedAt: "iat" lies after now plus leeway.
	ValidationIssuedAt
	// ValidationInvalidIssuedAt: "iat" present but not a numeric date.
	ValidationInvalidIssuedAt
)

// String implements fmt.Stringer.
func (r ValidateClaimsResult) String() string {
	switch r {
	case ValidationSuccess:
		return "success"
	case ValidationExpired:
		return "expired"
	case ValidationInvalidExpiresAt:
		return "invalid expiration claim"
	case ValidationNotBefore:
		return "not valid yet"
	case ValidationInvalidNotBefore:
		return "invalid not-before claim"
	case ValidationIssuedAt:
		return "issued in the future"
	case ValidationInvalidIssuedAt:
		return "invalid issued-at claim"
	}

	return "unknown validation result"
}

// Err maps the result to the matching sentinel error, nil on success.
func (r ValidateClaimsResult) Err() error {
	switch r {
	case ValidationSuccess:
		return nil
	case ValidationExpired:
		return ErrExpired
	case ValidationNotBefore:
		return ErrNotValidYet
	case ValidationIssuedAt:
		return ErrIssuedInTheFuture
	default:
		return ErrInvalidTimeClaim
	}
}

// ValidateClaims checks the three time-based claims of "c" against the
// current Clock, in the fixed order exp, nbf, iat, reporting the first
// violation only. Absent claims are skipped. The leeway widens the
// acceptance window symmetrically on all three checks to absorb clock
// skew between issuer and consumer.
func ValidateClaims(c Claims, leeway time.Duration) ValidateClaimsResult {
	now := Clock()

	if exp := c.GetExpirationTime(); exp != nil {
		if exp.Add(leeway).Before(now) {
			return ValidationExpired
		}
	} else if r := invalidTimeClaim(c, "exp", ValidationInvalidExpiresAt); r != ValidationSuccess {
		return r
	}

	if nbf := c.GetNotBefore(); nbf != nil {
		if nbf.After(now.Add(leeway)) {
			return ValidationNotBefore
		}
	} else if r := invalidTimeClaim(c, "nbf", ValidationInvalidNotBefore); r != ValidationSuccess {
		return r
	}

	if iat := c.GetIssuedAt(); iat != nil {
		if iat.After(now.Add(leeway)) {
			return ValidationIssuedAt
		}
	} else if r := invalidTimeClaim(c, "iat", ValidationInvalidIssuedAt); r != ValidationSuccess {
		return r
	}

	return ValidationSuccess
}

// invalidTimeClaim distinguishes "claim absent" from "claim present but
// garbage". Typed claim structs cannot hold an unparsable date (decoding
// would have failed already), so only map payloads need the extra look.
func invalidTimeClaim(c Claims, key string, invalid ValidateClaimsResult) ValidateClaimsResult {
	if m, ok := c.(MapClaims); ok {
		if _, present := m[key]; present {
			return invalid
		}
	}

	return ValidationSuccess
}
