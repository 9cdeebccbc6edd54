package jwt

import (
	"errors"
	"fmt"
)

// ErrExpected indicates a registered claim whose value does not match
// what the consumer demanded.
var ErrExpected = errors.New("jwt: field not expected")

// Expected declares exact-match requirements on registered claims,
// checked after signature verification and time validation. The zero
// value requires nothing; set only the fields that matter.
//
// Audience matches when every expected entry is present in the token's
// "aud"; extra token audiences are fine.
type Expected struct {
	Issuer   string
	Subject  string
	Audience Audience
	ID       string

	// Exact instants, compared at second precision. Distinct from the
	// windowed time validation ValidateClaims performs.
	ExpiresAt *NumericDate
	NotBefore *NumericDate
	IssuedAt  *NumericDate
}

// Validate checks "c" against the expectations.
func (e Expected) Validate(c RegisteredClaims) error {
	if e.Issuer != "" && c.Issuer != e.Issuer {
		return fmt.Errorf("%w: iss", ErrExpected)
	}

	if e.Subject != "" && c.Subject != e.Subject {
		return fmt.Errorf("%w: sub", ErrExpected)
	}

	if e.ID != "" && c.ID != e.ID {
		return fmt.Errorf("%w: jti", ErrExpected)
	}

	for _, aud := range e.Audience {
		if !containsAudience(c.Audience, aud) {
			return fmt.Errorf("%w: aud", ErrExpected)
		}
	}

	if err := expectInstant(e.ExpiresAt, c.ExpiresAt, "exp"); err != nil {
		return err
	}

	if err := expectInstant(e.NotBefore, c.NotBefore, "nbf"); err != nil {
		return err
	}

	return expectInstant(e.IssuedAt, c.IssuedAt, "iat")
}

func expectInstant(want, have *NumericDate, name string) error {
	if want == nil {
		return nil
	}

	if have == nil || have.Unix() != want.Unix() {
		return fmt.Errorf("%w: %s", ErrExpected, name)
	}

	return nil
}

func containsAudience(have Audience, want string) bool {
	for _, a := range have {
		if a == want {
			return true
		}
	}

	return false
}
