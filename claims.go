package jwt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Claims is the contract any token payload type implements.
//
// The five accessors expose the standard fields that time validation and
// the expectation helpers read; a nil/empty return means "claim absent,
// skip that check". Everything else in the payload is opaque to this
// package and flows through the JSON codec untouched.
//
// RegisteredClaims and MapClaims are ready-made implementations; custom
// payloads usually embed RegisteredClaims to satisfy the contract:
//
//	type UserClaims struct {
//		jwt.RegisteredClaims
//		Username string `json:"username"`
//		Admin    bool   `json:"admin,omitempty"`
//	}
type Claims interface {
	GetExpirationTime() *NumericDate
	GetNotBefore() *NumericDate
	GetIssuedAt() *NumericDate
	GetIssuer() string
	GetAudience() Audience
}

// NumericDate is a JSON numeric date as defined by RFC 7519 §2:
// seconds since the Unix epoch, fractional seconds allowed.
type NumericDate struct {
	time.Time
}

// NewNumericDate wraps a time.Time for use in a claims field.
// The zero time maps to an absent claim.
func NewNumericDate(t time.Time) *NumericDate {
	if t.IsZero() {
		return nil
	}

	return &NumericDate{t}
}

// MarshalJSON writes the date as epoch seconds, keeping sub-second
// precision only when there is some.
func (d NumericDate) MarshalJSON() ([]byte, error) {
	if d.Nanosecond() == 0 {
		return strconv.AppendInt(nil, d.Unix(), 10), nil
	}

	// Unix seconds plus the sub-second part keeps float64 precision;
	// going through UnixNano would not for present-day dates.
	f := float64(d.Unix()) + float64(d.Nanosecond())/float64(time.Second)
	return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

// UnmarshalJSON reads a JSON number (integer or fractional) as an instant.
func (d *NumericDate) UnmarshalJSON(b []byte) error {
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("jwt: numeric date: %w", err)
	}

	sec, frac := math.Modf(f)
	d.Time = time.Unix(int64(sec), int64(math.Round(frac*float64(time.Second))))
	return nil
}

// Audience is the "aud" claim: a single string or an array of strings
// on the wire, always a slice in memory.
type Audience []string

// MarshalJSON keeps the compact single-string form when there is
// exactly one element, matching what most issuers emit.
func (a Audience) MarshalJSON() ([]byte, error) {
	if len(a) == 1 {
		return json.Marshal(a[0])
	}

	return json.Marshal([]string(a))
}

// UnmarshalJSON accepts both wire forms.
func (a *Audience) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var single string
		if err := json.Unmarshal(b, &single); err != nil {
			return err
		}

		*a = Audience{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}

	*a = many
	return nil
}

// RegisteredClaims holds the RFC 7519 §4.1 registered claims.
// All fields are optional; absent fields stay out of the JSON entirely.
type RegisteredClaims struct {
	Issuer    string       `json:"iss,omitempty"`
	Subject   string       `json:"sub,omitempty"`
	Audience  Audience     `json:"aud,omitempty"`
	ExpiresAt *NumericDate `json:"exp,omitempty"`
	NotBefore *NumericDate `json:"nbf,omitempty"`
	IssuedAt  *NumericDate `json:"iat,omitempty"`
	ID        string       `json:"jti,omitempty"`
}

var _ Claims = RegisteredClaims{}

func (c RegisteredClaims) GetExpirationTime() *NumericDate { return c.ExpiresAt }
func (c RegisteredClaims) GetNotBefore() *NumericDate      { return c.NotBefore }
func (c RegisteredClaims) GetIssuedAt() *NumericDate       { return c.IssuedAt }
func (c RegisteredClaims) GetIssuer() string               { return c.Issuer }
func (c RegisteredClaims) GetAudience() Audience           { return c.Audience }

// MapClaims is the generic map-based payload for callers that do not
// want a typed claims struct. Standard fields are read leniently: any
// JSON number works as a date, anything else counts as absent (the
// validation layer reports unparsable-but-present time claims, see
// ValidateClaims).
type MapClaims map[string]any

var _ Claims = MapClaims{}

func (m MapClaims) GetExpirationTime() *NumericDate { return m.date("exp") }
func (m MapClaims) GetNotBefore() *NumericDate      { return m.date("nbf") }
func (m MapClaims) GetIssuedAt() *NumericDate       { return m.date("iat") }

func (m MapClaims) GetIssuer() string {
	if iss, ok := m["iss"].(string); ok {
		return iss
	}

	return ""
}

func (m MapClaims) GetAudience() Audience {
	switch aud := m["aud"].(type) {
	case string:
		return Audience{aud}
	case []string:
		return aud
	case []any:
		out := make(Audience, 0, len(aud))
		for _, v := range aud {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}

	return nil
}

func (m MapClaims) date(key string) *NumericDate {
	v, ok := m[key]
	if !ok {
		return nil
	}

	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int64:
		f = float64(n)
	case int:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}

	sec, frac := math.Modf(f)
	return &NumericDate{time.Unix(int64(sec), int64(math.Round(frac*float64(time.Second))))}
}

// Merge accepts two claim structs or maps and returns the JSON of their
// union. On conflicting keys the "extra" value wins. It is handy for
// attaching registered claims built by the sign options to an arbitrary
// custom payload before encoding.
func Merge(claims any, extra any) ([]byte, error) {
	claimsB, err := json.Marshal(claims)
	if err != nil {
		return nil, err
	}

	extraB, err := json.Marshal(extra)
	if err != nil {
		return nil, err
	}

	if bytes.Equal(extraB, emptyJSONObject) {
		return claimsB, nil
	}

	if bytes.Equal(claimsB, emptyJSONObject) {
		return extraB, nil
	}

	if claimsB[0] != '{' || extraB[0] != '{' {
		return nil, ErrClaimsNotObject
	}

	claimsB[len(claimsB)-1] = ',' // == '}' + ','
	claimsB = append(claimsB, extraB[1:]...)
	return claimsB, nil
}

var emptyJSONObject = []byte("{}")
