package jwt

import (
	"encoding/json"
	"time"
)

// TokenPair is the access/refresh token response shape auth endpoints
// return. The fields hold JSON-quoted token strings so the struct can
// be marshaled as-is into an HTTP response body.
type TokenPair struct {
	AccessToken  json.RawMessage `json:"access_token,omitempty"`
	RefreshToken json.RawMessage `json:"refresh_token,omitempty"`
}

// NewTokenPair quotes two compact-form tokens into a TokenPair.
func NewTokenPair(accessToken, refreshToken []byte) TokenPair {
	return TokenPair{
		AccessToken:  BytesQuote(accessToken),
		RefreshToken: BytesQuote(refreshToken),
	}
}

// BytesQuote wraps raw token bytes in JSON string quotes. Compact-form
// tokens are base64url text, nothing inside ever needs escaping.
func BytesQuote(b []byte) []byte {
	dst := make([]byte, len(b)+2)
	dst[0] = '"'
	copy(dst[1:], b)
	dst[len(dst)-1] = '"'
	return dst
}

// EncodePair signs an access and a refresh payload in one call.
// The access token expires after accessMaxAge, the refresh token after
// refreshMaxAge, which should be the longer of the two. Extra sign
// options apply to both tokens.
func (e *Encoder) EncodePair(accessClaims, refreshClaims any, accessMaxAge, refreshMaxAge time.Duration, opts ...SignOption) (TokenPair, error) {
	accessOpts := append(append([]SignOption{}, opts...), MaxAge(accessMaxAge))
	accessToken, err := e.Encode(accessClaims, accessOpts...)
	if err != nil {
		return TokenPair{}, err
	}

	refreshOpts := append(append([]SignOption{}, opts...), MaxAge(refreshMaxAge))
	refreshToken, err := e.Encode(refreshClaims, refreshOpts...)
	if err != nil {
		return TokenPair{}, err
	}

	return NewTokenPair(accessToken, refreshToken), nil
}
