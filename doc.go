// Package jwt signs, verifies and validates JSON Web Tokens (RFC 7519)
// in compact form.
//
// Signing takes a claims value, a header and a Signer and produces the
// familiar three-segment token:
//
//	token, err := jwt.Sign(jwt.SignerHS256(secret), jwt.MapClaims{
//		"sub": "1234567890",
//	}, jwt.MaxAge(15*time.Minute))
//
// Consumption goes through Decode for the typed envelope or through a
// Decoder for the full pipeline of signature verification, time
// validation, blocklist and expectation checks:
//
//	tok, err := jwt.Decode[jwt.MapClaims](jwt.VerifierHS256(secret), token)
//	if err == nil {
//		err = tok.ValidateClaims(0)
//	}
//
// Supported algorithms: HS256/384/512, RS256/384/512, PS256/384/512,
// ES256/384/512, EdDSA and the explicitly-unsecured "none". Signature
// verification always runs over the original token bytes before any
// JSON is parsed; DecodeUnverified is the only escape hatch and is
// named accordingly.
//
// Multi-key deployments register keys under IDs in a Keys registry and
// let the "kid" header pick the verification key. A failed lookup is a
// hard error, never a fallback.
package jwt
