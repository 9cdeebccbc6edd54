package jwt

// algNONE implements Alg for explicitly-unsecured JWTs (RFC 7518 §3.6).
//
// Tokens produced with it carry no signature at all and can be forged by
// anyone. It exists for payloads whose integrity is guaranteed by other
// means and it is wired in only through the dedicated SignerNone and
// VerifierNone constructors so a library bug can never substitute it for
// a real algorithm.
type algNONE struct{}

func (a *algNONE) Name() string {
	return "none"
}

func (a *algNONE) Sign(key PrivateKey, headerAndPayload []byte) ([]byte, error) {
	return nil, nil
}

// Verify accepts only the empty signature that Sign produces.
// A none-verifier fed a token carrying a real signature reports
// ErrTokenSignature instead of silently discarding the signature.
func (a *algNONE) Verify(key PublicKey, headerAndPayload []byte, signature []byte) error {
	if len(signature) != 0 {
		return ErrTokenSignature
	}

	return nil
}
