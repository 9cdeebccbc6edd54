package jwt

import (
	"bytes"
	"encoding/base64"
)

var (
	sep = []byte(".")
	pad = []byte("=")
)

// Base64Encode encodes "src" to the unpadded base64 url format used
// by every JWT segment.
func Base64Encode(src []byte) []byte {
	buf := make([]byte, base64.URLEncoding.EncodedLen(len(src)))
	base64.URLEncoding.Encode(buf, src)

	return bytes.TrimRight(buf, string(pad)) // JWT: no trailing '='.
}

// Base64Decode decodes "src" from the unpadded base64 url format.
// The input is re-padded to a multiple of four characters before decoding,
// a remainder of zero means no padding at all.
func Base64Decode(src []byte) ([]byte, error) {
	if n := len(src) % 4; n > 0 {
		// JWT: Because of no trailing '=' let's suffix it
		// with the correct number of those '=' before decoding.
		src = append(src[:len(src):len(src)], bytes.Repeat(pad, 4-n)...)
	}

	buf := make([]byte, base64.URLEncoding.DecodedLen(len(src)))
	n, err := base64.URLEncoding.Decode(buf, src)
	return buf[:n], err
}

func joinParts(parts ...[]byte) []byte {
	return bytes.Join(parts, sep)
}
