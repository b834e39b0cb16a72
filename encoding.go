package popsign

import (
	"encoding/base64"
	"strings"
)

// EncodeBase64URL encodes raw bytes using the URL-safe base64 alphabet
// with all trailing padding stripped. The output never contains '+',
// '/' or '='.
func EncodeBase64URL(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// EncodeBase64URLString encodes a string by first converting it to its
// UTF-8 bytes. Equivalent byte content produces output identical to
// EncodeBase64URL.
func EncodeBase64URLString(s string) string {
	return EncodeBase64URL([]byte(s))
}

// DecodeBase64URL is the inverse of EncodeBase64URL. It tolerates
// input that still carries '=' padding.
func DecodeBase64URL(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}
