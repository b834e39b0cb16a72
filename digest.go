package popsign

import (
	"crypto/sha256"
	"encoding/hex"
)

// PayloadDigest computes the stable fingerprint of a payload: the
// SHA-256 digest of its UTF-8 bytes, as 64 lowercase hex characters.
//
// Go strings are UTF-8 already, so the byte conversion is the identity;
// it is still the documented encoding step that any independent
// verifier must match, or signatures over non-ASCII payloads will not
// verify. The empty payload is valid input.
func PayloadDigest(payload string) string {
	return hex.EncodeToString(payloadDigestBytes(payload))
}

// payloadDigestBytes returns the raw 32-byte digest signed by the
// signing engine.
func payloadDigestBytes(payload string) []byte {
	sum := sha256.Sum256([]byte(payload))
	return sum[:]
}
