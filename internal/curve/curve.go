// Package curve implements the ECDSA engines behind popsign's
// signature schemes. Each engine owns key generation, public-key
// derivation, low-S DER signing over a 32-byte digest, and strict
// verification for one curve.
package curve

import "sort"

// Scheme identifiers. These are the exact strings embedded in
// signature envelopes.
const (
	SchemeP256      = "SIGNATURE_SCHEME_SECP256R1"
	SchemeSecp256k1 = "SIGNATURE_SCHEME_SECP256K1"
)

// Raw byte sizes shared by both curves.
const (
	// PrivateKeyLen is the raw private scalar length.
	PrivateKeyLen = 32

	// PublicKeyLen is the compressed public point length: a 0x02/0x03
	// sign byte plus the 32-byte x-coordinate.
	PublicKeyLen = 33

	// DigestLen is the length of the digest an engine signs.
	DigestLen = 32
)

// Engine is one curve's set of ECDSA operations. Implementations are
// stateless and safe for concurrent use.
type Engine interface {
	// Scheme returns the scheme identifier for this curve.
	Scheme() string

	// GenerateKey draws a fresh private scalar from a cryptographically
	// secure source and returns it with the compressed public point.
	// Every call is independent.
	GenerateKey() (priv, pub []byte, err error)

	// DerivePublicKey returns the compressed public point for a raw
	// 32-byte private scalar. It rejects zero and out-of-range scalars.
	DerivePublicKey(priv []byte) ([]byte, error)

	// SignDigest signs a 32-byte digest and returns the DER-encoded
	// (r, s) pair in canonical low-S form.
	SignDigest(priv, digest []byte) ([]byte, error)

	// VerifyDigest checks a DER-encoded signature against a digest and
	// compressed public key. Malformed or non-canonical (high-S)
	// encodings are rejected with an error.
	VerifyDigest(pub, digest, der []byte) (bool, error)
}

var engines = map[string]Engine{
	SchemeP256:      p256Engine{},
	SchemeSecp256k1: secp256k1Engine{},
}

// ByScheme returns the engine registered for a scheme identifier.
func ByScheme(scheme string) (Engine, bool) {
	e, ok := engines[scheme]
	return e, ok
}

// Schemes returns all registered scheme identifiers, sorted.
func Schemes() []string {
	out := make([]string, 0, len(engines))
	for s := range engines {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
