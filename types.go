// Package popsign produces verifiable proof-of-possession signatures
// over arbitrary request payloads using a caller-held ECDSA key pair.
//
// The package is stateless: every operation is a pure function of its
// inputs apart from the entropy consumed during key generation. Keys
// travel as fixed-length hex strings (64 chars for the private scalar,
// 66 chars for the compressed public point) and signatures travel as a
// base64url-encoded JSON envelope that a backend can decode and verify
// with standard ECDSA.
package popsign

import "github.com/Bidon15/popsign/internal/curve"

// Signature scheme identifiers. The scheme string is embedded in every
// envelope and verifiers must reject envelopes carrying a scheme they
// do not recognize.
const (
	// SchemeP256 is ECDSA over NIST P-256 (secp256r1) with SHA-256.
	// This is the default scheme.
	SchemeP256 = curve.SchemeP256

	// SchemeSecp256k1 is ECDSA over secp256k1 with SHA-256.
	SchemeSecp256k1 = curve.SchemeSecp256k1
)

// DefaultScheme is used by the package-level Sign and GenerateKeyPair.
const DefaultScheme = SchemeP256

// Wire sizes for hex-encoded key material.
const (
	// PrivateKeyHexLen is the length of a hex-encoded 32-byte scalar.
	PrivateKeyHexLen = 64

	// PublicKeyHexLen is the length of a hex-encoded 33-byte
	// compressed curve point.
	PublicKeyHexLen = 66
)

// KeyPair is a freshly generated signing key pair.
type KeyPair struct {
	// PublicKey is the compressed public key, 66 hex characters.
	PublicKey string `json:"publicKey"`
	// PrivateKey is the private scalar, 64 hex characters.
	PrivateKey string `json:"privateKey"`
	// Scheme identifies the curve the pair was generated on.
	Scheme string `json:"scheme"`
}

// Envelope is the canonical signature envelope. Struct field order is
// the wire order: the envelope is serialized exactly once, with stable
// key ordering, before transport encoding.
type Envelope struct {
	// PublicKey is the signer's compressed public key, hex-encoded.
	PublicKey string `json:"publicKey"`
	// Scheme ties the signature to a curve and digest algorithm.
	Scheme string `json:"scheme"`
	// Signature is the DER-encoded (r, s) pair, hex-encoded.
	Signature string `json:"signature"`
}

// SignatureDetails exposes the untransformed intermediates of a sign
// call so callers can validate behavior without re-deriving them.
type SignatureDetails struct {
	// PublicKey is the compressed public key the payload was signed
	// under, hex-encoded.
	PublicKey string `json:"publicKey"`
	// Scheme is the signature scheme identifier.
	Scheme string `json:"scheme"`
	// Signature is the raw DER-encoded signature, hex-encoded.
	Signature string `json:"signature"`
	// PayloadHash is the SHA-256 digest of the payload, hex-encoded.
	PayloadHash string `json:"payloadHash"`
}

// SignResult is the outcome of a successful sign call.
type SignResult struct {
	// Signature is the transport-encoded envelope: canonical JSON,
	// then base64url without padding.
	Signature string `json:"signature"`
	// Details carries the intermediate values behind Signature.
	Details SignatureDetails `json:"details"`
}

// VerifyResult is the outcome of verifying a transport-encoded
// signature against a payload.
type VerifyResult struct {
	// Valid reports whether the signature verifies.
	Valid bool `json:"valid"`
	// PublicKey is the compressed public key from the envelope.
	PublicKey string `json:"publicKey"`
	// Scheme is the scheme string from the envelope.
	Scheme string `json:"scheme"`
	// PayloadHash is the digest the signature was checked against.
	PayloadHash string `json:"payloadHash"`
}
