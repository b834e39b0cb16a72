package popsign

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/Bidon15/popsign/internal/curve"
)

// Signer signs payloads under a fixed signature scheme. The zero value
// is not usable; construct with NewSigner. A Signer is stateless and
// safe for concurrent use.
type Signer struct {
	engine curve.Engine
}

// NewSigner returns a Signer for the given scheme identifier.
func NewSigner(scheme string) (*Signer, error) {
	engine, ok := curve.ByScheme(scheme)
	if !ok {
		return nil, newError(CodeUnknownScheme, "unsupported signature scheme %q", scheme)
	}
	return &Signer{engine: engine}, nil
}

// defaultSigner backs the package-level operations.
var defaultSigner = &Signer{engine: mustEngine(DefaultScheme)}

func mustEngine(scheme string) curve.Engine {
	engine, ok := curve.ByScheme(scheme)
	if !ok {
		panic("popsign: default scheme not registered: " + scheme)
	}
	return engine
}

// GenerateKeyPair mints a fresh key pair on the default scheme.
func GenerateKeyPair() (*KeyPair, error) {
	return defaultSigner.GenerateKeyPair()
}

// Sign signs a payload on the default scheme. See Signer.Sign.
func Sign(payload, privateKeyHex, publicKeyHex string) (*SignResult, error) {
	return defaultSigner.Sign(payload, privateKeyHex, publicKeyHex)
}

// Verify checks a transport-encoded signature against a payload on the
// default scheme. See Signer.Verify.
func Verify(transportSignature, payload string) (*VerifyResult, error) {
	return defaultSigner.Verify(transportSignature, payload)
}

// Scheme returns the signer's scheme identifier.
func (s *Signer) Scheme() string {
	return s.engine.Scheme()
}

// GenerateKeyPair draws a fresh private scalar from a cryptographically
// secure source and returns the pair as fixed-length hex strings.
func (s *Signer) GenerateKeyPair() (*KeyPair, error) {
	priv, pub, err := s.engine.GenerateKey()
	if err != nil {
		return nil, newError(CodeRandomnessUnavailable, "key generation failed: %v", err)
	}

	return &KeyPair{
		PublicKey:  hex.EncodeToString(pub),
		PrivateKey: hex.EncodeToString(priv),
		Scheme:     s.engine.Scheme(),
	}, nil
}

// Sign produces the proof-of-possession signature for a payload.
//
// The supplied public key is verified against the one derived from the
// private key before anything is signed; pairing unrelated keys is a
// caller bug this surfaces as an immediate key_mismatch failure rather
// than a signature the backend cannot attribute. Signing either fully
// succeeds with a complete envelope or fails with no signature emitted.
func (s *Signer) Sign(payload, privateKeyHex, publicKeyHex string) (*SignResult, error) {
	if privateKeyHex == "" || publicKeyHex == "" {
		return nil, newError(CodeInvalidKeyMaterial, "private and public key must be non-empty")
	}

	// Hex key material is accepted in either case, emitted in lower.
	privateKeyHex = strings.ToLower(privateKeyHex)
	publicKeyHex = strings.ToLower(publicKeyHex)

	priv, err := decodeKeyHex(privateKeyHex, PrivateKeyHexLen, "private key")
	if err != nil {
		return nil, err
	}
	pub, err := decodeKeyHex(publicKeyHex, PublicKeyHexLen, "public key")
	if err != nil {
		return nil, err
	}

	derived, err := s.engine.DerivePublicKey(priv)
	if err != nil {
		return nil, newError(CodeInvalidKeyMaterial, "invalid private key: %v", err)
	}
	if !bytes.Equal(derived, pub) {
		return nil, newKeyMismatchError(hex.EncodeToString(derived), publicKeyHex)
	}

	digest := payloadDigestBytes(payload)

	der, err := s.engine.SignDigest(priv, digest)
	if err != nil {
		return nil, newError(CodeSigningFailure, "signing failed: %v", err)
	}
	sigHex := hex.EncodeToString(der)

	env := Envelope{
		PublicKey: publicKeyHex,
		Scheme:    s.engine.Scheme(),
		Signature: sigHex,
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return nil, newError(CodeSigningFailure, "envelope encoding failed: %v", err)
	}

	return &SignResult{
		Signature: EncodeBase64URL(raw),
		Details: SignatureDetails{
			PublicKey:   publicKeyHex,
			Scheme:      s.engine.Scheme(),
			Signature:   sigHex,
			PayloadHash: hex.EncodeToString(digest),
		},
	}, nil
}

// Verify checks a transport-encoded signature against a payload. The
// envelope's scheme must match the signer's scheme exactly; envelopes
// produced under any other scheme are rejected, valid or not.
func (s *Signer) Verify(transportSignature, payload string) (*VerifyResult, error) {
	env, err := DecodeEnvelope(transportSignature)
	if err != nil {
		return nil, err
	}
	if env.Scheme != s.engine.Scheme() {
		return nil, newError(CodeUnknownScheme,
			"envelope scheme %q does not match signer scheme %q", env.Scheme, s.engine.Scheme())
	}

	pub, err := decodeKeyHex(env.PublicKey, PublicKeyHexLen, "public key")
	if err != nil {
		return nil, err
	}
	der, err := hex.DecodeString(env.Signature)
	if err != nil {
		return nil, newError(CodeInvalidSignature, "signature is not valid hex: %v", err)
	}

	digest := payloadDigestBytes(payload)
	valid, err := s.engine.VerifyDigest(pub, digest, der)
	if err != nil {
		return nil, newError(CodeInvalidSignature, "signature rejected: %v", err)
	}

	return &VerifyResult{
		Valid:       valid,
		PublicKey:   env.PublicKey,
		Scheme:      env.Scheme,
		PayloadHash: hex.EncodeToString(digest),
	}, nil
}

// DecodeEnvelope reverses the transport encoding: base64url to
// canonical JSON to Envelope. Envelopes with missing fields or a
// scheme no engine is registered for are rejected.
func DecodeEnvelope(transportSignature string) (*Envelope, error) {
	raw, err := DecodeBase64URL(transportSignature)
	if err != nil {
		return nil, newError(CodeInvalidSignature, "transport signature is not valid base64url: %v", err)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, newError(CodeInvalidSignature, "transport signature does not decode to an envelope: %v", err)
	}
	if env.PublicKey == "" || env.Scheme == "" || env.Signature == "" {
		return nil, newError(CodeInvalidSignature, "incomplete signature envelope")
	}
	if _, ok := curve.ByScheme(env.Scheme); !ok {
		return nil, newError(CodeUnknownScheme, "envelope carries unknown scheme %q", env.Scheme)
	}
	return &env, nil
}

// decodeKeyHex decodes fixed-length hex key material.
func decodeKeyHex(s string, wantLen int, what string) ([]byte, error) {
	if len(s) != wantLen {
		return nil, newError(CodeInvalidKeyMaterial,
			"%s must be %d hex characters, got %d", what, wantLen, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, newError(CodeInvalidKeyMaterial, "%s is not valid hex: %v", what, err)
	}
	return b, nil
}
