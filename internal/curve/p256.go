package curve

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// p256Engine implements Engine on NIST P-256 using the standard
// library. Nonces are randomized; signatures are normalized to low-S
// before DER encoding so exactly one canonical encoding exists per
// (key, digest) pair.
type p256Engine struct{}

// p256HalfOrder is N/2, the low-S boundary.
var p256HalfOrder = new(big.Int).Rsh(elliptic.P256().Params().N, 1)

// Scheme returns the P-256 scheme identifier.
func (p256Engine) Scheme() string { return SchemeP256 }

// GenerateKey creates a new P-256 keypair from crypto/rand.
func (p256Engine) GenerateKey() ([]byte, []byte, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate private key: %w", err)
	}

	priv := make([]byte, PrivateKeyLen)
	key.D.FillBytes(priv)
	pub := elliptic.MarshalCompressed(elliptic.P256(), key.X, key.Y)
	return priv, pub, nil
}

// DerivePublicKey derives the compressed public point for a raw
// private scalar.
func (p256Engine) DerivePublicKey(priv []byte) ([]byte, error) {
	d, err := p256Scalar(priv)
	if err != nil {
		return nil, err
	}

	x, y := elliptic.P256().ScalarBaseMult(d.Bytes())
	return elliptic.MarshalCompressed(elliptic.P256(), x, y), nil
}

// SignDigest signs a 32-byte digest and returns the canonical low-S
// DER encoding of (r, s).
func (p256Engine) SignDigest(priv, digest []byte) ([]byte, error) {
	if len(digest) != DigestLen {
		return nil, fmt.Errorf("digest must be %d bytes, got %d", DigestLen, len(digest))
	}

	d, err := p256Scalar(priv)
	if err != nil {
		return nil, err
	}

	key := &ecdsa.PrivateKey{D: d}
	key.Curve = elliptic.P256()
	key.X, key.Y = elliptic.P256().ScalarBaseMult(d.Bytes())

	r, s, err := ecdsa.Sign(rand.Reader, key, digest)
	if err != nil {
		return nil, fmt.Errorf("ecdsa sign: %w", err)
	}

	// Normalize to low-S: s = min(s, N-s).
	if s.Cmp(p256HalfOrder) > 0 {
		s.Sub(elliptic.P256().Params().N, s)
	}

	return encodeDERSignature(r, s)
}

// VerifyDigest checks a DER signature against a digest and compressed
// public key. High-S encodings are rejected as non-canonical.
func (p256Engine) VerifyDigest(pub, digest, der []byte) (bool, error) {
	if len(digest) != DigestLen {
		return false, fmt.Errorf("digest must be %d bytes, got %d", DigestLen, len(digest))
	}

	x, y := elliptic.UnmarshalCompressed(elliptic.P256(), pub)
	if x == nil {
		return false, errors.New("invalid compressed public key")
	}

	r, s, err := parseDERSignature(der)
	if err != nil {
		return false, err
	}

	n := elliptic.P256().Params().N
	if r.Sign() <= 0 || s.Sign() <= 0 || r.Cmp(n) >= 0 || s.Cmp(n) >= 0 {
		return false, errors.New("signature component out of range")
	}
	if s.Cmp(p256HalfOrder) > 0 {
		return false, errors.New("non-canonical signature: high-S")
	}

	key := &ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}
	return ecdsa.Verify(key, digest, r, s), nil
}

// p256Scalar validates a raw 32-byte private scalar: it must be
// non-zero and less than the curve order.
func p256Scalar(priv []byte) (*big.Int, error) {
	if len(priv) != PrivateKeyLen {
		return nil, fmt.Errorf("private key must be %d bytes, got %d", PrivateKeyLen, len(priv))
	}

	d := new(big.Int).SetBytes(priv)
	if d.Sign() == 0 {
		return nil, errors.New("private key scalar is zero")
	}
	if d.Cmp(elliptic.P256().Params().N) >= 0 {
		return nil, errors.New("private key scalar exceeds curve order")
	}
	return d, nil
}

// encodeDERSignature packs (r, s) into the ASN.1 DER SEQUENCE form.
func encodeDERSignature(r, s *big.Int) ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(c *cryptobyte.Builder) {
		c.AddASN1BigInt(r)
		c.AddASN1BigInt(s)
	})
	return b.Bytes()
}

// parseDERSignature unpacks a DER SEQUENCE of two integers. Trailing
// bytes and nested garbage are rejected.
func parseDERSignature(der []byte) (r, s *big.Int, err error) {
	r, s = new(big.Int), new(big.Int)
	input := cryptobyte.String(der)
	var inner cryptobyte.String

	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1Integer(r) ||
		!inner.ReadASN1Integer(s) ||
		!inner.Empty() {
		return nil, nil, errors.New("malformed DER signature")
	}
	return r, s, nil
}
