package curve

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// secp256k1Engine implements Engine on secp256k1 using btcec. btcec
// signs with RFC 6979 deterministic nonces and emits low-S DER
// natively, so repeated signing of the same (key, digest) pair is
// bit-reproducible.
type secp256k1Engine struct{}

// Scheme returns the secp256k1 scheme identifier.
func (secp256k1Engine) Scheme() string { return SchemeSecp256k1 }

// GenerateKey creates a new secp256k1 keypair using btcec.
func (secp256k1Engine) GenerateKey() ([]byte, []byte, error) {
	key, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate private key: %w", err)
	}
	return key.Serialize(), key.PubKey().SerializeCompressed(), nil
}

// DerivePublicKey derives the compressed public point for a raw
// private scalar.
func (secp256k1Engine) DerivePublicKey(priv []byte) ([]byte, error) {
	key, err := secp256k1PrivKey(priv)
	if err != nil {
		return nil, err
	}
	return key.PubKey().SerializeCompressed(), nil
}

// SignDigest signs a 32-byte digest and returns btcec's canonical
// low-S DER encoding.
func (secp256k1Engine) SignDigest(priv, digest []byte) ([]byte, error) {
	if len(digest) != DigestLen {
		return nil, fmt.Errorf("digest must be %d bytes, got %d", DigestLen, len(digest))
	}

	key, err := secp256k1PrivKey(priv)
	if err != nil {
		return nil, err
	}

	return btcecdsa.Sign(key, digest).Serialize(), nil
}

// VerifyDigest checks a DER signature against a digest and compressed
// public key. Encodings btcec would not itself produce (high-S or
// non-minimal DER) are rejected as non-canonical.
func (secp256k1Engine) VerifyDigest(pub, digest, der []byte) (bool, error) {
	if len(digest) != DigestLen {
		return false, fmt.Errorf("digest must be %d bytes, got %d", DigestLen, len(digest))
	}

	pubKey, err := btcec.ParsePubKey(pub)
	if err != nil {
		return false, fmt.Errorf("failed to parse public key: %w", err)
	}

	sig, err := btcecdsa.ParseDERSignature(der)
	if err != nil {
		return false, fmt.Errorf("failed to parse signature: %w", err)
	}
	if !bytes.Equal(sig.Serialize(), der) {
		return false, errors.New("non-canonical signature encoding")
	}

	return sig.Verify(digest, pubKey), nil
}

// secp256k1PrivKey validates a raw 32-byte scalar and builds the btcec
// private key. Zero and over-order scalars are rejected rather than
// silently reduced.
func secp256k1PrivKey(priv []byte) (*btcec.PrivateKey, error) {
	if len(priv) != PrivateKeyLen {
		return nil, fmt.Errorf("private key must be %d bytes, got %d", PrivateKeyLen, len(priv))
	}

	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(priv); overflow {
		return nil, errors.New("private key scalar exceeds curve order")
	}
	if scalar.IsZero() {
		return nil, errors.New("private key scalar is zero")
	}

	key, _ := btcec.PrivKeyFromBytes(priv)
	return key, nil
}
