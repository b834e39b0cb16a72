package curve

import (
	"crypto/elliptic"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sha256Of(s string) []byte {
	sum := sha256.Sum256([]byte(s))
	return sum[:]
}

func TestP256GenerateKey(t *testing.T) {
	engine := p256Engine{}

	t.Run("generates valid keypair", func(t *testing.T) {
		priv, pub, err := engine.GenerateKey()
		require.NoError(t, err)
		assert.Len(t, priv, PrivateKeyLen)
		assert.Len(t, pub, PublicKeyLen)
		assert.True(t, pub[0] == 0x02 || pub[0] == 0x03)

		// Public key must derive from the private key.
		derived, err := engine.DerivePublicKey(priv)
		require.NoError(t, err)
		assert.Equal(t, pub, derived)
	})

	t.Run("generates unique keys", func(t *testing.T) {
		priv1, _, err := engine.GenerateKey()
		require.NoError(t, err)
		priv2, _, err := engine.GenerateKey()
		require.NoError(t, err)
		assert.NotEqual(t, priv1, priv2)
	})
}

func TestP256DerivePublicKey(t *testing.T) {
	engine := p256Engine{}

	t.Run("derives compressed point for known scalar", func(t *testing.T) {
		priv, err := hex.DecodeString("1111111111111111111111111111111111111111111111111111111111111111")
		require.NoError(t, err)

		pub, err := engine.DerivePublicKey(priv)
		require.NoError(t, err)
		assert.Len(t, pub, PublicKeyLen)

		// Same scalar, same point.
		again, err := engine.DerivePublicKey(priv)
		require.NoError(t, err)
		assert.Equal(t, pub, again)
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, err := engine.DerivePublicKey([]byte{0x01, 0x02, 0x03})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "must be 32 bytes")
	})

	t.Run("rejects zero scalar", func(t *testing.T) {
		_, err := engine.DerivePublicKey(make([]byte, PrivateKeyLen))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "zero")
	})

	t.Run("rejects scalar at curve order", func(t *testing.T) {
		n := elliptic.P256().Params().N
		priv := make([]byte, PrivateKeyLen)
		n.FillBytes(priv)

		_, err := engine.DerivePublicKey(priv)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds curve order")
	})
}

func TestP256SignDigest(t *testing.T) {
	engine := p256Engine{}
	priv, pub, err := engine.GenerateKey()
	require.NoError(t, err)

	digest := sha256Of("test message")

	t.Run("signs and verifies", func(t *testing.T) {
		der, err := engine.SignDigest(priv, digest)
		require.NoError(t, err)

		valid, err := engine.VerifyDigest(pub, digest, der)
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("produces low-S signatures", func(t *testing.T) {
		// Nonces are randomized; sign repeatedly to exercise both
		// halves of the order.
		for i := 0; i < 16; i++ {
			der, err := engine.SignDigest(priv, sha256Of(string(rune('a'+i))))
			require.NoError(t, err)

			_, s, err := parseDERSignature(der)
			require.NoError(t, err)
			assert.True(t, s.Cmp(p256HalfOrder) <= 0, "signature should have low-S")
		}
	})

	t.Run("rejects invalid digest length", func(t *testing.T) {
		_, err := engine.SignDigest(priv, []byte("short"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "digest must be 32 bytes")
	})

	t.Run("rejects zero scalar", func(t *testing.T) {
		_, err := engine.SignDigest(make([]byte, PrivateKeyLen), digest)
		assert.Error(t, err)
	})
}

func TestP256VerifyDigest(t *testing.T) {
	engine := p256Engine{}
	priv, pub, err := engine.GenerateKey()
	require.NoError(t, err)

	digest := sha256Of("test message")
	der, err := engine.SignDigest(priv, digest)
	require.NoError(t, err)

	t.Run("rejects wrong digest", func(t *testing.T) {
		valid, err := engine.VerifyDigest(pub, sha256Of("different message"), der)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("rejects wrong public key", func(t *testing.T) {
		_, otherPub, err := engine.GenerateKey()
		require.NoError(t, err)

		valid, err := engine.VerifyDigest(otherPub, digest, der)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("rejects malformed DER", func(t *testing.T) {
		_, err := engine.VerifyDigest(pub, digest, []byte{0x30, 0x02, 0x01})
		assert.Error(t, err)
	})

	t.Run("rejects trailing bytes", func(t *testing.T) {
		padded := append(append([]byte{}, der...), 0x00)
		_, err := engine.VerifyDigest(pub, digest, padded)
		assert.Error(t, err)
	})

	t.Run("rejects high-S encoding", func(t *testing.T) {
		r, s, err := parseDERSignature(der)
		require.NoError(t, err)

		// Re-encode the equivalent high-S form.
		highS := new(big.Int).Sub(elliptic.P256().Params().N, s)
		highDER, err := encodeDERSignature(r, highS)
		require.NoError(t, err)

		_, err = engine.VerifyDigest(pub, digest, highDER)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "high-S")
	})

	t.Run("rejects invalid public key", func(t *testing.T) {
		bad := make([]byte, PublicKeyLen)
		bad[0] = 0x05
		_, err := engine.VerifyDigest(bad, digest, der)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "public key")
	})
}

func TestDERSignatureRoundTrip(t *testing.T) {
	t.Run("encode and parse", func(t *testing.T) {
		r := big.NewInt(0).SetBytes(sha256Of("r"))
		s := big.NewInt(0).SetBytes(sha256Of("s"))

		der, err := encodeDERSignature(r, s)
		require.NoError(t, err)

		r2, s2, err := parseDERSignature(der)
		require.NoError(t, err)
		assert.Zero(t, r.Cmp(r2))
		assert.Zero(t, s.Cmp(s2))
	})

	t.Run("small integers", func(t *testing.T) {
		der, err := encodeDERSignature(big.NewInt(1), big.NewInt(2))
		require.NoError(t, err)

		r, s, err := parseDERSignature(der)
		require.NoError(t, err)
		assert.Equal(t, int64(1), r.Int64())
		assert.Equal(t, int64(2), s.Int64())
	})
}

func BenchmarkP256SignDigest(b *testing.B) {
	engine := p256Engine{}
	priv, _, _ := engine.GenerateKey()
	digest := sha256Of("benchmark")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.SignDigest(priv, digest)
	}
}

func BenchmarkP256VerifyDigest(b *testing.B) {
	engine := p256Engine{}
	priv, pub, _ := engine.GenerateKey()
	digest := sha256Of("benchmark")
	der, _ := engine.SignDigest(priv, digest)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.VerifyDigest(pub, digest, der)
	}
}
