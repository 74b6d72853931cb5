package crypto_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheMichaelB/cryptokat/internal/crypto"
	"github.com/TheMichaelB/cryptokat/internal/crypto/testdata"
)

func mustHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestCipherVectors(t *testing.T) {
	p := crypto.NewProvider()

	for _, tv := range testdata.Ciphers {
		t.Run(tv.Name, func(t *testing.T) {
			key := mustHex(t, tv.Key)
			pt := mustHex(t, tv.Plaintext)
			ct := mustHex(t, tv.Ciphertext)

			if tv.Alg == "aes" {
				c, err := p.AllocCipher(tv.Alg)
				require.NoError(t, err)
				defer c.Free()

				require.NoError(t, c.SetKey(key))
				buf := append([]byte(nil), pt...)
				require.NoError(t, c.Encrypt(buf, buf))
				assert.Equal(t, ct, buf)
				require.NoError(t, c.Decrypt(buf, buf))
				assert.Equal(t, pt, buf)
				return
			}

			s, err := p.AllocSkcipher(tv.Alg)
			require.NoError(t, err)
			defer s.Free()
			require.NoError(t, s.SetKey(key))

			buf := append([]byte(nil), pt...)
			iv := mustHex(t, tv.IV)
			require.NoError(t, s.Encrypt(buf, iv))
			assert.Equal(t, ct, buf)
			if tv.NextIV != "" {
				assert.Equal(t, mustHex(t, tv.NextIV), iv, "chaining IV")
			}

			iv = mustHex(t, tv.IV)
			require.NoError(t, s.Decrypt(buf, iv))
			assert.Equal(t, pt, buf)
		})
	}
}

func TestCipherErrors(t *testing.T) {
	p := crypto.NewProvider()

	c, err := p.AllocCipher("aes")
	require.NoError(t, err)
	defer c.Free()

	block := make([]byte, 16)
	assert.ErrorIs(t, c.Encrypt(block, block), crypto.ErrNoKey)
	assert.ErrorIs(t, c.SetKey(make([]byte, 15)), crypto.ErrInvalidKey)

	require.NoError(t, c.SetKey(make([]byte, 16)))
	assert.ErrorIs(t, c.Encrypt(block, make([]byte, 32)), crypto.ErrInvalidLength)

	c.Free()
	assert.ErrorIs(t, c.Encrypt(block, block), crypto.ErrNoKey, "Free drops the key")
}

func TestSkcipherErrors(t *testing.T) {
	p := crypto.NewProvider()
	key := bytes.Repeat([]byte{0x01}, 16)

	t.Run("cbc partial block", func(t *testing.T) {
		s, err := p.AllocSkcipher("cbc(aes)")
		require.NoError(t, err)
		defer s.Free()
		require.NoError(t, s.SetKey(key))
		assert.ErrorIs(t, s.Encrypt(make([]byte, 17), make([]byte, 16)), crypto.ErrInvalidLength)
	})

	t.Run("wrong iv size", func(t *testing.T) {
		s, err := p.AllocSkcipher("ctr(aes)")
		require.NoError(t, err)
		defer s.Free()
		require.NoError(t, s.SetKey(key))
		assert.ErrorIs(t, s.Encrypt(make([]byte, 16), make([]byte, 12)), crypto.ErrInvalidIV)
	})

	t.Run("ecb takes no iv", func(t *testing.T) {
		s, err := p.AllocSkcipher("ecb(aes)")
		require.NoError(t, err)
		defer s.Free()
		require.NoError(t, s.SetKey(key))
		assert.ErrorIs(t, s.Encrypt(make([]byte, 16), make([]byte, 16)), crypto.ErrInvalidIV)
		assert.NoError(t, s.Encrypt(make([]byte, 16), nil))
	})

	t.Run("xts identical key halves", func(t *testing.T) {
		s, err := p.AllocSkcipher("xts(aes)")
		require.NoError(t, err)
		defer s.Free()
		assert.ErrorIs(t, s.SetKey(make([]byte, 32)), crypto.ErrInvalidKey)
		assert.ErrorIs(t, s.SetKey(key), crypto.ErrInvalidKey)
	})

	t.Run("xts sector beyond 64 bits", func(t *testing.T) {
		s, err := p.AllocSkcipher("xts(aes)")
		require.NoError(t, err)
		defer s.Free()
		xkey := append(bytes.Repeat([]byte{0x11}, 16), bytes.Repeat([]byte{0x22}, 16)...)
		require.NoError(t, s.SetKey(xkey))

		iv := make([]byte, 16)
		iv[15] = 1
		assert.ErrorIs(t, s.Encrypt(make([]byte, 32), iv), crypto.ErrInvalidIV)
		assert.ErrorIs(t, s.Encrypt(make([]byte, 20), make([]byte, 16)), crypto.ErrInvalidLength)
	})

	t.Run("no key", func(t *testing.T) {
		s, err := p.AllocSkcipher("cbc(aes)")
		require.NoError(t, err)
		defer s.Free()
		assert.ErrorIs(t, s.Encrypt(make([]byte, 16), make([]byte, 16)), crypto.ErrNoKey)
	})
}

func TestCTRCounterCarry(t *testing.T) {
	p := crypto.NewProvider()
	s, err := p.AllocSkcipher("ctr(aes)")
	require.NoError(t, err)
	defer s.Free()
	require.NoError(t, s.SetKey(make([]byte, 16)))

	iv := bytes.Repeat([]byte{0xff}, 16)
	iv[0] = 0x00
	require.NoError(t, s.Encrypt(make([]byte, 33), iv))

	want := make([]byte, 16)
	want[0] = 0x01
	want[15] = 0x02
	assert.Equal(t, want, iv, "three blocks consumed with carry")
}

func TestAEADVectors(t *testing.T) {
	p := crypto.NewProvider()

	for _, tv := range testdata.AEADs {
		t.Run(tv.Name, func(t *testing.T) {
			a, err := p.AllocAEAD("gcm(aes)")
			require.NoError(t, err)
			defer a.Free()

			pt := mustHex(t, tv.Plaintext)
			ct := mustHex(t, tv.Ciphertext)
			iv := mustHex(t, tv.IV)
			assoc := mustHex(t, tv.Assoc)

			require.NoError(t, a.SetKey(mustHex(t, tv.Key)))
			require.NoError(t, a.SetAuthSize(len(ct)-len(pt)))

			buf := make([]byte, len(ct))
			copy(buf, pt)
			require.NoError(t, a.Encrypt(buf, len(pt), iv, assoc))
			assert.Equal(t, ct, buf)

			require.NoError(t, a.Decrypt(buf, iv, assoc))
			assert.Equal(t, pt, buf[:len(pt)])
		})
	}
}

func TestAEADRejectsTampering(t *testing.T) {
	p := crypto.NewProvider()
	a, err := p.AllocAEAD("gcm(aes)")
	require.NoError(t, err)
	defer a.Free()

	require.NoError(t, a.SetKey(bytes.Repeat([]byte{0x42}, 16)))
	iv := make([]byte, 12)
	assoc := []byte("header")
	pt := []byte("attack at dawn, bring snacks")

	sealed := make([]byte, len(pt)+16)
	copy(sealed, pt)
	require.NoError(t, a.Encrypt(sealed, len(pt), iv, assoc))

	for i := range sealed {
		buf := append([]byte(nil), sealed...)
		buf[i] ^= 0x01
		err := a.Decrypt(buf, iv, assoc)
		require.ErrorIs(t, err, crypto.ErrAuthFailed, "byte %d", i)
		assert.Equal(t, make([]byte, len(buf)), buf, "failed decrypt leaves no plaintext")
	}

	buf := append([]byte(nil), sealed...)
	assert.ErrorIs(t, a.Decrypt(buf, iv, []byte("HEADER")), crypto.ErrAuthFailed)
}

func TestAEADAuthSize(t *testing.T) {
	p := crypto.NewProvider()
	a, err := p.AllocAEAD("gcm(aes)")
	require.NoError(t, err)
	defer a.Free()

	assert.ErrorIs(t, a.SetAuthSize(8), crypto.ErrInvalidAuthSize)
	assert.ErrorIs(t, a.SetAuthSize(17), crypto.ErrInvalidAuthSize)

	// Auth size set before the key still applies
	require.NoError(t, a.SetAuthSize(12))
	require.NoError(t, a.SetKey(make([]byte, 16)))

	iv := make([]byte, 12)
	buf := make([]byte, 4+12)
	assert.ErrorIs(t, a.Encrypt(make([]byte, 4+16), 4, iv, nil), crypto.ErrInvalidLength)
	require.NoError(t, a.Encrypt(buf, 4, iv, nil))
	require.NoError(t, a.Decrypt(buf, iv, nil))
	assert.Equal(t, make([]byte, 4), buf[:4])

	assert.ErrorIs(t, a.Encrypt(buf, 4, make([]byte, 16), nil), crypto.ErrInvalidIV)
}

func TestHashVectors(t *testing.T) {
	p := crypto.NewProvider()

	for _, tv := range testdata.Hashes {
		t.Run(tv.Name, func(t *testing.T) {
			h, err := p.AllocHash(tv.Alg)
			require.NoError(t, err)
			defer h.Free()

			if tv.Key != "" {
				require.NoError(t, h.SetKey(mustHex(t, tv.Key)))
			}

			digest, err := h.Digest([]byte(tv.Message))
			require.NoError(t, err)
			assert.Equal(t, tv.Digest, hex.EncodeToString(digest))
			assert.Len(t, digest, h.Info().DigestSize)
		})
	}
}

func TestHashKeyHandling(t *testing.T) {
	p := crypto.NewProvider()

	h, err := p.AllocHash("sha512")
	require.NoError(t, err)
	defer h.Free()
	assert.ErrorIs(t, h.SetKey([]byte("key")), crypto.ErrKeyNotSupported)

	m, err := p.AllocHash("hmac(sha256)")
	require.NoError(t, err)
	defer m.Free()

	_, err = m.Digest([]byte("msg"))
	assert.ErrorIs(t, err, crypto.ErrNoKey)

	require.NoError(t, m.SetKey([]byte("key")))
	_, err = m.Digest([]byte("msg"))
	assert.NoError(t, err)

	m.Free()
	_, err = m.Digest([]byte("msg"))
	assert.ErrorIs(t, err, crypto.ErrNoKey)
}
