package crypto

import (
	"crypto/cipher"
	"fmt"
)

const (
	gcmIVSize     = 12
	gcmMinTagSize = 12
	gcmMaxTagSize = 16
)

type gcmAEAD struct {
	info     AlgInfo
	authSize int
	aesKey
	aead cipher.AEAD
}

func newGCM(info AlgInfo) (Transform, error) {
	return &gcmAEAD{info: info, authSize: gcmMaxTagSize}, nil
}

func (g *gcmAEAD) Info() AlgInfo { return g.info }

func (g *gcmAEAD) SetKey(key []byte) error {
	if err := g.setKey(key); err != nil {
		return err
	}
	return g.rebuild()
}

// SetAuthSize may be called before or after SetKey.
func (g *gcmAEAD) SetAuthSize(size int) error {
	if size < gcmMinTagSize || size > gcmMaxTagSize {
		return fmt.Errorf("%w: %d", ErrInvalidAuthSize, size)
	}
	g.authSize = size
	if g.block == nil {
		return nil
	}
	return g.rebuild()
}

func (g *gcmAEAD) rebuild() error {
	aead, err := cipher.NewGCMWithTagSize(g.block, g.authSize)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAuthSize, err)
	}
	g.aead = aead
	return nil
}

func (g *gcmAEAD) Encrypt(buf []byte, ptLen int, iv, assoc []byte) error {
	if err := g.check(iv); err != nil {
		return err
	}
	if ptLen < 0 || len(buf) != ptLen+g.authSize {
		return fmt.Errorf("%w: buffer of %d bytes for %d-byte plaintext", ErrInvalidLength, len(buf), ptLen)
	}
	// Sealing into buf[:0] stays within buf's capacity.
	g.aead.Seal(buf[:0], iv, buf[:ptLen], assoc)
	return nil
}

func (g *gcmAEAD) Decrypt(buf []byte, iv, assoc []byte) error {
	if err := g.check(iv); err != nil {
		return err
	}
	if len(buf) < g.authSize {
		return fmt.Errorf("%w: ciphertext shorter than tag", ErrInvalidLength)
	}
	if _, err := g.aead.Open(buf[:0], iv, buf, assoc); err != nil {
		wipe(buf)
		return ErrAuthFailed
	}
	return nil
}

func (g *gcmAEAD) check(iv []byte) error {
	if g.aead == nil {
		return ErrNoKey
	}
	if len(iv) != gcmIVSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidIV, len(iv), gcmIVSize)
	}
	return nil
}

func (g *gcmAEAD) Free() {
	g.free()
	g.aead = nil
}
