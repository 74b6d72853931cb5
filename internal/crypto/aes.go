package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

const aesBlockSize = aes.BlockSize

func checkAESKey(key []byte) error {
	switch len(key) {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("%w: aes key of %d bytes", ErrInvalidKey, len(key))
	}
}

// aesKey holds an expanded AES key and a copy of the raw key for wiping.
type aesKey struct {
	key   []byte
	block cipher.Block
}

func (k *aesKey) setKey(key []byte) error {
	if err := checkAESKey(key); err != nil {
		return err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	k.free()
	k.key = append([]byte(nil), key...)
	k.block = block
	return nil
}

func (k *aesKey) free() {
	wipe(k.key)
	k.key = nil
	k.block = nil
}

type aesCipher struct {
	info AlgInfo
	aesKey
}

func newAESCipher(info AlgInfo) (Transform, error) {
	return &aesCipher{info: info}, nil
}

func (c *aesCipher) Info() AlgInfo { return c.info }

func (c *aesCipher) SetKey(key []byte) error { return c.setKey(key) }

func (c *aesCipher) Encrypt(dst, src []byte) error {
	if err := c.checkBlock(dst, src); err != nil {
		return err
	}
	c.block.Encrypt(dst, src)
	return nil
}

func (c *aesCipher) Decrypt(dst, src []byte) error {
	if err := c.checkBlock(dst, src); err != nil {
		return err
	}
	c.block.Decrypt(dst, src)
	return nil
}

func (c *aesCipher) checkBlock(dst, src []byte) error {
	if c.block == nil {
		return ErrNoKey
	}
	if len(src) != aesBlockSize || len(dst) < aesBlockSize {
		return fmt.Errorf("%w: want one %d-byte block", ErrInvalidLength, aesBlockSize)
	}
	return nil
}

func (c *aesCipher) Free() { c.free() }
