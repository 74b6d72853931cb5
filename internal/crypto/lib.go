package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
)

// Library exposes primitives that callers link against directly instead of
// allocating through a Provider. They are a separate code path and are
// tested separately.
type Library interface {
	AESExpandKey(key []byte) (*AESContext, error)
	// AESEncrypt and AESDecrypt process exactly one block; dst and src may
	// be the same slice.
	AESEncrypt(ctx *AESContext, dst, src []byte)
	AESDecrypt(ctx *AESContext, dst, src []byte)
	SHA256(data []byte) [sha256.Size]byte
}

// AESContext is an expanded AES key.
type AESContext struct {
	keyLen int
	block  cipher.Block
}

// KeyLen returns the raw key length in bytes.
func (c *AESContext) KeyLen() int { return c.keyLen }

type softwareLibrary struct{}

// NewLibrary returns the built-in library functions.
func NewLibrary() Library {
	return softwareLibrary{}
}

func (softwareLibrary) AESExpandKey(key []byte) (*AESContext, error) {
	if err := checkAESKey(key); err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &AESContext{keyLen: len(key), block: block}, nil
}

func (softwareLibrary) AESEncrypt(ctx *AESContext, dst, src []byte) {
	ctx.block.Encrypt(dst, src)
}

func (softwareLibrary) AESDecrypt(ctx *AESContext, dst, src []byte) {
	ctx.block.Decrypt(dst, src)
}

func (softwareLibrary) SHA256(data []byte) [sha256.Size]byte {
	return sha256.Sum256(data)
}
