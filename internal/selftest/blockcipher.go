package selftest

import (
	"crypto/aes"
	"fmt"

	"github.com/TheMichaelB/cryptokat/internal/models"
)

// testBlockCipher encrypts one block in place, then decrypts it again.
func testBlockCipher(h *harness, alg string, vec BlockCipherVector) error {
	c, err := h.provider.AllocCipher(alg)
	if err != nil {
		return fail(alg, opAllocate, models.ErrCodeAllocation, err)
	}
	defer c.Free()

	info := c.Info()
	if err := validateAlg(alg, info); err != nil {
		return err
	}
	if info.BlockSize != vec.BlockSize {
		return fail(alg, opSizes, models.ErrCodeSizeMismatch,
			fmt.Errorf("block size is %d, vector has %d", info.BlockSize, vec.BlockSize))
	}

	if err := c.SetKey(vec.Key); err != nil {
		return fail(alg, opSetKey, models.ErrCodeKeySet, err)
	}

	block := dup(vec.Plaintext)
	if err := c.Encrypt(block, block); err != nil {
		return fail(alg, opEncrypt, models.ErrCodeOperation, err)
	}
	if err := h.verify.check(alg, opEncrypt, block, vec.Ciphertext); err != nil {
		return err
	}

	if err := c.Decrypt(block, block); err != nil {
		return fail(alg, opDecrypt, models.ErrCodeOperation, err)
	}
	return h.verify.check(alg, opDecrypt, block, vec.Plaintext)
}

// testAES covers plain AES twice: through the provider, then through the
// directly linked library functions, which may be a different implementation.
func testAES(h *harness, alg string, vec BlockCipherVector) error {
	if vec.BlockSize != aes.BlockSize {
		return fail(alg, opVector, models.ErrCodeInvalidVector,
			fmt.Errorf("AES vector has block size %d", vec.BlockSize))
	}

	if err := testBlockCipher(h, alg, vec); err != nil {
		return err
	}

	ctx, err := h.lib.AESExpandKey(vec.Key)
	if err != nil {
		return fail(alg, opExpandKey, models.ErrCodeKeySet, err)
	}

	block := make([]byte, aes.BlockSize)
	h.lib.AESEncrypt(ctx, block, vec.Plaintext)
	if err := h.verify.check(alg, opEncryptLib, block, vec.Ciphertext); err != nil {
		return err
	}

	h.lib.AESDecrypt(ctx, block, block)
	return h.verify.check(alg, opDecryptLib, block, vec.Plaintext)
}
