package selftest

import (
	"fmt"

	"github.com/TheMichaelB/cryptokat/internal/models"
)

// testSkcipher runs one in-place encryption and decryption. The IV is
// updated by each request, so it is copied fresh before each direction.
func testSkcipher(h *harness, alg string, vec SkcipherVector) error {
	s, err := h.provider.AllocSkcipher(alg)
	if err != nil {
		return fail(alg, opAllocate, models.ErrCodeAllocation, err)
	}
	defer s.Free()

	info := s.Info()
	if err := validateAlg(alg, info); err != nil {
		return err
	}
	if info.IVSize != len(vec.IV) {
		return fail(alg, opSizes, models.ErrCodeSizeMismatch,
			fmt.Errorf("IV size is %d, vector has %d", info.IVSize, len(vec.IV)))
	}

	if err := s.SetKey(vec.Key); err != nil {
		return fail(alg, opSetKey, models.ErrCodeKeySet, err)
	}

	message := dup(vec.Plaintext)
	iv := make([]byte, len(vec.IV))

	copy(iv, vec.IV)
	if err := s.Encrypt(message, iv); err != nil {
		return fail(alg, opEncrypt, models.ErrCodeOperation, err)
	}
	if err := h.verify.check(alg, opEncrypt, message, vec.Ciphertext); err != nil {
		return err
	}

	copy(iv, vec.IV)
	if err := s.Decrypt(message, iv); err != nil {
		return fail(alg, opDecrypt, models.ErrCodeOperation, err)
	}
	return h.verify.check(alg, opDecrypt, message, vec.Plaintext)
}
