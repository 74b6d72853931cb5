package selftest

import (
	"fmt"

	"github.com/TheMichaelB/cryptokat/internal/models"
)

// testAEAD seals the plaintext into a buffer with room for the tag, checks
// ciphertext and tag together, then opens the same buffer again.
func testAEAD(h *harness, alg string, vec AEADVector) error {
	tagSize := vec.TagSize()

	a, err := h.provider.AllocAEAD(alg)
	if err != nil {
		return fail(alg, opAllocate, models.ErrCodeAllocation, err)
	}
	defer a.Free()

	info := a.Info()
	if err := validateAlg(alg, info); err != nil {
		return err
	}
	if info.IVSize != len(vec.IV) {
		return fail(alg, opSizes, models.ErrCodeSizeMismatch,
			fmt.Errorf("IV size is %d, vector has %d", info.IVSize, len(vec.IV)))
	}

	if err := a.SetKey(vec.Key); err != nil {
		return fail(alg, opSetKey, models.ErrCodeKeySet, err)
	}
	if err := a.SetAuthSize(tagSize); err != nil {
		return fail(alg, opSetAuthSize, models.ErrCodeKeySet, err)
	}

	message := make([]byte, len(vec.Ciphertext))
	copy(message, vec.Plaintext)

	var assoc []byte
	if len(vec.Assoc) > 0 {
		assoc = dup(vec.Assoc)
	}

	iv := dup(vec.IV)
	if err := a.Encrypt(message, len(vec.Plaintext), iv, assoc); err != nil {
		return fail(alg, opEncrypt, models.ErrCodeOperation, err)
	}
	if err := h.verify.check(alg, opEncrypt, message, vec.Ciphertext); err != nil {
		return err
	}

	// An authentication failure here is a hard error.
	copy(iv, vec.IV)
	if err := a.Decrypt(message, iv, assoc); err != nil {
		return fail(alg, opDecrypt, models.ErrCodeOperation, err)
	}
	return h.verify.check(alg, opDecrypt, message[:len(vec.Plaintext)], vec.Plaintext)
}
