package selftest

import (
	"crypto/sha256"
	"fmt"

	"github.com/TheMichaelB/cryptokat/internal/models"
)

func testHash(h *harness, alg string, vec HashVector) error {
	tfm, err := h.provider.AllocHash(alg)
	if err != nil {
		return fail(alg, opAllocate, models.ErrCodeAllocation, err)
	}
	defer tfm.Free()

	info := tfm.Info()
	if err := validateAlg(alg, info); err != nil {
		return err
	}
	if info.DigestSize != len(vec.Digest) {
		return fail(alg, opSizes, models.ErrCodeSizeMismatch,
			fmt.Errorf("digest size is %d, vector has %d", info.DigestSize, len(vec.Digest)))
	}

	if vec.Key != nil {
		if err := tfm.SetKey(vec.Key); err != nil {
			return fail(alg, opSetKey, models.ErrCodeKeySet, err)
		}
	}

	digest, err := tfm.Digest(vec.Message)
	if err != nil {
		return fail(alg, opDigest, models.ErrCodeOperation, err)
	}
	if len(digest) != len(vec.Digest) {
		return fail(alg, opDigest, models.ErrCodeOperation,
			fmt.Errorf("digest returned %d bytes, declared %d", len(digest), info.DigestSize))
	}
	return h.verify.check(alg, opDigest, digest, vec.Digest)
}

// testSHA256Library covers the standalone SHA-256 function, which the
// keyed hash test does not reach.
func testSHA256Library(h *harness, alg string, vec HashVector) error {
	if len(vec.Digest) != sha256.Size {
		return fail(alg, opVector, models.ErrCodeInvalidVector,
			fmt.Errorf("SHA-256 vector has %d-byte digest", len(vec.Digest)))
	}

	digest := h.lib.SHA256(vec.Message)
	return h.verify.check(alg, opDigestLib, digest[:], vec.Digest)
}
