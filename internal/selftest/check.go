package selftest

import (
	"bytes"
	"fmt"

	"github.com/TheMichaelB/cryptokat/internal/models"
)

// verifier compares results against expected values. When brokenAlg names
// the algorithm under test, the result is corrupted first so the run must
// fail; this proves the harness detects tampering.
type verifier struct {
	brokenAlg string
}

// check compares actual with expected. Callers size actual from the vector,
// so a length difference means the harness itself is wrong.
func (v verifier) check(alg, op string, actual, expected []byte) error {
	if len(actual) != len(expected) {
		return &models.SelfTestError{Alg: alg, Op: op, Kind: models.ErrCodeInvalidVector,
			Err: fmt.Errorf("result is %d bytes, expected %d", len(actual), len(expected))}
	}

	if v.brokenAlg != "" && alg == v.brokenAlg && len(actual) > 0 {
		actual[0] ^= 0xff
	}

	// Fixed, public inputs: constant time comparison is not needed.
	if !bytes.Equal(actual, expected) {
		return &models.SelfTestError{Alg: alg, Op: op, Kind: models.ErrCodeMismatch}
	}
	return nil
}
