package selftest

import (
	"fmt"

	"github.com/TheMichaelB/cryptokat/internal/models"
)

// testDRBG resets the generator from the vector's entropy, then makes two
// requests. The first only advances the state; the second is compared.
// Prediction-resistant vectors supply entropy for each request.
func testDRBG(h *harness, alg string, vec DRBGVector) error {
	rng, err := h.provider.AllocRNG(alg)
	if err != nil {
		return fail(alg, opAllocate, models.ErrCodeAllocation, err)
	}
	defer rng.Free()

	if err := validateAlg(alg, rng.Info()); err != nil {
		return err
	}

	if err := rng.ResetTest(vec.Entropy, vec.Pers); err != nil {
		return fail(alg, opReset, models.ErrCodeKeySet, err)
	}

	if _, err := rng.GenerateTest(len(vec.Output), vec.AddtlA, vec.EntropyPRA); err != nil {
		return fail(alg, opGetBytes1, models.ErrCodeOperation, err)
	}

	output, err := rng.GenerateTest(len(vec.Output), vec.AddtlB, vec.EntropyPRB)
	if err != nil {
		return fail(alg, opGetBytes2, models.ErrCodeOperation, err)
	}
	if len(output) != len(vec.Output) {
		return fail(alg, opGetBytes2, models.ErrCodeOperation,
			fmt.Errorf("generator returned %d bytes, requested %d", len(output), len(vec.Output)))
	}

	return h.verify.check(alg, opGetBytes, output, vec.Output)
}
