package selftest

import (
	"fmt"

	"github.com/TheMichaelB/cryptokat/internal/crypto"
	"github.com/TheMichaelB/cryptokat/internal/models"
)

// validateAlg rejects implementations that may not be tested here. It runs on
// every allocation because name resolution can change between runs.
func validateAlg(alg string, info crypto.AlgInfo) error {
	if info.Async {
		return &models.SelfTestError{Alg: alg, Op: opValidate, Kind: models.ErrCodeIneligible,
			Err: fmt.Errorf("unexpectedly got async implementation of %s (%s)", info.Name, info.DriverName)}
	}
	return nil
}
