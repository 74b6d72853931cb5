package crypto

import (
	stdcrypto "crypto"
	"fmt"

	drbg "github.com/canonical/go-sp800.90a-drbg"
)

// HMAC_DRBG(SHA-256) needs 256 bits of entropy plus a 128-bit nonce.
const (
	drbgEntropyLen = 32
	drbgNonceLen   = 16
)

type drbgAlgorithm struct {
	driver   string
	priority int
	newDRBG  func(AlgInfo) (Transform, error)
}

var drbgAlgorithms = []drbgAlgorithm{
	{"drbg_nopr_hmac_sha256", PriorityGeneric, newHMACDRBG(false)},
	{"drbg_pr_hmac_sha256", PriorityFallback, newHMACDRBG(true)},
}

// hmacDRBG is only usable through the test entry points: it is seeded with
// caller supplied entropy and has no live source to reseed from.
type hmacDRBG struct {
	info AlgInfo
	pr   bool
	d    *drbg.DRBG
}

func newHMACDRBG(predictionResistant bool) func(AlgInfo) (Transform, error) {
	return func(info AlgInfo) (Transform, error) {
		return &hmacDRBG{info: info, pr: predictionResistant}, nil
	}
}

func (g *hmacDRBG) Info() AlgInfo { return g.info }

// PredictionResistant reports whether every request must carry fresh entropy.
func (g *hmacDRBG) PredictionResistant() bool { return g.pr }

// ResetTest instantiates from entropy, whose final 16 bytes serve as nonce.
func (g *hmacDRBG) ResetTest(entropy, pers []byte) error {
	if len(entropy) < drbgEntropyLen+drbgNonceLen {
		return fmt.Errorf("%w: need %d bytes of entropy and nonce, got %d",
			ErrInvalidLength, drbgEntropyLen+drbgNonceLen, len(entropy))
	}
	split := len(entropy) - drbgNonceLen
	d, err := drbg.NewHMACWithExternalEntropy(stdcrypto.SHA256, entropy[:split], entropy[split:], pers, nil)
	if err != nil {
		return fmt.Errorf("instantiate: %w", err)
	}
	g.d = d
	return nil
}

func (g *hmacDRBG) GenerateTest(n int, addtl, entropy []byte) ([]byte, error) {
	if g.d == nil {
		return nil, ErrNotSeeded
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: request of %d bytes", ErrInvalidLength, n)
	}

	out := make([]byte, n)
	if g.pr {
		if len(entropy) == 0 {
			return nil, ErrEntropyRequired
		}
		if len(entropy) < drbgEntropyLen {
			return nil, fmt.Errorf("%w: need %d bytes of entropy, got %d", ErrInvalidLength, drbgEntropyLen, len(entropy))
		}
		// Additional input is consumed by the reseed.
		g.d.ReseedWithExternalEntropy(entropy, addtl)
		if err := g.d.Generate(nil, out); err != nil {
			return nil, fmt.Errorf("generate: %w", err)
		}
		return out, nil
	}

	if len(entropy) != 0 {
		return nil, ErrEntropyNotAllowed
	}
	if err := g.d.Generate(addtl, out); err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	return out, nil
}

func (g *hmacDRBG) Free() { g.d = nil }
