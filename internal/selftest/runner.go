package selftest

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/TheMichaelB/cryptokat/internal/crypto"
	"github.com/TheMichaelB/cryptokat/internal/events"
	"github.com/TheMichaelB/cryptokat/internal/models"
)

// Options configure a Runner.
type Options struct {
	// BrokenAlg names an algorithm whose results are corrupted before
	// verification. Empty disables error injection.
	BrokenAlg string

	// Library supplies the directly linked primitives. Defaults to
	// crypto.NewLibrary().
	Library crypto.Library

	// Tests overrides the test list. Defaults to DefaultTests().
	Tests []Test
}

// Runner executes known-answer tests in order and stops at the first failure.
type Runner struct {
	provider crypto.Provider
	logger   *events.Logger
	opts     Options
}

// NewRunner creates a runner against provider.
func NewRunner(provider crypto.Provider, logger *events.Logger, opts Options) *Runner {
	if opts.Library == nil {
		opts.Library = crypto.NewLibrary()
	}
	if opts.Tests == nil {
		opts.Tests = DefaultTests()
	}
	if logger == nil {
		logger = events.Discard()
	}

	return &Runner{
		provider: provider,
		logger:   logger,
		opts:     opts,
	}
}

// Tests returns the tests this runner executes, in order.
func (r *Runner) Tests() []Test {
	return append([]Test(nil), r.opts.Tests...)
}

// RunAll runs every test and reports whether all passed. What to do with a
// failure is up to the caller.
func (r *Runner) RunAll() bool {
	return r.Execute().Passed
}

// RunTest runs a single test and returns its first error.
func (r *Runner) RunTest(t Test) error {
	return t.run(r.harness())
}

// Execute runs every test and returns the full report. Tests after the first
// failure are reported as skipped and never executed.
func (r *Runner) Execute() *models.RunReport {
	report := models.NewRunReport(uuid.NewString(), time.Now().UTC())
	report.BrokenAlg = r.opts.BrokenAlg

	logger := r.logger.WithField("run_id", report.ID)
	if r.opts.BrokenAlg != "" {
		logger.WithField("alg", r.opts.BrokenAlg).Warn("error injection enabled")
	}
	logger.Info("running self-tests")

	h := r.harness()
	failed := false

	for _, t := range r.opts.Tests {
		result := models.TestResult{
			Alg:    t.Alg,
			Kind:   t.Kind.String(),
			Status: models.StatusSkip,
		}
		if failed {
			report.Results = append(report.Results, result)
			continue
		}

		start := time.Now()
		err := t.run(h)
		result.Duration = time.Since(start)

		if err != nil {
			failed = true
			result.Status = models.StatusFail
			result.Error = err.Error()

			var ste *models.SelfTestError
			if errors.As(err, &ste) {
				result.Op = ste.Op
				result.ErrorKind = ste.Kind
			}

			logger.WithFields(map[string]interface{}{
				"alg":  t.Alg,
				"op":   result.Op,
				"kind": string(result.ErrorKind),
			}).WithError(err).Error("self-tests failed for algorithm")
		} else {
			result.Status = models.StatusPass
			logger.WithFields(map[string]interface{}{
				"alg":      t.Alg,
				"duration": result.Duration.String(),
			}).Debug("self-test passed")
		}

		report.Results = append(report.Results, result)
	}

	report.Duration = time.Since(report.StartedAt)
	report.Passed = !failed

	if report.Passed {
		logger.Info("all self-tests passed")
	} else {
		logger.Error("self-tests failed")
	}

	return report
}

func (r *Runner) harness() *harness {
	return &harness{
		provider: r.provider,
		lib:      r.opts.Library,
		verify:   verifier{brokenAlg: r.opts.BrokenAlg},
	}
}
