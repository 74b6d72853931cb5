package main

import (
	"github.com/spf13/cobra"

	"github.com/TheMichaelB/cryptokat/internal/crypto"
	"github.com/TheMichaelB/cryptokat/internal/events"
	"github.com/TheMichaelB/cryptokat/internal/models"
	"github.com/TheMichaelB/cryptokat/internal/selftest"
	"github.com/TheMichaelB/cryptokat/internal/state"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every self-test",
	Long: `Run executes the known-answer tests in order and stops at the first
failure. The exit status is non-zero if any test failed.

--broken-alg corrupts the named algorithm's result before it is checked,
which must make the run fail.`,
	Example: `  cryptokat run
  cryptokat run --broken-alg "cbc(aes)"
  cryptokat run --json --no-history`,
	Args: cobra.NoArgs,
	RunE: runSelfTests,
}

var (
	runBrokenAlg string
	runNoHistory bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runBrokenAlg, "broken-alg", "",
		"Corrupt this algorithm's result (error injection)")
	runCmd.Flags().BoolVar(&runNoHistory, "no-history", false,
		"Do not record the run")
}

func runSelfTests(cmd *cobra.Command, args []string) error {
	log := events.FromContext(cmd.Context())

	brokenAlg := cfg.BrokenAlg()
	if runBrokenAlg != "" {
		brokenAlg = runBrokenAlg
	}

	runner := selftest.NewRunner(crypto.NewProvider(), log, selftest.Options{
		BrokenAlg: brokenAlg,
	})
	if brokenAlg != "" && !hasTest(runner.Tests(), brokenAlg) {
		printWarning("No self-test exists for %q, error injection has no effect", brokenAlg)
	}

	report := runner.Execute()
	ctx := events.WithRunID(cmd.Context(), report.ID)

	if !runNoHistory {
		recordRun(events.FromContext(ctx), report)
	}

	if jsonOutput {
		printJSON(report)
	} else {
		printReport(report)
		if report.Passed {
			printSuccess("All self-tests passed")
		} else {
			failure := report.Failure()
			printError("Self-tests failed for %s (%s)", failure.Alg, failure.ErrorKind)
		}
	}

	if !report.Passed {
		return errSelfTestsFailed
	}
	return nil
}

// recordRun stores the report. History is best effort and never changes the
// verdict.
func recordRun(log *events.Logger, report *models.RunReport) {
	if cfg.Storage.HistoryBackend == "none" {
		return
	}

	if err := cfg.EnsureDirectories(); err != nil {
		log.WithError(err).Warn("could not record run history")
		return
	}

	store, err := state.Open(cfg, log)
	if err != nil {
		log.WithError(err).Warn("could not record run history")
		return
	}
	defer store.Close()

	if err := store.Append(report); err != nil {
		log.WithError(err).Warn("could not record run history")
		return
	}
	log.WithField("backend", cfg.Storage.HistoryBackend).Debug("run recorded")
}

func hasTest(tests []selftest.Test, alg string) bool {
	for _, t := range tests {
		if t.Alg == alg {
			return true
		}
	}
	return false
}
