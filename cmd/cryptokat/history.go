package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TheMichaelB/cryptokat/internal/events"
	"github.com/TheMichaelB/cryptokat/internal/state"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded self-test runs",
	Example: `  cryptokat history
  cryptokat history --limit 5 --json`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20,
		"Maximum runs to show (0 for all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if cfg.Storage.HistoryBackend == "none" {
		printInfo("History is disabled (storage.history_backend = none)")
		return nil
	}

	store, err := state.Open(cfg, events.FromContext(cmd.Context()))
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	runs, err := store.List(historyLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if jsonOutput {
		printJSON(runs)
		return nil
	}

	if len(runs) == 0 {
		printInfo("No runs recorded")
		return nil
	}

	printHeading("run history")
	for _, run := range runs {
		verdict := successColor.Sprint("PASS")
		detail := ""
		if !run.Passed {
			verdict = errorColor.Sprint("FAIL")
			if f := run.Failure(); f != nil {
				detail = fmt.Sprintf("  %s %s [%s]", f.Alg, f.Op, f.ErrorKind)
			}
		}
		if run.BrokenAlg != "" {
			detail += fmt.Sprintf("  (broken: %s)", run.BrokenAlg)
		}
		fmt.Printf("  %s  %s  %s  %s%s\n",
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			verdict, run.ID, formatDuration(run.Duration), detail)
	}
	return nil
}
