package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TheMichaelB/cryptokat/internal/config"
	"github.com/TheMichaelB/cryptokat/internal/events"
)

var (
	cfgFile    string
	jsonOutput bool
	logLevel   string

	cfg    *config.Config
	logger *events.Logger
)

// errSelfTestsFailed is returned after the failure has already been reported.
var errSelfTestsFailed = errors.New("self-tests failed")

var rootCmd = &cobra.Command{
	Use:   "cryptokat",
	Short: "Known-answer self-tests for the built-in crypto algorithms",
	Long: `cryptokat runs a known-answer test against every approved algorithm
and reports whether each implementation produced the expected result.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Config file (default: ./cryptokat.toml or ~/.config/cryptokat/cryptokat.toml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level override (debug, info, warn, error)")
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.Log.Level = logLevel
		if err := loaded.Validate(); err != nil {
			return err
		}
	}
	cfg = loaded

	if cfg.Log.File != "" {
		if err := cfg.EnsureDirectories(); err != nil {
			return err
		}
	}

	logger, err = events.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	events.SetDefault(logger)
	cmd.SetContext(events.WithLogger(cmd.Context(), logger))

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSelfTestsFailed) {
			if jsonOutput {
				printJSON(map[string]interface{}{
					"success": false,
					"error":   err.Error(),
				})
			} else {
				printError("Error: %v", err)
			}
		}
		os.Exit(1)
	}
}
