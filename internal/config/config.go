package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all application configuration.
type Config struct {
	// Self-test behavior
	SelfTest SelfTestConfig `mapstructure:"selftest" toml:"selftest" json:"selftest"`

	// Logging
	Log LogConfig `mapstructure:"log" toml:"log" json:"log"`

	// Run history storage
	Storage StorageConfig `mapstructure:"storage" toml:"storage" json:"storage"`
}

// SelfTestConfig controls the known-answer test run.
type SelfTestConfig struct {
	// ErrorInjection must be enabled for BrokenAlg to take effect.
	ErrorInjection bool `mapstructure:"error_injection" toml:"error_injection" json:"error_injection"`

	// BrokenAlg names one algorithm whose result is corrupted before
	// verification. Used only to prove the self-tests catch tampering.
	BrokenAlg string `mapstructure:"broken_alg" toml:"broken_alg" json:"broken_alg,omitempty"`
}

// LogConfig for logging behavior.
type LogConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level"`   // debug, info, warn, error
	Format string `mapstructure:"format" toml:"format" json:"format"` // text, json
	File   string `mapstructure:"file" toml:"file" json:"file"`       // Log file path (empty = stderr)
	Color  bool   `mapstructure:"color" toml:"color" json:"color"`    // Colorize text output on terminals
}

// StorageConfig for the run history.
type StorageConfig struct {
	DataDir        string `mapstructure:"data_dir" toml:"data_dir" json:"data_dir"`
	HistoryBackend string `mapstructure:"history_backend" toml:"history_backend" json:"history_backend"` // sqlite, bolt, none
	HistoryFile    string `mapstructure:"history_file" toml:"history_file" json:"history_file"`          // Relative to DataDir unless absolute
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SelfTest: SelfTestConfig{
			ErrorInjection: false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Color:  true,
		},
		Storage: StorageConfig{
			DataDir:        ".cryptokat",
			HistoryBackend: "sqlite",
			HistoryFile:    "history.db",
		},
	}
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Log.Format] {
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}

	validBackends := map[string]bool{"sqlite": true, "bolt": true, "none": true}
	if !validBackends[c.Storage.HistoryBackend] {
		return fmt.Errorf("invalid history backend: %s", c.Storage.HistoryBackend)
	}

	if c.Storage.HistoryBackend != "none" && c.Storage.HistoryFile == "" {
		return errors.New("storage.history_file is required")
	}

	if c.SelfTest.BrokenAlg != "" && !c.SelfTest.ErrorInjection {
		return errors.New("selftest.broken_alg requires selftest.error_injection")
	}

	return nil
}

// BrokenAlg returns the algorithm to corrupt, or "" when injection is off.
func (c *Config) BrokenAlg() string {
	if !c.SelfTest.ErrorInjection {
		return ""
	}
	return c.SelfTest.BrokenAlg
}

// HistoryPath resolves the history file location.
func (c *Config) HistoryPath() string {
	if filepath.IsAbs(c.Storage.HistoryFile) {
		return c.Storage.HistoryFile
	}
	return filepath.Join(c.Storage.DataDir, c.Storage.HistoryFile)
}

// EnsureDirectories creates required directories.
func (c *Config) EnsureDirectories() error {
	var dirs []string

	if c.Storage.HistoryBackend != "none" {
		dirs = append(dirs, filepath.Dir(c.HistoryPath()))
	}

	if c.Log.File != "" {
		dirs = append(dirs, filepath.Dir(c.Log.File))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
