package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// Loader handles configuration loading from multiple sources.
type Loader struct {
	configPath string
	envPrefix  string
}

// NewLoader creates a config loader.
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath: configPath,
		envPrefix:  "CRYPTOKAT",
	}
}

// Load reads configuration from defaults, file and environment, in that order
// of increasing precedence.
func (l *Loader) Load() (*Config, error) {
	v := viper.New()

	// Start with defaults
	setDefaults(v, DefaultConfig())

	// Environment overrides, e.g. CRYPTOKAT_SELFTEST_BROKEN_ALG
	v.SetEnvPrefix(l.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if l.configPath != "" {
		v.SetConfigFile(l.configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	} else {
		// Try default locations
		v.SetConfigName("cryptokat")
		for _, dir := range l.defaultDirs() {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("load config file %s: %w", v.ConfigFileUsed(), err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	// Validate final config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// defaultDirs returns directories searched for cryptokat.{toml,json,yaml}.
func (l *Loader) defaultDirs() []string {
	dirs := []string{"."}

	if homeDir, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(homeDir, ".config", "cryptokat"),
			filepath.Join(homeDir, ".cryptokat"),
		)
	}

	return dirs
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("selftest.error_injection", cfg.SelfTest.ErrorInjection)
	v.SetDefault("selftest.broken_alg", cfg.SelfTest.BrokenAlg)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.color", cfg.Log.Color)

	v.SetDefault("storage.data_dir", cfg.Storage.DataDir)
	v.SetDefault("storage.history_backend", cfg.Storage.HistoryBackend)
	v.SetDefault("storage.history_file", cfg.Storage.HistoryFile)
}

// SaveExample writes an example TOML config file.
func SaveExample(path string) error {
	var buf bytes.Buffer
	buf.WriteString("# cryptokat configuration file\n")
	buf.WriteString("# Environment variables override these settings using the CRYPTOKAT_ prefix,\n")
	buf.WriteString("# for example: CRYPTOKAT_LOG_LEVEL=debug\n\n")

	if err := toml.NewEncoder(&buf).Encode(DefaultConfig()); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
