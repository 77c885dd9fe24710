// Package config loads engine settings from the config file, the
// environment, and defaults, in that order of preference.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "yaml"
	configDir  = ".olivetti"

	envPrefix = "OLIVETTI"
)

// Config holds every tunable the engine reads at startup.
type Config struct {
	// DataDir holds the state file, backups, indexes, and the archive.
	DataDir string `mapstructure:"data_dir"`
	// APIKey authorizes calls to the collaborator endpoint.
	APIKey string `mapstructure:"api_key"`
	// Model names the collaborator model.
	Model string `mapstructure:"model"`
	// BaseURL overrides the collaborator endpoint.
	BaseURL string `mapstructure:"base_url"`
	// ArchiveEnabled turns on the long-term sample archive.
	ArchiveEnabled bool `mapstructure:"archive_enabled"`
	// LogFile is the rotating log file. Empty disables file logging.
	LogFile string `mapstructure:"log_file"`
	// Verbose raises console log output to debug level.
	Verbose bool `mapstructure:"verbose"`
}

// Load reads the config file from ~/.olivetti (if present), applies
// OLIVETTI_* environment overrides, and fills in defaults.
func Load(cfg *viper.Viper) (*Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	defaultDir := filepath.Join(homeDir, configDir)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(defaultDir)

	cfg.SetDefault("data_dir", defaultDir)
	cfg.SetDefault("model", "gpt-4o-mini")
	cfg.SetDefault("archive_enabled", true)
	cfg.SetDefault("log_file", filepath.Join(defaultDir, "olivetti.log"))

	cfg.SetEnvPrefix(envPrefix)
	cfg.AutomaticEnv()
	// AutomaticEnv alone does not map underscored keys; bind them.
	for _, key := range []string{"data_dir", "api_key", "model", "base_url", "archive_enabled", "log_file", "verbose"} {
		if err := cfg.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var out Config
	if err := cfg.Unmarshal(&out); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if out.DataDir == "" {
		return nil, errors.New("data dir is empty")
	}
	return &out, nil
}

// EnsureDataDir creates the data directory if it does not exist.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0o700)
}

// StatePath returns the state file location inside the data directory.
func (c *Config) StatePath() string {
	return filepath.Join(c.DataDir, "olivetti_state.json")
}

// ArchivePath returns the sample archive location.
func (c *Config) ArchivePath() string {
	return filepath.Join(c.DataDir, "archive.db")
}

// PassageIndexPath returns the passage index location.
func (c *Config) PassageIndexPath() string {
	return filepath.Join(c.DataDir, "passages.idx")
}
