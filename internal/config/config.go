// Package config provides configuration management for alph using Viper.
package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/alph-cli/alph/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = "alph"

// Defaults for the safe-edit pipeline.
const (
	// DefaultIOTimeout is the budget for a single file operation. A hung
	// filesystem (network share) must not block the process indefinitely.
	DefaultIOTimeout = 15 * time.Second

	// DefaultBackupMaxAgeDays is the backup retention window in days.
	DefaultBackupMaxAgeDays = 30

	// DefaultBackupMaxCount is the number of backups retained per file.
	DefaultBackupMaxCount = 10
)

// AtomicMode selects the finalize strategy for atomic writes.
type AtomicMode string

const (
	// AtomicAuto renames and falls back to copy on cross-device or
	// permission failures.
	AtomicAuto AtomicMode = "auto"
	// AtomicCopy always uses the copy + fsync strategy.
	AtomicCopy AtomicMode = "copy"
	// AtomicRename always uses rename with no fallback.
	AtomicRename AtomicMode = "rename"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version       int      `mapstructure:"version" yaml:"version"`
	IOTimeoutMS   int      `mapstructure:"io_timeout_ms" yaml:"io_timeout_ms"`
	AtomicMode    string   `mapstructure:"atomic_mode" yaml:"atomic_mode"`
	Debug         bool     `mapstructure:"debug" yaml:"debug"`
	DefaultAgents []string `mapstructure:"default_agents" yaml:"default_agents"`
	Backup        Backup   `mapstructure:"backup" yaml:"backup"`
}

// Backup contains backup retention settings.
type Backup struct {
	MaxAgeDays int `mapstructure:"max_age_days" yaml:"max_age_days"`
	MaxCount   int `mapstructure:"max_count" yaml:"max_count"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(filepath.Join(paths.ConfigHome(), AppName))

	// Environment variable support: ALPH_IO_TIMEOUT_MS, ALPH_ATOMIC_MODE,
	// ALPH_DEBUG, ALPH_BACKUP_MAX_COUNT, ...
	viper.SetEnvPrefix("ALPH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("io_timeout_ms", int(DefaultIOTimeout/time.Millisecond))
	viper.SetDefault("atomic_mode", string(AtomicAuto))
	viper.SetDefault("debug", false)
	viper.SetDefault("default_agents", paths.Agents())
	viper.SetDefault("backup.max_age_days", DefaultBackupMaxAgeDays)
	viper.SetDefault("backup.max_count", DefaultBackupMaxCount)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found
// (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If the user specified a path, a missing file is an error;
			// an implicit load falls back to defaults.
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	return &cfg, nil
}

// IOTimeout returns the configured I/O timeout as a duration.
// Non-positive values fall back to the default.
func (c *Config) IOTimeout() time.Duration {
	if c.IOTimeoutMS <= 0 {
		return DefaultIOTimeout
	}
	return time.Duration(c.IOTimeoutMS) * time.Millisecond
}

// Atomic returns the configured atomic-write mode.
// Unrecognized values fall back to AtomicAuto.
func (c *Config) Atomic() AtomicMode {
	switch AtomicMode(c.AtomicMode) {
	case AtomicCopy:
		return AtomicCopy
	case AtomicRename:
		return AtomicRename
	default:
		return AtomicAuto
	}
}
