package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level      string            `mapstructure:"level"`
	Path       string            `mapstructure:"path"`
	Components map[string]string `mapstructure:"components"`
}

// HistoryConfig configures run-history recording.
type HistoryConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Path          string `mapstructure:"path"`
	RetentionDays int    `mapstructure:"retention_days"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	Settle string `mapstructure:"settle"`
}

// Config represents the application configuration. Every field has a
// compiled-in default; running without any config file is the normal
// case and behaves identically to the defaults listed here.
type Config struct {
	// DefaultPath is organized when no path argument is given.
	// Empty means a path argument is required.
	DefaultPath string `mapstructure:"default_path"`

	// Output selects the default formatter (pretty, plain, json).
	Output string `mapstructure:"output"`

	// Extensions adds or overrides extension→category mappings on top
	// of the built-in table.
	Extensions map[string]string `mapstructure:"extensions"`

	// SkipPatterns adds skip patterns on top of the built-in set.
	SkipPatterns []string `mapstructure:"skip_patterns"`

	History HistoryConfig `mapstructure:"history"`
	Logging LoggingConfig `mapstructure:"logging"`
	Watch   WatchConfig   `mapstructure:"watch"`
}

// Load loads configuration from the optional config file and
// environment variables. Config file locations (in order):
//   - $XDG_CONFIG_HOME/tidy/config.yaml
//   - $HOME/.config/tidy/config.yaml
//
// Environment variables are prefixed with TIDY_ (e.g. TIDY_OUTPUT).
// A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, "tidy"))
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	v.AddConfigPath(filepath.Join(homeDir, ".config", "tidy"))

	v.SetEnvPrefix("TIDY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistoryPath()
	}
	if strings.HasPrefix(cfg.History.Path, "~") {
		cfg.History.Path = filepath.Join(homeDir, cfg.History.Path[1:])
	}

	return &cfg, nil
}

// setDefaults registers the compiled-in defaults on a viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("default_path", "")
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.retention_days", DefaultRetentionDays)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.path", "")
	v.SetDefault("watch.settle", DefaultWatchSettle)
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "tidy"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "tidy"), nil
}

// DataDir returns $XDG_DATA_HOME/tidy/ for the history database.
func DataDir() string {
	return filepath.Join(xdg.DataHome, "tidy")
}

// StateDir returns $XDG_STATE_HOME/tidy/ for log files.
func StateDir() string {
	return filepath.Join(xdg.StateHome, "tidy")
}

// DefaultHistoryPath returns the default history database path.
func DefaultHistoryPath() string {
	return filepath.Join(DataDir(), "history")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(StateDir(), "tidy.log")
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	if err := os.MkdirAll(DataDir(), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	return nil
}

// ExpandPath expands ~ in a path to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, path[1:]), nil
}

// WriteDefault writes a commented default config file if none exists.
// Returns nil without touching anything if a config file is already
// present.
func WriteDefault() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	configDir, err := ConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	defaultConfig := fmt.Sprintf(`# Tidy File Organizer Configuration

# Path organized when tidy is run without an argument.
# Empty means a path argument is required.
default_path: ""

# Default output format: pretty, plain, json
output: %s

# Extra extension -> category mappings, merged over the built-in table.
# extensions:
#   sketch: Images
#   aseprite: Images

# Extra file name patterns to skip (glob syntax, case-insensitive).
# skip_patterns:
#   - "~$*"

# Run history settings
history:
  enabled: true
  # Database path (empty means $XDG_DATA_HOME/tidy/history)
  path: ""
  retention_days: %d

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: %s
  # Log file path (empty disables file logging)
  path: ""
  # Per-component log levels
  # components:
  #   scan: debug

# Watch mode settings
watch:
  # How long a new file must sit unchanged before it is moved.
  settle: %s
`, DefaultOutput, DefaultRetentionDays, DefaultLogLevel, DefaultWatchSettle)

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}

	return nil
}
