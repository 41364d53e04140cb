package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigDirName  = ".config/fskanban"
	defaultConfigFileName = "config.yml"
	defaultDataDirName    = ".local/share/fskanban"

	envPrefix = "FSKANBAN"
)

// Config represents the application configuration
type Config struct {
	Storage StorageConfig `yaml:"storage" mapstructure:"storage" json:"storage"`
	Board   BoardConfig   `yaml:"board" mapstructure:"board" json:"board"`
	Log     LogConfig     `yaml:"log" mapstructure:"log" json:"log"`
	Watcher WatcherConfig `yaml:"watcher" mapstructure:"watcher" json:"watcher"`
	TUI     TUIConfig     `yaml:"tui" mapstructure:"tui" json:"tui"`
}

// StorageConfig holds storage-related configuration
type StorageConfig struct {
	// DataPath holds board/, tasks/ and archive.jsonl
	DataPath string `yaml:"data_path" mapstructure:"data_path" json:"data_path"`
}

// BoardConfig tunes the board repository
type BoardConfig struct {
	CacheTTL    time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl" json:"cache_ttl"`
	LockTimeout time.Duration `yaml:"lock_timeout" mapstructure:"lock_timeout" json:"lock_timeout"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level" json:"level"`
	Format     string `yaml:"format" mapstructure:"format" json:"format"` // "text" or "json"
	File       string `yaml:"file" mapstructure:"file" json:"file"`       // empty logs to stderr
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups" json:"max_backups"`
}

// WatcherConfig holds watcher daemon configuration
type WatcherConfig struct {
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce" json:"debounce"`
}

// TUIConfig holds terminal UI settings
type TUIConfig struct {
	// Refresh is the reload interval used when no daemon is running
	Refresh     time.Duration `yaml:"refresh" mapstructure:"refresh" json:"refresh"`
	BorderStyle string        `yaml:"border_style" mapstructure:"border_style" json:"border_style"`
	AccentColor string        `yaml:"accent_color" mapstructure:"accent_color" json:"accent_color"`
}

// Default returns the default configuration for a home directory
func Default(homeDir string) *Config {
	return &Config{
		Storage: StorageConfig{
			DataPath: filepath.Join(homeDir, defaultDataDirName),
		},
		Board: BoardConfig{
			CacheTTL:    30 * time.Second,
			LockTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Watcher: WatcherConfig{
			Debounce: 500 * time.Millisecond,
		},
		TUI: TUIConfig{
			Refresh:     2 * time.Second,
			BorderStyle: "rounded",
			AccentColor: "14",
		},
	}
}

// Loader handles loading and saving configuration
type Loader struct {
	configPath string
}

// NewLoader creates a config loader for ~/.config/fskanban/config.yml
func NewLoader() (*Loader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return &Loader{
		configPath: filepath.Join(homeDir, defaultConfigDirName, defaultConfigFileName),
	}, nil
}

// NewLoaderWithPath creates a config loader for an explicit file
func NewLoaderWithPath(path string) *Loader {
	return &Loader{configPath: path}
}

// Load reads the configuration: defaults, then the config file, then
// FSKANBAN_* environment variables. A missing file is created with defaults.
func (l *Loader) Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	defaults := Default(homeDir)

	if _, err := os.Stat(l.configPath); errors.Is(err, os.ErrNotExist) {
		if err := l.Save(defaults); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	setDefaults(v, defaults)
	v.SetConfigFile(l.configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.Storage.DataPath = expandHome(config.Storage.DataPath, homeDir)
	config.Log.File = expandHome(config.Log.File, homeDir)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Save persists the configuration to disk
func (l *Loader) Save(config *Config) error {
	configDir := filepath.Dir(l.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(l.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func (l *Loader) GetConfigPath() string {
	return l.configPath
}

// Validate rejects settings the rest of the program cannot work with
func (c *Config) Validate() error {
	if c.Storage.DataPath == "" {
		return fmt.Errorf("storage.data_path must be set")
	}
	if c.Board.CacheTTL < 0 {
		return fmt.Errorf("board.cache_ttl cannot be negative")
	}
	if c.Board.LockTimeout < 0 {
		return fmt.Errorf("board.lock_timeout cannot be negative")
	}
	if c.TUI.Refresh < 0 {
		return fmt.Errorf("tui.refresh cannot be negative")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q: must be text or json", c.Log.Format)
	}
	return nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("storage.data_path", d.Storage.DataPath)
	v.SetDefault("board.cache_ttl", d.Board.CacheTTL)
	v.SetDefault("board.lock_timeout", d.Board.LockTimeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("watcher.debounce", d.Watcher.Debounce)
	v.SetDefault("tui.refresh", d.TUI.Refresh)
	v.SetDefault("tui.border_style", d.TUI.BorderStyle)
	v.SetDefault("tui.accent_color", d.TUI.AccentColor)
}

func expandHome(path, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
