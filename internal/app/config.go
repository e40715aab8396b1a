// Package app provides application-level configuration and initialization.
package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/lazyvibe/startboard/internal/host"
	"github.com/lazyvibe/startboard/internal/logging"
	"github.com/lazyvibe/startboard/internal/model"
	"github.com/lazyvibe/startboard/internal/notify"
)

const (
	// AppName is the directory name used under the user config home.
	AppName = "startboard"
	// ConfigFileName is the YAML config file inside the config dir.
	ConfigFileName = "config.yaml"
	// LogFileName is the default log file inside the config dir.
	LogFileName = "startboard.log"
	// EnvPrefix marks environment overrides, e.g. STARTBOARD_ASCII_ART__FONT_SIZE.
	EnvPrefix = "STARTBOARD_"

	maxConfigFileSize = 1024 * 1024 // 1MB
	maxRecentPaths    = 20
)

// ErrConfigTooLarge is returned when the config file exceeds the size limit.
var ErrConfigTooLarge = errors.New("config file too large")

// Config holds the application configuration.
type Config struct {
	// AsciiArt is the dashboard splash.
	AsciiArt model.AsciiArtConfig `koanf:"ascii_art" yaml:"ascii_art"`
	// Open is how projects are opened.
	Open host.OpenConfig `koanf:"open" yaml:"open"`
	// Notify controls desktop notifications.
	Notify notify.Config `koanf:"notify" yaml:"notify"`
	// Log configures the log output.
	Log logging.Config `koanf:"log" yaml:"log"`
	// RecentPaths stores recently added project paths for completion.
	RecentPaths []string `koanf:"recent_paths" yaml:"recent_paths,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig(configDir string) *Config {
	cfg := &Config{}
	applyDefaults(cfg, configDir)
	return cfg
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config, configDir string) {
	art := model.DefaultAsciiArt()
	if cfg.AsciiArt.Text == "" {
		cfg.AsciiArt.Text = art.Text
	}
	if cfg.AsciiArt.FontFamily == "" {
		cfg.AsciiArt.FontFamily = art.FontFamily
	}
	if cfg.AsciiArt.FontSize <= 0 {
		cfg.AsciiArt.FontSize = art.FontSize
	}
	if cfg.AsciiArt.LineHeight <= 0 {
		cfg.AsciiArt.LineHeight = art.LineHeight
	}

	if strings.TrimSpace(cfg.Open.Command) == "" {
		cfg.Open.Command = host.DefaultOpenCommand
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = logging.FormatConsole
	}
	if cfg.Log.File == "" && configDir != "" {
		cfg.Log.File = filepath.Join(configDir, LogFileName)
	}

	if cfg.RecentPaths == nil {
		cfg.RecentPaths = []string{}
	}
}

// DefaultConfigDir returns the Start Board configuration directory.
func DefaultConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if available, otherwise default to ~/.config
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppName), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// LoadConfig loads configuration from the YAML file, then overrides with
// environment variables, then fills defaults.
//
// Environment variables drop the STARTBOARD_ prefix, are lowercased, and use
// a double underscore between sections:
//
//	STARTBOARD_ASCII_ART__FONT_SIZE -> ascii_art.font_size
//	STARTBOARD_NOTIFY__DESKTOP      -> notify.desktop
//
// A missing file is not an error.
func LoadConfig(configDir string) (*Config, error) {
	k := koanf.New(".")

	content, err := readConfigFile(ConfigPath(configDir))
	if err != nil {
		return nil, err
	}
	if content != nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", ConfigPath(configDir), err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyDefaults(&cfg, configDir)
	return &cfg, nil
}

// envKey maps STARTBOARD_SECTION__FIELD_NAME to section.field_name.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// readConfigFile returns the file content, or nil when it does not exist.
func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, info.Size(), maxConfigFileSize)
	}

	content, err := io.ReadAll(io.LimitReader(f, maxConfigFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// SaveConfig saves the configuration to disk as YAML.
func SaveConfig(configDir string, config *Config) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yamlv3.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	path := ConfigPath(configDir)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

// AddRecentPath moves path to the front of the recent paths list.
func (c *Config) AddRecentPath(path string) {
	path = filepath.Clean(path)

	paths := make([]string, 0, len(c.RecentPaths)+1)
	paths = append(paths, path)
	for _, p := range c.RecentPaths {
		if p != path {
			paths = append(paths, p)
		}
	}
	if len(paths) > maxRecentPaths {
		paths = paths[:maxRecentPaths]
	}
	c.RecentPaths = paths
}

// GetRecentPaths returns recent paths matching the given prefix.
func (c *Config) GetRecentPaths(prefix string) []string {
	if prefix == "" {
		return c.RecentPaths
	}

	var matches []string
	for _, p := range c.RecentPaths {
		if strings.HasPrefix(p, prefix) {
			matches = append(matches, p)
		}
	}
	return matches
}
