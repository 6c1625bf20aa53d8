package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultTheme = "default"
	DefaultWeeks = 8
)

// Config holds the attend configuration file.
type Config struct {
	// Timezone is an IANA zone name used to decide calendar days.
	// Empty means the system local zone.
	Timezone  string          `toml:"timezone"`
	DataDir   string          `toml:"data_dir"`
	Dashboard DashboardConfig `toml:"dashboard"`
}

type DashboardConfig struct {
	Theme string `toml:"theme"`
	Weeks int    `toml:"weeks"`
}

// Paths holds the resolved XDG locations.
type Paths struct {
	ConfigDir  string
	DataDir    string
	ConfigFile string
}

// GetPaths returns the resolved paths, respecting XDG env vars.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataDir := envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))

	attendConfig := filepath.Join(configDir, "attend")
	return Paths{
		ConfigDir:  attendConfig,
		DataDir:    filepath.Join(dataDir, "attend"),
		ConfigFile: filepath.Join(attendConfig, "config.toml"),
	}
}

// Load reads the config file, returning defaults if it does not exist.
func Load() (*Config, error) {
	return LoadFile(GetPaths().ConfigFile)
}

// LoadFile reads config from path. Missing fields keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Dashboard.Weeks <= 0 {
		cfg.Dashboard.Weeks = DefaultWeeks
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to the standard config file.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := os.MkdirAll(paths.ConfigDir, 0o755); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ResolvedDataDir returns DataDir, falling back to the XDG data directory.
func (c *Config) ResolvedDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return GetPaths().DataDir
}

// LogDir is where the CLI and menu bar append their logs.
func (c *Config) LogDir() (string, error) {
	logDir := filepath.Join(c.ResolvedDataDir(), "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return "", err
	}
	return logDir, nil
}

func defaultConfig() *Config {
	return &Config{
		Dashboard: DashboardConfig{
			Theme: DefaultTheme,
			Weeks: DefaultWeeks,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
