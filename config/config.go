// Package config resolves the giftlog home directory and the user's saved
// defaults. Preferences live in a JSON file under the home dir; an
// optional .env file next to it and GIFTLOG_* environment variables
// override individual values, which keeps scripted use simple.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Settings are the saved calculation defaults. Zero values mean "not set"
// and fall back to the calc package defaults.
type Settings struct {
	Currency  string  `json:"currency,omitempty"`
	BaseValue float64 `json:"baseValue,omitempty"`
	Variation int     `json:"variation,omitempty"`
	Decimals  *int    `json:"decimals,omitempty"`
}

// Config is the resolved environment for one invocation: where the files
// live and what the saved defaults are.
type Config struct {
	Home     string
	Settings Settings

	// Warning carries a non-fatal message from loading a corrupt
	// settings file.
	Warning string
}

const (
	settingsFile = "config.json"
	ledgerFile   = "giftlog.log"
	budgetsFile  = "budgets.json"
	personsFile  = "persons.json"
	cacheDir     = "cache"
)

// Load resolves the home directory, applies the optional .env file, reads
// the settings file, and applies environment overrides. A missing settings
// file is normal for a fresh install; a corrupt one degrades to defaults
// with a warning.
func Load() (*Config, error) {
	home, err := homeDir()
	if err != nil {
		return nil, err
	}

	// Optional overrides; a missing .env is not an error.
	_ = godotenv.Load(filepath.Join(home, ".env"))

	cfg := &Config{Home: home}

	data, err := os.ReadFile(filepath.Join(home, settingsFile))
	switch {
	case os.IsNotExist(err):
		// Fresh install, defaults apply.
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := json.Unmarshal(data, &cfg.Settings); err != nil {
			cfg.Warning = fmt.Sprintf("config file is unreadable, using defaults: %v", err)
			cfg.Settings = Settings{}
		}
	}

	applyEnv(&cfg.Settings)

	return cfg, nil
}

// homeDir returns GIFTLOG_HOME when set, otherwise ~/.config/giftlog.
func homeDir() (string, error) {
	if dir := os.Getenv("GIFTLOG_HOME"); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(base, "giftlog"), nil
}

// applyEnv overlays GIFTLOG_* environment variables on the settings.
func applyEnv(s *Settings) {
	if v := os.Getenv("GIFTLOG_CURRENCY"); v != "" {
		s.Currency = v
	}
	if v := os.Getenv("GIFTLOG_BASE_VALUE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			s.BaseValue = f
		}
	}
	if v := os.Getenv("GIFTLOG_VARIATION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.Variation = n
		}
	}
	if v := os.Getenv("GIFTLOG_DECIMALS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.Decimals = &n
		}
	}
}

// Save writes the settings file, creating the home directory on first use.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.Home, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c.Settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	path := filepath.Join(c.Home, settingsFile)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// LedgerPath is the append-only gift log.
func (c *Config) LedgerPath() string { return filepath.Join(c.Home, ledgerFile) }

// BudgetsPath is the budget store file.
func (c *Config) BudgetsPath() string { return filepath.Join(c.Home, budgetsFile) }

// PersonsPath is the person registry file.
func (c *Config) PersonsPath() string { return filepath.Join(c.Home, personsFile) }

// CacheDir holds transient data such as fetched exchange rates.
func (c *Config) CacheDir() string { return filepath.Join(c.Home, cacheDir) }
