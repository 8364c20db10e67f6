// Package config loads nexus settings from a TOML file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/nexus/internal/ledger"
)

// Config holds all nexus configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Profiles   ProfilesConfig   `toml:"profiles"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds storage settings.
type GeneralConfig struct {
	DataDir    string   `toml:"data_dir,omitempty"`
	StoreKey   string   `toml:"store_key"`
	LegacyKeys []string `toml:"legacy_keys,omitempty"`
}

// ProfilesConfig holds the bootstrap admin and the defaults for new profiles.
type ProfilesConfig struct {
	AdminName       string   `toml:"admin_name"`
	AdminBudget     float64  `toml:"admin_budget"`
	AdminCategories []string `toml:"admin_categories"`
	UserBudget      float64  `toml:"user_budget"`
	UserCategories  []string `toml:"user_categories"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	seed := ledger.DefaultSeed()
	admin, _ := seed.AdminBudget.Float64()
	user, _ := seed.UserBudget.Float64()
	return Config{
		General: GeneralConfig{
			StoreKey: ledger.DefaultKey,
		},
		Profiles: ProfilesConfig{
			AdminName:       seed.AdminName,
			AdminBudget:     admin,
			AdminCategories: seed.AdminCats,
			UserBudget:      user,
			UserCategories:  seed.UserCats,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "nexus")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "nexus")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied last.
func Load() (Config, error) {
	cfg, err := LoadFile(Path())
	if err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

// LoadFile reads the config at path over the defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// LoadEnv reads a .env file from the working directory into the process
// environment. Variables already set win. A missing file is not an error.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("NEXUS_DATA_DIR"); v != "" {
		cfg.General.DataDir = v
	}
	if v := os.Getenv("NEXUS_THEME"); v != "" {
		cfg.Appearance.Theme = v
	}
	if v := os.Getenv("NEXUS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
}

// DataDir returns the directory holding the database and log file.
func (c Config) DataDir() string {
	if c.General.DataDir != "" {
		return c.General.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "nexus")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "nexus")
}

// DBPath returns the SQLite database path.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir(), "nexus.db")
}

// LogPath returns the TUI log file path.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir(), "nexus.log")
}

// StoreKey returns the document key, falling back to the default.
func (c Config) StoreKey() string {
	if c.General.StoreKey == "" {
		return ledger.DefaultKey
	}
	return c.General.StoreKey
}

// Seed converts the profile settings into ledger defaults. Empty settings
// keep the stock values.
func (c Config) Seed() ledger.Seed {
	seed := ledger.DefaultSeed()
	p := c.Profiles
	if strings.TrimSpace(p.AdminName) != "" {
		seed.AdminName = p.AdminName
	}
	if p.AdminBudget > 0 {
		seed.AdminBudget = decimal.NewFromFloat(p.AdminBudget)
	}
	if len(p.AdminCategories) > 0 {
		seed.AdminCats = p.AdminCategories
	}
	if p.UserBudget > 0 {
		seed.UserBudget = decimal.NewFromFloat(p.UserBudget)
	}
	if len(p.UserCategories) > 0 {
		seed.UserCats = p.UserCategories
	}
	return seed
}
