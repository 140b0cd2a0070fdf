package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	UI       UIConfig
	Demo     DemoConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path           string
	MigrationsPath string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat     string
	CurrencySymbol string
	Timezone       string
}

// DemoConfig controls demo-data seeding for first runs.
type DemoConfig struct {
	Seed bool
}

// Load reads configuration from file and env. Env var overrides use
// prefix XPENSEMANAGER_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "xpensemanager", "xpensemanager.db"))
	v.SetDefault("database.migrations_path", "internal/database/migrations")
	v.SetDefault("ui.date_format", "02 Jan 2006")
	v.SetDefault("ui.currency_symbol", "₹")
	v.SetDefault("ui.timezone", "Asia/Kolkata")
	v.SetDefault("demo.seed", false)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("XPENSEMANAGER_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "xpensemanager"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("XPENSEMANAGER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// config file is optional
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory
// if needed. Used by the TUI settings view for non-sensitive preferences.
func Save(cfg Config) error {
	path := os.Getenv("XPENSEMANAGER_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "xpensemanager", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.migrations_path", cfg.Database.MigrationsPath)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("demo.seed", cfg.Demo.Seed)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
