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
	Database DatabaseConfig `mapstructure:"database"`
	UI       UIConfig       `mapstructure:"ui"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat     string `mapstructure:"date_format"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
	SortField      string `mapstructure:"sort_field"`
	SortDirection  string `mapstructure:"sort_direction"`
}

// Load reads configuration from file and env. Env var overrides use prefix BOOKSHELF_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "bookshelf", "bookshelf.db"))
	v.SetDefault("ui.date_format", "2006-01-02")
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.sort_field", "title")
	v.SetDefault("ui.sort_direction", "ascending")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("BOOKSHELF_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "bookshelf"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("BOOKSHELF")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory
// if needed. Used by the TUI to persist sort preferences.
func Save(cfg Config) error {
	path := os.Getenv("BOOKSHELF_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "bookshelf", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.sort_field", cfg.UI.SortField)
	v.Set("ui.sort_direction", cfg.UI.SortDirection)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
