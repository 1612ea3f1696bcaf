package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Gateway GatewayConfig
	Session SessionConfig
	UI      UIConfig
}

// GatewayConfig holds remote API settings.
type GatewayConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig holds the admin session record location.
type SessionConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string
	DateFormat     string
}

// Load reads configuration from file and env. Env var overrides use prefix TOURBOOK_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("gateway.base_url", "http://localhost:5000")
	v.SetDefault("gateway.timeout", "10s")
	v.SetDefault("session.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "tourbook", "session.json"))
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.date_format", "2006-01-02")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TOURBOOK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "tourbook"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TOURBOOK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Gateway.Timeout <= 0 {
		c.Gateway.Timeout = 10 * time.Second
	}
	c.Gateway.BaseURL = strings.TrimRight(c.Gateway.BaseURL, "/")
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
// Used by the settings view for non-sensitive preferences; the session token
// never lives in the config file.
func Save(cfg Config) error {
	path := os.Getenv("TOURBOOK_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "tourbook", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("gateway.base_url", cfg.Gateway.BaseURL)
	v.Set("gateway.timeout", cfg.Gateway.Timeout.String())
	v.Set("session.path", cfg.Session.Path)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.date_format", cfg.UI.DateFormat)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
