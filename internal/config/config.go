package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	defaultServerURL    = "http://localhost:8000"
	defaultTimeoutSecs  = 15
	defaultCompactWidth = 80
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bookctl", "config.yml")
}

// Load reads the config from disk (or env). A missing file yields the
// defaults: dark mode on, local server.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom reads the config from an explicit path. An empty path uses
// BOOKCTL_CONFIG or the default location.
func LoadFrom(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.url", defaultServerURL)
	v.SetDefault("server.timeout_seconds", defaultTimeoutSecs)
	v.SetDefault("ui.dark_mode", true)
	v.SetDefault("ui.compact_width", defaultCompactWidth)

	v.SetEnvPrefix("BOOKCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		configPath = os.Getenv("BOOKCTL_CONFIG")
	}
	if configPath == "" {
		configPath = DefaultPath()
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		// Not finding the config file is fine. Defaults apply and the
		// first Save creates it.
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Server.URL = strings.TrimRight(cfg.Server.URL, "/")
	return &cfg, nil
}

// Save writes the config to the default path, creating the directory as
// needed. Called on every preference change so the dark-mode toggle
// survives restarts.
func Save(cfg *Config) error {
	return SaveTo(cfg, "")
}

// SaveTo writes the config to an explicit path. An empty path uses
// BOOKCTL_CONFIG or the default location.
func SaveTo(cfg *Config, path string) error {
	if path == "" {
		path = os.Getenv("BOOKCTL_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}
