// Package config loads the client configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// FileName is the config file name
const FileName = "shortclip-config.json"

// Config holds the client configuration, loaded once at startup.
type Config struct {
	Host  string `mapstructure:"host"`
	Token string `mapstructure:"token"`
	Tray  bool   `mapstructure:"tray"`
}

// Load reads the config file from the platform config directory.
// A missing or malformed file is an error; the caller treats it as fatal.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return loadFrom(path)
}

func loadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config at %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config at %s: %w", path, err)
	}

	// The macOS Keychain takes precedence over the token in the file.
	if token, err := keychainToken(); err == nil && token != "" {
		cfg.Token = token
	}

	if cfg.Host == "" {
		return nil, fmt.Errorf("config at %s: host is required", path)
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("config at %s: token is required", path)
	}

	return &cfg, nil
}

// Path returns the platform-specific config file location:
// $XDG_CONFIG_HOME or $HOME/.config on Unix-like systems,
// %APPDATA% on Windows.
func Path() (string, error) {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("APPDATA is not set")
		}
		return filepath.Join(appData, FileName), nil
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home := os.Getenv("HOME")
		if home == "" {
			return "", fmt.Errorf("HOME is not set")
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, FileName), nil
}
