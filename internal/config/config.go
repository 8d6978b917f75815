// Package config resolves application configuration from YAML with
// explicit defaults. Core packages never read config themselves; the
// binary resolves it once and passes values down.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// StoreConfig locates the SQLite corpus database.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig configures the HTTP collaborator layer.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Config is the root application configuration structure.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Server ServerConfig `yaml:"server"`
}

// Load reads a config from path. A missing file returns defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./campaign-rag.yaml first, then
// ~/.config/campaign-rag/config.yaml, falling back to defaults when
// neither exists.
func LoadDefault() (*Config, string, error) {
	cwdPath := "campaign-rag.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	return defaultConfig(), "", nil
}

// Save writes the config to path, creating directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "campaign-rag", "config.yaml"), nil
}

func defaultConfig() *Config {
	return &Config{
		Store:  StoreConfig{Path: "campaign-rag.db"},
		Server: ServerConfig{Addr: ":8080"},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Store.Path == "" {
		cfg.Store.Path = "campaign-rag.db"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
}
