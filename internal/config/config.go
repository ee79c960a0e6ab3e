package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPath overrides the config file location.
const EnvPath = "LBCHECK_CONFIG"

// Config holds optional defaults loaded from ~/.config/lbcheck/config.yaml.
type Config struct {
	DefaultProfile string `yaml:"default_profile"`
	DefaultRegion  string `yaml:"default_region"`

	// Topology defaults.
	Exclude            string            `yaml:"exclude"`
	RemoteFlags        map[string]string `yaml:"remote_flags"`
	FlagTimeoutSeconds int               `yaml:"flag_timeout_seconds"`
}

// Path returns the config file location.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lbcheck", "config.yaml"), nil
}

// Load reads the config file. Returns zero-value Config if the file doesn't exist.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return &Config{}, nil
	}
	return LoadFile(path)
}

// LoadFile reads a specific config file. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Merge applies CLI flag overrides. Flags take precedence over config defaults.
func (c *Config) Merge(profile, region string) (string, string) {
	p := c.DefaultProfile
	if profile != "" {
		p = profile
	}
	r := c.DefaultRegion
	if region != "" {
		r = region
	}
	return p, r
}

// FlagTimeout returns the per-request remote flag timeout, or zero when unset.
func (c *Config) FlagTimeout() time.Duration {
	if c.FlagTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.FlagTimeoutSeconds) * time.Second
}
