// Package config loads project configuration from newtype.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the config file looked up in the project root.
const DefaultFilename = "newtype.yaml"

// Config describes a newtype project.
type Config struct {
	// Src is the directory scanned for .nt sources.
	Src string `yaml:"src"`
	// Out is the directory .d.ts output is written to.
	Out string `yaml:"out"`
	// Target is the TypeScript version the output must be valid for.
	Target string `yaml:"target"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Src:    ".",
		Out:    ".",
		Target: "5.0.0",
	}
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// LoadDir loads DefaultFilename from dir, falling back to defaults when
// the file does not exist.
func LoadDir(dir string) (*Config, error) {
	path := filepath.Join(dir, DefaultFilename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.Src == "" {
		return fmt.Errorf("src must not be empty")
	}
	if c.Out == "" {
		return fmt.Errorf("out must not be empty")
	}
	if _, err := semver.NewVersion(c.Target); err != nil {
		return fmt.Errorf("invalid target version %q: %w", c.Target, err)
	}
	return nil
}
