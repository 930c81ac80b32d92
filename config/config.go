package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/allgood/ratelimit"
)

// FileNames are the file names Find looks for, in order.
var FileNames = []string{"allgood.yaml", ".allgood.yaml"}

// ErrNotFound indicates no configuration file exists in the current
// directory or any parent.
var ErrNotFound = errors.New("config: no configuration file found")

// Duration is a time.Duration that unmarshals from YAML strings such as
// "500ms" or "2s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the standard library duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// CheckConfig overrides settings for one named check.
type CheckConfig struct {
	// Timeout overrides the check's timeout.
	Timeout Duration `yaml:"timeout"`

	// Run overrides the check's rate-limit expression.
	Run string `yaml:"run"`

	// Disabled excludes the check from registration.
	Disabled bool `yaml:"disabled"`
}

// Config declares engine-wide settings and per-check overrides.
type Config struct {
	// Environment namespaces cached verdicts. Default: "default".
	Environment string `yaml:"environment"`

	// CacheDir roots the rate-limit tracker's files.
	CacheDir string `yaml:"cache_dir"`

	// DefaultTimeout bounds checks with no explicit timeout.
	DefaultTimeout Duration `yaml:"default_timeout"`

	// Checks maps check names to per-check overrides.
	Checks map[string]CheckConfig `yaml:"checks"`
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &cfg, nil
}

// Find walks from the working directory toward the filesystem root looking
// for a configuration file. Returns ErrNotFound when none exists.
func Find() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Validate rejects malformed settings. Interval expressions are parsed here
// so a bad one fails startup instead of the first run.
func (c *Config) Validate() error {
	if c.DefaultTimeout < 0 {
		return fmt.Errorf("default_timeout must not be negative")
	}
	for name, cc := range c.Checks {
		if cc.Timeout < 0 {
			return fmt.Errorf("check %q: timeout must not be negative", name)
		}
		if cc.Run != "" {
			if _, err := ratelimit.ParseInterval(cc.Run); err != nil {
				return fmt.Errorf("check %q: %w", name, err)
			}
		}
	}
	return nil
}
