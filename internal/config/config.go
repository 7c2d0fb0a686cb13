package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied by setDefaults.
const (
	DefaultMaxDepth      = 10000
	DefaultServerAddr    = ":7788"
	DefaultServerTimeout = 5 * time.Second
)

// Config represents the top-level minilang.yaml configuration.
type Config struct {
	// Scoping selects the evaluator's call environment policy:
	// "static" (callee sees only its parameters) or "dynamic" (callee sees
	// a copy of the caller's environment). Defaults to "static".
	Scoping string `yaml:"scoping,omitempty"`

	// SkipCheck runs the evaluator without the static checker gate.
	SkipCheck bool `yaml:"skipCheck,omitempty"`

	// MaxDepth caps evaluator recursion. Defaults to DefaultMaxDepth.
	MaxDepth int `yaml:"maxDepth,omitempty"`

	Server ServerConfig `yaml:"server,omitempty"`
}

// ServerConfig configures `minilang serve`.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`

	// Timeout bounds a single Check or Run request.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a minilang.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses minilang.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for minilang.yaml starting from dir and walking up
// to parent directories. Returns "" and nil error if none is found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// IsDynamic reports whether the dynamic scoping policy is selected.
func (c *Config) IsDynamic() bool {
	return c.Scoping == ScopingDynamic
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	switch c.Scoping {
	case "", ScopingStatic, ScopingDynamic:
	default:
		return fmt.Errorf("%s: scoping must be %q or %q, got %q", path, ScopingStatic, ScopingDynamic, c.Scoping)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%s: maxDepth must not be negative", path)
	}
	if c.Server.Timeout < 0 {
		return fmt.Errorf("%s: server.timeout must not be negative", path)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Scoping == "" {
		c.Scoping = ScopingStatic
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = DefaultServerTimeout
	}
}
