package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"letterbox/internal/logging"

	"gopkg.in/yaml.v3"
)

// Config holds all letterbox configuration.
type Config struct {
	Solver  SolverConfig  `yaml:"solver"`
	Input   InputConfig   `yaml:"input"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// SolverConfig configures the remote solving endpoint.
type SolverConfig struct {
	BaseURL string `yaml:"base_url"`
	Path    string `yaml:"path"`
	Timeout string `yaml:"timeout"`
}

// Incomplete-input policies.
const (
	OnIncompleteIgnore = "ignore" // abort silently
	OnIncompletePrompt = "prompt" // abort and ask for all letters
)

// InputConfig configures the letter grid.
type InputConfig struct {
	OnIncomplete string `yaml:"on_incomplete"`
	// Prefill loads the default puzzle into the grid on start.
	Prefill bool `yaml:"prefill"`
}

// UIConfig configures rendering.
type UIConfig struct {
	Separator string `yaml:"separator"`
	Theme     string `yaml:"theme"` // auto, light, dark
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`  // debug, info, warn, error
	Format     string          `yaml:"format"` // console, json
	File       string          `yaml:"file"`
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Solver: SolverConfig{
			BaseURL: "http://localhost:8080",
			Path:    "/solve",
			Timeout: "30s",
		},
		Input: InputConfig{
			OnIncomplete: OnIncompleteIgnore,
		},
		UI: UIConfig{
			Separator: " → ",
			Theme:     "auto",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns ~/.config/letterbox/config.yaml, or a relative
// path when the user config dir is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".letterbox", "config.yaml")
	}
	return filepath.Join(dir, "letterbox", "config.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		logging.Config("no config at %s, using defaults", path)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	} else {
		logging.Config("loaded config from %s", path)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	logging.Config("wrote config to %s", path)

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LETTERBOX_SOLVER_URL"); v != "" {
		c.Solver.BaseURL = v
	}
	if v := os.Getenv("LETTERBOX_TIMEOUT"); v != "" {
		c.Solver.Timeout = v
	}
	if v := os.Getenv("LETTERBOX_ON_INCOMPLETE"); v != "" {
		c.Input.OnIncomplete = strings.ToLower(v)
	}
	if v := os.Getenv("LETTERBOX_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LETTERBOX_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
}

// GetTimeout returns the solver timeout as a duration.
func (c *Config) GetTimeout() time.Duration {
	const fallback = 30 * time.Second
	if c.Solver.Timeout == "" {
		return fallback
	}
	d, err := time.ParseDuration(c.Solver.Timeout)
	if err != nil || d <= 0 {
		logging.ConfigWarn("invalid solver timeout %q, using %v", c.Solver.Timeout, fallback)
		return fallback
	}
	return d
}

// Endpoint returns the full solve URL.
func (c *Config) Endpoint() string {
	path := c.Solver.Path
	if path == "" {
		path = "/solve"
	}
	return strings.TrimRight(c.Solver.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// PromptOnIncomplete reports whether an incomplete grid should be reported
// to the user rather than ignored.
func (c *Config) PromptOnIncomplete() bool {
	return c.Input.OnIncomplete == OnIncompletePrompt
}

// ValidPolicies lists the incomplete-input policies.
var ValidPolicies = []string{OnIncompleteIgnore, OnIncompletePrompt}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Solver.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid solver base_url %q: want http(s)://host[:port]", c.Solver.BaseURL)
	}

	if c.Solver.Timeout != "" {
		d, err := time.ParseDuration(c.Solver.Timeout)
		if err != nil {
			return fmt.Errorf("invalid solver timeout %q: %w", c.Solver.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("solver timeout must be positive, got %s", d)
		}
	}

	valid := false
	for _, p := range ValidPolicies {
		if c.Input.OnIncomplete == p {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid input on_incomplete: %s (valid: %v)", c.Input.OnIncomplete, ValidPolicies)
	}

	switch c.UI.Theme {
	case "", "auto", "light", "dark":
	default:
		return fmt.Errorf("invalid ui theme: %s (valid: auto, light, dark)", c.UI.Theme)
	}

	return nil
}
