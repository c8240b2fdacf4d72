package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all formstate configuration.
type Config struct {
	// Form container behavior
	Form FormConfig `yaml:"form"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Host UI
	UI UIConfig `yaml:"ui"`
}

// Dirty recomputation policies.
const (
	DirtyPolicyFull     = "full"     // Full pairwise recompute after every operation
	DirtyPolicyTargeted = "targeted" // Single-index refresh for set/reset
)

// ValidDirtyPolicies lists all supported dirty recomputation policies.
var ValidDirtyPolicies = []string{DirtyPolicyFull, DirtyPolicyTargeted}

// FormConfig configures the form state container.
type FormConfig struct {
	TrackDirty  bool   `yaml:"track_dirty"`
	DirtyPolicy string `yaml:"dirty_policy"` // full, targeted
}

// Targeted reports whether the targeted dirty policy is selected.
func (c FormConfig) Targeted() bool {
	return c.DirtyPolicy == DirtyPolicyTargeted
}

// UIConfig configures the interactive editor.
type UIConfig struct {
	Theme         string `yaml:"theme"`          // auto, light, dark
	WatchDebounce string `yaml:"watch_debounce"` // delay before reloading a changed record file
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Form: FormConfig{
			TrackDirty:  true,
			DirtyPolicy: DirtyPolicyFull,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},

		UI: UIConfig{
			Theme:         "auto",
			WatchDebounce: "200ms",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Return defaults if config file doesn't exist
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	// Override with environment variables
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

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("FORMSTATE_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if debug := os.Getenv("FORMSTATE_DEBUG"); debug != "" {
		if on, err := strconv.ParseBool(debug); err == nil {
			c.Logging.DebugMode = on
		}
	}
	if policy := os.Getenv("FORMSTATE_DIRTY_POLICY"); policy != "" {
		c.Form.DirtyPolicy = strings.ToLower(policy)
	}
	if os.Getenv("FORMSTATE_DARK_MODE") == "1" {
		c.UI.Theme = "dark"
	}
}

// GetWatchDebounce returns the record file reload debounce as a duration.
func (c *Config) GetWatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.UI.WatchDebounce)
	if err != nil || d < 0 {
		return 200 * time.Millisecond
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validPolicy := false
	for _, p := range ValidDirtyPolicies {
		if c.Form.DirtyPolicy == p {
			validPolicy = true
			break
		}
	}
	if !validPolicy {
		return fmt.Errorf("invalid dirty policy: %s (valid: %v)", c.Form.DirtyPolicy, ValidDirtyPolicies)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s (valid: text, json)", c.Logging.Format)
	}

	switch c.UI.Theme {
	case "auto", "light", "dark":
	default:
		return fmt.Errorf("invalid theme: %s (valid: auto, light, dark)", c.UI.Theme)
	}

	return nil
}
