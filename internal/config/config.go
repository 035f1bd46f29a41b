// Package config provides reading and writing of seek configuration.
// Supports both global (~/.seek/config.yaml) and local (.seek/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// EnvTelemetry enables telemetry for one invocation when set to "1" or "true".
const EnvTelemetry = "SEEK_TELEMETRY"

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.seek/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is directory-specific config in .seek/config.yaml
	ScopeLocal
)

// Author identifies who ran a search in the audit log.
type Author struct {
	Name string `yaml:"name,omitempty"`
}

// Workspace lists the directories searches may cover.
type Workspace struct {
	Roots []string `yaml:"roots,omitempty"`
}

// Search holds engine tuning.
type Search struct {
	Timeout       *string  `yaml:"timeout,omitempty"`
	MaxLineLength *int     `yaml:"max_line_length,omitempty"`
	Disable       []string `yaml:"disable,omitempty"`
}

// Telemetry controls session recording.
type Telemetry struct {
	Enabled *bool `yaml:"enabled,omitempty"`
	Persist *bool `yaml:"persist,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultTimeout       = 30 * time.Second
	DefaultMaxLineLength = 10 * 1024 * 1024 // 10 MB
)

// Validation bounds for configuration values.
const (
	MinTimeout       = time.Second
	MaxTimeout       = time.Hour
	MinMaxLineLength = 1
	MaxMaxLineLength = 1024 * 1024 * 1024 // 1 GB
)

// disableable are the strategies that may be switched off. The in-process
// walk is the last resort and always runs.
var disableable = []string{"git", "grep"}

// Config contains configuration for seek.
type Config struct {
	Author    Author    `yaml:"author,omitempty"`
	Workspace Workspace `yaml:"workspace,omitempty"`
	Search    Search    `yaml:"search,omitempty"`
	Telemetry Telemetry `yaml:"telemetry,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Search.Timeout != nil {
		if _, err := parseTimeout(*c.Search.Timeout); err != nil {
			return err
		}
	}
	if c.Search.MaxLineLength != nil {
		v := *c.Search.MaxLineLength
		if v < MinMaxLineLength || v > MaxMaxLineLength {
			return fmt.Errorf("%w: search.max_line_length must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxLineLength, MaxMaxLineLength, v)
		}
	}
	for _, name := range c.Search.Disable {
		if !slices.Contains(disableable, name) {
			return fmt.Errorf("%w: search.disable accepts %v, got %q",
				ErrInvalidValue, disableable, name)
		}
	}
	return nil
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: search.timeout must be a duration such as 30s: %w", ErrInvalidValue, err)
	}
	if d < MinTimeout || d > MaxTimeout {
		return 0, fmt.Errorf("%w: search.timeout must be between %s and %s, got %s",
			ErrInvalidValue, MinTimeout, MaxTimeout, d)
	}
	return d, nil
}

// Timeout returns the per-search deadline (defaults to 30s).
func (c *Config) Timeout() time.Duration {
	if c.Search.Timeout == nil {
		return DefaultTimeout
	}
	d, err := parseTimeout(*c.Search.Timeout)
	if err != nil {
		return DefaultTimeout
	}
	return d
}

// MaxLineLength returns the maximum line length the walk will scan
// (defaults to 10 MB). Longer lines end the scan of that file, which matters
// for minified JS/CSS and base64 blobs.
func (c *Config) MaxLineLength() int {
	if c.Search.MaxLineLength == nil {
		return DefaultMaxLineLength
	}
	return *c.Search.MaxLineLength
}

// Disabled returns the strategies switched off by configuration.
func (c *Config) Disabled() []string {
	return slices.Clone(c.Search.Disable)
}

// Roots returns the configured workspace roots, or nil when unset.
func (c *Config) Roots() []string {
	return slices.Clone(c.Workspace.Roots)
}

// TelemetryEnabled reports whether searches record sessions (defaults to
// false). The SEEK_TELEMETRY environment variable turns it on regardless.
func (c *Config) TelemetryEnabled() bool {
	switch os.Getenv(EnvTelemetry) {
	case "1", "true":
		return true
	}
	if c.Telemetry.Enabled == nil {
		return false
	}
	return *c.Telemetry.Enabled
}

// TelemetryPersist reports whether completed sessions are written to the
// history database (defaults to true).
func (c *Config) TelemetryPersist() bool {
	if c.Telemetry.Persist == nil {
		return true
	}
	return *c.Telemetry.Persist
}

// LocalPath returns the path to the local config file.
func LocalPath() string {
	return filepath.Join(".seek", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.seek/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".seek", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
