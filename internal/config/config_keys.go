// config_keys.go provides key-value access to configuration settings.
//
// The CLI and MCP layers address settings by dotted string keys (e.g.
// "search.timeout"); config.go owns the YAML structure behind them.
//
// Pointers are used for optional scalar fields so "not set" (nil) can be told
// apart from "explicitly set to zero/false". List values are written as
// comma-separated strings.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name",
		"workspace.roots",
		"search.timeout", "search.max_line_length", "search.disable",
		"telemetry.enabled", "telemetry.persist",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "workspace.roots":
		return strings.Join(c.Workspace.Roots, ","), nil
	case "search.timeout":
		return c.Timeout().String(), nil
	case "search.max_line_length":
		return strconv.Itoa(c.MaxLineLength()), nil
	case "search.disable":
		return strings.Join(c.Search.Disable, ","), nil
	case "telemetry.enabled":
		return strconv.FormatBool(c.TelemetryEnabled()), nil
	case "telemetry.persist":
		return strconv.FormatBool(c.TelemetryPersist()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "workspace.roots":
		c.Workspace.Roots = splitList(value)
	case "search.timeout":
		if _, err := parseTimeout(value); err != nil {
			return err
		}
		c.Search.Timeout = &value
	case "search.max_line_length":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinMaxLineLength || n > MaxMaxLineLength {
			return fmt.Errorf("%w: search.max_line_length must be an integer between %d and %d",
				ErrInvalidValue, MinMaxLineLength, MaxMaxLineLength)
		}
		c.Search.MaxLineLength = &n
	case "search.disable":
		names := splitList(value)
		for _, n := range names {
			if !slices.Contains(disableable, n) {
				return fmt.Errorf("%w: search.disable accepts %v, got %q", ErrInvalidValue, disableable, n)
			}
		}
		c.Search.Disable = names
	case "telemetry.enabled":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.Telemetry.Enabled = &b
	case "telemetry.persist":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.Telemetry.Persist = &b
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	all := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		v, _ := c.Get(k)
		all[k] = v
	}
	return all
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "workspace.roots":
		return len(c.Workspace.Roots) > 0
	case "search.timeout":
		return c.Search.Timeout != nil
	case "search.max_line_length":
		return c.Search.MaxLineLength != nil
	case "search.disable":
		return len(c.Search.Disable) > 0
	case "telemetry.enabled":
		return c.Telemetry.Enabled != nil
	case "telemetry.persist":
		return c.Telemetry.Persist != nil
	default:
		return false
	}
}

func parseBool(key, value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: %s must be true or false", ErrInvalidValue, key)
}

// splitList splits a comma-separated value, trimming blanks.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
