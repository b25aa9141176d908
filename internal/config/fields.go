package config

import (
	"fmt"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CHORETRACKER_"

// field binds one TOML key to its Config member. The env name and flag
// name are derived from the key.
type field struct {
	key   string
	usage string
	ptr   func(*Config) any
}

func (f field) env() string {
	return EnvPrefix + strings.ToUpper(f.key)
}

func (f field) flag() string {
	return strings.ReplaceAll(f.key, "_", "-")
}

func fields() []field {
	return []field{
		{"api_base", "Base path of the task API", func(c *Config) any { return &c.APIBase }},
		{"server_url", "Server URL for the http backend", func(c *Config) any { return &c.ServerURL }},
		{"backend", "Backend: dummy or http", func(c *Config) any { return &c.Backend }},
		{"fixture", "Dummy backend fixture name", func(c *Config) any { return &c.Fixture }},
		{"fixture_file", "YAML fixture file for the dummy backend", func(c *Config) any { return &c.FixtureFile }},
		{"dummy_delay_ms", "Dummy backend response delay (ms)", func(c *Config) any { return &c.DummyDelayMS }},
		{"dummy_reject_delay_ms", "Dummy backend rejection delay (ms)", func(c *Config) any { return &c.DummyRejectDelayMS }},
		{"notification_expiry_ms", "Notification lifetime (ms)", func(c *Config) any { return &c.NotificationExpiryMS }},
		{"time_reference_interval_seconds", "Time reference refresh interval (seconds)", func(c *Config) any { return &c.TimeReferenceIntervalSeconds }},
		{"listen_addr", "Listen address for serve", func(c *Config) any { return &c.ListenAddr }},
		{"log_level", "Log level: debug, info, warn, error", func(c *Config) any { return &c.LogLevel }},
		{"log_format", "Log format: text, json, logfmt", func(c *Config) any { return &c.LogFormat }},
		{"log_timestamps", "Include timestamps in logs", func(c *Config) any { return &c.LogTimestamps }},
		{"log_caller", "Include caller in logs", func(c *Config) any { return &c.LogCaller }},
		{"log_actions", "Log every dispatched action", func(c *Config) any { return &c.LogActions }},
	}
}

// Keys returns the configurable TOML keys in display order.
func Keys() []string {
	fs := fields()
	keys := make([]string, len(fs))
	for i, f := range fs {
		keys[i] = f.key
	}
	return keys
}

// setString parses raw into the field's type.
func (f field) setString(cfg *Config, raw string) error {
	switch p := f.ptr(cfg).(type) {
	case *string:
		*p = raw
	case *Backend:
		*p = Backend(strings.ToLower(strings.TrimSpace(raw)))
	case *int:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", f.key, raw)
		}
		*p = n
	case *bool:
		*p = boolFromString(raw)
	default:
		return fmt.Errorf("%s: unsupported field type %T", f.key, p)
	}
	return nil
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
