package config

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/choretracker-go/internal/logging"
)

// Source represents where a configuration value came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceUserFile Source = "user file"
	SourceProjFile Source = "project file"
	SourceEnv      Source = "environment"
	SourceFlag     Source = "flag"
)

// Backend selects the executor the API client uses.
type Backend string

const (
	// BackendDummy answers requests from the in-process dummy database.
	BackendDummy Backend = "dummy"
	// BackendHTTP sends requests to ServerURL.
	BackendHTTP Backend = "http"
)

// Default values.
const (
	DefaultAPIBase                      = "/apis/"
	DefaultServerURL                    = "http://localhost:8080"
	DefaultBackend                      = BackendDummy
	DefaultFixture                      = "realistic"
	DefaultDummyDelayMS                 = 200
	DefaultDummyRejectDelayMS           = 150
	DefaultNotificationExpiryMS         = 3000
	DefaultTimeReferenceIntervalSeconds = 10
	DefaultListenAddr                   = ":8080"
	DefaultLogLevel                     = "info"
	DefaultLogFormat                    = "text"
)

// Config holds the full configuration for choretracker.
type Config struct {
	// API
	APIBase   string  `toml:"api_base"`
	ServerURL string  `toml:"server_url"`
	Backend   Backend `toml:"backend"`

	// Dummy backend
	Fixture            string `toml:"fixture"`
	FixtureFile        string `toml:"fixture_file"`
	DummyDelayMS       int    `toml:"dummy_delay_ms"`
	DummyRejectDelayMS int    `toml:"dummy_reject_delay_ms"`

	// Timing
	NotificationExpiryMS         int `toml:"notification_expiry_ms"`
	TimeReferenceIntervalSeconds int `toml:"time_reference_interval_seconds"`

	// Demo server
	ListenAddr string `toml:"listen_addr"`

	// Logging
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
	LogActions    bool   `toml:"log_actions"`
}

// WithSources holds configuration along with the source of each field,
// keyed by TOML name.
type WithSources struct {
	Config  *Config
	Sources map[string]Source
	// Files lists the config files that were read, in load order.
	Files []string
}

// Default returns a config populated with defaults.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	cfg.APIBase = DefaultAPIBase
	cfg.ServerURL = DefaultServerURL
	cfg.Backend = DefaultBackend
	cfg.Fixture = DefaultFixture
	cfg.FixtureFile = ""
	cfg.DummyDelayMS = DefaultDummyDelayMS
	cfg.DummyRejectDelayMS = DefaultDummyRejectDelayMS
	cfg.NotificationExpiryMS = DefaultNotificationExpiryMS
	cfg.TimeReferenceIntervalSeconds = DefaultTimeReferenceIntervalSeconds
	cfg.ListenAddr = DefaultListenAddr
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
	cfg.LogActions = false
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendDummy, BackendHTTP:
	default:
		return fmt.Errorf("backend: unknown backend %q (want %s or %s)", c.Backend, BackendDummy, BackendHTTP)
	}
	if strings.TrimSpace(c.APIBase) == "" {
		return fmt.Errorf("api_base: must not be empty")
	}
	if c.Backend == BackendHTTP && strings.TrimSpace(c.ServerURL) == "" {
		return fmt.Errorf("server_url: required for the %s backend", BackendHTTP)
	}
	if c.DummyDelayMS < 0 {
		return fmt.Errorf("dummy_delay_ms: must not be negative (got %d)", c.DummyDelayMS)
	}
	if c.DummyRejectDelayMS < 0 {
		return fmt.Errorf("dummy_reject_delay_ms: must not be negative (got %d)", c.DummyRejectDelayMS)
	}
	if c.NotificationExpiryMS < 0 {
		return fmt.Errorf("notification_expiry_ms: must not be negative (got %d)", c.NotificationExpiryMS)
	}
	if c.TimeReferenceIntervalSeconds <= 0 {
		return fmt.Errorf("time_reference_interval_seconds: must be positive (got %d)", c.TimeReferenceIntervalSeconds)
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("log_level: unknown level %q", c.LogLevel)
	}
	if !logging.ValidFormat(c.LogFormat) {
		return fmt.Errorf("log_format: unknown format %q", c.LogFormat)
	}
	return nil
}

// DummyDelay is the resolve delay of the dummy backend.
func (c *Config) DummyDelay() time.Duration {
	return time.Duration(c.DummyDelayMS) * time.Millisecond
}

// DummyRejectDelay is the reject delay of the dummy backend.
func (c *Config) DummyRejectDelay() time.Duration {
	return time.Duration(c.DummyRejectDelayMS) * time.Millisecond
}

// NotificationExpiry is how long a notification stays visible.
func (c *Config) NotificationExpiry() time.Duration {
	return time.Duration(c.NotificationExpiryMS) * time.Millisecond
}

// TimeReferenceInterval is the period of the time reference ticker.
func (c *Config) TimeReferenceInterval() time.Duration {
	return time.Duration(c.TimeReferenceIntervalSeconds) * time.Second
}

// TOML encodes the config in file form.
func (c *Config) TOML() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", err
	}
	return buf.String(), nil
}
