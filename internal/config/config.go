// Package config handles probe configuration with defaults matching the
// collector's standard OTLP/HTTP listener.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"gopkg.in/yaml.v3"
)

// Config is the top-level probe configuration
type Config struct {
	// Payload inputs
	Probe ProbeConfig `yaml:"probe"`

	// Collector endpoints and transport
	Target TargetConfig `yaml:"target"`

	// Continuous mode
	Loop LoopConfig `yaml:"loop"`
}

// ProbeConfig carries the values stamped into the generated payloads
type ProbeConfig struct {
	// Host identity placed on every envelope's resource
	// (auto-detected if host_name is empty)
	HostName   string `yaml:"host_name"`
	HostRegion string `yaml:"host_region"`

	// Log record body
	Message string `yaml:"message"`

	// Gauge data point value
	GaugeValue float64 `yaml:"gauge_value"`

	// Span name for the probe trace
	SpanName string `yaml:"span_name"`

	// Pause between successive sends in a sequence run.
	// Artificial spacing to let the receiving pipeline settle.
	Spacing time.Duration `yaml:"spacing"`
}

// TargetConfig defines where payloads are delivered
type TargetConfig struct {
	// Base collector URL; the three per-signal endpoints derive from it
	// unless set explicitly below
	Endpoint string `yaml:"endpoint"`

	LogsEndpoint    string `yaml:"logs_endpoint"`
	MetricsEndpoint string `yaml:"metrics_endpoint"`
	TracesEndpoint  string `yaml:"traces_endpoint"`

	// Authentication
	APIKey      string `yaml:"api_key"`
	BearerToken string `yaml:"bearer_token"`

	// Per-request timeout
	Timeout time.Duration `yaml:"timeout"`
}

// LoopConfig controls continuous mode
type LoopConfig struct {
	// Interval between sequence runs
	Interval time.Duration `yaml:"interval"`

	// Port for the /health, /ready and /metrics listener
	HealthPort int `yaml:"health_port"`
}

// Overrides carries command-line values that take precedence over both the
// file and the environment. Empty fields are ignored.
type Overrides struct {
	Endpoint   string
	HostName   string
	HostRegion string
}

// Load reads configuration from file and environment
func Load(path string) (*Config, error) {
	return LoadWithOverrides(path, Overrides{})
}

// LoadWithOverrides reads configuration from file and environment, then
// applies command-line overrides before endpoints are derived.
func LoadWithOverrides(path string, o Overrides) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		// Expand environment variables
		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if o.Endpoint != "" {
		cfg.Target.Endpoint = o.Endpoint
	}
	if o.HostName != "" {
		cfg.Probe.HostName = o.HostName
	}
	if o.HostRegion != "" {
		cfg.Probe.HostRegion = o.HostRegion
	}

	cfg.resolveEndpoints()
	cfg.resolveHostName()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns defaults matching a collector listening on the
// standard OTLP/HTTP port.
func DefaultConfig() *Config {
	return &Config{
		Probe: ProbeConfig{
			HostRegion: "eu-west-1",
			Message:    "hello from OTLP/HTTP JSON",
			GaugeValue: 42.5,
			SpanName:   "my-service-operation",
			Spacing:    time.Second,
		},
		Target: TargetConfig{
			Endpoint: "http://localhost:4318",
			Timeout:  30 * time.Second,
		},
		Loop: LoopConfig{
			Interval:   10 * time.Second,
			HealthPort: 8899,
		},
	}
}

// applyEnvOverrides applies environment variable overrides
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("OTLP_PROBE_ENDPOINT"); v != "" {
		c.Target.Endpoint = v
	}
	if v := os.Getenv("OTLP_PROBE_API_KEY"); v != "" {
		c.Target.APIKey = v
	}
	if v := os.Getenv("OTLP_PROBE_HOST_NAME"); v != "" {
		c.Probe.HostName = v
	}
	if v := os.Getenv("OTLP_PROBE_HOST_REGION"); v != "" {
		c.Probe.HostRegion = v
	}
}

// resolveEndpoints derives per-signal endpoints from the base URL where not
// set explicitly.
func (c *Config) resolveEndpoints() {
	base := strings.TrimRight(c.Target.Endpoint, "/")
	if c.Target.LogsEndpoint == "" {
		c.Target.LogsEndpoint = base + "/v1/logs"
	}
	if c.Target.MetricsEndpoint == "" {
		c.Target.MetricsEndpoint = base + "/v1/metrics"
	}
	if c.Target.TracesEndpoint == "" {
		c.Target.TracesEndpoint = base + "/v1/traces"
	}
}

// resolveHostName fills in the local hostname when none is configured,
// falling back to the canned fixture host.
func (c *Config) resolveHostName() {
	if c.Probe.HostName != "" {
		return
	}
	if info, err := host.Info(); err == nil && info.Hostname != "" {
		c.Probe.HostName = info.Hostname
		return
	}
	c.Probe.HostName = "test-host-01"
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.Target.LogsEndpoint == "" || c.Target.MetricsEndpoint == "" || c.Target.TracesEndpoint == "" {
		return fmt.Errorf("target endpoints are required")
	}
	if c.Probe.Spacing < 0 {
		return fmt.Errorf("spacing must not be negative")
	}
	if c.Target.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Loop.Interval < time.Second {
		return fmt.Errorf("loop interval must be at least 1s")
	}
	return nil
}
