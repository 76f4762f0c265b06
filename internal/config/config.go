// Package config loads the monitor configuration from a YAML file,
// applying defaults for anything left unset.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the monitor configuration.
type Config struct {
	Activity  ActivityConfig  `yaml:"activity"`
	Broker    BrokerConfig    `yaml:"broker"`
	HTTP      HTTPConfig      `yaml:"http"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Heartbeat HeartbeatConfig `yaml:"heartbeat"`
	Button    ButtonConfig    `yaml:"button"`
}

// ActivityConfig identifies the activity being monitored and the backend
// that records its lifecycle.
type ActivityConfig struct {
	ID      string `yaml:"id"`
	Backend string `yaml:"backend"`
	StopURL string `yaml:"stop_url"` // empty derives /activities/{id}/stop
}

// BrokerConfig points at the MQTT broker.
type BrokerConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig configures the monitoring page server.
type HTTPConfig struct {
	Addr string `yaml:"addr"` // empty disables the server
}

// TelemetryConfig controls the sample-and-publish cadence.
type TelemetryConfig struct {
	Every     int           `yaml:"every"`     // ticks between publishes (0 disables)
	Staleness time.Duration `yaml:"staleness"` // max reading age (0 = never stale)
}

// HeartbeatConfig controls the periodic liveness event on the system topic.
type HeartbeatConfig struct {
	Every int `yaml:"every"` // ticks between heartbeats (0 disables)
}

// ButtonConfig configures the optional hardware stop button.
type ButtonConfig struct {
	Enabled bool `yaml:"enabled"`
	Pin     int  `yaml:"pin"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		Activity: ActivityConfig{
			Backend: "http://localhost:8000",
		},
		Broker: BrokerConfig{
			URL: "tcp://localhost:1883",
		},
		HTTP: HTTPConfig{
			Addr: ":8090",
		},
		Telemetry: TelemetryConfig{
			Every:     1,
			Staleness: 2 * time.Second,
		},
		Heartbeat: HeartbeatConfig{
			Every: 60,
		},
		Button: ButtonConfig{
			Pin: 17,
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is
// an error; use Default directly when no file is wanted.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// StopDestination returns the configured stop URL, deriving the backend's
// conventional path from the activity ID when unset.
func (c *Config) StopDestination() string {
	if c.Activity.StopURL != "" {
		return c.Activity.StopURL
	}
	return "/activities/" + c.Activity.ID + "/stop"
}
