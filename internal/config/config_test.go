package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "activity:\n  id: \"5\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Activity.ID != "5" {
		t.Errorf("Activity.ID: got %q, want 5", cfg.Activity.ID)
	}
	if cfg.Broker.URL != "tcp://localhost:1883" {
		t.Errorf("Broker.URL default: got %q", cfg.Broker.URL)
	}
	if cfg.HTTP.Addr != ":8090" {
		t.Errorf("HTTP.Addr default: got %q", cfg.HTTP.Addr)
	}
	if cfg.Telemetry.Every != 1 {
		t.Errorf("Telemetry.Every default: got %d", cfg.Telemetry.Every)
	}
	if cfg.Telemetry.Staleness != 2*time.Second {
		t.Errorf("Telemetry.Staleness default: got %v", cfg.Telemetry.Staleness)
	}
	if cfg.Heartbeat.Every != 60 {
		t.Errorf("Heartbeat.Every default: got %d", cfg.Heartbeat.Every)
	}
	if cfg.Button.Pin != 17 {
		t.Errorf("Button.Pin default: got %d", cfg.Button.Pin)
	}
	if cfg.Button.Enabled {
		t.Error("Button.Enabled should default to false")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
activity:
  id: "9"
  backend: http://robolearn.local:8000
  stop_url: /activities/9/finish
broker:
  url: tcp://192.168.1.200:1883
http:
  addr: ":9000"
telemetry:
  every: 5
  staleness: 10s
heartbeat:
  every: 30
button:
  enabled: true
  pin: 27
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Activity.Backend != "http://robolearn.local:8000" {
		t.Errorf("Activity.Backend: got %q", cfg.Activity.Backend)
	}
	if cfg.Broker.URL != "tcp://192.168.1.200:1883" {
		t.Errorf("Broker.URL: got %q", cfg.Broker.URL)
	}
	if cfg.HTTP.Addr != ":9000" {
		t.Errorf("HTTP.Addr: got %q", cfg.HTTP.Addr)
	}
	if cfg.Telemetry.Every != 5 {
		t.Errorf("Telemetry.Every: got %d", cfg.Telemetry.Every)
	}
	if cfg.Telemetry.Staleness != 10*time.Second {
		t.Errorf("Telemetry.Staleness: got %v", cfg.Telemetry.Staleness)
	}
	if cfg.Heartbeat.Every != 30 {
		t.Errorf("Heartbeat.Every: got %d", cfg.Heartbeat.Every)
	}
	if !cfg.Button.Enabled || cfg.Button.Pin != 27 {
		t.Errorf("Button: got %+v", cfg.Button)
	}
	if cfg.StopDestination() != "/activities/9/finish" {
		t.Errorf("StopDestination: got %q", cfg.StopDestination())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "activity: [not a map")
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestStopDestinationDerived(t *testing.T) {
	cfg := Default()
	cfg.Activity.ID = "5"

	if got := cfg.StopDestination(); got != "/activities/5/stop" {
		t.Errorf("StopDestination: got %q, want /activities/5/stop", got)
	}
}
