package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string        `json:"event,omitempty"`
	Reason        string        `json:"reason,omitempty"`
	ActivityID    string        `json:"activity_id"`
	State         string        `json:"state"`
	Elapsed       int           `json:"elapsed_seconds"`
	Rendered      string        `json:"rendered"`
	UptimeSeconds int64         `json:"uptime_seconds"`
	StartTime     string        `json:"start_time"`
	Timestamp     string        `json:"timestamp"`
	MQTT          MQTTStatus    `json:"mqtt"`
	Telemetry     TelemetryJSON `json:"telemetry"`
	Config        ConfigJSON    `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// TelemetryJSON is the JSON representation of telemetry counts.
type TelemetryJSON struct {
	Published int `json:"published"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// ConfigJSON is the JSON representation of monitor config.
type ConfigJSON struct {
	TickMs         int64  `json:"tick_ms"`
	TelemetryEvery int    `json:"telemetry_every"`
	HeartbeatEvery int    `json:"heartbeat_every"`
	Broker         string `json:"broker"`
	HTTPAddr       string `json:"http_addr"`
	Backend        string `json:"backend"`
	StopURL        string `json:"stop_url"`
}

func buildInner(snap Snapshot) StatusInner {
	state := string(snap.State)
	if state == "" {
		state = "UNKNOWN"
	}

	return StatusInner{
		ActivityID:    snap.Config.ActivityID,
		State:         state,
		Elapsed:       snap.Elapsed,
		Rendered:      snap.Rendered,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Telemetry: TelemetryJSON{
			Published: snap.Telemetry.Published,
			Skipped:   snap.Telemetry.Skipped,
			Failed:    snap.Telemetry.Failed,
		},
		Config: ConfigJSON{
			TickMs:         snap.Config.TickMs,
			TelemetryEvery: snap.Config.TelemetryEvery,
			HeartbeatEvery: snap.Config.HeartbeatEvery,
			Broker:         snap.Config.Broker,
			HTTPAddr:       snap.Config.HTTPAddr,
			Backend:        snap.Config.Backend,
			StopURL:        snap.Config.StopURL,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
