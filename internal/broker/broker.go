// Package broker provides MQTT publishing with abstraction for testing.
// Telemetry messages are fire-and-forget (QoS 0, at-most-once); system
// lifecycle events use QoS 1 because operators rely on them.
package broker

import (
	"encoding/json"
	"time"
)

// TopicSystem is the MQTT topic for monitor lifecycle events.
const TopicSystem = "activity/monitor/system"

// TopicFingers returns the telemetry topic for the given activity.
func TopicFingers(activityID string) string {
	return "activity/fingers/" + activityID
}

// Publisher publishes messages to MQTT.
type Publisher interface {
	// Publish sends a telemetry payload to the given topic with
	// at-most-once semantics. The call must not wait for delivery;
	// a failed publish is logged, never retried.
	Publish(topic string, payload []byte) error

	// PublishSystem sends a monitor lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a monitor lifecycle event (startup, shutdown).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN"
	Reason     string // e.g., "STOP", "SIGTERM" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// SystemPayload represents the MQTT message payload for system events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full
// status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
