// Package status provides a thread-safe status tracker for the activity
// monitor. It is read by the HTTP handlers and included in MQTT system
// events.
package status

import (
	"sync"
	"time"

	"github.com/robolearn/activity-monitor/internal/session"
)

// Config contains monitor configuration for display.
type Config struct {
	ActivityID     string
	TickMs         int64
	TelemetryEvery int // ticks between telemetry publishes (0 = disabled)
	HeartbeatEvery int // ticks between heartbeat events (0 = disabled)
	Broker         string
	HTTPAddr       string
	Backend        string // backend base URL, e.g. "http://robolearn.local:8000"
	StopURL        string // backend destination carried by the stop control
}

// TelemetryCounts tracks telemetry outcomes since startup.
type TelemetryCounts struct {
	Published int
	Skipped   int // unavailable samples
	Failed    int // broker errors
}

// Snapshot is a point-in-time view of monitor state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	State         session.State
	Elapsed       int
	Rendered      string
	Telemetry     TelemetryCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the monitor started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable monitor state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			State:     session.StateIdle,
			Rendered:  session.FormatElapsed(0),
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the session state and clock. Called on every tick and on
// state transitions.
func (t *Tracker) Update(state session.State, elapsed int, rendered string) {
	t.mu.Lock()
	t.snap.State = state
	t.snap.Elapsed = elapsed
	t.snap.Rendered = rendered
	t.mu.Unlock()
}

// CountPublished increments the published-telemetry counter.
func (t *Tracker) CountPublished() {
	t.mu.Lock()
	t.snap.Telemetry.Published++
	t.mu.Unlock()
}

// CountSkipped increments the skipped-telemetry counter.
func (t *Tracker) CountSkipped() {
	t.mu.Lock()
	t.snap.Telemetry.Skipped++
	t.mu.Unlock()
}

// CountFailed increments the failed-telemetry counter.
func (t *Tracker) CountFailed() {
	t.mu.Lock()
	t.snap.Telemetry.Failed++
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the monitor state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
