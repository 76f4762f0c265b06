// Package session contains the pure lifecycle and timing state for one
// activity run. This package has NO external dependencies (no MQTT, HTTP,
// or timers); ticks are delivered by the caller.
package session

import "fmt"

// State represents the lifecycle state of a session.
// Transitions are forward-only: Idle -> Running -> Ended.
type State string

const (
	StateIdle    State = "IDLE"
	StateRunning State = "RUNNING"
	StateEnded   State = "ENDED"
)

// ConfigError reports a wiring defect: a missing display target, a missing
// stop destination, or a double start. It is always surfaced to the caller,
// never swallowed, because it indicates broken markup or composition rather
// than a runtime condition.
type ConfigError struct {
	Op     string // operation that failed, e.g. "timer start"
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Op, e.Detail)
}

// Session tracks elapsed time and lifecycle state for one activity run.
// elapsed has exactly one writer (the tick handler); it only increases.
type Session struct {
	activityID string
	elapsed    int
	state      State
}

// New creates an Idle session for the given activity.
func New(activityID string) *Session {
	return &Session{
		activityID: activityID,
		state:      StateIdle,
	}
}

// Start moves the session from Idle to Running.
// Starting a session that is already Running (or Ended) is a ConfigError.
func (s *Session) Start() error {
	if s.state != StateIdle {
		return &ConfigError{
			Op:     "session start",
			Detail: fmt.Sprintf("session already %s", s.state),
		}
	}
	s.state = StateRunning
	return nil
}

// Tick increments the elapsed-seconds counter by exactly one and returns
// the new value. Ticks are ignored unless the session is Running.
func (s *Session) Tick() int {
	if s.state != StateRunning {
		return s.elapsed
	}
	s.elapsed++
	return s.elapsed
}

// End moves the session to Ended. The transition is one-way; ending an
// already-Ended session is a no-op.
func (s *Session) End() {
	s.state = StateEnded
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Elapsed returns the elapsed seconds since start.
func (s *Session) Elapsed() int {
	return s.elapsed
}

// ActivityID returns the opaque activity identifier.
func (s *Session) ActivityID() string {
	return s.activityID
}

// Rendered returns the current elapsed time as "MM:SS".
func (s *Session) Rendered() string {
	return FormatElapsed(s.elapsed)
}

// FormatElapsed renders elapsed seconds as zero-padded "MM:SS".
// Minutes do not roll over into hours: 3600 renders as "60:00", not
// "1:00:00". Known limitation, kept to match the display contract.
func FormatElapsed(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
