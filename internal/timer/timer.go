// Package timer implements the elapsed-time engine for a running session.
// The engine does not own a ticker: the controller delivers ticks at the
// fixed period, which keeps the clock deterministic in tests.
package timer

import (
	"time"

	"github.com/robolearn/activity-monitor/internal/display"
	"github.com/robolearn/activity-monitor/internal/session"
)

// Period is the fixed tick period of the elapsed-time clock.
const Period = time.Second

// Engine increments the session clock once per tick and renders "MM:SS"
// into the named display target.
type Engine struct {
	sess    *session.Session
	target  display.Target
	started bool
	stopped bool
}

// New creates an engine for the given session. The session must be Idle;
// Start performs the Idle -> Running transition.
func New(sess *session.Session) *Engine {
	return &Engine{sess: sess}
}

// Start resolves the "timer" display target, moves the session to Running,
// and returns a cancellation handle that stops the clock deterministically.
// A missing target or a second Start is a ConfigError: both indicate a
// wiring defect, and a silent second start would double the tick rate.
func (e *Engine) Start(surface display.Surface) (func(), error) {
	if e.started {
		return nil, &session.ConfigError{
			Op:     "timer start",
			Detail: "timer already started",
		}
	}

	target, err := surface.Resolve(display.TimerTarget)
	if err != nil {
		return nil, &session.ConfigError{
			Op:     "timer start",
			Detail: err.Error(),
		}
	}

	if err := e.sess.Start(); err != nil {
		return nil, err
	}

	e.target = target
	e.started = true
	return e.cancel, nil
}

// Tick advances the clock by one second and writes the rendered time to
// the display target. Ticks are no-ops before Start, after cancellation,
// and after the session has ended.
func (e *Engine) Tick() error {
	if !e.started || e.stopped || e.sess.State() != session.StateRunning {
		return nil
	}

	elapsed := e.sess.Tick()
	return e.target.Write(session.FormatElapsed(elapsed))
}

func (e *Engine) cancel() {
	e.stopped = true
}
