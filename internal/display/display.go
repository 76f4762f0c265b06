// Package display abstracts the named render targets of the monitoring
// page. The real surface lives in internal/web (tracker update plus
// websocket push); the fake allows testing the timer without a server.
package display

// TimerTarget is the stable name of the elapsed-time render target.
const TimerTarget = "timer"

// Target is a single addressable element the timer writes into.
type Target interface {
	// Write replaces the target's content with value.
	// Must be non-blocking; called once per tick.
	Write(value string) error
}

// Surface resolves render targets by stable name.
type Surface interface {
	// Resolve returns the target with the given name.
	// A missing target is an error: it indicates a markup defect.
	Resolve(name string) (Target, error)
}
