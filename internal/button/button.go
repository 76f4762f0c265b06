// Package button provides the optional hardware stop button with hardware
// abstraction. The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package button

import "time"

// Reader reads the stop button state.
type Reader interface {
	// Pressed returns whether the button is currently held down.
	Pressed() (bool, error)

	// Close releases GPIO resources.
	Close() error
}

// DefaultPin is the BCM pin number of the stop button.
const DefaultPin = 17

// DefaultPollInterval is how often the button is sampled. Much shorter
// than the session tick so presses between ticks are not missed.
const DefaultPollInterval = 50 * time.Millisecond

// Watch polls the reader and sends one signal per press edge (released to
// pressed). It returns when done is closed. Read errors are reported via
// errf and polling continues.
func Watch(r Reader, interval time.Duration, presses chan<- struct{}, done <-chan struct{}, errf func(error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	wasPressed := false
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			pressed, err := r.Pressed()
			if err != nil {
				if errf != nil {
					errf(err)
				}
				continue
			}
			if pressed && !wasPressed {
				select {
				case presses <- struct{}{}:
				default:
					// A press is already pending; one stop is enough.
				}
			}
			wasPressed = pressed
		}
	}
}
