// Package stop implements the irreversible session-stop transition: one
// unconditional, unretried navigation to the destination carried by the
// invoking control. The backend behind the destination records the stop.
package stop

import (
	"fmt"

	"github.com/robolearn/activity-monitor/internal/session"
)

// Control is the invoking stop control. It carries the destination the
// way the page's stop link carries its data-stop-url attribute.
type Control struct {
	// Destination is the backend path that records the stop,
	// e.g. "/activities/5/stop".
	Destination string
}

// Navigator performs a full navigation to a destination path.
type Navigator interface {
	Navigate(destination string) error
}

// Handler performs the session-stop transition.
type Handler struct {
	nav Navigator
}

// NewHandler creates a Handler over the given navigator.
func NewHandler(nav Navigator) *Handler {
	return &Handler{nav: nav}
}

// Stop reads the control's destination and navigates to it. A control
// without a destination is a ConfigError (broken markup). The navigation
// is performed exactly once; there is no confirmation and no retry.
func (h *Handler) Stop(ctl Control) error {
	if ctl.Destination == "" {
		return &session.ConfigError{
			Op:     "session stop",
			Detail: "control has no stop destination",
		}
	}

	if err := h.nav.Navigate(ctl.Destination); err != nil {
		return fmt.Errorf("navigate to %s: %w", ctl.Destination, err)
	}
	return nil
}
