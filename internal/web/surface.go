package web

import (
	"fmt"

	"github.com/robolearn/activity-monitor/internal/display"
	"github.com/robolearn/activity-monitor/internal/status"
)

// PageSurface exposes the monitoring page's named render targets. A write
// is pushed to connected browsers over the websocket hub; the tracker
// keeps the value for full page loads.
type PageSurface struct {
	hub     *Hub
	tracker *status.Tracker
}

// NewPageSurface creates the surface backed by the given hub and tracker.
func NewPageSurface(hub *Hub, tracker *status.Tracker) *PageSurface {
	return &PageSurface{hub: hub, tracker: tracker}
}

// Resolve returns the named target. The page has exactly one: "timer".
func (s *PageSurface) Resolve(name string) (display.Target, error) {
	if name != display.TimerTarget {
		return nil, fmt.Errorf("target %q not found", name)
	}
	return &timerTarget{surface: s}, nil
}

type timerTarget struct {
	surface *PageSurface
}

// Write pushes the rendered time to every connected browser.
func (t *timerTarget) Write(value string) error {
	snap := t.surface.tracker.Snapshot()
	t.surface.hub.Broadcast(DisplayUpdate{
		Target: display.TimerTarget,
		Value:  value,
		State:  string(snap.State),
	})
	return nil
}
