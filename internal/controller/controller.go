// Package controller wires the timer engine, telemetry publisher, and
// stop handler into a single session run loop.
package controller

import (
	"log"
	"os"
	"syscall"
	"time"

	"github.com/robolearn/activity-monitor/internal/broker"
	"github.com/robolearn/activity-monitor/internal/display"
	"github.com/robolearn/activity-monitor/internal/session"
	"github.com/robolearn/activity-monitor/internal/status"
	"github.com/robolearn/activity-monitor/internal/stop"
	"github.com/robolearn/activity-monitor/internal/telemetry"
	"github.com/robolearn/activity-monitor/internal/timer"
)

// Controller owns one session from start to stop. All scheduling inputs
// (ticks, stop requests, signals) arrive on channels so tests can drive
// the loop deterministically.
type Controller struct {
	sess       *session.Session
	engine     *timer.Engine
	telemetry  *telemetry.Publisher
	stopper    *stop.Handler
	publisher  broker.Publisher
	mqttStatus broker.ConnectionStatus
	tracker    *status.Tracker

	// telemetryEvery is the number of ticks between telemetry publishes.
	// Zero disables telemetry.
	telemetryEvery int

	// heartbeatEvery is the number of ticks between retained heartbeat
	// events on the system topic. Zero disables heartbeats.
	heartbeatEvery int

	cancelTick func()
	ticks      int
}

// New creates a controller for the given session and capabilities.
// mqttStatus may be nil if connection state is not observable.
func New(sess *session.Session, telem *telemetry.Publisher, stopper *stop.Handler, publisher broker.Publisher, mqttStatus broker.ConnectionStatus, tracker *status.Tracker, telemetryEvery, heartbeatEvery int) *Controller {
	return &Controller{
		sess:           sess,
		engine:         timer.New(sess),
		telemetry:      telem,
		stopper:        stopper,
		publisher:      publisher,
		mqttStatus:     mqttStatus,
		tracker:        tracker,
		telemetryEvery: telemetryEvery,
		heartbeatEvery: heartbeatEvery,
	}
}

// Start begins the session: the timer engine resolves its display target
// and the session moves Idle -> Running. Errors here are ConfigErrors and
// must abort startup.
func (c *Controller) Start(surface display.Surface) error {
	cancel, err := c.engine.Start(surface)
	if err != nil {
		return err
	}
	c.cancelTick = cancel
	c.tracker.Update(c.sess.State(), c.sess.Elapsed(), c.sess.Rendered())
	return nil
}

// Run drives the session until a stop request or signal arrives. It
// returns the stop handler's error, if any; a clean stop or signal
// shutdown returns nil.
func (c *Controller) Run(tick <-chan time.Time, stopReq <-chan stop.Control, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			c.shutdown(signalName(s))
			return nil

		case ctl := <-stopReq:
			return c.stop(ctl)

		case <-tick:
			c.handleTick()
		}
	}
}

// handleTick advances the clock and, on the telemetry cadence, performs
// one sample-and-publish. Ticks after the session ends are no-ops.
func (c *Controller) handleTick() {
	if c.sess.State() != session.StateRunning {
		return
	}

	c.ticks++

	if err := c.engine.Tick(); err != nil {
		log.Printf("display write error: %v", err)
	}
	c.tracker.Update(c.sess.State(), c.sess.Elapsed(), c.sess.Rendered())
	if c.mqttStatus != nil {
		c.tracker.SetMQTTConnected(c.mqttStatus.IsConnected())
	}

	if c.telemetryEvery > 0 && c.ticks%c.telemetryEvery == 0 {
		published, err := c.telemetry.Publish(c.sess.ActivityID())
		switch {
		case err != nil:
			// Best-effort: log and keep ticking.
			log.Printf("telemetry publish error: %v", err)
			c.tracker.CountFailed()
		case published:
			c.tracker.CountPublished()
		default:
			c.tracker.CountSkipped()
		}
	}

	if c.heartbeatEvery > 0 && c.ticks%c.heartbeatEvery == 0 {
		c.publishHeartbeat()
	}
}

// publishHeartbeat sends a retained liveness event with the full status
// snapshot, so operators can tell a quiet monitor from a dead one.
func (c *Controller) publishHeartbeat() {
	snap := c.tracker.Snapshot()
	event := broker.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "HEARTBEAT",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "HEARTBEAT", ""),
	}
	if err := c.publisher.PublishSystem(event); err != nil {
		log.Printf("failed to publish heartbeat: %v", err)
	}
}

// stop performs the one-way Running -> Ended transition: cancel the
// clock, navigate to the stop destination, end the session. The stop
// handler's error is surfaced to the caller; it is never retried.
func (c *Controller) stop(ctl stop.Control) error {
	if c.cancelTick != nil {
		c.cancelTick()
	}

	err := c.stopper.Stop(ctl)
	if err != nil {
		log.Printf("stop error: %v", err)
	}

	c.sess.End()
	c.tracker.Update(c.sess.State(), c.sess.Elapsed(), c.sess.Rendered())
	c.publishShutdown("STOP")
	return err
}

// shutdown ends the session on an OS signal without navigating: the
// operator killed the monitor, not the activity.
func (c *Controller) shutdown(reason string) {
	if c.cancelTick != nil {
		c.cancelTick()
	}
	c.sess.End()
	c.tracker.Update(c.sess.State(), c.sess.Elapsed(), c.sess.Rendered())
	c.publishShutdown(reason)
}

func (c *Controller) publishShutdown(reason string) {
	if c.mqttStatus != nil {
		c.tracker.SetMQTTConnected(c.mqttStatus.IsConnected())
	}
	snap := c.tracker.Snapshot()
	event := broker.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "SHUTDOWN",
		Reason:     reason,
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "SHUTDOWN", reason),
	}
	if err := c.publisher.PublishSystem(event); err != nil {
		log.Printf("failed to publish shutdown event: %v", err)
	} else {
		log.Printf("published shutdown event")
	}
}

// Session returns the controller's session, for status wiring.
func (c *Controller) Session() *session.Session {
	return c.sess
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}
