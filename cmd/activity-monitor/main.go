// Command activity-monitor tracks one run of a learning activity: the
// elapsed-time clock, the live monitoring page, finger-count telemetry,
// and the session-stop transition.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robolearn/activity-monitor/internal/broker"
	"github.com/robolearn/activity-monitor/internal/button"
	"github.com/robolearn/activity-monitor/internal/config"
	"github.com/robolearn/activity-monitor/internal/controller"
	"github.com/robolearn/activity-monitor/internal/metric"
	"github.com/robolearn/activity-monitor/internal/session"
	"github.com/robolearn/activity-monitor/internal/status"
	"github.com/robolearn/activity-monitor/internal/stop"
	"github.com/robolearn/activity-monitor/internal/telemetry"
	"github.com/robolearn/activity-monitor/internal/timer"
	"github.com/robolearn/activity-monitor/internal/web"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	activityID := flag.String("activity", "", "Activity ID (overrides config)")
	brokerURL := flag.String("broker", "", "MQTT broker address (overrides config)")
	httpAddr := flag.String("http", "", `HTTP address for the monitoring page (overrides config, "off" disables)`)
	backend := flag.String("backend", "", "Backend base URL (overrides config)")

	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	applyOverrides(cfg, *activityID, *brokerURL, *httpAddr, *backend)

	if cfg.Activity.ID == "" {
		log.Fatalf("fatal: activity ID required (use --activity or the config file)")
	}

	if err := run(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// loadConfig returns the defaults when no path is given.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// applyOverrides layers non-empty flag values over the config.
func applyOverrides(cfg *config.Config, activityID, brokerURL, httpAddr, backend string) {
	if activityID != "" {
		cfg.Activity.ID = activityID
	}
	if brokerURL != "" {
		cfg.Broker.URL = brokerURL
	}
	if httpAddr == "off" {
		cfg.HTTP.Addr = ""
	} else if httpAddr != "" {
		cfg.HTTP.Addr = httpAddr
	}
	if backend != "" {
		cfg.Activity.Backend = backend
	}
}

func run(cfg *config.Config) error {
	// Initialize MQTT
	publisher, err := broker.NewRealPublisher(cfg.Broker.URL)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer publisher.Close()

	source, err := metric.NewRealSource(cfg.Broker.URL, cfg.Telemetry.Staleness)
	if err != nil {
		return fmt.Errorf("init metric source: %w", err)
	}
	defer source.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		ActivityID:     cfg.Activity.ID,
		TickMs:         timer.Period.Milliseconds(),
		TelemetryEvery: cfg.Telemetry.Every,
		HeartbeatEvery: cfg.Heartbeat.Every,
		Broker:         cfg.Broker.URL,
		HTTPAddr:       cfg.HTTP.Addr,
		Backend:        cfg.Activity.Backend,
		StopURL:        cfg.StopDestination(),
	})

	sess := session.New(cfg.Activity.ID)
	telem := telemetry.New(source, publisher)
	nav := stop.NewHTTPNavigator(cfg.Activity.Backend)
	ctrl := controller.New(sess, telem, stop.NewHandler(nav), publisher, publisher, tracker, cfg.Telemetry.Every, cfg.Heartbeat.Every)

	hub := web.NewHub()
	stopRequests := make(chan stop.Control, 1)

	// Start HTTP monitoring page
	if cfg.HTTP.Addr != "" {
		srv := web.New(cfg.HTTP.Addr, tracker, hub, stopRequests)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("monitoring page listening on %s", cfg.HTTP.Addr)
	}

	// Begin the session: resolves the timer target and starts the clock.
	if err := ctrl.Start(web.NewPageSurface(hub, tracker)); err != nil {
		return err
	}

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := broker.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Optional hardware stop button
	buttonDone := make(chan struct{})
	defer close(buttonDone)
	if cfg.Button.Enabled {
		reader, err := button.NewRealReader(cfg.Button.Pin)
		if err != nil {
			return fmt.Errorf("init button: %w", err)
		}
		defer reader.Close()

		presses := make(chan struct{}, 1)
		go button.Watch(reader, button.DefaultPollInterval, presses, buttonDone, func(err error) {
			log.Printf("button read error: %v", err)
		})
		go func() {
			for {
				select {
				case <-presses:
					select {
					case stopRequests <- stop.Control{Destination: cfg.StopDestination()}:
					default:
					}
				case <-buttonDone:
					return
				}
			}
		}()
		log.Printf("stop button enabled on pin %d", cfg.Button.Pin)
	}

	log.Printf("started: activity=%s broker=%s backend=%s telemetry_every=%d",
		cfg.Activity.ID, cfg.Broker.URL, cfg.Activity.Backend, cfg.Telemetry.Every)

	ticker := time.NewTicker(timer.Period)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return ctrl.Run(ticker.C, stopRequests, sigCh)
}
