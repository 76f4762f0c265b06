// Package telemetry samples the finger-count metric and publishes it on
// the per-activity topic. Telemetry is explicitly best-effort: an
// unavailable sample is logged and skipped, never retried.
package telemetry

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/robolearn/activity-monitor/internal/broker"
	"github.com/robolearn/activity-monitor/internal/metric"
)

// Publisher combines an injected metric source with an injected broker
// client. Both are capabilities so tests can substitute fakes.
type Publisher struct {
	source metric.Source
	broker broker.Publisher

	// Logf is used for the unavailable-data log entry. Defaults to
	// log.Printf; tests inject a recorder.
	Logf func(format string, args ...any)
}

// New creates a Publisher over the given capabilities.
func New(source metric.Source, b broker.Publisher) *Publisher {
	return &Publisher{
		source: source,
		broker: b,
		Logf:   log.Printf,
	}
}

// Publish samples the metric once and publishes the reading as a bare
// decimal integer on "activity/fingers/{activityID}". It reports whether
// a message was handed to the broker. An unavailable sample logs exactly
// one entry and publishes nothing; that is not an error.
func (p *Publisher) Publish(activityID string) (bool, error) {
	n, err := p.source.Sample()
	if errors.Is(err, metric.ErrUnavailable) {
		p.Logf("telemetry: sample unavailable for activity %s, skipping publish", activityID)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sample: %w", err)
	}

	payload := strconv.AppendInt(nil, int64(n), 10)
	if err := p.broker.Publish(broker.TopicFingers(activityID), payload); err != nil {
		return false, fmt.Errorf("publish telemetry: %w", err)
	}
	return true, nil
}
