package telemetry

import (
	"errors"
	"fmt"
	"testing"

	"github.com/robolearn/activity-monitor/internal/broker"
	"github.com/robolearn/activity-monitor/internal/metric"
)

// logRecorder captures log entries for assertions.
type logRecorder struct {
	entries []string
}

func (r *logRecorder) logf(format string, args ...any) {
	r.entries = append(r.entries, fmt.Sprintf(format, args...))
}

func TestPublishSendsSingleMessage(t *testing.T) {
	source := metric.NewFakeSource(metric.Reading{Value: 7})
	fake := broker.NewFakePublisher()
	logs := &logRecorder{}
	p := New(source, fake)
	p.Logf = logs.logf

	published, err := p.Publish("3")
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if !published {
		t.Error("expected published=true")
	}

	if len(fake.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(fake.Messages))
	}
	msg := fake.Messages[0]
	if msg.Topic != "activity/fingers/3" {
		t.Errorf("unexpected topic: %s", msg.Topic)
	}
	if string(msg.Payload) != "7" {
		t.Errorf("unexpected payload: %s", msg.Payload)
	}
	if len(logs.entries) != 0 {
		t.Errorf("expected no log entries, got %v", logs.entries)
	}
}

func TestPublishUnavailableSkips(t *testing.T) {
	source := metric.NewFakeSource(metric.Reading{Unavailable: true})
	fake := broker.NewFakePublisher()
	logs := &logRecorder{}
	p := New(source, fake)
	p.Logf = logs.logf

	published, err := p.Publish("3")
	if err != nil {
		t.Fatalf("unavailable sample must not be an error, got %v", err)
	}
	if published {
		t.Error("expected published=false")
	}

	if len(fake.Messages) != 0 {
		t.Errorf("expected zero messages, got %d", len(fake.Messages))
	}
	if len(logs.entries) != 1 {
		t.Fatalf("expected exactly one log entry, got %d: %v", len(logs.entries), logs.entries)
	}
	want := "telemetry: sample unavailable for activity 3, skipping publish"
	if logs.entries[0] != want {
		t.Errorf("unexpected log entry: %q", logs.entries[0])
	}
}

func TestPublishZeroFingers(t *testing.T) {
	source := metric.NewFakeSource(metric.Reading{Value: 0})
	fake := broker.NewFakePublisher()
	p := New(source, fake)

	published, err := p.Publish("9")
	if err != nil || !published {
		t.Fatalf("publish failed: published=%v err=%v", published, err)
	}
	if string(fake.Messages[0].Payload) != "0" {
		t.Errorf("expected payload 0, got %s", fake.Messages[0].Payload)
	}
}

func TestPublishSurfacesBrokerError(t *testing.T) {
	source := metric.NewFakeSource(metric.Reading{Value: 4})
	fake := broker.NewFakePublisher()
	fake.PublishError = errors.New("broker down")
	p := New(source, fake)

	published, err := p.Publish("3")
	if err == nil {
		t.Fatal("expected broker error to be surfaced")
	}
	if published {
		t.Error("expected published=false on broker error")
	}
}

func TestPublishConsumesOneSamplePerCall(t *testing.T) {
	source := metric.NewFakeSource(
		metric.Reading{Value: 1},
		metric.Reading{Value: 2},
		metric.Reading{Value: 3},
	)
	fake := broker.NewFakePublisher()
	p := New(source, fake)

	for i := 0; i < 3; i++ {
		if _, err := p.Publish("3"); err != nil {
			t.Fatalf("publish %d failed: %v", i+1, err)
		}
	}

	if len(fake.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(fake.Messages))
	}
	for i, want := range []string{"1", "2", "3"} {
		if string(fake.Messages[i].Payload) != want {
			t.Errorf("message %d: expected payload %s, got %s", i, want, fake.Messages[i].Payload)
		}
	}
}
