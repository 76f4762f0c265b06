package metric

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// RealSource tracks the latest finger count published by the vision
// pipeline. A reading older than the staleness window, or invalidated by
// a hand-not-detected marker, is reported as unavailable.
type RealSource struct {
	client    paho.Client
	staleness time.Duration
	now       func() time.Time

	mu    sync.Mutex
	value int
	at    time.Time
	valid bool
}

// NewRealSource connects to the broker and subscribes to the vision
// pipeline topics. Readings expire after the staleness window.
func NewRealSource(broker string, staleness time.Duration) (*RealSource, error) {
	s := &RealSource{
		staleness: staleness,
		now:       time.Now,
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("activity-monitor-metric").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}
	s.client = client

	if err := s.subscribe(TopicFingerCount, func(_ paho.Client, msg paho.Message) {
		s.handleReading(msg.Payload(), s.now())
	}); err != nil {
		client.Disconnect(1000)
		return nil, err
	}
	if err := s.subscribe(TopicHandNotDetected, func(_ paho.Client, _ paho.Message) {
		s.handleHandLost()
	}); err != nil {
		client.Disconnect(1000)
		return nil, err
	}

	return s, nil
}

func (s *RealSource) subscribe(topic string, handler paho.MessageHandler) error {
	token := s.client.Subscribe(topic, 0, handler)
	if !token.WaitTimeout(10 * time.Second) {
		return fmt.Errorf("subscribe %s timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	return nil
}

// handleReading stores a finger-count payload. Unparseable or out-of-range
// payloads invalidate the current reading rather than poisoning it.
func (s *RealSource) handleReading(payload []byte, at time.Time) {
	n, err := strconv.Atoi(strings.TrimSpace(string(payload)))
	if err != nil || n < 0 || n > MaxFingers {
		log.Printf("metric: discarding reading %q", payload)
		s.invalidate()
		return
	}

	s.mu.Lock()
	s.value = n
	s.at = at
	s.valid = true
	s.mu.Unlock()
}

// handleHandLost invalidates the current reading.
func (s *RealSource) handleHandLost() {
	s.invalidate()
}

func (s *RealSource) invalidate() {
	s.mu.Lock()
	s.valid = false
	s.mu.Unlock()
}

// Sample returns the latest reading, or ErrUnavailable if there is none,
// the hand was lost, or the reading is older than the staleness window.
func (s *RealSource) Sample() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.valid {
		return 0, ErrUnavailable
	}
	if s.staleness > 0 && s.now().Sub(s.at) > s.staleness {
		s.valid = false
		return 0, ErrUnavailable
	}
	return s.value, nil
}

// Close disconnects from the broker.
func (s *RealSource) Close() error {
	if s.client != nil {
		s.client.Disconnect(1000)
	}
	return nil
}
