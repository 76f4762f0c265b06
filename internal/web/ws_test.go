package web

import (
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
)

// TestHubBroadcastDuringDisconnect churns connections while a tick-rate
// broadcaster runs. A disconnect racing a broadcast must drop the message,
// not panic the sender.
func TestHubBroadcastDuringDisconnect(t *testing.T) {
	ts, _, hub, _ := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("broadcast panicked: %v", r)
			}
		}()
		for {
			select {
			case <-done:
				return
			default:
				hub.Broadcast(DisplayUpdate{Target: "timer", Value: "00:01", State: "RUNNING"})
			}
		}
	}()

	for i := 0; i < 50; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err != nil {
			t.Fatalf("ws dial %d: %v", i, err)
		}
		conn.Close()
	}

	close(done)
	wg.Wait()
}

// TestHubRemoveIsIdempotent covers the slow-client path racing the
// disconnect path: both may remove the same client.
func TestHubRemoveIsIdempotent(t *testing.T) {
	hub := NewHub()
	c := &client{send: make(chan []byte, 1)}
	hub.clients[c] = true

	hub.remove(c)
	hub.remove(c)

	if got := hub.ClientCount(); got != 0 {
		t.Errorf("client count: got %d, want 0", got)
	}
	if ok := c.trySend([]byte("x")); !ok {
		t.Error("trySend to a closed client must report handled, not full")
	}
}
