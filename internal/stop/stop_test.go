package stop

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/robolearn/activity-monitor/internal/session"
)

func TestStopNavigatesToDestination(t *testing.T) {
	nav := &FakeNavigator{}
	h := NewHandler(nav)

	err := h.Stop(Control{Destination: "/activities/5/stop"})
	if err != nil {
		t.Fatalf("stop failed: %v", err)
	}

	if len(nav.Destinations) != 1 {
		t.Fatalf("expected exactly 1 navigation, got %d", len(nav.Destinations))
	}
	if nav.Destinations[0] != "/activities/5/stop" {
		t.Errorf("unexpected destination: %s", nav.Destinations[0])
	}
}

func TestStopMissingDestinationIsConfigError(t *testing.T) {
	nav := &FakeNavigator{}
	h := NewHandler(nav)

	err := h.Stop(Control{})
	if err == nil {
		t.Fatal("expected error for missing destination")
	}
	var cfgErr *session.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected ConfigError, got %T: %v", err, err)
	}
	if len(nav.Destinations) != 0 {
		t.Errorf("expected no navigation, got %v", nav.Destinations)
	}
}

func TestStopDoesNotRetry(t *testing.T) {
	nav := &FakeNavigator{NavigateError: errors.New("backend unreachable")}
	h := NewHandler(nav)

	if err := h.Stop(Control{Destination: "/activities/5/stop"}); err == nil {
		t.Fatal("expected navigation error to be surfaced")
	}
	if len(nav.Destinations) != 0 {
		t.Errorf("failed navigation must not be retried, got %v", nav.Destinations)
	}
}

func TestHTTPNavigatorIssuesGet(t *testing.T) {
	var gotPath string
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
	}))
	defer srv.Close()

	nav := NewHTTPNavigator(srv.URL)
	if err := nav.Navigate("/activities/5/stop"); err != nil {
		t.Fatalf("navigate failed: %v", err)
	}

	if gotMethod != http.MethodGet {
		t.Errorf("expected GET, got %s", gotMethod)
	}
	if gotPath != "/activities/5/stop" {
		t.Errorf("unexpected path: %s", gotPath)
	}
}

func TestHTTPNavigatorNormalizesPaths(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	// Trailing slash on base, missing leading slash on destination.
	nav := NewHTTPNavigator(srv.URL + "/")
	if err := nav.Navigate("activities/5/stop"); err != nil {
		t.Fatalf("navigate failed: %v", err)
	}
	if gotPath != "/activities/5/stop" {
		t.Errorf("unexpected path: %s", gotPath)
	}
}

func TestHTTPNavigatorErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	nav := NewHTTPNavigator(srv.URL)
	if err := nav.Navigate("/activities/5/stop"); err == nil {
		t.Error("expected error for 404 response")
	}
}
