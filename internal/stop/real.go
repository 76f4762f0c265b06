package stop

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPNavigator performs the navigation as an HTTP GET against the
// backend, the same request the hosting page would issue.
type HTTPNavigator struct {
	base   string
	client *http.Client
}

// NewHTTPNavigator creates a navigator rooted at the backend base URL,
// e.g. "http://robolearn.local:8000".
func NewHTTPNavigator(base string) *HTTPNavigator {
	return &HTTPNavigator{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Navigate issues one GET to base+destination. Errors are surfaced, not
// retried: a failed stop must be loud.
func (n *HTTPNavigator) Navigate(destination string) error {
	if !strings.HasPrefix(destination, "/") {
		destination = "/" + destination
	}

	resp, err := n.client.Get(n.base + destination)
	if err != nil {
		return fmt.Errorf("stop request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("stop request: backend returned %s", resp.Status)
	}
	return nil
}
