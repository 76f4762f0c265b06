// Package web provides the monitoring page for a running activity session:
// the live timer, the stop control, and machine-readable status.
package web

import (
	"context"
	"net"
	"net/http"

	"github.com/robolearn/activity-monitor/internal/status"
	"github.com/robolearn/activity-monitor/internal/stop"
)

// Server serves the session page over HTTP.
type Server struct {
	httpServer   *http.Server
	tracker      *status.Tracker
	hub          *Hub
	stopRequests chan<- stop.Control
}

// New creates a Server that reads state from the given tracker and
// forwards stop requests to the controller.
func New(addr string, tracker *status.Tracker, hub *Hub, stopRequests chan<- stop.Control) *Server {
	s := &Server{
		tracker:      tracker,
		hub:          hub,
		stopRequests: stopRequests,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/index.html", s.handleIndex)
	mux.HandleFunc("/index.json", s.handleJSON)
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/stop", s.handleStop)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return s
}

// ListenAndServe starts listening. It blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on the given listener. Useful for tests.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		http.NotFound(w, r)
		return
	}
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderHTML(w, snap)
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.Write(status.FormatJSON(snap))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.hub.HandleWS(w, r)
}

// handleStop forwards the stop control to the controller, which owns the
// single navigation to the stop destination. The browser is sent to the
// backend's activity page, which records nothing, so the stop endpoint is
// hit exactly once. The destination is carried in the request, mirroring
// the stop link's data-stop-url attribute, with the configured one as
// fallback.
func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot()

	dest := r.URL.Query().Get("dest")
	if dest == "" {
		dest = snap.Config.StopURL
	}
	if dest == "" {
		http.Error(w, "stop destination not configured", http.StatusInternalServerError)
		return
	}

	ctl := stop.Control{Destination: dest}
	select {
	case s.stopRequests <- ctl:
	default:
		// Controller already stopping; the redirect still stands.
	}

	http.Redirect(w, r, snap.Config.Backend+"/activities/"+snap.Config.ActivityID, http.StatusSeeOther)
}
