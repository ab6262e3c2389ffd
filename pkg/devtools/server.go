// Package devtools provides a development-time inspector for ripple
// observables: an HTTP server that exposes the current state of watched
// observables as JSON and streams their change records to connected
// browsers over WebSocket.
//
// Not intended for production exposure; there is no authentication.
package devtools

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// EventKind discriminates streamed change records.
type EventKind string

const (
	EventValue EventKind = "value"
	EventSet   EventKind = "set"
)

// Event is the change record pushed to connected clients.
type Event struct {
	Observable string    `json:"observable"`
	Kind       EventKind `json:"kind"`
	Old        any       `json:"old,omitempty"`
	New        any       `json:"new,omitempty"`
	Inserted   []any     `json:"inserted,omitempty"`
	Removed    []any     `json:"removed,omitempty"`
}

// Server manages WebSocket clients and the set of watched observables.
type Server struct {
	mu       sync.RWMutex
	clients  map[*websocket.Conn]bool
	watched  map[string]func() any
	router   chi.Router
	upgrader websocket.Upgrader
}

// NewServer creates an inspector server with its routes mounted:
// GET /live upgrades to WebSocket and streams events, GET /snapshot returns
// the current state of every watched observable.
func NewServer() *Server {
	s := &Server{
		clients: make(map[*websocket.Conn]bool),
		watched: make(map[string]func() any),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins in dev
			},
		},
	}

	r := chi.NewRouter()
	r.Get("/live", s.handleLive)
	r.Get("/snapshot", s.handleSnapshot)
	s.router = r

	return s
}

// Handler returns the inspector's HTTP handler for mounting.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ClientCount returns the number of connected WebSocket clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// handleLive handles WebSocket upgrade and connection.
func (s *Server) handleLive(w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

// handleSnapshot serves the current state of every watched observable.
func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	snapshot := make(map[string]any, len(s.watched))
	for name, read := range s.watched {
		snapshot[name] = read()
	}
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// broadcast sends an event to all connected clients, dropping clients whose
// connection has failed.
func (s *Server) broadcast(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteJSON(ev); err != nil {
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

// register adds a named snapshot reader; unregister removes it.
func (s *Server) register(name string, read func() any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watched[name] = read
}

func (s *Server) unregister(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.watched, name)
}
