package sinks

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"rockcoast/internal/sims/rockcoast"
)

// Stream broadcasts snapshots as JSON text frames to every connected
// websocket client. New clients receive the latest snapshot on connect.
type Stream struct {
	upgrader websocket.Upgrader
	log      *slog.Logger

	mu      sync.RWMutex
	clients map[*websocket.Conn]*sync.Mutex
	latest  []byte
}

// NewStream returns a stream accepting clients from any origin.
func NewStream(log *slog.Logger) *Stream {
	if log == nil {
		log = slog.Default()
	}
	return &Stream{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log:     log,
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// ServeHTTP upgrades the request and keeps the client registered until it
// disconnects.
func (s *Stream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	mu := &sync.Mutex{}

	s.mu.Lock()
	s.clients[conn] = mu
	latest := s.latest
	s.mu.Unlock()
	s.log.Debug("stream client connected", "remote", r.RemoteAddr)

	if latest != nil {
		mu.Lock()
		err := conn.WriteMessage(websocket.TextMessage, latest)
		mu.Unlock()
		if err != nil {
			s.drop(conn)
			return
		}
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.drop(conn)
			return
		}
	}
}

// Clients returns the number of connected clients.
func (s *Stream) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// WriteSnapshot satisfies rockcoast.SnapshotSink. Clients that fail to accept
// the frame are disconnected.
func (s *Stream) WriteSnapshot(snap rockcoast.Snapshot) error {
	msg, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.latest = msg
	s.mu.Unlock()

	s.mu.RLock()
	var failed []*websocket.Conn
	for conn, mu := range s.clients {
		mu.Lock()
		err := conn.WriteMessage(websocket.TextMessage, msg)
		mu.Unlock()
		if err != nil {
			s.log.Warn("stream write failed", "remote", conn.RemoteAddr().String(), "err", err)
			failed = append(failed, conn)
		}
	}
	s.mu.RUnlock()

	for _, conn := range failed {
		s.drop(conn)
	}
	return nil
}

func (s *Stream) drop(conn *websocket.Conn) {
	s.mu.Lock()
	_, ok := s.clients[conn]
	delete(s.clients, conn)
	s.mu.Unlock()
	if ok {
		conn.Close()
	}
}

// Close disconnects every client.
func (s *Stream) Close(context.Context) error {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.clients = make(map[*websocket.Conn]*sync.Mutex)
	s.mu.Unlock()

	for _, conn := range conns {
		conn.Close()
	}
	return nil
}
