package net

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Fernoxx/slithermatch-server/internal/proto"
	"github.com/Fernoxx/slithermatch-server/internal/telemetry"
)

const writeWait = 10 * time.Second

// Session wraps one websocket connection behind the hub's capability
// interface. Writes are serialized by the session mutex.
type Session struct {
	id       string
	conn     *websocket.Conn
	counters *telemetry.Counters
	mu       sync.Mutex
}

func newSession(conn *websocket.Conn, counters *telemetry.Counters) *Session {
	return &Session{
		id:       uuid.NewString(),
		conn:     conn,
		counters: counters,
	}
}

// ID returns the connection identifier.
func (s *Session) ID() string {
	return s.id
}

// Send marshals one outbound envelope and writes it under the write
// deadline.
func (s *Session) Send(event string, payload any) error {
	data, err := json.Marshal(proto.OutEnvelope{Type: event, Data: payload})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	s.counters.RecordSend(len(data))
	return nil
}

// Close tears the underlying connection down.
func (s *Session) Close() error {
	return s.conn.Close()
}
