// Package net is the websocket edge of the room engine. It upgrades
// connections, decodes inbound envelopes, and forwards typed events to
// the hub; everything authoritative happens on the other side of the
// arena.Conn boundary.
package net

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Fernoxx/slithermatch-server/internal/arena"
	"github.com/Fernoxx/slithermatch-server/internal/proto"
	"github.com/Fernoxx/slithermatch-server/internal/telemetry"
)

type Server struct {
	hub      *arena.Hub
	counters *telemetry.Counters
	upgrader websocket.Upgrader
}

func NewServer(hub *arena.Hub, counters *telemetry.Counters) *Server {
	return &Server{
		hub:      hub,
		counters: counters,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Routes registers the websocket and diagnostics endpoints.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/diagnostics", s.handleDiagnostics)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	payload := struct {
		Status     string             `json:"status"`
		ServerTime int64              `json:"serverTime"`
		Counters   telemetry.Snapshot `json:"counters"`
	}{
		Status:     "ok",
		ServerTime: time.Now().UnixMilli(),
		Counters:   s.counters.Snapshot(),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "failed to encode", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade failed: %v", err)
		return
	}

	session := newSession(conn, s.counters)
	s.hub.Register(session)
	defer func() {
		s.hub.Unregister(session.ID())
		session.Close()
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var envelope proto.Envelope
		if err := json.Unmarshal(payload, &envelope); err != nil {
			log.Printf("discarding malformed message from %s: %v", session.ID(), err)
			s.hub.RejectMalformed(session.ID())
			continue
		}

		switch envelope.Type {
		case proto.EventFindGame:
			var msg proto.FindGamePayload
			if err := json.Unmarshal(envelope.Data, &msg); err != nil {
				log.Printf("malformed find-game from %s: %v", session.ID(), err)
				s.hub.RejectMalformed(session.ID())
				continue
			}
			s.hub.Join(session, msg.GameType, msg.PlayerInfo)
		case proto.EventMove:
			var msg proto.MovePayload
			if err := json.Unmarshal(envelope.Data, &msg); err != nil {
				log.Printf("malformed move from %s: %v", session.ID(), err)
				s.hub.RejectMalformed(session.ID())
				continue
			}
			s.hub.Move(session.ID(), msg.Angle)
		case proto.EventRespawn:
			var msg proto.RespawnPayload
			if len(envelope.Data) > 0 {
				if err := json.Unmarshal(envelope.Data, &msg); err != nil {
					log.Printf("malformed respawn from %s: %v", session.ID(), err)
					s.hub.RejectMalformed(session.ID())
					continue
				}
			}
			s.hub.Respawn(session.ID(), msg.Username)
		case proto.EventPing:
			s.hub.Ping(session.ID())
		case proto.EventDisconnect:
			s.hub.Leave(session.ID())
		default:
			log.Printf("unknown message type %q from %s", envelope.Type, session.ID())
			s.hub.RejectMalformed(session.ID())
		}
	}
}
