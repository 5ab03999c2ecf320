// Package telemetry tracks lightweight counters for the diagnostics
// endpoint. Everything is atomic; there is no locking on the hot path.
package telemetry

import (
	"sync/atomic"
	"time"
)

type Counters struct {
	bytesSent          atomic.Uint64
	messagesSent       atomic.Uint64
	tickDurationMicros atomic.Int64

	paidRooms       atomic.Int64
	casualRooms     atomic.Int64
	freeplayPlayers atomic.Int64
	paidPlayers     atomic.Int64
	casualPlayers   atomic.Int64
}

type Snapshot struct {
	BytesSent          uint64 `json:"bytesSent"`
	MessagesSent       uint64 `json:"messagesSent"`
	TickDurationMicros int64  `json:"tickDurationMicros"`
	PaidRooms          int64  `json:"paidRooms"`
	CasualRooms        int64  `json:"casualRooms"`
	PaidPlayers        int64  `json:"paidPlayers"`
	CasualPlayers      int64  `json:"casualPlayers"`
	FreeplayPlayers    int64  `json:"freeplayPlayers"`
}

func NewCounters() *Counters {
	return &Counters{}
}

// RecordSend accumulates one outbound frame.
func (c *Counters) RecordSend(bytes int) {
	if c == nil {
		return
	}
	if bytes < 0 {
		bytes = 0
	}
	c.bytesSent.Add(uint64(bytes))
	c.messagesSent.Add(1)
}

// RecordTickDuration stores the latest simulation step cost.
func (c *Counters) RecordTickDuration(d time.Duration) {
	if c == nil {
		return
	}
	micros := d.Microseconds()
	if micros < 0 {
		micros = 0
	}
	c.tickDurationMicros.Store(micros)
}

// SetOccupancy publishes the current room and player gauges.
func (c *Counters) SetOccupancy(paidRooms, casualRooms int, paidPlayers, casualPlayers, freeplayPlayers int) {
	if c == nil {
		return
	}
	c.paidRooms.Store(int64(paidRooms))
	c.casualRooms.Store(int64(casualRooms))
	c.paidPlayers.Store(int64(paidPlayers))
	c.casualPlayers.Store(int64(casualPlayers))
	c.freeplayPlayers.Store(int64(freeplayPlayers))
}

func (c *Counters) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	return Snapshot{
		BytesSent:          c.bytesSent.Load(),
		MessagesSent:       c.messagesSent.Load(),
		TickDurationMicros: c.tickDurationMicros.Load(),
		PaidRooms:          c.paidRooms.Load(),
		CasualRooms:        c.casualRooms.Load(),
		PaidPlayers:        c.paidPlayers.Load(),
		CasualPlayers:      c.casualPlayers.Load(),
		FreeplayPlayers:    c.freeplayPlayers.Load(),
	}
}
