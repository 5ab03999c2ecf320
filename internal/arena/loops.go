package arena

import (
	"context"
	"time"

	"github.com/Fernoxx/slithermatch-server/internal/game"
	"github.com/Fernoxx/slithermatch-server/internal/proto"
	matchlog "github.com/Fernoxx/slithermatch-server/logging/match"
)

// RunSimulation drives the fixed-rate authoritative tick until the stop
// channel closes.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second / game.TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			h.StepOnce()
		}
	}
}

// StepOnce advances every playing room by one simulation tick. Event
// frames are queued under the lock and written after it is released.
func (h *Hub) StepOnce() {
	start := time.Now()
	h.mu.Lock()
	h.tick++
	var sends []pendingSend
	for _, room := range h.rooms {
		if room.State != game.StatePlaying {
			continue
		}
		result := room.Step()
		for _, eaten := range result.Eaten {
			sends = h.collectRoomLocked(sends, room, proto.EventFoodEaten, proto.FoodEatenPayload{
				PlayerID: eaten.PlayerID,
				FoodID:   eaten.FoodID,
				NewFood:  *eaten.NewFood,
				Score:    eaten.Score,
			}, "")
		}
		for _, death := range result.Deaths {
			dropped := make([]game.Food, 0, len(death.Dropped))
			for _, f := range death.Dropped {
				dropped = append(dropped, *f)
			}
			sends = h.collectRoomLocked(sends, room, proto.EventPlayerDied, proto.PlayerDiedPayload{
				PlayerID:    death.PlayerID,
				DroppedFood: dropped,
				KilledBy:    death.KilledBy,
				CanRespawn:  death.CanRespawn,
			}, "")
			matchlog.PlayerDied(context.Background(), h.publisher, h.tick, room.ID, death.PlayerID,
				matchlog.PlayerDiedPayload{
					Cause:      string(death.Cause),
					KilledBy:   death.KilledBy,
					CanRespawn: death.CanRespawn,
				})
		}
		if len(result.Deaths) > 0 {
			sends = h.evaluateWinLocked(sends, room)
		}
	}
	h.mu.Unlock()
	h.counters.RecordTickDuration(time.Since(start))
	h.flush(sends)
}

// RunBroadcast fans out world snapshots at the broadcast rate,
// independent of the simulation tick.
func (h *Hub) RunBroadcast(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second / game.BroadcastRate)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			h.BroadcastOnce()
		}
	}
}

// BroadcastOnce sends the minimal world snapshot of every playing room to
// its members. Snapshots are built under the registry lock and written
// outside it so a slow client cannot stall the simulation.
func (h *Hub) BroadcastOnce() {
	now := time.Now().UnixMilli()

	h.mu.Lock()
	var sends []pendingSend
	for _, room := range h.rooms {
		if room.State != game.StatePlaying {
			continue
		}
		players := room.Players()
		snapshots := make([]proto.PlayerSnapshot, 0, len(players))
		for _, p := range players {
			snapshots = append(snapshots, proto.PlayerSnapshot{
				ID:    p.Address,
				Snake: proto.SnakeWire(p.Snake),
			})
		}
		payload := proto.GameStatePayload{
			Players:    snapshots,
			FoodCount:  len(room.Food),
			ServerTime: now,
		}
		for _, p := range players {
			if conn, ok := h.conns[p.ConnID]; ok {
				sends = append(sends, pendingSend{conn: conn, event: proto.EventGameState, payload: payload})
			}
		}
	}
	h.mu.Unlock()
	h.flush(sends)
}

// RunLeaderboard recomputes and fans out the freeplay top-10 ranking.
func (h *Hub) RunLeaderboard(stop <-chan struct{}) {
	ticker := time.NewTicker(game.LeaderboardInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			h.PublishLeaderboards()
		}
	}
}

// PublishLeaderboards ranks living players per respawn room, caches the
// result, and broadcasts it to the room.
func (h *Hub) PublishLeaderboards() {
	h.mu.Lock()
	var sends []pendingSend
	for _, room := range h.rooms {
		if !room.Mode.Respawn {
			continue
		}
		entries := room.ComputeLeaderboard()
		payload := proto.LeaderboardPayload{Entries: entries}
		for _, p := range room.Players() {
			if conn, ok := h.conns[p.ConnID]; ok {
				sends = append(sends, pendingSend{conn: conn, event: proto.EventLeaderboard, payload: payload})
			}
		}
	}
	h.mu.Unlock()
	h.flush(sends)
}

// RunStatus periodically sends aggregate per-type counts to every
// connection, joined or not.
func (h *Hub) RunStatus(stop <-chan struct{}) {
	ticker := time.NewTicker(game.StatusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			h.BroadcastStatus()
		}
	}
}

// BroadcastStatus aggregates room occupancy and fans it out to all
// connections. It also refreshes the diagnostics gauges.
func (h *Hub) BroadcastStatus() {
	h.mu.Lock()
	statuses := make(map[string]proto.ModeStatus, 3)
	for _, room := range h.rooms {
		s := statuses[string(room.Mode.Type)]
		s.Rooms++
		s.Players += room.PlayerCount()
		statuses[string(room.Mode.Type)] = s
	}
	conns := make([]Conn, 0, len(h.conns))
	for _, conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	paid := statuses[string(game.RoomPaid)]
	casual := statuses[string(game.RoomCasual)]
	freeplay := statuses[string(game.RoomFreeplay)]
	h.counters.SetOccupancy(paid.Rooms, casual.Rooms, paid.Players, casual.Players, freeplay.Players)

	payload := proto.ServerStatusPayload{Modes: statuses, ServerTime: time.Now().UnixMilli()}
	for _, conn := range conns {
		h.send(conn, proto.EventServerStatus, payload)
	}
}
