// Package arena owns all live rooms: matchmaking, the room lifecycle
// state machine, and the periodic simulation, broadcast, leaderboard and
// status loops. One mutex guards the registry; every inbound event and
// every timer callback locks it and runs to completion, so handlers never
// observe each other mid-mutation. Outbound frames are queued while the
// lock is held and written after it is released, so a slow client never
// stalls the registry.
package arena

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Fernoxx/slithermatch-server/internal/game"
	"github.com/Fernoxx/slithermatch-server/internal/proto"
	"github.com/Fernoxx/slithermatch-server/internal/telemetry"
	"github.com/Fernoxx/slithermatch-server/logging"
	matchlog "github.com/Fernoxx/slithermatch-server/logging/match"
)

const (
	rejectPaidBusy   = "lobby full or in progress"
	rejectCasualFull = "lobbies full"
)

// Config tunes the lifecycle timers. Tests shrink the durations.
type Config struct {
	CountdownDuration time.Duration
	TeardownDelay     time.Duration
	Seed              int64
}

func DefaultConfig() Config {
	return Config{
		CountdownDuration: game.CountdownDuration,
		TeardownDelay:     game.TeardownDelay,
	}
}

type membership struct {
	roomID   string
	playerID string
}

// pendingSend is one outbound frame queued under the registry lock and
// written after it is released.
type pendingSend struct {
	conn    Conn
	event   string
	payload any
}

// Hub is the authoritative registry of rooms and connections.
type Hub struct {
	mu  sync.Mutex
	cfg Config

	rooms          map[string]*game.Room
	paidRoomID     string
	casualRoomIDs  []string
	freeplayRoomID string

	// conns holds every registered transport connection; members holds
	// the subset that joined a room.
	conns   map[string]Conn
	members map[string]membership

	nextRoomID atomic.Uint64
	tick       uint64

	publisher logging.Publisher
	counters  *telemetry.Counters
}

// NewHub builds a hub and creates the process-lifetime freeplay room.
func NewHub(cfg Config, publisher logging.Publisher, counters *telemetry.Counters) *Hub {
	if cfg.CountdownDuration <= 0 {
		cfg.CountdownDuration = game.CountdownDuration
	}
	if cfg.TeardownDelay <= 0 {
		cfg.TeardownDelay = game.TeardownDelay
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	h := &Hub{
		cfg:       cfg,
		rooms:     make(map[string]*game.Room),
		conns:     make(map[string]Conn),
		members:   make(map[string]membership),
		publisher: publisher,
		counters:  counters,
	}
	mode, _ := game.ModeFor(game.RoomFreeplay)
	room := h.createRoomLocked(mode)
	h.freeplayRoomID = room.ID
	return h
}

// Register associates a freshly opened connection with the hub.
func (h *Hub) Register(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn.ID()] = conn
}

// Unregister runs the leave path for a closed connection and forgets it.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	sends := h.leaveLocked(nil, connID, "disconnect")
	delete(h.conns, connID)
	h.mu.Unlock()
	h.flush(sends)
}

// Join resolves a matchmaking request to a room or a rejection.
func (h *Hub) Join(conn Conn, gameType string, info proto.PlayerInfo) {
	h.mu.Lock()
	sends := h.joinLocked(conn, gameType, info)
	h.mu.Unlock()
	h.flush(sends)
}

func (h *Hub) joinLocked(conn Conn, gameType string, info proto.PlayerInfo) []pendingSend {
	var sends []pendingSend

	if info.Address == "" {
		return append(sends, pendingSend{conn: conn, event: proto.EventError,
			payload: proto.ErrorPayload{Message: "missing player address"}})
	}
	mode, ok := game.ModeFor(game.RoomType(gameType))
	if !ok {
		return append(sends, pendingSend{conn: conn, event: proto.EventError,
			payload: proto.ErrorPayload{Message: fmt.Sprintf("unknown game type %q", gameType)}})
	}

	room, reject := h.resolveRoomLocked(mode)
	if reject != "" {
		return append(sends, pendingSend{conn: conn, event: proto.EventGameUnavailable,
			payload: proto.GameUnavailablePayload{Reason: reject}})
	}

	// A connection can only inhabit one room at a time.
	sends = h.leaveLocked(sends, conn.ID(), "rejoined")

	player, existed := room.Player(info.Address)
	if existed {
		// Reconnect: the address keeps its snake, only the connection
		// mapping changes.
		if prev, ok := h.conns[player.ConnID]; ok && prev.ID() != conn.ID() {
			delete(h.members, player.ConnID)
		}
		player.ConnID = conn.ID()
		if info.Username != "" {
			player.Name = info.Username
		}
		player.LastUpdate = time.Now()
	} else {
		spawn := room.SpawnPosition()
		now := time.Now()
		player = &game.Player{
			Address:    info.Address,
			ConnID:     conn.ID(),
			Name:       info.Username,
			Avatar:     info.ProfilePic,
			Snake:      game.NewSnake(spawn, room.NextColor()),
			JoinedAt:   now,
			LastUpdate: now,
		}
		room.AddPlayer(player)
		matchlog.PlayerJoined(context.Background(), h.publisher, room.ID, player.Address,
			matchlog.PlayerJoinedPayload{SpawnX: spawn.X, SpawnY: spawn.Y})
	}
	h.members[conn.ID()] = membership{roomID: room.ID, playerID: player.Address}

	sends = append(sends, pendingSend{conn: conn, event: proto.EventGameJoined,
		payload: h.joinSnapshotLocked(room, player.Address)})
	sends = h.collectRoomLocked(sends, room, proto.EventPlayerJoined, playerSummary(player), player.Address)

	if mode.Countdown && room.State == game.StateWaiting && room.PlayerCount() >= mode.MinPlayers {
		sends = h.startCountdownLocked(sends, room)
	}
	return sends
}

// Move updates the heading applied on the next simulation tick. Unknown
// connections and dead snakes are silently ignored.
func (h *Hub) Move(connID string, angle float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, player, ok := h.lookupLocked(connID)
	if !ok || !player.Alive() {
		return
	}
	player.Snake.Angle = angle
	player.LastUpdate = time.Now()
}

// Respawn replaces a dead freeplay snake wholesale.
func (h *Hub) Respawn(connID string, username string) {
	h.mu.Lock()
	sends := h.respawnLocked(connID, username)
	h.mu.Unlock()
	h.flush(sends)
}

func (h *Hub) respawnLocked(connID, username string) []pendingSend {
	conn, ok := h.conns[connID]
	if !ok {
		return nil
	}
	var sends []pendingSend
	room, player, found := h.lookupLocked(connID)
	if !found {
		return append(sends, pendingSend{conn: conn, event: proto.EventError,
			payload: proto.ErrorPayload{Message: "not in a game"}})
	}
	if !room.Mode.Respawn {
		return append(sends, pendingSend{conn: conn, event: proto.EventError,
			payload: proto.ErrorPayload{Message: "respawn is not available in this mode"}})
	}
	if player.Alive() {
		return append(sends, pendingSend{conn: conn, event: proto.EventError,
			payload: proto.ErrorPayload{Message: "snake is still alive"}})
	}

	color := player.Snake.Color
	if color == "" {
		color = room.NextColor()
	}
	player.Snake = game.NewSnake(room.SpawnPosition(), color)
	if username != "" {
		player.Name = username
	}
	player.LastUpdate = time.Now()

	payload := proto.RespawnedPayload{PlayerID: player.Address, Snake: proto.SnakeWire(player.Snake)}
	sends = append(sends, pendingSend{conn: conn, event: proto.EventRespawned, payload: payload})
	return h.collectRoomLocked(sends, room, proto.EventPlayerRespawned, payload, player.Address)
}

// Ping answers a liveness echo.
func (h *Hub) Ping(connID string) {
	h.mu.Lock()
	conn, ok := h.conns[connID]
	h.mu.Unlock()
	if !ok {
		return
	}
	h.send(conn, proto.EventPong, proto.PongPayload{ServerTime: time.Now().UnixMilli()})
}

// Leave runs the explicit leave path for a connection.
func (h *Hub) Leave(connID string) {
	h.mu.Lock()
	sends := h.leaveLocked(nil, connID, "leave")
	h.mu.Unlock()
	h.flush(sends)
}

// RejectMalformed answers an undecodable request with a generic error.
func (h *Hub) RejectMalformed(connID string) {
	h.mu.Lock()
	conn, ok := h.conns[connID]
	h.mu.Unlock()
	if !ok {
		return
	}
	h.send(conn, proto.EventError, proto.ErrorPayload{Message: "malformed request"})
}

// Room exposes a room for inspection (tests, diagnostics).
func (h *Hub) Room(id string) (*game.Room, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[id]
	return room, ok
}

// FreeplayRoomID returns the id of the persistent freeplay room.
func (h *Hub) FreeplayRoomID() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.freeplayRoomID
}

// PlayerCount reports a room's current occupancy.
func (h *Hub) PlayerCount(roomID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if room, ok := h.rooms[roomID]; ok {
		return room.PlayerCount()
	}
	return 0
}

// RoomCounts reports how many rooms of each type currently exist.
func (h *Hub) RoomCounts() map[game.RoomType]int {
	h.mu.Lock()
	defer h.mu.Unlock()
	counts := make(map[game.RoomType]int)
	for _, room := range h.rooms {
		counts[room.Mode.Type]++
	}
	return counts
}

// resolveRoomLocked applies the per-type matchmaking policy.
func (h *Hub) resolveRoomLocked(mode game.Mode) (*game.Room, string) {
	switch mode.Type {
	case game.RoomPaid:
		if h.paidRoomID != "" {
			room := h.rooms[h.paidRoomID]
			if room.State == game.StateWaiting && room.PlayerCount() < mode.MaxPlayers {
				return room, ""
			}
			return nil, rejectPaidBusy
		}
		room := h.createRoomLocked(mode)
		h.paidRoomID = room.ID
		return room, ""
	case game.RoomCasual:
		for _, id := range h.casualRoomIDs {
			room := h.rooms[id]
			if room.State == game.StateWaiting && room.PlayerCount() < mode.MaxPlayers {
				return room, ""
			}
		}
		if len(h.casualRoomIDs) < mode.MaxRooms {
			room := h.createRoomLocked(mode)
			h.casualRoomIDs = append(h.casualRoomIDs, room.ID)
			return room, ""
		}
		return nil, rejectCasualFull
	default:
		return h.rooms[h.freeplayRoomID], ""
	}
}

func (h *Hub) createRoomLocked(mode game.Mode) *game.Room {
	id := fmt.Sprintf("%s-%d", mode.Type, h.nextRoomID.Add(1))
	room := game.NewRoom(id, mode, h.cfg.Seed+int64(h.nextRoomID.Load()))
	h.rooms[id] = room
	matchlog.RoomCreated(context.Background(), h.publisher, id, matchlog.RoomCreatedPayload{
		GameType:  string(mode.Type),
		WorldSize: mode.WorldSize,
		FoodCount: mode.FoodCount,
	})
	return room
}

// startCountdownLocked moves a waiting room into countdown and arms the
// one-shot expiry check.
func (h *Hub) startCountdownLocked(sends []pendingSend, room *game.Room) []pendingSend {
	now := time.Now()
	room.State = game.StateCountdown
	room.CountdownStart = now
	sends = h.collectRoomLocked(sends, room, proto.EventCountdownStarted, proto.CountdownStartedPayload{
		Duration:  int(h.cfg.CountdownDuration / time.Second),
		StartTime: now.UnixMilli(),
	}, "")
	roomID := room.ID
	time.AfterFunc(h.cfg.CountdownDuration, func() { h.countdownExpired(roomID) })
	return sends
}

// countdownExpired fires once per armed countdown. The transition only
// happens if the room is still in countdown with enough players; when the
// guard fails nothing happens and no new check is armed, so a room whose
// player count dipped transiently stays in countdown.
func (h *Hub) countdownExpired(roomID string) {
	h.mu.Lock()
	var sends []pendingSend
	room, ok := h.rooms[roomID]
	if ok && room.State == game.StateCountdown && room.PlayerCount() >= room.Mode.MinPlayers {
		now := time.Now()
		room.State = game.StatePlaying
		room.StartedAt = now
		sends = h.collectRoomLocked(sends, room, proto.EventGameStarted,
			proto.GameStartedPayload{StartTime: now.UnixMilli()}, "")
	}
	h.mu.Unlock()
	h.flush(sends)
}

// evaluateWinLocked ends a playing room once at most one snake survives.
func (h *Hub) evaluateWinLocked(sends []pendingSend, room *game.Room) []pendingSend {
	if !room.Mode.Countdown || room.State != game.StatePlaying {
		return sends
	}
	if room.LivingCount() > 1 {
		return sends
	}
	return h.endGameLocked(sends, room)
}

func (h *Hub) endGameLocked(sends []pendingSend, room *game.Room) []pendingSend {
	if room.State == game.StateEnded {
		return sends
	}
	room.State = game.StateEnded

	var winner *proto.WinnerInfo
	var logPayload matchlog.GameEndedPayload
	if survivor, ok := room.SoleSurvivor(); ok {
		room.WinnerID = survivor.Address
		winner = &proto.WinnerInfo{
			ID:       survivor.Address,
			Username: survivor.Name,
			Score:    survivor.Snake.Score,
		}
		logPayload = matchlog.GameEndedPayload{Winner: survivor.Address, Score: survivor.Snake.Score}
	}
	sends = h.collectRoomLocked(sends, room, proto.EventGameEnded, proto.GameEndedPayload{
		Winner:   winner,
		GameType: string(room.Mode.Type),
	}, "")
	matchlog.GameEnded(context.Background(), h.publisher, h.tick, room.ID, logPayload)

	roomID := room.ID
	time.AfterFunc(h.cfg.TeardownDelay, func() { h.removeRoom(roomID) })
	return sends
}

// removeRoom deletes an ended room and releases its type slot.
func (h *Hub) removeRoom(roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[roomID]
	if !ok || room.State != game.StateEnded {
		return
	}
	delete(h.rooms, roomID)
	if h.paidRoomID == roomID {
		h.paidRoomID = ""
	}
	for i, id := range h.casualRoomIDs {
		if id == roomID {
			h.casualRoomIDs = append(h.casualRoomIDs[:i], h.casualRoomIDs[i+1:]...)
			break
		}
	}
	for connID, m := range h.members {
		if m.roomID == roomID {
			delete(h.members, connID)
		}
	}
	matchlog.RoomRemoved(context.Background(), h.publisher, roomID)
}

// leaveLocked removes a connection's player from its room. A living snake
// in a non-freeplay room becomes food drops first.
func (h *Hub) leaveLocked(sends []pendingSend, connID string, reason string) []pendingSend {
	m, ok := h.members[connID]
	if !ok {
		return sends
	}
	delete(h.members, connID)

	room, ok := h.rooms[m.roomID]
	if !ok {
		return sends
	}
	player, ok := room.Player(m.playerID)
	if !ok {
		return sends
	}
	if player.Alive() && !room.Mode.Respawn {
		player.Snake.Dead = true
		room.DropSnakeFood(player.Snake)
	}
	room.RemovePlayer(player.Address)
	sends = h.collectRoomLocked(sends, room, proto.EventPlayerLeft, playerSummary(player), "")
	matchlog.PlayerLeft(context.Background(), h.publisher, room.ID, player.Address,
		matchlog.PlayerLeftPayload{Reason: reason})

	if room.Mode.Respawn {
		return sends
	}
	if room.PlayerCount() == 0 {
		return h.endGameLocked(sends, room)
	}
	return h.evaluateWinLocked(sends, room)
}

func (h *Hub) lookupLocked(connID string) (*game.Room, *game.Player, bool) {
	m, ok := h.members[connID]
	if !ok {
		return nil, nil, false
	}
	room, ok := h.rooms[m.roomID]
	if !ok {
		return nil, nil, false
	}
	player, ok := room.Player(m.playerID)
	if !ok {
		return nil, nil, false
	}
	return room, player, true
}

// joinSnapshotLocked builds the full room snapshot for a join confirmation.
func (h *Hub) joinSnapshotLocked(room *game.Room, playerID string) proto.GameJoinedPayload {
	players := room.Players()
	details := make([]proto.PlayerDetail, 0, len(players))
	for _, p := range players {
		details = append(details, proto.PlayerDetail{
			ID:         p.Address,
			Username:   p.Name,
			ProfilePic: p.Avatar,
			Snake:      proto.SnakeWire(p.Snake),
		})
	}
	food := make([]game.Food, 0, len(room.Food))
	for _, f := range room.Food {
		food = append(food, *f)
	}
	return proto.GameJoinedPayload{
		RoomID:    room.ID,
		GameType:  string(room.Mode.Type),
		PlayerID:  playerID,
		State:     string(room.State),
		WorldSize: room.Mode.WorldSize,
		Players:   details,
		Food:      food,
	}
}

func playerSummary(p *game.Player) proto.PlayerSummary {
	summary := proto.PlayerSummary{
		ID:         p.Address,
		Username:   p.Name,
		ProfilePic: p.Avatar,
	}
	if p.Snake != nil {
		summary.Color = p.Snake.Color
		summary.Score = p.Snake.Score
	}
	return summary
}

// collectRoomLocked queues an event for every member of a room, optionally
// skipping one player.
func (h *Hub) collectRoomLocked(sends []pendingSend, room *game.Room, event string, payload any, except string) []pendingSend {
	for _, p := range room.Players() {
		if except != "" && p.Address == except {
			continue
		}
		conn, ok := h.conns[p.ConnID]
		if !ok {
			continue
		}
		sends = append(sends, pendingSend{conn: conn, event: event, payload: payload})
	}
	return sends
}

// flush writes queued frames. Callers must have released the registry
// lock: a blocking transport write here cannot stall the hub.
func (h *Hub) flush(sends []pendingSend) {
	for _, s := range sends {
		h.send(s.conn, s.event, s.payload)
	}
}

func (h *Hub) send(conn Conn, event string, payload any) {
	if err := conn.Send(event, payload); err != nil {
		log.Printf("failed to send %s to %s: %v", event, conn.ID(), err)
	}
}
