// Package proto defines the typed event channel between the room engine
// and its clients. Every websocket frame is an Envelope; Data carries the
// payload struct for the event named by Type.
package proto

import (
	"encoding/json"

	"github.com/Fernoxx/slithermatch-server/internal/game"
)

// Inbound event names (client to server).
const (
	EventFindGame   = "find-game"
	EventRespawn    = "respawn"
	EventMove       = "move"
	EventPing       = "ping"
	EventDisconnect = "disconnect"
)

// Outbound event names (server to client, room, or all).
const (
	EventGameJoined       = "game-joined"
	EventGameUnavailable  = "game-unavailable"
	EventPlayerJoined     = "player-joined"
	EventPlayerLeft       = "player-left"
	EventCountdownStarted = "countdown-started"
	EventGameStarted      = "game-started"
	EventPlayerDied       = "player-died"
	EventFoodEaten        = "food-eaten"
	EventGameState        = "game-state"
	EventLeaderboard      = "leaderboard-update"
	EventGameEnded        = "game-ended"
	EventPlayerRespawned  = "player-respawned"
	EventRespawned        = "respawned"
	EventServerStatus     = "server-status"
	EventError            = "error"
	EventPong             = "pong"
)

// Envelope frames every inbound message.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// OutEnvelope frames every outbound message.
type OutEnvelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// PlayerInfo identifies a joining player.
type PlayerInfo struct {
	Address    string `json:"address"`
	Username   string `json:"username"`
	ProfilePic string `json:"profilePic,omitempty"`
}

// FindGamePayload asks the matchmaker for a room of the given type.
type FindGamePayload struct {
	GameType   string     `json:"gameType"`
	PlayerInfo PlayerInfo `json:"playerInfo"`
}

// MovePayload updates the heading applied on the next simulation tick.
type MovePayload struct {
	Angle float64 `json:"angle"`
}

// RespawnPayload requests a fresh snake in a freeplay room.
type RespawnPayload struct {
	Username string `json:"username,omitempty"`
}

// SnakeState is the per-snake wire form.
type SnakeState struct {
	Segments []game.Position `json:"segments"`
	Angle    float64         `json:"angle"`
	Score    int             `json:"score"`
	Radius   float64         `json:"radius"`
	Dead     bool            `json:"isDead"`
	Color    string          `json:"color"`
	Kills    int             `json:"killCount,omitempty"`
}

// PlayerDetail is the full per-player form sent on join.
type PlayerDetail struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	ProfilePic string     `json:"profilePic,omitempty"`
	Snake      SnakeState `json:"snake"`
}

// PlayerSummary announces a player to the rest of a room.
type PlayerSummary struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	ProfilePic string `json:"profilePic,omitempty"`
	Color      string `json:"color,omitempty"`
	Score      int    `json:"score"`
}

// GameJoinedPayload is the full room snapshot confirmed to the joiner.
type GameJoinedPayload struct {
	RoomID    string         `json:"roomId"`
	GameType  string         `json:"gameType"`
	PlayerID  string         `json:"playerId"`
	State     string         `json:"state"`
	WorldSize float64        `json:"worldSize"`
	Players   []PlayerDetail `json:"players"`
	Food      []game.Food    `json:"food"`
}

// GameUnavailablePayload rejects a matchmaking request.
type GameUnavailablePayload struct {
	Reason string `json:"reason"`
}

// CountdownStartedPayload announces the fixed pre-game delay.
type CountdownStartedPayload struct {
	Duration  int   `json:"duration"` // seconds
	StartTime int64 `json:"startTime"`
}

// GameStartedPayload announces the countdown-to-playing transition.
type GameStartedPayload struct {
	StartTime int64 `json:"startTime"`
}

// PlayerDiedPayload announces a death, with food drops outside freeplay.
type PlayerDiedPayload struct {
	PlayerID    string      `json:"playerId"`
	DroppedFood []game.Food `json:"droppedFood,omitempty"`
	KilledBy    string      `json:"killedBy,omitempty"`
	CanRespawn  bool        `json:"canRespawn"`
}

// FoodEatenPayload announces one consumption and its replacement pellet.
type FoodEatenPayload struct {
	PlayerID string    `json:"playerId"`
	FoodID   string    `json:"foodId"`
	NewFood  game.Food `json:"newFood"`
	Score    int       `json:"score"`
}

// PlayerSnapshot is the minimal per-player form broadcast at 30 Hz.
type PlayerSnapshot struct {
	ID    string     `json:"id"`
	Snake SnakeState `json:"snake"`
}

// GameStatePayload is the periodic minimal world snapshot.
type GameStatePayload struct {
	Players    []PlayerSnapshot `json:"players"`
	FoodCount  int              `json:"foodCount"`
	ServerTime int64            `json:"serverTime"`
}

// LeaderboardPayload carries a room's cached top-10 ranking.
type LeaderboardPayload struct {
	Entries []game.LeaderboardEntry `json:"entries"`
}

// WinnerInfo identifies the surviving player of an ended room.
type WinnerInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// GameEndedPayload announces a room reaching its end state. Winner is
// null when nobody survived.
type GameEndedPayload struct {
	Winner   *WinnerInfo `json:"winner"`
	GameType string      `json:"gameType"`
}

// RespawnedPayload carries the replacement snake after a respawn.
type RespawnedPayload struct {
	PlayerID string     `json:"playerId"`
	Snake    SnakeState `json:"snake"`
}

// ModeStatus aggregates one room type for the server-status broadcast.
type ModeStatus struct {
	Rooms   int `json:"rooms"`
	Players int `json:"players"`
}

// ServerStatusPayload aggregates counts per room type for all clients.
type ServerStatusPayload struct {
	Modes      map[string]ModeStatus `json:"modes"`
	ServerTime int64                 `json:"serverTime"`
}

// ErrorPayload answers a malformed or unexpected request.
type ErrorPayload struct {
	Message string `json:"message"`
}

// PongPayload echoes a liveness check.
type PongPayload struct {
	ServerTime int64 `json:"serverTime"`
}

// SnakeWire converts a domain snake to its wire form.
func SnakeWire(s *game.Snake) SnakeState {
	if s == nil {
		return SnakeState{}
	}
	return SnakeState{
		Segments: s.Segments,
		Angle:    s.Angle,
		Score:    s.Score,
		Radius:   s.Radius,
		Dead:     s.Dead,
		Color:    s.Color,
		Kills:    s.Kills,
	}
}

// SchemaCatalog mirrors every wire payload keyed by event name. The
// schema generator reflects over it to produce a machine-readable
// document for client tooling.
type SchemaCatalog struct {
	FindGame         FindGamePayload         `json:"find-game"`
	Respawn          RespawnPayload          `json:"respawn"`
	Move             MovePayload             `json:"move"`
	GameJoined       GameJoinedPayload       `json:"game-joined"`
	GameUnavailable  GameUnavailablePayload  `json:"game-unavailable"`
	PlayerJoined     PlayerSummary           `json:"player-joined"`
	PlayerLeft       PlayerSummary           `json:"player-left"`
	CountdownStarted CountdownStartedPayload `json:"countdown-started"`
	GameStarted      GameStartedPayload      `json:"game-started"`
	PlayerDied       PlayerDiedPayload       `json:"player-died"`
	FoodEaten        FoodEatenPayload        `json:"food-eaten"`
	GameState        GameStatePayload        `json:"game-state"`
	Leaderboard      LeaderboardPayload      `json:"leaderboard-update"`
	GameEnded        GameEndedPayload        `json:"game-ended"`
	PlayerRespawned  RespawnedPayload        `json:"player-respawned"`
	ServerStatus     ServerStatusPayload     `json:"server-status"`
	Error            ErrorPayload            `json:"error"`
	Pong             PongPayload             `json:"pong"`
}
