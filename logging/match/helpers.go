package match

import (
	"context"

	"github.com/Fernoxx/slithermatch-server/logging"
)

const (
	// EventRoomCreated is emitted when the matchmaker opens a new room.
	EventRoomCreated logging.EventType = "match.room_created"
	// EventRoomRemoved is emitted when an ended room is torn down.
	EventRoomRemoved logging.EventType = "match.room_removed"
	// EventPlayerJoined is emitted when a player enters a room.
	EventPlayerJoined logging.EventType = "match.player_joined"
	// EventPlayerLeft is emitted when a player leaves or disconnects.
	EventPlayerLeft logging.EventType = "match.player_left"
	// EventPlayerDied is emitted when a snake dies.
	EventPlayerDied logging.EventType = "match.player_died"
	// EventGameEnded is emitted when a room reaches its end state.
	EventGameEnded logging.EventType = "match.game_ended"
)

// RoomCreatedPayload captures the mode and sizing of a new room.
type RoomCreatedPayload struct {
	GameType  string  `json:"gameType"`
	WorldSize float64 `json:"worldSize"`
	FoodCount int     `json:"foodCount"`
}

// PlayerJoinedPayload captures spawn metadata for a new player.
type PlayerJoinedPayload struct {
	SpawnX float64 `json:"spawnX"`
	SpawnY float64 `json:"spawnY"`
}

// PlayerLeftPayload captures the reason a player left.
type PlayerLeftPayload struct {
	Reason string `json:"reason"`
}

// PlayerDiedPayload captures how a snake died.
type PlayerDiedPayload struct {
	Cause      string `json:"cause"`
	KilledBy   string `json:"killedBy,omitempty"`
	CanRespawn bool   `json:"canRespawn"`
}

// GameEndedPayload carries the winner, if any.
type GameEndedPayload struct {
	Winner string `json:"winner,omitempty"`
	Score  int    `json:"score,omitempty"`
}

// RoomCreated publishes a room creation event.
func RoomCreated(ctx context.Context, pub logging.Publisher, roomID string, payload RoomCreatedPayload) {
	publish(ctx, pub, logging.Event{
		Type:    EventRoomCreated,
		Actor:   logging.EntityRef{ID: roomID, Kind: logging.EntityKindRoom},
		Room:    roomID,
		Payload: payload,
	})
}

// RoomRemoved publishes a room teardown event.
func RoomRemoved(ctx context.Context, pub logging.Publisher, roomID string) {
	publish(ctx, pub, logging.Event{
		Type:  EventRoomRemoved,
		Actor: logging.EntityRef{ID: roomID, Kind: logging.EntityKindRoom},
		Room:  roomID,
	})
}

// PlayerJoined publishes a player join event.
func PlayerJoined(ctx context.Context, pub logging.Publisher, roomID, playerID string, payload PlayerJoinedPayload) {
	publish(ctx, pub, logging.Event{
		Type:    EventPlayerJoined,
		Actor:   logging.EntityRef{ID: playerID, Kind: logging.EntityKindPlayer},
		Room:    roomID,
		Payload: payload,
	})
}

// PlayerLeft publishes a player leave event.
func PlayerLeft(ctx context.Context, pub logging.Publisher, roomID, playerID string, payload PlayerLeftPayload) {
	publish(ctx, pub, logging.Event{
		Type:    EventPlayerLeft,
		Actor:   logging.EntityRef{ID: playerID, Kind: logging.EntityKindPlayer},
		Room:    roomID,
		Payload: payload,
	})
}

// PlayerDied publishes a death event on the given tick.
func PlayerDied(ctx context.Context, pub logging.Publisher, tick uint64, roomID, playerID string, payload PlayerDiedPayload) {
	publish(ctx, pub, logging.Event{
		Type:    EventPlayerDied,
		Tick:    tick,
		Actor:   logging.EntityRef{ID: playerID, Kind: logging.EntityKindPlayer},
		Room:    roomID,
		Payload: payload,
	})
}

// GameEnded publishes a room end event.
func GameEnded(ctx context.Context, pub logging.Publisher, tick uint64, roomID string, payload GameEndedPayload) {
	publish(ctx, pub, logging.Event{
		Type:    EventGameEnded,
		Tick:    tick,
		Actor:   logging.EntityRef{ID: roomID, Kind: logging.EntityKindRoom},
		Room:    roomID,
		Payload: payload,
	})
}

func publish(ctx context.Context, pub logging.Publisher, event logging.Event) {
	if pub == nil {
		return
	}
	event.Severity = logging.SeverityInfo
	event.Category = logging.CategoryMatch
	pub.Publish(ctx, event)
}
