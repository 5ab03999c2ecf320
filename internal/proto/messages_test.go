package proto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fernoxx/slithermatch-server/internal/game"
)

func TestEnvelopeDecodesFindGame(t *testing.T) {
	raw := []byte(`{"type":"find-game","data":{"gameType":"paid","playerInfo":{"address":"0xabc","username":"ada"}}}`)

	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, EventFindGame, env.Type)

	var payload FindGamePayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, "paid", payload.GameType)
	assert.Equal(t, "0xabc", payload.PlayerInfo.Address)
	assert.Equal(t, "ada", payload.PlayerInfo.Username)
}

func TestEnvelopeToleratesMissingData(t *testing.T) {
	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(`{"type":"ping"}`), &env))
	assert.Equal(t, EventPing, env.Type)
	assert.Nil(t, env.Data)
}

func TestOutEnvelopeShape(t *testing.T) {
	out := OutEnvelope{Type: EventPong, Data: PongPayload{ServerTime: 42}}
	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"pong","data":{"serverTime":42}}`, string(raw))
}

func TestSnakeWireMapsDomainSnake(t *testing.T) {
	s := game.NewSnake(game.Position{X: 100, Y: 200}, "#3498db")
	s.Score = 35
	s.Kills = 2
	s.Dead = true

	wire := SnakeWire(s)
	assert.Equal(t, s.Segments, wire.Segments)
	assert.Equal(t, 35, wire.Score)
	assert.Equal(t, 2, wire.Kills)
	assert.Equal(t, "#3498db", wire.Color)
	assert.True(t, wire.Dead)
	assert.Equal(t, s.Radius, wire.Radius)
}

func TestSnakeWireNil(t *testing.T) {
	assert.Equal(t, SnakeState{}, SnakeWire(nil))
}

func TestGameEndedWinnerIsNullable(t *testing.T) {
	raw, err := json.Marshal(GameEndedPayload{GameType: "paid"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"winner":null,"gameType":"paid"}`, string(raw))
}
