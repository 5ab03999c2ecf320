package game

import (
	"fmt"
	"testing"
)

func newTestRoom(t *testing.T, roomType RoomType) *Room {
	t.Helper()
	mode, ok := ModeFor(roomType)
	if !ok {
		t.Fatalf("unknown room type %q", roomType)
	}
	return NewRoom("room-1", mode, 42)
}

func addTestPlayer(r *Room, address string, spawn Position) *Player {
	p := &Player{
		Address: address,
		ConnID:  "conn-" + address,
		Name:    "player " + address,
		Snake:   NewSnake(spawn, r.NextColor()),
	}
	r.AddPlayer(p)
	return p
}

func TestNewRoomSeedsFullFoodBudget(t *testing.T) {
	room := newTestRoom(t, RoomCasual)

	if len(room.Food) != room.Mode.FoodCount {
		t.Fatalf("expected %d food pellets, got %d", room.Mode.FoodCount, len(room.Food))
	}
	for id, f := range room.Food {
		if f.Position.X < foodInset || f.Position.X > room.Mode.WorldSize-foodInset ||
			f.Position.Y < foodInset || f.Position.Y > room.Mode.WorldSize-foodInset {
			t.Fatalf("pellet %s at (%v,%v) outside inset bounds", id, f.Position.X, f.Position.Y)
		}
		if f.Radius < foodMinRadius || f.Radius > foodMaxRadius {
			t.Fatalf("pellet %s radius %v outside [%v,%v]", id, f.Radius, foodMinRadius, foodMaxRadius)
		}
	}
}

func TestRoomInitialState(t *testing.T) {
	if room := newTestRoom(t, RoomPaid); room.State != StateWaiting {
		t.Fatalf("paid room starts %q, want %q", room.State, StateWaiting)
	}
	if room := newTestRoom(t, RoomFreeplay); room.State != StatePlaying {
		t.Fatalf("freeplay room starts %q, want %q", room.State, StatePlaying)
	}
}

func TestAddPlayerKeepsOrderOnReplace(t *testing.T) {
	room := newTestRoom(t, RoomCasual)
	addTestPlayer(room, "0xaaa", Position{X: 500, Y: 500})
	addTestPlayer(room, "0xbbb", Position{X: 600, Y: 500})

	replacement := &Player{
		Address: "0xaaa",
		ConnID:  "conn-2",
		Snake:   NewSnake(Position{X: 700, Y: 500}, "#3498db"),
	}
	room.AddPlayer(replacement)

	if room.PlayerCount() != 2 {
		t.Fatalf("expected 2 players, got %d", room.PlayerCount())
	}
	players := room.Players()
	if players[0].Address != "0xaaa" || players[0].ConnID != "conn-2" {
		t.Fatalf("expected replaced player to keep its order slot")
	}
}

func TestRemovePlayerDropsOrderSlot(t *testing.T) {
	room := newTestRoom(t, RoomCasual)
	addTestPlayer(room, "0xaaa", Position{X: 500, Y: 500})
	addTestPlayer(room, "0xbbb", Position{X: 600, Y: 500})
	addTestPlayer(room, "0xccc", Position{X: 700, Y: 500})

	room.RemovePlayer("0xbbb")

	players := room.Players()
	if len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}
	if players[0].Address != "0xaaa" || players[1].Address != "0xccc" {
		t.Fatalf("unexpected order after removal: %s, %s", players[0].Address, players[1].Address)
	}
	room.RemovePlayer("0xbbb") // second removal is a no-op
}

func TestNextColorCyclesPalette(t *testing.T) {
	room := newTestRoom(t, RoomFreeplay)
	for i := 0; i < len(snakePalette); i++ {
		room.NextColor()
	}
	if got := room.NextColor(); got != snakePalette[0] {
		t.Fatalf("expected palette to wrap to %s, got %s", snakePalette[0], got)
	}
}

func TestSoleSurvivor(t *testing.T) {
	room := newTestRoom(t, RoomPaid)
	a := addTestPlayer(room, "0xaaa", Position{X: 400, Y: 400})
	b := addTestPlayer(room, "0xbbb", Position{X: 600, Y: 600})

	if _, ok := room.SoleSurvivor(); ok {
		t.Fatalf("two living players should not yield a sole survivor")
	}
	b.Snake.Dead = true
	survivor, ok := room.SoleSurvivor()
	if !ok || survivor.Address != a.Address {
		t.Fatalf("expected %s as sole survivor", a.Address)
	}
	a.Snake.Dead = true
	if _, ok := room.SoleSurvivor(); ok {
		t.Fatalf("no living players should yield no survivor")
	}
}

func TestDropSnakeFoodUsesEvenSegments(t *testing.T) {
	room := newTestRoom(t, RoomCasual)
	p := addTestPlayer(room, "0xaaa", Position{X: 500, Y: 500})
	before := len(room.Food)

	dropped := room.DropSnakeFood(p.Snake)

	want := (len(p.Snake.Segments) + 1) / 2
	if len(dropped) != want {
		t.Fatalf("expected %d drops from %d segments, got %d", want, len(p.Snake.Segments), len(dropped))
	}
	if len(room.Food) != before+want {
		t.Fatalf("expected %d pellets in room, got %d", before+want, len(room.Food))
	}
	for _, f := range dropped {
		if f.Position.X < foodInset || f.Position.X > room.Mode.WorldSize-foodInset {
			t.Fatalf("dropped pellet at X=%v escapes the arena", f.Position.X)
		}
	}
}

func TestComputeLeaderboardTopTenStableTies(t *testing.T) {
	room := newTestRoom(t, RoomFreeplay)
	for i := 0; i < 12; i++ {
		p := addTestPlayer(room, fmt.Sprintf("0x%03d", i), Position{X: 500, Y: 500})
		p.Snake.Score = 100
	}
	// two standouts and one dead player
	high, _ := room.Player("0x005")
	high.Snake.Score = 300
	dead, _ := room.Player("0x002")
	dead.Snake.Dead = true

	entries := room.ComputeLeaderboard()

	if len(entries) != leaderboardSize {
		t.Fatalf("expected top %d, got %d entries", leaderboardSize, len(entries))
	}
	if entries[0].PlayerID != "0x005" {
		t.Fatalf("expected 0x005 first, got %s", entries[0].PlayerID)
	}
	for _, e := range entries {
		if e.PlayerID == "0x002" {
			t.Fatalf("dead player must not rank")
		}
	}
	// tied scores keep insertion order
	if entries[1].PlayerID != "0x000" || entries[2].PlayerID != "0x001" {
		t.Fatalf("expected ties in join order, got %s then %s", entries[1].PlayerID, entries[2].PlayerID)
	}
	if len(room.Leaderboard) != len(entries) {
		t.Fatalf("expected leaderboard cached on room")
	}
}
