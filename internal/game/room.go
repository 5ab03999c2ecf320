package game

import (
	"math/rand"
	"sort"
	"time"
)

// RoomState is the lifecycle position of a room. Non-freeplay rooms only
// advance forward through waiting, countdown, playing, ended.
type RoomState string

const (
	StateWaiting   RoomState = "waiting"
	StateCountdown RoomState = "countdown"
	StatePlaying   RoomState = "playing"
	StateEnded     RoomState = "ended"
)

// LeaderboardEntry is one row of a room's cached top-10 ranking.
type LeaderboardEntry struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Kills    int    `json:"kills"`
}

// Room is one isolated game session: its players, food, and lifecycle
// state. It is plain data plus per-room helpers; all cross-room policy
// lives in the arena hub. Callers serialize access externally.
type Room struct {
	ID   string
	Mode Mode

	State          RoomState
	CountdownStart time.Time
	StartedAt      time.Time
	WinnerID       string

	Food        map[string]*Food
	Leaderboard []LeaderboardEntry
	CreatedAt   time.Time

	players map[string]*Player
	// order preserves insertion order; it defines per-tick processing
	// order and leaderboard tie-breaking.
	order []string
	// joinCounter only ever increments, so palette colors cycle even as
	// players come and go.
	joinCounter int
	rng         *rand.Rand
}

// NewRoom creates a room in its initial state and seeds the arena with
// the mode's full food budget.
func NewRoom(id string, mode Mode, seed int64) *Room {
	r := &Room{
		ID:        id,
		Mode:      mode,
		State:     StateWaiting,
		Food:      make(map[string]*Food, mode.FoodCount),
		players:   make(map[string]*Player),
		CreatedAt: time.Now(),
		rng:       rand.New(rand.NewSource(seed)),
	}
	if !mode.Countdown {
		r.State = StatePlaying
	}
	for i := 0; i < mode.FoodCount; i++ {
		f := r.newFood()
		r.Food[f.ID] = f
	}
	return r
}

func (r *Room) randomFloat() float64 {
	if r != nil && r.rng != nil {
		return r.rng.Float64()
	}
	return rand.Float64()
}

func (r *Room) randomRange(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + r.randomFloat()*(max-min)
}

func (r *Room) randomIndex(n int) int {
	if n <= 1 {
		return 0
	}
	return int(r.randomFloat() * float64(n))
}

// SpawnPosition picks a point inside the spawn margin of the arena.
func (r *Room) SpawnPosition() Position {
	return Position{
		X: r.randomRange(spawnMargin, r.Mode.WorldSize-spawnMargin),
		Y: r.randomRange(spawnMargin, r.Mode.WorldSize-spawnMargin),
	}
}

// NextColor assigns the palette color for the next joining player.
func (r *Room) NextColor() string {
	color := snakePalette[r.joinCounter%len(snakePalette)]
	r.joinCounter++
	return color
}

// AddPlayer inserts a player, keyed by address. A duplicate address
// replaces the existing entry in place without disturbing its order slot.
func (r *Room) AddPlayer(p *Player) {
	if _, exists := r.players[p.Address]; !exists {
		r.order = append(r.order, p.Address)
	}
	r.players[p.Address] = p
}

// RemovePlayer deletes a player and its order slot.
func (r *Room) RemovePlayer(address string) {
	if _, ok := r.players[address]; !ok {
		return
	}
	delete(r.players, address)
	for i, id := range r.order {
		if id == address {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Player looks up a player by address.
func (r *Room) Player(address string) (*Player, bool) {
	p, ok := r.players[address]
	return p, ok
}

// Players returns the room's players in insertion order.
func (r *Room) Players() []*Player {
	out := make([]*Player, 0, len(r.order))
	for _, id := range r.order {
		if p, ok := r.players[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// PlayerCount reports how many players the room holds.
func (r *Room) PlayerCount() int {
	return len(r.players)
}

// LivingCount reports how many players have a living snake.
func (r *Room) LivingCount() int {
	count := 0
	for _, p := range r.players {
		if p.Alive() {
			count++
		}
	}
	return count
}

// SoleSurvivor returns the single living player, if exactly one remains.
func (r *Room) SoleSurvivor() (*Player, bool) {
	var survivor *Player
	for _, id := range r.order {
		p, ok := r.players[id]
		if !ok || !p.Alive() {
			continue
		}
		if survivor != nil {
			return nil, false
		}
		survivor = p
	}
	return survivor, survivor != nil
}

// DropSnakeFood converts every even-indexed segment of a snake into a
// pellet near that segment and inserts the pellets into the room.
func (r *Room) DropSnakeFood(s *Snake) []*Food {
	dropped := make([]*Food, 0, len(s.Segments)/2+1)
	for i, seg := range s.Segments {
		if i%2 != 0 {
			continue
		}
		f := r.newFoodAt(seg)
		r.Food[f.ID] = f
		dropped = append(dropped, f)
	}
	return dropped
}

// ComputeLeaderboard ranks living players by score, top ten, and caches
// the result on the room. Ties keep insertion order (stable sort).
func (r *Room) ComputeLeaderboard() []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(r.order))
	for _, id := range r.order {
		p, ok := r.players[id]
		if !ok || !p.Alive() {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			PlayerID: p.Address,
			Name:     p.Name,
			Score:    p.Snake.Score,
			Kills:    p.Snake.Kills,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > leaderboardSize {
		entries = entries[:leaderboardSize]
	}
	r.Leaderboard = entries
	return entries
}
