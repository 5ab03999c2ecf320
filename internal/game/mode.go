package game

// RoomType identifies one of the three play modes.
type RoomType string

const (
	RoomPaid     RoomType = "paid"
	RoomCasual   RoomType = "casual"
	RoomFreeplay RoomType = "freeplay"
)

// Mode carries the full policy for a room type so matchmaking and the
// lifecycle controller dispatch on data instead of per-type branching.
type Mode struct {
	Type       RoomType
	MinPlayers int
	MaxPlayers int
	WorldSize  float64
	FoodCount  int
	// MaxRooms bounds how many rooms of this type exist concurrently.
	MaxRooms int
	// Countdown reports whether the waiting/countdown/ended lifecycle
	// applies. Freeplay rooms are pinned at playing.
	Countdown bool
	// Respawn reports whether death is survivable via a respawn request.
	Respawn bool
}

var modes = map[RoomType]Mode{
	RoomPaid: {
		Type:       RoomPaid,
		MinPlayers: 3,
		MaxPlayers: 5,
		WorldSize:  1332,
		FoodCount:  150,
		MaxRooms:   1,
		Countdown:  true,
	},
	RoomCasual: {
		Type:       RoomCasual,
		MinPlayers: 3,
		MaxPlayers: 5,
		WorldSize:  2000,
		FoodCount:  200,
		MaxRooms:   3,
		Countdown:  true,
	},
	RoomFreeplay: {
		Type:       RoomFreeplay,
		MinPlayers: 1,
		MaxPlayers: 30,
		WorldSize:  3000,
		FoodCount:  500,
		MaxRooms:   1,
		Respawn:    true,
	},
}

// ModeFor resolves the policy for a room type.
func ModeFor(t RoomType) (Mode, bool) {
	mode, ok := modes[t]
	return mode, ok
}

// Modes returns every known mode keyed by type.
func Modes() map[RoomType]Mode {
	copied := make(map[RoomType]Mode, len(modes))
	for t, m := range modes {
		copied[t] = m
	}
	return copied
}
