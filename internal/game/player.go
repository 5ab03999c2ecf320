package game

import "time"

// Player identity is the externally supplied address string; it is also
// the room map key, so a room holds at most one live entry per address.
type Player struct {
	Address    string
	ConnID     string
	Name       string
	Avatar     string
	Snake      *Snake
	JoinedAt   time.Time
	LastUpdate time.Time
}

// Alive reports whether the player currently has a living snake.
func (p *Player) Alive() bool {
	return p.Snake != nil && !p.Snake.Dead
}
