package game

// DeathCause distinguishes how a snake died during a tick.
type DeathCause string

const (
	CauseWall      DeathCause = "wall"
	CauseCollision DeathCause = "collision"
)

// Death records one snake dying during a step.
type Death struct {
	PlayerID   string
	Cause      DeathCause
	KilledBy   string
	CanRespawn bool
	Dropped    []*Food
}

// Consumption records one food pellet being eaten and replaced.
type Consumption struct {
	PlayerID string
	FoodID   string
	NewFood  *Food
	Score    int
}

// StepResult is everything a single simulation tick produced for one room.
type StepResult struct {
	Deaths []Death
	Eaten  []Consumption
}

// Step runs one fixed-timestep simulation pass over the room: movement,
// wall collision, food collision, then snake-vs-snake collision, for each
// living snake in insertion order. The food count invariant holds: every
// eaten pellet is replaced inside the same step.
func (r *Room) Step() StepResult {
	var result StepResult
	players := r.Players()

	for _, p := range players {
		if !p.Alive() {
			continue
		}
		snake := p.Snake
		snake.Move()

		if snake.OutOfBounds(r.Mode.WorldSize) {
			result.Deaths = append(result.Deaths, r.kill(p, CauseWall, ""))
			continue
		}

		// collect hits before mutating so a replacement pellet spawned
		// this tick can never be eaten in the same pass
		head := snake.Head()
		var eatenIDs []string
		for id, f := range r.Food {
			if distance(head, f.Position) < snake.Radius+f.Radius {
				eatenIDs = append(eatenIDs, id)
			}
		}
		for _, id := range eatenIDs {
			delete(r.Food, id)
			replacement := r.newFood()
			r.Food[replacement.ID] = replacement
			snake.Grow()
			result.Eaten = append(result.Eaten, Consumption{
				PlayerID: p.Address,
				FoodID:   id,
				NewFood:  replacement,
				Score:    snake.Score,
			})
		}

		if killer, hit := r.findCollision(p, players); hit {
			killedBy := ""
			if r.Mode.Respawn {
				killer.Snake.Score += killScore
				killer.Snake.Kills++
				killedBy = killer.Address
			}
			result.Deaths = append(result.Deaths, r.kill(p, CauseCollision, killedBy))
		}
	}

	return result
}

// findCollision scans every segment of every other living snake for a hit
// against p's head. The first matching pair resolves the collision.
func (r *Room) findCollision(p *Player, players []*Player) (*Player, bool) {
	for _, other := range players {
		if other.Address == p.Address || !other.Alive() {
			continue
		}
		for _, seg := range other.Snake.Segments {
			if p.Snake.Hits(other.Snake, seg) {
				return other, true
			}
		}
	}
	return nil, false
}

// kill marks a snake dead and, outside freeplay, converts its body into
// food drops. Freeplay deaths drop nothing and are respawnable.
func (r *Room) kill(p *Player, cause DeathCause, killedBy string) Death {
	p.Snake.Dead = true
	death := Death{
		PlayerID:   p.Address,
		Cause:      cause,
		KilledBy:   killedBy,
		CanRespawn: r.Mode.Respawn,
	}
	if !r.Mode.Respawn {
		death.Dropped = r.DropSnakeFood(p.Snake)
	}
	return death
}
