package game

import "github.com/google/uuid"

// Food is a single edible pellet.
type Food struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
	Color    string   `json:"color"`
	Radius   float64  `json:"radius"`
}

// newFood generates a pellet at a random position inside the food inset
// of the room's arena.
func (r *Room) newFood() *Food {
	return &Food{
		ID: uuid.NewString(),
		Position: Position{
			X: r.randomRange(foodInset, r.Mode.WorldSize-foodInset),
			Y: r.randomRange(foodInset, r.Mode.WorldSize-foodInset),
		},
		Color:  foodPalette[r.randomIndex(len(foodPalette))],
		Radius: r.randomRange(foodMinRadius, foodMaxRadius),
	}
}

// newFoodAt generates a pellet near the given point with a small jitter,
// clamped into the food inset. Used for death drops.
func (r *Room) newFoodAt(p Position) *Food {
	return &Food{
		ID: uuid.NewString(),
		Position: Position{
			X: r.clampToArena(p.X + r.randomRange(-dropJitter, dropJitter)),
			Y: r.clampToArena(p.Y + r.randomRange(-dropJitter, dropJitter)),
		},
		Color:  foodPalette[r.randomIndex(len(foodPalette))],
		Radius: r.randomRange(foodMinRadius, foodMaxRadius),
	}
}

func (r *Room) clampToArena(v float64) float64 {
	if v < foodInset {
		return foodInset
	}
	if max := r.Mode.WorldSize - foodInset; v > max {
		return max
	}
	return v
}
