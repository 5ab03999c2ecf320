package game

import "math"

// Position is a point in world space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Snake is the body a player steers. Segments is never empty; the head is
// index 0.
type Snake struct {
	Segments []Position
	Angle    float64
	Score    int
	Radius   float64
	Color    string
	Dead     bool
	Kills    int
}

// NewSnake builds a snake at the spawn point with the body trailing
// horizontally behind the head.
func NewSnake(spawn Position, color string) *Snake {
	segments := make([]Position, spawnSegments)
	for i := range segments {
		segments[i] = Position{X: spawn.X - float64(i)*segmentSpacing, Y: spawn.Y}
	}
	return &Snake{
		Segments: segments,
		Radius:   baseRadius,
		Color:    color,
	}
}

// Head returns the leading segment.
func (s *Snake) Head() Position {
	return s.Segments[0]
}

// Move advances the snake one tick along its heading. The body shifts:
// a new head is prepended and the last segment dropped, so length is
// constant unless the snake grows this tick.
func (s *Snake) Move() {
	head := s.Head()
	newHead := Position{
		X: head.X + snakeSpeed*math.Cos(s.Angle),
		Y: head.Y + snakeSpeed*math.Sin(s.Angle),
	}
	s.Segments = append([]Position{newHead}, s.Segments[:len(s.Segments)-1]...)
}

// OutOfBounds reports whether the head has left the square arena,
// accounting for the snake's own radius.
func (s *Snake) OutOfBounds(worldSize float64) bool {
	head := s.Head()
	return head.X < s.Radius || head.X > worldSize-s.Radius ||
		head.Y < s.Radius || head.Y > worldSize-s.Radius
}

// Grow credits one eaten food item: score, radius (multiplicative,
// clamped) and one duplicated tail segment.
func (s *Snake) Grow() {
	s.Score += foodScore
	s.Radius *= radiusGrowth
	if s.Radius > maxRadius {
		s.Radius = maxRadius
	}
	tail := s.Segments[len(s.Segments)-1]
	s.Segments = append(s.Segments, tail)
}

// Hits reports whether the snake's head overlaps the given segment of
// another snake.
func (s *Snake) Hits(other *Snake, segment Position) bool {
	head := s.Head()
	limit := collisionFactor * (s.Radius + other.Radius)
	return distance(head, segment) < limit
}

func distance(a, b Position) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
