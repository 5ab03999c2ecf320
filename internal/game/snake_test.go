package game

import (
	"math"
	"testing"
)

func TestNewSnakeTrailsHorizontally(t *testing.T) {
	s := NewSnake(Position{X: 500, Y: 400}, "#e74c3c")

	if len(s.Segments) != spawnSegments {
		t.Fatalf("expected %d segments, got %d", spawnSegments, len(s.Segments))
	}
	if s.Radius != baseRadius {
		t.Fatalf("expected base radius %v, got %v", baseRadius, s.Radius)
	}
	if s.Dead {
		t.Fatalf("expected new snake to be alive")
	}
	for i, seg := range s.Segments {
		wantX := 500 - float64(i)*segmentSpacing
		if seg.X != wantX || seg.Y != 400 {
			t.Fatalf("segment %d at (%v,%v), want (%v,400)", i, seg.X, seg.Y, wantX)
		}
	}
}

func TestMoveAdvancesHeadAndKeepsLength(t *testing.T) {
	s := NewSnake(Position{X: 500, Y: 400}, "#e74c3c")
	s.Angle = math.Pi / 2

	before := len(s.Segments)
	oldHead := s.Head()
	s.Move()

	if len(s.Segments) != before {
		t.Fatalf("expected length %d after move, got %d", before, len(s.Segments))
	}
	head := s.Head()
	if math.Abs(head.X-oldHead.X) > 1e-9 {
		t.Fatalf("expected X unchanged moving straight down, got %v", head.X)
	}
	if math.Abs(head.Y-(oldHead.Y+snakeSpeed)) > 1e-9 {
		t.Fatalf("expected Y to advance by %v, got %v", snakeSpeed, head.Y-oldHead.Y)
	}
	if s.Segments[1] != oldHead {
		t.Fatalf("expected old head to shift to index 1")
	}
}

func TestGrowScoresAndLengthens(t *testing.T) {
	s := NewSnake(Position{X: 500, Y: 400}, "#e74c3c")

	s.Grow()

	if s.Score != foodScore {
		t.Fatalf("expected score %d, got %d", foodScore, s.Score)
	}
	if len(s.Segments) != spawnSegments+1 {
		t.Fatalf("expected %d segments, got %d", spawnSegments+1, len(s.Segments))
	}
	tail := s.Segments[len(s.Segments)-1]
	if tail != s.Segments[len(s.Segments)-2] {
		t.Fatalf("expected duplicated tail segment")
	}
}

func TestTenPickupsScoreFiftyAndRadiusBounded(t *testing.T) {
	s := NewSnake(Position{X: 500, Y: 400}, "#e74c3c")

	prev := s.Radius
	for i := 0; i < 10; i++ {
		s.Grow()
		if s.Radius <= prev && s.Radius < maxRadius {
			t.Fatalf("expected radius to strictly increase, got %v after %v", s.Radius, prev)
		}
		if s.Radius > maxRadius {
			t.Fatalf("radius %v exceeds cap %v", s.Radius, maxRadius)
		}
		prev = s.Radius
	}
	if s.Score != 50 {
		t.Fatalf("expected score 50 after ten pickups, got %d", s.Score)
	}
}

func TestRadiusClampsAtMax(t *testing.T) {
	s := NewSnake(Position{X: 500, Y: 400}, "#e74c3c")
	s.Radius = maxRadius / radiusGrowth * 1.0001

	s.Grow()
	s.Grow()

	if s.Radius != maxRadius {
		t.Fatalf("expected radius clamped to %v, got %v", maxRadius, s.Radius)
	}
}

func TestOutOfBoundsAccountsForRadius(t *testing.T) {
	cases := []struct {
		name string
		head Position
		want bool
	}{
		{"center", Position{X: 500, Y: 500}, false},
		{"left edge inside", Position{X: baseRadius, Y: 500}, false},
		{"left edge outside", Position{X: baseRadius - 0.1, Y: 500}, true},
		{"bottom outside", Position{X: 500, Y: 1000 - baseRadius + 0.1}, true},
		{"negative", Position{X: -5, Y: 500}, true},
	}
	for _, tc := range cases {
		s := NewSnake(tc.head, "#e74c3c")
		if got := s.OutOfBounds(1000); got != tc.want {
			t.Fatalf("%s: OutOfBounds=%v, want %v", tc.name, got, tc.want)
		}
	}
}
