package game

import "time"

const (
	// TickRate is the authoritative simulation frequency.
	TickRate = 60
	// BroadcastRate is the world snapshot fan-out frequency.
	BroadcastRate = 30
	// LeaderboardInterval is the freeplay ranking cadence.
	LeaderboardInterval = time.Second
	// StatusInterval is the aggregate server-status cadence.
	StatusInterval = 5 * time.Second

	// CountdownDuration is the fixed pre-game delay once a room fills to
	// its minimum player count.
	CountdownDuration = 30 * time.Second
	// TeardownDelay is the grace period between an ended room and its
	// removal from the registry.
	TeardownDelay = 10 * time.Second

	snakeSpeed      = 1.8 // units per tick
	spawnSegments   = 10
	segmentSpacing  = 8.0
	baseRadius      = 8.0
	maxRadius       = 20.0
	radiusGrowth    = 1.005
	foodScore       = 5
	killScore       = 50
	foodMinRadius   = 4.0
	foodMaxRadius   = 6.0
	foodInset       = 10.0 // food always lands inside [foodInset, world-foodInset]
	spawnMargin     = 100.0
	collisionFactor = 0.7
	dropJitter      = 6.0
	leaderboardSize = 10
)

var snakePalette = []string{
	"#e74c3c", "#3498db", "#2ecc71", "#f39c12", "#9b59b6",
	"#1abc9c", "#e67e22", "#e91e63", "#00bcd4", "#8bc34a",
	"#ff5722", "#607d8b", "#795548", "#673ab7", "#03a9f4",
	"#4caf50", "#ffeb3b", "#ff9800", "#f44336", "#9c27b0",
}

var foodPalette = []string{
	"#ff8a80", "#82b1ff", "#b9f6ca", "#ffe57f", "#ea80fc", "#84ffff",
}
