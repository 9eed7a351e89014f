package snake

import "github.com/vovakirdan/arcade-portal/internal/core"

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick           uint64
	Score          int
	SnakeLen       int
	Head           core.Point
	Dir            core.Direction
	Food           core.Point
	MoveEveryTicks int
	GameOver       bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	var head core.Point
	if len(g.snake) > 0 {
		head = g.snake[0]
	}
	return Snapshot{
		Tick:           g.tick,
		Score:          g.score,
		SnakeLen:       len(g.snake),
		Head:           head,
		Dir:            g.direction,
		Food:           g.food,
		MoveEveryTicks: g.moveEveryTicks,
		GameOver:       g.gameOver,
	}
}
