// Package snake implements the classic Snake game on a walled arena that
// fills the canvas. The snake speeds up as it eats.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// ID is the registry and catalog id.
const ID = "snake"

// BestKey is the prefs key for the best score.
const BestKey = "snake_best"

// Tuning in ticks at 60 ticks per second.
const (
	StartMoveTicks = 6 // Ticks between moves at the start
	MinMoveTicks   = 2
	FoodPerSpeedUp = 5
	hudHeight      = 2
	minArenaW      = 12
	minArenaH      = 6
)

// Visual characters for rendering
const (
	HeadChar = 'O'
	BodyChar = 'o'
	FoodChar = '*'
	WallChar = '#'
)

// Game implements the Snake game.
type Game struct {
	rng            *rand.Rand
	tick           uint64
	score          int
	best           int
	moveEveryTicks int
	moveTicker     int

	snake     []core.Point // Head at index 0
	direction core.Direction
	nextDir   core.Direction
	growing   bool

	arenaW int // Including the border walls
	arenaH int
	food   core.Point

	gameOver bool
	paused   bool
	tooSmall bool

	runtime core.RuntimeConfig
}

// New creates a new Snake game.
func New() *Game {
	return &Game{}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = 0
	g.best = core.LoadBest(cfg.Prefs, BestKey)
	g.gameOver = false
	g.paused = false
	g.moveEveryTicks = StartMoveTicks
	g.moveTicker = 0

	g.arenaW = cfg.ScreenW
	g.arenaH = cfg.ScreenH - hudHeight
	g.tooSmall = g.arenaW < minArenaW || g.arenaH < minArenaH
	if g.tooSmall {
		g.snake = nil
		return
	}

	// Three segments heading right, left of center.
	x, y := g.arenaW/4, g.arenaH/2
	g.snake = []core.Point{{X: x + 2, Y: y}, {X: x + 1, Y: y}, {X: x, Y: y}}
	g.direction = core.DirRight
	g.nextDir = core.DirRight
	g.growing = false
	g.spawnFood()
}

// isWall reports whether p is on or outside the arena border.
func (g *Game) isWall(p core.Point) bool {
	return p.X <= 0 || p.Y <= 0 || p.X >= g.arenaW-1 || p.Y >= g.arenaH-1
}

// spawnFood places food at a random empty cell.
func (g *Game) spawnFood() {
	var empty []core.Point
	for y := 1; y < g.arenaH-1; y++ {
		for x := 1; x < g.arenaW-1; x++ {
			p := core.Point{X: x, Y: y}
			if !g.isSnakeAt(p) {
				empty = append(empty, p)
			}
		}
	}
	if len(empty) == 0 {
		g.food = core.Point{X: -1, Y: -1}
		return
	}
	g.food = empty[g.rng.Intn(len(empty))]
}

func (g *Game) isSnakeAt(p core.Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Pressed(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	g.processInput(in)

	g.moveTicker++
	if g.moveTicker >= g.moveEveryTicks {
		g.moveTicker = 0
		g.moveSnake()
	}

	return core.StepResult{State: g.State()}
}

// processInput buffers a direction change for the next move.
// Reversing onto the body is ignored.
func (g *Game) processInput(in core.InputFrame) {
	newDir := g.nextDir
	switch {
	case in.Has(core.ActionUp):
		newDir = core.DirUp
	case in.Has(core.ActionDown):
		newDir = core.DirDown
	case in.Has(core.ActionLeft):
		newDir = core.DirLeft
	case in.Has(core.ActionRight):
		newDir = core.DirRight
	}
	if !opposite(newDir, g.direction) {
		g.nextDir = newDir
	}
}

func opposite(a, b core.Direction) bool {
	switch a {
	case core.DirUp:
		return b == core.DirDown
	case core.DirDown:
		return b == core.DirUp
	case core.DirLeft:
		return b == core.DirRight
	case core.DirRight:
		return b == core.DirLeft
	}
	return false
}

func step(p core.Point, d core.Direction) core.Point {
	switch d {
	case core.DirUp:
		return p.Add(0, -1)
	case core.DirDown:
		return p.Add(0, 1)
	case core.DirLeft:
		return p.Add(-1, 0)
	default:
		return p.Add(1, 0)
	}
}

// moveSnake moves the snake one cell in the current direction.
func (g *Game) moveSnake() {
	g.direction = g.nextDir
	newHead := step(g.snake[0], g.direction)

	if g.isWall(newHead) {
		g.die()
		return
	}

	// The tail moves away this turn unless the snake is growing.
	checkLen := len(g.snake)
	if !g.growing {
		checkLen--
	}
	for i := range checkLen {
		if g.snake[i] == newHead {
			g.die()
			return
		}
	}

	g.snake = append([]core.Point{newHead}, g.snake...)

	if newHead == g.food {
		g.score++
		g.growing = true
		if g.score%FoodPerSpeedUp == 0 {
			g.moveEveryTicks = core.Max(MinMoveTicks, g.moveEveryTicks-1)
		}
		g.spawnFood()
	}

	if g.growing {
		g.growing = false
	} else {
		g.snake = g.snake[:len(g.snake)-1]
	}
}

func (g *Game) die() {
	g.gameOver = true
	g.best, _ = core.SaveBest(g.runtime.Prefs, BestKey, g.score)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	hud := fmt.Sprintf(" Snake  Score: %d  Best: %d  Speed: %d", g.score, g.best, StartMoveTicks+1-g.moveEveryTicks)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	if g.tooSmall {
		dst.DrawMessage("Window too small", "Resize to continue")
		return
	}

	for x := 0; x < g.arenaW; x++ {
		dst.SetColor(x, hudHeight, WallChar, core.ColorGray)
		dst.SetColor(x, hudHeight+g.arenaH-1, WallChar, core.ColorGray)
	}
	for y := 0; y < g.arenaH; y++ {
		dst.SetColor(0, hudHeight+y, WallChar, core.ColorGray)
		dst.SetColor(g.arenaW-1, hudHeight+y, WallChar, core.ColorGray)
	}

	if g.food.X >= 0 {
		dst.SetColor(g.food.X, hudHeight+g.food.Y, FoodChar, core.ColorBrightRed)
	}
	for i, seg := range g.snake {
		ch := BodyChar
		if i == 0 {
			ch = HeadChar
		}
		dst.SetColor(seg.X, hudHeight+seg.Y, ch, core.ColorBrightGreen)
	}

	switch {
	case g.gameOver:
		dst.DrawMessage("Game Over", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	case g.paused:
		dst.DrawMessage("Paused", "Press P to continue")
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

func init() {
	registry.RegisterGame(ID, func() registry.Game {
		return New()
	})
}
