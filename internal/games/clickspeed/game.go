// Package clickspeed implements a ten-second target-hitting challenge.
// Targets are hit by tapping or clicking them, or by steering a crosshair
// and pressing fire. The clock starts on the first hit.
package clickspeed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// ID is the registry and catalog id.
const ID = "clickspeed"

// BestKey is the prefs key for the best score.
const BestKey = "clickspeed_best"

// RoundLength is how long a round lasts once started.
const RoundLength = 10 * time.Second

const (
	targetW    = 5
	targetH    = 3
	hudHeight  = 2
	cursorTick = 2 // Held arrows: ticks per crosshair step
)

// Game implements the click-speed challenge.
type Game struct {
	target    core.Rect
	cursor    core.Point
	moveTimer int

	hits      int
	misses    int
	started   bool
	remaining int // Ticks left in the round
	best      int
	gameOver  bool
	paused    bool

	rng     *rand.Rand
	runtime core.RuntimeConfig
}

// New creates a new click-speed game.
func New() *Game {
	return &Game{}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.hits = 0
	g.misses = 0
	g.started = false
	g.remaining = cfg.Ticks(RoundLength)
	g.best = core.LoadBest(cfg.Prefs, BestKey)
	g.gameOver = false
	g.paused = false
	g.moveTimer = 0
	g.cursor = core.Point{X: cfg.ScreenW / 2, Y: (cfg.ScreenH + hudHeight) / 2}
	g.target = core.Rect{}
	g.placeTarget()
}

// Resize adopts a new canvas size, pulling the cursor back inside and
// moving the target if it no longer fits.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	g.cursor.X = core.Clamp(g.cursor.X, 0, core.Max(0, w-1))
	g.cursor.Y = core.Clamp(g.cursor.Y, hudHeight, core.Max(hudHeight, h-1))
	if g.target.Right() > w || g.target.Bottom() > h {
		g.placeTarget()
	}
}

// placeTarget moves the target to a new random spot in the arena.
func (g *Game) placeTarget() {
	maxX := core.Max(0, g.runtime.ScreenW-targetW)
	maxY := core.Max(hudHeight, g.runtime.ScreenH-targetH)
	prev := g.target
	for range 8 {
		g.target = core.NewRect(g.rng.Intn(maxX+1), hudHeight+g.rng.Intn(maxY-hudHeight+1), targetW, targetH)
		if g.target != prev {
			return
		}
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Pressed(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	for _, p := range in.Points() {
		g.shoot(p)
	}
	if in.Pressed(core.ActionConfirm) || in.Pressed(core.ActionJump) {
		g.shoot(g.cursor)
	}

	if g.started {
		g.remaining--
		if g.remaining <= 0 {
			g.remaining = 0
			g.gameOver = true
			g.best, _ = core.SaveBest(g.runtime.Prefs, BestKey, g.hits)
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	var d core.Point
	switch {
	case in.Has(core.ActionLeft):
		d.X = -1
	case in.Has(core.ActionRight):
		d.X = 1
	case in.Has(core.ActionUp):
		d.Y = -1
	case in.Has(core.ActionDown):
		d.Y = 1
	default:
		g.moveTimer = 0
		return
	}

	edge := in.Pressed(core.ActionLeft) || in.Pressed(core.ActionRight) ||
		in.Pressed(core.ActionUp) || in.Pressed(core.ActionDown)
	if edge || g.moveTimer >= cursorTick {
		c := g.cursor.Add(d.X, d.Y)
		g.cursor = core.Point{
			X: core.Clamp(c.X, 0, g.runtime.ScreenW-1),
			Y: core.Clamp(c.Y, hudHeight, g.runtime.ScreenH-1),
		}
		g.moveTimer = 0
	}
	g.moveTimer++
}

// shoot resolves one shot. Misses only count once the round is running.
func (g *Game) shoot(p core.Point) {
	if g.target.Contains(p.X, p.Y) {
		g.hits++
		g.started = true
		g.placeTarget()
		return
	}
	if g.started {
		g.misses++
	}
}

// accuracy is the hit percentage over all counted shots.
func (g *Game) accuracy() int {
	total := g.hits + g.misses
	if total == 0 {
		return 0
	}
	return g.hits * 100 / total
}

// Render draws the target, the crosshair and the HUD.
func (g *Game) Render(dst *core.Screen) {
	t := g.target
	dst.DrawBoxColor(t, core.ColorBrightRed)
	cx, cy := t.Center()
	dst.SetColor(cx, cy, '◎', core.ColorBrightYellow)

	dst.SetColor(g.cursor.X, g.cursor.Y, '+', core.ColorBrightWhite)

	secs := float64(g.remaining) / float64(core.Max(1, g.runtime.TickRate))
	dst.DrawText(1, 0, fmt.Sprintf(" Hits: %d  Misses: %d  Time: %.1fs  Best: %d ", g.hits, g.misses, secs, core.Max(g.best, g.hits)))
	if !g.started {
		dst.DrawTextCenteredColor(1, "Hit the target to start", core.ColorGray)
	}

	if g.paused {
		dst.DrawMessage("PAUSED", "Press P to resume")
	}
	if g.gameOver {
		rate := float64(g.hits) / RoundLength.Seconds()
		dst.DrawMessage("TIME!", fmt.Sprintf("Hits: %d (%.1f/s, %d%%)  |  Press R to restart", g.hits, rate, g.accuracy()))
	}
}

// State returns the current game state. The score is the hit count.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.hits,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

func init() {
	registry.RegisterGame(ID, func() registry.Game {
		return New()
	})
}
