// Package flappy implements a Flappy Bird-style game.
// The player controls a bird that must navigate through gaps in vertical pipes.
package flappy

import (
	"fmt"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// ID is the registry and catalog id.
const ID = "flappy"

// BestKey is the prefs key for the best score.
const BestKey = "flappy_best"

// Visual characters for rendering
const (
	PlayerChar    = '▶'
	BodyChar      = '●'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
)

// Game implements the Flappy Bird game logic.
type Game struct {
	playerY   float64 // Player vertical position (top of hitbox)
	playerVel float64 // Player vertical velocity
	pipes     *PipeManager
	score     int
	best      int
	gameOver  bool
	paused    bool
	runtime   core.RuntimeConfig
	cfg       config.FlappyConfig
	tickCount int
}

// New creates a new Flappy Bird game instance.
func New() *Game {
	return &Game{}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadFlappy(runtime.ConfigDir)
	if err != nil {
		cfg = config.DefaultFlappyConfig()
	}
	config.ApplyPreset(&cfg.Difficulty, config.DifficultyPreset(runtime.Difficulty))

	g.runtime = runtime
	g.cfg = cfg
	g.playerY = float64(runtime.ScreenH) / 2.0
	g.playerVel = 0
	g.score = 0
	g.best = core.LoadBest(runtime.Prefs, BestKey)
	g.gameOver = false
	g.paused = false
	g.tickCount = 0

	g.pipes = NewPipeManager(runtime.Seed, runtime.ScreenW, g.groundY(), &g.cfg, config.NewDifficultyManager(cfg.Difficulty))
}

// groundY is the first row of the ground.
func (g *Game) groundY() int {
	return g.runtime.ScreenH - 1
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

	g.tickCount++

	// A flap is an edge: holding the button does not keep flapping.
	if in.Pressed(core.ActionJump) || in.Pressed(core.ActionUp) {
		g.playerVel = g.cfg.Physics.JumpImpulse
	}

	g.playerVel += g.cfg.Physics.Gravity
	if g.playerVel > g.cfg.Physics.MaxFallSpeed {
		g.playerVel = g.cfg.Physics.MaxFallSpeed
	}
	g.playerY += g.playerVel

	g.score += g.pipes.Update(g.cfg.Player.X, g.score, g.tickCount)

	if g.playerY < 0 {
		g.playerY = 0
		g.die()
	}

	if bottom := g.groundY() - g.cfg.Player.Height; int(g.playerY) >= bottom {
		g.playerY = float64(bottom)
		g.die()
	}

	if g.pipes.CheckCollision(g.playerRect()) {
		g.die()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) die() {
	if g.gameOver {
		return
	}
	g.gameOver = true
	g.best, _ = core.SaveBest(g.runtime.Prefs, BestKey, g.score)
}

// playerRect returns the player's collision rectangle.
func (g *Game) playerRect() core.Rect {
	return core.NewRect(g.cfg.Player.X, int(g.playerY), g.cfg.Player.Width, g.cfg.Player.Height)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.DrawHLine(0, g.groundY(), dst.Width(), GroundChar)

	for _, p := range g.pipes.Pipes() {
		g.drawPipe(dst, p)
	}

	r := g.playerRect()
	for dy := 0; dy < r.H; dy++ {
		for dx := 0; dx < r.W; dx++ {
			ch := BodyChar
			if dx == r.W-1 && dy == 0 {
				ch = PlayerChar
			}
			dst.SetColor(r.X+dx, r.Y+dy, ch, core.ColorBrightYellow)
		}
	}

	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d  Best: %d ", g.score, g.best))

	if g.paused {
		dst.DrawMessage("PAUSED", "Press P to resume")
	}
	if g.gameOver {
		dst.DrawMessage("GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// drawPipe renders a single pipe above the ground.
func (g *Game) drawPipe(dst *core.Screen, p Pipe) {
	w := g.cfg.Obstacles.PipeWidth
	ground := g.groundY()

	dst.DrawRectColor(core.NewRect(p.X, 0, w, p.GapY), PipeChar, core.ColorGreen)
	if p.GapY > 0 {
		dst.DrawRectColor(core.NewRect(p.X, p.GapY-1, w, 1), PipeCapTop, core.ColorBrightGreen)
	}

	bottomY := p.GapY + p.GapHeight
	dst.DrawRectColor(core.NewRect(p.X, bottomY, w, ground-bottomY), PipeChar, core.ColorGreen)
	if bottomY < ground {
		dst.DrawRectColor(core.NewRect(p.X, bottomY, w, 1), PipeCapBottom, core.ColorBrightGreen)
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
