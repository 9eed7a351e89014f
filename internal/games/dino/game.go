// Package dino implements a Chrome Dino-style endless runner game.
// The player jumps over cacti and ducks under birds while running
// automatically.
package dino

import (
	"fmt"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// ID is the registry and catalog id.
const ID = "dino"

// BestKey is the prefs key for the best score.
const BestKey = "dino_best"

// Visual characters for rendering
const (
	DinoBody   = '█'
	DinoHead   = '◆'
	DinoLeg1   = '╱'
	DinoLeg2   = '╲'
	CactusChar = '▓'
	BirdChar   = '≈'
	GroundChar = '═'
)

// Game implements the Dino Runner game logic.
type Game struct {
	playerY    float64 // Height above the ground (negative = up)
	playerVel  float64
	isGrounded bool
	duckTimer  int // Ticks of ducking left
	obstacles  *ObstacleManager
	difficulty *config.DifficultyManager
	score      int
	best       int
	gameOver   bool
	paused     bool
	runtime    core.RuntimeConfig
	cfg        config.DinoConfig
	tickCount  int
	groundY    int
	legFrame   int
}

// New creates a new Dino Runner game instance.
func New() *Game {
	return &Game{}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadDino(runtime.ConfigDir)
	if err != nil {
		cfg = config.DefaultDinoConfig()
	}
	config.ApplyPreset(&cfg.Difficulty, config.DifficultyPreset(runtime.Difficulty))

	g.runtime = runtime
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.groundY = runtime.ScreenH - cfg.Player.GroundOffset
	g.playerY = 0
	g.playerVel = 0
	g.isGrounded = true
	g.duckTimer = 0
	g.score = 0
	g.best = core.LoadBest(runtime.Prefs, BestKey)
	g.gameOver = false
	g.paused = false
	g.tickCount = 0
	g.legFrame = 0

	g.obstacles = NewObstacleManager(runtime.Seed, runtime.ScreenW, cfg.Player.Height-1, &g.cfg, g.difficulty)
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
	g.legFrame = (g.legFrame + 1) % 10

	// A keyboard duck is a single press, so it lasts DuckTicks; a held pad
	// button keeps refreshing it.
	if in.Has(core.ActionDuck) || in.Has(core.ActionDown) {
		g.duckTimer = g.cfg.Physics.DuckTicks
	} else if g.duckTimer > 0 {
		g.duckTimer--
	}

	jump := in.Pressed(core.ActionJump) || in.Pressed(core.ActionUp)
	if jump && g.isGrounded {
		g.playerVel = g.cfg.Physics.JumpImpulse
		g.isGrounded = false
		g.duckTimer = 0
	}

	if !g.isGrounded {
		g.playerVel += g.cfg.Physics.Gravity
		// Ducking in the air drops faster.
		if g.duckTimer > 0 {
			g.playerVel += g.cfg.Physics.Gravity
		}
		if g.playerVel > g.cfg.Physics.MaxFallSpeed {
			g.playerVel = g.cfg.Physics.MaxFallSpeed
		}
		g.playerY += g.playerVel

		if g.playerY >= 0 {
			g.playerY = 0
			g.playerVel = 0
			g.isGrounded = true
		}
	}

	g.obstacles.Update(g.score, g.tickCount)
	g.score++

	if g.obstacles.CheckCollision(g.playerRect(), g.groundY) {
		g.gameOver = true
		g.best, _ = core.SaveBest(g.runtime.Prefs, BestKey, g.score)
	}

	return core.StepResult{State: g.State()}
}

// ducking reports whether the runner is crouched on the ground.
func (g *Game) ducking() bool {
	return g.isGrounded && g.duckTimer > 0
}

// playerRect returns the player's collision rectangle in screen coordinates.
// A ducking runner is one row shorter and one column longer.
func (g *Game) playerRect() core.Rect {
	p := g.cfg.Player
	if g.ducking() {
		return core.NewRect(p.X, g.groundY-(p.Height-1), p.Width+1, p.Height-1)
	}
	y := g.groundY - p.Height - int(-g.playerY)
	return core.NewRect(p.X, y, p.Width, p.Height)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.DrawHLine(0, g.groundY, dst.Width(), GroundChar)

	for _, o := range g.obstacles.Obstacles() {
		r := o.Rect(g.groundY)
		if o.Kind == KindBird {
			dst.DrawRectColor(r, BirdChar, core.ColorCyan)
			continue
		}
		dst.DrawRectColor(r, CactusChar, core.ColorGreen)
	}

	g.drawDino(dst)

	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d  Best: %d ", g.score, g.best))
	if g.difficulty.IsEnabled() {
		speed := g.difficulty.Speed(g.cfg.Physics.BaseSpeed, g.score, g.tickCount)
		levelText := fmt.Sprintf(" Spd: %.1f ", speed)
		dst.DrawText(dst.Width()-len(levelText)-2, 0, levelText)
	}

	if g.paused {
		dst.DrawMessage("PAUSED", "Press P to resume")
	}
	if g.gameOver {
		dst.DrawMessage("GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// drawDino renders the player character.
func (g *Game) drawDino(dst *core.Screen) {
	r := g.playerRect()
	x, y := r.X, r.Y

	if g.ducking() {
		//  ████◆
		//  ╱╲
		for dx := 0; dx < r.W-1; dx++ {
			dst.Set(x+dx, y, DinoBody)
		}
		dst.Set(x+r.W-1, y, DinoHead)
		dst.Set(x, y+1, DinoLeg1)
		dst.Set(x+1, y+1, DinoLeg2)
		return
	}

	//  ◆█
	// ███
	// ╱╲
	dst.Set(x+1, y, DinoHead)
	dst.Set(x+2, y, DinoBody)
	dst.Set(x, y+1, DinoBody)
	dst.Set(x+1, y+1, DinoBody)
	dst.Set(x+2, y+1, DinoBody)

	switch {
	case !g.isGrounded:
		dst.Set(x, y+2, DinoLeg1)
		dst.Set(x+1, y+2, DinoLeg2)
	case g.legFrame < 5:
		dst.Set(x, y+2, DinoLeg1)
		dst.Set(x+2, y+2, DinoLeg2)
	default:
		dst.Set(x+1, y+2, DinoLeg1)
		dst.Set(x+2, y+2, DinoLeg2)
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
