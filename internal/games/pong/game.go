// Package pong implements a classic Pong game with a CPU opponent.
// The player controls the left paddle, the CPU controls the right one.
package pong

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// ID is the registry and catalog id.
const ID = "pong"

// Visual characters for rendering
const (
	PaddleChar = '█'
	BallChar   = '●'
	NetChar    = '│'
)

// Game implements the Pong game logic.
type Game struct {
	paddle1Y float64 // Player (left) paddle top
	paddle2Y float64 // CPU (right) paddle top
	target   float64 // Pointer target for the player paddle's center, -1 if none

	ballX  float64
	ballY  float64
	ballVX float64
	ballVY float64

	score1 int
	score2 int

	gameOver   bool
	paused     bool
	winner     int // 1 or 2
	serving    bool
	serveDelay int // Ticks left before the ball moves

	runtime      core.RuntimeConfig
	cfg          config.PongConfig
	difficulty   *config.DifficultyManager
	paddleHeight int
	rng          *rand.Rand
	tickCount    int
}

// New creates a new Pong game instance.
func New() *Game {
	return &Game{}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadPong(runtime.ConfigDir)
	if err != nil {
		cfg = config.DefaultPongConfig()
	}
	config.ApplyPreset(&cfg.Difficulty, config.DifficultyPreset(runtime.Difficulty))

	g.runtime = runtime
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	// Small canvases get shorter paddles.
	g.paddleHeight = core.Clamp(runtime.ScreenH/5, 3, cfg.Paddles.Height)

	centerY := float64(runtime.ScreenH) / 2.0
	g.paddle1Y = centerY - float64(g.paddleHeight)/2.0
	g.paddle2Y = g.paddle1Y
	g.target = -1

	g.score1 = 0
	g.score2 = 0
	g.gameOver = false
	g.paused = false
	g.winner = 0
	g.tickCount = 0

	g.startServe(1)
}

// Resize adopts a new canvas size. Paddles keep their relative height on
// the court and the ball is pulled back inside.
func (g *Game) Resize(w, h int) {
	oldH := float64(core.Max(1, g.runtime.ScreenH))
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	g.paddleHeight = core.Clamp(h/5, 3, g.cfg.Paddles.Height)

	scale := float64(h) / oldH
	g.paddle1Y = core.ClampF(g.paddle1Y*scale, 1, g.maxPaddleY())
	g.paddle2Y = core.ClampF(g.paddle2Y*scale, 1, g.maxPaddleY())
	if g.target >= 0 {
		g.target *= scale
	}
	g.ballX = core.ClampF(g.ballX, 0, float64(w-1))
	g.ballY = core.ClampF(g.ballY*scale, 1, float64(core.Max(1, h-2)))
}

// ballSpeed is the serve speed at the current difficulty.
func (g *Game) ballSpeed() float64 {
	return g.difficulty.Speed(g.cfg.Physics.BallSpeed, g.score1+g.score2, g.tickCount)
}

// cpuSkill grows from MinSkill to MaxSkill with the difficulty level.
func (g *Game) cpuSkill() float64 {
	lvl := g.difficulty.Level(g.score1+g.score2, g.tickCount)
	return g.cfg.CPU.MinSkill + (g.cfg.CPU.MaxSkill-g.cfg.CPU.MinSkill)*lvl
}

// startServe centers the ball and aims it at the given side.
func (g *Game) startServe(toward int) {
	g.serving = true
	g.serveDelay = g.cfg.Gameplay.ServeDelay

	g.ballX = float64(g.runtime.ScreenW) / 2.0
	g.ballY = float64(g.runtime.ScreenH) / 2.0

	speed := g.ballSpeed()
	if toward == 1 {
		g.ballVX = -speed
	} else {
		g.ballVX = speed
	}
	angle := (g.rng.Float64() - 0.5) * 0.6
	g.ballVY = speed * angle
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

	if g.serving {
		g.serveDelay--
		if g.serveDelay <= 0 {
			g.serving = false
		}
	}

	g.movePlayer(in)
	g.updateCPU()
	if !g.serving {
		g.updateBall()
	}

	return core.StepResult{State: g.State()}
}

// movePlayer applies keys and pointer taps to the left paddle.
// A key press cancels any pointer target.
func (g *Game) movePlayer(in core.InputFrame) {
	speed := g.cfg.Physics.PaddleSpeed
	half := float64(g.paddleHeight) / 2.0

	if pts := in.Points(); len(pts) > 0 {
		g.target = float64(pts[len(pts)-1].Y)
	}

	up := in.Has(core.ActionUp) || in.Has(core.ActionJump)
	down := in.Has(core.ActionDown) || in.Has(core.ActionDuck)
	switch {
	case up:
		g.target = -1
		g.paddle1Y -= speed
	case down:
		g.target = -1
		g.paddle1Y += speed
	case g.target >= 0:
		diff := g.target - (g.paddle1Y + half)
		if math.Abs(diff) <= speed {
			g.paddle1Y += diff
			g.target = -1
		} else {
			g.paddle1Y += math.Copysign(speed, diff)
		}
	}

	g.paddle1Y = core.ClampF(g.paddle1Y, 1, g.maxPaddleY())
}

func (g *Game) maxPaddleY() float64 {
	return float64(g.runtime.ScreenH - g.paddleHeight - 1)
}

// updateCPU moves the CPU paddle towards the ball with imperfect speed.
func (g *Game) updateCPU() {
	if g.ballVX > 0 {
		targetY := g.ballY - float64(g.paddleHeight)/2.0
		diff := targetY - g.paddle2Y
		move := g.cfg.Physics.PaddleSpeed * g.cpuSkill()
		if math.Abs(diff) > move {
			g.paddle2Y += math.Copysign(move, diff)
		}
	}
	g.paddle2Y = core.ClampF(g.paddle2Y, 1, g.maxPaddleY())
}

// updateBall handles ball physics, paddle hits and scoring.
func (g *Game) updateBall() {
	g.ballX += g.ballVX
	g.ballY += g.ballVY

	if g.ballY <= 1 {
		g.ballY = 1
		g.ballVY = -g.ballVY
	}
	if bottom := float64(g.runtime.ScreenH - 2); g.ballY >= bottom {
		g.ballY = bottom
		g.ballVY = -g.ballVY
	}

	pw := float64(g.cfg.Paddles.Width)
	paddle1X := float64(g.cfg.Paddles.Offset)
	paddle2X := float64(g.runtime.ScreenW-g.cfg.Paddles.Offset) - pw

	if g.ballX <= paddle1X+pw && g.ballVX < 0 && g.onPaddle(g.paddle1Y) {
		g.ballX = paddle1X + pw
		g.bounce(g.paddle1Y)
	}
	if g.ballX >= paddle2X && g.ballVX > 0 && g.onPaddle(g.paddle2Y) {
		g.ballX = paddle2X - 1
		g.bounce(g.paddle2Y)
	}

	maxSpeed := g.cfg.Physics.MaxBallSpeed
	if math.Abs(g.ballVX) > maxSpeed {
		g.ballVX = math.Copysign(maxSpeed, g.ballVX)
	}
	if math.Abs(g.ballVY) > maxSpeed/2 {
		g.ballVY = math.Copysign(maxSpeed/2, g.ballVY)
	}

	switch {
	case g.ballX < 0:
		g.score2++
		g.point(2)
	case g.ballX > float64(g.runtime.ScreenW):
		g.score1++
		g.point(1)
	}
}

func (g *Game) onPaddle(top float64) bool {
	return g.ballY >= top && g.ballY <= top+float64(g.paddleHeight)
}

// bounce reflects the ball off a paddle, adding spin by hit position and a
// little speed.
func (g *Game) bounce(top float64) {
	g.ballVX = -g.ballVX * 1.02
	hitPos := (g.ballY - top) / float64(g.paddleHeight)
	g.ballVY += (hitPos - 0.5) * g.cfg.Physics.SpinFactor
}

// point ends the match or serves towards the side that lost the point.
func (g *Game) point(scorer int) {
	s := g.score1
	if scorer == 2 {
		s = g.score2
	}
	if s >= g.cfg.Gameplay.WinScore {
		g.gameOver = true
		g.winner = scorer
		return
	}
	if scorer == 1 {
		g.startServe(2)
	} else {
		g.startServe(1)
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	centerX := dst.Width() / 2
	for y := 1; y < dst.Height()-1; y += 2 {
		dst.SetColor(centerX, y, NetChar, core.ColorGray)
	}

	paddle1X := g.cfg.Paddles.Offset
	paddle2X := dst.Width() - g.cfg.Paddles.Offset - g.cfg.Paddles.Width
	for i := range g.paddleHeight {
		dst.SetColor(paddle1X, int(g.paddle1Y)+i, PaddleChar, core.ColorBrightCyan)
		dst.SetColor(paddle2X, int(g.paddle2Y)+i, PaddleChar, core.ColorBrightRed)
	}

	// Blink during serve
	if !g.serving || (g.serveDelay/10)%2 == 0 {
		dst.SetColor(int(g.ballX), int(g.ballY), BallChar, core.ColorBrightWhite)
	}

	dst.DrawText(centerX-5, 0, fmt.Sprintf("%d", g.score1))
	dst.DrawText(centerX+4, 0, fmt.Sprintf("%d", g.score2))
	dst.DrawText(1, 0, "P1")
	dst.DrawText(dst.Width()-4, 0, "CPU")

	if g.paused {
		dst.DrawMessage("PAUSED", "Press P to resume")
	}
	if g.gameOver {
		msg := "CPU WINS!"
		if g.winner == 1 {
			msg = "YOU WIN!"
		}
		dst.DrawMessage(msg, fmt.Sprintf("%d - %d  |  Press R to restart", g.score1, g.score2))
	}
}

// State returns the current game state. The reported score is the player's.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score1,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

func init() {
	registry.RegisterGame(ID, func() registry.Game {
		return New()
	})
}
