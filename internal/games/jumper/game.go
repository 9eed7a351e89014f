// Package jumper implements a vertical platform climber. The player hops
// between platforms, the camera follows upwards, and falling out of view
// ends the run.
package jumper

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// ID is the registry and catalog id.
const ID = "jumper"

// BestKey is the prefs key for the best score.
const BestKey = "jumper_best"

// Physics in cells per tick.
const (
	gravity     = 0.03
	jumpVel     = -0.75
	maxFall     = 0.8
	moveSpeed   = 0.5
	minRise     = 3 // Vertical gap between platforms
	maxRise     = 5
	minPlatW    = 6
	maxPlatW    = 12
	coinChance  = 0.35
	coinValue   = 10
	cameraRatio = 3 // Keep the player below the top third
)

// Platform is a horizontal ledge. Y is its row in world coordinates,
// which grow downwards.
type Platform struct {
	X, Y, W int
}

// Game implements the platform climber.
type Game struct {
	x, y     float64 // Player position in world coordinates
	vx, vy   float64
	grounded bool

	platforms []Platform
	coins     []core.Point
	topY      int     // Highest generated platform
	camY      float64 // World row shown at the top of the screen

	startY   float64
	minY     float64
	gotCoins int
	best     int
	gameOver bool
	paused   bool

	rng       *rand.Rand
	runtime   core.RuntimeConfig
	tickCount int
}

// New creates a new jumper game.
func New() *Game {
	return &Game{}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))

	ground := cfg.ScreenH - 2
	g.platforms = append(g.platforms[:0], Platform{X: 0, Y: ground, W: cfg.ScreenW})
	g.coins = g.coins[:0]
	g.topY = ground
	g.camY = 0

	g.x = float64(cfg.ScreenW / 2)
	g.y = float64(ground - 1)
	g.vx, g.vy = 0, 0
	g.grounded = true

	g.startY = g.y
	g.minY = g.y
	g.gotCoins = 0
	g.best = core.LoadBest(cfg.Prefs, BestKey)
	g.gameOver = false
	g.paused = false
	g.tickCount = 0

	g.generate()
}

// generate adds platforms until one screen above the camera is filled.
func (g *Game) generate() {
	w := g.runtime.ScreenW
	for float64(g.topY) > g.camY-float64(g.runtime.ScreenH) {
		y := g.topY - (minRise + g.rng.Intn(maxRise-minRise+1))
		pw := core.Min(minPlatW+g.rng.Intn(maxPlatW-minPlatW+1), w)
		x := g.rng.Intn(w - pw + 1)
		g.platforms = append(g.platforms, Platform{X: x, Y: y, W: pw})
		if g.rng.Float64() < coinChance {
			g.coins = append(g.coins, core.Point{X: x + pw/2, Y: y - 1})
		}
		g.topY = y
	}
}

func (g *Game) score() int {
	return int(g.startY-g.minY) + g.gotCoins*coinValue
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

	switch {
	case in.Has(core.ActionLeft):
		g.vx = -moveSpeed
	case in.Has(core.ActionRight):
		g.vx = moveSpeed
	default:
		g.vx = 0
	}
	g.x = wrap(g.x+g.vx, float64(g.runtime.ScreenW))

	if g.grounded && (in.Pressed(core.ActionJump) || in.Pressed(core.ActionUp)) {
		g.vy = jumpVel
		g.grounded = false
	}

	if g.grounded {
		if g.platformUnder() == nil {
			g.grounded = false
		}
	}
	if !g.grounded {
		g.fall()
	}

	g.collectCoins()
	g.minY = math.Min(g.minY, g.y)
	g.follow()

	if g.y-g.camY > float64(g.runtime.ScreenH) {
		g.gameOver = true
		g.best, _ = core.SaveBest(g.runtime.Prefs, BestKey, g.score())
	}

	return core.StepResult{State: g.State()}
}

// wrap folds v into [0, n).
func wrap(v, n float64) float64 {
	v = math.Mod(v, n)
	if v < 0 {
		v += n
	}
	return v
}

// platformUnder returns the platform the player stands on, if any.
func (g *Game) platformUnder() *Platform {
	col, row := int(g.x), int(math.Floor(g.y))
	for i := range g.platforms {
		p := &g.platforms[i]
		if p.Y == row+1 && col >= p.X && col < p.X+p.W {
			return p
		}
	}
	return nil
}

// fall applies gravity and lands on the first platform crossed on the way
// down. Platforms are one-way: the player jumps up through them.
func (g *Game) fall() {
	prev := g.y
	g.vy = math.Min(g.vy+gravity, maxFall)
	g.y += g.vy
	if g.vy <= 0 {
		return
	}

	col := int(g.x)
	for _, p := range g.platforms {
		stand := float64(p.Y - 1)
		if prev <= stand && g.y >= stand && col >= p.X && col < p.X+p.W {
			g.y = stand
			g.vy = 0
			g.grounded = true
			return
		}
	}
}

func (g *Game) collectCoins() {
	at := core.Point{X: int(g.x), Y: int(math.Floor(g.y))}
	kept := g.coins[:0]
	for _, c := range g.coins {
		if c == at {
			g.gotCoins++
			continue
		}
		kept = append(kept, c)
	}
	g.coins = kept
}

// follow scrolls the camera up with the player, generates new platforms
// above and drops the ones that left the bottom of the view.
func (g *Game) follow() {
	h := float64(g.runtime.ScreenH)
	if limit := g.camY + h/cameraRatio; g.y < limit {
		g.camY -= limit - g.y
	}
	g.generate()

	bottom := int(g.camY+h) + 1
	kept := g.platforms[:0]
	for _, p := range g.platforms {
		if p.Y <= bottom {
			kept = append(kept, p)
		}
	}
	g.platforms = kept

	coins := g.coins[:0]
	for _, c := range g.coins {
		if c.Y <= bottom {
			coins = append(coins, c)
		}
	}
	g.coins = coins
}

// Render draws the visible platforms, coins, the player and the HUD.
func (g *Game) Render(dst *core.Screen) {
	cam := int(math.Floor(g.camY))

	for _, p := range g.platforms {
		c := core.ColorBrightGreen
		if p.W == g.runtime.ScreenW {
			c = core.ColorGray
		}
		dst.DrawRectColor(core.NewRect(p.X, p.Y-cam, p.W, 1), '▀', c)
	}
	for _, c := range g.coins {
		dst.SetColor(c.X, c.Y-cam, '$', core.ColorBrightYellow)
	}
	dst.SetColor(int(g.x), int(math.Floor(g.y))-cam, '@', core.ColorBrightCyan)

	dst.DrawText(1, 0, fmt.Sprintf(" Score: %d  Best: %d  Coins: %d ", g.score(), core.Max(g.best, g.score()), g.gotCoins))

	if g.paused {
		dst.DrawMessage("PAUSED", "Press P to resume")
	}
	if g.gameOver {
		dst.DrawMessage("GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score()))
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score(),
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

func init() {
	registry.RegisterGame(ID, func() registry.Game {
		return New()
	})
}
