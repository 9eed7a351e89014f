// Package invaders implements a Space Invaders-style shooter.
// A fleet of aliens marches side to side and creeps down; the player
// shoots it down one wave after another.
package invaders

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// ID is the registry and catalog id.
const ID = "invaders"

// BestKey is the prefs key for the best score.
const BestKey = "invaders_best"

// Fleet layout.
const (
	FleetRows = 5
	FleetCols = 8
	alienW    = 3
	spacingX  = 5 // Column pitch
	spacingY  = 2 // Row pitch
	fleetW    = (FleetCols-1)*spacingX + alienW
)

// Tuning in ticks at 60 ticks per second.
const (
	startLives      = 3
	baseFleetTicks  = 30 // Full fleet: ticks per step
	minFleetTicks   = 2
	playerMoveTicks = 2
	bombTicks       = 4
	maxBombs        = 3
	bombChance      = 0.35
	reloadDelay     = 350 * time.Millisecond
)

// rowPoints is the score for an alien by fleet row, top first.
var rowPoints = [FleetRows]int{30, 20, 20, 10, 10}

var rowGlyphs = [FleetRows]string{"/O\\", "<#>", "<#>", "{@}", "{@}"}

var rowColors = [FleetRows]core.Color{
	core.ColorBrightMagenta, core.ColorBrightCyan, core.ColorBrightCyan,
	core.ColorBrightGreen, core.ColorBrightGreen,
}

// Shot is a player bullet or an alien bomb.
type Shot struct {
	X, Y int
}

// Game implements Space Invaders.
type Game struct {
	alive      [FleetRows][FleetCols]bool
	fleetX     int // Left edge of column 0
	fleetY     int // Top of row 0
	fleetDir   int // 1 right, -1 left
	fleetTimer int

	playerX    int // Center column of the cannon
	moveTimer  int
	bullet     *Shot
	loaded     bool
	cancelLoad core.CancelFunc
	bombs      []Shot
	bombTimer  int

	score    int
	best     int
	lives    int
	wave     int
	gameOver bool
	paused   bool
	tooSmall bool

	rng       *rand.Rand
	runtime   core.RuntimeConfig
	tickCount int
}

// New creates a new Invaders game.
func New() *Game {
	return &Game{}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.cancelLoad != nil {
		g.cancelLoad()
		g.cancelLoad = nil
	}

	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tooSmall = cfg.ScreenW < fleetW+4 || cfg.ScreenH < 16

	g.playerX = cfg.ScreenW / 2
	g.moveTimer = 0
	g.bullet = nil
	g.loaded = true
	g.bombs = g.bombs[:0]
	g.bombTimer = 0

	g.score = 0
	g.best = core.LoadBest(cfg.Prefs, BestKey)
	g.lives = startLives
	g.wave = 1
	g.gameOver = false
	g.paused = false
	g.tickCount = 0

	g.newFleet()
}

// newFleet fills the fleet for the current wave. Later waves start lower.
func (g *Game) newFleet() {
	for r := range FleetRows {
		for c := range FleetCols {
			g.alive[r][c] = true
		}
	}
	g.fleetX = (g.runtime.ScreenW - fleetW) / 2
	g.fleetY = 2 + core.Min(g.wave-1, 4)
	g.fleetDir = 1
	g.fleetTimer = 0
}

func (g *Game) playerY() int {
	return g.runtime.ScreenH - 2
}

// alienRect returns the cells covered by the alien at row r, column c.
func (g *Game) alienRect(r, c int) core.Rect {
	return core.NewRect(g.fleetX+c*spacingX, g.fleetY+r*spacingY, alienW, 1)
}

func (g *Game) aliveCount() int {
	n := 0
	for r := range FleetRows {
		for c := range FleetCols {
			if g.alive[r][c] {
				n++
			}
		}
	}
	return n
}

// fleetTicks is the step interval. The fleet speeds up as it thins out and
// with every wave.
func (g *Game) fleetTicks() int {
	total := FleetRows * FleetCols
	t := baseFleetTicks*g.aliveCount()/total - (g.wave-1)*2
	return core.Max(minFleetTicks, t)
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

	g.tickCount++

	g.movePlayer(in)
	if in.Pressed(core.ActionJump) || in.Pressed(core.ActionUp) || in.Pressed(core.ActionConfirm) {
		g.fire()
	}

	g.updateBullet()
	g.updateBombs()
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}
	g.updateFleet()

	if g.aliveCount() == 0 {
		g.wave++
		g.bombs = g.bombs[:0]
		g.newFleet()
	}

	return core.StepResult{State: g.State()}
}

// movePlayer steps the cannon on a press and keeps stepping while held.
func (g *Game) movePlayer(in core.InputFrame) {
	dir := 0
	switch {
	case in.Has(core.ActionLeft):
		dir = -1
	case in.Has(core.ActionRight):
		dir = 1
	}
	if dir == 0 {
		g.moveTimer = 0
		return
	}
	if in.Pressed(core.ActionLeft) || in.Pressed(core.ActionRight) || g.moveTimer >= playerMoveTicks {
		g.playerX = core.Clamp(g.playerX+dir, 1, g.runtime.ScreenW-2)
		g.moveTimer = 0
	}
	g.moveTimer++
}

// fire launches a bullet if the cannon is loaded and no bullet is in
// flight. Reloading is scheduled on the session; without a scheduler the
// cannon reloads at once.
func (g *Game) fire() {
	if !g.loaded || g.bullet != nil {
		return
	}
	g.bullet = &Shot{X: g.playerX, Y: g.playerY() - 1}
	if g.runtime.Scheduler == nil {
		return
	}
	g.loaded = false
	g.cancelLoad = g.runtime.Scheduler.After(reloadDelay, func() {
		g.loaded = true
		g.cancelLoad = nil
	})
}

// updateBullet moves the player's bullet one row up and resolves hits.
func (g *Game) updateBullet() {
	if g.bullet == nil {
		return
	}
	g.bullet.Y--
	if g.bullet.Y < 1 {
		g.bullet = nil
		return
	}
	for r := range FleetRows {
		for c := range FleetCols {
			if g.alive[r][c] && g.alienRect(r, c).Contains(g.bullet.X, g.bullet.Y) {
				g.alive[r][c] = false
				g.score += rowPoints[r]
				g.bullet = nil
				return
			}
		}
	}
}

// updateBombs drops alien bombs and checks them against the cannon.
func (g *Game) updateBombs() {
	g.bombTimer++
	move := g.bombTimer >= bombTicks
	if move {
		g.bombTimer = 0
	}

	cannon := core.NewRect(g.playerX-1, g.playerY(), 3, 1)
	kept := g.bombs[:0]
	hit := false
	for _, b := range g.bombs {
		if move {
			b.Y++
		}
		if cannon.Contains(b.X, b.Y) {
			hit = true
			continue
		}
		if b.Y < g.runtime.ScreenH-1 {
			kept = append(kept, b)
		}
	}
	g.bombs = kept

	if hit {
		g.loseLife()
	}
}

func (g *Game) loseLife() {
	g.lives--
	g.bombs = g.bombs[:0]
	g.bullet = nil
	if g.lives <= 0 {
		g.die()
	}
}

func (g *Game) die() {
	if g.gameOver {
		return
	}
	g.gameOver = true
	g.best, _ = core.SaveBest(g.runtime.Prefs, BestKey, g.score)
}

// updateFleet marches the fleet. At a wall it steps down and turns around.
func (g *Game) updateFleet() {
	g.fleetTimer++
	if g.fleetTimer < g.fleetTicks() {
		return
	}
	g.fleetTimer = 0

	left, right, bottom := g.runtime.ScreenW, -1, -1
	for r := range FleetRows {
		for c := range FleetCols {
			if !g.alive[r][c] {
				continue
			}
			rc := g.alienRect(r, c)
			left = core.Min(left, rc.X)
			right = core.Max(right, rc.Right())
			bottom = core.Max(bottom, rc.Y)
		}
	}
	if right < 0 {
		return
	}

	if (g.fleetDir > 0 && right+1 >= g.runtime.ScreenW) || (g.fleetDir < 0 && left-1 < 0) {
		g.fleetY++
		g.fleetDir = -g.fleetDir
		bottom++
	} else {
		g.fleetX += g.fleetDir
	}

	if bottom >= g.playerY() {
		g.die()
		return
	}

	g.dropBomb()
}

// dropBomb lets the lowest alien of a random occupied column drop a bomb.
func (g *Game) dropBomb() {
	if len(g.bombs) >= maxBombs || g.rng.Float64() >= bombChance {
		return
	}
	var cols []int
	for c := range FleetCols {
		for r := range FleetRows {
			if g.alive[r][c] {
				cols = append(cols, c)
				break
			}
		}
	}
	if len(cols) == 0 {
		return
	}
	c := cols[g.rng.Intn(len(cols))]
	for r := FleetRows - 1; r >= 0; r-- {
		if g.alive[r][c] {
			rc := g.alienRect(r, c)
			g.bombs = append(g.bombs, Shot{X: rc.X + 1, Y: rc.Y + 1})
			return
		}
	}
}

// Render draws the fleet, the cannon, shots and the HUD.
func (g *Game) Render(dst *core.Screen) {
	if g.tooSmall {
		dst.DrawMessage("Window too small", fmt.Sprintf("Need at least %dx16", fleetW+4))
		return
	}

	for r := range FleetRows {
		for c := range FleetCols {
			if g.alive[r][c] {
				rc := g.alienRect(r, c)
				dst.DrawTextColor(rc.X, rc.Y, rowGlyphs[r], rowColors[r])
			}
		}
	}

	for _, b := range g.bombs {
		dst.SetColor(b.X, b.Y, '*', core.ColorBrightRed)
	}
	if g.bullet != nil {
		dst.SetColor(g.bullet.X, g.bullet.Y, '|', core.ColorBrightYellow)
	}

	py := g.playerY()
	dst.DrawTextColor(g.playerX-1, py, "═▲═", core.ColorBrightWhite)
	dst.DrawHLine(0, dst.Height()-1, dst.Width(), '▔')

	hud := fmt.Sprintf(" Score: %d  Best: %d  Wave: %d  Lives: %d ", g.score, core.Max(g.best, g.score), g.wave, g.lives)
	dst.DrawText(1, 0, hud)
	if !g.loaded {
		dst.DrawTextColor(dst.Width()-12, 0, "reloading", core.ColorGray)
	}

	if g.paused {
		dst.DrawMessage("PAUSED", "Press P to resume")
	}
	if g.gameOver {
		dst.DrawMessage("GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

func init() {
	registry.RegisterGame(ID, func() registry.Game {
		return New()
	})
}
