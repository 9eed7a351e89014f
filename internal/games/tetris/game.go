// Package tetris implements falling-block line clearing on a 10x20 well.
package tetris

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// ID is the registry and catalog id.
const ID = "tetris"

// BestKey is the prefs key for the best score.
const BestKey = "tetris_best"

// Well dimensions.
const (
	Cols = 10
	Rows = 20
)

// Timing in ticks at 60 ticks per second.
const (
	baseFallTicks  = 48
	minFallTicks   = 3
	softDropTicks  = 2
	lockDelayTicks = 30
	repeatDelay    = 10 // Held left/right: ticks before auto-repeat
	repeatEvery    = 3
	linesPerLevel  = 10
)

// lineScores are the points for clearing 1-4 lines, times (level+1).
var lineScores = [5]int{0, 100, 300, 500, 800}

// Game implements Tetris.
type Game struct {
	rng  *rand.Rand
	bag  *Bag
	well [Rows][Cols]Kind // Meaningful where filled is true
	full [Rows][Cols]bool

	piece     Piece
	fallTimer int
	lockTimer int
	grounded  bool
	heldDir   int // -1, 0, 1
	heldTicks int

	score int
	best  int
	lines int
	level int

	gameOver bool
	paused   bool

	runtime core.RuntimeConfig
}

// New creates a new Tetris game.
func New() *Game {
	return &Game{}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.bag = NewBag(g.rng)
	g.well = [Rows][Cols]Kind{}
	g.full = [Rows][Cols]bool{}
	g.score = 0
	g.best = core.LoadBest(cfg.Prefs, BestKey)
	g.lines = 0
	g.level = 0
	g.gameOver = false
	g.paused = false
	g.heldDir = 0
	g.heldTicks = 0
	g.spawn()
}

// Resize adopts a new canvas size. The well is fixed-size and drawn
// centered, so the round carries on untouched.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
}

// fallTicks is the gravity interval at the current level.
func (g *Game) fallTicks() int {
	return core.Max(minFallTicks, baseFallTicks-g.level*5)
}

// spawn brings the next piece in at the top. A blocked spawn ends the game.
func (g *Game) spawn() {
	k := g.bag.Take()
	g.piece = Piece{Kind: k, X: (Cols - k.boxSize()) / 2, Y: 0}
	g.fallTimer = 0
	g.lockTimer = 0
	g.grounded = false
	if !g.fits(g.piece) {
		g.gameOver = true
		g.best, _ = core.SaveBest(g.runtime.Prefs, BestKey, g.score)
	}
}

// fits reports whether p lies inside the well without overlapping blocks.
// Cells above the top edge are allowed.
func (g *Game) fits(p Piece) bool {
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= Cols || c.Y >= Rows {
			return false
		}
		if c.Y >= 0 && g.full[c.Y][c.X] {
			return false
		}
	}
	return true
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

	if in.Pressed(core.ActionUp) || in.Pressed(core.ActionConfirm) {
		g.rotate(1)
	}
	if in.Pressed(core.ActionDuck) {
		g.rotate(-1)
	}
	g.shift(in)

	if in.Pressed(core.ActionJump) {
		g.hardDrop()
		return core.StepResult{State: g.State()}
	}

	interval := g.fallTicks()
	soft := in.Has(core.ActionDown)
	if soft {
		interval = core.Min(interval, softDropTicks)
	}

	g.fallTimer++
	if g.fallTimer >= interval {
		g.fallTimer = 0
		if g.tryMove(0, 1) {
			if soft {
				g.score++
			}
		}
	}

	g.grounded = !g.fits(g.piece.Moved(0, 1))
	if g.grounded {
		g.lockTimer++
		if g.lockTimer >= lockDelayTicks {
			g.lock()
		}
	} else {
		g.lockTimer = 0
	}

	return core.StepResult{State: g.State()}
}

// shift handles left/right presses and held auto-repeat.
func (g *Game) shift(in core.InputFrame) {
	dir := 0
	switch {
	case in.Pressed(core.ActionLeft):
		dir = -1
	case in.Pressed(core.ActionRight):
		dir = 1
	}
	if dir != 0 {
		g.tryMove(dir, 0)
		g.heldDir = dir
		g.heldTicks = 0
		return
	}

	held := 0
	switch {
	case in.Held(core.ActionLeft):
		held = -1
	case in.Held(core.ActionRight):
		held = 1
	}
	if held == 0 || held != g.heldDir {
		g.heldDir = held
		g.heldTicks = 0
		return
	}
	g.heldTicks++
	if g.heldTicks >= repeatDelay && (g.heldTicks-repeatDelay)%repeatEvery == 0 {
		g.tryMove(held, 0)
	}
}

func (g *Game) tryMove(dx, dy int) bool {
	next := g.piece.Moved(dx, dy)
	if !g.fits(next) {
		return false
	}
	g.piece = next
	if dx != 0 {
		g.lockTimer = 0
	}
	return true
}

// rotate turns the piece, trying small wall kicks when the plain turn is
// blocked.
func (g *Game) rotate(dir int) {
	turned := g.piece.Rotated(dir)
	for _, dx := range []int{0, -1, 1, -2, 2} {
		if k := turned.Moved(dx, 0); g.fits(k) {
			g.piece = k
			g.lockTimer = 0
			return
		}
	}
}

// ghost returns the piece dropped as far as it can go.
func (g *Game) ghost() Piece {
	p := g.piece
	for g.fits(p.Moved(0, 1)) {
		p = p.Moved(0, 1)
	}
	return p
}

func (g *Game) hardDrop() {
	landed := g.ghost()
	g.score += 2 * (landed.Y - g.piece.Y)
	g.piece = landed
	g.lock()
}

// lock merges the piece into the well, clears lines and spawns the next.
func (g *Game) lock() {
	for _, c := range g.piece.Cells() {
		if c.Y < 0 {
			// Locked above the top of the well.
			g.gameOver = true
			g.best, _ = core.SaveBest(g.runtime.Prefs, BestKey, g.score)
			return
		}
		g.full[c.Y][c.X] = true
		g.well[c.Y][c.X] = g.piece.Kind
	}

	cleared := g.clearLines()
	if cleared > 0 {
		g.score += lineScores[cleared] * (g.level + 1)
		g.lines += cleared
		g.level = g.lines / linesPerLevel
	}
	g.spawn()
}

// clearLines removes full rows and returns how many were removed.
func (g *Game) clearLines() int {
	cleared := 0
	for y := Rows - 1; y >= 0; {
		if !rowFull(g.full[y]) {
			y--
			continue
		}
		for yy := y; yy > 0; yy-- {
			g.full[yy] = g.full[yy-1]
			g.well[yy] = g.well[yy-1]
		}
		g.full[0] = [Cols]bool{}
		g.well[0] = [Cols]Kind{}
		cleared++
	}
	return cleared
}

func rowFull(row [Cols]bool) bool {
	for _, f := range row {
		if !f {
			return false
		}
	}
	return true
}

// Render draws the well, the falling piece, its ghost and the sidebar.
func (g *Game) Render(dst *core.Screen) {
	// Each cell is two characters wide.
	wellW := Cols*2 + 2
	ox := (dst.Width() - wellW) / 2
	oy := core.Max(0, (dst.Height()-Rows-2)/2)

	dst.DrawBoxColor(core.NewRect(ox, oy, wellW, Rows+2), core.ColorGray)

	cell := func(x, y int, ch rune, c core.Color) {
		if y < 0 {
			return
		}
		dst.SetColor(ox+1+x*2, oy+1+y, ch, c)
		dst.SetColor(ox+2+x*2, oy+1+y, ch, c)
	}

	for y := range Rows {
		for x := range Cols {
			if g.full[y][x] {
				cell(x, y, '█', g.well[y][x].Color())
			}
		}
	}
	if !g.gameOver {
		for _, c := range g.ghost().Cells() {
			cell(c.X, c.Y, '░', core.ColorGray)
		}
		for _, c := range g.piece.Cells() {
			cell(c.X, c.Y, '█', g.piece.Kind.Color())
		}
	}

	sx := ox + wellW + 2
	dst.DrawText(sx, oy+1, fmt.Sprintf("Score: %d", g.score))
	dst.DrawText(sx, oy+2, fmt.Sprintf("Best:  %d", core.Max(g.best, g.score)))
	dst.DrawText(sx, oy+3, fmt.Sprintf("Lines: %d", g.lines))
	dst.DrawText(sx, oy+4, fmt.Sprintf("Level: %d", g.level+1))
	dst.DrawText(sx, oy+6, "Next:")
	next := Piece{Kind: g.bag.Peek()}
	for _, c := range next.Cells() {
		dst.SetColor(sx+c.X*2, oy+7+c.Y, '█', next.Kind.Color())
		dst.SetColor(sx+c.X*2+1, oy+7+c.Y, '█', next.Kind.Color())
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
		Paused:   g.paused,
	}
}

func init() {
	registry.RegisterGame(ID, func() registry.Game {
		return New()
	})
}
