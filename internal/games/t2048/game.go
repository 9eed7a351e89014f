// Package t2048 implements the 2048 sliding-tile puzzle. The board is saved
// after every move so an unfinished game survives leaving the portal.
package t2048

import (
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// ID is the registry and catalog id.
const ID = "2048"

// BestKey is the prefs key for the best score.
const BestKey = "2048_best"

// Spawn4Chance is the probability that a spawned tile is a 4.
const Spawn4Chance = 0.10

// popTicks is how long a freshly spawned tile stays highlighted.
const popTicks = 8

// savedGame is the blob stored under core.StateKey(ID).
type savedGame struct {
	Board Board `json:"board"`
	Score int   `json:"score"`
	Won   bool  `json:"won"`
}

// Game implements the 2048 puzzle game.
type Game struct {
	rng  *rand.Rand
	tick uint64

	board    Board
	score    int
	best     int
	won      bool // WinTile reached; play may continue
	showWin  bool // Win overlay visible
	gameOver bool
	paused   bool
	tooSmall bool

	lastSpawn Cell
	popLeft   int

	runtime core.RuntimeConfig
}

// New creates a new 2048 game.
func New() *Game {
	return &Game{}
}

// Reset restores a saved unfinished game, or starts a new one.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = 0
	g.best = core.LoadBest(cfg.Prefs, BestKey)
	g.won = false
	g.showWin = false
	g.gameOver = false
	g.paused = false
	g.popLeft = 0
	g.board = Board{}
	g.tooSmall = cfg.ScreenW < minScreenW || cfg.ScreenH < minScreenH

	if saved, ok := g.load(); ok {
		g.board = saved.Board
		g.score = saved.Score
		g.won = saved.Won
		return
	}

	g.spawnTile()
	g.spawnTile()
}

// Resize adopts a new canvas size; the board is unaffected.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// load returns the saved game if there is one worth resuming.
func (g *Game) load() (savedGame, bool) {
	var saved savedGame
	if g.runtime.Prefs == nil {
		return saved, false
	}
	ok, err := g.runtime.Prefs.Get(core.StateKey(ID), &saved)
	if err != nil || !ok || saved.Board.Empty() || !CanMove(saved.Board) {
		return saved, false
	}
	return saved, true
}

// save stores the board; a finished game stores an empty board.
func (g *Game) save() {
	if g.runtime.Prefs == nil {
		return
	}
	saved := savedGame{Score: g.score, Won: g.won}
	if !g.gameOver {
		saved.Board = g.board
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	g.runtime.Prefs.Set(core.StateKey(ID), saved)
}

// spawnTile places a 2 (or sometimes a 4) on a random empty cell.
func (g *Game) spawnTile() {
	empty := EmptyCells(g.board)
	if len(empty) == 0 {
		return
	}
	c := empty[g.rng.Intn(len(empty))]
	v := 2
	if g.rng.Float64() < Spawn4Chance {
		v = 4
	}
	g.board[c.Y][c.X] = v
	g.lastSpawn = c
	g.popLeft = popTicks
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.popLeft > 0 {
		g.popLeft--
	}

	if g.tooSmall || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Pressed(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.showWin {
		if in.Pressed(core.ActionConfirm) || in.Pressed(core.ActionJump) {
			g.showWin = false
		}
		return core.StepResult{State: g.State()}
	}

	// One slide per press.
	dir := core.DirNone
	switch {
	case in.Pressed(core.ActionUp):
		dir = core.DirUp
	case in.Pressed(core.ActionDown):
		dir = core.DirDown
	case in.Pressed(core.ActionLeft):
		dir = core.DirLeft
	case in.Pressed(core.ActionRight):
		dir = core.DirRight
	}
	if dir != core.DirNone {
		g.move(dir)
	}

	return core.StepResult{State: g.State()}
}

// move slides the board; a move that changes nothing spawns nothing.
func (g *Game) move(dir core.Direction) {
	next, gained, changed := Slide(g.board, dir)
	if !changed {
		return
	}
	g.board = next
	g.score += gained
	g.spawnTile()

	if !g.won && MaxTile(g.board) >= WinTile {
		g.won = true
		g.showWin = true
	}
	if !CanMove(g.board) {
		g.gameOver = true
		g.best, _ = core.SaveBest(g.runtime.Prefs, BestKey, g.score)
	}
	g.save()
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
