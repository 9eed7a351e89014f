// Package slots implements a three-reel slot machine. Credits carry over
// between sessions; the score is what a session wins back.
package slots

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// ID is the registry and catalog id.
const ID = "slots"

// Prefs keys.
const (
	CreditsKey = "slots_credits"
	BestKey    = "slots_best"
)

const (
	Reels        = 3
	StartCredits = 100
	MaxBet       = 10
	defaultBet   = 5
	reelStop     = 600 * time.Millisecond // Delay between reels stopping
	pairPays     = 2
)

// Symbol is a reel symbol with its draw weight and three-of-a-kind payout.
type Symbol struct {
	Glyph  rune
	Weight int
	Pays   int
	Color  core.Color
}

// Symbols lists reel symbols from rarest to most common.
var Symbols = []Symbol{
	{'7', 1, 50, core.ColorBrightRed},
	{'$', 2, 25, core.ColorBrightGreen},
	{'★', 3, 15, core.ColorBrightYellow},
	{'♦', 4, 10, core.ColorBrightCyan},
	{'♥', 5, 8, core.ColorRed},
	{'♣', 6, 6, core.ColorBrightWhite},
	{'●', 7, 4, core.ColorBrightMagenta},
}

var totalWeight = func() int {
	n := 0
	for _, s := range Symbols {
		n += s.Weight
	}
	return n
}()

// Payout returns the bet multiplier for a result: the symbol's payout for
// three of a kind, pairPays for any two matching, else zero.
func Payout(r [Reels]int) int {
	switch {
	case r[0] == r[1] && r[1] == r[2]:
		return Symbols[r[0]].Pays
	case r[0] == r[1] || r[1] == r[2] || r[0] == r[2]:
		return pairPays
	default:
		return 0
	}
}

// Game implements the slot machine.
type Game struct {
	credits  int
	bet      int
	winnings int
	lastWin  int
	best     int

	results  [Reels]int
	stopped  [Reels]bool
	spinning bool
	spinID   int
	cancels  []core.CancelFunc

	gameOver bool
	paused   bool

	rng       *rand.Rand
	runtime   core.RuntimeConfig
	tickCount int
}

// New creates a new slot machine.
func New() *Game {
	return &Game{}
}

// Reset initializes or restarts the game. A broke player gets a fresh
// stack of credits.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cancelStops()
	g.spinID++

	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.credits = g.loadCredits()
	if g.credits <= 0 {
		g.credits = StartCredits
	}
	g.bet = core.Min(defaultBet, g.credits)
	g.winnings = 0
	g.lastWin = 0
	g.best = core.LoadBest(cfg.Prefs, BestKey)
	for i := range Reels {
		g.results[i] = i
		g.stopped[i] = true
	}
	g.spinning = false
	g.gameOver = false
	g.paused = false
	g.tickCount = 0
}

// Resize adopts a new canvas size. A spin in progress keeps turning.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
}

func (g *Game) loadCredits() int {
	if g.runtime.Prefs == nil {
		return 0
	}
	var n int
	if ok, err := g.runtime.Prefs.Get(CreditsKey, &n); err != nil || !ok {
		return 0
	}
	return n
}

func (g *Game) saveCredits() {
	if g.runtime.Prefs == nil {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	g.runtime.Prefs.Set(CreditsKey, g.credits)
}

func (g *Game) cancelStops() {
	for _, c := range g.cancels {
		c()
	}
	g.cancels = g.cancels[:0]
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
	if g.spinning {
		return core.StepResult{State: g.State()}
	}

	if in.Pressed(core.ActionUp) || in.Pressed(core.ActionRight) {
		g.bet = core.Min(g.bet+1, core.Min(MaxBet, g.credits))
	}
	if in.Pressed(core.ActionDown) || in.Pressed(core.ActionLeft) {
		g.bet = core.Max(g.bet-1, 1)
	}

	if in.Pressed(core.ActionJump) || in.Pressed(core.ActionConfirm) || len(in.Points()) > 0 {
		g.spin()
	}

	return core.StepResult{State: g.State()}
}

// roll draws one weighted symbol index.
func (g *Game) roll() int {
	n := g.rng.Intn(totalWeight)
	for i, s := range Symbols {
		if n < s.Weight {
			return i
		}
		n -= s.Weight
	}
	return len(Symbols) - 1
}

// spin takes the bet and decides the outcome up front. The reels then stop
// one after another on the session scheduler; without one they stop at once.
// Credits are saved only when the spin settles, so a spin cut short by
// leaving or restarting is void and the stake stays with the player.
func (g *Game) spin() {
	if g.spinning || g.bet > g.credits || g.bet < 1 {
		return
	}
	g.credits -= g.bet
	g.lastWin = 0

	for i := range Reels {
		g.results[i] = g.roll()
		g.stopped[i] = false
	}
	g.spinning = true
	g.spinID++

	if g.runtime.Scheduler == nil {
		for i := range Reels {
			g.stopReel(i)
		}
		return
	}

	g.cancelStops()
	id := g.spinID
	for i := range Reels {
		g.cancels = append(g.cancels, g.runtime.Scheduler.After(time.Duration(i+1)*reelStop, func() {
			if g.spinID == id {
				g.stopReel(i)
			}
		}))
	}
}

func (g *Game) stopReel(i int) {
	g.stopped[i] = true
	for _, s := range g.stopped {
		if !s {
			return
		}
	}
	g.settle()
}

// settle pays out the finished spin.
func (g *Game) settle() {
	g.spinning = false
	g.cancels = g.cancels[:0]

	win := g.bet * Payout(g.results)
	g.credits += win
	g.winnings += win
	g.lastWin = win
	g.saveCredits()

	g.bet = core.Min(g.bet, g.credits)
	if g.credits <= 0 {
		g.bet = 0
		g.gameOver = true
		g.best, _ = core.SaveBest(g.runtime.Prefs, BestKey, g.winnings)
	}
}

// Render draws the reels, the pay table and the HUD.
func (g *Game) Render(dst *core.Screen) {
	const cellW = 7
	w := Reels*cellW + 2
	ox := (dst.Width() - w) / 2
	oy := core.Max(1, dst.Height()/2-5)

	dst.DrawTextCenteredColor(oy-1, "LUCKY SLOTS", core.ColorBrightYellow)
	dst.DrawBoxColor(core.NewRect(ox, oy, w, 5), core.ColorYellow)
	for i := range Reels {
		s := Symbols[g.results[i]]
		if !g.stopped[i] {
			s = Symbols[(g.tickCount/3+i*2)%len(Symbols)]
		}
		x := ox + 1 + i*cellW
		if i > 0 {
			dst.DrawVLine(x-1, oy+1, 3, '│')
		}
		dst.SetColor(x+cellW/2, oy+2, s.Glyph, s.Color)
	}

	hy := oy + 6
	dst.DrawTextCentered(hy, fmt.Sprintf("Credits: %d   Bet: %d   Won: %d", g.credits, g.bet, g.winnings))
	switch {
	case g.spinning:
		dst.DrawTextCenteredColor(hy+1, "Spinning...", core.ColorGray)
	case g.lastWin > 0:
		dst.DrawTextCenteredColor(hy+1, fmt.Sprintf("WIN %d!", g.lastWin), core.ColorBrightGreen)
	default:
		dst.DrawTextCenteredColor(hy+1, "Space to spin, Up/Down to bet", core.ColorGray)
	}

	for i, s := range Symbols {
		y := hy + 3 + i
		if y >= dst.Height() {
			break
		}
		line := fmt.Sprintf("%c %c %c  x%d", s.Glyph, s.Glyph, s.Glyph, s.Pays)
		dst.DrawTextColor(ox, y, line, s.Color)
	}

	if g.paused {
		dst.DrawMessage("PAUSED", "Press P to resume")
	}
	if g.gameOver {
		dst.DrawMessage("OUT OF CREDITS", fmt.Sprintf("Won: %d  |  Press R for a fresh %d", g.winnings, StartCredits))
	}
}

// State returns the current game state. The score is the session's winnings.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.winnings,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

func init() {
	registry.RegisterGame(ID, func() registry.Game {
		return New()
	})
}
