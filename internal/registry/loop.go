package registry

import (
	"time"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/session"
)

// Loop adapts a tick-driven Game to the Factory contract.
//
// Each session tick the loop applies queued intents, steps the game once and
// redraws the canvas from scratch. The loop never stops on game over:
// simulation is gated by the game itself and drawing continues, so the end
// screen stays visible until Restart starts a new round. A finished round's
// score is recorded once, in the score store and in the cached high-score
// list.
//
// When the canvas changes size a Resizer keeps playing. Any other game
// starts a new round; the abandoned round's score is recorded first.
//
// Deferred work the game schedules through cfg.Scheduler belongs to the
// current round: it is cancelled on restart and on cleanup.
func Loop(newGame func() Game) Factory {
	return func(s *session.Session) (Cleanup, error) {
		g := newGame()
		scope := s.NewScope()
		round := s.NewScope()

		cfg := s.Config()
		cfg.Scheduler = round
		g.Reset(cfg)

		frame := core.NewInputFrame()
		state := g.State()
		saved := false

		record := func() {
			if !saved && state.Score > 0 {
				s.RecordScore(state.Score)
				core.PushHighScore(cfg.Prefs, s.GameID(), state.Score)
			}
			saved = true
		}
		newRound := func(reseed bool) {
			round.Close()
			round = s.NewScope()
			cfg.Scheduler = round
			if reseed {
				cfg.Seed = nextSeed(cfg.Seed)
			}
			g.Reset(cfg)
			state = g.State()
			saved = false
			frame.Clear()
		}

		scope.Subscribe(func(in core.Intent) {
			frame.Apply(in)
		})

		scope.OnFrame(func(time.Duration) {
			canvas := s.Canvas()

			if canvas.Width() != cfg.ScreenW || canvas.Height() != cfg.ScreenH {
				cfg.ScreenW, cfg.ScreenH = canvas.Width(), canvas.Height()
				if r, ok := g.(Resizer); ok {
					r.Resize(cfg.ScreenW, cfg.ScreenH)
				} else {
					record()
					newRound(false)
				}
			}
			if state.GameOver && frame.Pressed(core.ActionRestart) {
				newRound(true)
			}

			state = g.Step(frame).State
			if state.GameOver {
				record()
			}
			frame.EndTick()

			canvas.Clear()
			g.Render(canvas)
		})

		return func() {
			round.Close()
			scope.Close()
		}, nil
	}
}

// nextSeed derives the seed for the next round so restarts replay
// deterministically from the session's initial seed.
func nextSeed(seed int64) int64 {
	return seed*6364136223846793005 + 1442695040888963407
}
