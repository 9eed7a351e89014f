package flappy

import (
	"encoding/json"
	"testing"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func jumpFrame() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	return in
}

type memPrefs map[string][]byte

func (m memPrefs) Get(key string, dst any) (bool, error) {
	raw, ok := m[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m memPrefs) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	m[key] = raw
	return err
}

func TestGameDeterminism(t *testing.T) {
	// Jump every 15 ticks to try to stay airborne
	inputs := make([]core.InputFrame, 200)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i%15 == 0 {
			inputs[i].Set(core.ActionJump)
		}
	}

	run := func() (*Game, core.GameState) {
		g := New()
		g.Reset(testConfig(12345))
		var st core.GameState
		for _, in := range inputs {
			st = g.Step(in).State
			if st.GameOver {
				break
			}
		}
		return g, st
	}

	g1, s1 := run()
	g2, s2 := run()

	if s1 != s2 {
		t.Errorf("Determinism failed: states differ. Run1=%+v, Run2=%+v", s1, s2)
	}
	if g1.tickCount != g2.tickCount || g1.playerY != g2.playerY {
		t.Errorf("Determinism failed: ticks %d/%d, y %f/%f", g1.tickCount, g2.tickCount, g1.playerY, g2.playerY)
	}
}

func TestGameReset(t *testing.T) {
	g := New()
	g.Reset(testConfig(42))

	for i := 0; i < 50; i++ {
		in := core.NewInputFrame()
		if i%10 == 0 {
			in.Set(core.ActionJump)
		}
		g.Step(in)
	}

	g.Reset(testConfig(42))

	if g.score != 0 || g.gameOver || g.paused || g.tickCount != 0 {
		t.Errorf("Reset should clear state: score=%d over=%v paused=%v ticks=%d",
			g.score, g.gameOver, g.paused, g.tickCount)
	}
	if len(g.pipes.Pipes()) != 0 {
		t.Error("Reset should clear pipes")
	}
}

func TestGameJumpPhysics(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	initialY := g.playerY

	g.Step(jumpFrame())

	if g.playerY >= initialY {
		t.Errorf("Jump should move player up, was %f, now %f", initialY, g.playerY)
	}
	if g.playerVel >= 0 {
		t.Errorf("Jump velocity should be negative, got %f", g.playerVel)
	}
}

func TestHeldJumpFlapsOnce(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))

	in := core.NewInputFrame()
	in.Apply(core.Act(core.ActionJump, core.Press))
	g.Step(in)
	in.EndTick()

	// Still held, but no new edge: gravity takes over.
	velAfterFlap := g.playerVel
	g.Step(in)
	if g.playerVel <= velAfterFlap {
		t.Errorf("holding jump should not flap again: %f -> %f", velAfterFlap, g.playerVel)
	}
}

func TestGameGravity(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	g.playerY = 10
	g.playerVel = 0

	g.Step(core.NewInputFrame())

	if g.playerY <= 10 {
		t.Errorf("Gravity should pull player down, Y is still %f", g.playerY)
	}
	if g.playerVel <= 0 {
		t.Errorf("Velocity should be positive after gravity, got %f", g.playerVel)
	}
}

func TestGamePause(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if !g.paused {
		t.Fatal("Game should be paused")
	}

	yBefore := g.playerY
	g.Step(core.NewInputFrame())
	if g.playerY != yBefore {
		t.Errorf("Player position should not change while paused, was %f, now %f", yBefore, g.playerY)
	}

	g.Step(pause)
	if g.paused {
		t.Error("Game should be unpaused")
	}
}

func TestGameOverOnGround(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	g.playerY = float64(g.groundY() - 1)
	g.playerVel = 3

	if !g.Step(core.NewInputFrame()).State.GameOver {
		t.Error("Game should be over when player hits ground")
	}
}

func TestGameOverFreezesSimulation(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	g.gameOver = true
	y := g.playerY

	g.Step(jumpFrame())
	if g.playerY != y || g.tickCount != 0 {
		t.Error("simulation should not advance after game over")
	}
}

func TestBestScoreSaved(t *testing.T) {
	prefs := memPrefs{}
	cfg := testConfig(1)
	cfg.Prefs = prefs

	g := New()
	g.Reset(cfg)
	g.score = 7
	g.die()

	if got := core.LoadBest(prefs, BestKey); got != 7 {
		t.Errorf("best = %d, want 7", got)
	}

	g.Reset(cfg)
	if g.best != 7 {
		t.Errorf("Reset should load best, got %d", g.best)
	}
}

func TestGameRender(t *testing.T) {
	cfg := testConfig(1)
	g := New()
	g.Reset(cfg)

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)

	groundY := cfg.ScreenH - 1
	if screen.Get(0, groundY) != GroundChar {
		t.Errorf("Ground should be drawn at bottom, got %q", screen.Get(0, groundY))
	}
	r := g.playerRect()
	if screen.Get(r.X+r.W-1, r.Y) != PlayerChar {
		t.Error("Player should be drawn")
	}
}

func TestPipeCollision(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	px := g.cfg.Player.X

	g.pipes.pipes = append(g.pipes.pipes, Pipe{
		X:         px - 1, // Overlapping with player
		GapY:      0,
		GapHeight: 5,
	})
	g.playerY = 15 // Below the gap

	if !g.Step(core.NewInputFrame()).State.GameOver {
		t.Error("Game should be over when player hits pipe")
	}
}

func TestPipesScroll(t *testing.T) {
	g := New()
	g.Reset(testConfig(3))

	for i := 0; i < 5; i++ {
		g.Step(jumpFrame())
	}
	pipes := g.pipes.Pipes()
	if len(pipes) == 0 {
		t.Fatal("a pipe should have spawned")
	}
	if pipes[0].X >= 80 {
		t.Errorf("pipe should have moved left, X=%d", pipes[0].X)
	}
}
