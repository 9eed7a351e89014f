package snake

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

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

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should produce identical snapshots
	cfg := core.RuntimeConfig{
		Seed:    12345,
		ScreenW: 80,
		ScreenH: 24,
	}

	g1 := New()
	g1.Reset(cfg)

	g2 := New()
	g2.Reset(cfg)

	input := core.NewInputFrame()
	for i := 0; i < 100; i++ {
		input.Clear()
		if i == 20 {
			input.Set(core.ActionDown)
		}
		if i == 40 {
			input.Set(core.ActionLeft)
		}

		g1.Step(input)
		g2.Step(input)
	}

	if s1, s2 := g1.Snapshot(), g2.Snapshot(); s1 != s2 {
		t.Errorf("Snapshot mismatch:\n%+v\n%+v", s1, s2)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 42, ScreenW: 80, ScreenH: 24})

	if g.direction != core.DirRight {
		t.Fatalf("Expected initial direction right, got %v", g.direction)
	}

	input := core.NewInputFrame()
	input.Set(core.ActionLeft)
	g.Step(input)

	if g.nextDir == core.DirLeft {
		t.Error("Should not allow immediate reversal from right to left")
	}

	input.Clear()
	input.Set(core.ActionDown)
	g.Step(input)

	if g.nextDir != core.DirDown {
		t.Errorf("Expected nextDir to be down, got %v", g.nextDir)
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 999, ScreenW: 80, ScreenH: 24})

	for i := 0; i < 100; i++ {
		g.spawnFood()

		if g.isWall(g.food) {
			t.Errorf("Food spawned on wall at (%d, %d)", g.food.X, g.food.Y)
		}
		if g.isSnakeAt(g.food) {
			t.Errorf("Food spawned on snake at (%d, %d)", g.food.X, g.food.Y)
		}
	}
}

func TestWallCollision(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 789, ScreenW: 80, ScreenH: 24})

	g.snake = []core.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}}
	g.direction = core.DirUp
	g.nextDir = core.DirUp

	g.moveSnake()

	if !g.gameOver {
		t.Error("Game should be over after hitting wall")
	}
}

func TestSelfCollision(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 111, ScreenW: 80, ScreenH: 24})

	g.snake = []core.Point{
		{X: 5, Y: 5}, // Head
		{X: 5, Y: 6},
		{X: 6, Y: 6},
		{X: 6, Y: 5},
		{X: 6, Y: 4},
	}
	g.direction = core.DirRight
	g.nextDir = core.DirRight

	g.moveSnake()

	if !g.gameOver {
		t.Error("Game should be over after self collision")
	}
}

func TestChasingTailIsSafe(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 111, ScreenW: 80, ScreenH: 24})

	// A closed square: the head moves into the cell the tail leaves.
	g.snake = []core.Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}}
	g.food = core.Point{X: 20, Y: 10}
	g.direction = core.DirRight
	g.nextDir = core.DirRight

	g.moveSnake()

	if g.gameOver {
		t.Error("moving into the vacating tail should be allowed")
	}
}

func TestSnakeGrowthAndSpeedUp(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 222, ScreenW: 80, ScreenH: 24})
	g.score = FoodPerSpeedUp - 1

	initialLen := len(g.snake)
	head := g.snake[0]
	g.food = core.Point{X: head.X + 1, Y: head.Y}

	g.moveSnake()

	if len(g.snake) != initialLen+1 {
		t.Errorf("Snake should grow by 1 after eating food, got %d vs %d", len(g.snake), initialLen+1)
	}
	if g.score != FoodPerSpeedUp {
		t.Errorf("Score = %d, want %d", g.score, FoodPerSpeedUp)
	}
	if g.moveEveryTicks != StartMoveTicks-1 {
		t.Errorf("moveEveryTicks = %d, want %d", g.moveEveryTicks, StartMoveTicks-1)
	}
}

func TestBestScoreSaved(t *testing.T) {
	prefs := memPrefs{}
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24, Prefs: prefs})
	g.score = 12
	g.snake = []core.Point{{X: 1, Y: 1}, {X: 2, Y: 1}}
	g.nextDir = core.DirUp
	g.direction = core.DirUp

	g.moveSnake()

	if got := core.LoadBest(prefs, BestKey); got != 12 {
		t.Errorf("best = %d, want 12", got)
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 333, ScreenW: 10, ScreenH: 5})

	if !g.tooSmall {
		t.Error("Game should detect window is too small")
	}
	if st := g.Step(core.NewInputFrame()).State; st.GameOver {
		t.Error("a small window pauses the game, it does not end it")
	}

	screen := core.NewScreen(10, 5)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too") {
		t.Error("small window message should render")
	}
}

func TestRender(t *testing.T) {
	cfg := core.RuntimeConfig{Seed: 444, ScreenW: 80, ScreenH: 24}
	g := New()
	g.Reset(cfg)

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Snake") {
		t.Error("HUD should contain 'Snake'")
	}
	head := g.snake[0]
	if screen.Get(head.X, head.Y+hudHeight) != HeadChar {
		t.Error("head should be drawn below the HUD")
	}
	if screen.Get(0, hudHeight) != WallChar {
		t.Error("arena border missing")
	}
}
