package t2048

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

func TestCompactMerge(t *testing.T) {
	tests := []struct {
		name     string
		input    [Size]int
		expected [Size]int
		score    int
	}{
		{"simple merge", [Size]int{2, 2, 0, 0}, [Size]int{4, 0, 0, 0}, 4},
		{"merge with trailing tile", [Size]int{2, 2, 2, 0}, [Size]int{4, 2, 0, 0}, 4},
		{"double merge", [Size]int{2, 2, 2, 2}, [Size]int{4, 4, 0, 0}, 8},
		{"no merge possible", [Size]int{2, 4, 8, 16}, [Size]int{2, 4, 8, 16}, 0},
		{"slide with gap", [Size]int{0, 0, 2, 2}, [Size]int{4, 0, 0, 0}, 4},
		{"slide with multiple gaps", [Size]int{2, 0, 0, 2}, [Size]int{4, 0, 0, 0}, 4},
		{"merged tile does not merge again", [Size]int{4, 4, 8, 0}, [Size]int{8, 8, 0, 0}, 8},
		{"empty row", [Size]int{}, [Size]int{}, 0},
		{"single tile", [Size]int{0, 4, 0, 0}, [Size]int{4, 0, 0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, score := compact(tt.input)
			if result != tt.expected {
				t.Errorf("compact(%v) = %v, want %v", tt.input, result, tt.expected)
			}
			if score != tt.score {
				t.Errorf("compact(%v) score = %d, want %d", tt.input, score, tt.score)
			}
		})
	}
}

func TestSlideDirections(t *testing.T) {
	board := Board{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	}

	tests := []struct {
		dir      core.Direction
		expected Board
		score    int
	}{
		{core.DirLeft, Board{
			{4, 0, 0, 0},
			{8, 0, 0, 0},
			{4, 4, 0, 0},
			{2, 0, 0, 0},
		}, 20},
		{core.DirRight, Board{
			{0, 0, 0, 4},
			{0, 0, 0, 8},
			{0, 0, 4, 4},
			{0, 0, 0, 2},
		}, 20},
		{core.DirUp, Board{
			{2, 4, 4, 4},
			{4, 0, 2, 0},
			{2, 0, 0, 0},
			{0, 0, 0, 0},
		}, 8},
		{core.DirDown, Board{
			{0, 0, 0, 0},
			{2, 0, 0, 0},
			{4, 0, 4, 0},
			{2, 4, 2, 4},
		}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			result, score, changed := Slide(board, tt.dir)
			if result != tt.expected {
				t.Errorf("Slide %s: got\n%v\nwant\n%v", tt.dir, result, tt.expected)
			}
			if score != tt.score {
				t.Errorf("Slide %s score = %d, want %d", tt.dir, score, tt.score)
			}
			if !changed {
				t.Errorf("Slide %s should report a change", tt.dir)
			}
		})
	}
}

func TestNoChangeNoSpawn(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	g.board = Board{{4, 2, 0, 0}}

	g.move(core.DirLeft)

	if g.board != (Board{{4, 2, 0, 0}}) {
		t.Error("a move that changes nothing should not spawn a tile")
	}
}

func TestCanMove(t *testing.T) {
	stuck := Board{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	}
	if CanMove(stuck) {
		t.Error("Board with no moves should be stuck")
	}

	withMerge := stuck
	withMerge[0][1] = 2
	if !CanMove(withMerge) {
		t.Error("Board with possible merge should be movable")
	}

	withEmpty := stuck
	withEmpty[2][2] = 0
	if !CanMove(withEmpty) {
		t.Error("Board with empty cell should be movable")
	}
}

func TestDeterministicSpawn(t *testing.T) {
	g1 := New()
	g1.Reset(testConfig(12345))
	g2 := New()
	g2.Reset(testConfig(12345))

	for _, a := range []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown} {
		in := core.NewInputFrame()
		in.Set(a)
		g1.Step(in)
		g2.Step(in)
	}

	if s1, s2 := g1.Snapshot(), g2.Snapshot(); s1 != s2 {
		t.Errorf("Same seed should produce same game:\n%+v\nvs\n%+v", s1, s2)
	}
	if len(EmptyCells(g1.board)) > Size*Size-2 {
		t.Error("a new game starts with two tiles")
	}
}

func TestSavedBoardResumes(t *testing.T) {
	prefs := memPrefs{}
	cfg := testConfig(7)
	cfg.Prefs = prefs

	g := New()
	g.Reset(cfg)
	g.board = Board{{2, 2, 0, 0}}
	g.score = 10
	g.move(core.DirLeft)

	resumed := New()
	resumed.Reset(cfg)
	if resumed.board != g.board || resumed.score != 14 {
		t.Errorf("resumed board=%v score=%d, want %v 14", resumed.board, resumed.score, g.board)
	}
}

func TestFinishedGameIsNotResumed(t *testing.T) {
	prefs := memPrefs{}
	cfg := testConfig(7)
	cfg.Prefs = prefs

	g := New()
	g.Reset(cfg)
	g.score = 500
	g.gameOver = true
	g.save()

	fresh := New()
	fresh.Reset(cfg)
	if fresh.score != 0 || len(EmptyCells(fresh.board)) != Size*Size-2 {
		t.Errorf("finished game should start fresh, score=%d", fresh.score)
	}
}

func TestWinOverlayAndContinue(t *testing.T) {
	g := New()
	g.Reset(testConfig(3))
	g.board = Board{{1024, 1024, 0, 0}}

	g.move(core.DirLeft)
	if !g.won || !g.showWin {
		t.Fatal("reaching 2048 should win")
	}

	left := core.NewInputFrame()
	left.Set(core.ActionLeft)
	before := g.board
	g.Step(left)
	if g.board != before {
		t.Error("moves are ignored while the win overlay is shown")
	}

	confirm := core.NewInputFrame()
	confirm.Set(core.ActionConfirm)
	g.Step(confirm)
	if g.showWin || g.State().GameOver {
		t.Error("Enter should dismiss the overlay and keep playing")
	}
}

func TestGameOverSavesBest(t *testing.T) {
	prefs := memPrefs{}
	cfg := testConfig(3)
	cfg.Prefs = prefs

	g := New()
	g.Reset(cfg)
	// Sliding left opens one cell that no spawned tile can merge from.
	g.board = Board{
		{0, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	}
	g.score = 300
	g.move(core.DirLeft)

	if !g.gameOver {
		t.Fatalf("board is stuck, game should be over:\n%v", g.board)
	}
	if got := core.LoadBest(prefs, BestKey); got != 300 {
		t.Errorf("best = %d, want 300", got)
	}
}

func TestMaxTile(t *testing.T) {
	if got := MaxTile(Board{{2, 0, 0, 0}, {0, 512, 0, 0}}); got != 512 {
		t.Errorf("MaxTile = %d, want 512", got)
	}
}

func TestRender(t *testing.T) {
	g := New()
	g.Reset(testConfig(5))
	g.board = Board{{2048, 0, 0, 0}}

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	boardX := (80 - boardW) / 2
	if screen.Get(boardX, hudHeight+1) != '┌' {
		t.Error("grid corner missing")
	}
	if screen.Get(boardX+1, hudHeight+2) != '2' {
		t.Errorf("tile missing, row: %q", screen.Row(hudHeight+2))
	}
}
