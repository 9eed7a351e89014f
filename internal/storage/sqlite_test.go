package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// backends runs fn against both the SQLite store and the memory store.
func backends(t *testing.T, fn func(t *testing.T, b Backend)) {
	t.Run("sqlite", func(t *testing.T) { fn(t, openTestStore(t)) })
	t.Run("memory", func(t *testing.T) { fn(t, NewMemory()) })
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/.arcade/scores.db")
	if err != nil {
		t.Fatalf("ExpandPath() failed: %v", err)
	}
	if want := filepath.Join(home, ".arcade", "scores.db"); got != want {
		t.Errorf("ExpandPath() = %q, want %q", got, want)
	}
	if got, _ := ExpandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path changed: %q", got)
	}
}

func TestSaveAndRetrieve(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		for _, s := range []int{100, 50, 200} {
			if _, err := b.SaveScore("flappy", s); err != nil {
				t.Fatalf("SaveScore() failed: %v", err)
			}
		}
		b.SaveScore("dino", 500)

		scores, err := b.TopScores("flappy", 10)
		if err != nil {
			t.Fatalf("TopScores() failed: %v", err)
		}
		if len(scores) != 3 {
			t.Fatalf("Expected 3 scores, got %d", len(scores))
		}
		if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
			t.Errorf("Scores not sorted descending: %v", scores)
		}
		for _, s := range scores {
			if s.GameID != "flappy" {
				t.Errorf("Got score for %q", s.GameID)
			}
		}
	})
}

func TestTopScoresSortedAndTruncated(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		values := []int{5, 90, 12, 77, 3, 64, 150, 8, 42, 99, 1, 120, 33, 7}
		for _, v := range values {
			b.SaveScore("snake", v)
		}

		for _, limit := range []int{0, 10, 25} {
			scores, err := b.TopScores("snake", limit)
			if err != nil {
				t.Fatalf("TopScores() failed: %v", err)
			}
			if len(scores) != MaxHighScores {
				t.Errorf("limit %d: expected %d entries, got %d", limit, MaxHighScores, len(scores))
			}
			for i := 1; i < len(scores); i++ {
				if scores[i].Score > scores[i-1].Score {
					t.Errorf("limit %d: not descending at %d: %v", limit, i, scores)
				}
			}
			if scores[0].Score != 150 {
				t.Errorf("limit %d: best = %d, want 150", limit, scores[0].Score)
			}
		}

		scores, _ := b.TopScores("snake", 3)
		if len(scores) != 3 || scores[2].Score != 99 {
			t.Errorf("top 3 = %v", scores)
		}
	})
}

func TestHighScore(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		high, err := b.HighScore("flappy")
		if err != nil {
			t.Fatalf("HighScore() failed: %v", err)
		}
		if high != 0 {
			t.Errorf("Expected high score of 0 for empty game, got %d", high)
		}

		b.SaveScore("flappy", 100)
		b.SaveScore("flappy", 300)
		b.SaveScore("flappy", 200)

		if high, _ = b.HighScore("flappy"); high != 300 {
			t.Errorf("Expected high score of 300, got %d", high)
		}
	})
}

func TestClearScores(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		b.SaveScore("flappy", 100)
		b.SaveScore("flappy", 200)
		b.SaveScore("dino", 300)

		if err := b.ClearScores("flappy"); err != nil {
			t.Fatalf("ClearScores() failed: %v", err)
		}

		if scores, _ := b.TopScores("flappy", 10); len(scores) != 0 {
			t.Errorf("Expected 0 flappy scores after clear, got %d", len(scores))
		}
		if scores, _ := b.TopScores("dino", 10); len(scores) != 1 {
			t.Errorf("Dino scores should not be affected by clearing flappy")
		}
	})
}

func TestAllGameStats(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		b.SaveScore("pong", 10)
		b.SaveScore("pong", 30)
		b.SaveScore("tetris", 700)

		stats, err := b.AllGameStats()
		if err != nil {
			t.Fatalf("AllGameStats() failed: %v", err)
		}
		if len(stats) != 2 {
			t.Fatalf("Expected stats for 2 games, got %d", len(stats))
		}
		pong := stats["pong"]
		if pong.GamesCount != 2 || pong.HighScore != 30 || pong.AvgScore != 20 {
			t.Errorf("pong stats = %+v", pong)
		}
	})
}

func TestPrefsRoundTrip(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		var best int
		ok, err := b.Get("clickspeed_best", &best)
		if err != nil || ok {
			t.Fatalf("Get() on missing key = %v, %v", ok, err)
		}

		if err := b.Set("clickspeed_best", 42); err != nil {
			t.Fatalf("Set() failed: %v", err)
		}
		if err := b.Set("clickspeed_best", 57); err != nil {
			t.Fatalf("Set() overwrite failed: %v", err)
		}
		ok, err = b.Get("clickspeed_best", &best)
		if err != nil || !ok || best != 57 {
			t.Errorf("Get() = %d, %v, %v; want 57", best, ok, err)
		}

		board := [][]int{{2, 0}, {4, 8}}
		b.Set("gameState_2048", board)
		var got [][]int
		if ok, _ := b.Get("gameState_2048", &got); !ok || got[1][1] != 8 {
			t.Errorf("board round trip = %v", got)
		}

		keys, err := b.PrefKeys("gameState_")
		if err != nil || len(keys) != 1 || keys[0] != "gameState_2048" {
			t.Errorf("PrefKeys() = %v, %v", keys, err)
		}

		if err := b.Delete("clickspeed_best"); err != nil {
			t.Fatalf("Delete() failed: %v", err)
		}
		if ok, _ := b.Get("clickspeed_best", &best); ok {
			t.Error("key still present after Delete")
		}
	})
}

func TestPrefsDecodeError(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		b.Set("portal_dark", "yes")
		var dark bool
		if _, err := b.Get("portal_dark", &dark); err == nil {
			t.Error("expected decode error")
		}
	})
}

func TestOpenOrMemoryFallsBack(t *testing.T) {
	// A regular file where a directory is needed makes Open fail.
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	b := OpenOrMemory(filepath.Join(blocker, "scores.db"), nil)
	defer b.Close()
	if _, ok := b.(*Memory); !ok {
		t.Errorf("expected memory fallback, got %T", b)
	}
}
