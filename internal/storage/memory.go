package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory is an in-process store with the same behavior as Store.
// It is used when the database cannot be opened and in tests.
type Memory struct {
	mu     sync.Mutex
	nextID int64
	scores []ScoreEntry
	prefs  map[string][]byte
	now    func() time.Time
}

// NewMemory creates an empty memory store.
func NewMemory() *Memory {
	return &Memory{
		prefs: make(map[string][]byte),
		now:   time.Now,
	}
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// SaveScore records a new score for the given game.
func (m *Memory) SaveScore(gameID string, score int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.scores = append(m.scores, ScoreEntry{
		ID:        m.nextID,
		GameID:    gameID,
		Score:     score,
		CreatedAt: m.now().UTC(),
	})
	return m.nextID, nil
}

// TopScores returns the best scores for a game, clamped to MaxHighScores.
func (m *Memory) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []ScoreEntry
	for _, e := range m.scores {
		if e.GameID == gameID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if limit = clampLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// HighScore returns the highest score for a game, or 0.
func (m *Memory) HighScore(gameID string) (int, error) {
	top, _ := m.TopScores(gameID, 1)
	if len(top) == 0 {
		return 0, nil
	}
	return top[0].Score, nil
}

// ClearScores deletes all scores for a game.
func (m *Memory) ClearScores(gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.scores[:0]
	for _, e := range m.scores {
		if e.GameID != gameID {
			kept = append(kept, e)
		}
	}
	m.scores = kept
	return nil
}

// AllGameStats aggregates scores per game.
func (m *Memory) AllGameStats() (map[string]GameStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := make(map[string]GameStats)
	totals := make(map[string]int)
	for _, e := range m.scores {
		st := stats[e.GameID]
		st.GameID = e.GameID
		st.GamesCount++
		if st.GamesCount == 1 || e.Score > st.HighScore {
			st.HighScore = e.Score
		}
		if e.CreatedAt.After(st.LastPlayed) {
			st.LastPlayed = e.CreatedAt
		}
		totals[e.GameID] += e.Score
		stats[e.GameID] = st
	}
	for id, st := range stats {
		st.AvgScore = float64(totals[id]) / float64(st.GamesCount)
		stats[id] = st
	}
	return stats, nil
}

// Get decodes the value stored under key into dst.
func (m *Memory) Get(key string, dst any) (bool, error) {
	m.mu.Lock()
	raw, ok := m.prefs[key]
	m.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("storage: cannot decode pref %q: %w", key, err)
	}
	return true, nil
}

// Set stores v under key, replacing any previous value.
func (m *Memory) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: cannot encode pref %q: %w", key, err)
	}
	m.mu.Lock()
	m.prefs[key] = raw
	m.mu.Unlock()
	return nil
}

// Delete removes a pref.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	delete(m.prefs, key)
	m.mu.Unlock()
	return nil
}

// PrefKeys lists stored pref keys with the given prefix, sorted.
func (m *Memory) PrefKeys(prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var keys []string
	for k := range m.prefs {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
