package storage

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// Backend is the persistence surface used by the portal. Store and Memory
// both implement it.
type Backend interface {
	core.Prefs
	SaveScore(gameID string, score int) (int64, error)
	TopScores(gameID string, limit int) ([]ScoreEntry, error)
	HighScore(gameID string) (int, error)
	ClearScores(gameID string) error
	AllGameStats() (map[string]GameStats, error)
	Delete(key string) error
	PrefKeys(prefix string) ([]string, error)
	Close() error
}

var (
	_ Backend = (*Store)(nil)
	_ Backend = (*Memory)(nil)
)

// OpenOrMemory opens the database at path, falling back to an in-memory
// store when it cannot be opened. Scores are then lost on exit.
func OpenOrMemory(path string, logger *log.Logger) Backend {
	store, err := Open(path)
	if err != nil {
		if logger != nil {
			logger.Warn("scores will not be saved", "error", err)
		}
		return NewMemory()
	}
	return store
}
