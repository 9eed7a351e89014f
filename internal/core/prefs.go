package core

// Prefs is a small key/value store for per-game blobs: best scores,
// saved boards, credits. Values are encoded as JSON by implementations
// and overwritten wholesale on every Set.
type Prefs interface {
	// Get decodes the value stored under key into dst.
	// Returns false if the key does not exist.
	Get(key string, dst any) (bool, error)

	// Set stores v under key, replacing any previous value.
	Set(key string, v any) error
}

// StateKey returns the prefs key for a game's saved state.
func StateKey(gameID string) string {
	return "gameState_" + gameID
}

// HighScoresKey returns the prefs key for a game's cached high-score list.
func HighScoresKey(gameID string) string {
	return "highScores_" + gameID
}

// LoadBest reads an integer best score; missing keys, nil prefs and
// decode errors all read as 0.
func LoadBest(p Prefs, key string) int {
	if p == nil {
		return 0
	}
	var best int
	if ok, err := p.Get(key, &best); err != nil || !ok {
		return 0
	}
	return best
}

// SaveBest stores score under key if it beats the stored best.
// Returns the resulting best and whether it changed.
func SaveBest(p Prefs, key string, score int) (int, bool) {
	best := LoadBest(p, key)
	if score <= best || p == nil {
		return best, false
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	p.Set(key, score)
	return score, true
}

// MaxHighScores is the length of a cached high-score list.
const MaxHighScores = 10

// HighScores reads the cached high-score list for a game, best first.
func HighScores(p Prefs, gameID string) []int {
	if p == nil {
		return nil
	}
	var list []int
	if ok, err := p.Get(HighScoresKey(gameID), &list); err != nil || !ok {
		return nil
	}
	return list
}

// PushHighScore inserts score into the cached list, keeping it sorted
// descending and at most MaxHighScores long. Returns the stored list.
func PushHighScore(p Prefs, gameID string, score int) []int {
	list := HighScores(p, gameID)
	i := 0
	for i < len(list) && list[i] >= score {
		i++
	}
	list = append(list, 0)
	copy(list[i+1:], list[i:])
	list[i] = score
	if len(list) > MaxHighScores {
		list = list[:MaxHighScores]
	}
	if p != nil {
		//nolint:errcheck // Best-effort save, game continues regardless
		p.Set(HighScoresKey(gameID), list)
	}
	return list
}
