package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Canvas width in characters
	ScreenH  int   // Canvas height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	// Difficulty is an optional preset name ("easy", "normal", "hard", "fixed").
	Difficulty string
	// ConfigDir is an optional directory holding per-game tuning YAML files.
	ConfigDir string

	// Scheduler runs deferred work scoped to the current session.
	// Nil when a game runs outside a session (tests).
	Scheduler Scheduler
	// Prefs is the key/value store for best scores and saved state.
	// Nil when persistence is unavailable.
	Prefs Prefs
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickDuration returns the wall time covered by one simulation tick.
func (c RuntimeConfig) TickDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// Ticks converts a duration to a number of ticks (at least 1).
func (c RuntimeConfig) Ticks(d time.Duration) int {
	return Max(1, int(d/c.TickDuration()))
}

// CancelFunc cancels a pending registration. Calling it twice is safe.
type CancelFunc func()

// Scheduler schedules deferred work. Every scheduled action returns a
// cancellation token; pending actions never outlive their session.
type Scheduler interface {
	After(d time.Duration, fn func()) CancelFunc
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
