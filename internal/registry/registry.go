// Package registry maps game ids to module factories.
// Games register themselves in init() functions, allowing the platform
// to discover and mount games without hardcoded dependencies. Looking up an
// id that nobody registered yields a "coming soon" stub, never an error.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/session"
)

// Cleanup tears a mounted module down. It must cancel every frame callback,
// subscription and timer the module registered on its session.
type Cleanup func()

// Factory constructs a game module on a session and returns its cleanup.
// This is the one contract every module implements:
//
//   - initialize its own state
//   - subscribe to intents and register a frame callback on the session
//   - return a Cleanup that undoes all of the above
//
// A factory may fail by returning an error or by panicking; the host
// handles both.
type Factory func(s *session.Session) (Cleanup, error)

// Game is a tick-driven game. Most modules are written as a Game and
// adapted to the Factory contract with Loop.
type Game interface {
	// Reset initializes or resets the game state.
	// Called once at start and again when restarting after game over.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the canvas.
	// The canvas is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// Resizer is implemented by games that can adapt to a new canvas size in
// the middle of a round. Games without it start a new round on resize.
type Resizer interface {
	Resize(width, height int)
}

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a module factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if f == nil {
		panic(fmt.Sprintf("registry: nil factory for %q", id))
	}
	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
}

// RegisterGame registers a tick-driven game under id.
func RegisterGame(id string, newGame func() Game) {
	Register(id, Loop(newGame))
}

// Lookup returns the factory registered for id, or a coming-soon stub.
func Lookup(id string) Factory {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if ok {
		return f
	}
	return Stub(id)
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// IDs returns every registered id, sorted.
func IDs() []string {
	mu.RLock()
	defer mu.RUnlock()

	ids := make([]string, 0, len(factories))
	for id := range factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
