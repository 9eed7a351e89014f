package session

import (
	"slices"
	"time"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// Scope groups registrations so they can be cancelled together.
// A module creates one scope, registers everything through it and closes
// it from its cleanup; that leaves nothing behind on the session.
// Registrations that end on their own (a fired timer, an explicit cancel)
// leave the scope too, so a long-lived scope only holds what is still live.
type Scope struct {
	s       *Session
	cancels map[int]core.CancelFunc
	next    int
	closed  bool
}

// NewScope returns an empty scope bound to the session.
func (s *Session) NewScope() *Scope {
	return &Scope{s: s, cancels: make(map[int]core.CancelFunc)}
}

// OnFrame registers a frame callback owned by the scope.
func (sc *Scope) OnFrame(fn FrameFunc) core.CancelFunc {
	return sc.keep(sc.reserve(), sc.s.OnFrame(fn))
}

// Subscribe registers an intent handler owned by the scope.
func (sc *Scope) Subscribe(fn IntentFunc) core.CancelFunc {
	return sc.keep(sc.reserve(), sc.s.Subscribe(fn))
}

// After schedules a deferred action owned by the scope.
// Scope implements core.Scheduler, so games can be handed a scope directly.
func (sc *Scope) After(d time.Duration, fn func()) core.CancelFunc {
	id := sc.reserve()
	return sc.keep(id, sc.s.After(d, func() {
		delete(sc.cancels, id)
		fn()
	}))
}

// Pending returns how many registrations the scope still holds.
func (sc *Scope) Pending() int {
	return len(sc.cancels)
}

// Close cancels every registration made through the scope, newest first.
func (sc *Scope) Close() {
	if sc.closed {
		return
	}
	sc.closed = true
	ids := make([]int, 0, len(sc.cancels))
	for id := range sc.cancels {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range slices.Backward(ids) {
		sc.cancels[id]()
	}
	clear(sc.cancels)
}

func (sc *Scope) reserve() int {
	sc.next++
	return sc.next
}

func (sc *Scope) keep(id int, cancel core.CancelFunc) core.CancelFunc {
	if sc.closed {
		cancel()
		return cancel
	}
	sc.cancels[id] = cancel
	return func() {
		delete(sc.cancels, id)
		cancel()
	}
}
