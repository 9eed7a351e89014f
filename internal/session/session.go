// Package session is the runtime a game module lives in while it is mounted.
// A Session owns the canvas, the intent bus, the frame callbacks and every
// deferred action the module schedules. All registrations return a cancel
// token; closing the session cancels whatever the module left behind, so no
// callback can fire into an orphaned game.
//
// A Session is driven by a single goroutine (the host's update loop) and is
// not safe for concurrent use.
package session

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// FrameFunc is called once per host tick with the simulated elapsed time.
// A module updates its state and then redraws the canvas inside it.
type FrameFunc func(dt time.Duration)

// IntentFunc receives intents published to the session.
type IntentFunc func(in core.Intent)

// ScoreRecorder persists a finished round's score.
type ScoreRecorder interface {
	SaveScore(gameID string, score int) (int64, error)
}

// Options configures a new Session.
type Options struct {
	ID     string
	GameID string
	Canvas *core.Screen
	Config core.RuntimeConfig
	Scores ScoreRecorder
	Logger *log.Logger
}

// Stats counts live registrations.
type Stats struct {
	Frames        int
	Subscriptions int
	Timers        int
}

// Zero reports whether nothing is registered.
func (st Stats) Zero() bool {
	return st.Frames == 0 && st.Subscriptions == 0 && st.Timers == 0
}

type timer struct {
	due time.Duration
	fn  func()
}

// Session is the handle a game module receives on construction.
type Session struct {
	id     string
	gameID string
	canvas *core.Screen
	cfg    core.RuntimeConfig
	scores ScoreRecorder
	logger *log.Logger

	now    time.Duration // virtual clock, advanced by Advance
	nextID int

	frames   handlers[FrameFunc]
	subs     handlers[IntentFunc]
	timers   map[int]*timer
	teardown []core.CancelFunc
	closed   bool
}

// New creates a session. The canvas defaults to the configured screen size.
func New(opts Options) *Session {
	canvas := opts.Canvas
	if canvas == nil {
		canvas = core.NewScreen(opts.Config.ScreenW, opts.Config.ScreenH)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		id:     opts.ID,
		gameID: opts.GameID,
		canvas: canvas,
		cfg:    opts.Config,
		scores: opts.Scores,
		logger: logger,
		frames: newHandlers[FrameFunc](),
		subs:   newHandlers[IntentFunc](),
		timers: make(map[int]*timer),
	}
	s.cfg.ScreenW = canvas.Width()
	s.cfg.ScreenH = canvas.Height()
	s.cfg.Scheduler = s
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// GameID returns the id of the game this session was created for.
func (s *Session) GameID() string { return s.gameID }

// Canvas returns the drawing surface.
func (s *Session) Canvas() *core.Screen { return s.canvas }

// Config returns the runtime config, with the session as its Scheduler.
func (s *Session) Config() core.RuntimeConfig { return s.cfg }

// Logger returns the session logger.
func (s *Session) Logger() *log.Logger { return s.logger }

// Now returns the session's virtual clock.
func (s *Session) Now() time.Duration { return s.now }

// Closed reports whether the session has been torn down.
func (s *Session) Closed() bool { return s.closed }

// OnFrame registers a per-tick callback. Callbacks run in registration order.
func (s *Session) OnFrame(fn FrameFunc) core.CancelFunc {
	if s.closed {
		return func() {}
	}
	id := s.allocID()
	s.frames.add(id, fn)
	return func() { s.frames.remove(id) }
}

// Subscribe registers an intent handler.
func (s *Session) Subscribe(fn IntentFunc) core.CancelFunc {
	if s.closed {
		return func() {}
	}
	id := s.allocID()
	s.subs.add(id, fn)
	return func() { s.subs.remove(id) }
}

// After schedules fn to run once the virtual clock has advanced by d.
// It implements core.Scheduler.
func (s *Session) After(d time.Duration, fn func()) core.CancelFunc {
	if s.closed {
		return func() {}
	}
	id := s.allocID()
	s.timers[id] = &timer{due: s.now + d, fn: fn}
	return func() { delete(s.timers, id) }
}

// Track adds a cancel func to the session's teardown list. It runs on
// Close even if the module never calls it.
func (s *Session) Track(cancel core.CancelFunc) {
	if cancel == nil {
		return
	}
	if s.closed {
		cancel()
		return
	}
	s.teardown = append(s.teardown, cancel)
}

// Publish delivers an intent to every subscriber.
func (s *Session) Publish(in core.Intent) {
	if s.closed {
		return
	}
	for _, id := range s.subs.snapshot() {
		if fn, ok := s.subs.get(id); ok {
			fn(in)
		}
	}
}

// Advance moves the virtual clock forward, fires due timers, then runs
// every frame callback.
func (s *Session) Advance(dt time.Duration) {
	if s.closed {
		return
	}
	s.now += dt
	s.fireTimers()

	for _, id := range s.frames.snapshot() {
		if s.closed {
			return
		}
		if fn, ok := s.frames.get(id); ok {
			fn(dt)
		}
	}
}

// fireTimers runs due timers ordered by due time, then by scheduling order.
func (s *Session) fireTimers() {
	for !s.closed {
		due := -1
		for id, t := range s.timers {
			if t.due > s.now {
				continue
			}
			if due == -1 || t.due < s.timers[due].due || (t.due == s.timers[due].due && id < due) {
				due = id
			}
		}
		if due == -1 {
			return
		}
		t := s.timers[due]
		delete(s.timers, due)
		t.fn()
	}
}

// Pending returns the registrations still alive.
func (s *Session) Pending() Stats {
	return Stats{
		Frames:        s.frames.len(),
		Subscriptions: s.subs.len(),
		Timers:        len(s.timers),
	}
}

// RecordScore saves a finished round's score. Failures are logged only.
func (s *Session) RecordScore(score int) {
	if s.scores == nil || s.closed {
		return
	}
	if _, err := s.scores.SaveScore(s.gameID, score); err != nil {
		s.logger.Warn("could not save score", "game", s.gameID, "error", err)
	}
}

// Close tears the session down: runs the tracked teardown list in reverse
// order and drops every remaining frame callback, subscription and timer.
// It returns what was still registered when Close began. Close is idempotent.
func (s *Session) Close() Stats {
	if s.closed {
		return Stats{}
	}
	leaked := s.Pending()
	s.closed = true

	for i := len(s.teardown) - 1; i >= 0; i-- {
		s.teardown[i]()
	}
	s.teardown = nil
	s.frames = newHandlers[FrameFunc]()
	s.subs = newHandlers[IntentFunc]()
	clear(s.timers)
	return leaked
}

func (s *Session) allocID() int {
	s.nextID++
	return s.nextID
}

// handlers keeps callbacks in registration order and tolerates removal
// while a snapshot is being iterated.
type handlers[T any] struct {
	ids []int
	fns map[int]T
}

func newHandlers[T any]() handlers[T] {
	return handlers[T]{fns: make(map[int]T)}
}

func (h *handlers[T]) add(id int, fn T) {
	h.ids = append(h.ids, id)
	h.fns[id] = fn
}

func (h *handlers[T]) remove(id int) {
	if _, ok := h.fns[id]; !ok {
		return
	}
	delete(h.fns, id)
	if i := slices.Index(h.ids, id); i >= 0 {
		h.ids = slices.Delete(h.ids, i, i+1)
	}
}

func (h *handlers[T]) get(id int) (T, bool) {
	fn, ok := h.fns[id]
	return fn, ok
}

func (h *handlers[T]) snapshot() []int {
	return slices.Clone(h.ids)
}

func (h *handlers[T]) len() int {
	return len(h.fns)
}
