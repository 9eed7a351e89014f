// Package host mounts game modules and drives the one that is running.
//
// At most one module is mounted at a time. Mounting always tears the
// previous module down first, then builds a fresh canvas and session for the
// new one. Input reaches the module only as intents published on its
// session; the virtual pad for compact clients is owned by the host and
// never touches game state directly.
package host

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/arcade-portal/internal/catalog"
	"github.com/vovakirdan/arcade-portal/internal/controls"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/session"
)

// ErrModuleInit is wrapped by Mount when a module fails to construct.
var ErrModuleInit = errors.New("module init failed")

// DefaultCompactWidth is the viewport width below which the pad is shown.
const DefaultCompactWidth = 60

// Store persists prefs and scores for mounted modules.
type Store interface {
	core.Prefs
	session.ScoreRecorder
}

// Options configures a Host.
type Options struct {
	// Lookup resolves game ids. Defaults to registry.Lookup.
	Lookup func(id string) registry.Factory
	// Catalog supplies archetypes for the virtual pad. Defaults to the
	// embedded catalog.
	Catalog *catalog.Catalog
	Store   Store
	Config  core.RuntimeConfig
	Logger  *log.Logger
	// CompactWidth is the compact-viewport threshold in columns.
	CompactWidth int
	Env          controls.Env
}

type mounted struct {
	id      string
	sess    *session.Session
	cleanup registry.Cleanup
	pad     *controls.Pad
	err     error
}

// Host owns the currently mounted module.
type Host struct {
	lookup       func(id string) registry.Factory
	catalog      *catalog.Catalog
	store        Store
	cfg          core.RuntimeConfig
	logger       *log.Logger
	compactWidth int

	env     controls.Env
	width   int
	height  int
	current *mounted
}

// New creates a host with nothing mounted.
func New(opts Options) *Host {
	h := &Host{
		lookup:       opts.Lookup,
		catalog:      opts.Catalog,
		store:        opts.Store,
		cfg:          opts.Config,
		logger:       opts.Logger,
		compactWidth: opts.CompactWidth,
		env:          opts.Env,
	}
	if h.lookup == nil {
		h.lookup = registry.Lookup
	}
	if h.catalog == nil {
		h.catalog = catalog.Default()
	}
	if h.logger == nil {
		h.logger = log.New(io.Discard)
	}
	if h.compactWidth <= 0 {
		h.compactWidth = DefaultCompactWidth
	}
	if h.cfg.TickRate <= 0 {
		h.cfg.TickRate = 60
	}
	h.width, h.height = h.cfg.ScreenW, h.cfg.ScreenH
	return h
}

// Mount tears down the current module and mounts id in its place.
//
// Construction failures (returned errors and panics alike) leave id mounted
// with an error frame on its canvas and a no-op teardown; the returned
// error wraps ErrModuleInit.
func (h *Host) Mount(id string) error {
	h.Unmount()

	compact := h.Compact()
	canvas := core.NewScreen(h.width, h.canvasHeight(compact))

	cfg := h.cfg
	if h.store != nil {
		cfg.Prefs = h.store
	}

	sid := uuid.NewString()
	logger := h.logger.With("game", id, "session", sid[:8])
	opts := session.Options{
		ID:     sid,
		GameID: id,
		Canvas: canvas,
		Config: cfg,
		Logger: logger,
	}
	if h.store != nil {
		opts.Scores = h.store
	}
	sess := session.New(opts)

	m := &mounted{id: id, sess: sess}
	m.pad = controls.NewPad(h.archetype(id), compact, sess.Publish)
	m.pad.Layout(canvas.Width(), canvas.Height())
	h.current = m

	cleanup, err := construct(h.lookup(id), sess)
	if err == nil && cleanup == nil {
		err = errors.New("module returned no cleanup")
	}
	if err != nil {
		sess.Close()
		m.err = err
		drawError(canvas, err)
		logger.Error("game failed to load", "error", err)
		return fmt.Errorf("host: mount %q: %w: %w", id, ErrModuleInit, err)
	}

	m.cleanup = cleanup
	logger.Debug("game mounted", "compact", compact, "width", canvas.Width(), "height", canvas.Height())
	return nil
}

// construct runs a factory, converting a panic into an error.
func construct(f registry.Factory, s *session.Session) (cleanup registry.Cleanup, err error) {
	defer func() {
		if r := recover(); r != nil {
			cleanup = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return f(s)
}

// Unmount runs the current module's cleanup and closes its session.
// It returns the registrations the cleanup left behind, which are
// cancelled regardless.
func (h *Host) Unmount() session.Stats {
	m := h.current
	if m == nil {
		return session.Stats{}
	}
	h.current = nil

	m.pad.ReleaseAll()
	if m.cleanup != nil {
		h.runCleanup(m)
	}

	leaked := m.sess.Close()
	if !leaked.Zero() {
		m.sess.Logger().Warn("cleanup left registrations behind",
			"frames", leaked.Frames,
			"subscriptions", leaked.Subscriptions,
			"timers", leaked.Timers,
		)
	}
	return leaked
}

func (h *Host) runCleanup(m *mounted) {
	defer func() {
		if r := recover(); r != nil {
			m.sess.Logger().Error("cleanup panicked", "panic", r)
		}
	}()
	m.cleanup()
}

// Mounted returns the id of the mounted module, or "".
func (h *Host) Mounted() string {
	if h.current == nil {
		return ""
	}
	return h.current.id
}

// Err returns the construction error of the mounted module, if any.
func (h *Host) Err() error {
	if h.current == nil {
		return nil
	}
	return h.current.err
}

// Session returns the mounted module's session, or nil.
func (h *Host) Session() *session.Session {
	if h.current == nil {
		return nil
	}
	return h.current.sess
}

// Hint returns the control hint for the mounted module.
func (h *Host) Hint() string {
	if h.current == nil {
		return ""
	}
	return h.current.pad.Hint()
}

// Publish delivers a raw intent to the mounted module.
func (h *Host) Publish(in core.Intent) {
	if h.current == nil {
		return
	}
	h.current.sess.Publish(in)
}

// Key publishes a keyboard intent. Terminals report key presses only, so a
// key becomes a press immediately followed by its release.
func (h *Host) Key(in core.Intent) {
	if in.Kind == core.IntentPointer {
		h.Publish(in)
		return
	}
	h.Publish(in.WithPhase(core.Press))
	h.Publish(in.WithPhase(core.Release))
}

// Pointer routes a mouse or touch event through the virtual pad.
func (h *Host) Pointer(ev controls.PointerEvent) {
	if h.current == nil {
		return
	}
	h.current.pad.Handle(ev)
}

// Tick advances the mounted module by dt.
func (h *Host) Tick(dt time.Duration) {
	if h.current == nil {
		return
	}
	h.current.sess.Advance(dt)
}

// Resize sets the viewport available to the game, including pad rows.
func (h *Host) Resize(width, height int) {
	h.width, h.height = core.Max(1, width), core.Max(1, height)
	h.relayout()
}

// SetEnv replaces the client environment used for compact detection.
// The viewport size always comes from Resize.
func (h *Host) SetEnv(env controls.Env) {
	h.env = env
	h.relayout()
}

// Compact reports whether the virtual pad is shown.
func (h *Host) Compact() bool {
	env := h.env
	env.Width, env.Height = h.width, h.height
	return controls.Compact(env, h.compactWidth)
}

func (h *Host) relayout() {
	m := h.current
	if m == nil {
		return
	}
	compact := h.Compact()
	if compact != m.pad.Visible() {
		m.pad.ReleaseAll()
		m.pad = controls.NewPad(h.archetype(m.id), compact, m.sess.Publish)
	}
	canvas := m.sess.Canvas()
	canvas.Resize(h.width, h.canvasHeight(compact))
	m.pad.Layout(canvas.Width(), canvas.Height())
	if m.err != nil {
		drawError(canvas, m.err)
	}
}

func (h *Host) canvasHeight(compact bool) int {
	if compact {
		return core.Max(1, h.height-controls.Height)
	}
	return h.height
}

func (h *Host) archetype(id string) core.Archetype {
	if e, ok := h.catalog.Lookup(id); ok {
		return e.Archetype
	}
	return core.ArchetypeDirectional
}

// Frame composes the canvas and the pad overlay into a new screen.
// Returns nil when nothing is mounted.
func (h *Host) Frame() *core.Screen {
	m := h.current
	if m == nil {
		return nil
	}
	canvas := m.sess.Canvas()
	height := canvas.Height()
	if m.pad.Visible() {
		height += controls.Height
	}
	out := core.NewScreen(canvas.Width(), height)
	out.Blit(canvas, 0, 0)
	m.pad.Render(out)
	return out
}

func drawError(dst *core.Screen, err error) {
	dst.Clear()
	msg := err.Error()
	if limit := dst.Width() - 4; limit > 3 && len([]rune(msg)) > limit {
		msg = string([]rune(msg)[:limit-3]) + "..."
	}
	dst.DrawMessage("Game Loading Error", msg)
	dst.DrawTextCenteredColor(dst.Height()-1, "Esc: back to the arcade", core.ColorGray)
}
