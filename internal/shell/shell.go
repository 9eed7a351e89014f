// Package shell is the portal's top-level state: which view is showing,
// the selected category and game, the dark flag and route handling.
// It holds no rendering code; the TUI and the SSH server draw from it.
package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-portal/internal/catalog"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/session"
)

// DarkKey is the prefs key for the dark-theme flag.
const DarkKey = "portal_dark"

// View is the portal screen currently showing.
type View int

const (
	ViewHome View = iota
	ViewGame
)

func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewGame:
		return "game"
	default:
		return "unknown"
	}
}

// Player mounts and unmounts games. *host.Host implements it.
type Player interface {
	Mount(id string) error
	Unmount() session.Stats
}

// Options configures a Shell.
type Options struct {
	Catalog *catalog.Catalog
	Player  Player
	// Known reports whether a route id can be opened. Defaults to ids in
	// the catalog or the registry.
	Known  func(id string) bool
	Prefs  core.Prefs
	Logger *log.Logger
	// Dark is the initial theme when prefs hold no saved choice.
	Dark bool
}

// Shell is the portal state machine. It is not safe for concurrent use.
type Shell struct {
	catalog *catalog.Catalog
	player  Player
	known   func(id string) bool
	prefs   core.Prefs
	logger  *log.Logger

	view     View
	category string
	dark     bool
	selected string
	cursor   int
}

// New creates a shell showing the home view with every category visible.
func New(opts Options) *Shell {
	s := &Shell{
		catalog:  opts.Catalog,
		player:   opts.Player,
		known:    opts.Known,
		prefs:    opts.Prefs,
		logger:   opts.Logger,
		category: catalog.All,
		dark:     opts.Dark,
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	if s.known == nil {
		s.known = func(id string) bool {
			return s.catalog.Has(id) || registry.Exists(id)
		}
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.prefs != nil {
		var dark bool
		if ok, err := s.prefs.Get(DarkKey, &dark); err != nil {
			s.logger.Warn("could not read theme preference", "error", err)
		} else if ok {
			s.dark = dark
		}
	}
	return s
}

// View returns the showing view.
func (s *Shell) View() View { return s.view }

// Category returns the selected category id.
func (s *Shell) Category() string { return s.category }

// Dark reports whether the dark theme is on.
func (s *Shell) Dark() bool { return s.dark }

// Selected returns the id of the open game, or "" on the home view.
func (s *Shell) Selected() string { return s.selected }

// Cursor returns the highlighted position in Visible.
func (s *Shell) Cursor() int { return s.cursor }

// Catalog returns the catalog the shell browses.
func (s *Shell) Catalog() *catalog.Catalog { return s.catalog }

// Visible returns the entries of the selected category.
func (s *Shell) Visible() []catalog.Entry {
	return s.catalog.Filter(s.category)
}

// SetCategory selects a category and resets the cursor.
func (s *Shell) SetCategory(id string) error {
	if id != catalog.All && s.catalog.CategoryIndex(id) < 0 {
		return fmt.Errorf("shell: unknown category %q", id)
	}
	s.category = id
	s.cursor = 0
	return nil
}

// NextCategory cycles the category by delta positions, wrapping around.
func (s *Shell) NextCategory(delta int) {
	cats := s.catalog.Categories()
	if len(cats) == 0 {
		return
	}
	i := s.catalog.CategoryIndex(s.category)
	if i < 0 {
		i = 0
	}
	i = ((i+delta)%len(cats) + len(cats)) % len(cats)
	s.category = cats[i].ID
	s.cursor = 0
}

// MoveCursor moves the highlight by delta, clamped to the visible list.
func (s *Shell) MoveCursor(delta int) {
	n := len(s.Visible())
	if n == 0 {
		s.cursor = 0
		return
	}
	s.cursor = core.Clamp(s.cursor+delta, 0, n-1)
}

// Highlighted returns the entry under the cursor.
func (s *Shell) Highlighted() (catalog.Entry, bool) {
	visible := s.Visible()
	if s.cursor < 0 || s.cursor >= len(visible) {
		return catalog.Entry{}, false
	}
	return visible[s.cursor], true
}

// ToggleDark flips the theme and saves the choice.
func (s *Shell) ToggleDark() {
	s.dark = !s.dark
	if s.prefs == nil {
		return
	}
	if err := s.prefs.Set(DarkKey, s.dark); err != nil {
		s.logger.Warn("could not save theme preference", "error", err)
	}
}

// Open switches to the game view and mounts id. The view changes even if
// mounting fails, so the error frame is shown.
func (s *Shell) Open(id string) error {
	s.selected = id
	s.view = ViewGame
	s.syncCursor(id)
	return s.player.Mount(id)
}

// OpenHighlighted opens the entry under the cursor.
func (s *Shell) OpenHighlighted() error {
	e, ok := s.Highlighted()
	if !ok {
		return nil
	}
	return s.Open(e.ID)
}

// Home unmounts the running game and returns to the catalog.
func (s *Shell) Home() {
	if s.view == ViewGame {
		s.player.Unmount()
	}
	s.view = ViewHome
	s.selected = ""
}

// Route returns the route for the current state: "#<id>" while a game is
// open, "" on the home view.
func (s *Shell) Route() string {
	if s.view != ViewGame {
		return ""
	}
	return "#" + s.selected
}

// HandleRoute applies a route change. A known game id opens that game
// (unless it is already open); anything else returns home.
func (s *Shell) HandleRoute(route string) error {
	id := ParseRoute(route)
	if id == "" || !s.known(id) {
		s.Home()
		return nil
	}
	if s.view == ViewGame && s.selected == id {
		return nil
	}
	return s.Open(id)
}

// ParseRoute extracts the game id from a route. It accepts "#id", a bare
// id, or a full URL with a fragment.
func ParseRoute(route string) string {
	route = strings.TrimSpace(route)
	if i := strings.LastIndexByte(route, '#'); i >= 0 {
		route = route[i+1:]
	} else if strings.Contains(route, "://") {
		return ""
	}
	return strings.TrimSpace(route)
}

// syncCursor moves the cursor onto id if it is visible.
func (s *Shell) syncCursor(id string) {
	for i, e := range s.Visible() {
		if e.ID == id {
			s.cursor = i
			return
		}
	}
}
