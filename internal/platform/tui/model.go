package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-portal/internal/catalog"
	"github.com/vovakirdan/arcade-portal/internal/controls"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/host"
	"github.com/vovakirdan/arcade-portal/internal/shell"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

// DefaultScreenshotDir is where ctrl+s writes frames when no directory is
// configured.
const DefaultScreenshotDir = "~/.arcade/screenshots"

// flashTicks is how long a status message stays up.
const flashTicks = 180

// Options configures a PortalModel.
type Options struct {
	Store   storage.Backend
	Catalog *catalog.Catalog
	// Config is the runtime config handed to every mounted game. ScreenW
	// and ScreenH are the initial terminal size.
	Config       core.RuntimeConfig
	CompactWidth int
	Dark         bool
	Env          controls.Env
	// Route is opened on start, e.g. "#snake".
	Route         string
	ScreenshotDir string
	Logger        *log.Logger
}

// PortalModel is the Bubble Tea model for the whole portal: the catalog
// home view, the mounted game and the scoreboard.
type PortalModel struct {
	shell     *shell.Shell
	host      *host.Host
	store     storage.Backend
	catalog   *catalog.Catalog
	logger    *log.Logger
	keyMapper *KeyMapper
	theme     Theme

	tickRate int
	tick     time.Duration
	width    int
	height   int

	prompt   textinput.Model
	scores   *ScoreboardModel
	shotDir  string
	flash    string
	flashErr bool
	flashFor int
	quitting bool
}

// NewPortalModel wires a shell and a host over opts.Store and applies the
// initial route.
func NewPortalModel(opts Options) *PortalModel {
	cfg := opts.Config
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		cfg.ScreenW, cfg.ScreenH = 80, 24
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = DefaultScreenshotDir
	}

	width, height := cfg.ScreenW, cfg.ScreenH
	cfg.ScreenH = gameHeight(height)

	hopts := host.Options{
		Catalog:      opts.Catalog,
		Config:       cfg,
		Logger:       opts.Logger,
		CompactWidth: opts.CompactWidth,
		Env:          opts.Env,
	}
	sopts := shell.Options{
		Catalog: opts.Catalog,
		Logger:  opts.Logger,
		Dark:    opts.Dark,
	}
	// A nil Backend must stay a nil interface inside host and shell.
	if opts.Store != nil {
		hopts.Store = opts.Store
		sopts.Prefs = opts.Store
	}
	h := host.New(hopts)
	sopts.Player = h
	sh := shell.New(sopts)

	prompt := textinput.New()
	prompt.Prompt = ": "
	prompt.Placeholder = "#game-id"
	prompt.CharLimit = 128

	m := &PortalModel{
		shell:     sh,
		host:      h,
		store:     opts.Store,
		catalog:   opts.Catalog,
		logger:    opts.Logger,
		keyMapper: NewKeyMapper(),
		theme:     ThemeFor(sh.Dark()),
		tickRate:  cfg.TickRate,
		tick:      cfg.TickDuration(),
		width:     width,
		height:    height,
		prompt:    prompt,
		shotDir:   opts.ScreenshotDir,
	}
	if opts.Route != "" {
		m.open(sh.HandleRoute(opts.Route))
	}
	return m
}

// gameHeight leaves the bottom row for the status line.
func gameHeight(height int) int {
	return max(1, height-1)
}

// Shell returns the portal state machine.
func (m *PortalModel) Shell() *shell.Shell { return m.shell }

// Host returns the game host.
func (m *PortalModel) Host() *host.Host { return m.host }

// Close unmounts the running game.
func (m *PortalModel) Close() {
	m.host.Unmount()
}

// Init starts the tick loop.
func (m *PortalModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.tickRate), tea.SetWindowTitle("Arcade Portal"))
}

// Update handles messages and updates the model state.
func (m *PortalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(tea.MouseEvent(msg))
		return m, nil

	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	if m.prompt.Focused() {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m *PortalModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.prompt.Focused() {
		return m.handlePromptKey(msg)
	}

	if m.scores != nil {
		return m.handleScoresKey(msg)
	}

	if m.shell.View() == shell.ViewGame {
		return m.handleGameKey(msg)
	}
	return m.handleHomeKey(msg)
}

func (m *PortalModel) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.shell.Home()
		return m, nil
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case ":":
		return m, m.openPrompt()
	}

	if in, ok := m.keyMapper.MapKey(msg); ok {
		m.host.Key(in)
	}
	return m, nil
}

func (m *PortalModel) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		return m.quit()
	case MenuActionUp:
		m.shell.MoveCursor(-1)
	case MenuActionDown:
		m.shell.MoveCursor(1)
	case MenuActionPrevCategory:
		m.shell.NextCategory(-1)
	case MenuActionNextCategory:
		m.shell.NextCategory(1)
	case MenuActionSelect:
		m.open(m.shell.OpenHighlighted())
	case MenuActionTheme:
		m.shell.ToggleDark()
		m.theme = ThemeFor(m.shell.Dark())
	case MenuActionScores:
		sb := NewScoreboardModel(m.store, m.catalog, m.theme, m.width, m.height)
		if e, ok := m.shell.Highlighted(); ok {
			sb.Select(e.ID)
		}
		m.scores = &sb
	case MenuActionRoute:
		return m, m.openPrompt()
	}
	return m, nil
}

func (m *PortalModel) handleScoresKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		m.scores = nil
		return m, cmd
	}
	switch {
	case sb.IsQuitting():
		m.scores = nil
		return m.quit()
	case sb.IsGoingBack():
		m.scores = nil
	case sb.Play() != "":
		m.scores = nil
		m.open(m.shell.Open(sb.Play()))
	default:
		m.scores = &sb
	}
	return m, cmd
}

func (m *PortalModel) openPrompt() tea.Cmd {
	m.prompt.SetValue("")
	return m.prompt.Focus()
}

func (m *PortalModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompt.Blur()
		return m, nil
	case "enter":
		route := m.prompt.Value()
		m.prompt.Blur()
		m.open(m.shell.HandleRoute(route))
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleMouse routes clicks on the home view to tabs and entries, and
// everything on the game view to the host's pointer handling.
func (m *PortalModel) handleMouse(ev tea.MouseEvent) {
	if m.scores != nil || m.prompt.Focused() {
		return
	}

	if m.shell.View() == shell.ViewHome {
		switch {
		case ev.Button == tea.MouseButtonWheelUp:
			m.shell.MoveCursor(-1)
		case ev.Button == tea.MouseButtonWheelDown:
			m.shell.MoveCursor(1)
		case ev.Action == tea.MouseActionPress && ev.Button == tea.MouseButtonLeft:
			m.homeClick(ev.X, ev.Y)
		}
		return
	}

	var kind controls.PointerKind
	switch ev.Action {
	case tea.MouseActionPress:
		if ev.Button != tea.MouseButtonLeft {
			return
		}
		kind = controls.PointerDown
	case tea.MouseActionMotion:
		kind = controls.PointerMove
	case tea.MouseActionRelease:
		kind = controls.PointerUp
	default:
		return
	}
	m.host.Pointer(controls.PointerEvent{Kind: kind, X: ev.X, Y: ev.Y})
}

// handleResize processes window resize events. The mounted game stays
// mounted; games that can adapt keep their round, the others start a new
// one after their unfinished score is recorded.
func (m *PortalModel) handleResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.host.Resize(msg.Width, gameHeight(msg.Height))
	m.prompt.Width = max(10, msg.Width-4)
	if m.scores != nil {
		m.scores.resize(msg.Width, msg.Height)
	}
}

// handleTick advances the mounted game and ages the status message.
func (m *PortalModel) handleTick() (tea.Model, tea.Cmd) {
	if m.shell.View() == shell.ViewGame {
		m.host.Tick(m.tick)
	}
	if m.flashFor > 0 {
		m.flashFor--
		if m.flashFor == 0 {
			m.flash = ""
		}
	}
	return m, tickCmd(m.tickRate)
}

// open reports the outcome of opening a game. A module that failed to
// load still shows its error frame; the status line says why.
func (m *PortalModel) open(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, host.ErrModuleInit) {
		m.setFlash("game failed to load", true)
	} else {
		m.setFlash(err.Error(), true)
	}
	m.logger.Error("open failed", "route", m.shell.Route(), "error", err)
}

func (m *PortalModel) setFlash(msg string, isErr bool) {
	m.flash = msg
	m.flashErr = isErr
	m.flashFor = flashTicks
}

func (m *PortalModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.Close()
	return m, tea.Quit
}

// saveScreenshot writes the current game frame as plain text.
func (m *PortalModel) saveScreenshot() {
	frame := m.host.Frame()
	if frame == nil {
		return
	}
	path, err := m.writeScreenshot(frame)
	if err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		m.setFlash("screenshot failed", true)
		return
	}
	m.setFlash("saved "+path, false)
}

func (m *PortalModel) writeScreenshot(frame *core.Screen) (string, error) {
	dir, err := storage.ExpandPath(m.shotDir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create screenshot dir: %w", err)
	}
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.host.Mounted(), timestamp))
	if err := os.WriteFile(path, []byte(frame.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m *PortalModel) View() string {
	if m.quitting {
		return ""
	}
	if m.scores != nil {
		return m.scores.View()
	}
	if m.shell.View() == shell.ViewHome {
		return m.viewHome()
	}

	frame := m.host.Frame()
	if frame == nil {
		return m.statusLine()
	}
	return RenderScreen(frame, m.theme) + "\n" + m.statusLine()
}

// statusLine is the bottom row: the route prompt, a flash message or the
// current game's controls.
func (m *PortalModel) statusLine() string {
	if m.prompt.Focused() {
		return m.prompt.View()
	}
	if m.flash != "" {
		if m.flashErr {
			return m.theme.Error.Render(truncate(m.flash, m.width))
		}
		return m.theme.Accent.Render(truncate(m.flash, m.width))
	}
	if m.shell.View() != shell.ViewGame {
		return m.theme.Status.Render(truncate(fmt.Sprintf("%d games  |  %s theme", len(m.shell.Visible()), m.theme.Name), m.width))
	}

	title := m.host.Mounted()
	if e, ok := m.catalog.Lookup(title); ok {
		title = e.Emoji + " " + e.Title
	}
	line := fmt.Sprintf("%s  |  %s  |  esc home  ctrl+s shot  : route", title, m.host.Hint())
	return m.theme.Status.Render(truncate(line, m.width))
}

// Run starts the portal on the local terminal.
func Run(opts Options, progOpts ...tea.ProgramOption) error {
	model := NewPortalModel(opts)
	defer model.Close()

	progOpts = append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}, progOpts...)

	_, err := tea.NewProgram(model, progOpts...).Run()
	return err
}
