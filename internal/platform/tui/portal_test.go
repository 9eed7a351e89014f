package tui

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/arcade-portal/internal/core"
	_ "github.com/vovakirdan/arcade-portal/internal/games/all"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/shell"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

func newPortal(t *testing.T, store storage.Backend, route string) *PortalModel {
	t.Helper()
	m := NewPortalModel(Options{
		Store:         store,
		Config:        core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1},
		CompactWidth:  40,
		Dark:          true,
		Route:         route,
		ScreenshotDir: t.TempDir(),
	})
	t.Cleanup(m.Close)
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *PortalModel, keys ...string) {
	for _, k := range keys {
		m.Update(keyMsg(k))
	}
}

func click(m *PortalModel, x, y int) {
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func stubID(t *testing.T, m *PortalModel) string {
	t.Helper()
	for _, e := range m.Shell().Catalog().Entries() {
		if !registry.Exists(e.ID) {
			return e.ID
		}
	}
	t.Skip("catalog has no coming-soon entries")
	return ""
}

func TestInitialRouteOpensGame(t *testing.T) {
	m := newPortal(t, storage.NewMemory(), "#snake")

	assert.Equal(t, shell.ViewGame, m.Shell().View())
	assert.Equal(t, "snake", m.Host().Mounted())
	assert.Equal(t, "#snake", m.Shell().Route())
}

func TestUnknownRouteStaysHome(t *testing.T) {
	m := newPortal(t, storage.NewMemory(), "#no-such-game")

	assert.Equal(t, shell.ViewHome, m.Shell().View())
	assert.Empty(t, m.Host().Mounted())
}

func TestHomeNavigationOpensHighlighted(t *testing.T) {
	m := newPortal(t, storage.NewMemory(), "")
	want := m.Shell().Visible()[1].ID

	press(m, "down", "enter")

	assert.Equal(t, shell.ViewGame, m.Shell().View())
	assert.Equal(t, want, m.Host().Mounted())
}

func TestCategoryCycle(t *testing.T) {
	m := newPortal(t, storage.NewMemory(), "")
	cats := m.Shell().Catalog().Categories()
	require.Greater(t, len(cats), 1)

	press(m, "tab")
	assert.Equal(t, cats[1].ID, m.Shell().Category())

	press(m, "left", "left")
	assert.Equal(t, cats[len(cats)-1].ID, m.Shell().Category())
}

func TestThemeTogglePersists(t *testing.T) {
	store := storage.NewMemory()
	m := newPortal(t, store, "")
	require.True(t, m.Shell().Dark())

	press(m, "t")
	assert.False(t, m.Shell().Dark())
	assert.Equal(t, "light", m.theme.Name)

	var dark bool
	ok, err := store.Get(shell.DarkKey, &dark)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, dark)

	again := newPortal(t, store, "")
	assert.False(t, again.Shell().Dark(), "saved theme should win over the default")
}

func TestEscReturnsHome(t *testing.T) {
	m := newPortal(t, storage.NewMemory(), "#pong")
	sess := m.Host().Session()
	require.NotNil(t, sess)

	press(m, "esc")

	assert.Equal(t, shell.ViewHome, m.Shell().View())
	assert.Empty(t, m.Host().Mounted())
	assert.True(t, sess.Closed())
	assert.True(t, sess.Pending().Zero())
}

func TestRoutePrompt(t *testing.T) {
	m := newPortal(t, storage.NewMemory(), "")

	press(m, ":")
	require.True(t, m.prompt.Focused())
	press(m, "#pong", "enter")

	assert.False(t, m.prompt.Focused())
	assert.Equal(t, "pong", m.Host().Mounted())

	// Cancelled prompts change nothing.
	press(m, ":", "#snake", "esc")
	assert.Equal(t, "pong", m.Host().Mounted())
}

func TestRoutePromptEmptyGoesHome(t *testing.T) {
	m := newPortal(t, storage.NewMemory(), "#snake")

	press(m, ":", "enter")

	assert.Equal(t, shell.ViewHome, m.Shell().View())
}

func TestTickAdvancesMountedGame(t *testing.T) {
	m := newPortal(t, storage.NewMemory(), "#snake")

	_, cmd := m.Update(TickMsg{})

	assert.NotNil(t, cmd, "tick loop should continue")
	assert.Equal(t, m.tick, m.Host().Session().Now())
}

func TestGameKeysReachSession(t *testing.T) {
	m := newPortal(t, storage.NewMemory(), "#snake")
	var got []core.Intent
	cancel := m.Host().Session().Subscribe(func(in core.Intent) { got = append(got, in) })
	defer cancel()

	press(m, "w")

	require.Len(t, got, 2)
	assert.Equal(t, core.Move(core.DirUp, core.Press), got[0])
	assert.Equal(t, core.Release, got[1].Phase)
}

func TestMouseClickOpensEntry(t *testing.T) {
	m := newPortal(t, storage.NewMemory(), "")
	want := m.Shell().Visible()[2].ID

	click(m, 4, listTop+2)

	assert.Equal(t, shell.ViewGame, m.Shell().View())
	assert.Equal(t, want, m.Host().Mounted())
}

func TestMouseClickTab(t *testing.T) {
	m := newPortal(t, storage.NewMemory(), "")
	spans := tabSpans(m.Shell().Catalog().Categories())
	require.Greater(t, len(spans), 2)

	click(m, spans[2].start, tabRow)

	assert.Equal(t, spans[2].id, m.Shell().Category())
	assert.Equal(t, 0, m.Shell().Cursor())
}

func TestMouseWheelMovesCursor(t *testing.T) {
	m := newPortal(t, storage.NewMemory(), "")

	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp})

	assert.Equal(t, 1, m.Shell().Cursor())
}

func TestComingSoonRouteMountsStub(t *testing.T) {
	m := newPortal(t, storage.NewMemory(), "")
	id := stubID(t, m)

	press(m, ":", "#"+id, "enter")

	assert.Equal(t, shell.ViewGame, m.Shell().View())
	assert.Equal(t, id, m.Host().Mounted())
	assert.NoError(t, m.Host().Err())
	assert.NotEmpty(t, m.View())
}

func TestScreenshot(t *testing.T) {
	m := newPortal(t, storage.NewMemory(), "#snake")

	press(m, "ctrl+s")

	require.True(t, strings.HasPrefix(m.flash, "saved "), "flash: %q", m.flash)
	path := strings.TrimPrefix(m.flash, "saved ")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, m.Host().Frame().String(), string(data))
}

func TestResizeKeepsGameRunning(t *testing.T) {
	m := newPortal(t, storage.NewMemory(), "#snake")
	sess := m.Host().Session()

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Same(t, sess, m.Host().Session(), "resize should not remount")
	assert.Equal(t, 100, sess.Canvas().Width())
	assert.Equal(t, 29, sess.Canvas().Height())
	assert.False(t, m.Host().Compact())

	m.Update(tea.WindowSizeMsg{Width: 30, Height: 30})
	assert.True(t, m.Host().Compact(), "narrow viewport should show the pad")
}

func TestResizeKeepsRoundScore(t *testing.T) {
	m := newPortal(t, storage.NewMemory(), "#tetris")

	press(m, " ") // Hard drop scores two points per row
	m.Update(TickMsg{})
	canvas := m.Host().Session().Canvas().String()
	require.NotContains(t, canvas, "Score: 0 ")

	m.Update(tea.WindowSizeMsg{Width: 81, Height: 24})
	m.Update(TickMsg{})

	assert.NotContains(t, m.Host().Session().Canvas().String(), "Score: 0 ",
		"a one-column resize should not restart the round")
}

func TestQuitUnmounts(t *testing.T) {
	m := newPortal(t, storage.NewMemory(), "#snake")

	_, cmd := m.Update(keyMsg("ctrl+c"))

	require.NotNil(t, cmd)
	assert.Empty(t, m.Host().Mounted())
	assert.Empty(t, m.View())
}

func TestScoreboardFromHome(t *testing.T) {
	store := storage.NewMemory()
	_, err := store.SaveScore("snake", 42)
	require.NoError(t, err)
	m := newPortal(t, store, "")

	press(m, "S")
	require.NotNil(t, m.scores)
	m.scores.Select("snake")
	assert.Contains(t, m.View(), "42")

	press(m, "esc")
	assert.Nil(t, m.scores)
	assert.Equal(t, shell.ViewHome, m.Shell().View())
}

func TestScoreboardPlay(t *testing.T) {
	m := newPortal(t, storage.NewMemory(), "")

	press(m, "S")
	require.NotNil(t, m.scores)
	want := m.scores.Current()
	press(m, "enter")

	assert.Nil(t, m.scores)
	assert.Equal(t, want, m.Host().Mounted())
}

func TestHomeView(t *testing.T) {
	m := newPortal(t, storage.NewMemory(), "")
	view := m.View()

	assert.Contains(t, view, "A R C A D E")
	for _, c := range m.Shell().Catalog().Categories() {
		assert.Contains(t, view, c.Title)
	}
	assert.Contains(t, view, m.Shell().Visible()[0].Title)
}

func TestGameViewHasStatusLine(t *testing.T) {
	m := newPortal(t, storage.NewMemory(), "#pong")
	lines := strings.Split(m.View(), "\n")

	assert.Len(t, lines, 24)
	assert.Contains(t, lines[len(lines)-1], "esc home")
}
