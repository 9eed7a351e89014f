package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// KeyMapper translates Bubble Tea key messages to intents and menu actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key pressed during play to an intent.
// Returns false for keys that mean nothing to a game.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.Intent, bool) {
	switch msg.String() {
	case "w", "up":
		return core.Move(core.DirUp, core.Press), true
	case "s", "down":
		return core.Move(core.DirDown, core.Press), true
	case "a", "left":
		return core.Move(core.DirLeft, core.Press), true
	case "d", "right":
		return core.Move(core.DirRight, core.Press), true
	case " ": // Space: jump, flap, fire, spin
		return core.Act(core.ActionJump, core.Press), true
	case "x", "shift+down", "c":
		return core.Act(core.ActionDuck, core.Press), true
	case "enter":
		return core.Act(core.ActionConfirm, core.Press), true
	case "p":
		return core.Act(core.ActionPause, core.Press), true
	case "r":
		return core.Act(core.ActionRestart, core.Press), true
	}
	return core.Intent{}, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionPrevCategory
	MenuActionNextCategory
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionTheme
	MenuActionScores
	MenuActionRoute
)

// MapKeyToMenuAction translates a key on the home view to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h", "shift+tab":
		return MenuActionPrevCategory
	case "d", "right", "l", "tab":
		return MenuActionNextCategory
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "t":
		return MenuActionTheme
	case "S", "ctrl+o":
		return MenuActionScores
	case ":", "#":
		return MenuActionRoute
	}
	return MenuActionNone
}
