// Package controls translates pointer gestures and virtual pad buttons into
// intents. The virtual pad is the touch overlay for compact clients: it never
// touches game state, it only publishes the same intents a keyboard would.
package controls

import "github.com/vovakirdan/arcade-portal/internal/core"

// SwipeMode selects which swipe directions a profile reacts to.
type SwipeMode int

const (
	SwipeNone SwipeMode = iota
	SwipeAll
	SwipeHorizontal
	SwipeVertical
)

// ButtonSpec describes one virtual button before layout.
type ButtonSpec struct {
	Label  string
	Intent core.Intent // press intent; the release is derived from it
	Right  bool        // placed in the right-hand cluster
}

// Profile is the control heuristic for one archetype.
type Profile struct {
	Buttons []ButtonSpec
	Swipe   SwipeMode
	// HoldSwipe keeps the swiped direction pressed until the finger lifts.
	// Without it a swipe is a single press+release.
	HoldSwipe bool
	// Tap is published for taps on the canvas; ActionNone means the tap is
	// only reported as a pointer intent.
	Tap  core.Action
	Hint string
}

func move(label string, d core.Direction) ButtonSpec {
	return ButtonSpec{Label: label, Intent: core.Move(d, core.Press)}
}

func act(label string, a core.Action) ButtonSpec {
	return ButtonSpec{Label: label, Intent: core.Act(a, core.Press), Right: true}
}

var (
	btnLeft  = move("◀", core.DirLeft)
	btnRight = move("▶", core.DirRight)
	btnUp    = move("▲", core.DirUp)
	btnDown  = move("▼", core.DirDown)
)

var profiles = map[core.Archetype]Profile{
	core.ArchetypeDirectional: {
		Buttons: []ButtonSpec{btnLeft, btnUp, btnDown, btnRight},
		Swipe:   SwipeAll,
		Hint:    "Swipe or use the arrows to move",
	},
	core.ArchetypePlatform: {
		Buttons:   []ButtonSpec{btnLeft, btnRight, act("JUMP", core.ActionJump)},
		Swipe:     SwipeHorizontal,
		HoldSwipe: true,
		Tap:       core.ActionJump,
		Hint:      "Hold arrows to run, tap to jump",
	},
	core.ArchetypeShooter: {
		Buttons:   []ButtonSpec{btnLeft, btnRight, act("FIRE", core.ActionJump)},
		Swipe:     SwipeHorizontal,
		HoldSwipe: true,
		Tap:       core.ActionJump,
		Hint:      "Drag to steer, tap to fire",
	},
	core.ArchetypeRacing: {
		Buttons: []ButtonSpec{btnLeft, btnRight, act("GAS", core.ActionUp), act("BRAKE", core.ActionDuck)},
		Swipe:   SwipeHorizontal,
		Hint:    "Swipe to change lanes",
	},
	core.ArchetypePaddle: {
		Buttons:   []ButtonSpec{btnUp, btnDown},
		Swipe:     SwipeVertical,
		HoldSwipe: true,
		Hint:      "Drag up and down to move the paddle",
	},
	core.ArchetypeTap: {
		Buttons: []ButtonSpec{act("TAP", core.ActionJump)},
		Tap:     core.ActionJump,
		Hint:    "Tap anywhere",
	},
	core.ArchetypeRunner: {
		Buttons: []ButtonSpec{act("JUMP", core.ActionJump), act("DUCK", core.ActionDuck)},
		Swipe:   SwipeVertical,
		Tap:     core.ActionJump,
		Hint:    "Tap to jump, swipe down to duck",
	},
	core.ArchetypeCombat: {
		Buttons: []ButtonSpec{
			btnLeft, btnUp, btnDown, btnRight,
			act("A", core.ActionJump), act("B", core.ActionDuck),
		},
		Swipe:     SwipeAll,
		HoldSwipe: true,
		Tap:       core.ActionJump,
		Hint:      "Arrows to move, A to attack, B to block",
	},
	core.ArchetypeContinuous: {
		Buttons:   []ButtonSpec{act("BOOST", core.ActionJump)},
		Swipe:     SwipeAll,
		HoldSwipe: true,
		Hint:      "Drag to steer",
	},
}

// ProfileFor returns the control profile for an archetype.
// Unknown archetypes fall back to directional controls.
func ProfileFor(a core.Archetype) Profile {
	if p, ok := profiles[a]; ok {
		return p
	}
	return profiles[core.ArchetypeDirectional]
}

// accepts reports whether the swipe mode reacts to direction d.
func (m SwipeMode) accepts(d core.Direction) bool {
	switch m {
	case SwipeAll:
		return d != core.DirNone
	case SwipeHorizontal:
		return d == core.DirLeft || d == core.DirRight
	case SwipeVertical:
		return d == core.DirUp || d == core.DirDown
	default:
		return false
	}
}
