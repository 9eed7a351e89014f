package core

// Action represents a semantic game action, abstracted from physical key presses.
// Keyboard keys and virtual pad buttons both resolve to actions.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow, swipe up
	ActionDown           // S, Down arrow, swipe down
	ActionLeft           // A, Left arrow, swipe left
	ActionRight          // D, Right arrow, swipe right
	ActionJump           // Space - primary action (jump, flap, fire, spin)
	ActionDuck           // X, Shift - secondary action (duck, brake, block)
	ActionConfirm        // Enter
	ActionBack           // Esc - leave the game
	ActionRestart        // R - restart after game over
	ActionPause          // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionDuck:
		return "Duck"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Direction is a movement direction carried by a Move intent.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Action returns the frame action a direction maps to.
func (d Direction) Action() Action {
	switch d {
	case DirUp:
		return ActionUp
	case DirDown:
		return ActionDown
	case DirLeft:
		return ActionLeft
	case DirRight:
		return ActionRight
	default:
		return ActionNone
	}
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// IntentKind tags the variant held by an Intent.
type IntentKind int

const (
	IntentMove    IntentKind = iota // Dir is set
	IntentAction                    // Action is set
	IntentPointer                   // X, Y are set (click/tap in canvas cells)
)

// Phase distinguishes press from release.
type Phase int

const (
	Press Phase = iota
	Release
)

// Intent is one input event, independent of the physical source.
// Keyboard handlers and the virtual pad publish intents; modules subscribe.
type Intent struct {
	Kind   IntentKind
	Phase  Phase
	Dir    Direction
	Action Action
	X, Y   int
}

// Move returns a Move intent.
func Move(d Direction, p Phase) Intent {
	return Intent{Kind: IntentMove, Phase: p, Dir: d}
}

// Act returns an Action intent.
func Act(a Action, p Phase) Intent {
	return Intent{Kind: IntentAction, Phase: p, Action: a}
}

// Pointer returns a pointer intent at canvas cell (x, y).
func Pointer(x, y int) Intent {
	return Intent{Kind: IntentPointer, Phase: Press, X: x, Y: y}
}

// WithPhase returns a copy of the intent with the given phase.
func (in Intent) WithPhase(p Phase) Intent {
	in.Phase = p
	return in
}

// FrameAction returns the frame action for Move and Action intents.
func (in Intent) FrameAction() Action {
	switch in.Kind {
	case IntentMove:
		return in.Dir.Action()
	case IntentAction:
		return in.Action
	default:
		return ActionNone
	}
}

// InputFrame is the input state seen by a game during one simulation tick.
// An action counts as active if it was pressed during the tick (edge) or is
// still held. Edges survive a release within the same tick, so a keyboard
// press+release pair is never lost.
type InputFrame struct {
	pressed map[Action]bool
	held    map[Action]bool
	points  []Point
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		pressed: make(map[Action]bool),
		held:    make(map[Action]bool),
	}
}

// Set marks an action as pressed for this frame.
func (f *InputFrame) Set(a Action) {
	f.ensure()
	f.pressed[a] = true
}

// Apply folds an intent into the frame.
func (f *InputFrame) Apply(in Intent) {
	f.ensure()
	if in.Kind == IntentPointer {
		f.points = append(f.points, Point{X: in.X, Y: in.Y})
		return
	}
	a := in.FrameAction()
	if a == ActionNone {
		return
	}
	if in.Phase == Press {
		f.pressed[a] = true
		f.held[a] = true
		return
	}
	delete(f.held, a)
}

// Has returns true if the action was pressed this frame or is held.
func (f InputFrame) Has(a Action) bool {
	return f.pressed[a] || f.held[a]
}

// Pressed returns true only if the action was pressed during this frame.
// Games use it for one-shot actions (pause toggles, rotations).
func (f InputFrame) Pressed(a Action) bool {
	return f.pressed[a]
}

// Held returns true if the action is currently held down.
func (f InputFrame) Held(a Action) bool {
	return f.held[a]
}

// Points returns the pointer positions reported during this frame.
func (f InputFrame) Points() []Point {
	return f.points
}

// EndTick drops the per-tick edges and pointer events; held actions remain.
func (f *InputFrame) EndTick() {
	clear(f.pressed)
	f.points = f.points[:0]
}

// Clear resets everything, including held actions.
func (f *InputFrame) Clear() {
	clear(f.pressed)
	clear(f.held)
	f.points = f.points[:0]
}

func (f *InputFrame) ensure() {
	if f.pressed == nil {
		f.pressed = make(map[Action]bool)
	}
	if f.held == nil {
		f.held = make(map[Action]bool)
	}
}
