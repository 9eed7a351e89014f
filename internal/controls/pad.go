package controls

import (
	"unicode/utf8"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// Height is the number of rows the pad overlay occupies below the canvas.
const Height = 3

// Swipe thresholds in cells. Terminal cells are roughly twice as tall as
// they are wide, so vertical swipes need fewer rows.
const (
	SwipeCols = 3
	SwipeRows = 2
)

// PointerKind is the phase of a pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

// PointerEvent is a mouse or touch event in host coordinates: the canvas
// starts at (0, 0) and the pad sits directly below it.
type PointerEvent struct {
	Kind PointerKind
	X, Y int
}

// Button is a laid-out virtual button.
type Button struct {
	Label  string
	Intent core.Intent
	Rect   core.Rect
}

type gesture struct {
	start   core.Point
	dir     core.Direction // direction currently held by a hold-swipe
	swiped  bool
	touched bool
}

// Pad turns pointer events into intents for one mounted game.
// Button presses publish the button's intent with Press and the matching
// Release when the pointer lifts. Drags on the canvas become Move intents
// and short taps become the profile's tap action plus a Pointer intent.
type Pad struct {
	profile Profile
	publish func(core.Intent)
	visible bool

	canvas  core.Rect
	area    core.Rect
	buttons []Button

	held    map[int]bool
	gesture *gesture
}

// NewPad creates a pad for an archetype. publish receives every intent the
// pad produces. When visible is false only canvas gestures are handled.
func NewPad(a core.Archetype, visible bool, publish func(core.Intent)) *Pad {
	return &Pad{
		profile: ProfileFor(a),
		publish: publish,
		visible: visible,
		held:    make(map[int]bool),
	}
}

// Visible reports whether the overlay is drawn and takes up rows.
func (p *Pad) Visible() bool { return p.visible }

// Hint returns the one-line control hint for the archetype.
func (p *Pad) Hint() string { return p.profile.Hint }

// Buttons returns the laid-out buttons.
func (p *Pad) Buttons() []Button {
	return append([]Button(nil), p.buttons...)
}

// Area returns the overlay rectangle in host coordinates.
func (p *Pad) Area() core.Rect { return p.area }

// Layout places the buttons for a canvas of w×h cells. Movement buttons
// cluster on the left, action buttons on the right.
func (p *Pad) Layout(w, h int) {
	p.ReleaseAll()
	p.canvas = core.NewRect(0, 0, w, h)
	p.buttons = p.buttons[:0]
	if !p.visible {
		p.area = core.Rect{}
		return
	}
	p.area = core.NewRect(0, h, w, Height)

	x := 1
	for _, spec := range p.profile.Buttons {
		if spec.Right {
			continue
		}
		bw := buttonWidth(spec.Label)
		p.buttons = append(p.buttons, Button{
			Label:  spec.Label,
			Intent: spec.Intent,
			Rect:   core.NewRect(x, h, bw, Height),
		})
		x += bw + 1
	}

	x = w - 1
	for i := len(p.profile.Buttons) - 1; i >= 0; i-- {
		spec := p.profile.Buttons[i]
		if !spec.Right {
			continue
		}
		bw := buttonWidth(spec.Label)
		x -= bw
		p.buttons = append(p.buttons, Button{
			Label:  spec.Label,
			Intent: spec.Intent,
			Rect:   core.NewRect(x, h, bw, Height),
		})
		x--
	}
}

func buttonWidth(label string) int {
	return utf8.RuneCountInString(label) + 4
}

// Handle processes one pointer event.
func (p *Pad) Handle(ev PointerEvent) {
	switch ev.Kind {
	case PointerDown:
		p.down(ev.X, ev.Y)
	case PointerMove:
		p.move(ev.X, ev.Y)
	case PointerUp:
		p.up(ev.X, ev.Y)
	}
}

func (p *Pad) down(x, y int) {
	for i, b := range p.buttons {
		if b.Rect.Contains(x, y) {
			if !p.held[i] {
				p.held[i] = true
				p.publish(b.Intent.WithPhase(core.Press))
			}
			return
		}
	}
	if p.canvas.Contains(x, y) {
		p.gesture = &gesture{start: core.Point{X: x, Y: y}, touched: true}
	}
}

func (p *Pad) move(x, y int) {
	g := p.gesture
	if g == nil || p.profile.Swipe == SwipeNone {
		return
	}
	d := swipeDirection(x-g.start.X, y-g.start.Y)
	if !p.profile.Swipe.accepts(d) {
		return
	}
	g.swiped = true

	if p.profile.HoldSwipe {
		if d == g.dir {
			return
		}
		if g.dir != core.DirNone {
			p.publish(core.Move(g.dir, core.Release))
		}
		g.dir = d
		p.publish(core.Move(d, core.Press))
		return
	}

	// One-shot swipes chain: every threshold crossed from the last
	// anchor emits one move.
	p.publish(core.Move(d, core.Press))
	p.publish(core.Move(d, core.Release))
	g.start = core.Point{X: x, Y: y}
}

func (p *Pad) up(x, y int) {
	released := false
	for i := range p.held {
		p.publish(p.buttons[i].Intent.WithPhase(core.Release))
		released = true
	}
	clear(p.held)

	g := p.gesture
	p.gesture = nil
	if g == nil || released {
		return
	}
	if g.dir != core.DirNone {
		p.publish(core.Move(g.dir, core.Release))
	}
	if g.swiped {
		return
	}
	if !p.canvas.Contains(x, y) {
		x, y = g.start.X, g.start.Y
	}
	p.publish(core.Pointer(x, y))
	if p.profile.Tap != core.ActionNone {
		p.publish(core.Act(p.profile.Tap, core.Press))
		p.publish(core.Act(p.profile.Tap, core.Release))
	}
}

// ReleaseAll releases every held button and any held swipe direction.
// The host calls it when the game is unmounted or the layout changes.
func (p *Pad) ReleaseAll() {
	for i := range p.held {
		if i < len(p.buttons) {
			p.publish(p.buttons[i].Intent.WithPhase(core.Release))
		}
	}
	clear(p.held)
	if p.gesture != nil && p.gesture.dir != core.DirNone {
		p.publish(core.Move(p.gesture.dir, core.Release))
	}
	p.gesture = nil
}

// swipeDirection returns the dominant direction of a drag once it passes
// the swipe threshold.
func swipeDirection(dx, dy int) core.Direction {
	ax, ay := core.Abs(dx), core.Abs(dy)
	if ax < SwipeCols && ay < SwipeRows {
		return core.DirNone
	}
	// Compare in screen units: one row is about two columns.
	if ax >= ay*2 {
		if dx < 0 {
			return core.DirLeft
		}
		return core.DirRight
	}
	if dy < 0 {
		return core.DirUp
	}
	return core.DirDown
}

// Render draws the overlay into dst, which must include the pad rows.
func (p *Pad) Render(dst *core.Screen) {
	if !p.visible {
		return
	}
	dst.DrawRect(p.area, ' ')
	for i, b := range p.buttons {
		color := core.ColorGray
		if p.held[i] {
			color = core.ColorBrightYellow
		}
		dst.DrawBoxColor(b.Rect, color)
		dst.DrawTextColor(b.Rect.X+2, b.Rect.Y+1, b.Label, core.ColorBrightWhite)
	}
	if len(p.buttons) == 0 || p.area.W < 20 {
		return
	}
	// Hint goes in the gap between the clusters when it fits.
	left, right := p.area.X, p.area.Right()
	for _, b := range p.buttons {
		if b.Rect.X < p.area.W/2 {
			left = core.Max(left, b.Rect.Right()+1)
		} else {
			right = core.Min(right, b.Rect.X-1)
		}
	}
	hint := p.profile.Hint
	if n := utf8.RuneCountInString(hint); n <= right-left {
		dst.DrawTextColor(left+(right-left-n)/2, p.area.Y+1, hint, core.ColorGray)
	}
}
