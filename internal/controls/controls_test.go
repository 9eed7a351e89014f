package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

type recorder struct {
	got []core.Intent
}

func (r *recorder) publish(in core.Intent) { r.got = append(r.got, in) }

func (r *recorder) reset() { r.got = nil }

func newTestPad(t *testing.T, a core.Archetype, visible bool) (*Pad, *recorder) {
	t.Helper()
	rec := &recorder{}
	p := NewPad(a, visible, rec.publish)
	p.Layout(60, 20)
	return p, rec
}

func buttonAt(t *testing.T, p *Pad, label string) Button {
	t.Helper()
	for _, b := range p.Buttons() {
		if b.Label == label {
			return b
		}
	}
	t.Fatalf("no button %q", label)
	return Button{}
}

func TestCompact(t *testing.T) {
	tests := []struct {
		name string
		env  Env
		want bool
	}{
		{"wide desktop", Env{Width: 120, UserAgent: "SSH-2.0-OpenSSH_9.6"}, false},
		{"narrow", Env{Width: 40}, true},
		{"unknown width", Env{Width: 0}, false},
		{"touch", Env{Width: 200, Touch: true}, true},
		{"termius", Env{Width: 120, UserAgent: "SSH-2.0-Termius_6.4"}, true},
		{"blink", Env{Width: 120, UserAgent: "SSH-2.0-Blink"}, true},
		{"android", Env{Width: 120, UserAgent: "JuiceSSH Android"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compact(tt.env, 60))
		})
	}
}

func TestProfileForEveryArchetype(t *testing.T) {
	for _, a := range core.Archetypes() {
		p := ProfileFor(a)
		assert.NotEmpty(t, p.Buttons, "archetype %s has no buttons", a)
		assert.NotEmpty(t, p.Hint, "archetype %s has no hint", a)
	}
	assert.Equal(t, ProfileFor(core.ArchetypeDirectional).Hint, ProfileFor("bogus").Hint)
}

func TestLayoutFitsBelowCanvas(t *testing.T) {
	p, _ := newTestPad(t, core.ArchetypeCombat, true)
	area := p.Area()
	assert.Equal(t, core.NewRect(0, 20, 60, Height), area)

	buttons := p.Buttons()
	require.Len(t, buttons, 6)
	for i, a := range buttons {
		assert.True(t, a.Rect.X >= 0 && a.Rect.Right() <= 60, "button %s outside pad", a.Label)
		for _, b := range buttons[i+1:] {
			assert.False(t, a.Rect.Intersects(b.Rect), "%s overlaps %s", a.Label, b.Label)
		}
	}
}

func TestHiddenPadHasNoButtons(t *testing.T) {
	p, _ := newTestPad(t, core.ArchetypeDirectional, false)
	assert.Empty(t, p.Buttons())
	assert.Equal(t, core.Rect{}, p.Area())
}

func TestButtonPressAndRelease(t *testing.T) {
	p, rec := newTestPad(t, core.ArchetypeDirectional, true)
	left := buttonAt(t, p, "◀")
	x, y := left.Rect.Center()

	p.Handle(PointerEvent{Kind: PointerDown, X: x, Y: y})
	require.Equal(t, []core.Intent{core.Move(core.DirLeft, core.Press)}, rec.got)

	// Repeated down on a held button does not re-press.
	p.Handle(PointerEvent{Kind: PointerDown, X: x, Y: y})
	require.Len(t, rec.got, 1)

	p.Handle(PointerEvent{Kind: PointerUp, X: x, Y: y})
	assert.Equal(t, []core.Intent{
		core.Move(core.DirLeft, core.Press),
		core.Move(core.DirLeft, core.Release),
	}, rec.got)
}

func TestActionButton(t *testing.T) {
	p, rec := newTestPad(t, core.ArchetypeShooter, true)
	fire := buttonAt(t, p, "FIRE")
	x, y := fire.Rect.Center()

	p.Handle(PointerEvent{Kind: PointerDown, X: x, Y: y})
	p.Handle(PointerEvent{Kind: PointerUp, X: x, Y: y})
	assert.Equal(t, []core.Intent{
		core.Act(core.ActionJump, core.Press),
		core.Act(core.ActionJump, core.Release),
	}, rec.got)
}

func TestTapPublishesPointerAndTapAction(t *testing.T) {
	p, rec := newTestPad(t, core.ArchetypeTap, true)

	p.Handle(PointerEvent{Kind: PointerDown, X: 10, Y: 5})
	p.Handle(PointerEvent{Kind: PointerUp, X: 10, Y: 5})
	assert.Equal(t, []core.Intent{
		core.Pointer(10, 5),
		core.Act(core.ActionJump, core.Press),
		core.Act(core.ActionJump, core.Release),
	}, rec.got)
}

func TestTapWithoutTapActionIsPointerOnly(t *testing.T) {
	p, rec := newTestPad(t, core.ArchetypeDirectional, true)

	p.Handle(PointerEvent{Kind: PointerDown, X: 3, Y: 4})
	p.Handle(PointerEvent{Kind: PointerUp, X: 3, Y: 4})
	assert.Equal(t, []core.Intent{core.Pointer(3, 4)}, rec.got)
}

func TestOneShotSwipe(t *testing.T) {
	p, rec := newTestPad(t, core.ArchetypeDirectional, false)

	p.Handle(PointerEvent{Kind: PointerDown, X: 20, Y: 10})
	p.Handle(PointerEvent{Kind: PointerMove, X: 21, Y: 10})
	assert.Empty(t, rec.got, "below threshold")

	p.Handle(PointerEvent{Kind: PointerMove, X: 25, Y: 10})
	assert.Equal(t, []core.Intent{
		core.Move(core.DirRight, core.Press),
		core.Move(core.DirRight, core.Release),
	}, rec.got)

	rec.reset()
	p.Handle(PointerEvent{Kind: PointerMove, X: 25, Y: 13})
	assert.Equal(t, []core.Intent{
		core.Move(core.DirDown, core.Press),
		core.Move(core.DirDown, core.Release),
	}, rec.got)

	rec.reset()
	p.Handle(PointerEvent{Kind: PointerUp, X: 25, Y: 13})
	assert.Empty(t, rec.got, "a swipe is not a tap")
}

func TestHoldSwipe(t *testing.T) {
	p, rec := newTestPad(t, core.ArchetypePaddle, true)

	p.Handle(PointerEvent{Kind: PointerDown, X: 5, Y: 10})
	p.Handle(PointerEvent{Kind: PointerMove, X: 5, Y: 7})
	p.Handle(PointerEvent{Kind: PointerMove, X: 5, Y: 6})
	assert.Equal(t, []core.Intent{core.Move(core.DirUp, core.Press)}, rec.got)

	p.Handle(PointerEvent{Kind: PointerMove, X: 5, Y: 14})
	p.Handle(PointerEvent{Kind: PointerUp, X: 5, Y: 14})
	assert.Equal(t, []core.Intent{
		core.Move(core.DirUp, core.Press),
		core.Move(core.DirUp, core.Release),
		core.Move(core.DirDown, core.Press),
		core.Move(core.DirDown, core.Release),
	}, rec.got)
}

func TestSwipeFilteredByAxis(t *testing.T) {
	p, rec := newTestPad(t, core.ArchetypePaddle, false)

	p.Handle(PointerEvent{Kind: PointerDown, X: 5, Y: 10})
	p.Handle(PointerEvent{Kind: PointerMove, X: 30, Y: 10})
	assert.Empty(t, rec.got)
}

func TestReleaseAll(t *testing.T) {
	p, rec := newTestPad(t, core.ArchetypeRacing, true)
	gas := buttonAt(t, p, "GAS")
	x, y := gas.Rect.Center()

	p.Handle(PointerEvent{Kind: PointerDown, X: x, Y: y})
	p.ReleaseAll()
	assert.Equal(t, []core.Intent{
		core.Act(core.ActionUp, core.Press),
		core.Act(core.ActionUp, core.Release),
	}, rec.got)

	rec.reset()
	p.ReleaseAll()
	assert.Empty(t, rec.got)
}

func TestRender(t *testing.T) {
	p, _ := newTestPad(t, core.ArchetypeDirectional, true)
	dst := core.NewScreen(60, 20+Height)
	p.Render(dst)

	row := dst.Row(21)
	assert.Contains(t, row, "◀")
	assert.Contains(t, row, "▶")
}

func TestSwipeDirection(t *testing.T) {
	assert.Equal(t, core.DirNone, swipeDirection(1, 1))
	assert.Equal(t, core.DirRight, swipeDirection(4, 1))
	assert.Equal(t, core.DirLeft, swipeDirection(-6, 2))
	assert.Equal(t, core.DirUp, swipeDirection(0, -2))
	assert.Equal(t, core.DirDown, swipeDirection(2, 3))
}
