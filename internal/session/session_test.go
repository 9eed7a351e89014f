package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

const tick = time.Second / 60

func newTestSession() *Session {
	return New(Options{
		ID:     "test",
		GameID: "snake",
		Config: core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 60},
	})
}

func TestNewSessionConfig(t *testing.T) {
	s := newTestSession()
	cfg := s.Config()

	assert.Equal(t, 20, cfg.ScreenW)
	assert.Equal(t, 10, cfg.ScreenH)
	assert.Same(t, s, cfg.Scheduler.(*Session))
	assert.Equal(t, 20, s.Canvas().Width())
}

func TestFramesRunInRegistrationOrder(t *testing.T) {
	s := newTestSession()
	var order []string

	s.OnFrame(func(time.Duration) { order = append(order, "a") })
	s.OnFrame(func(time.Duration) { order = append(order, "b") })
	s.Advance(tick)

	assert.Equal(t, []string{"a", "b"}, order)
}

func TestFrameCanCancelItself(t *testing.T) {
	s := newTestSession()
	calls := 0

	var stop core.CancelFunc
	stop = s.OnFrame(func(time.Duration) {
		calls++
		stop()
	})
	s.Advance(tick)
	s.Advance(tick)

	assert.Equal(t, 1, calls)
	assert.True(t, s.Pending().Zero())
}

func TestTimersFireOnVirtualClock(t *testing.T) {
	s := newTestSession()
	var fired []int

	s.After(3*tick, func() { fired = append(fired, 2) })
	s.After(tick, func() { fired = append(fired, 1) })

	s.Advance(tick)
	assert.Equal(t, []int{1}, fired)

	s.Advance(2 * tick)
	assert.Equal(t, []int{1, 2}, fired)
	assert.Equal(t, 0, s.Pending().Timers)
}

func TestTimersFireBeforeFrames(t *testing.T) {
	s := newTestSession()
	var order []string

	s.OnFrame(func(time.Duration) { order = append(order, "frame") })
	s.After(0, func() { order = append(order, "timer") })
	s.Advance(tick)

	assert.Equal(t, []string{"timer", "frame"}, order)
}

func TestCancelledTimerNeverFires(t *testing.T) {
	s := newTestSession()
	fired := false

	cancel := s.After(tick, func() { fired = true })
	cancel()
	cancel() // idempotent
	s.Advance(10 * tick)

	assert.False(t, fired)
}

func TestPublishReachesSubscribers(t *testing.T) {
	s := newTestSession()
	var got []core.Intent

	unsub := s.Subscribe(func(in core.Intent) { got = append(got, in) })
	s.Publish(core.Move(core.DirUp, core.Press))
	unsub()
	s.Publish(core.Move(core.DirDown, core.Press))

	require.Len(t, got, 1)
	assert.Equal(t, core.DirUp, got[0].Dir)
}

func TestCloseReleasesEverything(t *testing.T) {
	s := newTestSession()
	mutations := 0
	tracked := false

	s.OnFrame(func(time.Duration) { mutations++ })
	s.Subscribe(func(core.Intent) { mutations++ })
	s.After(tick, func() { mutations++ })
	s.Track(func() { tracked = true })

	leaked := s.Close()
	assert.Equal(t, Stats{Frames: 1, Subscriptions: 1, Timers: 1}, leaked)
	assert.True(t, tracked)
	assert.True(t, s.Pending().Zero())

	// Nothing registered before Close can run afterwards.
	s.Publish(core.Act(core.ActionJump, core.Press))
	s.Advance(time.Second)
	assert.Equal(t, 0, mutations)

	assert.Equal(t, Stats{}, s.Close(), "second Close is a no-op")
}

func TestRegistrationAfterCloseIsInert(t *testing.T) {
	s := newTestSession()
	s.Close()

	ran := false
	s.OnFrame(func(time.Duration) { ran = true })
	s.After(0, func() { ran = true })
	s.Track(func() { ran = true })
	s.Advance(tick)

	assert.True(t, ran, "Track on a closed session runs the cancel immediately")
	assert.True(t, s.Pending().Zero())
}

func TestScopeCloseLeavesNothing(t *testing.T) {
	s := newTestSession()
	sc := s.NewScope()

	sc.OnFrame(func(time.Duration) {})
	sc.Subscribe(func(core.Intent) {})
	sc.After(time.Minute, func() {})
	require.Equal(t, Stats{Frames: 1, Subscriptions: 1, Timers: 1}, s.Pending())

	sc.Close()
	assert.True(t, s.Pending().Zero())

	// Registering through a closed scope cancels immediately.
	sc.After(0, func() { t.Error("closed scope must not schedule") })
	s.Advance(tick)
	assert.True(t, s.Pending().Zero())
}

func TestScopeForgetsEndedRegistrations(t *testing.T) {
	s := newTestSession()
	sc := s.NewScope()
	sc.OnFrame(func(time.Duration) {})

	fired := 0
	for range 100 {
		sc.After(tick, func() { fired++ })
		s.Advance(tick)
	}
	assert.Equal(t, 100, fired)
	assert.Equal(t, 1, sc.Pending(), "fired timers should leave the scope")

	cancel := sc.Subscribe(func(core.Intent) {})
	require.Equal(t, 2, sc.Pending())
	cancel()
	assert.Equal(t, 1, sc.Pending())

	sc.Close()
	assert.Zero(t, sc.Pending())
	assert.True(t, s.Pending().Zero())
}

type fakeScores struct {
	saved []int
	err   error
}

func (f *fakeScores) SaveScore(_ string, score int) (int64, error) {
	f.saved = append(f.saved, score)
	return int64(len(f.saved)), f.err
}

func TestRecordScore(t *testing.T) {
	scores := &fakeScores{}
	s := New(Options{GameID: "pong", Scores: scores, Config: core.DefaultConfig()})

	s.RecordScore(7)
	assert.Equal(t, []int{7}, scores.saved)

	scores.err = errors.New("disk full")
	s.RecordScore(9) // logged, not returned
	s.Close()
	s.RecordScore(11)
	assert.Equal(t, []int{7, 9}, scores.saved)
}
