package testing

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/go-aretha/aretha/pkg/animation"
	"github.com/go-aretha/aretha/pkg/config"
	"github.com/go-aretha/aretha/pkg/gestures"
	"github.com/go-aretha/aretha/pkg/graphics"
	"github.com/go-aretha/aretha/pkg/widgets"
)

// ErrSettleTimeout is returned by PumpAndSettle when animations are still
// running after the timeout.
var ErrSettleTimeout = stderrors.New("pump and settle timed out")

// FrameDuration is the simulated time between frames.
const FrameDuration = 16 * time.Millisecond

// RecordingParent is a widgets.ViewParent that records what the toggle asked
// of its host.
type RecordingParent struct {
	DisallowRequests []bool
	Invalidations    int
}

// RequestDisallowInterceptTouchEvent implements widgets.ViewParent.
func (p *RecordingParent) RequestDisallowInterceptTouchEvent(disallow bool) {
	p.DisallowRequests = append(p.DisallowRequests, disallow)
}

// Invalidate implements widgets.ViewParent.
func (p *RecordingParent) Invalidate() {
	p.Invalidations++
}

// InterceptDisallowed reports the most recent intercept request.
func (p *RecordingParent) InterceptDisallowed() bool {
	if len(p.DisallowRequests) == 0 {
		return false
	}
	return p.DisallowRequests[len(p.DisallowRequests)-1]
}

// ToggleTester mounts a ToggleView with a fake clock and simulates input.
type ToggleTester struct {
	// View is the toggle under test.
	View *widgets.ToggleView
	// Parent records host requests made by View.
	Parent *RecordingParent

	clock     *FakeClock
	prevClock animation.Clock
	nextID    int64
	pointerID int64
	last      graphics.Offset
}

// NewToggleTester lays out a toggle with the given track and handle sizes.
// Call Cleanup when done to restore the animation clock.
func NewToggleTester(attrs config.Attributes, track, handle graphics.Size) *ToggleTester {
	clk := NewFakeClock()
	t := &ToggleTester{
		Parent:    &RecordingParent{},
		clock:     clk,
		prevClock: animation.SetClock(clk),
	}
	t.View = widgets.NewToggleView(t.Parent, attrs)
	t.View.SetHandle(handle)
	t.View.SetOffView(graphics.Size{Width: track.Width - handle.Width, Height: track.Height})
	t.View.SetOnView(graphics.Size{Width: track.Width - handle.Width, Height: track.Height})
	t.View.Layout(track)
	return t
}

// NewToggleTesterWithT is NewToggleTester with cleanup registered on tb.
func NewToggleTesterWithT(tb testing.TB, attrs config.Attributes, track, handle graphics.Size) *ToggleTester {
	tester := NewToggleTester(attrs, track, handle)
	tb.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup stops the view's ticker and restores the animation clock.
func (t *ToggleTester) Cleanup() {
	t.View.Dispose()
	animation.SetClock(t.prevClock)
}

// Clock returns the fake clock driving animations.
func (t *ToggleTester) Clock() *FakeClock {
	return t.clock
}

// HandleCenter returns the on-screen center of the handle.
func (t *ToggleTester) HandleCenter() graphics.Offset {
	r, _ := t.View.ChildFrame(widgets.RoleHandle)
	return r.Center()
}

// SendPointerDown starts a new pointer at pos and reports whether the view
// consumed it.
func (t *ToggleTester) SendPointerDown(pos graphics.Offset) bool {
	t.nextID++
	t.pointerID = t.nextID
	t.last = pos
	return t.send(pos, gestures.PointerPhaseDown)
}

// SendPointerMove moves the current pointer to pos.
func (t *ToggleTester) SendPointerMove(pos graphics.Offset) bool {
	return t.send(pos, gestures.PointerPhaseMove)
}

// SendPointerUp lifts the current pointer at pos.
func (t *ToggleTester) SendPointerUp(pos graphics.Offset) bool {
	return t.send(pos, gestures.PointerPhaseUp)
}

// SendPointerCancel cancels the current pointer.
func (t *ToggleTester) SendPointerCancel() bool {
	return t.send(t.last, gestures.PointerPhaseCancel)
}

func (t *ToggleTester) send(pos graphics.Offset, phase gestures.PointerPhase) bool {
	event := gestures.PointerEvent{
		PointerID: t.pointerID,
		Position:  pos,
		Delta:     graphics.Offset{X: pos.X - t.last.X, Y: pos.Y - t.last.Y},
		Phase:     phase,
	}
	t.last = pos
	return t.View.HandlePointer(event)
}

// TapAt simulates a tap at pos.
func (t *ToggleTester) TapAt(pos graphics.Offset) bool {
	consumed := t.SendPointerDown(pos)
	t.SendPointerUp(pos)
	return consumed
}

// TapHandle taps the center of the handle.
func (t *ToggleTester) TapHandle() bool {
	return t.TapAt(t.HandleCenter())
}

// DragFrom presses at start, moves by delta in steps moves, and releases.
func (t *ToggleTester) DragFrom(start, delta graphics.Offset, steps int) {
	if steps < 1 {
		steps = 1
	}
	t.SendPointerDown(start)
	for i := 1; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		t.SendPointerMove(start.Translate(delta.X*frac, delta.Y*frac))
	}
	t.SendPointerUp(start.Translate(delta.X, delta.Y))
}

// DragHandle drags the handle horizontally by dx from its center.
func (t *ToggleTester) DragHandle(dx float64) {
	t.DragFrom(t.HandleCenter(), graphics.Offset{X: dx}, 4)
}

// Pump runs one frame at the current clock time and returns the number of
// tickers stepped.
func (t *ToggleTester) Pump() int {
	return animation.StepTickers()
}

// PumpFrames advances the clock by d one frame at a time, pumping each
// frame.
func (t *ToggleTester) PumpFrames(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += FrameDuration {
		t.clock.Advance(FrameDuration)
		t.Pump()
	}
}

// PumpAndSettle pumps frames until no ticker is active or timeout of
// simulated time has passed.
func (t *ToggleTester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		t.Pump()
		if !animation.HasActiveTickers() {
			return nil
		}
		t.clock.Advance(FrameDuration)
		elapsed += FrameDuration
	}
	return ErrSettleTimeout
}
