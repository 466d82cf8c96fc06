package toggle_test

import (
	"math"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/go-aretha/aretha/pkg/animation"
	"github.com/go-aretha/aretha/pkg/gestures"
	"github.com/go-aretha/aretha/pkg/graphics"
	arethatest "github.com/go-aretha/aretha/pkg/testing"
	"github.com/go-aretha/aretha/pkg/toggle"
)

var standardGeometry = toggle.StaticGeometry{
	TrackWidth:   300,
	HandleWidth:  60,
	HandleTop:    0,
	HandleBottom: 40,
}

type recordingHost struct {
	disallow    []bool
	pressed     bool
	invalidates int
	frames      int
}

func (h *recordingHost) RequestDisallowIntercept(disallow bool) {
	h.disallow = append(h.disallow, disallow)
}
func (h *recordingHost) SetHandlePressed(pressed bool) { h.pressed = pressed }
func (h *recordingHost) Invalidate()                   { h.invalidates++ }
func (h *recordingHost) ScheduleFrame()                { h.frames++ }

type harness struct {
	t     *testing.T
	clock *arethatest.FakeClock
	host  *recordingHost
	c     *toggle.Controller
}

func newHarness(t *testing.T, on bool) *harness {
	t.Helper()
	clk := arethatest.NewFakeClock()
	prev := animation.SetClock(clk)
	t.Cleanup(func() { animation.SetClock(prev) })

	host := &recordingHost{}
	c := toggle.NewController(toggle.State{IsOn: on, ClipRadius: 10}, toggle.Options{
		Host:     host,
		Geometry: standardGeometry,
	})
	return &harness{t: t, clock: clk, host: host, c: c}
}

func (h *harness) down(x, y float64) bool {
	return h.c.HandlePointer(gestures.PointerEvent{Phase: gestures.PointerPhaseDown, Position: graphics.Offset{X: x, Y: y}})
}

func (h *harness) move(x, y float64) bool {
	return h.c.HandlePointer(gestures.PointerEvent{Phase: gestures.PointerPhaseMove, Position: graphics.Offset{X: x, Y: y}})
}

func (h *harness) up() bool {
	return h.c.HandlePointer(gestures.PointerEvent{Phase: gestures.PointerPhaseUp})
}

// settle advances the clock one frame at a time until the animation stops.
func (h *harness) settle() int {
	h.t.Helper()
	frames := 0
	for h.c.AdvanceAnimation() {
		frames++
		if frames > 100 {
			h.t.Fatalf("animation did not settle: %s", spew.Sdump(h.c.State()))
		}
		h.clock.Advance(16 * time.Millisecond)
	}
	return frames
}

func TestInitialOffsetMatchesState(t *testing.T) {
	if got := newHarness(t, true).c.ScrollOffset(); got != 0 {
		t.Errorf("on offset = %v, want 0", got)
	}
	if got := newHarness(t, false).c.ScrollOffset(); got != -240 {
		t.Errorf("off offset = %v, want -240", got)
	}
}

func TestDragPastMidpointTurnsOff(t *testing.T) {
	h := newHarness(t, true)

	if !h.down(30, 20) {
		t.Fatal("down should be consumed")
	}
	if !h.host.pressed {
		t.Error("handle should be pressed")
	}
	if !h.move(230, 20) {
		t.Fatal("move past slop should be consumed")
	}
	if h.c.Phase() != toggle.PhaseDragging {
		t.Fatalf("phase = %v, want dragging", h.c.Phase())
	}
	if got := h.c.ScrollOffset(); got != -200 {
		t.Fatalf("offset after drag = %v, want -200", got)
	}

	h.up()
	if h.c.IsOn() {
		t.Error("release at -200 should commit off")
	}
	if h.c.Phase() != toggle.PhaseSettling {
		t.Fatalf("phase after release = %v, want settling", h.c.Phase())
	}
	if h.host.pressed {
		t.Error("handle should be released")
	}

	h.clock.Advance(100 * time.Millisecond)
	h.c.AdvanceAnimation()
	if got := h.c.ScrollOffset(); got != -220 {
		t.Errorf("offset halfway through settle = %v, want -220", got)
	}

	h.settle()
	if got := h.c.ScrollOffset(); got != -240 {
		t.Errorf("settled offset = %v, want -240", got)
	}
	if h.c.Phase() != toggle.PhaseIdle {
		t.Errorf("phase after settle = %v, want idle", h.c.Phase())
	}
}

func TestDragFromOffSnapsBackOn(t *testing.T) {
	h := newHarness(t, false)
	h.down(270, 20)
	h.move(100, 20)
	if got := h.c.ScrollOffset(); got != -70 {
		t.Fatalf("offset = %v, want -70", got)
	}
	h.up()
	h.settle()
	if !h.c.IsOn() || h.c.ScrollOffset() != 0 {
		t.Errorf("expected on at 0, got %s", spew.Sdump(h.c.State(), h.c.ScrollOffset()))
	}
}

func TestDragOffsetIsClamped(t *testing.T) {
	h := newHarness(t, true)
	h.down(30, 20)

	for _, x := range []float64{-500, 1000, 130, 9999, -1, 170.5} {
		h.move(x, 20)
		if got := h.c.ScrollOffset(); got < -240 || got > 0 {
			t.Fatalf("move to %v gave offset %v outside [-240, 0]", x, got)
		}
	}
	h.move(-500, 20)
	if got := h.c.ScrollOffset(); got != 0 {
		t.Errorf("drag left of start = %v, want 0", got)
	}
	h.move(1000, 20)
	if got := h.c.ScrollOffset(); got != -240 {
		t.Errorf("drag far right = %v, want -240", got)
	}
}

func TestSnapDecision(t *testing.T) {
	for s := -240.0; s <= 0; s += 10 {
		if math.Abs(s) <= gestures.DefaultTouchSlop {
			continue
		}
		h := newHarness(t, true)
		h.down(30, 20)
		h.move(30-s, 20)
		if got := h.c.ScrollOffset(); got != s {
			t.Fatalf("offset = %v, want %v", got, s)
		}
		h.up()
		wantOn := !(math.Abs(s-30) > 150)
		if h.c.IsOn() != wantOn {
			t.Errorf("release at %v: IsOn = %v, want %v", s, h.c.IsOn(), wantOn)
		}
	}
}

func TestTapInsideHandleToggles(t *testing.T) {
	h := newHarness(t, true)
	h.down(10, 10)
	h.up()
	if h.c.IsOn() {
		t.Fatal("tap should turn the toggle off")
	}
	if h.host.frames == 0 {
		t.Error("tap should schedule animation frames")
	}
	h.settle()

	// The handle now rests at the OFF side.
	h.down(250, 10)
	h.up()
	if !h.c.IsOn() {
		t.Error("second tap should turn the toggle back on")
	}
}

func TestMoveWithinSlopStillCountsAsTap(t *testing.T) {
	h := newHarness(t, true)
	h.down(30, 20)
	if h.move(30+gestures.DefaultTouchSlop, 80) {
		t.Error("move within slop should not be consumed")
	}
	if h.c.ScrollOffset() != 0 {
		t.Errorf("offset moved to %v inside slop", h.c.ScrollOffset())
	}
	h.up()
	if h.c.IsOn() {
		t.Error("press that never left idle should toggle")
	}
}

func TestPressOutsideHandleIsIgnored(t *testing.T) {
	h := newHarness(t, true)
	if !h.down(200, 20) {
		t.Fatal("down outside the handle is still consumed")
	}
	if h.host.pressed {
		t.Error("handle should not be pressed")
	}
	if len(h.host.disallow) != 1 || h.host.disallow[0] {
		t.Errorf("disallow = %v, want [false]", h.host.disallow)
	}
	if h.move(120, 20) {
		t.Error("drag outside the handle should pass through")
	}
	h.up()
	if !h.c.IsOn() || h.c.ScrollOffset() != 0 {
		t.Errorf("state changed: %s", spew.Sdump(h.c.State(), h.c.ScrollOffset()))
	}
}

func TestInterceptBlockedForHandleGesture(t *testing.T) {
	h := newHarness(t, true)
	h.down(30, 20)
	h.move(100, 20)
	h.up()
	want := []bool{true, false}
	if len(h.host.disallow) != 2 || h.host.disallow[0] != want[0] || h.host.disallow[1] != want[1] {
		t.Errorf("disallow = %v, want %v", h.host.disallow, want)
	}
}

func TestSetToggleWithoutAnimation(t *testing.T) {
	h := newHarness(t, false)
	h.c.SetToggle(true, false)
	if h.c.ScrollOffset() != 0 {
		t.Errorf("offset = %v, want 0", h.c.ScrollOffset())
	}
	if h.c.Phase() != toggle.PhaseIdle {
		t.Errorf("phase = %v, want idle", h.c.Phase())
	}
	if h.host.frames != 0 {
		t.Errorf("frames scheduled = %d, want 0", h.host.frames)
	}
	if h.host.invalidates == 0 {
		t.Error("expected a redraw request")
	}
}

func TestSetToggleReplacesRunningSettle(t *testing.T) {
	h := newHarness(t, true)
	h.c.SetToggle(false, true)
	h.clock.Advance(50 * time.Millisecond)
	h.c.AdvanceAnimation()
	mid := h.c.ScrollOffset()
	if mid >= 0 || mid <= -240 {
		t.Fatalf("mid-settle offset = %v", mid)
	}

	h.c.SetToggle(true, true)
	if !h.c.IsOn() {
		t.Fatal("second SetToggle should commit immediately")
	}
	h.clock.Advance(50 * time.Millisecond)
	h.c.AdvanceAnimation()
	if got := h.c.ScrollOffset(); got <= mid {
		t.Errorf("offset %v should be moving back toward 0 from %v", got, mid)
	}
	h.settle()
	if got := h.c.ScrollOffset(); got != 0 {
		t.Errorf("settled at %v, want 0", got)
	}
}

func TestAdvanceAnimationIdleIsNoop(t *testing.T) {
	h := newHarness(t, true)
	if h.c.AdvanceAnimation() {
		t.Error("idle controller should not want frames")
	}
	if h.c.ScrollOffset() != 0 {
		t.Error("idle advance should not move the handle")
	}
}

func TestNoGeometryIsInert(t *testing.T) {
	var ready bool
	geometry := toggle.GeometryFunc(func() (toggle.Geometry, bool) {
		return toggle.Geometry(standardGeometry), ready
	})
	c := toggle.NewController(toggle.State{IsOn: true}, toggle.Options{Geometry: geometry})

	if c.HandlePointerDown(graphics.Offset{X: 10, Y: 10}) {
		t.Error("down without a handle should not be consumed")
	}
	if c.HandlePointerMove(graphics.Offset{X: 200, Y: 10}) || c.HandlePointerUp() {
		t.Error("move and up without a session should not be consumed")
	}

	c.SetToggle(false, true)
	if c.IsOn() {
		t.Error("SetToggle should commit even without geometry")
	}
	if c.Phase() != toggle.PhaseIdle || c.ScrollOffset() != 0 {
		t.Errorf("phase %v offset %v, want idle at 0", c.Phase(), c.ScrollOffset())
	}

	ready = true
	c.Relayout()
	if got := c.ScrollOffset(); got != -240 {
		t.Errorf("offset after relayout = %v, want -240", got)
	}
}

func TestCancelSnapsWithoutTap(t *testing.T) {
	h := newHarness(t, true)
	h.down(30, 20)
	h.c.HandlePointer(gestures.PointerEvent{Phase: gestures.PointerPhaseCancel})
	if !h.c.IsOn() {
		t.Error("cancelled press must not toggle")
	}

	h.down(30, 20)
	h.move(250, 20)
	h.c.HandlePointer(gestures.PointerEvent{Phase: gestures.PointerPhaseCancel})
	h.settle()
	if h.c.IsOn() || h.c.ScrollOffset() != -240 {
		t.Errorf("cancelled drag should snap off: %s", spew.Sdump(h.c.State(), h.c.ScrollOffset()))
	}
	if _, ok := h.c.Session(); ok {
		t.Error("session should be discarded")
	}
}

func TestListenersFireOnCommittedChange(t *testing.T) {
	h := newHarness(t, true)
	var got []bool
	unsubscribe := h.c.AddListener(func(on bool) { got = append(got, on) })

	h.c.SetToggle(true, false)
	h.c.Toggle()
	h.c.SetToggle(false, true)
	unsubscribe()
	h.c.Toggle()

	if len(got) != 1 || got[0] {
		t.Errorf("listener calls = %v, want [false]", got)
	}
}

func TestClipRadiusIsClamped(t *testing.T) {
	h := newHarness(t, true)
	h.c.SetClipRadius(-4)
	if h.c.ClipRadius() != 0 {
		t.Errorf("ClipRadius = %v, want 0", h.c.ClipRadius())
	}
	h.c.SetClipRadius(12.5)
	if h.c.State().ClipRadius != 12.5 {
		t.Errorf("State().ClipRadius = %v, want 12.5", h.c.State().ClipRadius)
	}
}

func TestRestorePlacesHandle(t *testing.T) {
	h := newHarness(t, true)
	h.c.Restore(toggle.State{IsOn: false, ClipRadius: 3})
	if h.c.IsOn() || h.c.ClipRadius() != 3 || h.c.ScrollOffset() != -240 {
		t.Errorf("restore mismatch: %s", spew.Sdump(h.c.State(), h.c.ScrollOffset()))
	}
	if h.c.Progress() != 0 {
		t.Errorf("Progress = %v, want 0", h.c.Progress())
	}
}

func TestTouchPhaseString(t *testing.T) {
	tests := []struct {
		phase toggle.TouchPhase
		want  string
	}{
		{toggle.PhaseIdle, "idle"},
		{toggle.PhaseDragging, "dragging"},
		{toggle.PhaseSettling, "settling"},
		{toggle.TouchPhase(5), "TouchPhase(5)"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestControllerCurveShapesSettle(t *testing.T) {
	clk := arethatest.NewFakeClock()
	prev := animation.SetClock(clk)
	t.Cleanup(func() { animation.SetClock(prev) })

	linear := toggle.NewController(toggle.State{IsOn: true}, toggle.Options{Geometry: standardGeometry})
	eased := toggle.NewController(toggle.State{IsOn: true}, toggle.Options{
		Geometry: standardGeometry,
		Curve:    animation.EaseIn,
	})
	linear.SetToggle(false, true)
	eased.SetToggle(false, true)

	clk.Advance(50 * time.Millisecond)
	linear.AdvanceAnimation()
	eased.AdvanceAnimation()

	if got := linear.ScrollOffset(); got != -60 {
		t.Errorf("linear offset = %v, want -60", got)
	}
	if got := eased.ScrollOffset(); got <= -60 || got >= 0 {
		t.Errorf("ease-in offset = %v, want between -60 and 0", got)
	}
}
