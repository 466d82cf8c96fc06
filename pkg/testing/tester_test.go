package testing

import (
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/go-aretha/aretha/pkg/config"
	"github.com/go-aretha/aretha/pkg/graphics"
	"github.com/go-aretha/aretha/pkg/toggle"
)

var (
	trackSize  = graphics.Size{Width: 300, Height: 40}
	handleSize = graphics.Size{Width: 60, Height: 40}
)

func TestToggleTester_DragHandleOff(t *testing.T) {
	tester := NewToggleTesterWithT(t, config.DefaultAttributes(), trackSize, handleSize)

	tester.DragHandle(200)
	if tester.View.IsOn() {
		t.Fatal("drag past the midpoint should turn the toggle off")
	}
	if !tester.View.IsAnimating() {
		t.Fatal("release should start a settle animation")
	}
	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	if got := tester.View.ScrollX(); got != -240 {
		t.Errorf("ScrollX = %v, want -240", got)
	}
	if tester.View.Controller().Phase() != toggle.PhaseIdle {
		t.Errorf("phase = %v, want idle", tester.View.Controller().Phase())
	}
}

func TestToggleTester_TapHandleToggles(t *testing.T) {
	tester := NewToggleTesterWithT(t, config.DefaultAttributes(), trackSize, handleSize)

	if !tester.TapHandle() {
		t.Fatal("tap on the handle should be consumed")
	}
	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	if tester.View.IsOn() {
		t.Fatalf("tap should toggle off: %s", spew.Sdump(tester.View.SaveState()))
	}
	if c := tester.HandleCenter(); c.X != 270 {
		t.Errorf("handle center = %v, want x=270", c)
	}

	tester.TapHandle()
	tester.PumpAndSettle(time.Second)
	if !tester.View.IsOn() {
		t.Error("second tap should toggle back on")
	}
}

func TestToggleTester_PumpFramesInterpolates(t *testing.T) {
	tester := NewToggleTesterWithT(t, config.DefaultAttributes(), trackSize, handleSize)
	tester.View.SetToggle(false, true)

	tester.PumpFrames(96 * time.Millisecond)
	got := tester.View.ScrollX()
	if got >= 0 || got <= -240 {
		t.Errorf("ScrollX mid-settle = %v, want strictly between -240 and 0", got)
	}
}

func TestToggleTester_InterceptRequests(t *testing.T) {
	tester := NewToggleTesterWithT(t, config.DefaultAttributes(), trackSize, handleSize)

	tester.SendPointerDown(tester.HandleCenter())
	if !tester.Parent.InterceptDisallowed() {
		t.Error("press on the handle should disallow intercept")
	}
	tester.SendPointerCancel()
	if tester.Parent.InterceptDisallowed() {
		t.Error("cancel should re-allow intercept")
	}
}

func TestPumpAndSettle_Timeout(t *testing.T) {
	attrs := config.DefaultAttributes()
	attrs.AnimationDuration = time.Hour
	tester := NewToggleTesterWithT(t, attrs, trackSize, handleSize)
	tester.View.Toggle()

	if err := tester.PumpAndSettle(100 * time.Millisecond); err != ErrSettleTimeout {
		t.Errorf("PumpAndSettle = %v, want ErrSettleTimeout", err)
	}
}
