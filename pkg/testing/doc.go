// Package testing provides helpers for testing toggle widgets without a UI
// runtime.
//
// # Quick Start
//
// Create a tester with a track and handle size, simulate gestures, and
// pump frames until the settle animation finishes:
//
//	func TestDragTurnsOff(t *testing.T) {
//	    tester := arethatest.NewToggleTesterWithT(t, config.DefaultAttributes(),
//	        graphics.Size{Width: 300, Height: 40}, graphics.Size{Width: 60, Height: 40})
//
//	    tester.DragHandle(200)
//	    if err := tester.PumpAndSettle(time.Second); err != nil {
//	        t.Fatal(err)
//	    }
//	    if tester.View.IsOn() {
//	        t.Error("expected toggle to be off")
//	    }
//	}
//
// # Animation Testing
//
// The tester installs a [FakeClock] as the animation clock. Frames only
// advance when the test asks:
//
//	tester.Clock().Advance(100 * time.Millisecond)
//	tester.Pump()
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import arethatest "github.com/go-aretha/aretha/pkg/testing"
package testing
