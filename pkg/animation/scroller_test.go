package animation

import (
	"testing"
	"time"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func installClock(t *testing.T) *fakeClock {
	t.Helper()
	clk := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	prev := SetClock(clk)
	t.Cleanup(func() { SetClock(prev) })
	return clk
}

func TestScrollerLinearProgress(t *testing.T) {
	clk := installClock(t)
	s := NewScroller(LinearCurve)
	s.Start(0, -240, 200*time.Millisecond)

	clk.advance(100 * time.Millisecond)
	v, more := s.Compute()
	if !more || v != -120 {
		t.Fatalf("Compute at half = (%v, %v), want (-120, true)", v, more)
	}

	clk.advance(150 * time.Millisecond)
	v, more = s.Compute()
	if !more || v != -240 {
		t.Fatalf("Compute past end = (%v, %v), want (-240, true)", v, more)
	}
	if !s.IsFinished() {
		t.Error("expected scroller to be finished")
	}

	if _, more := s.Compute(); more {
		t.Error("Compute after finish should report no more values")
	}
}

func TestScrollerZeroDuration(t *testing.T) {
	installClock(t)
	s := NewScroller(nil)
	s.Start(-240, 0, 0)

	v, more := s.Compute()
	if !more || v != 0 {
		t.Fatalf("Compute = (%v, %v), want (0, true)", v, more)
	}
	if _, more := s.Compute(); more {
		t.Error("zero-duration run should finish after one value")
	}
}

func TestScrollerAbortJumpsToTarget(t *testing.T) {
	clk := installClock(t)
	s := NewScroller(LinearCurve)
	s.Start(0, 100, time.Second)
	clk.advance(100 * time.Millisecond)
	s.Compute()

	s.Abort()
	if s.Current() != 100 {
		t.Errorf("Current after abort = %v, want 100", s.Current())
	}
	if s.Status() != ScrollerFinished {
		t.Errorf("Status after abort = %v, want finished", s.Status())
	}
	if _, more := s.Compute(); more {
		t.Error("aborted scroller should not produce values")
	}
}

func TestScrollerRestartReplacesRun(t *testing.T) {
	clk := installClock(t)
	s := NewScroller(LinearCurve)
	s.Start(0, 100, time.Second)
	clk.advance(500 * time.Millisecond)
	s.Compute()

	s.Start(s.Current(), -50, 100*time.Millisecond)
	clk.advance(200 * time.Millisecond)
	v, _ := s.Compute()
	if v != -50 || s.Final() != -50 {
		t.Errorf("restarted run ended at %v (final %v), want -50", v, s.Final())
	}
}

func TestScrollerStatusString(t *testing.T) {
	tests := []struct {
		status ScrollerStatus
		want   string
	}{
		{ScrollerIdle, "idle"},
		{ScrollerRunning, "running"},
		{ScrollerFinished, "finished"},
		{ScrollerStatus(7), "ScrollerStatus(7)"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTickerStepping(t *testing.T) {
	clk := installClock(t)
	var calls []time.Duration
	ticker := NewTicker(func(elapsed time.Duration) {
		calls = append(calls, elapsed)
	})
	ticker.Start()
	defer ticker.Stop()

	clk.advance(16 * time.Millisecond)
	if n := StepTickers(); n != 1 {
		t.Fatalf("StepTickers = %d, want 1", n)
	}
	ticker.Stop()
	if n := StepTickers(); n != 0 {
		t.Errorf("StepTickers after stop = %d, want 0", n)
	}
	if len(calls) != 1 || calls[0] != 16*time.Millisecond {
		t.Errorf("calls = %v, want [16ms]", calls)
	}
	if HasActiveTickers() {
		t.Error("expected no active tickers")
	}
}

func TestCubicBezierEndpoints(t *testing.T) {
	for _, curve := range []func(float64) float64{Ease, EaseIn, EaseOut, EaseInOut} {
		if curve(0) != 0 || curve(1) != 1 {
			t.Errorf("curve endpoints = (%v, %v), want (0, 1)", curve(0), curve(1))
		}
	}
}

func TestParseCurve(t *testing.T) {
	for _, name := range CurveNames() {
		curve, err := ParseCurve(name)
		if err != nil {
			t.Fatalf("ParseCurve(%q): %v", name, err)
		}
		if curve(0) != 0 || curve(1) != 1 {
			t.Errorf("%s endpoints = (%v, %v)", name, curve(0), curve(1))
		}
		prev := 0.0
		for i := 1; i <= 20; i++ {
			v := curve(float64(i) / 20)
			if v < prev-1e-9 {
				t.Errorf("%s not monotonic at %d/20: %v < %v", name, i, v, prev)
			}
			prev = v
		}
	}
	if _, err := ParseCurve("bounce"); err == nil {
		t.Error("expected error for unknown curve")
	}
}

func TestEaseInStartsSlow(t *testing.T) {
	if v := EaseIn(0.25); v >= 0.25 {
		t.Errorf("EaseIn(0.25) = %v, want < 0.25", v)
	}
	if v := EaseOut(0.25); v <= 0.25 {
		t.Errorf("EaseOut(0.25) = %v, want > 0.25", v)
	}
}
