package animation

import (
	"fmt"
	"time"
)

// ScrollerStatus reports where a Scroller is in its run.
type ScrollerStatus int

const (
	// ScrollerIdle means no interpolation has been started.
	ScrollerIdle ScrollerStatus = iota
	// ScrollerRunning means Compute still has values to produce.
	ScrollerRunning
	// ScrollerFinished means the interpolation reached its target or was aborted.
	ScrollerFinished
)

// String returns a human-readable representation of the status.
func (s ScrollerStatus) String() string {
	switch s {
	case ScrollerIdle:
		return "idle"
	case ScrollerRunning:
		return "running"
	case ScrollerFinished:
		return "finished"
	default:
		return fmt.Sprintf("ScrollerStatus(%d)", int(s))
	}
}

// Scroller interpolates a single scroll coordinate over time.
//
// Unlike a ticker-driven controller, a Scroller does nothing on its own: the
// owner polls Compute once per frame and applies the returned value. Time is
// read from the package clock, so a fake clock makes runs reproducible.
//
// Only one run is active at a time. Start replaces any run in progress.
type Scroller struct {
	// Curve transforms linear progress (optional, defaults to linear).
	Curve func(float64) float64

	status   ScrollerStatus
	start    time.Time
	duration time.Duration
	from     float64
	to       float64
	current  float64
}

// NewScroller creates a scroller with the given easing curve.
func NewScroller(curve func(float64) float64) *Scroller {
	return &Scroller{Curve: curve}
}

// Start begins interpolating from one value to another over duration.
// A zero or negative duration finishes on the next Compute call.
func (s *Scroller) Start(from, to float64, duration time.Duration) {
	s.from = from
	s.to = to
	s.current = from
	s.duration = duration
	s.start = Now()
	s.status = ScrollerRunning
}

// Abort stops the run and jumps the current value to the target.
func (s *Scroller) Abort() {
	if s.status != ScrollerRunning {
		return
	}
	s.current = s.to
	s.status = ScrollerFinished
}

// Compute advances the interpolation to the current clock time.
//
// It reports false once the run is over. The call that reaches the target
// still reports true so the owner applies the final value exactly once.
func (s *Scroller) Compute() (float64, bool) {
	if s.status != ScrollerRunning {
		return s.current, false
	}

	elapsed := Now().Sub(s.start)
	if s.duration <= 0 || elapsed >= s.duration {
		s.current = s.to
		s.status = ScrollerFinished
		return s.current, true
	}

	progress := float64(elapsed) / float64(s.duration)
	if s.Curve != nil {
		progress = s.Curve(progress)
	}
	s.current = LerpFloat64(s.from, s.to, progress)
	return s.current, true
}

// Status returns the current status.
func (s *Scroller) Status() ScrollerStatus {
	return s.status
}

// IsFinished reports whether Compute has nothing more to produce.
func (s *Scroller) IsFinished() bool {
	return s.status != ScrollerRunning
}

// Current returns the most recently computed value.
func (s *Scroller) Current() float64 {
	return s.current
}

// Final returns the target of the current or last run.
func (s *Scroller) Final() float64 {
	return s.to
}

// Duration returns the length of the current or last run.
func (s *Scroller) Duration() time.Duration {
	return s.duration
}
