// Package animation provides the time-based primitives behind widget
// settle animations.
//
// # Core Components
//
//   - [Scroller]: interpolates one coordinate from a start value to a target
//     over a fixed duration. The owner polls [Scroller.Compute] once per
//     frame and applies the value it returns.
//
//   - [Ticker]: calls a callback on every frame while active. Hosts drive
//     all active tickers by calling [StepTickers] from their frame loop.
//
//   - Curves: easing functions such as [LinearCurve] and [EaseInOut].
//
//   - [Tween]: maps a 0-1 progress value onto floats, offsets or colors.
//
// # Basic Usage
//
//	s := animation.NewScroller(animation.LinearCurve)
//	s.Start(0, -240, 200*time.Millisecond)
//	ticker := animation.NewTicker(func(time.Duration) {
//	    v, more := s.Compute()
//	    if !more {
//	        ticker.Stop()
//	        return
//	    }
//	    apply(v)
//	})
//	ticker.Start()
//
// Time comes from a replaceable [Clock]; tests install a fake one with
// [SetClock].
package animation

import (
	"sync"
	"time"
)

var (
	tickerMu      sync.Mutex
	activeTickers = make(map[*Ticker]struct{})
)

// Ticker calls a callback on each frame while active.
//
// The callback receives the elapsed time since Start was called. Tickers are
// driven by the host's frame loop via [StepTickers]; a ticker never spawns a
// goroutine of its own.
type Ticker struct {
	callback func(elapsed time.Duration)
	isActive bool
	start    time.Time
}

// NewTicker creates a new ticker with the given callback.
func NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{
		callback: callback,
	}
}

// Start activates the ticker. Starting an active ticker is a no-op.
func (t *Ticker) Start() {
	if t.isActive {
		return
	}
	t.isActive = true
	t.start = Now()
	tickerMu.Lock()
	activeTickers[t] = struct{}{}
	tickerMu.Unlock()
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	if !t.isActive {
		return
	}
	t.isActive = false
	tickerMu.Lock()
	delete(activeTickers, t)
	tickerMu.Unlock()
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.isActive
}

// Elapsed returns the time since the ticker started.
func (t *Ticker) Elapsed() time.Duration {
	if !t.isActive {
		return 0
	}
	return Now().Sub(t.start)
}

// StepTickers advances all active tickers and returns how many ran.
// Call it once per frame from the host's frame loop.
func StepTickers() int {
	tickerMu.Lock()
	if len(activeTickers) == 0 {
		tickerMu.Unlock()
		return 0
	}
	// Copy so callbacks may start or stop tickers without deadlocking.
	tickers := make([]*Ticker, 0, len(activeTickers))
	for ticker := range activeTickers {
		tickers = append(tickers, ticker)
	}
	tickerMu.Unlock()

	stepped := 0
	for _, ticker := range tickers {
		if ticker.isActive && ticker.callback != nil {
			ticker.callback(Now().Sub(ticker.start))
			stepped++
		}
	}
	return stepped
}

// HasActiveTickers returns true if any tickers are active.
func HasActiveTickers() bool {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	return len(activeTickers) > 0
}
