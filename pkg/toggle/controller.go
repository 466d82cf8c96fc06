// Package toggle implements the gesture and animation logic of a sliding
// on/off switch.
//
// The [Controller] owns no view. A host adapter feeds it pointer events and
// frame ticks, answers geometry queries, and redraws when asked. Scroll
// offsets follow the convention of a scrolled container: 0 shows the handle
// at its ON rest position and -(trackWidth-handleWidth) at its OFF rest
// position.
package toggle

import (
	"math"
	"time"

	"github.com/go-aretha/aretha/pkg/animation"
	"github.com/go-aretha/aretha/pkg/gestures"
	"github.com/go-aretha/aretha/pkg/graphics"
)

// DefaultDuration is the length of an animated settle.
const DefaultDuration = 200 * time.Millisecond

// Geometry is the handle and track layout at the time of a query.
type Geometry struct {
	TrackWidth   float64
	HandleWidth  float64
	HandleTop    float64
	HandleBottom float64
}

// BoundsStartX is the scroll offset of the ON rest position.
func (g Geometry) BoundsStartX() float64 {
	return 0
}

// BoundsEndX is the scroll offset of the OFF rest position.
func (g Geometry) BoundsEndX() float64 {
	return -math.Max(0, g.TrackWidth-g.HandleWidth)
}

// Clamp limits offset to [BoundsEndX, BoundsStartX].
func (g Geometry) Clamp(offset float64) float64 {
	return math.Max(math.Min(offset, g.BoundsStartX()), g.BoundsEndX())
}

// Target returns the rest offset for the given toggle value.
func (g Geometry) Target(on bool) float64 {
	if on {
		return g.BoundsStartX()
	}
	return g.BoundsEndX()
}

// HandleRect returns the handle's on-screen rectangle at scrollOffset.
func (g Geometry) HandleRect(scrollOffset float64) graphics.Rect {
	return graphics.Rect{
		Left:   -scrollOffset,
		Top:    g.HandleTop,
		Right:  -scrollOffset + g.HandleWidth,
		Bottom: g.HandleBottom,
	}
}

// GeometryProvider answers geometry queries. ok is false until the host has
// a handle laid out; gesture operations are inert until then.
type GeometryProvider interface {
	Geometry() (g Geometry, ok bool)
}

// GeometryFunc adapts a function to GeometryProvider.
type GeometryFunc func() (Geometry, bool)

// Geometry calls f.
func (f GeometryFunc) Geometry() (Geometry, bool) { return f() }

// StaticGeometry is a GeometryProvider with fixed layout.
type StaticGeometry Geometry

// Geometry returns g unchanged.
func (g StaticGeometry) Geometry() (Geometry, bool) { return Geometry(g), true }

// Host receives the side effects of the controller.
type Host interface {
	// RequestDisallowIntercept asks ancestors to stop (true) or resume
	// (false) intercepting the current gesture.
	RequestDisallowIntercept(disallow bool)
	// SetHandlePressed updates the handle's pressed visual state.
	SetHandlePressed(pressed bool)
	// Invalidate requests a redraw.
	Invalidate()
	// ScheduleFrame requests a call to AdvanceAnimation on the next frame.
	ScheduleFrame()
}

// Interpolator produces scroll offsets over time. [animation.Scroller]
// satisfies it.
type Interpolator interface {
	Start(from, to float64, duration time.Duration)
	Abort()
	Compute() (value float64, more bool)
}

// Options configures a Controller. Zero values select defaults.
type Options struct {
	Host         Host
	Geometry     GeometryProvider
	Interpolator Interpolator
	// Curve eases the default interpolator; nil is linear. It is ignored
	// when Interpolator is set.
	Curve func(float64) float64
	// TouchSlop defaults to gestures.DefaultTouchSlop.
	TouchSlop float64
	// Duration defaults to DefaultDuration. Negative disables animation.
	Duration time.Duration
}

// Controller is the gesture and animation state machine of a toggle.
//
// All methods must be called from the host's single event thread.
type Controller struct {
	host      Host
	geometry  GeometryProvider
	scroller  Interpolator
	touchSlop float64
	duration  time.Duration

	phase        TouchPhase
	session      *GestureSession
	state        State
	scrollOffset float64

	listeners      map[int]func(on bool)
	nextListenerID int
}

// NewController creates a controller starting from initial.
func NewController(initial State, opts Options) *Controller {
	c := &Controller{
		host:      opts.Host,
		geometry:  opts.Geometry,
		scroller:  opts.Interpolator,
		touchSlop: opts.TouchSlop,
		duration:  opts.Duration,
		state:     State{IsOn: initial.IsOn, ClipRadius: ClampRadius(initial.ClipRadius)},
		listeners: make(map[int]func(bool)),
	}
	if c.host == nil {
		c.host = nopHost{}
	}
	if c.geometry == nil {
		c.geometry = GeometryFunc(func() (Geometry, bool) { return Geometry{}, false })
	}
	if c.scroller == nil {
		curve := opts.Curve
		if curve == nil {
			curve = animation.LinearCurve
		}
		c.scroller = animation.NewScroller(curve)
	}
	if c.touchSlop <= 0 {
		c.touchSlop = gestures.DefaultTouchSlop
	}
	if c.duration == 0 {
		c.duration = DefaultDuration
	}
	if g, ok := c.geometry.Geometry(); ok {
		c.scrollOffset = g.Target(c.state.IsOn)
	}
	return c
}

// HandlePointer dispatches a pointer event and reports whether it was
// consumed.
func (c *Controller) HandlePointer(event gestures.PointerEvent) bool {
	switch event.Phase {
	case gestures.PointerPhaseDown:
		return c.HandlePointerDown(event.Position)
	case gestures.PointerPhaseMove:
		return c.HandlePointerMove(event.Position)
	case gestures.PointerPhaseUp:
		return c.HandlePointerUp()
	case gestures.PointerPhaseCancel:
		return c.HandlePointerCancel()
	}
	return false
}

// HandlePointerDown starts a gesture session. Once a handle exists the
// controller owns the touch stream, so the event is always consumed.
func (c *Controller) HandlePointerDown(pos graphics.Offset) bool {
	g, ok := c.geometry.Geometry()
	if !ok {
		return false
	}
	inside := g.HandleRect(c.scrollOffset).Contains(pos)
	c.session = &GestureSession{
		StartScrollOffset:   c.scrollOffset,
		StartX:              pos.X,
		StartedInsideHandle: inside,
	}
	c.host.SetHandlePressed(inside)
	c.host.RequestDisallowIntercept(inside)
	return true
}

// HandlePointerMove drags the handle once the pointer has travelled past
// the touch slop. It reports false when the move was left to the host.
func (c *Controller) HandlePointerMove(pos graphics.Offset) bool {
	s := c.session
	if s == nil {
		return false
	}
	g, ok := c.geometry.Geometry()
	if !ok {
		return false
	}
	if c.phase == PhaseIdle && math.Abs(pos.X-s.StartX) > c.touchSlop {
		c.phase = PhaseDragging
	}
	if !s.StartedInsideHandle || c.phase == PhaseIdle {
		return false
	}
	c.setScrollOffset(g.Clamp(s.StartScrollOffset - (pos.X - s.StartX)))
	return true
}

// HandlePointerUp ends the gesture. A press on the handle that never became
// a drag toggles; a drag snaps to the nearest side.
func (c *Controller) HandlePointerUp() bool {
	s := c.endSession()
	if s == nil {
		return false
	}
	if s.StartedInsideHandle && c.phase == PhaseIdle {
		c.Toggle()
	} else if c.phase == PhaseDragging {
		c.snap()
	}
	if c.phase == PhaseDragging {
		c.phase = PhaseIdle
	}
	return true
}

// HandlePointerCancel ends the gesture without treating it as a tap. A live
// drag still snaps so the handle never rests between the bounds.
func (c *Controller) HandlePointerCancel() bool {
	if c.endSession() == nil {
		return false
	}
	if c.phase == PhaseDragging {
		c.snap()
	}
	if c.phase == PhaseDragging {
		c.phase = PhaseIdle
	}
	return true
}

func (c *Controller) endSession() *GestureSession {
	s := c.session
	if s == nil {
		return nil
	}
	c.session = nil
	c.host.RequestDisallowIntercept(false)
	c.host.SetHandlePressed(false)
	return s
}

// snap settles on whichever side the handle's center is closer to.
func (c *Controller) snap() {
	g, ok := c.geometry.Geometry()
	if !ok {
		return
	}
	centerHandleX := c.scrollOffset - g.HandleWidth/2
	c.SetToggle(!(math.Abs(centerHandleX) > g.TrackWidth/2), true)
}

// Toggle flips the committed value with animation.
func (c *Controller) Toggle() {
	c.SetToggle(!c.state.IsOn, true)
}

// SetToggle commits on immediately and moves the handle to the matching
// rest position. Any settle in progress is aborted and replaced. Without
// animation the offset jumps and no frame is requested.
func (c *Controller) SetToggle(on, animate bool) {
	c.scroller.Abort()
	changed := c.state.IsOn != on
	c.state.IsOn = on

	g, ok := c.geometry.Geometry()
	switch {
	case !ok:
		// Relayout applies the bound once a handle exists.
		c.phase = PhaseIdle
	case !animate || c.duration < 0:
		c.phase = PhaseIdle
		c.scrollOffset = g.Target(on)
		c.host.Invalidate()
	default:
		c.phase = PhaseSettling
		c.scroller.Start(c.scrollOffset, g.Target(on), c.duration)
		c.host.Invalidate()
		c.host.ScheduleFrame()
	}

	if changed {
		c.notifyListeners()
	}
}

// AdvanceAnimation applies the next interpolated offset while settling and
// reports whether another frame is needed.
func (c *Controller) AdvanceAnimation() bool {
	if c.phase != PhaseSettling {
		return false
	}
	v, more := c.scroller.Compute()
	if !more {
		c.phase = PhaseIdle
		return false
	}
	if g, ok := c.geometry.Geometry(); ok {
		v = g.Clamp(v)
	}
	c.setScrollOffset(v)
	c.host.ScheduleFrame()
	return true
}

// Relayout snaps the handle to the rest position of the committed value.
// Hosts call it after the handle geometry changes.
func (c *Controller) Relayout() {
	c.SetToggle(c.state.IsOn, false)
}

func (c *Controller) setScrollOffset(v float64) {
	if v == c.scrollOffset {
		return
	}
	c.scrollOffset = v
	c.host.Invalidate()
}

// IsOn returns the committed toggle value.
func (c *Controller) IsOn() bool {
	return c.state.IsOn
}

// Phase returns the current touch phase.
func (c *Controller) Phase() TouchPhase {
	return c.phase
}

// Session returns a copy of the active gesture session, if any.
func (c *Controller) Session() (GestureSession, bool) {
	if c.session == nil {
		return GestureSession{}, false
	}
	return *c.session, true
}

// ScrollOffset returns the live horizontal offset of the sliding content.
func (c *Controller) ScrollOffset() float64 {
	return c.scrollOffset
}

// Progress returns how far the handle sits from the OFF rest position, from
// 0 (off) to 1 (on). It is 1 when no geometry is available and the toggle
// is on, 0 otherwise.
func (c *Controller) Progress() float64 {
	g, ok := c.geometry.Geometry()
	if !ok || g.BoundsEndX() == 0 {
		if c.state.IsOn {
			return 1
		}
		return 0
	}
	return 1 - c.scrollOffset/g.BoundsEndX()
}

// ClipRadius returns the persisted clip radius.
func (c *Controller) ClipRadius() float64 {
	return c.state.ClipRadius
}

// SetClipRadius stores r, clamped to be non-negative, and requests a redraw.
func (c *Controller) SetClipRadius(r float64) {
	c.state.ClipRadius = ClampRadius(r)
	c.host.Invalidate()
}

// State returns the persistent state for saving.
func (c *Controller) State() State {
	return c.state
}

// Restore replaces the persistent state, placing the handle at the restored
// rest position without animation.
func (c *Controller) Restore(s State) {
	c.state.ClipRadius = ClampRadius(s.ClipRadius)
	c.SetToggle(s.IsOn, false)
}

// AddListener registers fn to be called whenever the committed value
// changes. Returns an unsubscribe function.
func (c *Controller) AddListener(fn func(on bool)) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = fn
	return func() {
		delete(c.listeners, id)
	}
}

func (c *Controller) notifyListeners() {
	for _, listener := range c.listeners {
		listener(c.state.IsOn)
	}
}

type nopHost struct{}

func (nopHost) RequestDisallowIntercept(bool) {}
func (nopHost) SetHandlePressed(bool)         {}
func (nopHost) Invalidate()                   {}
func (nopHost) ScheduleFrame()                {}
