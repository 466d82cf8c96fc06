package widgets

import (
	"fmt"
	"math"
	"time"

	"github.com/go-aretha/aretha/pkg/animation"
	"github.com/go-aretha/aretha/pkg/config"
	"github.com/go-aretha/aretha/pkg/errors"
	"github.com/go-aretha/aretha/pkg/gestures"
	"github.com/go-aretha/aretha/pkg/graphics"
	"github.com/go-aretha/aretha/pkg/toggle"
)

// ChildRole identifies one of the three children a ToggleView lays out.
//
// Children are laid out as OFF | handle | ON. Scrolling the content left
// reveals the ON view beside the handle, scrolling right the OFF view.
type ChildRole int

const (
	// RoleHandle is the draggable knob.
	RoleHandle ChildRole = iota
	// RoleOff is shown when the toggle is off.
	RoleOff
	// RoleOn is shown when the toggle is on.
	RoleOn

	roleCount
)

func (r ChildRole) String() string {
	switch r {
	case RoleHandle:
		return "handle"
	case RoleOff:
		return "off"
	case RoleOn:
		return "on"
	default:
		return fmt.Sprintf("ChildRole(%d)", int(r))
	}
}

// Child is a measured sub-view of a ToggleView.
type Child struct {
	Role ChildRole
	// Size is the measured size supplied by the host.
	Size graphics.Size
	// Frame is the laid-out rectangle in unscrolled content coordinates.
	Frame graphics.Rect
	// Pressed mirrors the platform pressed state; only the handle uses it.
	Pressed bool
}

// ViewParent is the part of the host view tree a ToggleView talks to.
type ViewParent interface {
	// RequestDisallowInterceptTouchEvent stops (true) or resumes (false)
	// ancestors from stealing the current gesture.
	RequestDisallowInterceptTouchEvent(disallow bool)
	// Invalidate schedules a redraw of the toggle.
	Invalidate()
}

// ToggleView adapts a toggle.Controller to a retained view tree. It lays out
// its children, answers the controller's geometry queries, drives settle
// frames with an animation.Ticker, and exposes the persisted state.
type ToggleView struct {
	// ActiveColor is the track color when on.
	ActiveColor graphics.Color
	// InactiveColor is the track color when off.
	InactiveColor graphics.Color
	// ThumbColor is the handle fill color.
	ThumbColor graphics.Color

	parent     ViewParent
	controller *toggle.Controller
	children   [roleCount]*Child
	size       graphics.Size
	laidOut    bool
	ticker     *animation.Ticker
}

// NewToggleView creates a toggle configured from attrs. parent may be nil.
func NewToggleView(parent ViewParent, attrs config.Attributes) *ToggleView {
	v := &ToggleView{
		ActiveColor:   graphics.ColorGreen,
		InactiveColor: graphics.ColorGray,
		ThumbColor:    graphics.ColorWhite,
		parent:        parent,
	}
	opts := attrs.Options()
	opts.Host = v
	opts.Geometry = v
	v.controller = toggle.NewController(attrs.State, opts)
	v.ticker = animation.NewTicker(func(time.Duration) { v.tick() })
	return v
}

// Controller returns the gesture controller behind the view.
func (v *ToggleView) Controller() *toggle.Controller {
	return v.controller
}

// AddChild installs c in the slot for its role, replacing any previous
// child with that role. Unknown roles are reported and rejected.
func (v *ToggleView) AddChild(c *Child) bool {
	if c == nil || c.Role < 0 || c.Role >= roleCount {
		role := "nil"
		if c != nil {
			role = c.Role.String()
		}
		errors.Report(errors.New("widgets.ToggleView.AddChild", errors.KindWidget,
			fmt.Errorf("only handle, on and off children are allowed (got %s)", role)))
		return false
	}
	v.children[c.Role] = c
	if v.laidOut {
		v.Layout(v.size)
	}
	return true
}

// SetHandle installs a handle child of the given measured size.
func (v *ToggleView) SetHandle(size graphics.Size) {
	v.AddChild(&Child{Role: RoleHandle, Size: size})
}

// SetOnView installs the ON child.
func (v *ToggleView) SetOnView(size graphics.Size) {
	v.AddChild(&Child{Role: RoleOn, Size: size})
}

// SetOffView installs the OFF child.
func (v *ToggleView) SetOffView(size graphics.Size) {
	v.AddChild(&Child{Role: RoleOff, Size: size})
}

// Child returns the child for role, or nil.
func (v *ToggleView) Child(role ChildRole) *Child {
	if role < 0 || role >= roleCount {
		return nil
	}
	return v.children[role]
}

// Layout positions the children inside a track of the given size and
// moves the handle to the rest position of the committed value.
func (v *ToggleView) Layout(size graphics.Size) {
	v.size = size
	v.laidOut = true

	handleWidth := 0.0
	if h := v.children[RoleHandle]; h != nil {
		handleWidth = h.Size.Width
	}
	for _, c := range v.children {
		if c == nil {
			continue
		}
		y := math.Round((size.Height - c.Size.Height) / 2)
		var x float64
		switch c.Role {
		case RoleOff:
			x = -c.Size.Width
		case RoleOn:
			x = handleWidth
		}
		c.Frame = graphics.RectFromLTWH(x, y, c.Size.Width, c.Size.Height)
	}
	v.controller.Relayout()
}

// Size returns the laid-out track size.
func (v *ToggleView) Size() graphics.Size {
	return v.size
}

// Geometry implements toggle.GeometryProvider.
func (v *ToggleView) Geometry() (toggle.Geometry, bool) {
	h := v.children[RoleHandle]
	if h == nil || !v.laidOut {
		return toggle.Geometry{}, false
	}
	return toggle.Geometry{
		TrackWidth:   v.size.Width,
		HandleWidth:  h.Frame.Width(),
		HandleTop:    h.Frame.Top,
		HandleBottom: h.Frame.Bottom,
	}, true
}

// ChildFrame returns the on-screen rectangle of the child for role after
// applying the current scroll offset.
func (v *ToggleView) ChildFrame(role ChildRole) (graphics.Rect, bool) {
	c := v.Child(role)
	if c == nil || !v.laidOut {
		return graphics.Rect{}, false
	}
	return c.Frame.Translate(-v.controller.ScrollOffset(), 0), true
}

// HitTest reports whether pos lies within the track.
func (v *ToggleView) HitTest(pos graphics.Offset) bool {
	return graphics.RectFromLTWH(0, 0, v.size.Width, v.size.Height).Contains(pos)
}

// HandlePointer forwards a pointer event to the controller and reports
// whether the toggle consumed it.
func (v *ToggleView) HandlePointer(event gestures.PointerEvent) bool {
	return v.controller.HandlePointer(event)
}

// RequestDisallowIntercept implements toggle.Host.
func (v *ToggleView) RequestDisallowIntercept(disallow bool) {
	if v.parent != nil {
		v.parent.RequestDisallowInterceptTouchEvent(disallow)
	}
}

// SetHandlePressed implements toggle.Host.
func (v *ToggleView) SetHandlePressed(pressed bool) {
	if h := v.children[RoleHandle]; h != nil {
		h.Pressed = pressed
	}
}

// Invalidate implements toggle.Host.
func (v *ToggleView) Invalidate() {
	if v.parent != nil {
		v.parent.Invalidate()
	}
}

// ScheduleFrame implements toggle.Host by keeping the view's ticker
// running until the settle finishes.
func (v *ToggleView) ScheduleFrame() {
	v.ticker.Start()
}

func (v *ToggleView) tick() {
	defer errors.Recover("widgets.ToggleView.tick")
	if !v.controller.AdvanceAnimation() {
		v.ticker.Stop()
	}
}

// IsAnimating reports whether a settle is in progress.
func (v *ToggleView) IsAnimating() bool {
	return v.ticker.IsActive()
}

// ScrollX returns the live scroll offset of the sliding content.
func (v *ToggleView) ScrollX() float64 {
	return v.controller.ScrollOffset()
}

// IsOn returns the committed value.
func (v *ToggleView) IsOn() bool {
	return v.controller.IsOn()
}

// SetToggle commits a value, optionally animating the handle.
func (v *ToggleView) SetToggle(on, animate bool) {
	v.controller.SetToggle(on, animate)
}

// Toggle flips the committed value with animation.
func (v *ToggleView) Toggle() {
	v.controller.Toggle()
}

// OnChanged registers fn for committed value changes. Returns an
// unsubscribe function.
func (v *ToggleView) OnChanged(fn func(on bool)) func() {
	return v.controller.AddListener(fn)
}

// Radius returns the clip radius in pixels.
func (v *ToggleView) Radius() float64 {
	return v.controller.ClipRadius()
}

// SetRadius sets the clip radius in pixels. Negative values clamp to 0.
func (v *ToggleView) SetRadius(r float64) {
	v.controller.SetClipRadius(r)
}

// TrackColor blends InactiveColor and ActiveColor by how far the handle has
// travelled toward the ON side.
func (v *ToggleView) TrackColor() graphics.Color {
	return animation.TweenColor(v.InactiveColor, v.ActiveColor).Evaluate(v.controller.Progress())
}

// SaveState returns the state the host should persist.
func (v *ToggleView) SaveState() toggle.State {
	return v.controller.State()
}

// RestoreState applies a previously saved state.
func (v *ToggleView) RestoreState(s toggle.State) {
	v.controller.Restore(s)
}

// Dispose stops any running settle frames.
func (v *ToggleView) Dispose() {
	v.ticker.Stop()
}
