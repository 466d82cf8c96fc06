package toggle

import "fmt"

// TouchPhase governs how the controller interprets the next pointer event.
//
//	            slop exceeded
//	Idle ─────────────────────► Dragging
//	 ▲  ▲                          │
//	 │  └──── settle done ──┐      │ release
//	 │                      │      ▼
//	 └──── release ──── Settling ◄─┘
//
// SetToggle enters Settling from any phase.
type TouchPhase int

const (
	// PhaseIdle means no drag and no animation is in progress.
	PhaseIdle TouchPhase = iota
	// PhaseDragging means the pointer moved past the touch slop and the
	// handle follows it.
	PhaseDragging
	// PhaseSettling means the handle is animating to a rest position.
	PhaseSettling
)

func (p TouchPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseSettling:
		return "settling"
	default:
		return fmt.Sprintf("TouchPhase(%d)", int(p))
	}
}

// GestureSession is the bookkeeping for one pointer-down to pointer-up
// sequence. It is created on Down and discarded on Up or Cancel.
type GestureSession struct {
	// StartScrollOffset is the scroll offset when the pointer went down.
	StartScrollOffset float64
	// StartX is the pointer x when the pointer went down.
	StartX float64
	// StartedInsideHandle records whether the down event hit the handle.
	StartedInsideHandle bool
}
