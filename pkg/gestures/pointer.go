// Package gestures defines the pointer events delivered by a host to
// gesture-aware widgets.
package gestures

import (
	"fmt"

	"github.com/go-aretha/aretha/pkg/graphics"
)

// DefaultTouchSlop is the distance in pixels a pointer must travel before
// a press is treated as a drag.
const DefaultTouchSlop = 8.0

// PointerPhase identifies where a pointer event sits within a gesture.
type PointerPhase int

const (
	// PointerPhaseDown starts a gesture.
	PointerPhaseDown PointerPhase = iota
	// PointerPhaseMove reports movement while the pointer is down.
	PointerPhaseMove
	// PointerPhaseUp ends a gesture normally.
	PointerPhaseUp
	// PointerPhaseCancel ends a gesture that the host took away.
	PointerPhaseCancel
)

func (p PointerPhase) String() string {
	switch p {
	case PointerPhaseDown:
		return "down"
	case PointerPhaseMove:
		return "move"
	case PointerPhaseUp:
		return "up"
	case PointerPhaseCancel:
		return "cancel"
	default:
		return fmt.Sprintf("PointerPhase(%d)", int(p))
	}
}

// ParsePointerPhase converts the lowercase name produced by String back to
// a phase.
func ParsePointerPhase(s string) (PointerPhase, error) {
	switch s {
	case "down":
		return PointerPhaseDown, nil
	case "move":
		return PointerPhaseMove, nil
	case "up":
		return PointerPhaseUp, nil
	case "cancel":
		return PointerPhaseCancel, nil
	}
	return 0, fmt.Errorf("unknown pointer phase %q", s)
}

// PointerEvent is a single pointer sample in widget-local coordinates.
type PointerEvent struct {
	PointerID int64
	Position  graphics.Offset
	// Delta is the movement since the previous event of the same pointer.
	Delta graphics.Offset
	Phase PointerPhase
}
