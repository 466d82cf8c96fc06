package animation

import (
	"fmt"
	"math"
	"sort"
)

// A curve maps linear progress t in [0, 1] to eased progress. Set a
// [Scroller]'s Curve field to apply one; toggles settle on [LinearCurve]
// unless configured otherwise.

// LinearCurve moves at constant speed.
func LinearCurve(t float64) float64 {
	return t
}

// Standard CSS timing functions.
var (
	Ease      = CubicBezier(0.25, 0.1, 0.25, 1.0)
	EaseIn    = CubicBezier(0.4, 0.0, 1.0, 1.0)
	EaseOut   = CubicBezier(0.0, 0.0, 0.2, 1.0)
	EaseInOut = CubicBezier(0.4, 0.0, 0.2, 1.0)
)

var namedCurves = map[string]func(float64) float64{
	"linear":      LinearCurve,
	"ease":        Ease,
	"ease-in":     EaseIn,
	"ease-out":    EaseOut,
	"ease-in-out": EaseInOut,
}

// ParseCurve returns the curve registered under name, as used in
// configuration files.
func ParseCurve(name string) (func(float64) float64, error) {
	if c, ok := namedCurves[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown curve %q (want one of %v)", name, CurveNames())
}

// CurveNames lists the names accepted by ParseCurve.
func CurveNames() []string {
	names := make([]string, 0, len(namedCurves))
	for name := range namedCurves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// bezier is a cubic bezier from (0,0) to (1,1) with control points
// (x1,y1) and (x2,y2), evaluated per axis.
type bezier struct {
	x1, y1, x2, y2 float64
}

func bezierAxis(p1, p2, u float64) float64 {
	inv := 1 - u
	return 3*inv*inv*u*p1 + 3*inv*u*u*p2 + u*u*u
}

func bezierSlope(p1, p2, u float64) float64 {
	inv := 1 - u
	return 3*inv*inv*p1 + 6*inv*u*(p2-p1) + 3*u*u*(1-p2)
}

// solve finds the curve parameter whose x equals t.
func (b bezier) solve(t float64) float64 {
	const epsilon = 1e-7
	u := t
	for i := 0; i < 8; i++ {
		dx := bezierAxis(b.x1, b.x2, u) - t
		if math.Abs(dx) < epsilon {
			return clampUnit(u)
		}
		slope := bezierSlope(b.x1, b.x2, u)
		if math.Abs(slope) < epsilon {
			break
		}
		u -= dx / slope
	}
	// Newton diverged or stalled; bisect within [0, 1].
	lo, hi := 0.0, 1.0
	u = clampUnit(u)
	for i := 0; i < 12; i++ {
		dx := bezierAxis(b.x1, b.x2, u) - t
		if math.Abs(dx) < epsilon {
			break
		}
		if dx > 0 {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) / 2
	}
	return u
}

// CubicBezier returns the easing of CSS cubic-bezier(x1, y1, x2, y2).
func CubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	b := bezier{x1: x1, y1: y1, x2: x2, y2: y2}
	return func(t float64) float64 {
		switch {
		case t <= 0:
			return 0
		case t >= 1:
			return 1
		}
		return bezierAxis(b.y1, b.y2, b.solve(t))
	}
}

func clampUnit(value float64) float64 {
	return math.Max(0, math.Min(1, value))
}
