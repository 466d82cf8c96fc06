package animation

import "github.com/go-aretha/aretha/pkg/graphics"

// Tween interpolates between Begin and End values based on progress.
//
// Widgets use tweens to derive secondary values, such as a track color,
// from how far a handle has travelled between its two rest positions.
type Tween[T any] struct {
	// Begin is the starting value (when t = 0).
	Begin T
	// End is the ending value (when t = 1).
	End T
	// Lerp linearly interpolates between Begin and End. Receives the begin value,
	// end value, and progress t in [0, 1]. Returns the interpolated value.
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the interpolated value at t (0.0 to 1.0).
func (tw *Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, clampUnit(t))
}

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// LerpOffset linearly interpolates between two Offset values.
func LerpOffset(a, b graphics.Offset, t float64) graphics.Offset {
	return graphics.Offset{
		X: LerpFloat64(a.X, b.X, t),
		Y: LerpFloat64(a.Y, b.Y, t),
	}
}

// LerpColor linearly interpolates each ARGB channel of two colors.
func LerpColor(a, b graphics.Color, t float64) graphics.Color {
	aR, aG, aB := a.RGB8()
	bR, bG, bB := b.RGB8()
	lerp8 := func(x, y uint8) uint8 {
		return uint8(LerpFloat64(float64(x), float64(y), t) + 0.5)
	}
	return graphics.RGBA8(lerp8(aR, bR), lerp8(aG, bG), lerp8(aB, bB), lerp8(a.Alpha8(), b.Alpha8()))
}

// TweenFloat64 creates a tween for float64 values.
func TweenFloat64(begin, end float64) *Tween[float64] {
	return &Tween[float64]{Begin: begin, End: end, Lerp: LerpFloat64}
}

// TweenOffset creates a tween for Offset values.
func TweenOffset(begin, end graphics.Offset) *Tween[graphics.Offset] {
	return &Tween[graphics.Offset]{Begin: begin, End: end, Lerp: LerpOffset}
}

// TweenColor creates a tween for Color values.
func TweenColor(begin, end graphics.Color) *Tween[graphics.Color] {
	return &Tween[graphics.Color]{Begin: begin, End: end, Lerp: LerpColor}
}
