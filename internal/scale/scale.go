package scale

import "math"

// Easing holds the constants shared by every per-tick update.
type Easing struct {
	// Gap is the base increment applied per tick.
	Gap float32
	// Div is the threshold divisor separating the slow and fast bands.
	Div float64
}

// Inverse returns 1/n.
func Inverse(n int) float32 {
	return 1 / float32(n)
}

// MaxScale shifts x left by i of n equal slices, floored at zero.
func MaxScale(x float32, i, n int) float32 {
	return float32(math.Max(0, float64(x-float32(i)*Inverse(n))))
}

// DivideScale extracts the i-th of n sequential sub-intervals of x as a
// value in [0, 1]. It is 0 before the slice, ramps inside it and is 1 after.
func DivideScale(x float32, i, n int) float32 {
	return float32(math.Min(float64(Inverse(n)), float64(MaxScale(x, i, n)))) * float32(n)
}

// ScaleFactor is floor(x / Div): 0 below the threshold, 1 just past it.
func (e Easing) ScaleFactor(x float32) float32 {
	return float32(math.Floor(float64(x) / e.Div))
}

// MirrorValue blends between rates 1/a and 1/b depending on the band x is in.
func (e Easing) MirrorValue(x float32, a, b int) float32 {
	sf := e.ScaleFactor(x)
	return (1-sf)*Inverse(a) + sf*Inverse(b)
}

// UpdateValue is the signed delta to add to x for one tick.
func (e Easing) UpdateValue(x, dir float32, a, b int) float32 {
	return e.MirrorValue(x, a, b) * dir * e.Gap
}
