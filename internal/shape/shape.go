// Package shape computes the line segments a host draws for each frame.
//
// Coordinates are in viewport units with the origin at the top-left and y
// growing downward. Angles follow the same convention, so a positive
// rotation turns clockwise on screen.
package shape

import (
	"math"

	"github.com/san-kum/ntsquare/internal/chain"
	"github.com/san-kum/ntsquare/internal/scale"
)

type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return math.Hypot(s.X2-s.X1, s.Y2-s.Y1)
}

// Layout holds the viewport and the fixed drawing constants.
type Layout struct {
	Width, Height float64
	Nodes         int
	Lines         int
	Steps         int
	SizeFactor    float64
	StrokeFactor  float64
}

// Gap is the vertical spacing between node centres.
func (l Layout) Gap() float64 { return l.Height / float64(l.Nodes+1) }

// Size is the half-extent of a fully unfolded node.
func (l Layout) Size() float64 { return l.Gap() / l.SizeFactor }

// StrokeWidth is the line thickness for the viewport.
func (l Layout) StrokeWidth() float64 { return math.Min(l.Width, l.Height) / l.StrokeFactor }

// Center returns the anchor point of node i.
func (l Layout) Center(i int) (float64, float64) {
	return l.Width / 2, l.Gap() * float64(i+1)
}

// Node returns the segments of node i at the given scale. The first half
// of the scale swings the fan segments up from vertical to horizontal; the
// second half lifts the guide lines apart, one step at a time.
func (l Layout) Node(i int, sc float32) []Segment {
	cx, cy := l.Center(i)
	size := l.Size()
	xGap := 2 * size / float64(l.Lines)
	fold := scale.DivideScale(sc, 0, 2)
	lift := scale.DivideScale(sc, 1, 2)

	segs := make([]Segment, 0, l.Steps*(l.Steps+l.Lines))
	for j := 0; j < l.Steps; j++ {
		y := size * float64(1-2*j) * float64(scale.DivideScale(lift, j, 2))
		for k := 0; k < l.Steps; k++ {
			sx := cx - size*float64(1-2*k)
			segs = append(segs, Segment{sx, cy, sx, cy + y})
		}

		ox, oy := cx-size, cy+y
		for k := 0; k < l.Lines; k++ {
			sck := scale.DivideScale(fold, k, l.Lines)
			theta := -math.Pi / 2 * float64(1-scale.DivideScale(sck, 1, 2))
			length := xGap * float64(scale.DivideScale(sck, 0, 2))
			x := ox + float64(k)*xGap
			segs = append(segs, Segment{x, oy, x + length*math.Cos(theta), oy + length*math.Sin(theta)})
		}
	}
	return segs
}

// Frame returns the segments of every node in the draw set, in draw order.
func (l Layout) Frame(frames []chain.Frame) []Segment {
	var segs []Segment
	for _, f := range frames {
		segs = append(segs, l.Node(f.Index, f.Scale)...)
	}
	return segs
}
