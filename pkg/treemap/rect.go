package treemap

import "math"

// eps is the absolute tolerance used for geometric comparisons.
const eps = 1e-9

// Rect is an axis-aligned rectangle. X and Y are the top-left corner in
// user units (pixels for SVG and PNG, character cells in the terminal).
type Rect struct {
	X, Y float64
	W, H float64
}

// Area returns W*H.
func (r Rect) Area() float64 { return r.W * r.H }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the horizontal center point.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center point.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Empty reports whether the rectangle has no usable area.
func (r Rect) Empty() bool { return r.W <= eps || r.H <= eps }

// Valid reports whether r can be used as a layout region.
func (r Rect) Valid() bool {
	for _, v := range []float64{r.X, r.Y, r.W, r.H} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.W > 0 && r.H > 0
}

// AspectRatio returns max(W/H, H/W). Degenerate rectangles report +Inf.
func (r Rect) AspectRatio() float64 {
	if r.W <= 0 || r.H <= 0 {
		return math.Inf(1)
	}
	return math.Max(r.W/r.H, r.H/r.W)
}

// Inset shrinks the rectangle by the given margins. Margins that exceed the
// available space collapse the result to zero width or height rather than
// producing negative dimensions.
func (r Rect) Inset(top, right, bottom, left float64) Rect {
	out := Rect{
		X: r.X + left,
		Y: r.Y + top,
		W: r.W - left - right,
		H: r.H - top - bottom,
	}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Intersect returns the overlapping rectangle of r and o, or a zero Rect
// when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.Right(), o.Right())
	y1 := math.Min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Contains reports whether o lies within r, allowing for tol of slack on
// every edge.
func (r Rect) Contains(o Rect, tol float64) bool {
	return o.X >= r.X-tol && o.Y >= r.Y-tol &&
		o.Right() <= r.Right()+tol && o.Bottom() <= r.Bottom()+tol
}
