package geometry

import (
	"image"
	"math"
)

// Point is a position in either display space or image space, in pixels.
type Point struct{ X, Y float64 }

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Size is the integer pixel size of an image or a viewport.
type Size struct{ W, H int }

// Valid reports whether both components are positive.
func (s Size) Valid() bool { return s.W > 0 && s.H > 0 }

// SizeOf returns the size of an image rectangle.
func SizeOf(r image.Rectangle) Size { return Size{W: r.Dx(), H: r.Dy()} }

// Rect is an origin/extent rectangle. Values built through Normalize or
// MapRectangle always have non-negative width and height.
type Rect struct{ X, Y, W, H float64 }

// Normalize returns the rectangle spanned by two corners, in any drag direction.
// Origin is the top-left corner.
func Normalize(a, b Point) Rect {
	x0, x1 := math.Min(a.X, b.X), math.Max(a.X, b.X)
	y0, y1 := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// RectFromImage converts an image.Rectangle into a Rect.
func RectFromImage(r image.Rectangle) Rect {
	r = r.Canon()
	return Rect{X: float64(r.Min.X), Y: float64(r.Min.Y), W: float64(r.Dx()), H: float64(r.Dy())}
}

// Min returns the top-left corner.
func (r Rect) Min() Point { return Point{X: r.X, Y: r.Y} }

// Max returns the bottom-right corner.
func (r Rect) Max() Point { return Point{X: r.X + r.W, Y: r.Y + r.H} }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Pixels rounds both corners to the nearest pixel and returns the result as
// slice bounds.
func (r Rect) Pixels() image.Rectangle {
	br := r.Max()
	return image.Rect(
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(br.X)), int(math.Round(br.Y)),
	)
}

// SnapWithin rounds origin and extent to whole pixels separately, so the
// snapped size depends only on r's size and not on where r sits. The result
// is shifted back inside a limit-sized image where rounding pushed it past
// the far edge.
func (r Rect) SnapWithin(limit Size) Rect {
	s := Rect{X: math.Round(r.X), Y: math.Round(r.Y), W: math.Round(r.W), H: math.Round(r.H)}
	if over := s.X + s.W - float64(limit.W); over > 0 {
		s.X = math.Max(s.X-over, 0)
	}
	if over := s.Y + s.H - float64(limit.H); over > 0 {
		s.Y = math.Max(s.Y-over, 0)
	}
	return s.Intersect(Rect{W: float64(limit.W), H: float64(limit.H)})
}

// Clamp restricts p to bounds. The right and bottom edges are inclusive.
func (p Point) Clamp(bounds Rect) Point {
	br := bounds.Max()
	return Point{
		X: math.Min(math.Max(p.X, bounds.X), br.X),
		Y: math.Min(math.Max(p.Y, bounds.Y), br.Y),
	}
}

// Intersect returns the largest rectangle contained by both r and s,
// or the zero Rect when they do not overlap.
func (r Rect) Intersect(s Rect) Rect {
	rmax, smax := r.Max(), s.Max()
	x0, y0 := math.Max(r.X, s.X), math.Max(r.Y, s.Y)
	x1, y1 := math.Min(rmax.X, smax.X), math.Min(rmax.Y, smax.Y)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
