package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDimensions is returned by ComputeTransform when the image or the
// viewport has a non-positive component.
var ErrInvalidDimensions = errors.New("invalid dimensions")

// fitEpsilon absorbs float error when the scaled size lands on a whole pixel.
const fitEpsilon = 1e-9

// Transform maps display space onto image space:
//
//	image = (display - Offset) / Factor
//
// Image and Viewport are the inputs it was computed from.
type Transform struct {
	Factor   float64
	Offset   Point
	Image    Size
	Viewport Size
}

// Direction selects the target space for MapRectangle.
type Direction int

const (
	ToImage Direction = iota
	ToDisplay
)

func (d Direction) String() string {
	switch d {
	case ToImage:
		return "to-image"
	case ToDisplay:
		return "to-display"
	default:
		return "unknown"
	}
}

type transformOptions struct {
	maxFactor float64
}

// Option customises ComputeTransform.
type Option func(*transformOptions)

// WithMaxFactor caps the scale factor. WithMaxFactor(1) keeps small images at
// their native size instead of enlarging them to fill the viewport.
func WithMaxFactor(f float64) Option {
	return func(o *transformOptions) {
		if f > 0 {
			o.maxFactor = f
		}
	}
}

// ComputeTransform returns the uniform fit-within transform of an image of
// size img into viewport: the scaled image keeps its aspect ratio, never
// exceeds the viewport and is centered in it.
func ComputeTransform(img, viewport Size, opts ...Option) (Transform, error) {
	if !img.Valid() || !viewport.Valid() {
		return Transform{}, fmt.Errorf("%w: image %dx%d, viewport %dx%d",
			ErrInvalidDimensions, img.W, img.H, viewport.W, viewport.H)
	}
	var o transformOptions
	for _, opt := range opts {
		opt(&o)
	}
	factor := math.Min(float64(viewport.W)/float64(img.W), float64(viewport.H)/float64(img.H))
	if o.maxFactor > 0 && factor > o.maxFactor {
		factor = o.maxFactor
	}
	t := Transform{Factor: factor, Image: img, Viewport: viewport}
	d := t.DisplaySize()
	t.Offset = Point{
		X: float64((viewport.W - d.W) / 2),
		Y: float64((viewport.H - d.H) / 2),
	}
	return t, nil
}

// Valid reports whether t came out of a successful ComputeTransform.
func (t Transform) Valid() bool {
	return t.Factor > 0 && t.Image.Valid() && t.Viewport.Valid()
}

// DisplaySize is the whole-pixel size of the scaled image.
func (t Transform) DisplaySize() Size {
	if t.Factor <= 0 {
		return Size{}
	}
	w := int(math.Floor(float64(t.Image.W)*t.Factor + fitEpsilon))
	h := int(math.Floor(float64(t.Image.H)*t.Factor + fitEpsilon))
	if t.Viewport.W > 0 && w > t.Viewport.W {
		w = t.Viewport.W
	}
	if t.Viewport.H > 0 && h > t.Viewport.H {
		h = t.Viewport.H
	}
	return Size{W: max(w, 1), H: max(h, 1)}
}

// DisplayBounds is the area of the viewport covered by the scaled image.
func (t Transform) DisplayBounds() Rect {
	d := t.DisplaySize()
	return Rect{X: t.Offset.X, Y: t.Offset.Y, W: float64(d.W), H: float64(d.H)}
}

// ToImageSpace maps a display point into image space, clamped to
// [0, width) x [0, height).
func ToImageSpace(p Point, t Transform) Point {
	if t.Factor <= 0 {
		return Point{}
	}
	x := (p.X - t.Offset.X) / t.Factor
	y := (p.Y - t.Offset.Y) / t.Factor
	return Point{X: clampOpen(x, float64(t.Image.W)), Y: clampOpen(y, float64(t.Image.H))}
}

// ToDisplaySpace maps an image point into display space.
func ToDisplaySpace(p Point, t Transform) Point {
	return Point{X: p.X*t.Factor + t.Offset.X, Y: p.Y*t.Factor + t.Offset.Y}
}

// MapRectangle maps both corners of r in the given direction and returns the
// re-normalized result.
func MapRectangle(r Rect, t Transform, dir Direction) Rect {
	conv := ToDisplaySpace
	if dir == ToImage {
		conv = ToImageSpace
	}
	return Normalize(conv(r.Min(), t), conv(r.Max(), t))
}

// clampOpen restricts v to [0, limit).
func clampOpen(v, limit float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v >= limit {
		return math.Nextafter(limit, 0)
	}
	return v
}
