package geometry

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_AllDragDirections(t *testing.T) {
	a, b := Pt(40, 30), Pt(140, 90)
	want := Rect{X: 40, Y: 30, W: 100, H: 60}
	drags := map[string][2]Point{
		"down-right": {a, b},
		"up-left":    {b, a},
		"down-left":  {Pt(140, 30), Pt(40, 90)},
		"up-right":   {Pt(40, 90), Pt(140, 30)},
	}
	for name, d := range drags {
		r := Normalize(d[0], d[1])
		assert.Equal(t, want, r, name)
		assert.GreaterOrEqual(t, r.W, 0.0, name)
		assert.GreaterOrEqual(t, r.H, 0.0, name)
		assert.Equal(t, Pt(40, 30), r.Min(), name)
		assert.Equal(t, Pt(140, 90), r.Max(), name)
	}
}

func TestRect_PixelsRounds(t *testing.T) {
	r := Rect{X: 10.4, Y: 10.6, W: 20.2, H: 0.3}
	assert.Equal(t, image.Rect(10, 11, 31, 11), r.Pixels())
	assert.True(t, r.Pixels().Empty())
}

func TestRect_SnapWithinRoundsExtent(t *testing.T) {
	limit := Size{W: 40, H: 30}
	// Same 0.4px width at different offsets snaps to the same size.
	assert.Equal(t, 0.0, Rect{X: 10.3, Y: 0, W: 0.4, H: 10}.SnapWithin(limit).W)
	assert.Equal(t, 0.0, Rect{X: 10.0, Y: 0, W: 0.4, H: 10}.SnapWithin(limit).W)
	assert.Equal(t, Rect{X: 10, Y: 0, W: 1, H: 10}, Rect{X: 10.3, Y: 0, W: 0.6, H: 10}.SnapWithin(limit))

	// Rounding past the far edge shifts the rectangle back inside.
	assert.Equal(t, Rect{X: 20, Y: 20, W: 20, H: 10}, Rect{X: 20.6, Y: 20.6, W: 19.6, H: 9.6}.SnapWithin(limit))
	// Larger than the image is cut to the image.
	assert.Equal(t, Rect{X: 0, Y: 0, W: 40, H: 30}, Rect{X: 0, Y: 0, W: 45, H: 31}.SnapWithin(limit))
}

func TestRectFromImage_Canonical(t *testing.T) {
	r := RectFromImage(image.Rectangle{Min: image.Pt(30, 40), Max: image.Pt(10, 20)})
	assert.Equal(t, Rect{X: 10, Y: 20, W: 20, H: 20}, r)
}

func TestPoint_ClampInclusiveEdges(t *testing.T) {
	bounds := Rect{X: 10, Y: 20, W: 100, H: 50}
	assert.Equal(t, Pt(10, 20), Pt(-5, 0).Clamp(bounds))
	assert.Equal(t, Pt(110, 70), Pt(500, 500).Clamp(bounds))
	assert.Equal(t, Pt(60, 40), Pt(60, 40).Clamp(bounds))
}

func TestRect_Intersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	assert.Equal(t, Rect{X: 5, Y: 5, W: 5, H: 5}, a.Intersect(Rect{X: 5, Y: 5, W: 10, H: 10}))
	assert.Equal(t, Rect{}, a.Intersect(Rect{X: 20, Y: 20, W: 1, H: 1}))
	assert.True(t, a.Intersect(Rect{X: 10, Y: 0, W: 5, H: 5}).Empty())
}
