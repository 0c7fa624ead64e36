package images

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/soocke/pixel-crop-go/domain/geometry"
)

var (
	Background   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	SelectionInk = color.RGBA{R: 255, A: 255}
	CommittedInk = color.RGBA{R: 30, G: 144, B: 255, A: 255}
)

const (
	SelectionWidth = 2
	SelectionDash  = 5
)

// Compose draws preview onto a viewport sized canvas at the transform offset.
// preview is expected to already have the transform's display size.
func Compose(preview image.Image, t geometry.Transform) *image.RGBA {
	vp := t.Viewport
	canvas := Blank(vp.W, vp.H)
	if preview == nil {
		return canvas
	}
	off := image.Pt(int(t.Offset.X), int(t.Offset.Y))
	r := preview.Bounds().Sub(preview.Bounds().Min).Add(off)
	draw.Draw(canvas, r, preview, preview.Bounds().Min, draw.Src)
	return canvas
}

// Blank returns a w x h canvas filled with the background color.
func Blank(w, h int) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	return canvas
}

// DrawDashedRect strokes r with alternating dash-long segments of c. A dash
// of 0 draws a solid outline.
func DrawDashedRect(dst draw.Image, r image.Rectangle, c color.Color, thickness, dash int) {
	r = r.Canon().Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	thickness = max(thickness, 1)
	on := func(i int) bool { return dash <= 0 || (i/dash)%2 == 0 }
	for x := r.Min.X; x < r.Max.X; x++ {
		if !on(x - r.Min.X) {
			continue
		}
		for t := 0; t < thickness; t++ {
			dst.Set(x, r.Min.Y+t, c)
			dst.Set(x, r.Max.Y-1-t, c)
		}
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		if !on(y - r.Min.Y) {
			continue
		}
		for t := 0; t < thickness; t++ {
			dst.Set(r.Min.X+t, y, c)
			dst.Set(r.Max.X-1-t, y, c)
		}
	}
}

// Overlay is what the original image canvas draws above the picture.
type Overlay struct {
	Feedback     geometry.Rect // display space
	HasFeedback  bool
	Committed    geometry.Rect // image space
	HasCommitted bool
}

// Annotate draws the committed outline and the live feedback rectangle onto
// canvas. canvas is modified in place.
func Annotate(canvas *image.RGBA, t geometry.Transform, o Overlay) {
	if canvas == nil {
		return
	}
	if o.HasCommitted && t.Valid() {
		disp := geometry.MapRectangle(o.Committed, t, geometry.ToDisplay)
		DrawDashedRect(canvas, disp.Pixels(), CommittedInk, 1, 0)
	}
	if o.HasFeedback {
		DrawDashedRect(canvas, o.Feedback.Pixels(), SelectionInk, SelectionWidth, SelectionDash)
	}
}

// Fit renders img centered in a viewport of size vp, shrinking it to fit.
// An empty image yields a blank canvas.
func Fit(img image.Image, vp geometry.Size, opts ...geometry.Option) *image.RGBA {
	if img == nil {
		return Blank(vp.W, vp.H)
	}
	t, err := geometry.ComputeTransform(geometry.SizeOf(img.Bounds()), vp, opts...)
	if err != nil {
		return Blank(vp.W, vp.H)
	}
	ds := t.DisplaySize()
	return Compose(ScaleTo(img, ds.W, ds.H), t)
}
