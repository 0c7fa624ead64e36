package view

import (
	"image"
	"strconv"

	"github.com/soocke/pixel-crop-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PointerTarget receives canvas pointer events in canvas pixel coordinates.
type PointerTarget interface {
	PointerDown(x, y float64)
	PointerMove(x, y float64)
	PointerUp(x, y float64)
	CancelDrag()
}

// ImageCanvas is a fixed-size label that displays one image at a time.
// The label has no border or padding so event coordinates line up with the
// pixels of the shown frame.
type ImageCanvas struct {
	label *LabelWidget
	photo *Img // current Tk photo, deleted on replacement
	w, h  int
}

// NewImageCanvas creates a blank canvas of w x h pixels. It is not gridded.
func NewImageCanvas(w, h int) *ImageCanvas {
	photo := NewPhoto(Data(images.EncodePNG(images.Blank(w, h))))
	label := Label(Image(photo), Borderwidth(0), Padx(0), Pady(0), Background("white"))
	return &ImageCanvas{label: label, photo: photo, w: w, h: h}
}

// Widget returns the underlying label for layout.
func (c *ImageCanvas) Widget() *LabelWidget { return c.label }

// Resize changes the size of the blank frame shown when there is no image.
// Shown images size the label themselves.
func (c *ImageCanvas) Resize(w, h int) {
	if c != nil {
		c.w, c.h = w, h
	}
}

// Show replaces the displayed image. A nil image blanks the canvas.
func (c *ImageCanvas) Show(img image.Image) {
	if c == nil || c.label == nil {
		return
	}
	if img == nil {
		img = images.Blank(c.w, c.h)
	}
	if c.photo != nil {
		c.photo.Delete()
	}
	c.photo = NewPhoto(Data(images.EncodePNG(img)))
	c.label.Configure(Image(c.photo))
}

// BindPointer routes left-button drags on the canvas and Escape anywhere in
// the window to t.
func (c *ImageCanvas) BindPointer(t PointerTarget) {
	if c == nil || c.label == nil || t == nil {
		return
	}
	c.label.Configure(Cursor("crosshair"))
	Bind(c.label, "<ButtonPress-1>", Command(func(e *Event) { t.PointerDown(pointerPos(e)) }))
	Bind(c.label, "<B1-Motion>", Command(func(e *Event) { t.PointerMove(pointerPos(e)) }))
	Bind(c.label, "<ButtonRelease-1>", Command(func(e *Event) { t.PointerUp(pointerPos(e)) }))
	Bind(App, "<Escape>", Command(t.CancelDrag))
}

// eventSize extracts the new widget size of a Configure event (%w, %h).
func eventSize(e *Event) (int, int, bool) {
	if e == nil {
		return 0, 0, false
	}
	w, errW := strconv.Atoi(e.Width)
	h, errH := strconv.Atoi(e.Height)
	return w, h, errW == nil && errH == nil
}

// pointerPos extracts widget-relative pointer coordinates (%x, %y).
func pointerPos(e *Event) (float64, float64) {
	if e == nil {
		return 0, 0
	}
	return float64(e.X), float64(e.Y)
}
