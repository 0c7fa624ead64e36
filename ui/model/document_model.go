package model

import (
	"fmt"
	"image"
	"strings"
)

// Kind names one of the three images the editor shows.
type Kind int

const (
	KindOriginal Kind = iota
	KindCropped
	KindResized
)

func (k Kind) String() string {
	switch k {
	case KindOriginal:
		return "original"
	case KindCropped:
		return "cropped"
	case KindResized:
		return "resized"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Title is the capitalized name used in dialogs.
func (k Kind) Title() string {
	s := k.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// DefaultFileName is the file name offered when saving this kind.
func (k Kind) DefaultFileName() string { return k.String() + "_image.png" }

// Kinds lists every kind in display order.
func Kinds() []Kind { return []Kind{KindOriginal, KindCropped, KindResized} }

// Document holds the images being edited. The zero value is empty and usable.
// No synchronization needed: updates occur on the UI thread.
type Document struct {
	name       string
	path       string
	original   image.Image
	cropped    image.Image
	resized    image.Image
	region     image.Rectangle
	scale      float64
	generation uint64
}

func NewDocument() *Document { return &Document{scale: 1} }

// SetOriginal installs a new source image and discards every derived image.
// name is shown to the user; path may be empty for in-memory sources.
func (d *Document) SetOriginal(name, path string, img image.Image) {
	if d == nil {
		return
	}
	d.name, d.path = name, path
	d.original = img
	d.cropped, d.resized = nil, nil
	d.region = image.Rectangle{}
	d.scale = 1
	d.generation++
}

// SetCropped stores the crop of region and drops the resized image.
func (d *Document) SetCropped(region image.Rectangle, img image.Image) {
	if d == nil {
		return
	}
	d.region = region
	d.cropped = img
	d.resized = nil
}

// SetResized stores the resized image and the scale that produced it.
func (d *Document) SetResized(img image.Image, scale float64) {
	if d == nil {
		return
	}
	d.resized = img
	d.scale = scale
}

// SetScale records the requested scale without touching images.
func (d *Document) SetScale(scale float64) {
	if d != nil {
		d.scale = scale
	}
}

// Reset empties the document. The generation keeps counting so stale
// previews can never be mistaken for a later image.
func (d *Document) Reset() {
	if d == nil {
		return
	}
	gen := d.generation
	*d = Document{scale: 1, generation: gen + 1}
}

// Image returns the image of kind k, or nil.
func (d *Document) Image(k Kind) image.Image {
	if d == nil {
		return nil
	}
	switch k {
	case KindOriginal:
		return d.original
	case KindCropped:
		return d.cropped
	case KindResized:
		return d.resized
	}
	return nil
}

func (d *Document) Loaded() bool { return d != nil && d.original != nil }

func (d *Document) Name() string {
	if d == nil {
		return ""
	}
	return d.name
}

func (d *Document) Path() string {
	if d == nil {
		return ""
	}
	return d.path
}

// Region is the image-space rectangle the cropped image was cut from.
func (d *Document) Region() image.Rectangle {
	if d == nil {
		return image.Rectangle{}
	}
	return d.region
}

func (d *Document) Scale() float64 {
	if d == nil || d.scale <= 0 {
		return 1
	}
	return d.scale
}

// Generation changes whenever the original image is replaced or cleared.
func (d *Document) Generation() uint64 {
	if d == nil {
		return 0
	}
	return d.generation
}

// Info returns the "name\nWxH pixels" description of the original image.
func (d *Document) Info() string {
	if !d.Loaded() {
		return "No image loaded"
	}
	b := d.original.Bounds()
	return fmt.Sprintf("%s\n%dx%d pixels", d.name, b.Dx(), b.Dy())
}
