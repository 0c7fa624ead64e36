package images

import (
	"bytes"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	_ = enc.Encode(&buf, img)
	return buf.Bytes()
}

// ScaleTo resamples src to exactly w x h. A source that already has that
// size is returned unchanged.
func ScaleTo(src image.Image, w, h int) image.Image {
	if src == nil {
		return nil
	}
	w, h = max(w, 1), max(h, 1)
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	var s draw.Scaler = draw.CatmullRom
	if w > b.Dx() || h > b.Dy() {
		s = draw.ApproxBiLinear
	}
	s.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
