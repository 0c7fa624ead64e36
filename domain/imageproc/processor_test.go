package imageproc

import (
	"context"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	return img
}

func newTestProcessor() *Processor { return NewProcessor(Options{}, nil) }

func TestCrop_CopiesRegion(t *testing.T) {
	p := newTestProcessor()
	src := gradient(100, 80)

	out, err := p.Crop(src, image.Rect(10, 20, 60, 50))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 50, 30), out.Bounds())
	assert.Equal(t, src.At(10, 20), out.At(0, 0))
	assert.Equal(t, src.At(59, 49), out.At(49, 29))

	// Mutating the crop must not touch the source.
	out.(*image.NRGBA).SetNRGBA(0, 0, color.NRGBA{A: 255})
	assert.NotEqual(t, src.At(10, 20), out.At(0, 0))
}

func TestCrop_NormalizesAndClamps(t *testing.T) {
	p := newTestProcessor()
	src := gradient(100, 80)

	out, err := p.Crop(src, image.Rectangle{Min: image.Pt(150, 100), Max: image.Pt(90, 70)})
	require.NoError(t, err)
	assert.Equal(t, 10, out.Bounds().Dx())
	assert.Equal(t, 10, out.Bounds().Dy())
}

func TestCrop_Errors(t *testing.T) {
	p := newTestProcessor()
	_, err := p.Crop(nil, image.Rect(0, 0, 1, 1))
	assert.ErrorIs(t, err, ErrNoImage)

	_, err = p.Crop(gradient(10, 10), image.Rect(20, 20, 30, 30))
	assert.ErrorIs(t, err, ErrEmptyRegion)
}

func TestCrop_SubImageOrigin(t *testing.T) {
	p := newTestProcessor()
	src := gradient(100, 100).SubImage(image.Rect(50, 50, 100, 100))
	out, err := p.Crop(src, image.Rect(0, 0, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, src.At(50, 50), out.At(0, 0))
}

func TestResize_Sizes(t *testing.T) {
	p := newTestProcessor()
	src := gradient(200, 100)
	ctx := context.Background()

	cases := []struct {
		factor float64
		w, h   int
	}{
		{0.5, 100, 50},
		{1.5, 300, 150},
		{1, 200, 100},
		{10, 600, 300},  // clamped to 3x
		{0.01, 20, 10},  // clamped to 0.1x
	}
	for _, c := range cases {
		out, err := p.Resize(ctx, src, c.factor)
		require.NoError(t, err)
		assert.Equal(t, c.w, out.Bounds().Dx(), "factor %v", c.factor)
		assert.Equal(t, c.h, out.Bounds().Dy(), "factor %v", c.factor)
	}
}

func TestResize_NeverBelowOnePixel(t *testing.T) {
	p := newTestProcessor()
	out, err := p.Resize(context.Background(), gradient(3, 3), 0.1)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1, 1), out.Bounds())
}

func TestResize_CancelledContext(t *testing.T) {
	p := newTestProcessor()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Resize(ctx, gradient(10, 10), 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	p := newTestProcessor()
	dir := t.TempDir()
	src := gradient(40, 30)

	path, size, err := p.Save(src, filepath.Join(dir, "cropped"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cropped.png"), path)
	assert.Greater(t, size, int64(0))

	loaded, err := p.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), loaded.Bounds())
	r1, g1, b1, _ := src.At(7, 9).RGBA()
	r2, g2, b2, _ := loaded.At(7, 9).RGBA()
	assert.Equal(t, []uint32{r1, g1, b1}, []uint32{r2, g2, b2})

	jpg, _, err := p.Save(src, filepath.Join(dir, "resized.jpg"))
	require.NoError(t, err)
	loaded, err = p.Load(context.Background(), jpg)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), loaded.Bounds())
}

func TestSave_UnsupportedExtension(t *testing.T) {
	p := newTestProcessor()
	_, _, err := p.Save(gradient(4, 4), filepath.Join(t.TempDir(), "out.webp"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, _, err = p.Save(nil, filepath.Join(t.TempDir(), "out.png"))
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestLoad_NotAnImage(t *testing.T) {
	p := newTestProcessor()
	path := filepath.Join(t.TempDir(), "notes.png")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a png"), 0o644))
	_, err := p.Load(context.Background(), path)
	assert.ErrorIs(t, err, ErrDecode)

	_, err = p.Load(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestNewProcessor_Defaults(t *testing.T) {
	p := NewProcessor(Options{DefaultExt: "jpg", JPEGQuality: 500}, nil)
	opts := p.Options()
	assert.Equal(t, ".jpg", opts.DefaultExt)
	assert.Equal(t, 95, opts.JPEGQuality)
	assert.Equal(t, 0.1, opts.ScaleMin)
	assert.Equal(t, 3.0, opts.ScaleMax)
	assert.Equal(t, 0.1, p.ClampScale(-1))
}

func TestClampScale_NonFinite(t *testing.T) {
	p := newTestProcessor()
	assert.Equal(t, 1.0, p.ClampScale(math.NaN()))
	assert.Equal(t, 3.0, p.ClampScale(math.Inf(1)))
	assert.Equal(t, 0.1, p.ClampScale(math.Inf(-1)))

	narrow := NewProcessor(Options{ScaleMin: 1.5, ScaleMax: 2}, nil)
	assert.Equal(t, 1.5, narrow.ClampScale(math.NaN()))
}

func TestSuggest_StaysInsideImage(t *testing.T) {
	p := newTestProcessor()
	src := gradient(160, 120)
	r, err := p.Suggest(context.Background(), src, 4, 3)
	require.NoError(t, err)
	assert.False(t, r.Empty())
	assert.True(t, r.In(src.Bounds()), "suggestion %v outside %v", r, src.Bounds())

	_, err = p.Suggest(context.Background(), nil, 4, 3)
	assert.ErrorIs(t, err, ErrNoImage)
	_, err = p.Suggest(context.Background(), src, 0, 3)
	assert.ErrorIs(t, err, ErrEmptyRegion)
}
