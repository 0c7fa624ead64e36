package imageproc

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	// WebP sources are decode-only; saving still goes through imaging's encoders.
	_ "golang.org/x/image/webp"
)

var (
	ErrNoImage           = errors.New("no image")
	ErrEmptyRegion       = errors.New("crop region is empty")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrDecode            = errors.New("could not load image")
)

// Options tunes a Processor. Zero fields fall back to DefaultOptions.
type Options struct {
	ScaleMin    float64
	ScaleMax    float64
	JPEGQuality int
	DefaultExt  string
}

// DefaultOptions mirrors the slider range and save defaults of the editor.
func DefaultOptions() Options {
	return Options{ScaleMin: 0.1, ScaleMax: 3.0, JPEGQuality: 95, DefaultExt: ".png"}
}

// Processor performs the pixel work behind the editor: decode, slice, resize
// and encode. It keeps no image state; callers own the buffers.
type Processor struct {
	opts   Options
	logger *slog.Logger
}

// NewProcessor returns a processor using opts.
func NewProcessor(opts Options, logger *slog.Logger) *Processor {
	def := DefaultOptions()
	if opts.ScaleMin <= 0 {
		opts.ScaleMin = def.ScaleMin
	}
	if opts.ScaleMax < opts.ScaleMin {
		opts.ScaleMax = def.ScaleMax
	}
	if opts.JPEGQuality < 1 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = def.JPEGQuality
	}
	if opts.DefaultExt == "" {
		opts.DefaultExt = def.DefaultExt
	}
	if !strings.HasPrefix(opts.DefaultExt, ".") {
		opts.DefaultExt = "." + opts.DefaultExt
	}
	return &Processor{opts: opts, logger: logger}
}

// Options returns the effective options.
func (p *Processor) Options() Options { return p.opts }

// Load decodes the image at path, applying EXIF orientation. The result
// always has its origin at (0, 0).
func (p *Processor) Load(ctx context.Context, path string) (image.Image, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	start := time.Now()
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, filepath.Base(path), err)
	}
	img = normalizeOrigin(img)
	if p.logger != nil {
		b := img.Bounds()
		p.logger.Info("image loaded", "path", path, "w", b.Dx(), "h", b.Dy(), "elapsed", time.Since(start))
	}
	return img, nil
}

// Crop returns an independent copy of region (image space, origin at the
// image's top-left corner). The region is normalized and clamped to the image
// first.
func (p *Processor) Crop(src image.Image, region image.Rectangle) (image.Image, error) {
	if src == nil {
		return nil, ErrNoImage
	}
	b := src.Bounds()
	abs := region.Canon().Add(b.Min).Intersect(b)
	if abs.Empty() {
		return nil, fmt.Errorf("%w: %v", ErrEmptyRegion, region)
	}
	return imaging.Crop(src, abs), nil
}

// ClampScale restricts factor to the configured scale range. NaN maps to 1,
// itself clamped.
func (p *Processor) ClampScale(factor float64) float64 {
	if math.IsNaN(factor) {
		factor = 1
	}
	if factor < p.opts.ScaleMin {
		return p.opts.ScaleMin
	}
	if factor > p.opts.ScaleMax {
		return p.opts.ScaleMax
	}
	return factor
}

// ScaledSize is the output size Resize produces for src and factor.
func (p *Processor) ScaledSize(src image.Rectangle, factor float64) (int, int) {
	factor = p.ClampScale(factor)
	w := int(float64(src.Dx()) * factor)
	h := int(float64(src.Dy()) * factor)
	return max(w, 1), max(h, 1)
}

// Resize scales src by factor (clamped to the scale range). Enlarging uses a
// cubic filter, shrinking an area-averaging one.
func (p *Processor) Resize(ctx context.Context, src image.Image, factor float64) (image.Image, error) {
	if src == nil {
		return nil, ErrNoImage
	}
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	factor = p.ClampScale(factor)
	if factor == 1 {
		return imaging.Clone(src), nil
	}
	w, h := p.ScaledSize(src.Bounds(), factor)
	filter := imaging.Box
	if factor > 1 {
		filter = imaging.CatmullRom
	}
	out := resizeWithContext(ctx, src, w, h, filter)
	if out == nil {
		return nil, ctx.Err()
	}
	return out, nil
}

// Save encodes img to path. The default extension is appended when path has
// none. It returns the final path and the written size in bytes.
func (p *Processor) Save(img image.Image, path string) (string, int64, error) {
	if img == nil {
		return "", 0, ErrNoImage
	}
	if filepath.Ext(path) == "" {
		path += p.opts.DefaultExt
	}
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return "", 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(p.opts.JPEGQuality)); err != nil {
		return "", 0, fmt.Errorf("saving %s: %w", filepath.Base(path), err)
	}
	var size int64
	if fi, err := os.Stat(path); err == nil {
		size = fi.Size()
	}
	if p.logger != nil {
		p.logger.Info("image saved", "path", path, "bytes", size)
	}
	return path, size, nil
}

// SaveExtensions lists the file extensions Save accepts.
func SaveExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".gif"}
}

// LoadExtensions lists the file extensions Load understands.
func LoadExtensions() []string {
	return append(SaveExtensions(), ".webp")
}

// normalizeOrigin moves images whose bounds do not start at (0, 0).
func normalizeOrigin(img image.Image) image.Image {
	if img.Bounds().Min == (image.Point{}) {
		return img
	}
	return imaging.Clone(img)
}

// resizeWithContext returns nil when ctx is cancelled before the resize completes.
func resizeWithContext(ctx context.Context, img image.Image, w, h int, filter imaging.ResampleFilter) image.Image {
	resultChan := make(chan image.Image, 1)
	go func() {
		resultChan <- imaging.Resize(img, w, h, filter)
	}()
	select {
	case <-ctx.Done():
		return nil
	case result := <-resultChan:
		return result
	}
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
