package imageproc

import (
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"
)

// Suggest returns the most interesting region of src with the aspect ratio
// w:h, in image space.
func (p *Processor) Suggest(ctx context.Context, src image.Image, w, h int) (image.Rectangle, error) {
	if src == nil {
		return image.Rectangle{}, ErrNoImage
	}
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: aspect %dx%d", ErrEmptyRegion, w, h)
	}
	if err := checkContext(ctx); err != nil {
		return image.Rectangle{}, err
	}
	analyzer := smartcrop.NewAnalyzer(analysisResizer{filter: imaging.Linear})

	type cropResult struct {
		crop image.Rectangle
		err  error
	}
	resultChan := make(chan cropResult, 1)
	go func() {
		crop, err := analyzer.FindBestCrop(src, w, h)
		resultChan <- cropResult{crop: crop, err: err}
	}()

	select {
	case <-ctx.Done():
		return image.Rectangle{}, ctx.Err()
	case res := <-resultChan:
		if res.err != nil {
			return image.Rectangle{}, fmt.Errorf("finding best crop: %w", res.err)
		}
		b := src.Bounds()
		region := res.crop.Intersect(b).Sub(b.Min)
		if region.Empty() {
			return image.Rectangle{}, ErrEmptyRegion
		}
		if p.logger != nil {
			p.logger.Debug("crop suggested", "region", region.String())
		}
		return region, nil
	}
}

// analysisResizer adapts imaging to the smartcrop resizer contract.
type analysisResizer struct {
	filter imaging.ResampleFilter
}

func (r analysisResizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.filter)
}
