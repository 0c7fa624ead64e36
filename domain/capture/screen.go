package capture

import (
	"fmt"
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/vova616/screenshot"
)

// ScreenSource captures the active monitor.
type ScreenSource struct {
	logger *slog.Logger

	captureScreen func() (*image.RGBA, error)

	captures     atomic.Uint64
	failures     atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
	latest       atomic.Pointer[Snapshot]
}

// NewScreenSource returns a Source backed by the platform screenshot API.
func NewScreenSource(logger *slog.Logger) *ScreenSource {
	return &ScreenSource{
		logger:        logger,
		captureScreen: screenshot.CaptureScreen,
	}
}

// Grab captures the whole screen.
func (s *ScreenSource) Grab() (*image.RGBA, error) {
	start := time.Now()
	img, err := s.captureScreen()
	return s.record(img, err, start)
}

// Latest returns the most recent successful capture.
func (s *ScreenSource) Latest() (Snapshot, bool) {
	snap := s.latest.Load()
	if snap == nil {
		return Snapshot{}, false
	}
	return *snap, true
}

// Stats reports capture counters.
func (s *ScreenSource) Stats() Stats {
	captures := s.captures.Load()
	var avg time.Duration
	if captures > 0 {
		avg = time.Duration(s.captureNanos.Load() / captures)
	}
	var last time.Time
	if snap, ok := s.Latest(); ok {
		last = snap.CapturedAt
	}
	return Stats{Captures: captures, Failures: s.failures.Load(), AvgCapture: avg, Last: last}
}

func (s *ScreenSource) record(img *image.RGBA, err error, start time.Time) (*image.RGBA, error) {
	if err == nil && img == nil {
		err = ErrEmptyCapture
	}
	if err != nil {
		s.failures.Add(1)
		if s.logger != nil {
			s.logger.Error("screen capture", "error", err)
		}
		return nil, fmt.Errorf("capture: %w", err)
	}
	// screenshot returns the primary monitor's bounds, which need not start at (0, 0).
	if img.Rect.Min != (image.Point{}) {
		out := image.NewRGBA(image.Rect(0, 0, img.Rect.Dx(), img.Rect.Dy()))
		for y := 0; y < img.Rect.Dy(); y++ {
			src := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
			copy(out.Pix[y*out.Stride:(y+1)*out.Stride], img.Pix[src:src+out.Stride])
		}
		img = out
	}
	elapsed := time.Since(start)
	s.captureNanos.Add(uint64(elapsed.Nanoseconds()))
	s.captures.Add(1)
	seq := s.sequence.Add(1)
	now := time.Now()
	s.latest.Store(&Snapshot{Image: img, CapturedAt: now, Sequence: seq})
	if s.logger != nil {
		s.logger.Debug("screen captured", "w", img.Rect.Dx(), "h", img.Rect.Dy(), "elapsed", elapsed, "seq", seq)
	}
	return img, nil
}

var _ Source = (*ScreenSource)(nil)
