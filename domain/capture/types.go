package capture

import (
	"errors"
	"image"
	"time"
)

var ErrEmptyCapture = errors.New("capture: no image returned")

// Source provides images that do not come from a file on disk.
type Source interface {
	Grab() (*image.RGBA, error)
}

// Snapshot is a captured image and when it was taken.
type Snapshot struct {
	Image      *image.RGBA
	CapturedAt time.Time
	Sequence   uint64
}

// Stats summarises capture behaviour for instrumentation.
type Stats struct {
	Captures   uint64
	Failures   uint64
	AvgCapture time.Duration
	Last       time.Time
}
