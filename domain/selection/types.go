package selection

import (
	"errors"
	"image"

	"github.com/soocke/pixel-crop-go/domain/geometry"
)

// State enumerates the phases of a crop selection gesture.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateCommitted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// Informational outcomes. None of them is fatal: the machine stays usable and
// callers typically turn them into status text.
var (
	ErrNoImageLoaded       = errors.New("no image loaded")
	ErrDegenerateSelection = errors.New("selection too small")
	ErrBusy                = errors.New("previous selection still processing")
	ErrNotDragging         = errors.New("no selection in progress")
)

// Surface is the display capability the machine draws feedback on.
// RenderSelection receives display-space rectangles during a drag;
// ClearSelection removes the feedback once the gesture ends and is called
// after the machine has left StateDragging.
type Surface interface {
	RenderSelection(r geometry.Rect)
	ClearSelection()
}

// PointerHandler is the event side of a display surface.
type PointerHandler interface {
	PointerDown(x, y float64) error
	PointerMove(x, y float64) (geometry.Rect, bool)
	PointerUp(x, y float64) (geometry.Rect, error)
	Cancel()
	Clear()
}

// StateListener is called after each state change.
type StateListener func(prev, next State)

// CommitHandler receives each committed region as slice bounds in image space.
type CommitHandler func(region image.Rectangle)
