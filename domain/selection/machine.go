package selection

import (
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/soocke/pixel-crop-go/domain/geometry"
)

// Options configures a Machine. The zero value is usable.
type Options struct {
	// MinSize is the smallest committed width and height in image pixels.
	// Values below 1 are treated as 1.
	MinSize  int
	Surface  Surface
	OnCommit CommitHandler
}

// Machine turns pointer events in display space into a committed region of
// interest in image space. It is driven from the UI thread only and holds no
// locks.
type Machine struct {
	state        State
	logger       *slog.Logger
	transform    geometry.Transform
	loaded       bool
	anchor       geometry.Point
	current      geometry.Point
	committed    geometry.Rect
	hasCommitted bool
	busy         bool
	minSize      int
	surface      Surface
	onCommit     CommitHandler
	listeners    []StateListener
}

// New returns an idle machine with no image loaded.
func New(logger *slog.Logger, opts Options) *Machine {
	minSize := opts.MinSize
	if minSize < 1 {
		minSize = 1
	}
	return &Machine{
		state:    StateIdle,
		logger:   logger,
		minSize:  minSize,
		surface:  opts.Surface,
		onCommit: opts.OnCommit,
	}
}

// SetSurface replaces the feedback surface. A nil surface disables feedback.
func (m *Machine) SetSurface(s Surface) { m.surface = s }

// OnCommit replaces the commit handler.
func (m *Machine) OnCommit(h CommitHandler) { m.onCommit = h }

// AddListener registers l for state changes.
func (m *Machine) AddListener(l StateListener) {
	if l != nil {
		m.listeners = append(m.listeners, l)
	}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Loaded reports whether a source image transform is set.
func (m *Machine) Loaded() bool { return m.loaded }

// Transform returns the active transform, if an image is loaded.
func (m *Machine) Transform() (geometry.Transform, bool) { return m.transform, m.loaded }

// Committed returns the committed region in image space.
func (m *Machine) Committed() (geometry.Rect, bool) { return m.committed, m.hasCommitted }

// Feedback returns the live display-space rectangle while dragging. Surfaces
// read it when redrawing; it is empty once the machine has left StateDragging.
func (m *Machine) Feedback() (geometry.Rect, bool) {
	if m.state != StateDragging {
		return geometry.Rect{}, false
	}
	return geometry.Normalize(m.anchor, m.current), true
}

// Busy reports whether a commit is still being processed downstream.
func (m *Machine) Busy() bool { return m.busy }

// SetBusy marks whether commit-triggered work is in flight. New gestures are
// refused while busy so the committed region cannot change underneath it.
func (m *Machine) SetBusy(b bool) { m.busy = b }

// SetTransform installs the transform for a newly loaded image or a resized
// viewport. An in-progress drag is cancelled because its points belong to the
// previous display mapping. The committed region survives a viewport change
// but not a change of image size.
func (m *Machine) SetTransform(t geometry.Transform) {
	if !t.Valid() {
		m.Unload()
		return
	}
	if m.state == StateDragging {
		m.Cancel()
	}
	if m.loaded && m.transform.Image != t.Image {
		m.dropCommitted()
	}
	m.transform = t
	m.loaded = true
	if m.logger != nil {
		m.logger.Debug("selection transform updated",
			"factor", t.Factor, "offset_x", t.Offset.X, "offset_y", t.Offset.Y,
			"image_w", t.Image.W, "image_h", t.Image.H)
	}
}

// Unload forgets the image: any drag and the committed region are discarded.
func (m *Machine) Unload() {
	m.loaded = false
	m.transform = geometry.Transform{}
	m.hasCommitted = false
	m.committed = geometry.Rect{}
	m.transition(StateIdle)
	m.clearSurface()
}

// PointerDown starts a drag at (x, y).
func (m *Machine) PointerDown(x, y float64) error {
	if m.busy {
		return ErrBusy
	}
	if !m.loaded {
		return ErrNoImageLoaded
	}
	p := m.clampDisplay(geometry.Pt(x, y))
	m.anchor, m.current = p, p
	m.transition(StateDragging)
	return nil
}

// PointerMove updates the drag and returns the normalized feedback rectangle.
// It is a no-op outside a drag.
func (m *Machine) PointerMove(x, y float64) (geometry.Rect, bool) {
	if m.state != StateDragging {
		return geometry.Rect{}, false
	}
	m.current = m.clampDisplay(geometry.Pt(x, y))
	r := geometry.Normalize(m.anchor, m.current)
	if m.surface != nil {
		m.surface.RenderSelection(r)
	}
	return r, true
}

// PointerUp finishes the drag. On success the region is committed and
// returned in image space.
func (m *Machine) PointerUp(x, y float64) (geometry.Rect, error) {
	if m.state != StateDragging {
		return geometry.Rect{}, ErrNotDragging
	}
	m.current = m.clampDisplay(geometry.Pt(x, y))
	display := geometry.Normalize(m.anchor, m.current)
	mapped := geometry.MapRectangle(display, m.transform, geometry.ToImage)
	w, h := math.Round(mapped.W), math.Round(mapped.H)
	if w < float64(m.minSize) || h < float64(m.minSize) {
		if m.logger != nil {
			m.logger.Debug("selection rejected", "w", mapped.W, "h", mapped.H, "min", m.minSize)
		}
		m.transition(StateIdle)
		m.clearSurface()
		return geometry.Rect{}, fmt.Errorf("%w: %.0fx%.0f pixels", ErrDegenerateSelection, w, h)
	}
	region := mapped.SnapWithin(m.transform.Image)
	m.commit(region)
	m.clearSurface()
	return region, nil
}

// Commit installs region (image space) as the committed region without a
// pointer gesture, e.g. from an automatic suggestion.
func (m *Machine) Commit(region image.Rectangle) (geometry.Rect, error) {
	if m.busy {
		return geometry.Rect{}, ErrBusy
	}
	if !m.loaded {
		return geometry.Rect{}, ErrNoImageLoaded
	}
	bounds := image.Rect(0, 0, m.transform.Image.W, m.transform.Image.H)
	r := geometry.RectFromImage(region.Canon().Intersect(bounds))
	if r.W < float64(m.minSize) || r.H < float64(m.minSize) {
		return geometry.Rect{}, fmt.Errorf("%w: %.0fx%.0f pixels", ErrDegenerateSelection, r.W, r.H)
	}
	dragging := m.state == StateDragging
	m.commit(r)
	if dragging {
		m.clearSurface()
	}
	return r, nil
}

// Cancel abandons an in-progress drag and returns to idle. A previously
// committed region stays readable through Committed.
func (m *Machine) Cancel() {
	if m.state != StateDragging {
		return
	}
	m.transition(StateIdle)
	m.clearSurface()
}

// Clear discards the committed region and any drag in progress.
func (m *Machine) Clear() {
	m.dropCommitted()
	m.transition(StateIdle)
	m.clearSurface()
}

func (m *Machine) commit(region geometry.Rect) {
	m.committed = region
	m.hasCommitted = true
	m.transition(StateCommitted)
	if m.logger != nil {
		m.logger.Info("selection committed", "x", region.X, "y", region.Y, "w", region.W, "h", region.H)
	}
	if m.onCommit != nil {
		m.onCommit(region.Pixels())
	}
}

func (m *Machine) dropCommitted() {
	m.committed = geometry.Rect{}
	m.hasCommitted = false
}

func (m *Machine) clampDisplay(p geometry.Point) geometry.Point {
	return p.Clamp(m.transform.DisplayBounds())
}

func (m *Machine) clearSurface() {
	if m.surface != nil {
		m.surface.ClearSelection()
	}
}

func (m *Machine) transition(next State) {
	prev := m.state
	if prev == next {
		return
	}
	m.state = next
	if m.logger != nil {
		m.logger.Debug("selection state transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range m.listeners {
		l(prev, next)
	}
}

var _ PointerHandler = (*Machine)(nil)
