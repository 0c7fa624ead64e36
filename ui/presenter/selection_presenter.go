package presenter

import (
	"errors"
	"log/slog"

	"github.com/soocke/pixel-crop-go/domain/geometry"
	"github.com/soocke/pixel-crop-go/domain/selection"
	"github.com/soocke/pixel-crop-go/ui/images"
	"github.com/soocke/pixel-crop-go/ui/model"
)

// SelectionPresenter binds the original image canvas to the selection
// machine. It is the machine's feedback surface: feedback rectangles are
// drawn onto a rendered frame that is handed to the view.
type SelectionPresenter struct {
	machine  SelectionMachine
	doc      *model.Document
	cache    *images.PreviewCache
	view     OriginalView
	status   StatusView
	logger   *slog.Logger
	viewport geometry.Size
	opts     []geometry.Option

	frames     uint64
	generation uint64
}

// NewSelectionPresenter installs the presenter as the machine's surface. With allowUpscale
// false small images are shown at native size.
func NewSelectionPresenter(machine SelectionMachine, doc *model.Document, cache *images.PreviewCache, view OriginalView, status StatusView, viewport geometry.Size, allowUpscale bool, logger *slog.Logger) *SelectionPresenter {
	p := &SelectionPresenter{
		machine:  machine,
		doc:      doc,
		cache:    cache,
		view:     view,
		status:   status,
		logger:   logger,
		viewport: viewport,
	}
	if !allowUpscale {
		p.opts = append(p.opts, geometry.WithMaxFactor(1))
	}
	if machine != nil {
		machine.SetSurface(surfaceAdapter{p})
		machine.AddListener(p.stateChanged)
	}
	return p
}

// DocumentChanged recomputes the transform after the original image or the
// viewport changed and redraws the canvas.
func (p *SelectionPresenter) DocumentChanged() {
	if p == nil || p.machine == nil {
		return
	}
	if gen := p.doc.Generation(); gen != p.generation {
		// a different image: nothing selected on the old one carries over
		p.generation = gen
		p.machine.Unload()
	}
	if !p.doc.Loaded() {
		p.machine.Unload()
		p.redraw()
		return
	}
	img := p.doc.Image(model.KindOriginal)
	t, err := geometry.ComputeTransform(geometry.SizeOf(img.Bounds()), p.viewport, p.opts...)
	if err != nil {
		if p.logger != nil {
			p.logger.Error("compute transform", "error", err)
		}
		p.machine.Unload()
		p.redraw()
		return
	}
	p.machine.SetTransform(t)
	if p.logger != nil {
		ds := t.DisplaySize()
		p.logger.Debug("transform recomputed", "factor", t.Factor, "display_w", ds.W, "display_h", ds.H,
			"offset_x", t.Offset.X, "offset_y", t.Offset.Y)
	}
	p.redraw()
}

// SetViewport changes the canvas size and remaps the current image.
func (p *SelectionPresenter) SetViewport(vp geometry.Size) {
	if p == nil || !vp.Valid() || vp == p.viewport {
		return
	}
	p.viewport = vp
	p.DocumentChanged()
	if p.logger != nil {
		p.logger.Debug("viewport changed", "w", vp.W, "h", vp.H)
	}
}

// Viewport returns the canvas size in screen pixels.
func (p *SelectionPresenter) Viewport() geometry.Size { return p.viewport }

// PointerDown forwards a button press at canvas coordinates (x, y).
func (p *SelectionPresenter) PointerDown(x, y float64) {
	if p == nil || p.machine == nil {
		return
	}
	if err := p.machine.PointerDown(x, y); err != nil {
		p.report(err)
	}
}

// PointerMove forwards pointer motion while the button is held.
func (p *SelectionPresenter) PointerMove(x, y float64) {
	if p == nil || p.machine == nil {
		return
	}
	p.machine.PointerMove(x, y)
}

// PointerUp forwards the button release. The machine hands a committed
// region to its commit handler.
func (p *SelectionPresenter) PointerUp(x, y float64) {
	if p == nil || p.machine == nil {
		return
	}
	if _, err := p.machine.PointerUp(x, y); err != nil {
		p.report(err)
	}
}

// CancelDrag abandons a drag in progress (Escape).
func (p *SelectionPresenter) CancelDrag() {
	if p == nil || p.machine == nil {
		return
	}
	p.machine.Cancel()
}

// ClearSelection discards the committed region.
func (p *SelectionPresenter) ClearSelection() {
	if p == nil || p.machine == nil {
		return
	}
	p.machine.Clear()
	p.redraw()
	p.setStatus("Crop selection cleared")
}

func (p *SelectionPresenter) stateChanged(prev, next selection.State) {
	if next == selection.StateDragging {
		p.setStatus("Selecting crop area...")
	}
	if p.logger != nil {
		p.logger.Debug("selection", "from", prev.String(), "to", next.String())
	}
}

// Frames reports how many canvas frames were rendered.
func (p *SelectionPresenter) Frames() uint64 { return p.frames }

func (p *SelectionPresenter) redraw() {
	if p.view == nil {
		return
	}
	p.frames++
	t, ok := p.machine.Transform()
	if !ok || !p.doc.Loaded() {
		p.view.ShowOriginal(images.Blank(p.viewport.W, p.viewport.H))
		return
	}
	ds := t.DisplaySize()
	preview := p.cache.Scaled(p.doc.Generation(), p.doc.Image(model.KindOriginal), ds.W, ds.H)
	canvas := images.Compose(preview, t)
	feedback, hasFeedback := p.machine.Feedback()
	committed, hasCommitted := p.machine.Committed()
	images.Annotate(canvas, t, images.Overlay{
		Feedback:     feedback,
		HasFeedback:  hasFeedback,
		Committed:    committed,
		HasCommitted: hasCommitted,
	})
	p.view.ShowOriginal(canvas)
}

func (p *SelectionPresenter) report(err error) {
	switch {
	case errors.Is(err, selection.ErrNoImageLoaded):
		p.setStatus("Load an image to begin")
	case errors.Is(err, selection.ErrBusy):
		p.setStatus("Still processing previous selection")
	case errors.Is(err, selection.ErrDegenerateSelection):
		p.setStatus("Selection too small - drag a larger area")
	case errors.Is(err, selection.ErrNotDragging):
		// release without a press on the canvas, e.g. a drag that started elsewhere
	default:
		if p.logger != nil {
			p.logger.Error("selection", "error", err)
		}
	}
}

func (p *SelectionPresenter) setStatus(s string) {
	if p.status != nil {
		p.status.SetStatus(s)
	}
}

// surfaceAdapter is the machine's feedback surface. Both calls redraw; the
// frame reads the live rectangle back through Feedback. It keeps the Surface
// method names apart from the ClearSelection user action.
type surfaceAdapter struct{ p *SelectionPresenter }

func (s surfaceAdapter) RenderSelection(geometry.Rect) { s.p.redraw() }
func (s surfaceAdapter) ClearSelection()               { s.p.redraw() }

var _ selection.Surface = surfaceAdapter{}
