package presenter

import (
	"image"
	"math"
	"testing"

	"github.com/soocke/pixel-crop-go/domain/geometry"
	"github.com/soocke/pixel-crop-go/ui/images"
	"github.com/soocke/pixel-crop-go/ui/model"
)

func TestSelectionPresenter_LoadComputesTransform(t *testing.T) {
	h := newHarness(t)
	h.load(t)

	tr, ok := h.machine.Transform()
	if !ok {
		t.Fatalf("machine should have a transform after load")
	}
	if math.Abs(tr.Factor-0.3) > 1e-9 || tr.Offset != geometry.Pt(100, 0) {
		t.Fatalf("unexpected transform factor=%v offset=%v", tr.Factor, tr.Offset)
	}
	frame := h.view.lastOriginal()
	if frame == nil || frame.Bounds() != image.Rect(0, 0, 500, 300) {
		t.Fatalf("expected 500x300 frame, got %v", frame)
	}
	if frame.RGBAAt(50, 10) != images.Background {
		t.Fatalf("letterbox should show the background")
	}
	if frame.RGBAAt(100, 0) == images.Background {
		t.Fatalf("image should start at the offset")
	}
}

func TestSelectionPresenter_SmallImageNotUpscaled(t *testing.T) {
	h := newHarness(t)
	h.proc.loadImg = image.NewRGBA(image.Rect(0, 0, 100, 50))
	h.load(t)
	tr, _ := h.machine.Transform()
	if tr.Factor != 1 || tr.Offset != geometry.Pt(200, 125) {
		t.Fatalf("expected native size centered, got factor=%v offset=%v", tr.Factor, tr.Offset)
	}
}

func TestSelectionPresenter_DragDrawsFeedbackThenOutline(t *testing.T) {
	h := newHarness(t)
	h.load(t)

	h.selection.PointerDown(150, 50)
	h.selection.PointerMove(250, 120)
	if got := h.view.lastOriginal().RGBAAt(150, 50); got != images.SelectionInk {
		t.Fatalf("feedback corner color %v", got)
	}
	h.selection.PointerUp(250, 120)

	committed, ok := h.machine.Committed()
	if !ok {
		t.Fatalf("expected committed region")
	}
	if committed != (geometry.Rect{X: 167, Y: 167, W: 333, H: 233}) {
		t.Fatalf("unexpected image-space region %+v", committed)
	}
	if got := h.view.lastOriginal().RGBAAt(150, 50); got != images.CommittedInk {
		t.Fatalf("committed outline color %v", got)
	}
	h.settle(t, func() bool { return h.doc.Image(model.KindCropped) != nil })
	if h.view.lastStatus() != "Cropped to 333x233 pixels" {
		t.Fatalf("status %q", h.view.lastStatus())
	}
}

func TestSelectionPresenter_ErrorsBecomeStatus(t *testing.T) {
	h := newHarness(t)
	h.selection.PointerDown(10, 10)
	if h.view.lastStatus() != "Load an image to begin" {
		t.Fatalf("status %q", h.view.lastStatus())
	}

	h.load(t)
	h.drag(200, 100, 200, 100)
	if h.view.lastStatus() != "Selection too small - drag a larger area" {
		t.Fatalf("status %q", h.view.lastStatus())
	}
	if _, ok := h.machine.Committed(); ok {
		t.Fatalf("degenerate drag must not commit")
	}
	if h.machine.Busy() {
		t.Fatalf("no work should be scheduled")
	}

	before := len(h.view.status)
	h.selection.PointerUp(5, 5) // release without press
	if len(h.view.status) != before {
		t.Fatalf("stray release should be silent")
	}
}

func TestSelectionPresenter_ClearKeepsCroppedImage(t *testing.T) {
	h := newHarness(t)
	h.proc.loadImg = image.NewRGBA(image.Rect(0, 0, 500, 300))
	h.load(t)
	h.drag(50, 50, 150, 120)
	h.settle(t, func() bool { return h.doc.Image(model.KindCropped) != nil })

	h.selection.ClearSelection()
	if h.view.lastStatus() != "Crop selection cleared" {
		t.Fatalf("status %q", h.view.lastStatus())
	}
	if _, ok := h.machine.Committed(); ok {
		t.Fatalf("committed region should be gone")
	}
	if h.doc.Image(model.KindCropped) == nil {
		t.Fatalf("clearing the selection must not drop the cropped image")
	}
	if got := h.view.lastOriginal().RGBAAt(50, 50); got == images.CommittedInk {
		t.Fatalf("outline still drawn after clear")
	}
}

func TestSelectionPresenter_ViewportChangeKeepsRegion(t *testing.T) {
	h := newHarness(t)
	h.load(t)
	h.drag(150, 50, 250, 120)
	h.settle(t, func() bool { return !h.machine.Busy() })

	h.selection.SetViewport(geometry.Size{W: 1000, H: 1000})
	tr, _ := h.machine.Transform()
	if tr.Factor != 1 || h.selection.Viewport() != (geometry.Size{W: 1000, H: 1000}) {
		t.Fatalf("expected factor 1 after viewport change, got %v", tr.Factor)
	}
	if _, ok := h.machine.Committed(); !ok {
		t.Fatalf("region should survive a viewport change")
	}
}

func TestSelectionPresenter_CancelDrag(t *testing.T) {
	h := newHarness(t)
	h.load(t)
	h.selection.PointerDown(150, 50)
	h.selection.PointerMove(200, 100)
	h.selection.CancelDrag()
	h.selection.PointerUp(200, 100)
	if _, ok := h.machine.Committed(); ok {
		t.Fatalf("cancelled drag must not commit")
	}
	if got := h.view.lastOriginal().RGBAAt(150, 50); got == images.SelectionInk {
		t.Fatalf("feedback still visible after cancel")
	}
}

func TestSelectionPresenter_NewDocumentDropsRegion(t *testing.T) {
	h := newHarness(t)
	h.load(t)
	h.drag(150, 50, 250, 120)
	h.settle(t, func() bool { return !h.machine.Busy() })

	h.load(t) // same size, different document
	if _, ok := h.machine.Committed(); ok {
		t.Fatalf("region from the previous document must not survive")
	}
	if !h.machine.Loaded() {
		t.Fatalf("machine should be loaded with the new transform")
	}
}

func TestSelectionPresenter_DragStartSetsStatus(t *testing.T) {
	h := newHarness(t)
	h.load(t)
	frames := h.selection.Frames()

	h.selection.PointerDown(150, 50)
	if h.view.lastStatus() != "Selecting crop area..." {
		t.Fatalf("status %q", h.view.lastStatus())
	}
	h.selection.CancelDrag()
	if got := h.selection.Frames(); got != frames+1 {
		t.Fatalf("cancel should redraw once, frames %d -> %d", frames, got)
	}
}
