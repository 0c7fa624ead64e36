package view

import (
	"image"
	"log/slog"

	"github.com/soocke/pixel-crop-go/config"
	"github.com/soocke/pixel-crop-go/domain/geometry"
	"github.com/soocke/pixel-crop-go/ui/model"
	"github.com/soocke/pixel-crop-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	// minViewportPx is the smallest original canvas the layout shrinks to.
	minViewportPx = 100
	// Space inside the display frame that is not the original canvas:
	// canvas padding across, captions and padding down.
	displayChromeW = 8
	displayChromeH = 64
)

// ViewportTarget is told the pixel size available to the original canvas.
type ViewportTarget interface {
	Viewport() geometry.Size
	SetViewport(geometry.Size)
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg    *config.Config
	logger *slog.Logger

	// Subviews
	Controls *ControlPanel
	Original *ImageCanvas
	Cropped  *ImageCanvas
	Resized  *ImageCanvas
	Status   *StatusBar
}

func NewRootView(cfg *config.Config, logger *slog.Logger) *RootView {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &RootView{cfg: cfg, logger: logger}
}

// Build constructs the layout. Handlers are invoked on user actions and
// pointer events on the original canvas go to pointer. When the window is
// resized the original canvas follows and viewport is told its new size.
func (rv *RootView) Build(h ControlHandlers, pointer PointerTarget, viewport ViewportTarget) {
	if rv == nil {
		return
	}
	theme.InitStyles()
	c := rv.cfg

	// Row 0: title
	title := TLabel(Txt("Controls"), Style(theme.StyleTitleLabel))
	Grid(title, Row(0), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.3m"))

	// Row 1: controls | images
	rv.Controls = NewControlPanel(1, 0, h, c.ScaleMin, c.ScaleMax)

	display := Frame()
	Grid(display, Row(1), Column(1), Sticky("nsew"), Padx("0.4m"), Pady("0.4m"))
	rv.Original = NewImageCanvas(c.OriginalViewW, c.OriginalViewH)
	rv.Cropped = NewImageCanvas(c.CroppedViewW, c.CroppedViewH)
	rv.Resized = NewImageCanvas(c.ResizedViewW, c.ResizedViewH)

	caption := func(text string, row, col, span int) {
		lbl := TLabel(Txt(text), Style(theme.StyleSectionLabel))
		Grid(lbl, In(display), Row(row), Column(col), Columnspan(span), Sticky("w"), Padx("0.2m"), Pady("0.2m"))
	}
	placeCanvas := func(cv *ImageCanvas, row, col, span int) {
		Grid(cv.Widget(), In(display), Row(row), Column(col), Columnspan(span), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	}
	caption("Original Image", 0, 0, 2)
	placeCanvas(rv.Original, 1, 0, 2)
	caption("Cropped Image", 2, 0, 1)
	caption("Resized Image", 2, 1, 1)
	placeCanvas(rv.Cropped, 3, 0, 1)
	placeCanvas(rv.Resized, 3, 1, 1)
	rv.Original.BindPointer(pointer)
	if viewport != nil {
		Bind(display, "<Configure>", Command(func(e *Event) { rv.displayResized(e, viewport) }))
	}

	// Row 2: status
	rv.Status = NewStatusBar(2, 2)

	GridColumnConfigure(App, 1, Weight(1))
	GridRowConfigure(App, 1, Weight(1))
	if rv.logger != nil {
		rv.logger.Debug("layout built",
			"original_w", c.OriginalViewW, "original_h", c.OriginalViewH,
			"cropped_w", c.CroppedViewW, "resized_w", c.ResizedViewW)
	}
}

// displayResized fits the original canvas into the display frame, leaving room
// for the preview row below it.
func (rv *RootView) displayResized(e *Event, t ViewportTarget) {
	w, h, ok := eventSize(e)
	if !ok {
		return
	}
	vp := geometry.Size{
		W: max(w-displayChromeW, minViewportPx),
		H: max(h-rv.cfg.CroppedViewH-displayChromeH, minViewportPx),
	}
	if vp == t.Viewport() {
		return
	}
	rv.Original.Resize(vp.W, vp.H)
	t.SetViewport(vp)
	if rv.logger != nil {
		rv.logger.Debug("original canvas resized", "w", vp.W, "h", vp.H)
	}
}

// ShowOriginal displays a rendered frame of the original canvas.
func (rv *RootView) ShowOriginal(img image.Image) {
	if rv != nil {
		rv.Original.Show(img)
	}
}

// ShowPreview displays the cropped or resized preview. A nil image clears it.
func (rv *RootView) ShowPreview(kind model.Kind, img image.Image) {
	if rv == nil {
		return
	}
	switch kind {
	case model.KindCropped:
		rv.Cropped.Show(img)
	case model.KindResized:
		rv.Resized.Show(img)
	case model.KindOriginal:
		rv.Original.Show(img)
	}
}

// SetScaleLabel proxies to the control panel.
func (rv *RootView) SetScaleLabel(text string) {
	if rv != nil {
		rv.Controls.SetScaleLabel(text)
	}
}

// SetInfo proxies to the control panel.
func (rv *RootView) SetInfo(text string) {
	if rv != nil {
		rv.Controls.SetInfo(text)
	}
}

// SetStatus updates the status bar.
func (rv *RootView) SetStatus(text string) {
	if rv != nil {
		rv.Status.SetStatus(text)
	}
}

// SetEditable toggles the controls that must not be used while processing.
func (rv *RootView) SetEditable(enabled bool) {
	if rv != nil && rv.Controls != nil {
		rv.Controls.SetEditable(enabled)
	}
}
