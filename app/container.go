package app

import (
	"context"
	"log/slog"

	"github.com/soocke/pixel-crop-go/config"
	"github.com/soocke/pixel-crop-go/domain/capture"
	"github.com/soocke/pixel-crop-go/domain/geometry"
	"github.com/soocke/pixel-crop-go/domain/imageproc"
	"github.com/soocke/pixel-crop-go/domain/selection"
	"github.com/soocke/pixel-crop-go/ui/images"
	"github.com/soocke/pixel-crop-go/ui/model"
	"github.com/soocke/pixel-crop-go/ui/presenter"
	"github.com/soocke/pixel-crop-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	Processor *imageproc.Processor
	Screen    *capture.ScreenSource
	Document  *model.Document
	Busy      *model.BusyFlag
	Cache     *images.PreviewCache
	Machine   *selection.Machine
	RootView  *view.RootView
	Dialogs   *view.Dialogs

	// Presenters
	SelectionPresenter  *presenter.SelectionPresenter
	ProcessingPresenter *presenter.ProcessingPresenter
	DocumentPresenter   *presenter.DocumentPresenter
}

// BuildContainer constructs all components. No Tk widgets are created; the
// root view is built later on the Tk thread. Workers stop when ctx is done.
func BuildContainer(ctx context.Context, cfg *config.Config, cfgPath string, logger *slog.Logger) *AppContainer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}
	c.Processor = imageproc.NewProcessor(imageproc.Options{
		ScaleMin:    cfg.ScaleMin,
		ScaleMax:    cfg.ScaleMax,
		JPEGQuality: cfg.JPEGQuality,
		DefaultExt:  cfg.DefaultSaveExt,
	}, logger)
	c.Screen = capture.NewScreenSource(logger)
	c.Document = model.NewDocument()
	c.Busy = &model.BusyFlag{}
	c.Cache = images.NewPreviewCache(cfg.PreviewCacheSize)
	c.Machine = selection.New(logger, selection.Options{MinSize: cfg.MinSelectionPx})

	// View
	c.RootView = view.NewRootView(cfg, logger)
	c.Dialogs = view.NewDialogs()

	// Presenters
	c.SelectionPresenter = presenter.NewSelectionPresenter(c.Machine, c.Document, c.Cache,
		c.RootView, c.RootView, viewSize(cfg.OriginalViewW, cfg.OriginalViewH), cfg.AllowUpscale, logger)
	c.ProcessingPresenter = presenter.NewProcessingPresenter(ctx, c.Processor, c.Machine, c.Document, c.Busy,
		c.RootView, c.RootView, presenter.ProcessingOptions{
			ScaleStep:       cfg.ScaleStep,
			AspectW:         cfg.SmartCropW,
			AspectH:         cfg.SmartCropH,
			CroppedViewport: viewSize(cfg.CroppedViewW, cfg.CroppedViewH),
			ResizedViewport: viewSize(cfg.ResizedViewW, cfg.ResizedViewH),
			AllowUpscale:    cfg.AllowUpscale,
		}, logger)
	c.Machine.OnCommit(c.ProcessingPresenter.OnCommit)
	c.DocumentPresenter = presenter.NewDocumentPresenter(c.Processor, c.Screen, c.Document, c.Cache,
		c.SelectionPresenter, c.ProcessingPresenter, c.RootView, c.Dialogs, cfg, cfgPath, logger)
	return c
}

// Handlers maps control panel actions onto the presenters.
func (c *AppContainer) Handlers() view.ControlHandlers {
	return view.ControlHandlers{
		Load:           c.DocumentPresenter.Open,
		Capture:        func() { _ = c.DocumentPresenter.CaptureScreen() },
		ClearSelection: c.SelectionPresenter.ClearSelection,
		SmartSelect:    c.ProcessingPresenter.SmartSelect,
		ApplyScale:     func(text string) { _ = c.ProcessingPresenter.ApplyScaleText(text) },
		ScaleDown:      func() { c.ProcessingPresenter.StepScale(-1) },
		ScaleUp:        func() { c.ProcessingPresenter.StepScale(1) },
		Save:           c.DocumentPresenter.Save,
		Reset:          c.DocumentPresenter.Reset,
	}
}

// BusySync returns a tick function that mirrors the busy flag into the view.
func (c *AppContainer) BusySync() func() {
	last := false
	return func() {
		b := c.Busy.Busy()
		if b == last {
			return
		}
		last = b
		c.RootView.SetEditable(!b)
	}
}

func viewSize(w, h int) geometry.Size { return geometry.Size{W: w, H: h} }
