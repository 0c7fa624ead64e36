package presenter

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/soocke/pixel-crop-go/config"
	"github.com/soocke/pixel-crop-go/ui/images"
	"github.com/soocke/pixel-crop-go/ui/model"
)

// DocumentView is the part of the window the document presenter updates.
type DocumentView interface {
	InfoView
	StatusView
	PreviewView
}

// DocumentPresenter handles loading, capturing, saving and resetting images.
type DocumentPresenter struct {
	proc       ImageProcessor
	grabber    ScreenGrabber
	doc        *model.Document
	cache      *images.PreviewCache
	selection  *SelectionPresenter
	processing *ProcessingPresenter
	view       DocumentView
	dialogs    Dialogs
	cfg        *config.Config
	cfgPath    string
	logger     *slog.Logger
}

// NewDocumentPresenter constructs a document presenter. cfgPath may be empty
// to disable persisting the last used directories.
func NewDocumentPresenter(proc ImageProcessor, grabber ScreenGrabber, doc *model.Document, cache *images.PreviewCache, sel *SelectionPresenter, processing *ProcessingPresenter, view DocumentView, dialogs Dialogs, cfg *config.Config, cfgPath string, logger *slog.Logger) *DocumentPresenter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &DocumentPresenter{
		proc:       proc,
		grabber:    grabber,
		doc:        doc,
		cache:      cache,
		selection:  sel,
		processing: processing,
		view:       view,
		dialogs:    dialogs,
		cfg:        cfg,
		cfgPath:    cfgPath,
		logger:     logger,
	}
}

// Open asks for an image file and loads it.
func (p *DocumentPresenter) Open() {
	if p == nil || p.dialogs == nil {
		return
	}
	path := p.dialogs.AskOpenPath(p.cfg.LastOpenDir)
	if path == "" {
		return
	}
	_ = p.Load(path)
}

// Load decodes path and installs it as the original image.
func (p *DocumentPresenter) Load(path string) error {
	if p == nil || p.proc == nil {
		return nil
	}
	img, err := p.proc.Load(context.Background(), path)
	if err != nil {
		if p.logger != nil {
			p.logger.Error("load image", "path", path, "error", err)
		}
		p.showError("Error", "Failed to load image. Please check the file format.")
		p.setStatus("Error loading image")
		return err
	}
	name := filepath.Base(path)
	p.install(name, path, img)
	p.setStatus("Loaded: " + name)
	p.cfg.RememberOpenDir(path)
	p.persist()
	return nil
}

// CaptureScreen grabs the screen and installs it as the original image.
func (p *DocumentPresenter) CaptureScreen() error {
	if p == nil || p.grabber == nil {
		return nil
	}
	img, err := p.grabber.Grab()
	if err != nil {
		if p.logger != nil {
			p.logger.Error("capture screen", "error", err)
		}
		p.showError("Error", "Failed to capture the screen.")
		p.setStatus("Error capturing screen")
		return err
	}
	p.install("screen capture", "", img)
	b := img.Bounds()
	p.setStatus(fmt.Sprintf("Captured screen: %dx%d pixels", b.Dx(), b.Dy()))
	return nil
}

// Save asks for a destination and writes the image of kind k.
func (p *DocumentPresenter) Save(k model.Kind) {
	if p == nil || p.proc == nil {
		return
	}
	img := p.doc.Image(k)
	if img == nil {
		if p.dialogs != nil {
			p.dialogs.ShowWarning("Warning", fmt.Sprintf("No %s image available to save.", k))
		}
		return
	}
	if p.dialogs == nil {
		return
	}
	path := p.dialogs.AskSavePath(k, p.cfg.LastSaveDir)
	if path == "" {
		return
	}
	_ = p.SaveTo(k, path)
}

// SaveTo writes the image of kind k to path without asking.
func (p *DocumentPresenter) SaveTo(k model.Kind, path string) error {
	img := p.doc.Image(k)
	if img == nil {
		return fmt.Errorf("no %s image", k)
	}
	written, size, err := p.proc.Save(img, path)
	if err != nil {
		if p.logger != nil {
			p.logger.Error("save image", "kind", k.String(), "path", path, "error", err)
		}
		p.showError("Error", fmt.Sprintf("Failed to save %s image.", k))
		p.setStatus(fmt.Sprintf("Error saving %s image", k))
		return err
	}
	if p.dialogs != nil {
		p.dialogs.ShowInfo("Success", fmt.Sprintf("%s image saved successfully!\n%s (%s)",
			k.Title(), written, humanize.Bytes(uint64(size))))
	}
	p.setStatus(fmt.Sprintf("Saved %s image: %s", k, filepath.Base(written)))
	p.cfg.RememberSaveDir(written)
	p.persist()
	return nil
}

// Reset drops every image and returns the editor to its start state.
func (p *DocumentPresenter) Reset() {
	if p == nil {
		return
	}
	p.processing.Cancel()
	p.doc.Reset()
	p.cache.Purge()
	p.selection.DocumentChanged()
	p.clearPreviews()
	if p.view != nil {
		p.view.SetInfo(p.doc.Info())
	}
	p.setStatus("Reset complete - Load an image to begin")
}

func (p *DocumentPresenter) install(name, path string, img image.Image) {
	p.processing.Cancel()
	p.doc.SetOriginal(name, path, img)
	p.cache.Purge()
	p.selection.DocumentChanged()
	p.clearPreviews()
	if p.view != nil {
		p.view.SetInfo(p.doc.Info())
	}
	if p.logger != nil {
		b := img.Bounds()
		p.logger.Info("document replaced", "name", name, "w", b.Dx(), "h", b.Dy(),
			"approx_mem", humanize.Bytes(uint64(b.Dx()*b.Dy()*4)), "generation", p.doc.Generation())
	}
}

func (p *DocumentPresenter) clearPreviews() {
	if p.view == nil {
		return
	}
	p.view.ShowPreview(model.KindCropped, nil)
	p.view.ShowPreview(model.KindResized, nil)
	p.view.SetScaleLabel(FormatScale(1))
}

func (p *DocumentPresenter) persist() {
	if p.cfgPath == "" {
		return
	}
	if err := p.cfg.Save(p.cfgPath); err != nil && p.logger != nil {
		p.logger.Warn("save config", "path", p.cfgPath, "error", err)
	}
}

func (p *DocumentPresenter) showError(title, msg string) {
	if p.dialogs != nil {
		p.dialogs.ShowError(title, msg)
	}
}

func (p *DocumentPresenter) setStatus(s string) {
	if p.view != nil {
		p.view.SetStatus(s)
	}
}
