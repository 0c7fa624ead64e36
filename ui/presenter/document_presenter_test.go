package presenter

import (
	"image"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soocke/pixel-crop-go/ui/images"
	"github.com/soocke/pixel-crop-go/ui/model"
)

func TestDocumentPresenter_Load(t *testing.T) {
	h := newHarness(t)
	h.load(t)
	if h.view.lastStatus() != "Loaded: cat.png" {
		t.Fatalf("status %q", h.view.lastStatus())
	}
	if h.view.info != "cat.png\n1000x1000 pixels" {
		t.Fatalf("info %q", h.view.info)
	}
	if h.view.scaleLabel != "1.0x" {
		t.Fatalf("scale label %q", h.view.scaleLabel)
	}
	if _, shown := h.view.previews[model.KindCropped]; !shown || h.view.previews[model.KindCropped] != nil {
		t.Fatalf("cropped preview should be cleared")
	}
	if h.cfg.LastOpenDir != "photos" {
		t.Fatalf("last open dir %q", h.cfg.LastOpenDir)
	}
	if !h.machine.Loaded() || h.doc.Path() != filepath.Join("photos", "cat.png") {
		t.Fatalf("document not installed")
	}
}

func TestDocumentPresenter_LoadFailure(t *testing.T) {
	h := newHarness(t)
	h.proc.loadErr = errFake
	if err := h.document.Load("broken.png"); err == nil {
		t.Fatalf("expected error")
	}
	if len(h.dialogs.errors) != 1 || h.dialogs.errors[0] != "Failed to load image. Please check the file format." {
		t.Fatalf("error dialogs %v", h.dialogs.errors)
	}
	if h.view.lastStatus() != "Error loading image" || h.doc.Loaded() {
		t.Fatalf("status %q loaded=%v", h.view.lastStatus(), h.doc.Loaded())
	}
}

func TestDocumentPresenter_OpenUsesDialog(t *testing.T) {
	h := newHarness(t)
	h.document.Open()
	if h.doc.Loaded() || len(h.view.status) != 0 {
		t.Fatalf("cancelled dialog should do nothing")
	}
	h.dialogs.openPath = filepath.Join("x", "dog.jpg")
	h.document.Open()
	if h.view.lastStatus() != "Loaded: dog.jpg" {
		t.Fatalf("status %q", h.view.lastStatus())
	}
}

func TestDocumentPresenter_SaveMissingWarns(t *testing.T) {
	h := newHarness(t)
	h.load(t)
	h.document.Save(model.KindCropped)
	if len(h.dialogs.warnings) != 1 || h.dialogs.warnings[0] != "No cropped image available to save." {
		t.Fatalf("warnings %v", h.dialogs.warnings)
	}
	if len(h.dialogs.askedFor) != 0 {
		t.Fatalf("save dialog must not open")
	}
}

func TestDocumentPresenter_Save(t *testing.T) {
	h := newHarness(t)
	h.load(t)
	h.dialogs.savePath = filepath.Join("out", "orig.png")
	h.document.Save(model.KindOriginal)

	if h.view.lastStatus() != "Saved original image: orig.png" {
		t.Fatalf("status %q", h.view.lastStatus())
	}
	if len(h.dialogs.infos) != 1 || !strings.HasPrefix(h.dialogs.infos[0], "Original image saved successfully!") ||
		!strings.Contains(h.dialogs.infos[0], "2.0 kB") {
		t.Fatalf("info dialogs %v", h.dialogs.infos)
	}
	if h.cfg.LastSaveDir != "out" || len(h.proc.saved) != 1 {
		t.Fatalf("last save dir %q saved %v", h.cfg.LastSaveDir, h.proc.saved)
	}
	if h.dialogs.askedFor[0] != model.KindOriginal {
		t.Fatalf("asked for %v", h.dialogs.askedFor)
	}
}

func TestDocumentPresenter_SaveFailure(t *testing.T) {
	h := newHarness(t)
	h.load(t)
	h.proc.saveErr = errFake
	if err := h.document.SaveTo(model.KindOriginal, "out.png"); err == nil {
		t.Fatalf("expected error")
	}
	if len(h.dialogs.errors) != 1 || h.dialogs.errors[0] != "Failed to save original image." {
		t.Fatalf("errors %v", h.dialogs.errors)
	}
	if h.view.lastStatus() != "Error saving original image" {
		t.Fatalf("status %q", h.view.lastStatus())
	}
}

func TestDocumentPresenter_Reset(t *testing.T) {
	h := newHarness(t)
	h.proc.loadImg = image.NewRGBA(image.Rect(0, 0, 500, 300))
	h.load(t)
	h.drag(50, 50, 150, 120)
	h.settle(t, func() bool { return h.doc.Image(model.KindCropped) != nil })

	h.document.Reset()
	if h.view.lastStatus() != "Reset complete - Load an image to begin" {
		t.Fatalf("status %q", h.view.lastStatus())
	}
	if h.view.info != "No image loaded" || h.view.scaleLabel != "1.0x" {
		t.Fatalf("info %q label %q", h.view.info, h.view.scaleLabel)
	}
	if h.doc.Loaded() || h.machine.Loaded() {
		t.Fatalf("reset should unload everything")
	}
	if _, ok := h.machine.Committed(); ok {
		t.Fatalf("committed region should be gone")
	}
	if got := h.view.lastOriginal().RGBAAt(250, 150); got != images.Background {
		t.Fatalf("canvas should be blank, got %v", got)
	}
	h.selection.PointerDown(10, 10)
	if h.view.lastStatus() != "Load an image to begin" {
		t.Fatalf("status %q", h.view.lastStatus())
	}
}

func TestDocumentPresenter_CaptureScreen(t *testing.T) {
	h := newHarness(t)
	h.grabber.img = image.NewRGBA(image.Rect(0, 0, 320, 200))
	if err := h.document.CaptureScreen(); err != nil {
		t.Fatalf("capture: %v", err)
	}
	if h.view.lastStatus() != "Captured screen: 320x200 pixels" || h.doc.Name() != "screen capture" {
		t.Fatalf("status %q name %q", h.view.lastStatus(), h.doc.Name())
	}

	h.grabber.err = errFake
	if err := h.document.CaptureScreen(); err == nil {
		t.Fatalf("expected error")
	}
	if h.dialogs.errors[0] != "Failed to capture the screen." {
		t.Fatalf("errors %v", h.dialogs.errors)
	}
	if h.doc.Name() != "screen capture" {
		t.Fatalf("failed capture must keep the current document")
	}
}
