package presenter

import (
	"context"
	"errors"
	"image"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/soocke/pixel-crop-go/config"
	"github.com/soocke/pixel-crop-go/domain/geometry"
	"github.com/soocke/pixel-crop-go/domain/selection"
	"github.com/soocke/pixel-crop-go/ui/images"
	"github.com/soocke/pixel-crop-go/ui/model"
)

var errFake = errors.New("fake failure")

// fakeProcessor produces blank images of the sizes the real processor would.
type fakeProcessor struct {
	mu         sync.Mutex
	loadImg    image.Image
	loadErr    error
	saveErr    error
	cropErr    error
	suggestion image.Rectangle
	gate       chan struct{} // when set, Resize waits for it or ctx
	crops      []image.Rectangle
	resizes    []float64
	saved      []string
}

func (f *fakeProcessor) Load(ctx context.Context, path string) (image.Image, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.loadImg, nil
}

func (f *fakeProcessor) Crop(src image.Image, region image.Rectangle) (image.Image, error) {
	f.mu.Lock()
	f.crops = append(f.crops, region)
	f.mu.Unlock()
	if f.cropErr != nil {
		return nil, f.cropErr
	}
	r := region.Canon().Intersect(src.Bounds())
	return image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy())), nil
}

func (f *fakeProcessor) Resize(ctx context.Context, src image.Image, factor float64) (image.Image, error) {
	f.mu.Lock()
	f.resizes = append(f.resizes, factor)
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	b := src.Bounds()
	return image.NewRGBA(image.Rect(0, 0, max(int(float64(b.Dx())*factor), 1), max(int(float64(b.Dy())*factor), 1))), nil
}

func (f *fakeProcessor) Suggest(ctx context.Context, src image.Image, w, h int) (image.Rectangle, error) {
	return f.suggestion, nil
}

func (f *fakeProcessor) Save(img image.Image, path string) (string, int64, error) {
	if f.saveErr != nil {
		return "", 0, f.saveErr
	}
	f.mu.Lock()
	f.saved = append(f.saved, path)
	f.mu.Unlock()
	return path, 2048, nil
}

func (f *fakeProcessor) ClampScale(factor float64) float64 {
	return min(max(factor, 0.1), 3.0)
}

func (f *fakeProcessor) resizeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.resizes)
}

type fakeGrabber struct {
	img *image.RGBA
	err error
}

func (g *fakeGrabber) Grab() (*image.RGBA, error) { return g.img, g.err }

// recordingView implements every view contract the presenters use.
type recordingView struct {
	originals  []image.Image
	previews   map[model.Kind]image.Image
	scaleLabel string
	info       string
	status     []string
}

func newRecordingView() *recordingView {
	return &recordingView{previews: map[model.Kind]image.Image{}}
}

func (v *recordingView) ShowOriginal(img image.Image)                 { v.originals = append(v.originals, img) }
func (v *recordingView) ShowPreview(kind model.Kind, img image.Image) { v.previews[kind] = img }
func (v *recordingView) SetScaleLabel(s string)                       { v.scaleLabel = s }
func (v *recordingView) SetInfo(s string)                             { v.info = s }
func (v *recordingView) SetStatus(s string)                           { v.status = append(v.status, s) }

func (v *recordingView) lastStatus() string {
	if len(v.status) == 0 {
		return ""
	}
	return v.status[len(v.status)-1]
}

func (v *recordingView) lastOriginal() *image.RGBA {
	if len(v.originals) == 0 {
		return nil
	}
	img, _ := v.originals[len(v.originals)-1].(*image.RGBA)
	return img
}

type mockDialogs struct {
	openPath string
	savePath string
	infos    []string
	warnings []string
	errors   []string
	askedFor []model.Kind
}

func (d *mockDialogs) AskOpenPath(string) string { return d.openPath }
func (d *mockDialogs) AskSavePath(k model.Kind, _ string) string {
	d.askedFor = append(d.askedFor, k)
	return d.savePath
}
func (d *mockDialogs) ShowInfo(_, msg string)    { d.infos = append(d.infos, msg) }
func (d *mockDialogs) ShowWarning(_, msg string) { d.warnings = append(d.warnings, msg) }
func (d *mockDialogs) ShowError(_, msg string)   { d.errors = append(d.errors, msg) }

type harness struct {
	proc       *fakeProcessor
	grabber    *fakeGrabber
	machine    *selection.Machine
	doc        *model.Document
	busy       *model.BusyFlag
	view       *recordingView
	dialogs    *mockDialogs
	cfg        *config.Config
	selection  *SelectionPresenter
	processing *ProcessingPresenter
	document   *DocumentPresenter
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := &harness{
		proc:    &fakeProcessor{loadImg: image.NewRGBA(image.Rect(0, 0, 1000, 1000))},
		grabber: &fakeGrabber{},
		machine: selection.New(nil, selection.Options{}),
		doc:     model.NewDocument(),
		busy:    &model.BusyFlag{},
		view:    newRecordingView(),
		dialogs: &mockDialogs{},
		cfg:     config.DefaultConfig(),
	}
	cache := images.NewPreviewCache(4)
	h.selection = NewSelectionPresenter(h.machine, h.doc, cache, h.view, h.view, geometry.Size{W: 500, H: 300}, false, nil)
	h.processing = NewProcessingPresenter(ctx, h.proc, h.machine, h.doc, h.busy, h.view, h.view, ProcessingOptions{
		ScaleStep:       0.1,
		CroppedViewport: geometry.Size{W: 250, H: 200},
		ResizedViewport: geometry.Size{W: 250, H: 200},
	}, nil)
	h.machine.OnCommit(h.processing.OnCommit)
	h.document = NewDocumentPresenter(h.proc, h.grabber, h.doc, cache, h.selection, h.processing, h.view, h.dialogs, h.cfg, "", nil)
	return h
}

func (h *harness) load(t *testing.T) {
	t.Helper()
	if err := h.document.Load(filepath.Join("photos", "cat.png")); err != nil {
		t.Fatalf("load: %v", err)
	}
}

// settle ticks the processing presenter until cond holds.
func (h *harness) settle(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		h.processing.Tick()
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("condition not reached; status=%v", h.view.status)
}

// drag performs a full press-move-release gesture in canvas coordinates.
func (h *harness) drag(x0, y0, x1, y1 float64) {
	h.selection.PointerDown(x0, y0)
	h.selection.PointerMove(x1, y1)
	h.selection.PointerUp(x1, y1)
}
