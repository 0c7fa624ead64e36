package presenter

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/soocke/pixel-crop-go/domain/geometry"
	"github.com/soocke/pixel-crop-go/ui/images"
	"github.com/soocke/pixel-crop-go/ui/model"
)

type jobKind int

const (
	jobCrop jobKind = iota + 1
	jobResize
	jobSuggest
)

func (k jobKind) String() string {
	switch k {
	case jobCrop:
		return "crop"
	case jobResize:
		return "resize"
	case jobSuggest:
		return "suggest"
	default:
		return "unknown"
	}
}

type job struct {
	kind       jobKind
	seq        uint64
	generation uint64
	ctx        context.Context
	src        image.Image
	region     image.Rectangle
	scale      float64
	aspectW    int
	aspectH    int
}

type jobResult struct {
	kind       jobKind
	seq        uint64
	generation uint64
	region     image.Rectangle
	scale      float64
	cropped    image.Image
	resized    image.Image
	suggestion image.Rectangle
	err        error
	duration   time.Duration
}

// ProcessingOptions configures a ProcessingPresenter.
type ProcessingOptions struct {
	ScaleStep        float64
	AspectW, AspectH int
	CroppedViewport  geometry.Size
	ResizedViewport  geometry.Size
	AllowUpscale     bool
}

// ProcessingPresenter runs crop, resize and suggestion work on a single
// background worker. Only the latest queued job survives; results are applied
// to the document on the UI thread in Tick.
type ProcessingPresenter struct {
	proc    ImageProcessor
	machine SelectionMachine
	doc     *model.Document
	busy    *model.BusyFlag
	view    PreviewView
	status  StatusView
	opts    ProcessingOptions
	logger  *slog.Logger

	ctx        context.Context
	workerOnce sync.Once
	workCh     chan job
	resultCh   chan jobResult

	seq      uint64
	cancelFn context.CancelFunc
	pending  jobKind // kind of the newest dispatched job, 0 when none
}

// NewProcessingPresenter returns a presenter whose worker stops when ctx is done.
func NewProcessingPresenter(ctx context.Context, proc ImageProcessor, machine SelectionMachine, doc *model.Document, busy *model.BusyFlag, view PreviewView, status StatusView, opts ProcessingOptions, logger *slog.Logger) *ProcessingPresenter {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.ScaleStep <= 0 {
		opts.ScaleStep = 0.1
	}
	if opts.AspectW <= 0 || opts.AspectH <= 0 {
		opts.AspectW, opts.AspectH = 4, 3
	}
	return &ProcessingPresenter{
		proc:     proc,
		machine:  machine,
		doc:      doc,
		busy:     busy,
		view:     view,
		status:   status,
		opts:     opts,
		logger:   logger,
		ctx:      ctx,
		workCh:   make(chan job, 1),
		resultCh: make(chan jobResult, 1),
	}
}

// OnCommit schedules crop and resize of the committed region. It is the
// selection machine's commit handler.
func (p *ProcessingPresenter) OnCommit(region image.Rectangle) {
	if p == nil || p.proc == nil {
		return
	}
	src := p.doc.Image(model.KindOriginal)
	if src == nil {
		return
	}
	p.setMachineBusy(true)
	p.setStatus("Cropping...")
	p.dispatch(job{kind: jobCrop, src: src, region: region, scale: 1})
}

// SmartSelect asks for a content-aware region and commits it.
func (p *ProcessingPresenter) SmartSelect() {
	if p == nil || p.proc == nil {
		return
	}
	src := p.doc.Image(model.KindOriginal)
	if src == nil {
		p.setStatus("Load an image to begin")
		return
	}
	if p.Busy() {
		p.setStatus("Still processing previous selection")
		return
	}
	p.setMachineBusy(true)
	p.setStatus("Finding best crop...")
	p.dispatch(job{kind: jobSuggest, src: src, aspectW: p.opts.AspectW, aspectH: p.opts.AspectH})
}

// SetScale clamps factor, updates the scale label and re-renders the resized
// image from the current crop.
func (p *ProcessingPresenter) SetScale(factor float64) {
	if p == nil || p.proc == nil {
		return
	}
	if p.machineBusy() {
		p.setStatus("Still processing previous selection")
		return
	}
	factor = p.proc.ClampScale(factor)
	p.doc.SetScale(factor)
	p.setScaleLabel(factor)
	cropped := p.doc.Image(model.KindCropped)
	if cropped == nil {
		return
	}
	p.dispatch(job{kind: jobResize, src: cropped, scale: factor})
}

// StepScale moves the scale by steps increments of the configured step.
func (p *ProcessingPresenter) StepScale(steps int) {
	if p == nil {
		return
	}
	p.SetScale(roundScale(p.doc.Scale() + float64(steps)*p.opts.ScaleStep))
}

// ApplyScaleText parses text such as "1.5" or "1.5x" and applies it.
func (p *ProcessingPresenter) ApplyScaleText(text string) error {
	if p == nil {
		return nil
	}
	s := strings.TrimSuffix(strings.TrimSpace(strings.ToLower(text)), "x")
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		p.setStatus(fmt.Sprintf("Invalid scale: %q", text))
		return fmt.Errorf("invalid scale %q", text)
	}
	p.SetScale(f)
	return nil
}

// Cancel abandons queued and in-flight work, e.g. when the document is reset.
func (p *ProcessingPresenter) Cancel() {
	if p == nil {
		return
	}
	if p.cancelFn != nil {
		p.cancelFn()
		p.cancelFn = nil
	}
	select {
	case <-p.workCh:
	default:
	}
	p.pending = 0
	p.seq++ // results of older jobs are now stale
	p.setMachineBusy(false)
}

// Busy reports whether a job is queued or running.
func (p *ProcessingPresenter) Busy() bool { return p != nil && p.pending != 0 }

// Tick applies finished worker results. Call on the UI thread.
func (p *ProcessingPresenter) Tick() {
	if p == nil {
		return
	}
	for {
		select {
		case res := <-p.resultCh:
			p.handleResult(res)
		default:
			return
		}
	}
}

func (p *ProcessingPresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		go p.runWorker()
	})
}

func (p *ProcessingPresenter) runWorker() {
	for {
		select {
		case <-p.ctx.Done():
			return
		case j := <-p.workCh:
			res := p.execute(j)
			select {
			case p.resultCh <- res:
			default:
				select {
				case <-p.resultCh:
				default:
				}
				select {
				case p.resultCh <- res:
				default:
				}
			}
		}
	}
}

func (p *ProcessingPresenter) dispatch(j job) {
	p.ensureWorker()
	if p.cancelFn != nil {
		p.cancelFn()
	}
	ctx, cancel := context.WithCancel(p.ctx)
	p.cancelFn = cancel
	p.seq++
	j.seq = p.seq
	j.ctx = ctx
	j.generation = p.doc.Generation()
	p.pending = j.kind
	select {
	case p.workCh <- j:
	default:
		select {
		case <-p.workCh:
		default:
		}
		select {
		case p.workCh <- j:
		default:
		}
	}
}

func (p *ProcessingPresenter) execute(j job) (res jobResult) {
	res = jobResult{kind: j.kind, seq: j.seq, generation: j.generation, region: j.region, scale: j.scale}
	defer func() {
		if r := recover(); r != nil {
			if p.logger != nil {
				p.logger.Error("processing worker panic", "job", j.kind.String(), "error", r)
			}
			res.err = fmt.Errorf("%s failed: %v", j.kind, r)
		}
	}()
	start := time.Now()
	switch j.kind {
	case jobCrop:
		res.cropped, res.err = p.proc.Crop(j.src, j.region)
		if res.err == nil {
			res.resized, res.err = p.proc.Resize(j.ctx, res.cropped, j.scale)
		}
	case jobResize:
		res.resized, res.err = p.proc.Resize(j.ctx, j.src, j.scale)
	case jobSuggest:
		res.suggestion, res.err = p.proc.Suggest(j.ctx, j.src, j.aspectW, j.aspectH)
	default:
		res.err = errors.New("unknown job kind")
	}
	res.duration = time.Since(start)
	return res
}

func (p *ProcessingPresenter) handleResult(res jobResult) {
	if res.seq != p.seq {
		// superseded; the newer job clears busy state when it lands
		return
	}
	p.pending = 0
	if res.kind != jobSuggest {
		defer p.setMachineBusy(false)
	}
	if p.logger != nil {
		p.logger.Debug("job finished", "job", res.kind.String(), "seq", res.seq, "elapsed", res.duration, "error", res.err)
	}
	if res.generation != p.doc.Generation() {
		if res.kind == jobSuggest {
			p.setMachineBusy(false)
		}
		return
	}
	if res.err != nil {
		if res.kind == jobSuggest {
			p.setMachineBusy(false)
		}
		if errors.Is(res.err, context.Canceled) {
			return
		}
		if p.logger != nil {
			p.logger.Error("processing", "job", res.kind.String(), "error", res.err)
		}
		p.setStatus(fmt.Sprintf("Error: %s failed", res.kind))
		return
	}
	switch res.kind {
	case jobCrop:
		p.doc.SetCropped(res.region, res.cropped)
		p.doc.SetResized(res.resized, res.scale)
		p.show(model.KindCropped, res.cropped)
		p.show(model.KindResized, res.resized)
		p.setScaleLabel(res.scale)
		b := res.cropped.Bounds()
		p.setStatus(fmt.Sprintf("Cropped to %dx%d pixels", b.Dx(), b.Dy()))
		if p.logger != nil {
			p.logger.Info("cropped", "region", res.region.String(), "elapsed", res.duration)
		}
	case jobResize:
		p.doc.SetResized(res.resized, res.scale)
		p.show(model.KindResized, res.resized)
		b := res.resized.Bounds()
		p.setStatus(fmt.Sprintf("Resized to %dx%d pixels (scale: %.1fx)", b.Dx(), b.Dy(), res.scale))
		if p.logger != nil {
			p.logger.Info("resized", "w", b.Dx(), "h", b.Dy(), "scale", res.scale, "elapsed", res.duration)
		}
	case jobSuggest:
		p.setMachineBusy(false)
		if p.machine == nil {
			return
		}
		// Commit hands the region to OnCommit, which queues the crop.
		if _, err := p.machine.Commit(res.suggestion); err != nil {
			if p.logger != nil {
				p.logger.Warn("smart select rejected", "region", res.suggestion.String(), "error", err)
			}
			p.setStatus("Smart select found no usable region")
		}
	}
}

func (p *ProcessingPresenter) show(kind model.Kind, img image.Image) {
	if p.view == nil {
		return
	}
	vp := p.opts.CroppedViewport
	if kind == model.KindResized {
		vp = p.opts.ResizedViewport
	}
	var opts []geometry.Option
	if !p.opts.AllowUpscale {
		opts = append(opts, geometry.WithMaxFactor(1))
	}
	p.view.ShowPreview(kind, images.Fit(img, vp, opts...))
}

func (p *ProcessingPresenter) machineBusy() bool {
	return p.machine != nil && p.machine.Busy()
}

func (p *ProcessingPresenter) setMachineBusy(b bool) {
	if p.machine != nil {
		p.machine.SetBusy(b)
	}
	p.busy.SetBusy(b)
}

func (p *ProcessingPresenter) setScaleLabel(f float64) {
	if p.view != nil {
		p.view.SetScaleLabel(FormatScale(f))
	}
}

func (p *ProcessingPresenter) setStatus(s string) {
	if p.status != nil {
		p.status.SetStatus(s)
	}
}

// FormatScale renders a scale factor the way the scale label shows it.
func FormatScale(f float64) string { return fmt.Sprintf("%.1fx", f) }

// roundScale removes float drift from repeated steps.
func roundScale(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}
