package view

import (
	"strconv"
	"strings"

	"github.com/soocke/pixel-crop-go/ui/model"
	"github.com/soocke/pixel-crop-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ControlHandlers are the user actions the control panel triggers.
// Nil handlers leave their buttons inert.
type ControlHandlers struct {
	Load           func()
	Capture        func()
	ClearSelection func()
	SmartSelect    func()
	ApplyScale     func(text string) // slider value as text, e.g. "1.5"
	ScaleDown      func()
	ScaleUp        func()
	Save           func(kind model.Kind)
	Reset          func()
}

// ControlPanel is the left column of the window: loading, cropping, resizing
// and saving controls.
type ControlPanel struct {
	frame      *FrameWidget
	info       *TLabelWidget
	scaleLabel *LabelWidget
	slider     *TScaleWidget
	lastScale  string // last slider value handed to ApplyScale
	// busyWidgets are disabled while a crop or resize is running.
	busyWidgets []*Window
}

// NewControlPanel builds the panel inside a new frame gridded at (row, col).
// The scale slider spans [scaleMin, scaleMax].
func NewControlPanel(row, col int, h ControlHandlers, scaleMin, scaleMax float64) *ControlPanel {
	p := &ControlPanel{frame: Frame(Padx("2m"), Pady("2m"))}
	Grid(p.frame, Row(row), Column(col), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	p.build(h, scaleMin, scaleMax)
	return p
}

func (p *ControlPanel) build(h ControlHandlers, scaleMin, scaleMax float64) {
	f := p.frame
	r := 0
	section := func(title string) {
		lbl := TLabel(Txt(title), Style(theme.StyleSectionLabel), Anchor("w"))
		Grid(lbl, In(f), Row(r), Column(0), Columnspan(4), Sticky("we"), Pady("1m 0.3m"))
		r++
	}
	button := func(text, style string, fn func()) *TButtonWidget {
		opts := []Opt{Txt(text), Command(call(fn))}
		if style != "" {
			opts = append(opts, Style(style))
		}
		b := TButton(opts...)
		Grid(b, In(f), Row(r), Column(0), Columnspan(4), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		r++
		return b
	}

	section("Image Loading")
	button("Load Image", theme.StylePrimaryButton, h.Load)
	button("Capture Screen", "", h.Capture)
	p.info = TLabel(Txt("No image loaded"), Style(theme.StyleInfoLabel), Anchor("w"), Justify("left"), Wraplength("55m"))
	Grid(p.info, In(f), Row(r), Column(0), Columnspan(4), Sticky("we"), Pady("0.3m"))
	r++

	section("Image Cropping")
	hint := TLabel(Txt("Click and drag on the original image\nto select crop area"), Style(theme.StyleInfoLabel), Wraplength("55m"), Justify("left"))
	Grid(hint, In(f), Row(r), Column(0), Columnspan(4), Sticky("we"))
	r++
	clearBtn := button("Clear Selection", "", h.ClearSelection)
	smartBtn := button("Smart Select", "", h.SmartSelect)

	section("Image Resizing")
	lbl := Label(Txt("Scale Factor"), Anchor("w"))
	Grid(lbl, In(f), Row(r), Column(0), Columnspan(2), Sticky("w"), Padx("0.2m"), Pady("0.15m"))
	p.scaleLabel = Label(Txt("1.0x"), Anchor("e"), Width(6))
	Grid(p.scaleLabel, In(f), Row(r), Column(2), Columnspan(2), Sticky("e"), Padx("0.2m"), Pady("0.15m"))
	r++
	p.slider = TScale(From(scaleMin), To(scaleMax), Value(1.0), Orient("horizontal"), Command(func() { p.sliderMoved(h.ApplyScale) }))
	down := Button(Txt("-"), Width(2), Command(call(h.ScaleDown)))
	up := Button(Txt("+"), Width(2), Command(call(h.ScaleUp)))
	Grid(down, In(f), Row(r), Column(0), Sticky("w"), Padx("0.2m"), Pady("0.2m"))
	Grid(p.slider, In(f), Row(r), Column(1), Columnspan(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Grid(up, In(f), Row(r), Column(3), Sticky("e"), Padx("0.2m"), Pady("0.2m"))
	r++

	section("Save Image")
	save := func(k model.Kind) func() {
		return func() {
			if h.Save != nil {
				h.Save(k)
			}
		}
	}
	for _, k := range model.Kinds() {
		button("Save "+k.Title(), "", save(k))
	}
	button("Reset All", theme.StyleDangerButton, h.Reset)

	p.busyWidgets = append(p.busyWidgets, clearBtn.Window, smartBtn.Window, down.Window, up.Window, p.slider.Window)
}

// SetInfo shows the image description.
func (p *ControlPanel) SetInfo(text string) {
	if p != nil && p.info != nil {
		p.info.Configure(Txt(text))
	}
}

// SetScaleLabel updates the current scale display and moves the slider to it.
func (p *ControlPanel) SetScaleLabel(text string) {
	if p == nil || p.scaleLabel == nil {
		return
	}
	p.scaleLabel.Configure(Txt(text))
	f, err := strconv.ParseFloat(strings.TrimSuffix(text, "x"), 64)
	if err != nil || p.slider == nil {
		return
	}
	v := formatSlider(f)
	if v == p.sliderText() {
		// already there, e.g. while the user is dragging
		return
	}
	p.lastScale = v
	p.slider.Configure(Value(v))
}

// SetEditable toggles the cropping and resizing controls.
func (p *ControlPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range p.busyWidgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
}

// sliderMoved forwards a slider change rounded to one decimal. The slider
// reports every motion; repeats of the same rounded value are dropped.
func (p *ControlPanel) sliderMoved(apply func(string)) {
	v := p.sliderText()
	if v == "" || v == p.lastScale {
		return
	}
	p.lastScale = v
	if apply != nil {
		apply(v)
	}
}

// sliderText returns the slider position rounded to one decimal.
func (p *ControlPanel) sliderText() string {
	if p.slider == nil {
		return ""
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(p.slider.Get()), 64)
	if err != nil {
		return ""
	}
	return formatSlider(f)
}

func formatSlider(f float64) string { return strconv.FormatFloat(f, 'f', 1, 64) }

func call(fn func()) func() {
	return func() {
		if fn != nil {
			fn()
		}
	}
}
