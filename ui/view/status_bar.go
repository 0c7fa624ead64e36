package view

import (
	"github.com/soocke/pixel-crop-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// InitialStatus is shown until the first action.
const InitialStatus = "Ready - Load an image to begin"

// StatusBar is the single-line status display at the bottom of the window.
type StatusBar struct {
	label *TLabelWidget
	last  string
}

// NewStatusBar creates the status label spanning columns [0, span) of row.
func NewStatusBar(row, span int) *StatusBar {
	s := &StatusBar{label: TLabel(Txt(InitialStatus), Style(theme.StyleStatusLabel), Anchor("w")), last: InitialStatus}
	Grid(s.label, Row(row), Column(0), Columnspan(span), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	return s
}

// SetStatus replaces the status text.
func (s *StatusBar) SetStatus(text string) {
	if s == nil || s.label == nil || text == s.last {
		return
	}
	s.last = text
	s.label.Configure(Txt(text))
}

// Status returns the last text shown.
func (s *StatusBar) Status() string {
	if s == nil {
		return ""
	}
	return s.last
}
