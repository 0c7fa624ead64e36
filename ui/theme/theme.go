package theme

// Centralized theming and styling initialization for the editor UI.
// Provides palette constants and InitStyles to activate a base theme and
// configure semantic widget styles.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#f0f0f0" // app background
	ColorSurface   = "#ffffff" // canvases, panels
	ColorBorder    = "#d0d7de"
	ColorPrimary   = "#2563eb" // buttons, accents
	ColorDanger    = "#dc2626"
	ColorAccent    = "#10b981"
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
)

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleTitleLabel    = "title.TLabel"
	StyleSectionLabel  = "section.TLabel"
	StyleInfoLabel     = "info.TLabel"
	StyleStatusLabel   = "status.TLabel"
)

// InitStyles activates the base theme and configures the semantic styles.
// It must run on the Tk thread before any widget using them is created.
func InitStyles() {
	_ = ActivateTheme("azure light") // baseline metrics
	App.Configure(Background(ColorBg))

	StyleConfigure(StylePrimaryButton,
		Background(ColorPrimary),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleDangerButton,
		Background(ColorDanger),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleTitleLabel,
		Foreground(ColorText),
		Background(ColorBg),
		Font("helvetica", 16, "bold"),
		Padding("2p 4p"),
	)
	StyleConfigure(StyleSectionLabel,
		Foreground(ColorPrimary),
		Background(ColorBg),
		Font("helvetica", 11, "bold"),
		Padding("2p 1p"),
	)
	StyleConfigure(StyleInfoLabel,
		Foreground(ColorTextMuted),
		Background(ColorBg),
		Padding("2p 1p"),
	)
	StyleConfigure(StyleStatusLabel,
		Foreground(ColorText),
		Background(ColorSurface),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("sunken"),
	)
}
