package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/pixel-crop-go/config"
	"github.com/soocke/pixel-crop-go/debug"
	"github.com/soocke/pixel-crop-go/ui/presenter"
)

const (
	tick = 50 * time.Millisecond
)

type app struct {
	config    *config.Config
	cfgPath   string
	logger    *slog.Logger
	width     int
	height    int
	afterID   string
	ctx       context.Context
	cancel    context.CancelFunc
	container *AppContainer
	loop      *presenter.Loop
}

// NewApp configures the root window. No widgets are created until Start.
func NewApp(title string, width, height int, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &app{config: cfg, cfgPath: cfgPath, logger: logger, width: width, height: height, ctx: ctx, cancel: cancel}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start builds the UI, optionally loads openPath and runs the Tk event loop
// until the window is closed.
func (a *app) Start(openPath string) {
	a.container = BuildContainer(a.ctx, a.config, a.cfgPath, a.logger)
	c := a.container
	c.RootView.Build(c.Handlers(), c.SelectionPresenter, c.SelectionPresenter)
	c.SelectionPresenter.DocumentChanged()

	if a.config.Debug {
		debug.StartMemLogger(a.ctx, 5*time.Second, a.logger)
		debug.StartGoroutineLogger(a.ctx, 5*time.Second, a.logger)
	}

	a.loop = presenter.NewLoop(c.ProcessingPresenter, a.scheduleUpdate, c.BusySync())
	if openPath != "" {
		_ = c.DocumentPresenter.Load(openPath)
	}
	a.scheduleUpdate()
	if a.logger != nil {
		a.logger.Info("editor started", "width", a.width, "height", a.height, "config", a.cfgPath)
	}

	App.Wait()
}

func (a *app) exitHandler() {
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	a.cancel()
	if a.container != nil && a.logger != nil {
		hits, misses := a.container.Cache.Stats()
		stats := a.container.Screen.Stats()
		a.logger.Info("editor exiting",
			"frames", a.container.SelectionPresenter.Frames(),
			"jobs", a.container.Busy.Started(),
			"preview_hits", hits, "preview_misses", misses,
			"captures", stats.Captures)
	}
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.loop.Tick() })
}
