package main

import (
	"flag"
	"log/slog"

	"github.com/soocke/pixel-crop-go/app"
	"github.com/soocke/pixel-crop-go/config"
)

func main() {
	cfgPath := flag.String("config", "config.json", "path to the JSON config file")
	debugFlag := flag.Bool("debug", false, "enable debug logging and memory stats")
	openPath := flag.String("open", "", "image to load at startup")
	flag.Parse()

	// Base config from file, falling back to defaults
	cfg, cfgErr := config.Load(*cfgPath)
	if *debugFlag {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}

	// Set up logger
	logger := NewLogger(ParseLevel(cfg.LogLevel), cfg)
	if cfgErr != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", cfgErr)
	}
	slog.SetDefault(logger)

	application := app.NewApp("Advanced Image Processing Application", 1200, 800, cfg, *cfgPath, logger)
	application.Start(*openPath)
}
