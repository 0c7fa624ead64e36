package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Config holds runtime configuration for the editor.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Logging
	LogLevel      string `json:"log_level"`
	LogFile       string `json:"log_file"`
	LogMaxSizeMB  int    `json:"log_max_size_mb"`
	LogMaxBackups int    `json:"log_max_backups"`
	LogMaxAgeDays int    `json:"log_max_age_days"`

	// Viewport sizes in screen pixels
	OriginalViewW int  `json:"original_view_w"`
	OriginalViewH int  `json:"original_view_h"`
	CroppedViewW  int  `json:"cropped_view_w"`
	CroppedViewH  int  `json:"cropped_view_h"`
	ResizedViewW  int  `json:"resized_view_w"`
	ResizedViewH  int  `json:"resized_view_h"`
	AllowUpscale  bool `json:"allow_upscale"`

	// Selection and resizing
	MinSelectionPx int     `json:"min_selection_px"`
	ScaleMin       float64 `json:"scale_min"`
	ScaleMax       float64 `json:"scale_max"`
	ScaleStep      float64 `json:"scale_step"`
	SmartCropW     int     `json:"smart_crop_w"`
	SmartCropH     int     `json:"smart_crop_h"`

	// Files
	JPEGQuality    int    `json:"jpeg_quality"`
	DefaultSaveExt string `json:"default_save_ext"`
	LastOpenDir    string `json:"last_open_dir"`
	LastSaveDir    string `json:"last_save_dir"`

	PreviewCacheSize int `json:"preview_cache_size"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:            false,
		LogLevel:         "info",
		LogMaxSizeMB:     10,
		LogMaxBackups:    2,
		LogMaxAgeDays:    28,
		OriginalViewW:    500,
		OriginalViewH:    300,
		CroppedViewW:     250,
		CroppedViewH:     200,
		ResizedViewW:     250,
		ResizedViewH:     200,
		AllowUpscale:     false,
		MinSelectionPx:   1,
		ScaleMin:         0.1,
		ScaleMax:         3.0,
		ScaleStep:        0.1,
		SmartCropW:       4,
		SmartCropH:       3,
		JPEGQuality:      95,
		DefaultSaveExt:   ".png",
		PreviewCacheSize: 8,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	def := DefaultConfig()
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		c.LogLevel = def.LogLevel
	}
	if c.LogMaxSizeMB <= 0 {
		c.LogMaxSizeMB = def.LogMaxSizeMB
	}
	if c.LogMaxBackups < 0 {
		c.LogMaxBackups = 0
	}
	if c.LogMaxAgeDays < 0 {
		c.LogMaxAgeDays = 0
	}
	clampView(&c.OriginalViewW, def.OriginalViewW)
	clampView(&c.OriginalViewH, def.OriginalViewH)
	clampView(&c.CroppedViewW, def.CroppedViewW)
	clampView(&c.CroppedViewH, def.CroppedViewH)
	clampView(&c.ResizedViewW, def.ResizedViewW)
	clampView(&c.ResizedViewH, def.ResizedViewH)
	if c.MinSelectionPx < 1 {
		c.MinSelectionPx = 1
	}
	if c.ScaleMin <= 0 {
		c.ScaleMin = def.ScaleMin
	}
	if c.ScaleMax <= 0 || c.ScaleMax < c.ScaleMin {
		c.ScaleMax = max(def.ScaleMax, c.ScaleMin)
	}
	if c.ScaleStep <= 0 {
		c.ScaleStep = def.ScaleStep
	}
	if c.ScaleStep > (c.ScaleMax - c.ScaleMin) {
		c.ScaleStep = (c.ScaleMax - c.ScaleMin) / 4
	}
	if c.SmartCropW <= 0 || c.SmartCropH <= 0 {
		c.SmartCropW, c.SmartCropH = def.SmartCropW, def.SmartCropH
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		c.JPEGQuality = def.JPEGQuality
	}
	if c.DefaultSaveExt == "" {
		c.DefaultSaveExt = def.DefaultSaveExt
	}
	if !strings.HasPrefix(c.DefaultSaveExt, ".") {
		c.DefaultSaveExt = "." + c.DefaultSaveExt
	}
	c.DefaultSaveExt = strings.ToLower(c.DefaultSaveExt)
	if c.PreviewCacheSize < 1 {
		c.PreviewCacheSize = def.PreviewCacheSize
	}
	return nil
}

// viewports beyond this are certainly a typo
const maxView = 8192

func clampView(v *int, def int) {
	if *v <= 0 || *v > maxView {
		*v = def
	}
}

// RememberOpenDir records the directory of the last opened file.
func (c *Config) RememberOpenDir(path string) {
	if path != "" {
		c.LastOpenDir = filepath.Dir(path)
	}
}

// RememberSaveDir records the directory of the last saved file.
func (c *Config) RememberSaveDir(path string) {
	if path != "" {
		c.LastSaveDir = filepath.Dir(path)
	}
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
