package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/scene2video/internal/renderer"
)

// Config holds the engine settings that are not part of a storyboard:
// encoder selection, parallelism bounds and the motion constants.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`

	VideoEncoder string `yaml:"video_encoder"` // empty = auto-detect
	Quality      int    `yaml:"quality"`       // 0 = encoder default

	// FrameWorkers caps in-flight frames per scene; SceneWorkers caps
	// concurrently assembling scenes. Zero means derive from hardware.
	FrameWorkers int `yaml:"frame_workers"`
	SceneWorkers int `yaml:"scene_workers"`

	// CanvasOversize and PanRange are the motion headroom constants.
	// Their "correct" values are a product decision, not a mathematical
	// one, so they live in config rather than code.
	CanvasOversize float64 `yaml:"canvas_oversize"`
	PanRange       float64 `yaml:"pan_range"`

	// TailPadding extends word-track-derived scene durations past the
	// last word, in seconds.
	TailPadding float64 `yaml:"tail_padding"`

	// EncodeTimeoutSec bounds each external encode invocation.
	EncodeTimeoutSec int `yaml:"encode_timeout_sec"`

	ShowStats bool `yaml:"show_stats"`
}

// EncodeTimeout returns the per-invocation encode bound.
func (c *Config) EncodeTimeout() time.Duration {
	return time.Duration(c.EncodeTimeoutSec) * time.Second
}

func Default() *Config {
	return &Config{
		Width:            1080,
		Height:           1920,
		FPS:              30,
		Quality:          23,
		CanvasOversize:   renderer.DefaultOversize,
		PanRange:         0.04,
		TailPadding:      0.5,
		EncodeTimeoutSec: 600,
	}
}

// Load reads a YAML config over the defaults. A missing file is not an
// error: the defaults stand.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
