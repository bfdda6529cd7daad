// Package storyboard defines the YAML document describing a story: an
// ordered list of scenes with their images, durations, motion effects,
// caption tracks and audio.
package storyboard

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/scene2video/internal/assembly"
	"github.com/ivlev/scene2video/internal/captions"
)

// Storyboard is a complete story description.
type Storyboard struct {
	Version string  `yaml:"version"`
	Title   string  `yaml:"title,omitempty"`
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	FPS     int     `yaml:"fps"`
	Scenes  []Scene `yaml:"scenes"`

	// Captions is the style shared by every scene; a scene without word
	// timestamps gets no caption track.
	Captions *captions.Style `yaml:"captions,omitempty"`

	Watermark *assembly.Watermark `yaml:"watermark,omitempty"`
}

// Scene is one clip of the story.
type Scene struct {
	ID       int     `yaml:"id"`
	Image    string  `yaml:"image"` // raster path or "deck.pdf#page"
	Duration float64 `yaml:"duration,omitempty"`
	Effect   string  `yaml:"effect"`

	// NarrationText is the sentence(s) spoken over the scene; it carries
	// the punctuation that alignment output usually strips.
	NarrationText string `yaml:"narration_text,omitempty"`

	// Words is the aligned caption track, either inline or in a
	// whisper-style JSON file referenced by WordsFile.
	Words     []captions.WordTimestamp `yaml:"words,omitempty"`
	WordsFile string                   `yaml:"words_file,omitempty"`

	Audio *assembly.BackgroundAudio `yaml:"audio,omitempty"`

	// CaptionsOptional lets this scene degrade to no captions when
	// caption generation fails, instead of failing the clip.
	CaptionsOptional bool `yaml:"captions_optional,omitempty"`
}

// Read loads and validates a storyboard file.
func Read(path string) (*Storyboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sb Storyboard
	if err := yaml.Unmarshal(data, &sb); err != nil {
		return nil, fmt.Errorf("parse storyboard %s: %w", path, err)
	}
	if err := sb.Validate(); err != nil {
		return nil, fmt.Errorf("storyboard %s: %w", path, err)
	}
	return &sb, nil
}

// Write saves a storyboard as YAML.
func Write(sb *Storyboard, path string) error {
	data, err := yaml.Marshal(sb)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks structural invariants before any rendering starts.
func (sb *Storyboard) Validate() error {
	if sb.Width <= 0 || sb.Height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", sb.Width, sb.Height)
	}
	if sb.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", sb.FPS)
	}
	if len(sb.Scenes) == 0 {
		return fmt.Errorf("no scenes")
	}

	for i, sc := range sb.Scenes {
		if sc.Image == "" {
			return fmt.Errorf("scene %d: no image", i+1)
		}
		if sc.Duration < 0 {
			return fmt.Errorf("scene %d: negative duration", i+1)
		}
		if sc.Duration == 0 && len(sc.Words) == 0 && sc.WordsFile == "" && sc.Audio == nil {
			return fmt.Errorf("scene %d: needs a duration, a word track or audio to derive one", i+1)
		}
		for j, w := range sc.Words {
			if w.End <= w.Start || w.Start < 0 {
				return fmt.Errorf("scene %d: word %d has invalid timing [%f,%f]", i+1, j, w.Start, w.End)
			}
		}
	}
	return nil
}

// EffectiveDuration returns the scene duration, deriving it from the
// word track when the storyboard leaves it unset: last word end plus a
// short tail so the clip does not cut on the final syllable.
func (sc *Scene) EffectiveDuration(tailPadding float64) float64 {
	if sc.Duration > 0 {
		return sc.Duration
	}
	if len(sc.Words) > 0 {
		return sc.Words[len(sc.Words)-1].End + tailPadding
	}
	return 0
}
