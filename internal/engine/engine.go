// Package engine coordinates a full story render: every scene's frame
// sequence, caption track and audio assembled into clips, then the
// clips concatenated into the final video.
package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/scene2video/internal/analyzer"
	"github.com/ivlev/scene2video/internal/assembly"
	"github.com/ivlev/scene2video/internal/captions"
	"github.com/ivlev/scene2video/internal/config"
	"github.com/ivlev/scene2video/internal/effects"
	"github.com/ivlev/scene2video/internal/renderer"
	"github.com/ivlev/scene2video/internal/source"
	"github.com/ivlev/scene2video/internal/storyboard"
	"github.com/ivlev/scene2video/internal/subtitle"
	"github.com/ivlev/scene2video/internal/system"
)

// Project renders one storyboard into one output video.
type Project struct {
	cfg       *config.Config
	board     *storyboard.Storyboard
	boardDir  string
	log       zerolog.Logger
	renderer  *renderer.Renderer
	assembler *assembly.Assembler
	picker    *analyzer.Picker
	runDir    string
}

func NewProject(cfg *config.Config, board *storyboard.Storyboard, boardDir string, log zerolog.Logger) *Project {
	encoder := cfg.VideoEncoder
	if encoder == "" {
		encoder = system.GetBestH264Encoder()
	}

	return &Project{
		cfg:       cfg,
		board:     board,
		boardDir:  boardDir,
		log:       log.With().Str("component", "engine").Logger(),
		renderer:  renderer.New(log),
		assembler: assembly.New(log, encoder, cfg.Quality, cfg.EncodeTimeout()),
		picker:    analyzer.NewPicker(),
	}
}

// Run renders every scene and produces the final video at output.
// Scenes render concurrently; a scene that fails is retried once in
// isolation before the run is declared failed, so a transient encoder
// hiccup does not force regenerating the whole story.
func (p *Project) Run(ctx context.Context, output string) error {
	start := time.Now()

	runDir := filepath.Join(os.TempDir(), "scene2video_"+uuid.NewString())
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return err
	}
	defer os.RemoveAll(runDir)
	p.runDir = runDir

	width, height, fps := p.dimensions()
	p.log.Info().
		Int("scenes", len(p.board.Scenes)).
		Str("resolution", fmt.Sprintf("%dx%d@%d", width, height, fps)).
		Msg("starting story render")

	clips := make([]string, len(p.board.Scenes))

	sceneWorkers := p.cfg.SceneWorkers
	if sceneWorkers <= 0 {
		sceneWorkers = system.SceneWorkers()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sceneWorkers)

	failed := make([]error, len(p.board.Scenes))
	for i := range p.board.Scenes {
		g.Go(func() error {
			clip, err := p.renderScene(gctx, i)
			if err != nil {
				// Record but do not cancel siblings: each scene's
				// failure is independent and retried below.
				failed[i] = err
				return nil
			}
			clips[i] = clip
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, err := range failed {
		if err == nil {
			continue
		}
		p.log.Warn().Int("scene", i+1).Err(err).Msg("scene failed, retrying in isolation")
		clip, retryErr := p.renderScene(ctx, i)
		if retryErr != nil {
			return fmt.Errorf("scene %d failed after retry: %w", i+1, retryErr)
		}
		clips[i] = clip
	}

	if err := p.finalize(ctx, clips, output); err != nil {
		return err
	}

	if p.cfg.ShowStats {
		p.log.Info().
			Dur("total", time.Since(start)).
			Int("scenes", len(p.board.Scenes)).
			Str("output", output).
			Msg("performance report")
	}
	return nil
}

// finalize concatenates clips and applies the optional watermark.
func (p *Project) finalize(ctx context.Context, clips []string, output string) error {
	target := output
	if p.board.Watermark != nil {
		target = filepath.Join(p.runDir, "story_plain.mp4")
	}

	if err := p.assembler.ConcatenateClips(ctx, clips, target, p.runDir); err != nil {
		return err
	}

	if p.board.Watermark != nil {
		return p.assembler.ApplyWatermark(ctx, target, *p.board.Watermark, output, p.runDir)
	}
	return nil
}

// renderScene produces one assembled clip for scene index i.
func (p *Project) renderScene(ctx context.Context, i int) (string, error) {
	sc := &p.board.Scenes[i]
	width, height, fps := p.dimensions()

	sceneDir := filepath.Join(p.runDir, fmt.Sprintf("scene_%03d", i))
	framesDir := filepath.Join(sceneDir, "frames")
	if err := os.MkdirAll(framesDir, 0755); err != nil {
		return "", err
	}

	img, err := source.Load(p.resolvePath(sc.Image))
	if err != nil {
		return "", fmt.Errorf("scene %d: %w", i+1, err)
	}

	words, err := sc.ResolveWords(p.boardDir)
	if err != nil {
		if !sc.CaptionsOptional {
			return "", fmt.Errorf("scene %d: %w", i+1, err)
		}
		p.log.Warn().Int("scene", i+1).Err(err).Msg("caption track unavailable, degrading to no captions")
		words = nil
	}

	audio := sc.Audio
	if audio != nil {
		resolved := *audio
		resolved.FilePath = p.resolvePath(audio.FilePath)
		audio = &resolved
	}

	duration := sc.EffectiveDuration(p.cfg.TailPadding)
	if duration <= 0 && len(words) > 0 {
		// The track came from a words file; derive the duration the
		// same way an inline track would.
		duration = words[len(words)-1].End + p.cfg.TailPadding
	}
	if duration <= 0 && audio != nil && audio.FilePath != "" {
		d, err := system.GetAudioDuration(audio.FilePath)
		if err != nil {
			return "", fmt.Errorf("scene %d: derive duration from audio: %w", i+1, err)
		}
		duration = d + p.cfg.TailPadding
	}
	if duration <= 0 {
		return "", fmt.Errorf("scene %d: no usable duration", i+1)
	}

	params := effects.DefaultParams()
	params.PanRange = p.cfg.PanRange

	if _, err := p.renderer.RenderScene(ctx, img, renderer.Options{
		Width:    width,
		Height:   height,
		FPS:      fps,
		Duration: duration,
		Effect:   p.resolveEffect(sc, img),
		Params:   params,
		Oversize: p.cfg.CanvasOversize,
		OutDir:   framesDir,
		Workers:  p.cfg.FrameWorkers,
	}); err != nil {
		return "", fmt.Errorf("scene %d: %w", i+1, err)
	}

	subtitlePath, err := p.writeCaptions(sc, words, duration, sceneDir, width, height)
	if err != nil {
		return "", fmt.Errorf("scene %d: %w", i+1, err)
	}

	clip := filepath.Join(sceneDir, "clip.mp4")
	in := assembly.SceneInput{
		FramesDir:    framesDir,
		FPS:          fps,
		SubtitlePath: subtitlePath,
		Audio:        audio,
		Output:       clip,
		WorkDir:      sceneDir,
	}

	if err := p.assembler.AssembleScene(ctx, in); err != nil {
		var stageErr *assembly.StageError
		if errors.As(err, &stageErr) && stageErr.Stage == assembly.StageCaptionBurn && sc.CaptionsOptional {
			p.log.Warn().Int("scene", i+1).Err(err).Msg("caption burn failed, reassembling without captions")
			in.SubtitlePath = ""
			err = p.assembler.AssembleScene(ctx, in)
		}
		if err != nil {
			return "", fmt.Errorf("scene %d: %w", i+1, err)
		}
	}
	return clip, nil
}

// writeCaptions renders the scene's subtitle document to disk, if any.
// Word tracks get word-level highlighting; scenes with narration text
// but no alignment fall back to a single whole-line caption spanning
// duration, the scene length renderScene resolved (which may have been
// derived from an audio track rather than the storyboard).
func (p *Project) writeCaptions(sc *storyboard.Scene, words []captions.WordTimestamp, duration float64, sceneDir string, width, height int) (string, error) {
	if p.board.Captions == nil {
		return "", nil
	}

	gen := subtitle.NewGenerator(width, height)
	style := *p.board.Captions

	var doc string
	switch {
	case len(words) > 0:
		doc = gen.WordTrack(words, style)
	case sc.NarrationText != "":
		doc = gen.SceneLine(sc.NarrationText, duration, style)
	}
	if doc == "" {
		return "", nil
	}

	path := filepath.Join(sceneDir, "captions.ass")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// resolveEffect handles the auto and unknown-identifier cases. An
// unknown effect is substituted with none, loudly.
func (p *Project) resolveEffect(sc *storyboard.Scene, img image.Image) effects.Effect {
	switch sc.Effect {
	case "":
		return effects.None
	case effects.AutoName:
		e := p.picker.Pick(img)
		p.log.Debug().Int("scene", sc.ID).Str("effect", e.String()).Msg("auto-selected effect")
		return e
	}

	e, err := effects.ParseEffect(sc.Effect)
	if err != nil {
		p.log.Warn().Int("scene", sc.ID).Str("effect", sc.Effect).Msg("unsupported effect, falling back to none")
	}
	return e
}

func (p *Project) dimensions() (int, int, int) {
	width, height, fps := p.board.Width, p.board.Height, p.board.FPS
	if width <= 0 {
		width = p.cfg.Width
	}
	if height <= 0 {
		height = p.cfg.Height
	}
	if fps <= 0 {
		fps = p.cfg.FPS
	}
	return width, height, fps
}

// resolvePath makes a storyboard-relative path absolute.
func (p *Project) resolvePath(path string) string {
	if filepath.IsAbs(path) || p.boardDir == "" {
		return path
	}
	return filepath.Join(p.boardDir, path)
}
