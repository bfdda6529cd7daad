package renderer

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/scene2video/internal/effects"
	"github.com/ivlev/scene2video/internal/system"
)

// FramePattern names the emitted frames with a fixed-width zero-padded
// index. It doubles as the ffmpeg image2 input pattern, so the encoder
// can consume the directory without globbing tricks.
const FramePattern = "frame_%06d.png"

// Options describes one scene render.
type Options struct {
	Width    int
	Height   int
	FPS      int
	Duration float64
	Effect   effects.Effect
	Params   effects.Params
	Oversize float64
	OutDir   string
	// Workers caps concurrent in-flight frames. Each frame holds a full
	// RGBA buffer, so this bound is what keeps memory flat for long scenes.
	Workers int
}

// TotalFrames derives the exact frame count for a scene.
func TotalFrames(duration float64, fps int) int {
	n := int(math.Round(duration * float64(fps)))
	if n < 1 {
		return 1
	}
	return n
}

// Renderer turns a source image into an ordered frame sequence.
type Renderer struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Renderer {
	return &Renderer{log: log.With().Str("component", "renderer").Logger()}
}

// RenderScene produces every frame of one scene into opts.OutDir and
// returns the frame count. Frames are computed in parallel; ordering is
// guaranteed by construction since each worker writes only its own index.
// The first failing frame cancels the remaining ones: a half-rendered
// sequence is unusable for encoding, so there is no point finishing it.
func (r *Renderer) RenderScene(ctx context.Context, src image.Image, opts Options) (int, error) {
	canvas, err := PrepareCanvas(src, opts.Width, opts.Height, opts.Oversize)
	if err != nil {
		return 0, fmt.Errorf("prepare canvas: %w", err)
	}
	canvasW := canvas.Bounds().Dx()
	canvasH := canvas.Bounds().Dy()

	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return 0, err
	}

	total := TotalFrames(opts.Duration, opts.FPS)
	workers := opts.Workers
	if workers <= 0 {
		workers = system.FrameWorkers()
	}

	r.log.Debug().
		Int("frames", total).
		Int("workers", workers).
		Str("effect", opts.Effect.String()).
		Msg("rendering scene")

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < total; i++ {
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			tr := effects.Transform(opts.Effect, effects.Progress(i, total), opts.Width, opts.Height, opts.Params)
			rect, err := ResolveRect(tr, opts.Width, opts.Height, canvasW, canvasH, i)
			if err != nil {
				return err
			}

			frame := system.GetImage(image.Rect(0, 0, opts.Width, opts.Height))
			defer system.PutImage(frame)

			// The canvas is read-only past this point; SubImage shares
			// its pixels without copying.
			region := canvas.SubImage(rect)
			xdraw.ApproxBiLinear.Scale(frame, frame.Bounds(), region, rect, xdraw.Src, nil)

			if err := writeFrame(opts.OutDir, i, frame); err != nil {
				return fmt.Errorf("frame %d (rect %v): %w", i, rect, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return total, nil
}

func writeFrame(dir string, index int, frame image.Image) error {
	path := filepath.Join(dir, fmt.Sprintf(FramePattern, index))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, frame); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
