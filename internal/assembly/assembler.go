// Package assembly sequences rendered frames, subtitle documents and
// audio into finished clips. It is a thin orchestrator over ffmpeg: every
// stage is one external invocation, awaited with a hard timeout so a
// hung encode cannot wedge the batch pipeline.
package assembly

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ivlev/scene2video/internal/renderer"
)

// Stage names the assembly step a failure came from, so operators can
// tell a codec problem from a caption-burn problem.
type Stage string

const (
	StageEncode      Stage = "encode"
	StageCaptionBurn Stage = "caption-burn"
	StageAudioMix    Stage = "audio-mix"
	StageWatermark   Stage = "watermark"
	StageConcat      Stage = "concat"
)

// StageError wraps an external tool failure with the stage name and the
// tool's diagnostic output, verbatim.
type StageError struct {
	Stage  Stage
	Output string
	Err    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v\noutput: %s", e.Stage, e.Err, e.Output)
}

func (e *StageError) Unwrap() error { return e.Err }

// BackgroundAudio is an optional secondary audio input, looped if
// shorter than the clip and trimmed if longer. Volume is 0-100.
type BackgroundAudio struct {
	FilePath string  `yaml:"file_path"`
	Volume   float64 `yaml:"volume"`
}

// SceneInput describes one clip to assemble.
type SceneInput struct {
	FramesDir    string
	FPS          int
	SubtitlePath string           // optional ASS document to burn in
	Audio        *BackgroundAudio // optional
	Output       string
	WorkDir      string
}

// Assembler drives ffmpeg.
type Assembler struct {
	log     zerolog.Logger
	encoder string
	quality int
	timeout time.Duration
}

// DefaultTimeout bounds each ffmpeg invocation. A scene encode normally
// finishes in seconds; anything near this is a stuck process.
const DefaultTimeout = 10 * time.Minute

func New(log zerolog.Logger, encoder string, quality int, timeout time.Duration) *Assembler {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Assembler{
		log:     log.With().Str("component", "assembly").Logger(),
		encoder: encoder,
		quality: quality,
		timeout: timeout,
	}
}

// AssembleScene runs the stage sequence for one clip: frames → video,
// optional caption burn, optional audio mix. Intermediate files live in
// in.WorkDir and are the caller's to clean up with the rest of the run.
func (a *Assembler) AssembleScene(ctx context.Context, in SceneInput) error {
	current := filepath.Join(in.WorkDir, "video.mp4")

	args := encodeArgs(in.FramesDir, in.FPS, a.encoder, a.quality, current)
	if err := a.run(ctx, StageEncode, args); err != nil {
		return err
	}

	if in.SubtitlePath != "" {
		burned := filepath.Join(in.WorkDir, "video_captions.mp4")
		args := captionBurnArgs(current, in.SubtitlePath, a.encoder, a.quality, burned)
		if err := a.run(ctx, StageCaptionBurn, args); err != nil {
			return err
		}
		current = burned
	}

	if in.Audio != nil && in.Audio.FilePath != "" {
		mixed := filepath.Join(in.WorkDir, "video_audio.mp4")
		args := audioMixArgs(current, *in.Audio, mixed)
		if err := a.run(ctx, StageAudioMix, args); err != nil {
			return err
		}
		current = mixed
	}

	return os.Rename(current, in.Output)
}

// ConcatenateClips joins per-scene clips into the final story video
// without re-encoding.
func (a *Assembler) ConcatenateClips(ctx context.Context, clips []string, output, workDir string) error {
	listPath := filepath.Join(workDir, "inputs.txt")
	var b strings.Builder
	for _, c := range clips {
		abs, err := filepath.Abs(c)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "file '%s'\n", abs)
	}
	if err := os.WriteFile(listPath, []byte(b.String()), 0644); err != nil {
		return err
	}

	args := []string{
		"-f", "concat", "-safe", "0", "-i", listPath,
		"-c", "copy",
		output,
	}
	return a.run(ctx, StageConcat, args)
}

// run executes one ffmpeg stage under the assembler's timeout. On
// timeout CommandContext kills the process.
func (a *Assembler) run(ctx context.Context, stage Stage, args []string) error {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	full := append([]string{"-y", "-hide_banner"}, args...)
	a.log.Debug().Str("stage", string(stage)).Strs("args", full).Msg("running ffmpeg")

	cmd := exec.CommandContext(ctx, "ffmpeg", full...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return &StageError{Stage: stage, Output: string(out), Err: err}
	}
	return nil
}

func encodeArgs(framesDir string, fps int, encoder string, quality int, output string) []string {
	args := []string{
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", filepath.Join(framesDir, renderer.FramePattern),
		"-c:v", encoder,
		"-pix_fmt", "yuv420p",
	}
	args = append(args, qualityArgs(encoder, quality)...)
	return append(args, output)
}

func captionBurnArgs(input, subtitlePath, encoder string, quality int, output string) []string {
	args := []string{
		"-i", input,
		"-vf", fmt.Sprintf("ass=%s", escapeFilterPath(subtitlePath)),
		"-c:v", encoder,
		"-pix_fmt", "yuv420p",
	}
	args = append(args, qualityArgs(encoder, quality)...)
	return append(args, "-c:a", "copy", output)
}

func audioMixArgs(input string, audio BackgroundAudio, output string) []string {
	vol := audio.Volume / 100.0
	if vol < 0 {
		vol = 0
	}
	if vol > 1 {
		vol = 1
	}

	// Loop the track if it is shorter than the clip; -shortest trims it
	// against the video stream if it is longer.
	return []string{
		"-i", input,
		"-stream_loop", "-1", "-i", audio.FilePath,
		"-filter:a", fmt.Sprintf("volume=%.3f", vol),
		"-map", "0:v", "-map", "1:a",
		"-c:v", "copy",
		"-c:a", "aac",
		"-shortest",
		output,
	}
}

// qualityArgs adapts the quality knob to the selected encoder; hardware
// encoders do not take CRF.
func qualityArgs(encoder string, quality int) []string {
	switch encoder {
	case "h264_videotoolbox":
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

// escapeFilterPath escapes a path for use inside an ffmpeg filter
// argument, where ':' and '\' are syntax.
func escapeFilterPath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.ReplaceAll(path, ":", "\\:")
	return path
}
