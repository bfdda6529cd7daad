package assembly

import (
	"context"
	"fmt"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

// Watermark links a finished clip back to its story page: a QR code
// rendered into a corner overlay.
type Watermark struct {
	URL    string `yaml:"url"`
	Size   int    `yaml:"size"`   // QR side in pixels, default 96
	Margin int    `yaml:"margin"` // distance from the corner, default 24
}

// ApplyWatermark overlays a QR code onto an assembled clip as its own
// stage, after captions and audio.
func (a *Assembler) ApplyWatermark(ctx context.Context, input string, wm Watermark, output, workDir string) error {
	size := wm.Size
	if size <= 0 {
		size = 96
	}
	margin := wm.Margin
	if margin <= 0 {
		margin = 24
	}

	qrPath := filepath.Join(workDir, "watermark_qr.png")
	if err := qrcode.WriteFile(wm.URL, qrcode.Medium, size, qrPath); err != nil {
		return &StageError{Stage: StageWatermark, Output: "", Err: fmt.Errorf("generate qr: %w", err)}
	}

	args := []string{
		"-i", input,
		"-i", qrPath,
		"-filter_complex", fmt.Sprintf("overlay=W-w-%d:H-h-%d", margin, margin),
		"-c:a", "copy",
		output,
	}
	return a.run(ctx, StageWatermark, args)
}
