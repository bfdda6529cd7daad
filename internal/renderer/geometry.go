package renderer

import (
	"fmt"
	"image"
	"math"

	"github.com/ivlev/scene2video/internal/effects"
)

// GeometryError reports a frame whose extraction rectangle could not be
// resolved within the working canvas. It carries the full computed state
// so zoom/pan bugs can be root-caused from the error alone.
type GeometryError struct {
	FrameIndex int
	Zoom       float64
	PanX, PanY float64
	ExtractW   int
	ExtractH   int
	CanvasW    int
	CanvasH    int
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("invalid geometry at frame %d: zoom=%.4f pan=(%.2f,%.2f) extract=%dx%d canvas=%dx%d",
		e.FrameIndex, e.Zoom, e.PanX, e.PanY, e.ExtractW, e.ExtractH, e.CanvasW, e.CanvasH)
}

// ResolveRect converts a frame transform into a safe extraction rectangle
// over the working canvas. targetW/targetH are the output frame
// dimensions, canvasW/canvasH the working canvas dimensions. The returned
// rectangle never exceeds the canvas bounds.
func ResolveRect(tr effects.FrameTransform, targetW, targetH, canvasW, canvasH, frameIndex int) (image.Rectangle, error) {
	zoom := tr.Zoom
	if zoom < 1.0 {
		zoom = 1.0
	}

	extractW := clampInt(int(math.Round(float64(targetW)/zoom)), 1, canvasW)
	extractH := clampInt(int(math.Round(float64(targetH)/zoom)), 1, canvasH)

	// Pan cannot push the rectangle outside the canvas.
	maxPanX := float64(canvasW-extractW) / 2.0
	maxPanY := float64(canvasH-extractH) / 2.0
	panX := clampFloat(tr.PanX, -maxPanX, maxPanX)
	panY := clampFloat(tr.PanY, -maxPanY, maxPanY)

	centerX := float64(canvasW-extractW) / 2.0
	centerY := float64(canvasH-extractH) / 2.0

	left := clampInt(int(math.Round(centerX+panX)), 0, canvasW-1)
	top := clampInt(int(math.Round(centerY+panY)), 0, canvasH-1)

	if left+extractW > canvasW {
		extractW = canvasW - left
	}
	if top+extractH > canvasH {
		extractH = canvasH - top
	}

	// Unreachable given the clamp order above, kept as a defensive
	// invariant: better a typed failure than a silently corrupt frame.
	if extractW <= 0 || extractH <= 0 {
		return image.Rectangle{}, &GeometryError{
			FrameIndex: frameIndex,
			Zoom:       tr.Zoom,
			PanX:       tr.PanX,
			PanY:       tr.PanY,
			ExtractW:   extractW,
			ExtractH:   extractH,
			CanvasW:    canvasW,
			CanvasH:    canvasH,
		}
	}

	return image.Rect(left, top, left+extractW, top+extractH), nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
