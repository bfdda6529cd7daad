package renderer

import (
	"fmt"
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// DefaultOversize is the working canvas scale relative to the target
// output dimensions. The extra 30% is the headroom zoom and pan effects
// move within.
const DefaultOversize = 1.3

// PrepareCanvas resamples the source image once into an oversized working
// canvas. Every frame of the scene extracts from this single buffer, so
// the expensive high-quality resample happens exactly once per scene.
func PrepareCanvas(src image.Image, targetW, targetH int, oversize float64) (*image.RGBA, error) {
	if targetW <= 0 || targetH <= 0 {
		return nil, fmt.Errorf("invalid target dimensions %dx%d", targetW, targetH)
	}
	if oversize < 1.0 {
		oversize = DefaultOversize
	}

	canvasW := int(math.Round(float64(targetW) * oversize))
	canvasH := int(math.Round(float64(targetH) * oversize))

	canvas := image.NewRGBA(image.Rect(0, 0, canvasW, canvasH))
	xdraw.CatmullRom.Scale(canvas, canvas.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return canvas, nil
}
