// Package analyzer picks a motion effect for a scene from cheap image
// statistics, for storyboards that say `effect: auto` instead of
// choosing one per scene.
package analyzer

import (
	"image"
	"image/color"
	"math"

	"github.com/ivlev/scene2video/internal/effects"
)

// Picker selects an effect from the distribution of image detail:
// pan toward off-center detail, zoom into centered detail, drift over
// flat imagery.
type Picker struct {
	// EdgeThreshold is the Sobel gradient magnitude below which a pixel
	// counts as flat.
	EdgeThreshold float64
	// Stride subsamples the image; detail statistics do not need every
	// pixel of a 4K still.
	Stride int
}

func NewPicker() *Picker {
	return &Picker{
		EdgeThreshold: 30.0,
		Stride:        4,
	}
}

// Pick analyzes one scene image and returns a concrete effect.
func (p *Picker) Pick(img image.Image) effects.Effect {
	gray := toGrayscale(img, p.Stride)
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 3 || h < 3 {
		return effects.Floating
	}

	var total, sumX float64
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if m := sobelMagnitude(gray, x, y); m > p.EdgeThreshold {
				total += m
				sumX += m * float64(x)
			}
		}
	}

	// Detail density below ~2% of a fully-textured image: nothing to
	// steer toward, a gentle drift reads best.
	area := float64((w - 2) * (h - 2))
	if total/area < 0.02*255 {
		return effects.Floating
	}

	centroidX := sumX / total / float64(w-1)
	switch {
	case centroidX < 0.4:
		return effects.PanLeft
	case centroidX > 0.6:
		return effects.PanRight
	default:
		return effects.ZoomIn
	}
}

func toGrayscale(img image.Image, stride int) *image.Gray {
	if stride < 1 {
		stride = 1
	}
	bounds := img.Bounds()
	w := bounds.Dx() / stride
	h := bounds.Dy() / stride
	gray := image.NewGray(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := img.At(bounds.Min.X+x*stride, bounds.Min.Y+y*stride)
			gray.Set(x, y, color.GrayModel.Convert(src))
		}
	}
	return gray
}

func sobelMagnitude(gray *image.Gray, x, y int) float64 {
	gx := [3][3]int{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	gy := [3][3]int{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}

	var sumX, sumY float64
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			pixel := float64(gray.GrayAt(x+kx, y+ky).Y)
			sumX += pixel * float64(gx[ky+1][kx+1])
			sumY += pixel * float64(gy[ky+1][kx+1])
		}
	}
	return math.Sqrt(sumX*sumX + sumY*sumY)
}
