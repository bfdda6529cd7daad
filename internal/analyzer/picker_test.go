package analyzer

import (
	"image"
	"image/color"
	"testing"

	"github.com/ivlev/scene2video/internal/effects"
)

func flatImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// checker fills a horizontal band of the image with a high-contrast
// checkerboard, leaving the rest flat.
func checker(w, h int, fromX, toX int) *image.RGBA {
	img := flatImage(w, h, color.RGBA{40, 40, 40, 255})
	for y := 0; y < h; y++ {
		for x := fromX; x < toX; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

func TestPickFlatImageDrifts(t *testing.T) {
	p := NewPicker()
	if got := p.Pick(flatImage(400, 300, color.RGBA{10, 20, 30, 255})); got != effects.Floating {
		t.Errorf("flat image should float, got %s", got)
	}
}

func TestPickPansTowardDetail(t *testing.T) {
	p := NewPicker()

	if got := p.Pick(checker(400, 300, 0, 100)); got != effects.PanLeft {
		t.Errorf("left-heavy detail should pan left, got %s", got)
	}
	if got := p.Pick(checker(400, 300, 300, 400)); got != effects.PanRight {
		t.Errorf("right-heavy detail should pan right, got %s", got)
	}
}

func TestPickZoomsIntoCenteredDetail(t *testing.T) {
	p := NewPicker()
	if got := p.Pick(checker(400, 300, 150, 250)); got != effects.ZoomIn {
		t.Errorf("centered detail should zoom in, got %s", got)
	}
}

func TestPickTinyImage(t *testing.T) {
	p := NewPicker()
	// Too small to convolve after subsampling; must not panic.
	if got := p.Pick(flatImage(6, 6, color.White)); got != effects.Floating {
		t.Errorf("degenerate image should fall back to floating, got %s", got)
	}
}
