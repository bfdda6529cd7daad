package effects

import (
	"fmt"
	"math"
)

// Effect identifies one of the built-in camera motion effects.
type Effect int

const (
	None Effect = iota
	Floating
	ZoomIn
	ZoomOut
	PanLeft
	PanRight
	ZoomPan
	ZoomOutPan
)

// AutoName is not a real effect: the analyzer resolves it to one of the
// concrete effects before rendering starts.
const AutoName = "auto"

var names = [...]string{
	None:       "none",
	Floating:   "floating",
	ZoomIn:     "zoom_in",
	ZoomOut:    "zoom_out",
	PanLeft:    "pan_left",
	PanRight:   "pan_right",
	ZoomPan:    "zoom_pan",
	ZoomOutPan: "zoom_out_pan",
}

func (e Effect) String() string {
	if e >= None && int(e) < len(names) {
		return names[e]
	}
	return "none"
}

// ErrUnsupportedEffect is reported by ParseEffect together with the None
// fallback, so callers can log the substitution instead of hiding it.
var ErrUnsupportedEffect = fmt.Errorf("unsupported effect")

// ParseEffect maps an identifier to an Effect. Unknown identifiers fall
// back to None and report ErrUnsupportedEffect.
func ParseEffect(name string) (Effect, error) {
	for e, s := range names {
		if s == name {
			return Effect(e), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnsupportedEffect, name)
}

// FrameTransform is the camera state for a single frame. Pan offsets are
// in pixels, relative to the working canvas center.
type FrameTransform struct {
	Zoom float64
	PanX float64
	PanY float64
}

// Params holds the tunable motion constants. The defaults match the
// production values; the "right" amount of pan headroom is a product
// decision, so they stay configurable.
type Params struct {
	PanRange       float64 // fraction of the axis swept by pan effects
	FloatDrift     float64 // fraction of the axis for floating drift
	ZoomInPeak     float64 // final zoom of zoom_in
	ZoomOutStart   float64 // initial zoom of zoom_out
	PanZoom        float64 // constant zoom held during pan_left/pan_right
	FloatZoomBase  float64
	FloatZoomSwing float64
}

func DefaultParams() Params {
	return Params{
		PanRange:       0.04,
		FloatDrift:     0.015,
		ZoomInPeak:     1.1,
		ZoomOutStart:   1.08,
		PanZoom:        1.04,
		FloatZoomBase:  1.02,
		FloatZoomSwing: 0.02,
	}
}

// Transform computes the camera state for one effect at a point in time.
// progress must be in [0,1]; width and height are the output frame
// dimensions the pan offsets scale against. The function is pure:
// identical inputs produce bit-identical outputs.
func Transform(e Effect, progress float64, width, height int, p Params) FrameTransform {
	w := float64(width)
	h := float64(height)

	switch e {
	case Floating:
		phase := 2 * math.Pi * progress
		return FrameTransform{
			Zoom: p.FloatZoomBase + p.FloatZoomSwing*math.Sin(phase),
			PanX: p.FloatDrift * w * math.Sin(phase),
			PanY: p.FloatDrift * h * math.Cos(phase),
		}
	case ZoomIn:
		return FrameTransform{Zoom: 1.0 + (p.ZoomInPeak-1.0)*easeInOut(progress)}
	case ZoomOut:
		return FrameTransform{Zoom: p.ZoomOutStart - (p.ZoomOutStart-1.0)*easeInOut(progress)}
	case PanLeft:
		return FrameTransform{
			Zoom: p.PanZoom,
			PanX: p.PanRange * w * (0.5 - progress),
		}
	case PanRight:
		return FrameTransform{
			Zoom: p.PanZoom,
			PanX: p.PanRange * w * (progress - 0.5),
		}
	case ZoomPan:
		return FrameTransform{
			Zoom: 1.0 + (p.ZoomInPeak-1.0)*easeInOut(progress),
			PanX: p.PanRange * w * (progress - 0.5),
		}
	case ZoomOutPan:
		return FrameTransform{
			Zoom: p.ZoomOutStart - (p.ZoomOutStart-1.0)*easeInOut(progress),
			PanX: p.PanRange * w * (0.5 - progress),
		}
	default:
		return FrameTransform{Zoom: 1.0}
	}
}

// Progress converts a frame index into the [0,1] progress value fed to
// Transform. A single-frame scene sits at progress 0.
func Progress(frameIndex, totalFrames int) float64 {
	if totalFrames <= 1 {
		return 0
	}
	return float64(frameIndex) / float64(totalFrames-1)
}

// easeInOut is the cosine ease shared by all zoom ramps: motion starts
// and ends slowly instead of moving at constant velocity.
func easeInOut(t float64) float64 {
	return 0.5 * (1 - math.Cos(math.Pi*t))
}
