package renderer

import (
	"testing"

	"github.com/ivlev/scene2video/internal/effects"
)

func TestResolveRectStaysInBounds(t *testing.T) {
	const (
		targetW, targetH = 1080, 1920
		canvasW, canvasH = 1404, 2496 // 130% oversize
	)

	transforms := []effects.FrameTransform{
		{Zoom: 1.0},
		{Zoom: 1.1},
		{Zoom: 1.04, PanX: 43.2},
		{Zoom: 1.04, PanX: -43.2},
		{Zoom: 1.02, PanX: 16.2, PanY: -28.8},
		// Deliberately hostile inputs: pan far past the headroom, zoom
		// below the floor.
		{Zoom: 0.5, PanX: 99999, PanY: -99999},
		{Zoom: 50, PanX: -5000},
	}

	for _, tr := range transforms {
		rect, err := ResolveRect(tr, targetW, targetH, canvasW, canvasH, 0)
		if err != nil {
			t.Fatalf("transform %+v: unexpected error %v", tr, err)
		}
		if rect.Min.X < 0 || rect.Min.Y < 0 {
			t.Errorf("transform %+v: rect origin %v outside canvas", tr, rect.Min)
		}
		if rect.Max.X > canvasW || rect.Max.Y > canvasH {
			t.Errorf("transform %+v: rect %v exceeds canvas %dx%d", tr, rect, canvasW, canvasH)
		}
		if rect.Dx() <= 0 || rect.Dy() <= 0 {
			t.Errorf("transform %+v: degenerate rect %v", tr, rect)
		}
	}
}

func TestResolveRectCenteredWithoutPan(t *testing.T) {
	rect, err := ResolveRect(effects.FrameTransform{Zoom: 1.0}, 1000, 500, 1300, 650, 0)
	if err != nil {
		t.Fatal(err)
	}
	if rect.Dx() != 1000 || rect.Dy() != 500 {
		t.Errorf("zoom 1.0 should extract full target size, got %dx%d", rect.Dx(), rect.Dy())
	}
	if rect.Min.X != 150 || rect.Min.Y != 75 {
		t.Errorf("extraction should be centered, got origin %v", rect.Min)
	}
}

func TestResolveRectZoomShrinksExtraction(t *testing.T) {
	rect, err := ResolveRect(effects.FrameTransform{Zoom: 2.0}, 1000, 500, 1300, 650, 0)
	if err != nil {
		t.Fatal(err)
	}
	if rect.Dx() != 500 || rect.Dy() != 250 {
		t.Errorf("zoom 2.0 should halve the extraction, got %dx%d", rect.Dx(), rect.Dy())
	}
}

func TestResolveRectClampsPanToHeadroom(t *testing.T) {
	// 150px of headroom per side; a 1000px pan must clamp to the edge.
	rect, err := ResolveRect(effects.FrameTransform{Zoom: 1.0, PanX: 1000}, 1000, 500, 1300, 650, 0)
	if err != nil {
		t.Fatal(err)
	}
	if rect.Min.X != 300 {
		t.Errorf("pan should clamp to right edge (left=300), got left=%d", rect.Min.X)
	}
	if rect.Max.X != 1300 {
		t.Errorf("clamped rect should touch canvas edge, got %d", rect.Max.X)
	}
}

func TestGeometryErrorMessage(t *testing.T) {
	err := &GeometryError{FrameIndex: 42, Zoom: 1.5, PanX: 10, PanY: -5, ExtractW: 0, ExtractH: 100, CanvasW: 1300, CanvasH: 650}
	msg := err.Error()
	for _, want := range []string{"frame 42", "zoom=1.5", "1300x650"} {
		if !contains(msg, want) {
			t.Errorf("error message %q should mention %q", msg, want)
		}
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
