package system

import (
	"image"
	"testing"
)

func TestFrameWorkersAtLeastOne(t *testing.T) {
	if got := FrameWorkers(); got < 1 {
		t.Errorf("FrameWorkers() = %d, want >= 1", got)
	}
}

func TestSceneWorkersBounded(t *testing.T) {
	got := SceneWorkers()
	if got < 1 || got > 4 {
		t.Errorf("SceneWorkers() = %d, want 1..4", got)
	}
}

func TestImagePoolReuse(t *testing.T) {
	rect := image.Rect(0, 0, 64, 64)

	img := GetImage(rect)
	if img.Bounds() != rect {
		t.Fatalf("pool returned wrong bounds %v", img.Bounds())
	}
	img.Pix[0] = 0xFF
	PutImage(img)

	// A second Get for the same bounds must be usable regardless of
	// whether the pool recycled the buffer.
	again := GetImage(rect)
	if again.Bounds() != rect {
		t.Errorf("recycled buffer has wrong bounds %v", again.Bounds())
	}
	PutImage(again)

	// Different bounds never share buffers.
	other := GetImage(image.Rect(0, 0, 32, 32))
	if other.Bounds().Dx() != 32 {
		t.Errorf("pool mixed buffer sizes: %v", other.Bounds())
	}
	PutImage(other)

	PutImage(nil) // must not panic
}
