package system

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// frameBytesEstimate is a rough per-frame memory cost used to cap the
// worker pool: one RGBA buffer for a 1080x1920 frame plus PNG encoder
// scratch space.
const frameBytesEstimate = 16 << 20

// FrameWorkers returns the in-flight frame cap for one scene. Frames are
// pure CPU work, so we start from the physical core count and shrink the
// pool if available memory cannot hold that many frame buffers at once.
func FrameWorkers() int {
	workers, err := cpu.Counts(false)
	if err != nil || workers < 1 {
		workers = runtime.NumCPU()
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		byMemory := int(vm.Available / frameBytesEstimate)
		if byMemory >= 1 && byMemory < workers {
			workers = byMemory
		}
	}

	if workers < 1 {
		workers = 1
	}
	return workers
}

// SceneWorkers bounds how many scenes assemble concurrently. Each scene
// spawns its own ffmpeg process, so this stays well below the core count.
func SceneWorkers() int {
	workers := FrameWorkers() / 2
	if workers < 1 {
		workers = 1
	}
	if workers > 4 {
		workers = 4
	}
	return workers
}
