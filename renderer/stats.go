package renderer

import "time"

type WorkerStat struct {
	// The worker id.
	Id string

	// The block height and the percentage of total frame area it represents.
	BlockH       uint32
	FramePercent float32

	// Render time for assigned block
	RenderTime time.Duration
}

type FrameStats struct {
	// Individual worker stats for the last frame.
	Workers []WorkerStat

	// Total render time for the last frame.
	RenderTime time.Duration

	// Number of rendered frames and the number of frames accumulated from
	// the current camera pose.
	Frames            uint64
	AccumulatedFrames uint32

	// Scene contents.
	Boxes  int
	Lights int
}
