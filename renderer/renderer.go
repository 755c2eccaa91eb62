package renderer

import "github.com/achilleasa/pathview/scene"

// The Renderer interface is implemented by all frame producers that can be
// driven by the viewer. Calls are made from a single goroutine; Render
// blocks until the frame is complete.
type Renderer interface {
	// Update the camera pose used for subsequent frames.
	SetCamera(scene.Camera)

	// Update the per-frame render settings.
	SetSettings(Settings)

	// Resize the output frame. Zero dimensions are allowed and result in
	// empty frames.
	Resize(frameW, frameH int) error

	// Render the next frame into the renderer's internal buffer.
	Render() error

	// Copy the last rendered frame into dst. Pixels are packed RGBA8 values
	// laid out bottom row first.
	DownloadPixels(dst []uint32)

	// Add a cube to the scene and rebuild the acceleration structure.
	RebuildAcceleration()

	// Add a light to the scene.
	AddLight()

	// Get render statistics.
	Stats() FrameStats

	// Shutdown renderer.
	Close()
}
