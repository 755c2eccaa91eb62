package renderer

import (
	"fmt"

	"github.com/achilleasa/pathview/scene"
)

// Settings that can be toggled interactively. Settings are pushed to the
// renderer whenever they change.
type Settings struct {
	// Number of samples per pixel for each rendered frame. Always >= 1.
	SamplesPerPixel int

	// Apply a denoising filter to the output.
	Denoise bool

	// Average successive frames rendered from the same camera pose.
	Accumulate bool
}

// Get the default render settings.
func DefaultSettings() Settings {
	return Settings{
		SamplesPerPixel: 1,
		Denoise:         true,
		Accumulate:      true,
	}
}

func (s Settings) String() string {
	return fmt.Sprintf("spp: %d, denoise: %t, accumulate: %t", s.SamplesPerPixel, s.Denoise, s.Accumulate)
}

// Options for the preview renderer.
type Options struct {
	// Number of workers used for rendering frame rows.
	Workers int

	// Splits frame rows between workers. Defaults to PerfectScheduler.
	Scheduler BlockScheduler

	// Exposure for tonemapping.
	Exposure float32

	// Vertical field of view in degrees.
	FOV float32

	// The initial scene light.
	Light scene.QuadLight

	// Initial settings.
	Settings Settings
}
