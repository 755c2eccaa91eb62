package scene

import (
	"fmt"

	"github.com/achilleasa/pathview/types"
)

// A loaded model. The viewer only cares about its bounding volume which is
// used for placing the initial camera and for scaling camera motion.
type Model struct {
	// Resource path the model was loaded from.
	Path string

	// Model bounds.
	Bounds types.BBox

	// Parsed element counts.
	Vertices int
	Faces    int
	Meshes   int
}

// Get the length of the bounding box diagonal. Models without any extent
// report a world scale of 1.
func (m *Model) WorldScale() float32 {
	scale := m.Bounds.Span().Len()
	if !(scale > 0) {
		return 1
	}
	return scale
}

func (m *Model) String() string {
	return fmt.Sprintf(
		"model %q: %d meshes, %d vertices, %d faces, center %v, span %v",
		m.Path, m.Meshes, m.Vertices, m.Faces, m.Bounds.Center(), m.Bounds.Span(),
	)
}
