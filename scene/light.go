package scene

import "github.com/achilleasa/pathview/types"

// A parallelogram area light.
type QuadLight struct {
	Origin types.Vec3
	Edge1  types.Vec3
	Edge2  types.Vec3
	Power  types.Vec3
	Color  types.Vec3
}

// Get the light center.
func (l QuadLight) Center() types.Vec3 {
	return l.Origin.Add(l.Edge1.Mul(0.5)).Add(l.Edge2.Mul(0.5))
}

// Get the light surface area.
func (l QuadLight) Area() float32 {
	return l.Edge1.Cross(l.Edge2).Len()
}

// Return a copy of the light moved by delta.
func (l QuadLight) Translate(delta types.Vec3) QuadLight {
	l.Origin = l.Origin.Add(delta)
	return l
}
