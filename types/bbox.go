package types

import "math"

// An axis-aligned bounding box stored as its [min, max] corners.
type BBox [2]Vec3

// Create an empty bbox that any call to Extend will replace.
func EmptyBBox() BBox {
	inf := float32(math.Inf(1))
	return BBox{
		Vec3{inf, inf, inf},
		Vec3{-inf, -inf, -inf},
	}
}

// Returns true if the bbox contains no points.
func (b BBox) Empty() bool {
	return b[0][0] > b[1][0] || b[0][1] > b[1][1] || b[0][2] > b[1][2]
}

// Grow bbox so that it includes point p.
func (b BBox) Extend(p Vec3) BBox {
	return BBox{MinVec3(b[0], p), MaxVec3(b[1], p)}
}

// Get the bbox center.
func (b BBox) Center() Vec3 {
	if b.Empty() {
		return Vec3{}
	}
	return b[0].Add(b[1]).Mul(0.5)
}

// Get the bbox extent along each axis.
func (b BBox) Span() Vec3 {
	if b.Empty() {
		return Vec3{}
	}
	return b[1].Sub(b[0])
}

// Create a cube centered at c whose sides have length side.
func CubeBBox(c Vec3, side float32) BBox {
	h := Vec3{side * 0.5, side * 0.5, side * 0.5}
	return BBox{c.Sub(h), c.Add(h)}
}
