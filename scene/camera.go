package scene

import (
	"fmt"

	"github.com/achilleasa/pathview/types"
)

const (
	// The closest the camera may get to its point of interest, expressed as
	// a fraction of the camera motion speed.
	minPoiDistanceScale float32 = 0.1

	// Sine of the smallest angle allowed between the view direction and
	// the up vector.
	parallelEpsilon float32 = 1e-4
)

// A camera pose snapshot as consumed by renderers.
type Camera struct {
	From types.Vec3
	At   types.Vec3
	Up   types.Vec3
}

func (c Camera) String() string {
	return fmt.Sprintf("from: %v at: %v up: %v", c.From, c.At, c.Up)
}

// An orthonormal camera basis. Forward points from the camera position
// towards the point of interest.
type Basis struct {
	Forward types.Vec3
	Right   types.Vec3
	Up      types.Vec3
}

// The CameraFrame tracks an interactive camera pose. All mutating methods
// set the Modified flag; consumers must clear it after pushing the pose to
// a renderer.
type CameraFrame struct {
	position    types.Vec3
	up          types.Vec3
	basis       Basis
	poiDistance float32
	motionSpeed float32

	// Set by every mutation.
	Modified bool
}

// Create a new camera frame for the given pose. The motion speed controls the
// magnitude of all interactive camera movements and is usually derived from
// the world scale.
func NewCameraFrame(cam Camera, motionSpeed float32) (*CameraFrame, error) {
	if !(motionSpeed > 0) {
		return nil, ErrInvalidMotionSpeed
	}

	f := &CameraFrame{motionSpeed: motionSpeed}
	if err := f.SetOrientation(cam.From, cam.At, cam.Up); err != nil {
		return nil, err
	}
	return f, nil
}

// Replace the camera pose. If from and at are closer than the minimum
// point of interest distance, the target is kept and the position is pushed
// back along the view direction.
//
// Returns ErrInvalidCamera and leaves the frame untouched if from == at or
// up is parallel to the view direction.
func (f *CameraFrame) SetOrientation(from, at, up types.Vec3) error {
	basis, dist, err := makeBasis(from, at, up)
	if err != nil {
		return err
	}

	if minDist := f.minPoiDistance(); dist < minDist {
		dist = minDist
		from = at.Sub(basis.Forward.Mul(dist))
	}

	f.position = from
	f.up = up
	f.basis = basis
	f.poiDistance = dist
	f.Modified = true
	return nil
}

// Get the point the camera orbits and dollies around.
func (f *CameraFrame) PointOfInterest() types.Vec3 {
	return f.position.Add(f.basis.Forward.Mul(f.poiDistance))
}

// Move camera along the axis perpendicular to the up vector and the view
// direction. A positive sign moves the camera to the left. Calls are ignored
// if the lateral axis cannot be computed.
func (f *CameraFrame) MoveLateral(sign, step float32) {
	lateral := f.up.Cross(f.PointOfInterest().Sub(f.position))
	if lateral.IsZero() {
		return
	}

	f.position = f.position.Add(lateral.Normalize().Mul(sign * step))
	f.Modified = true
}

// Move camera along its view direction keeping the point of interest fixed.
// A positive sign moves the camera closer to the point of interest. The
// distance is clamped to 0.1 * motionSpeed.
func (f *CameraFrame) Dolly(sign, step float32) {
	poi := f.PointOfInterest()

	f.poiDistance -= sign * step
	if minDist := f.minPoiDistance(); !(f.poiDistance >= minDist) {
		f.poiDistance = minDist
	}

	f.position = poi.Sub(f.basis.Forward.Mul(f.poiDistance))
	f.Modified = true
}

// Rotate the camera around its point of interest. Yaw rotates around the up
// vector and pitch around the right axis (both angles in radians). The pitch
// component is dropped if it would align the view direction with the up
// vector.
func (f *CameraFrame) Orbit(yaw, pitch float32) {
	if yaw == 0 && pitch == 0 {
		return
	}

	poi := f.PointOfInterest()
	upAxis := f.up.Normalize()
	yawQuat := types.QuatFromAxisAngle(upAxis, yaw)
	pitchQuat := types.QuatFromAxisAngle(f.basis.Right, pitch)

	dir := pitchQuat.Mul(yawQuat).Normalize().Rotate(f.basis.Forward)
	if dir.Cross(upAxis).Len() < parallelEpsilon {
		dir = yawQuat.Rotate(f.basis.Forward)
	}

	from := poi.Sub(dir.Normalize().Mul(f.poiDistance))
	basis, _, err := makeBasis(from, poi, f.up)
	if err != nil {
		return
	}

	f.position = from
	f.basis = basis
	f.Modified = true
}

// Translate the camera and its point of interest along the image plane.
func (f *CameraFrame) Pan(dx, dy float32) {
	if dx == 0 && dy == 0 {
		return
	}
	f.position = f.position.Add(f.basis.Right.Mul(dx)).Add(f.basis.Up.Mul(dy))
	f.Modified = true
}

// Get a snapshot of the current camera pose.
func (f *CameraFrame) Camera() Camera {
	return Camera{
		From: f.position,
		At:   f.PointOfInterest(),
		Up:   f.up,
	}
}

// Get the camera position.
func (f *CameraFrame) Position() types.Vec3 {
	return f.position
}

// Get the camera basis.
func (f *CameraFrame) Basis() Basis {
	return f.basis
}

// Get the distance between the camera and its point of interest.
func (f *CameraFrame) PoiDistance() float32 {
	return f.poiDistance
}

// Get the camera motion speed.
func (f *CameraFrame) MotionSpeed() float32 {
	return f.motionSpeed
}

func (f *CameraFrame) minPoiDistance() float32 {
	return minPoiDistanceScale * f.motionSpeed
}

func makeBasis(from, at, up types.Vec3) (Basis, float32, error) {
	dir := at.Sub(from)
	dist := dir.Len()
	if dir.IsZero() {
		return Basis{}, 0, fmt.Errorf("%w: camera position and target coincide", ErrInvalidCamera)
	}

	upAxis := up.Normalize()
	if upAxis.IsZero() {
		return Basis{}, 0, fmt.Errorf("%w: zero up vector", ErrInvalidCamera)
	}

	forward := dir.Mul(1.0 / dist)
	right := forward.Cross(upAxis)
	if right.Len() < parallelEpsilon {
		return Basis{}, 0, fmt.Errorf("%w: up vector is parallel to the view direction", ErrInvalidCamera)
	}
	right = right.Normalize()

	return Basis{
		Forward: forward,
		Right:   right,
		Up:      right.Cross(forward),
	}, dist, nil
}
