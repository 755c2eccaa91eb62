package scene

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/achilleasa/pathview/types"
)

const eps = 1e-4

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) <= eps*math.Max(1, math.Abs(float64(b)))
}

func mustFrame(t *testing.T, cam Camera, speed float32) *CameraFrame {
	f, err := NewCameraFrame(cam, speed)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func assertOrthonormal(t *testing.T, index int, b Basis) {
	axes := []types.Vec3{b.Forward, b.Right, b.Up}
	for i, axis := range axes {
		if !approx(axis.Len(), 1) {
			t.Fatalf("[spec %d] expected axis %d to be unit length; got %f", index, i, axis.Len())
		}
	}
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if d := axes[i].Dot(axes[j]); math.Abs(float64(d)) > eps {
				t.Fatalf("[spec %d] expected axes %d and %d to be orthogonal; dot product was %f", index, i, j, d)
			}
		}
	}
}

func TestSetOrientationBasis(t *testing.T) {
	specs := []Camera{
		{types.XYZ(0, 1, 4), types.XYZ(0, 1, -96), types.XYZ(0, 1, 0)},
		{types.XYZ(-1293.07, 154.681, -0.7304), types.XYZ(0, 0, 0), types.XYZ(0, 1, 0)},
		{types.XYZ(1, 2, 3), types.XYZ(-3, 7, 0.5), types.XYZ(0.2, 0.9, 0.1)},
		{types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), types.XYZ(0, 0, 5)},
		{types.XYZ(0, 0, 0), types.XYZ(0, 0, 1), types.XYZ(1, 1, 0)},
	}

	for index, s := range specs {
		f := mustFrame(t, s, 1)
		assertOrthonormal(t, index, f.Basis())

		if !f.Modified {
			t.Fatalf("[spec %d] expected frame to be marked as modified", index)
		}

		expDist := s.At.Sub(s.From).Len()
		if !approx(f.PoiDistance(), expDist) {
			t.Fatalf("[spec %d] expected poi distance to be %f; got %f", index, expDist, f.PoiDistance())
		}

		if poi := f.PointOfInterest(); !poi.ApproxEqual(s.At, 1e-2) {
			t.Fatalf("[spec %d] expected point of interest to be %v; got %v", index, s.At, poi)
		}
	}
}

func TestSetOrientationErrors(t *testing.T) {
	initial := Camera{types.XYZ(0, 1, 4), types.XYZ(0, 1, -96), types.XYZ(0, 1, 0)}
	specs := []Camera{
		// from == at
		{types.XYZ(1, 1, 1), types.XYZ(1, 1, 1), types.XYZ(0, 1, 0)},
		// up parallel to view direction
		{types.XYZ(0, 0, 0), types.XYZ(0, 5, 0), types.XYZ(0, 1, 0)},
		{types.XYZ(0, 0, 0), types.XYZ(0, -5, 0), types.XYZ(0, 2, 0)},
		// zero up vector
		{types.XYZ(0, 0, 0), types.XYZ(0, 0, -1), types.XYZ(0, 0, 0)},
	}

	for index, s := range specs {
		f := mustFrame(t, initial, 10)
		f.Modified = false
		before := *f

		err := f.SetOrientation(s.From, s.At, s.Up)
		if !errors.Is(err, ErrInvalidCamera) {
			t.Fatalf("[spec %d] expected to get ErrInvalidCamera; got %v", index, err)
		}
		if *f != before {
			t.Fatalf("[spec %d] expected frame state to remain unchanged after a failed update", index)
		}
	}
}

func TestNewCameraFrameRejectsBadMotionSpeed(t *testing.T) {
	cam := Camera{types.XYZ(0, 0, 1), types.XYZ(0, 0, 0), types.XYZ(0, 1, 0)}
	for _, speed := range []float32{0, -1, float32(math.NaN())} {
		if _, err := NewCameraFrame(cam, speed); err != ErrInvalidMotionSpeed {
			t.Fatalf("expected to get ErrInvalidMotionSpeed for speed %f; got %v", speed, err)
		}
	}
}

func TestSetOrientationClampsPoiDistance(t *testing.T) {
	f := mustFrame(t, Camera{types.XYZ(0, 0, 0.01), types.XYZ(0, 0, 0), types.XYZ(0, 1, 0)}, 1)

	if !approx(f.PoiDistance(), 0.1) {
		t.Fatalf("expected poi distance to be clamped to 0.1; got %f", f.PoiDistance())
	}
	if exp := types.XYZ(0, 0, 0.1); !f.Position().ApproxEqual(exp, eps) {
		t.Fatalf("expected position to be pushed back to %v; got %v", exp, f.Position())
	}
	if poi := f.PointOfInterest(); !poi.ApproxEqual(types.XYZ(0, 0, 0), eps) {
		t.Fatalf("expected target to be preserved; got %v", poi)
	}
}

func TestMoveLateral(t *testing.T) {
	type spec struct {
		sign   float32
		expPos types.Vec3
	}
	specs := []spec{
		// left
		{1, types.XYZ(-2, 1, 4)},
		// right
		{-1, types.XYZ(2, 1, 4)},
	}

	for index, s := range specs {
		f := mustFrame(t, Camera{types.XYZ(0, 1, 4), types.XYZ(0, 1, -96), types.XYZ(0, 1, 0)}, 2)
		f.Modified = false
		poiBefore := f.PointOfInterest()

		f.MoveLateral(s.sign, f.MotionSpeed())

		if !f.Position().ApproxEqual(s.expPos, eps) {
			t.Fatalf("[spec %d] expected position to be %v; got %v", index, s.expPos, f.Position())
		}
		if !f.Modified {
			t.Fatalf("[spec %d] expected frame to be marked as modified", index)
		}
		if moved := f.PointOfInterest().Sub(poiBefore); !approx(moved.Len(), 2) {
			t.Fatalf("[spec %d] expected point of interest to move along with the camera; moved by %v", index, moved)
		}
	}
}

func TestMoveLateralDegenerateAxis(t *testing.T) {
	f := &CameraFrame{
		position:    types.XYZ(0, 0, 0),
		up:          types.XYZ(0, 1, 0),
		basis:       Basis{Forward: types.XYZ(0, 1, 0)},
		poiDistance: 1,
		motionSpeed: 1,
	}

	f.MoveLateral(1, 1)

	if f.Modified {
		t.Fatal("expected a degenerate lateral move to be a no-op")
	}
	if pos := f.Position(); pos != types.XYZ(0, 0, 0) {
		t.Fatalf("expected position to remain unchanged; got %v", pos)
	}
}

func TestDolly(t *testing.T) {
	f := mustFrame(t, Camera{types.XYZ(0, 1, 4), types.XYZ(0, 1, -96), types.XYZ(0, 1, 0)}, 10)
	poi := f.PointOfInterest()

	f.Dolly(1, 5)
	if !approx(f.PoiDistance(), 95) {
		t.Fatalf("expected moving closer to reduce poi distance to 95; got %f", f.PoiDistance())
	}
	if exp := types.XYZ(0, 1, -1); !f.Position().ApproxEqual(exp, 1e-3) {
		t.Fatalf("expected position to be %v; got %v", exp, f.Position())
	}

	f.Dolly(-1, 10)
	if !approx(f.PoiDistance(), 105) {
		t.Fatalf("expected moving farther to increase poi distance to 105; got %f", f.PoiDistance())
	}

	f.Dolly(1, 1000)
	if !approx(f.PoiDistance(), 1) {
		t.Fatalf("expected poi distance to be clamped to 1; got %f", f.PoiDistance())
	}

	if !f.PointOfInterest().ApproxEqual(poi, 1e-3) {
		t.Fatalf("expected point of interest to stay at %v; got %v", poi, f.PointOfInterest())
	}
}

func TestPoiDistanceNeverDropsBelowMinimum(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	f := mustFrame(t, Camera{types.XYZ(0, 1, 4), types.XYZ(0, 1, -96), types.XYZ(0, 1, 0)}, 3)
	minDist := 0.1 * f.MotionSpeed()

	for i := 0; i < 5000; i++ {
		sign := float32(1)
		if rng.Intn(3) == 0 {
			sign = -1
		}
		switch rng.Intn(3) {
		case 0:
			f.MoveLateral(sign, f.MotionSpeed())
		case 1:
			f.Dolly(sign, rng.Float32()*f.MotionSpeed()*10)
		case 2:
			f.Orbit(rng.Float32()-0.5, rng.Float32()-0.5)
		}

		if f.PoiDistance() < minDist {
			t.Fatalf("[iteration %d] poi distance %f dropped below the minimum %f", i, f.PoiDistance(), minDist)
		}
	}
}

func TestOrbit(t *testing.T) {
	f := mustFrame(t, Camera{types.XYZ(0, 0, 10), types.XYZ(0, 0, 0), types.XYZ(0, 1, 0)}, 1)

	f.Orbit(float32(math.Pi/2), 0)
	assertOrthonormal(t, 0, f.Basis())
	if exp := types.XYZ(10, 0, 0); !f.Position().ApproxEqual(exp, 1e-3) {
		t.Fatalf("expected a 90 degree yaw to move the camera to %v; got %v", exp, f.Position())
	}
	if !f.PointOfInterest().ApproxEqual(types.XYZ(0, 0, 0), 1e-3) {
		t.Fatalf("expected point of interest to stay at the origin; got %v", f.PointOfInterest())
	}

	// Pitching straight up would align the view with the up vector
	before := f.Position()
	f.Orbit(0, float32(math.Pi/2))
	assertOrthonormal(t, 1, f.Basis())
	if !f.Position().ApproxEqual(before, 1e-3) {
		t.Fatalf("expected pitch that aligns view and up vectors to be ignored; position moved from %v to %v", before, f.Position())
	}
	if !approx(f.PoiDistance(), 10) {
		t.Fatalf("expected orbit to preserve poi distance; got %f", f.PoiDistance())
	}
}

func TestPan(t *testing.T) {
	f := mustFrame(t, Camera{types.XYZ(0, 0, 10), types.XYZ(0, 0, 0), types.XYZ(0, 1, 0)}, 1)
	f.Modified = false

	f.Pan(1, 2)
	if exp := types.XYZ(1, 2, 10); !f.Position().ApproxEqual(exp, eps) {
		t.Fatalf("expected position to be %v; got %v", exp, f.Position())
	}
	if exp := types.XYZ(1, 2, 0); !f.PointOfInterest().ApproxEqual(exp, eps) {
		t.Fatalf("expected point of interest to be %v; got %v", exp, f.PointOfInterest())
	}
	if !f.Modified {
		t.Fatal("expected frame to be marked as modified")
	}
}
