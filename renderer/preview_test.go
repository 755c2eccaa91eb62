package renderer

import (
	"errors"
	"testing"

	"github.com/achilleasa/pathview/scene"
	"github.com/achilleasa/pathview/types"
)

func testModel() *scene.Model {
	return &scene.Model{
		Path:   "cornell.obj",
		Bounds: types.BBox{types.XYZ(-1, 0, -1), types.XYZ(1, 2, 1)},
	}
}

func testLight() scene.QuadLight {
	return scene.QuadLight{
		Origin: types.XYZ(-0.25, 1.96, -0.25),
		Edge1:  types.XYZ(0.5, 0, 0),
		Edge2:  types.XYZ(0, 0, 0.5),
		Power:  types.XYZ(30000, 30000, 30000),
		Color:  types.XYZ(0.3, 0.3, 0.1),
	}
}

func newTestPreview(t *testing.T, frameW, frameH int) *Preview {
	p, err := NewPreview(testModel(), Options{Workers: 3, Light: testLight()})
	if err != nil {
		t.Fatal(err)
	}
	if err = p.Resize(frameW, frameH); err != nil {
		t.Fatal(err)
	}
	p.SetCamera(scene.Camera{
		From: types.XYZ(0, 1, 4),
		At:   types.XYZ(0, 1, -96),
		Up:   types.XYZ(0, 1, 0),
	})
	return p
}

func TestPreviewScheduler(t *testing.T) {
	p, err := NewPreview(testModel(), Options{Light: testLight()})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.scheduler.(*perfectScheduler); !ok {
		t.Fatalf("expected the perfect scheduler to be used by default; got %T", p.scheduler)
	}

	p, err = NewPreview(testModel(), Options{Workers: 2, Scheduler: NaiveScheduler(), Light: testLight()})
	if err != nil {
		t.Fatal(err)
	}
	if err = p.Resize(4, 5); err != nil {
		t.Fatal(err)
	}
	p.SetCamera(scene.Camera{
		From: types.XYZ(0, 1, 4),
		At:   types.XYZ(0, 1, -96),
		Up:   types.XYZ(0, 1, 0),
	})
	if err = p.Render(); err != nil {
		t.Fatal(err)
	}

	stats := p.Stats()
	if len(stats.Workers) != 2 || stats.Workers[0].BlockH != 3 || stats.Workers[1].BlockH != 2 {
		t.Fatalf("expected the naive scheduler to split 5 rows into blocks of 3 and 2; got %+v", stats.Workers)
	}
}

func TestPreviewResize(t *testing.T) {
	p := newTestPreview(t, 4, 4)

	err := p.Resize(-1, 10)
	if !errors.Is(err, ErrInvalidFrameSize) {
		t.Fatalf("expected to get ErrInvalidFrameSize; got %v", err)
	}

	if err = p.Resize(0, 0); err != nil {
		t.Fatal(err)
	}
	if err = p.Render(); err != nil {
		t.Fatalf("expected rendering an empty frame to be a no-op; got %v", err)
	}
	if stats := p.Stats(); stats.Frames != 0 {
		t.Fatalf("expected no frames to be rendered for an empty frame; got %d", stats.Frames)
	}
}

func TestPreviewRender(t *testing.T) {
	frameW, frameH := 16, 9
	p := newTestPreview(t, frameW, frameH)

	if err := p.Render(); err != nil {
		t.Fatal(err)
	}

	pixels := make([]uint32, frameW*frameH)
	p.DownloadPixels(pixels)
	for idx, pix := range pixels {
		if pix>>24 != 0xff {
			t.Fatalf("expected pixel %d to be opaque; got %08x", idx, pix)
		}
	}

	// The camera looks straight at the front face of the model bounds
	center := pixels[(frameH/2)*frameW+frameW/2]
	if center&0xffffff == 0 {
		t.Fatal("expected center pixel to be shaded")
	}

	stats := p.Stats()
	if len(stats.Workers) != 3 {
		t.Fatalf("expected 3 worker stats; got %d", len(stats.Workers))
	}
	var rows uint32
	for _, stat := range stats.Workers {
		rows += stat.BlockH
	}
	if rows != uint32(frameH) {
		t.Fatalf("expected workers to render %d rows; got %d", frameH, rows)
	}
}

func TestPreviewAccumulation(t *testing.T) {
	p := newTestPreview(t, 8, 8)

	for i := 0; i < 3; i++ {
		if err := p.Render(); err != nil {
			t.Fatal(err)
		}
	}
	if got := p.Stats().AccumulatedFrames; got != 3 {
		t.Fatalf("expected 3 accumulated frames; got %d", got)
	}

	// Camera updates reset accumulation
	p.SetCamera(scene.Camera{From: types.XYZ(0, 1, 5), At: types.XYZ(0, 1, 0), Up: types.XYZ(0, 1, 0)})
	if err := p.Render(); err != nil {
		t.Fatal(err)
	}
	if got := p.Stats().AccumulatedFrames; got != 1 {
		t.Fatalf("expected camera update to reset accumulation; got %d accumulated frames", got)
	}

	// With accumulation disabled every frame stands on its own
	settings := DefaultSettings()
	settings.Accumulate = false
	p.SetSettings(settings)
	for i := 0; i < 2; i++ {
		if err := p.Render(); err != nil {
			t.Fatal(err)
		}
	}
	if got := p.Stats().AccumulatedFrames; got != 1 {
		t.Fatalf("expected 1 accumulated frame with accumulation disabled; got %d", got)
	}
}

func TestPreviewSceneEdits(t *testing.T) {
	p := newTestPreview(t, 4, 4)

	p.RebuildAcceleration()
	p.RebuildAcceleration()
	p.AddLight()

	stats := p.Stats()
	if stats.Boxes != 3 {
		t.Fatalf("expected 3 boxes; got %d", stats.Boxes)
	}
	if stats.Lights != 2 {
		t.Fatalf("expected 2 lights; got %d", stats.Lights)
	}

	// Cubes rest on the model floor
	cube := p.boxes[1]
	if cube[0][1] != 0 {
		t.Fatalf("expected cube to rest on y=0; got min y %f", cube[0][1])
	}

	p.SetModel(testModel())
	if stats = p.Stats(); stats.Boxes != 1 {
		t.Fatalf("expected model reload to discard added cubes; got %d boxes", stats.Boxes)
	}
}

func TestPreviewClosed(t *testing.T) {
	p := newTestPreview(t, 4, 4)
	p.Close()

	if err := p.Render(); err != ErrClosed {
		t.Fatalf("expected to get ErrClosed; got %v", err)
	}
}

func TestDenoisePreservesConstantImage(t *testing.T) {
	frameW, frameH := 5, 3
	src := make([]types.Vec3, frameW*frameH)
	for idx := range src {
		src[idx] = types.XYZ(0.5, 0.25, 1)
	}

	out := denoise(src, frameW, frameH)
	for idx, color := range out {
		if !color.ApproxEqual(src[idx], 1e-6) {
			t.Fatalf("expected pixel %d to be %v; got %v", idx, src[idx], color)
		}
	}
}

func TestIntersectBox(t *testing.T) {
	box := types.BBox{types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1)}

	type spec struct {
		origin types.Vec3
		dir    types.Vec3
		expHit bool
		expT   float32
	}
	specs := []spec{
		{types.XYZ(0, 0, 5), types.XYZ(0, 0, -1), true, 4},
		{types.XYZ(0, 0, 5), types.XYZ(0, 0, 1), false, 0},
		{types.XYZ(0, 5, 5), types.XYZ(0, 0, -1), false, 0},
		// origin inside the box
		{types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), true, 1},
	}

	for index, s := range specs {
		tHit, hit := intersectBox(s.origin, s.dir, box)
		if hit != s.expHit {
			t.Fatalf("[spec %d] expected hit to be %t; got %t", index, s.expHit, hit)
		}
		if hit && tHit != s.expT {
			t.Fatalf("[spec %d] expected hit distance %f; got %f", index, s.expT, tHit)
		}
	}
}
