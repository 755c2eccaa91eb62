package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/achilleasa/pathview/renderer"
	"github.com/achilleasa/pathview/scene"
	"github.com/achilleasa/pathview/types"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if cfg.Window.Width != 1200 || cfg.Window.Height != 800 {
		t.Fatalf("expected default window size to be 1200x800; got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}

	settings := cfg.Settings()
	if settings.SamplesPerPixel != 1 || !settings.Denoise || !settings.Accumulate {
		t.Fatalf("unexpected default settings %v", settings)
	}

	light := cfg.RendererOptions().Light
	if exp := types.XYZ(-0.25, 1.96, -0.25); light.Origin != exp {
		t.Fatalf("expected light origin to be %v; got %v", exp, light.Origin)
	}
	if exp := types.XYZ(0.3, 0.3, 0.1); light.Color != exp {
		t.Fatalf("expected light color to be %v; got %v", exp, light.Color)
	}
}

func TestInitialCamera(t *testing.T) {
	model := &scene.Model{Bounds: types.BBox{types.XYZ(-1, 0, -1), types.XYZ(1, 2, 1)}}

	cam := Default().InitialCamera(model)
	exp := scene.Camera{
		From: types.XYZ(0, 1, 4),
		At:   types.XYZ(0, 1, -100),
		Up:   types.XYZ(0, 1, 0),
	}
	if cam != exp {
		t.Fatalf("expected camera %v; got %v", exp, cam)
	}

	cfg := Default()
	cfg.Camera.At = Vector{0, 0, 0}
	if cam = cfg.InitialCamera(model); cam.At != types.XYZ(0, 0, 0) {
		t.Fatalf("expected configured target to be used; got %v", cam.At)
	}
}

func TestDecodeOverridesDefaults(t *testing.T) {
	payload := `
window:
  width: 640
  title: preview
model: models/box.obj
camera:
  from: [1, 2, 3]
render:
  workers: 4
  denoise: false
screenshot:
  format: webp
log_level: debug
`
	cfg, err := Decode(strings.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Window.Width != 640 || cfg.Window.Height != 800 || cfg.Window.Title != "preview" {
		t.Fatalf("unexpected window config %+v", cfg.Window)
	}
	if cfg.Model != "models/box.obj" {
		t.Fatalf("expected model path to be models/box.obj; got %s", cfg.Model)
	}
	if exp := types.XYZ(1, 2, 3); cfg.Camera.From.vec3() != exp {
		t.Fatalf("expected camera from to be %v; got %v", exp, cfg.Camera.From)
	}
	if len(cfg.Camera.Up) != 3 {
		t.Fatal("expected unset camera up to keep its default")
	}
	if cfg.Render.Workers != 4 || cfg.Render.Denoise || !cfg.Render.Accumulate {
		t.Fatalf("unexpected render config %+v", cfg.Render)
	}
	if cfg.Screenshot.Format != "webp" || cfg.Screenshot.Dir != "." {
		t.Fatalf("unexpected screenshot config %+v", cfg.Screenshot)
	}
}

func TestDecodeEmpty(t *testing.T) {
	cfg, err := Decode(strings.NewReader("  \n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != Default().Model {
		t.Fatalf("expected empty config to yield the defaults; got model %s", cfg.Model)
	}
}

func TestDecodeErrors(t *testing.T) {
	type spec struct {
		payload  string
		expError string
	}
	specs := []spec{
		{"window:\n  width: 0\n", "window size must be positive"},
		{"camera:\n  from: [1, 2]\n", "camera.from must have 3 components"},
		{"light:\n  color: [1, 2, 3, 4]\n", "light.color must have 3 components"},
		{"render:\n  samples_per_pixel: 0\n", "render.samples_per_pixel must be at least 1"},
		{"screenshot:\n  format: jpeg\n", `unsupported screenshot format "jpeg"`},
		{"log_level: chatty\n", `unknown level "chatty"`},
		{"model: ''\n", "no model specified"},
		{"render:\n  scheduler: greedy\n", `unknown render.scheduler "greedy"`},
	}

	for index, s := range specs {
		_, err := Decode(strings.NewReader(s.payload))
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("[spec %d] expected to get ErrInvalidConfig; got %v", index, err)
		}
		if !strings.Contains(err.Error(), s.expError) {
			t.Fatalf("[spec %d] expected error to contain %q; got %v", index, s.expError, err)
		}
	}

	if _, err := Decode(strings.NewReader("windw:\n  width: 10\n")); err == nil {
		t.Fatal("expected unknown fields to be rejected")
	}
}

func TestRendererScheduler(t *testing.T) {
	cfg := Default()
	if sch := cfg.RendererOptions().Scheduler; sch == nil || sch == renderer.NaiveScheduler() {
		t.Fatalf("expected the default scheduler to be the perfect scheduler; got %#v", sch)
	}

	cfg, err := Decode(strings.NewReader("render:\n  scheduler: naive\n"))
	if err != nil {
		t.Fatal(err)
	}
	if sch := cfg.RendererOptions().Scheduler; sch != renderer.NaiveScheduler() {
		t.Fatalf("expected the naive scheduler; got %#v", sch)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathview.yaml")
	if err := os.WriteFile(path, []byte("model: cube.obj\nwatch: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "cube.obj" || !cfg.Watch {
		t.Fatalf("unexpected config %+v", cfg)
	}

	if _, err = Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected to get a not exist error; got %v", err)
	}
}
