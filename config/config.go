// Package config defines the viewer configuration and its YAML file format.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/achilleasa/pathview/log"
	"github.com/achilleasa/pathview/renderer"
	"github.com/achilleasa/pathview/scene"
	"github.com/achilleasa/pathview/types"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Distance between the initial camera position and its target along -z when
// no explicit target is configured.
const defaultTargetDistance = 100

// A three component vector written as a YAML sequence.
type Vector []float32

func (v Vector) vec3() types.Vec3 {
	return types.XYZ(v[0], v[1], v[2])
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// The initial camera pose. When At is empty the camera looks down -z at a
// point 100 units behind the model center.
type Camera struct {
	From Vector `yaml:"from"`
	At   Vector `yaml:"at"`
	Up   Vector `yaml:"up"`
}

type Light struct {
	Origin Vector `yaml:"origin"`
	Edge1  Vector `yaml:"edge1"`
	Edge2  Vector `yaml:"edge2"`
	Power  Vector `yaml:"power"`
	Color  Vector `yaml:"color"`
}

type Render struct {
	Workers int `yaml:"workers"`

	// Row scheduling algorithm; one of perfect or naive.
	Scheduler       string  `yaml:"scheduler"`
	SamplesPerPixel int     `yaml:"samples_per_pixel"`
	Denoise         bool    `yaml:"denoise"`
	Accumulate      bool    `yaml:"accumulate"`
	Exposure        float32 `yaml:"exposure"`
	FOV             float32 `yaml:"fov"`
}

type Input struct {
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
}

type Screenshot struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

type Config struct {
	Window     Window     `yaml:"window"`
	Model      string     `yaml:"model"`
	Watch      bool       `yaml:"watch"`
	Camera     Camera     `yaml:"camera"`
	Light      Light      `yaml:"light"`
	Render     Render     `yaml:"render"`
	Input      Input      `yaml:"input"`
	Screenshot Screenshot `yaml:"screenshot"`
	LogLevel   string     `yaml:"log_level"`
}

// Get the default configuration.
func Default() *Config {
	return &Config{
		Window: Window{
			Width:  1200,
			Height: 800,
			Title:  "final_project",
		},
		Model: "../models/CornellBox-Original.obj",
		Camera: Camera{
			From: Vector{0, 1, 4},
			Up:   Vector{0, 1, 0},
		},
		Light: Light{
			Origin: Vector{-0.25, 1.96, -0.25},
			Edge1:  Vector{0.5, 0, 0},
			Edge2:  Vector{0, 0, 0.5},
			Power:  Vector{30000, 30000, 30000},
			Color:  Vector{0.3, 0.3, 0.1},
		},
		Render: Render{
			Scheduler:       "perfect",
			SamplesPerPixel: 1,
			Denoise:         true,
			Accumulate:      true,
			Exposure:        1,
			FOV:             50,
		},
		Input: Input{
			MouseSensitivity: 0.005,
		},
		Screenshot: Screenshot{
			Dir:    ".",
			Format: "png",
		},
		LogLevel: "notice",
	}
}

// Load the configuration file at path on top of the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode a YAML configuration on top of the defaults. Unknown fields are
// rejected.
func Decode(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if len(bytes.TrimSpace(data)) != 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Check the configuration for invalid values.
func (c *Config) Validate() error {
	var problems []string
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		problems = append(problems, fmt.Sprintf("window size must be positive; got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Model == "" {
		problems = append(problems, "no model specified")
	}

	vectors := []struct {
		name     string
		v        Vector
		optional bool
	}{
		{"camera.from", c.Camera.From, false},
		{"camera.at", c.Camera.At, true},
		{"camera.up", c.Camera.Up, false},
		{"light.origin", c.Light.Origin, false},
		{"light.edge1", c.Light.Edge1, false},
		{"light.edge2", c.Light.Edge2, false},
		{"light.power", c.Light.Power, false},
		{"light.color", c.Light.Color, false},
	}
	for _, vec := range vectors {
		if vec.optional && len(vec.v) == 0 {
			continue
		}
		if len(vec.v) != 3 {
			problems = append(problems, fmt.Sprintf("%s must have 3 components; got %d", vec.name, len(vec.v)))
		}
	}

	if c.Render.Workers < 0 {
		problems = append(problems, fmt.Sprintf("render.workers must not be negative; got %d", c.Render.Workers))
	}
	switch c.Render.Scheduler {
	case "perfect", "naive":
	default:
		problems = append(problems, fmt.Sprintf("unknown render.scheduler %q; expected perfect or naive", c.Render.Scheduler))
	}
	if c.Render.SamplesPerPixel < 1 {
		problems = append(problems, fmt.Sprintf("render.samples_per_pixel must be at least 1; got %d", c.Render.SamplesPerPixel))
	}
	if c.Input.MouseSensitivity < 0 {
		problems = append(problems, fmt.Sprintf("input.mouse_sensitivity must not be negative; got %g", c.Input.MouseSensitivity))
	}
	switch strings.ToLower(strings.TrimPrefix(c.Screenshot.Format, ".")) {
	case "png", "webp", "tga", "bmp":
	default:
		problems = append(problems, fmt.Sprintf("unsupported screenshot format %q", c.Screenshot.Format))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) != 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Get the initial camera pose for a model.
func (c *Config) InitialCamera(model *scene.Model) scene.Camera {
	cam := scene.Camera{
		From: c.Camera.From.vec3(),
		Up:   c.Camera.Up.vec3(),
	}
	if len(c.Camera.At) == 3 {
		cam.At = c.Camera.At.vec3()
	} else {
		cam.At = model.Bounds.Center().Sub(types.XYZ(0, 0, defaultTargetDistance))
	}
	return cam
}

// Get the preview renderer options.
func (c *Config) RendererOptions() renderer.Options {
	scheduler := renderer.PerfectScheduler()
	if c.Render.Scheduler == "naive" {
		scheduler = renderer.NaiveScheduler()
	}

	return renderer.Options{
		Workers:   c.Render.Workers,
		Scheduler: scheduler,
		Exposure:  c.Render.Exposure,
		FOV:       c.Render.FOV,
		Light: scene.QuadLight{
			Origin: c.Light.Origin.vec3(),
			Edge1:  c.Light.Edge1.vec3(),
			Edge2:  c.Light.Edge2.vec3(),
			Power:  c.Light.Power.vec3(),
			Color:  c.Light.Color.vec3(),
		},
		Settings: c.Settings(),
	}
}

// Get the initial render settings.
func (c *Config) Settings() renderer.Settings {
	return renderer.Settings{
		SamplesPerPixel: c.Render.SamplesPerPixel,
		Denoise:         c.Render.Denoise,
		Accumulate:      c.Render.Accumulate,
	}
}
