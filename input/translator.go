package input

import (
	"github.com/achilleasa/pathview/log"
	"github.com/achilleasa/pathview/renderer"
	"github.com/achilleasa/pathview/scene"
	"github.com/achilleasa/pathview/types"
)

const (
	// Coefficient for converting delta cursor movements to camera angles
	// (radians per pixel) and pan/dolly distances.
	DefaultMouseSensitivity float32 = 0.005

	// Keyboard dolly step as a fraction of the camera motion speed.
	dollyStepScale float32 = 1e-2

	// Dolly step per scroll unit as a fraction of the camera motion speed.
	scrollStepScale float32 = 1e-1
)

// Renderer operations that mutate the scene.
type SceneEditor interface {
	RebuildAcceleration()
	AddLight()
}

// Implemented by surfaces that can persist their current contents.
type Screenshotter interface {
	Screenshot() (string, error)
}

// Implemented by windows that can be asked to close.
type CloseRequester interface {
	SetShouldClose(bool)
}

// The objects that input events act upon. Any target other than Camera may
// be nil in which case the matching bindings are ignored.
type Targets struct {
	Camera  *scene.CameraFrame
	Scene   SceneEditor
	Capture Screenshotter
	Window  CloseRequester
}

// The Translator maps raw input events to camera frame mutations and
// render setting changes. Unrecognized input is ignored.
type Translator struct {
	logger      log.Logger
	targets     Targets
	sensitivity float32

	settings        renderer.Settings
	settingsChanged bool

	mousePressed  [3]bool
	lastCursorPos types.Vec2
}

// Create a new translator. A non-positive sensitivity selects
// DefaultMouseSensitivity.
func NewTranslator(targets Targets, settings renderer.Settings, sensitivity float32) *Translator {
	if sensitivity <= 0 {
		sensitivity = DefaultMouseSensitivity
	}
	if settings.SamplesPerPixel < 1 {
		settings.SamplesPerPixel = 1
	}

	return &Translator{
		logger:      log.New("input"),
		targets:     targets,
		sensitivity: sensitivity,
		settings:    settings,
	}
}

// Get the current render settings.
func (t *Translator) Settings() renderer.Settings {
	return t.settings
}

// Return the current render settings and whether they changed since the
// last call.
func (t *Translator) TakeSettings() (renderer.Settings, bool) {
	changed := t.settingsChanged
	t.settingsChanged = false
	return t.settings, changed
}

// Handle a key event. Only key presses are processed and modifier keys are
// ignored.
func (t *Translator) Key(key Key, action Action, mods ModifierKey) {
	if action != Press {
		return
	}

	key = key.normalize()
	if t.toggle(key) {
		return
	}

	cam := t.targets.Camera
	switch key {
	case KeyLeft:
		cam.MoveLateral(1, cam.MotionSpeed())
	case KeyRight:
		cam.MoveLateral(-1, cam.MotionSpeed())
	case KeyUp:
		cam.Dolly(1, dollyStepScale*cam.MotionSpeed())
	case KeyDown:
		cam.Dolly(-1, dollyStepScale*cam.MotionSpeed())
	}
}

func (t *Translator) toggle(key Key) bool {
	switch key {
	case KeyD, KeySpace:
		t.settings.Denoise = !t.settings.Denoise
		t.logger.Noticef("denoising now %s", onOff(t.settings.Denoise))
	case KeyA:
		t.settings.Accumulate = !t.settings.Accumulate
		t.logger.Noticef("accumulation/progressive refinement now %s", onOff(t.settings.Accumulate))
	case KeyComma:
		t.settings.SamplesPerPixel--
		if t.settings.SamplesPerPixel < 1 {
			t.settings.SamplesPerPixel = 1
		}
		t.logger.Noticef("num samples/pixel now %d", t.settings.SamplesPerPixel)
	case KeyPeriod:
		t.settings.SamplesPerPixel++
		t.logger.Noticef("num samples/pixel now %d", t.settings.SamplesPerPixel)
	case KeyC:
		if t.targets.Scene != nil {
			t.targets.Scene.RebuildAcceleration()
		}
		return true
	case KeyL:
		if t.targets.Scene != nil {
			t.targets.Scene.AddLight()
		}
		return true
	case KeyS:
		t.screenshot()
		return true
	case KeyEscape:
		if t.targets.Window != nil {
			t.targets.Window.SetShouldClose(true)
		}
		return true
	default:
		return false
	}

	t.settingsChanged = true
	return true
}

func (t *Translator) screenshot() {
	if t.targets.Capture == nil {
		return
	}

	path, err := t.targets.Capture.Screenshot()
	if err != nil {
		t.logger.Warningf("could not capture screenshot: %s", err)
		return
	}
	t.logger.Noticef("screenshot saved to %s", path)
}

// Handle a mouse button event. x and y are the cursor coordinates at the
// time of the event.
func (t *Translator) MouseButton(button MouseButton, action Action, x, y float64) {
	if button < MouseButtonLeft || button > MouseButtonMiddle {
		return
	}

	t.mousePressed = [3]bool{}
	if action == Press {
		t.lastCursorPos = types.XY(float32(x), float32(y))
		t.mousePressed[button] = true
	}
}

// Handle a cursor movement. Dragging with the left button orbits the camera
// around its point of interest, the middle button pans and the right button
// dollies.
func (t *Translator) CursorMove(x, y float64) {
	if !t.mousePressed[MouseButtonLeft] && !t.mousePressed[MouseButtonRight] && !t.mousePressed[MouseButtonMiddle] {
		return
	}

	// Calculate delta movement and apply mouse sensitivity
	newPos := types.XY(float32(x), float32(y))
	delta := t.lastCursorPos.Sub(newPos).Mul(t.sensitivity)
	t.lastCursorPos = newPos

	cam := t.targets.Camera
	switch {
	case t.mousePressed[MouseButtonLeft]:
		cam.Orbit(delta[0], delta[1])
	case t.mousePressed[MouseButtonMiddle]:
		cam.Pan(delta[0]*cam.MotionSpeed(), -delta[1]*cam.MotionSpeed())
	case t.mousePressed[MouseButtonRight]:
		if delta[1] != 0 {
			sign, step := signAndMagnitude(delta[1])
			cam.Dolly(sign, step*cam.MotionSpeed())
		}
	}
}

// Handle a scroll event. Scrolling up moves the camera closer to its point
// of interest.
func (t *Translator) Scroll(dx, dy float64) {
	if dy == 0 {
		return
	}

	cam := t.targets.Camera
	sign, step := signAndMagnitude(float32(dy))
	cam.Dolly(sign, step*scrollStepScale*cam.MotionSpeed())
}

func signAndMagnitude(v float32) (float32, float32) {
	if v < 0 {
		return -1, -v
	}
	return 1, v
}

func onOff(flag bool) string {
	if flag {
		return "ON"
	}
	return "OFF"
}
