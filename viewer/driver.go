package viewer

import (
	"github.com/achilleasa/pathview/display"
	"github.com/achilleasa/pathview/input"
	"github.com/achilleasa/pathview/log"
	"github.com/achilleasa/pathview/renderer"
	"github.com/achilleasa/pathview/scene"
	"github.com/achilleasa/pathview/types"
)

// Driver implements Hooks by wiring the camera frame, input translator,
// presentation surface and renderer together.
type Driver struct {
	logger log.Logger

	camera     *scene.CameraFrame
	translator *input.Translator
	surface    *display.Surface
	renderer   renderer.Renderer
}

// Create a new driver.
func NewDriver(camera *scene.CameraFrame, translator *input.Translator, surface *display.Surface, r renderer.Renderer) *Driver {
	return &Driver{
		logger:     log.New("viewer"),
		camera:     camera,
		translator: translator,
		surface:    surface,
		renderer:   r,
	}
}

// Resize the surface and the renderer frame. Negative dimensions are
// clamped to zero.
func (d *Driver) OnResize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	d.logger.Debugf("resizing frame to %dx%d", width, height)
	if err := d.surface.Resize(width, height); err != nil {
		d.logger.Warningf("could not resize surface: %s", err)
		return
	}
	if err := d.renderer.Resize(width, height); err != nil {
		d.logger.Warningf("could not resize renderer frame: %s", err)
	}
}

func (d *Driver) OnKey(key input.Key, action input.Action, mods input.ModifierKey) {
	d.translator.Key(key, action, mods)
}

func (d *Driver) OnMouseButton(button input.MouseButton, action input.Action, x, y float64) {
	d.translator.MouseButton(button, action, x, y)
}

func (d *Driver) OnCursor(x, y float64) {
	d.translator.CursorMove(x, y)
}

func (d *Driver) OnScroll(dx, dy float64) {
	d.translator.Scroll(dx, dy)
}

// Push a modified camera and changed settings to the renderer and render
// the next frame.
func (d *Driver) OnRender() error {
	if d.camera.Modified {
		d.renderer.SetCamera(d.camera.Camera())
		d.camera.Modified = false
	}

	if settings, changed := d.translator.TakeSettings(); changed {
		d.renderer.SetSettings(settings)
	}

	return d.renderer.Render()
}

// Download the rendered frame into the surface and present it.
func (d *Driver) OnDraw() error {
	pixels := d.surface.Pixels()
	if len(pixels) == 0 {
		return nil
	}

	d.renderer.DownloadPixels(pixels)
	return d.surface.Present()
}

func (d *Driver) OnClose() {
	d.surface.Release()
}

// Get the current camera position.
func (d *Driver) CameraPosition() types.Vec3 {
	return d.camera.Position()
}
