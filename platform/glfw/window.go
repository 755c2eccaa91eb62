// Package glfw implements the viewer platform on top of a GLFW window with a
// legacy OpenGL context.
package glfw

import (
	"fmt"

	"github.com/achilleasa/pathview/input"
	"github.com/achilleasa/pathview/log"
	"github.com/achilleasa/pathview/viewer"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is a viewer.Platform backed by a GLFW window.
type Window struct {
	logger  log.Logger
	window  *glfw.Window
	handler viewer.EventHandler
}

// Create a window with the given size and title and make its GL context
// current. Must be called from the main OS thread.
func NewWindow(width, height int, title string) (*Window, error) {
	var err error
	if err = glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %s", err.Error())
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)
	glfw.WindowHint(glfw.Visible, glfw.True)
	w := &Window{logger: log.New("glfw")}
	w.window, err = glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("could not create opengl window: %s", err.Error())
	}
	w.window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err = gl.Init(); err != nil {
		w.Close()
		return nil, fmt.Errorf("could not init opengl: %s", err.Error())
	}
	w.logger.Debugf("created %dx%d window with opengl %s", width, height, gl.GoStr(gl.GetString(gl.VERSION)))

	// Bind event callbacks
	w.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	w.window.SetFramebufferSizeCallback(w.onResize)
	w.window.SetKeyCallback(w.onKeyEvent)
	w.window.SetMouseButtonCallback(w.onMouseEvent)
	w.window.SetCursorPosCallback(w.onCursorPosEvent)
	w.window.SetScrollCallback(w.onScrollEvent)

	return w, nil
}

func (w *Window) DrawableSize() (int, int) {
	return w.window.GetFramebufferSize()
}

func (w *Window) SetHandler(handler viewer.EventHandler) {
	w.handler = handler
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

func (w *Window) SetShouldClose(flag bool) {
	w.window.SetShouldClose(flag)
}

func (w *Window) SwapBuffers() {
	w.window.SwapBuffers()
}

func (w *Window) Time() float64 {
	return glfw.GetTime()
}

func (w *Window) SetTitle(title string) {
	w.window.SetTitle(title)
}

// Destroy the window and terminate glfw.
func (w *Window) Close() {
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	glfw.Terminate()
}

func (w *Window) onResize(_ *glfw.Window, width, height int) {
	if w.handler != nil {
		w.handler.OnResize(width, height)
	}
}

func (w *Window) onKeyEvent(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if w.handler != nil {
		w.handler.OnKey(input.Key(key), toAction(action), toMods(mods))
	}
}

func (w *Window) onMouseEvent(gw *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if w.handler == nil {
		return
	}

	var mb input.MouseButton
	switch button {
	case glfw.MouseButtonLeft:
		mb = input.MouseButtonLeft
	case glfw.MouseButtonRight:
		mb = input.MouseButtonRight
	case glfw.MouseButtonMiddle:
		mb = input.MouseButtonMiddle
	default:
		return
	}

	xPos, yPos := gw.GetCursorPos()
	w.handler.OnMouseButton(mb, toAction(action), xPos, yPos)
}

func (w *Window) onCursorPosEvent(_ *glfw.Window, xPos, yPos float64) {
	if w.handler != nil {
		w.handler.OnCursor(xPos, yPos)
	}
}

func (w *Window) onScrollEvent(_ *glfw.Window, xOff, yOff float64) {
	if w.handler != nil {
		w.handler.OnScroll(xOff, yOff)
	}
}

func toAction(action glfw.Action) input.Action {
	switch action {
	case glfw.Press:
		return input.Press
	case glfw.Repeat:
		return input.Repeat
	}
	return input.Release
}

func toMods(mods glfw.ModifierKey) input.ModifierKey {
	var m input.ModifierKey
	if mods&glfw.ModShift != 0 {
		m |= input.ModShift
	}
	if mods&glfw.ModControl != 0 {
		m |= input.ModControl
	}
	if mods&glfw.ModAlt != 0 {
		m |= input.ModAlt
	}
	if mods&glfw.ModSuper != 0 {
		m |= input.ModSuper
	}
	return m
}
