package viewer

import (
	"github.com/achilleasa/pathview/input"
	"github.com/achilleasa/pathview/types"
)

// The EventHandler interface receives platform events. Handlers are invoked
// synchronously from Platform.PollEvents.
type EventHandler interface {
	// The drawable area of the window changed size.
	OnResize(width, height int)

	OnKey(key input.Key, action input.Action, mods input.ModifierKey)

	// A mouse button changed state; x and y are the cursor coordinates at
	// the time of the event.
	OnMouseButton(button input.MouseButton, action input.Action, x, y float64)

	OnCursor(x, y float64)

	OnScroll(dx, dy float64)
}

// The Platform interface is implemented by window system backends.
type Platform interface {
	// Get the pixel dimensions of the window's render target.
	DrawableSize() (int, int)

	// Install the handler that receives window events.
	SetHandler(EventHandler)

	// Drain pending window events without blocking.
	PollEvents()

	ShouldClose() bool
	SetShouldClose(bool)

	SwapBuffers()

	// Get a monotonic time value in seconds.
	Time() float64

	SetTitle(string)

	// Destroy the window and release platform resources.
	Close()
}

// The Hooks interface is the set of callbacks that the Loop drives once per
// iteration in addition to the platform event callbacks.
type Hooks interface {
	EventHandler

	// Push pending camera and setting changes to the renderer and render
	// the next frame.
	OnRender() error

	// Download the rendered frame and present it.
	OnDraw() error

	// Release display resources. Called once when the loop stops.
	OnClose()
}

// Hooks that also implement PositionReporter get their camera position
// included in the frame rate status line.
type PositionReporter interface {
	CameraPosition() types.Vec3
}
