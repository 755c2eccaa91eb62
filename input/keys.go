package input

// Key codes. Printable keys use their ASCII code (upper case letters, as
// reported by the platform); special keys use the GLFW key code values.
type Key int

const (
	KeyUnknown Key = -1

	KeySpace  Key = ' '
	KeyComma  Key = ','
	KeyPeriod Key = '.'
	KeyA      Key = 'A'
	KeyC      Key = 'C'
	KeyD      Key = 'D'
	KeyL      Key = 'L'
	KeyS      Key = 'S'

	KeyEscape Key = 256
	KeyRight  Key = 262
	KeyLeft   Key = 263
	KeyDown   Key = 264
	KeyUp     Key = 265
)

// Normalize lower case letters to the upper case key code.
func (k Key) normalize() Key {
	if k >= 'a' && k <= 'z' {
		return k - 'a' + 'A'
	}
	return k
}

type Action int

const (
	Release Action = iota
	Press
	Repeat
)

type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

type ModifierKey int

const (
	ModShift ModifierKey = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// The key bindings, as displayed to the user at startup.
var Bindings = []struct {
	Keys        string
	Description string
}{
	{"a", "enable/disable accumulation/progressive refinement"},
	{"d, space", "enable/disable denoising"},
	{",", "reduce the number of paths/pixel"},
	{".", "increase the number of paths/pixel"},
	{"c", "add a cube"},
	{"l", "add a light source"},
	{"s", "get screenshot"},
	{"left/right", "move camera sideways"},
	{"up/down", "move camera towards/away from the point of interest"},
	{"left drag", "orbit around the point of interest"},
	{"middle drag", "pan camera"},
	{"right drag, scroll", "dolly camera"},
	{"esc", "exit"},
}
