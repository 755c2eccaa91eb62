package renderer

import "errors"

var (
	ErrInvalidFrameSize = errors.New("renderer: invalid frame size")
	ErrClosed           = errors.New("renderer: renderer is closed")
)
