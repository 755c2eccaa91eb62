package display

import "errors"

var (
	ErrInvalidSize       = errors.New("display: invalid surface size")
	ErrEmptySurface      = errors.New("display: surface is empty")
	ErrUnsupportedFormat = errors.New("display: unsupported image format")
)
