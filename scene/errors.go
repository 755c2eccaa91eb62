package scene

import "errors"

var (
	ErrInvalidCamera      = errors.New("scene: invalid camera orientation")
	ErrInvalidMotionSpeed = errors.New("scene: camera motion speed must be positive")
)
