package viewer

import "errors"

var (
	ErrLoopStopped = errors.New("viewer: loop has been stopped")
)
