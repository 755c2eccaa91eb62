package model

import "errors"

var (
	ErrUnsupportedFormat = errors.New("model: unsupported model format")
	ErrEmptyModel        = errors.New("model: model does not define any vertices")
)
