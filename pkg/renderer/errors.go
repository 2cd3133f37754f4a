package renderer

import "errors"

var (
	ErrInvalidCamera     = errors.New("renderer: camera aspect ratio, viewport height and focal length must be positive")
	ErrInvalidDimensions = errors.New("renderer: image width and height must both be at least 2")
	ErrInvalidSamples    = errors.New("renderer: samples per pixel must be at least 1")
	ErrInvalidDepth      = errors.New("renderer: max depth must not be negative")
	ErrNoWorld           = errors.New("renderer: no world defined")
	ErrNoCamera          = errors.New("renderer: no camera defined")
	ErrPoolClosed        = errors.New("renderer: worker pool closed unexpectedly")
)
