package loaders

import "errors"

var (
	ErrInvalidPath       = errors.New("loaders: invalid scene file path")
	ErrInvalidSceneFile  = errors.New("loaders: invalid scene file")
	ErrUnknownMaterial   = errors.New("loaders: unknown material")
	ErrUnknownObjectType = errors.New("loaders: unknown object type")
)
