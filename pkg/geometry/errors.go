package geometry

import "errors"

var (
	ErrInvalidRadius = errors.New("geometry: sphere radius must be positive")
	ErrInvalidBounds = errors.New("geometry: box min corner must be below max corner on every axis")
	ErrNilMaterial   = errors.New("geometry: material must not be nil")
)
