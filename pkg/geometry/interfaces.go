package geometry

import (
	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/material"
)

// Hittable interface for objects that can be hit by rays.
// Hit returns the nearest intersection with tMin <= t <= tMax, if any.
// Implementations are read-only after construction and safe for concurrent use.
type Hittable interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}
