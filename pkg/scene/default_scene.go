package scene

import (
	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/material"
)

// NewDefaultScene creates a diffuse sphere flanked by two small metal spheres on a red-brown ground
func NewDefaultScene() (*Scene, error) {
	b := newBuilder()

	groundMaterial := material.NewLambertian(core.NewColor(0.4, 0.1, 0.1))
	centerMaterial := material.NewLambertian(core.NewColor(1.0, 0.6, 0.3))
	polishedMetal := material.NewMetal(core.NewColor(0.8, 0.8, 0.8), 0.2)
	brushedMetal := material.NewMetal(core.NewColor(0.8, 0.8, 1.0), 0.8)

	b.sphere(core.NewVec3(0, -100.5, 0), 100, groundMaterial)
	b.sphere(core.NewVec3(0, 0, -1), 0.5, centerMaterial)
	b.sphere(core.NewVec3(0.8, 0.1, -0.8), 0.2, polishedMetal)
	b.sphere(core.NewVec3(-0.8, 0.1, -0.8), 0.2, brushedMetal)

	if b.err != nil {
		return nil, b.err
	}
	return newScene("default", "Diffuse sphere between a polished and a brushed metal sphere", b.world), nil
}
