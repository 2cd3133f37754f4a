package scene

import (
	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/material"
)

// NewBoxesScene creates axis-aligned boxes and a sphere on a diffuse ground
func NewBoxesScene() (*Scene, error) {
	b := newBuilder()

	ground := material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
	teal := material.NewLambertian(core.NewColor(0.1, 0.5, 0.5))
	gold := material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.1)
	steel := material.NewMetal(core.NewColor(0.7, 0.7, 0.75), 0.4)
	red := material.NewLambertian(core.NewColor(0.65, 0.2, 0.15))

	b.sphere(core.NewVec3(0, -100.5, -1), 100, ground)

	// Boxes sit on the ground, which is flat enough at this scale
	b.box(core.NewVec3(-0.75, -0.25, -1.3), core.NewVec3(0.25, 0.25, 0.25), teal)
	b.box(core.NewVec3(0.7, -0.3, -1.1), core.NewVec3(0.2, 0.2, 0.2), gold)
	b.box(core.NewVec3(0, -0.45, -0.8), core.NewVec3(0.6, 0.05, 0.15), steel)
	b.sphere(core.NewVec3(0, -0.05, -1.5), 0.35, red)

	if b.err != nil {
		return nil, b.err
	}

	s := newScene("boxes", "Diffuse and metal boxes around a sphere", b.world)
	s.SamplingConfig.SamplesPerPixel = 100
	s.SamplingConfig.MaxDepth = 10
	return s, nil
}
