package scene

import (
	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/material"
)

// NewTwoSpheresScene creates an orange diffuse sphere resting on a red-brown diffuse ground.
// Every surface scatters, so the image is lit entirely by the sky.
func NewTwoSpheresScene() (*Scene, error) {
	b := newBuilder()

	b.sphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewColor(1.0, 0.6, 0.3)))
	b.sphere(core.NewVec3(0, -100.5, 0), 100, material.NewLambertian(core.NewColor(0.4, 0.1, 0.1)))

	if b.err != nil {
		return nil, b.err
	}

	s := newScene("two-spheres", "Diffuse sphere on a diffuse ground, lit by the sky", b.world)
	s.Width = 400
	s.Height = HeightForWidth(s.Width, s.CameraConfig.AspectRatio)
	s.SamplingConfig.SamplesPerPixel = 100
	s.SamplingConfig.MaxDepth = 50
	return s, nil
}
