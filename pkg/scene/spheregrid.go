package scene

import (
	"math"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	// Convert hue from degrees to radians
	hRad := h * math.Pi / 180.0

	// Convert from OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewColor(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a grid of metal spheres whose hue varies left to right
// and whose chroma and roughness vary front to back
func NewSphereGridScene() (*Scene, error) {
	b := newBuilder()

	b.sphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5)))

	const (
		gridSize      = 7
		radius        = 0.12
		baseLightness = 0.65
		minChroma     = 0.05
		maxChroma     = 0.25
	)

	// Grid spans x in [-1.5, 1.5] and z in [-1, -3.4]
	spacingX := 3.0 / float64(gridSize-1)
	spacingZ := 2.4 / float64(gridSize-1)

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := -1.5 + float64(i)*spacingX
			z := -1.0 - float64(j)*spacingZ

			hue := float64(i) / float64(gridSize-1) * 360.0
			chroma := minChroma + float64(j)/float64(gridSize-1)*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			fuzz := 0.05 + 0.1*float64((i+j)%3)/2.0

			// Rest each sphere on the curved ground
			y := groundHeight(x, z) + radius

			b.sphere(core.NewVec3(x, y, z), radius, material.NewMetal(oklchToRGB(lightness, chroma, hue), fuzz))
		}
	}

	if b.err != nil {
		return nil, b.err
	}

	s := newScene("sphere-grid", "Grid of metal spheres with varying hue, chroma and roughness", b.world)
	s.SamplingConfig.SamplesPerPixel = 100
	s.SamplingConfig.MaxDepth = 20
	return s, nil
}

// groundHeight returns the top of the shared ground sphere above (x, z)
func groundHeight(x, z float64) float64 {
	dz := z + 1
	return -100.5 + math.Sqrt(100*100-x*x-dz*dz)
}
