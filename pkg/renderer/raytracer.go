package renderer

import (
	"fmt"
	"image/color"
	"math"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
)

// shadowAcneEpsilon keeps scattered rays from re-hitting the surface they leave
const shadowAcneEpsilon = 0.001

// maxOutputChannel is the upper clamp applied to gamma-corrected channels
const maxOutputChannel = 0.999

var (
	horizonColor = core.NewColor(1.0, 1.0, 1.0)
	zenithColor  = core.NewColor(0.5, 0.7, 1.0)
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel (1 disables antialiasing)
	MaxDepth        int // Maximum ray bounce depth (0 renders black)
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 200,
		MaxDepth:        5,
	}
}

// Validate checks the sampling preconditions
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSamples, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDepth, c.MaxDepth)
	}
	return nil
}

func validateDimensions(width, height int) error {
	if width < 2 || height < 2 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	return nil
}

// BackgroundColor returns the sky gradient seen by a ray that escapes the scene
func BackgroundColor(r core.Ray) core.Color {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*horizon + t*zenith
	return horizonColor.Multiply(1.0 - t).Add(zenithColor.Multiply(t))
}

// RayColor estimates the light arriving along a ray, following at most maxDepth bounces
func RayColor(r core.Ray, world geometry.Hittable, maxDepth int, sampler core.Sampler) core.Color {
	attenuation := core.NewColor(1, 1, 1)

	for depth := maxDepth; depth > 0; depth-- {
		hit, isHit := world.Hit(r, shadowAcneEpsilon, math.Inf(1))
		if !isHit {
			return attenuation.MultiplyVec(BackgroundColor(r))
		}

		scatter, didScatter := hit.Material.Scatter(r, hit, sampler)
		if !didScatter {
			return core.Color{} // Material absorbed the ray
		}

		attenuation = attenuation.MultiplyVec(scatter.Attenuation)
		r = scatter.Scattered
	}

	// Bounce limit exceeded, no more light is gathered
	return core.Color{}
}

// OutputColor averages accumulated samples and applies gamma 2.0 correction and clamping
func OutputColor(accum core.Color, samples int) core.Color {
	return accum.Divide(float64(samples)).Sqrt().Clamp(0.0, maxOutputChannel)
}

// ToRGBA converts an output color in [0, 0.999] to 8-bit RGBA
func ToRGBA(c core.Color) color.RGBA {
	return color.RGBA{
		R: uint8(256 * c.X),
		G: uint8(256 * c.Y),
		B: uint8(256 * c.Z),
		A: 255,
	}
}

// pixelColor samples pixel (i, j), j counting scanlines from the bottom
func pixelColor(camera *Camera, world geometry.Hittable, i, j, width, height, samples, maxDepth int, sampler core.Sampler) core.Color {
	var accum core.Color
	for s := 0; s < samples; s++ {
		du, dv := sampler.Get2D()
		u := (float64(i) + du) / float64(width-1)
		v := (float64(j) + dv) / float64(height-1)

		accum = accum.Add(RayColor(camera.GetRay(u, v), world, maxDepth, sampler))
	}
	return OutputColor(accum, samples)
}

// ComputePixelColor returns the gamma-corrected color of pixel (i, j) in [0, 0.999]³.
// Scanline j counts from the bottom of the image.
func ComputePixelColor(camera *Camera, world geometry.Hittable, i, j, width, height, samples, maxDepth int, sampler core.Sampler) (core.Color, error) {
	if camera == nil {
		return core.Color{}, ErrNoCamera
	}
	if world == nil {
		return core.Color{}, ErrNoWorld
	}
	if err := validateDimensions(width, height); err != nil {
		return core.Color{}, err
	}
	config := SamplingConfig{SamplesPerPixel: samples, MaxDepth: maxDepth}
	if err := config.Validate(); err != nil {
		return core.Color{}, err
	}

	return pixelColor(camera, world, i, j, width, height, samples, maxDepth, sampler), nil
}

// Raytracer binds a validated camera, world and frame so pixels can be sampled without re-checking
type Raytracer struct {
	camera *Camera
	world  geometry.Hittable
	width  int
	height int
	config SamplingConfig
}

// NewRaytracer creates a new raytracer
func NewRaytracer(camera *Camera, world geometry.Hittable, width, height int, config SamplingConfig) (*Raytracer, error) {
	if camera == nil {
		return nil, ErrNoCamera
	}
	if world == nil {
		return nil, ErrNoWorld
	}
	if err := validateDimensions(width, height); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Raytracer{
		camera: camera,
		world:  world,
		width:  width,
		height: height,
		config: config,
	}, nil
}

// Width returns the image width in pixels
func (rt *Raytracer) Width() int { return rt.width }

// Height returns the image height in pixels
func (rt *Raytracer) Height() int { return rt.height }

// Config returns the sampling configuration
func (rt *Raytracer) Config() SamplingConfig { return rt.config }

// PixelColor returns the output color of pixel (i, j), j counting from the bottom
func (rt *Raytracer) PixelColor(i, j int, sampler core.Sampler) core.Color {
	return pixelColor(rt.camera, rt.world, i, j, rt.width, rt.height,
		rt.config.SamplesPerPixel, rt.config.MaxDepth, sampler)
}

// RenderRow fills out with the colors of image row y, where row 0 is the top of the image
func (rt *Raytracer) RenderRow(y int, out []core.Color, sampler core.Sampler) {
	j := rt.height - 1 - y
	for i := 0; i < rt.width; i++ {
		out[i] = rt.PixelColor(i, j, sampler)
	}
}
