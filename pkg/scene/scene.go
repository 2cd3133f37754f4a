package scene

import (
	"fmt"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
	"github.com/df07/go-scanline-raytracer/pkg/material"
	"github.com/df07/go-scanline-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Description    string
	CameraConfig   renderer.CameraConfig
	World          *geometry.World
	Width          int // Image width
	Height         int // Image height
	SamplingConfig renderer.SamplingConfig
}

// HeightForWidth returns the image height matching the camera aspect ratio
func HeightForWidth(width int, aspectRatio float64) int {
	return int(float64(width) / aspectRatio)
}

// Resize changes the image dimensions. A zero height keeps the camera aspect ratio;
// otherwise the camera is reshaped to match width/height.
func (s *Scene) Resize(width, height int) {
	if width <= 0 {
		width = s.Width
	}
	if height <= 0 {
		if width == s.Width {
			return
		}
		height = HeightForWidth(width, s.CameraConfig.AspectRatio)
	} else {
		s.CameraConfig.AspectRatio = float64(width) / float64(height)
	}
	s.Width = width
	s.Height = height
}

// NewRaytracer validates the scene and binds it to a raytracer
func (s *Scene) NewRaytracer() (*renderer.Raytracer, error) {
	camera, err := renderer.NewCamera(s.CameraConfig)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", s.Name, err)
	}
	if s.World == nil {
		return nil, fmt.Errorf("scene %q: %w", s.Name, renderer.ErrNoWorld)
	}
	rt, err := renderer.NewRaytracer(camera, s.World, s.Width, s.Height, s.SamplingConfig)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", s.Name, err)
	}
	return rt, nil
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	if s.World == nil {
		return 0
	}
	return s.World.Len()
}

// builder accumulates objects into a world, keeping the first construction error
type builder struct {
	world *geometry.World
	err   error
}

func newBuilder() *builder {
	return &builder{world: geometry.NewWorld()}
}

func (b *builder) sphere(center core.Point3, radius float64, mat material.Material) {
	if b.err != nil {
		return
	}
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		b.err = err
		return
	}
	b.world.Add(sphere)
}

func (b *builder) box(center, halfSize core.Vec3, mat material.Material) {
	if b.err != nil {
		return
	}
	box, err := geometry.NewBoxFromCenter(center, halfSize, mat)
	if err != nil {
		b.err = err
		return
	}
	b.world.Add(box)
}

// newScene fills in the defaults shared by the built-in scenes
func newScene(name, description string, world *geometry.World) *Scene {
	cameraConfig := renderer.DefaultCameraConfig()
	width := 720
	return &Scene{
		Name:           name,
		Description:    description,
		CameraConfig:   cameraConfig,
		World:          world,
		Width:          width,
		Height:         HeightForWidth(width, cameraConfig.AspectRatio),
		SamplingConfig: renderer.DefaultSamplingConfig(),
	}
}
