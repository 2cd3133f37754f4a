package renderer

import (
	"fmt"

	"github.com/df07/go-scanline-raytracer/pkg/core"
)

// CameraConfig holds the parameters a camera is derived from
type CameraConfig struct {
	AspectRatio    float64 // Viewport width / height
	ViewportHeight float64 // Viewport height in world units
	FocalLength    float64 // Distance from origin to the viewport plane
}

// DefaultCameraConfig returns a 16:9 camera with a 2-unit tall viewport one unit away
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:    16.0 / 9.0,
		ViewportHeight: 2.0,
		FocalLength:    1.0,
	}
}

// Validate checks that the camera geometry is well defined
func (c CameraConfig) Validate() error {
	if !(c.AspectRatio > 0) || !(c.ViewportHeight > 0) || !(c.FocalLength > 0) {
		return fmt.Errorf("%w: %+v", ErrInvalidCamera, c)
	}
	return nil
}

// Camera generates rays for rendering.
// A camera is immutable after construction and safe to share between goroutines.
type Camera struct {
	origin          core.Point3
	lowerLeftCorner core.Point3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a camera at the origin looking down -Z
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	viewportWidth := config.AspectRatio * config.ViewportHeight

	origin := core.NewVec3(0, 0, 0)
	horizontal := core.NewVec3(viewportWidth, 0, 0)
	vertical := core.NewVec3(0, config.ViewportHeight, 0)
	lowerLeftCorner := origin.Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(core.NewVec3(0, 0, config.FocalLength))

	return &Camera{
		origin:          origin,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
	}, nil
}

// GetRay generates a ray for viewport coordinates (u, v) where 0 <= u,v <= 1,
// u running left to right and v bottom to top
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(u)).
		Add(c.vertical.Multiply(v)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}
