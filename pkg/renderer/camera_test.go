package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-scanline-raytracer/pkg/core"
)

func TestCamera_GetRay_ViewportCorners(t *testing.T) {
	camera, err := NewCamera(CameraConfig{AspectRatio: 2.0, ViewportHeight: 2.0, FocalLength: 1.0})
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	tests := []struct {
		name      string
		u, v      float64
		direction core.Vec3
	}{
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"lower right", 1, 0, core.NewVec3(2, -1, -1)},
		{"upper left", 0, 1, core.NewVec3(-2, 1, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.u, tt.v)
			if !ray.Origin.Equals(core.NewVec3(0, 0, 0)) {
				t.Errorf("Expected rays from the origin, got %v", ray.Origin)
			}
			if ray.Direction.Subtract(tt.direction).Length() > 1e-12 {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
		})
	}
}

func TestCamera_DefaultConfig(t *testing.T) {
	config := DefaultCameraConfig()
	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	// Viewport width is aspect * height
	right := camera.GetRay(1, 0.5).Direction
	expectedX := config.AspectRatio * config.ViewportHeight / 2
	if math.Abs(right.X-expectedX) > 1e-12 {
		t.Errorf("Expected right edge at x=%f, got %f", expectedX, right.X)
	}
	if math.Abs(right.Z+config.FocalLength) > 1e-12 {
		t.Errorf("Expected viewport at z=%f, got %f", -config.FocalLength, right.Z)
	}
}

func TestCamera_InvalidConfig(t *testing.T) {
	configs := []CameraConfig{
		{AspectRatio: 0, ViewportHeight: 2, FocalLength: 1},
		{AspectRatio: 1, ViewportHeight: -2, FocalLength: 1},
		{AspectRatio: 1, ViewportHeight: 2, FocalLength: 0},
		{AspectRatio: math.NaN(), ViewportHeight: 2, FocalLength: 1},
	}

	for _, config := range configs {
		if _, err := NewCamera(config); !errors.Is(err, ErrInvalidCamera) {
			t.Errorf("Config %+v: expected ErrInvalidCamera, got %v", config, err)
		}
	}
}
