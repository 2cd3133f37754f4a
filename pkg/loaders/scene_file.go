package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
	"github.com/df07/go-scanline-raytracer/pkg/material"
	"github.com/df07/go-scanline-raytracer/pkg/renderer"
	"github.com/df07/go-scanline-raytracer/pkg/scene"
)

const (
	defaultWidth  = 720
	maxPathLength = 512
)

// SceneFile is the JSON document describing a scene
type SceneFile struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Group       string                  `json:"group"`
	Width       int                     `json:"width"`
	Height      int                     `json:"height"`
	Camera      *CameraSpec             `json:"camera"`
	Sampling    *SamplingSpec           `json:"sampling"`
	Materials   map[string]MaterialSpec `json:"materials"`
	Objects     []ObjectSpec            `json:"objects"`
}

// CameraSpec overrides the default camera. Zero fields keep their defaults.
type CameraSpec struct {
	AspectRatio    float64 `json:"aspectRatio"`
	ViewportHeight float64 `json:"viewportHeight"`
	FocalLength    float64 `json:"focalLength"`
}

// SamplingSpec overrides the default sampling settings
type SamplingSpec struct {
	SamplesPerPixel *int `json:"samplesPerPixel"`
	MaxDepth        *int `json:"maxDepth"`
}

// MaterialSpec describes a named material shared by any number of objects
type MaterialSpec struct {
	Type   string    `json:"type"` // "lambertian" or "metal"
	Albedo []float64 `json:"albedo"`
	Fuzz   float64   `json:"fuzz"`
}

// ObjectSpec describes a single primitive
type ObjectSpec struct {
	Type     string    `json:"type"` // "sphere" or "box"
	Material string    `json:"material"`
	Center   []float64 `json:"center"`
	Radius   float64   `json:"radius"`
	Min      []float64 `json:"min"`
	Max      []float64 `json:"max"`
}

// LoadSceneFile loads and builds a scene from a JSON file
func LoadSceneFile(filename string) (*scene.Scene, error) {
	if err := ValidateScenePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return s, nil
}

// ParseScene decodes a JSON scene document and builds the scene it describes
func ParseScene(reader io.Reader) (*scene.Scene, error) {
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()

	var doc SceneFile
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSceneFile, err)
	}
	return doc.Build()
}

// Build converts the document into a renderable scene
func (doc *SceneFile) Build() (*scene.Scene, error) {
	materials := make(map[string]material.Material, len(doc.Materials))
	for name, spec := range doc.Materials {
		mat, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	world := geometry.NewWorld()
	for i, spec := range doc.Objects {
		mat, ok := materials[spec.Material]
		if !ok {
			return nil, fmt.Errorf("object %d: %w: %q", i, ErrUnknownMaterial, spec.Material)
		}
		object, err := spec.build(mat)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		world.Add(object)
	}

	s := &scene.Scene{
		Name:           doc.Name,
		Description:    doc.Description,
		CameraConfig:   doc.cameraConfig(),
		World:          world,
		SamplingConfig: doc.samplingConfig(),
	}

	width := doc.Width
	if width <= 0 {
		width = defaultWidth
	}
	height := doc.Height
	if height <= 0 {
		height = scene.HeightForWidth(width, s.CameraConfig.AspectRatio)
	}
	s.Width = width
	s.Height = height

	return s, nil
}

func (doc *SceneFile) cameraConfig() renderer.CameraConfig {
	config := renderer.DefaultCameraConfig()

	// Explicit dimensions define the aspect ratio unless the camera sets one
	if doc.Width > 0 && doc.Height > 0 {
		config.AspectRatio = float64(doc.Width) / float64(doc.Height)
	}

	if doc.Camera != nil {
		if doc.Camera.AspectRatio != 0 {
			config.AspectRatio = doc.Camera.AspectRatio
		}
		if doc.Camera.ViewportHeight != 0 {
			config.ViewportHeight = doc.Camera.ViewportHeight
		}
		if doc.Camera.FocalLength != 0 {
			config.FocalLength = doc.Camera.FocalLength
		}
	}
	return config
}

func (doc *SceneFile) samplingConfig() renderer.SamplingConfig {
	config := renderer.DefaultSamplingConfig()
	if doc.Sampling != nil {
		if doc.Sampling.SamplesPerPixel != nil {
			config.SamplesPerPixel = *doc.Sampling.SamplesPerPixel
		}
		if doc.Sampling.MaxDepth != nil {
			config.MaxDepth = *doc.Sampling.MaxDepth
		}
	}
	return config
}

func (spec MaterialSpec) build() (material.Material, error) {
	albedo, err := toVec3("albedo", spec.Albedo)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(spec.Type) {
	case "lambertian", "diffuse":
		return material.NewLambertian(albedo), nil
	case "metal":
		return material.NewMetal(albedo, spec.Fuzz), nil
	default:
		return nil, fmt.Errorf("%w: unsupported material type %q", ErrInvalidSceneFile, spec.Type)
	}
}

func (spec ObjectSpec) build(mat material.Material) (geometry.Hittable, error) {
	switch strings.ToLower(spec.Type) {
	case "sphere":
		center, err := toVec3("center", spec.Center)
		if err != nil {
			return nil, err
		}
		return geometry.NewSphere(center, spec.Radius, mat)
	case "box":
		minCorner, err := toVec3("min", spec.Min)
		if err != nil {
			return nil, err
		}
		maxCorner, err := toVec3("max", spec.Max)
		if err != nil {
			return nil, err
		}
		return geometry.NewBox(minCorner, maxCorner, mat)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownObjectType, spec.Type)
	}
}

func toVec3(field string, values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("%w: %s needs 3 components, got %d", ErrInvalidSceneFile, field, len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

// ValidateScenePath rejects paths that cannot name a scene file
func ValidateScenePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("%w: filename cannot be empty", ErrInvalidPath)
	}
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("%w: null bytes not allowed", ErrInvalidPath)
	}

	cleanPath := filepath.Clean(filename)
	if len(cleanPath) > maxPathLength {
		return fmt.Errorf("%w: maximum %d characters allowed", ErrInvalidPath, maxPathLength)
	}
	if !strings.EqualFold(filepath.Ext(cleanPath), ".json") {
		return fmt.Errorf("%w: only .json files are allowed", ErrInvalidPath)
	}
	return nil
}

// ResolveScenePath joins name onto dir, refusing names that escape dir
func ResolveScenePath(dir, name string) (string, error) {
	if err := ValidateScenePath(name); err != nil {
		return "", err
	}
	if filepath.Base(name) != name {
		return "", fmt.Errorf("%w: scene name must not contain directories", ErrInvalidPath)
	}
	return filepath.Join(dir, name), nil
}
