package material

import (
	"testing"

	"github.com/df07/go-scanline-raytracer/pkg/core"
)

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewColor(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			if metal.Fuzz != tt.expectedFuzz {
				t.Errorf("Expected fuzz %f, got %f", tt.expectedFuzz, metal.Fuzz)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewColor(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewSeededSampler(42)

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))
	hit := &HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.NewVec3(0, -1, 1).Normalize()
	actual := scatter.Scattered.Direction

	tolerance := 1e-10
	if actual.Subtract(expected).Length() > tolerance {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, actual)
	}

	if !scatter.Attenuation.Equals(albedo) {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetal_AbsorbsNonPositiveReflection(t *testing.T) {
	metal := NewMetal(core.NewColor(0.8, 0.8, 0.8), 0.0)
	sampler := core.NewSeededSampler(42)
	hit := &HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	tests := []struct {
		name      string
		direction core.Vec3
	}{
		{"grazing", core.NewVec3(1, 0, 0)},
		{"travelling along the normal", core.NewVec3(0, 0, 1)},
		{"leaving the surface obliquely", core.NewVec3(1, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rayIn := core.NewRay(core.NewVec3(0, 0, 0), tt.direction)
			if _, didScatter := metal.Scatter(rayIn, hit, sampler); didScatter {
				t.Errorf("Expected absorption for direction %v", tt.direction)
			}
		})
	}
}

func TestMetal_FuzzyReflection(t *testing.T) {
	albedo := core.NewColor(0.8, 0.8, 0.8)
	metal := NewMetal(albedo, 0.5)
	sampler := core.NewSeededSampler(42)

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := &HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	ideal := core.NewVec3(0, 0, 1)
	varied := false
	for i := 0; i < 50; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		if !didScatter {
			// Head-on with fuzz 0.5 the perturbed direction always stays above the surface
			t.Fatalf("Metal should scatter on iteration %d", i)
		}

		deviation := scatter.Scattered.Direction.Subtract(ideal).Length()
		if deviation > 0.5+1e-9 {
			t.Fatalf("Perturbation %f exceeds fuzz radius", deviation)
		}
		if deviation > 1e-6 {
			varied = true
		}
	}

	if !varied {
		t.Error("Fuzzy metal should perturb the reflection direction")
	}
}

func TestMaterials_SharedBetweenHits(t *testing.T) {
	shared := NewLambertian(core.NewColor(0.3, 0.3, 0.3))
	a := &HitRecord{Material: shared}
	b := &HitRecord{Material: shared}

	if a.Material != b.Material {
		t.Error("Hit records should reference the same material instance")
	}
}

func TestHitRecord_SetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 0, 1)

	tests := []struct {
		name           string
		direction      core.Vec3
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{"outside", core.NewVec3(0, 0, -1), true, outward},
		{"inside", core.NewVec3(0, 0, 1), false, outward.Negate()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit HitRecord
			hit.SetFaceNormal(core.NewRay(core.Vec3{}, tt.direction), outward)
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if !hit.Normal.Equals(tt.expectedNormal) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}
