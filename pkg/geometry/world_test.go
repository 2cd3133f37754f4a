package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/material"
)

func TestWorld_Hit_NearestRegardlessOfOrder(t *testing.T) {
	nearMaterial := material.NewLambertian(core.NewColor(1, 0, 0))
	farMaterial := material.NewLambertian(core.NewColor(0, 0, 1))

	near, err := NewSphere(core.NewVec3(0, 0, -2), 0.75, nearMaterial)
	if err != nil {
		t.Fatal(err)
	}
	// Overlaps the near sphere along the ray's path
	far, err := NewSphere(core.NewVec3(0, 0, -3), 1.0, farMaterial)
	if err != nil {
		t.Fatal(err)
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	orders := map[string]*World{
		"near first": NewWorld(near, far),
		"far first":  NewWorld(far, near),
	}

	for name, world := range orders {
		t.Run(name, func(t *testing.T) {
			hit, isHit := world.Hit(ray, 0.001, math.Inf(1))
			if !isHit {
				t.Fatal("Expected hit, got miss")
			}
			if math.Abs(hit.T-1.25) > 1e-9 {
				t.Errorf("Expected nearest t=1.25, got %f", hit.T)
			}
			if hit.Material != nearMaterial {
				t.Error("Expected hit record from the nearer sphere")
			}
		})
	}
}

func TestWorld_Hit_Empty(t *testing.T) {
	world := NewWorld()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if hit, isHit := world.Hit(ray, 0.001, math.Inf(1)); isHit || hit != nil {
		t.Errorf("Empty world should never be hit, got %v", hit)
	}
	if world.Len() != 0 {
		t.Errorf("Expected empty world, got %d objects", world.Len())
	}
}

func TestWorld_Hit_RespectsInterval(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, -5), 1)
	world := NewWorld(sphere)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if _, isHit := world.Hit(ray, 0.001, 3); isHit {
		t.Error("Expected miss when sphere lies beyond tMax")
	}
}

func TestWorld_Hit_MixedPrimitives(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, -10), 1)
	box, err := NewBox(core.NewVec3(-1, -1, -4), core.NewVec3(1, 1, -3), testMaterial)
	if err != nil {
		t.Fatal(err)
	}

	world := NewWorld()
	world.Add(sphere, box)

	hit, isHit := world.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-3) > 1e-9 {
		t.Errorf("Expected box face at t=3, got %f", hit.T)
	}
	if len(world.Objects()) != 2 {
		t.Errorf("Expected 2 objects, got %d", len(world.Objects()))
	}
}

func TestWorld_NilIsEmpty(t *testing.T) {
	var world *World
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if hit, ok := world.Hit(ray, 0.001, math.Inf(1)); ok || hit != nil {
		t.Errorf("Expected a nil world to miss, got %+v", hit)
	}
	if world.Len() != 0 {
		t.Errorf("Expected a nil world to be empty, got %d objects", world.Len())
	}
}
