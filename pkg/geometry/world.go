package geometry

import (
	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/material"
)

// World is an ordered collection of hittables that is itself hittable
type World struct {
	objects []Hittable
}

// NewWorld creates a world containing the given objects
func NewWorld(objects ...Hittable) *World {
	w := &World{}
	w.Add(objects...)
	return w
}

// Add appends objects to the world. Worlds must not be modified while rendering.
func (w *World) Add(objects ...Hittable) {
	w.objects = append(w.objects, objects...)
}

// Objects returns the objects in insertion order
func (w *World) Objects() []Hittable {
	return w.objects
}

// Len returns the number of objects in the world
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return len(w.objects)
}

// Hit returns the closest intersection among all objects. A nil world is empty.
func (w *World) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if w == nil {
		return nil, false
	}

	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, object := range w.objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
