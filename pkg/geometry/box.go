package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/material"
)

// Box represents an axis-aligned box between two corners
type Box struct {
	Min      core.Point3       // Corner with the smallest coordinates
	Max      core.Point3       // Corner with the largest coordinates
	Material material.Material // Material for all faces
}

// NewBox creates a new axis-aligned box spanning min to max
func NewBox(min, max core.Point3, mat material.Material) (*Box, error) {
	if !(min.X < max.X && min.Y < max.Y && min.Z < max.Z) {
		return nil, fmt.Errorf("%w: min %v, max %v", ErrInvalidBounds, min, max)
	}
	if mat == nil {
		return nil, ErrNilMaterial
	}
	return &Box{Min: min, Max: max, Material: mat}, nil
}

// NewBoxFromCenter creates a box from its center and half-extents along each axis
func NewBoxFromCenter(center, halfSize core.Vec3, mat material.Material) (*Box, error) {
	return NewBox(center.Subtract(halfSize), center.Add(halfSize), mat)
}

// axis returns component i (0=X, 1=Y, 2=Z) of v
func axis(v core.Vec3, i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// axisNormal returns the unit vector along axis i scaled by sign
func axisNormal(i int, sign float64) core.Vec3 {
	switch i {
	case 0:
		return core.NewVec3(sign, 0, 0)
	case 1:
		return core.NewVec3(0, sign, 0)
	default:
		return core.NewVec3(0, 0, sign)
	}
}

// Hit tests the ray against the three slabs bounding the box
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	tNear := math.Inf(-1)
	tFar := math.Inf(1)
	nearAxis, farAxis := -1, -1

	for i := 0; i < 3; i++ {
		origin := axis(ray.Origin, i)
		dir := axis(ray.Direction, i)
		lo, hi := axis(b.Min, i), axis(b.Max, i)

		if dir == 0 {
			// Parallel to this slab: inside it everywhere or nowhere
			if origin < lo || origin > hi {
				return nil, false
			}
			continue
		}

		t0 := (lo - origin) / dir
		t1 := (hi - origin) / dir
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		if t0 > tNear {
			tNear = t0
			nearAxis = i
		}
		if t1 < tFar {
			tFar = t1
			farAxis = i
		}
		if tNear > tFar {
			return nil, false
		}
	}

	// A zero direction never reaches any face
	if nearAxis < 0 || farAxis < 0 {
		return nil, false
	}

	// Entering face first, exiting face when the ray starts inside the box
	var root float64
	var outwardNormal core.Vec3
	switch {
	case tNear >= tMin && tNear <= tMax:
		root = tNear
		outwardNormal = axisNormal(nearAxis, -math.Copysign(1, axis(ray.Direction, nearAxis)))
	case tFar >= tMin && tFar <= tMax:
		root = tFar
		outwardNormal = axisNormal(farAxis, math.Copysign(1, axis(ray.Direction, farAxis)))
	default:
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: b.Material,
	}
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}
