package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-raycaster/pkg/core"
	"github.com/df07/go-sphere-raycaster/pkg/material"
)

var (
	// ErrNonPositiveRadius is returned when a sphere is built with radius <= 0
	ErrNonPositiveRadius = errors.New("sphere radius must be strictly positive")
	// ErrNotTransparent is returned when refraction is requested on a sphere
	// whose surface is not Transparent
	ErrNotTransparent = errors.New("sphere surface is not transparent")
)

// Sphere represents a sphere shape. It is immutable after construction.
type Sphere struct {
	Center  core.Vec3
	Radius  float32
	Options material.SurfaceOptions
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float32, options material.SurfaceOptions) (Sphere, error) {
	if !(radius > 0) {
		return Sphere{}, fmt.Errorf("%w: got %g", ErrNonPositiveRadius, radius)
	}
	if err := material.Validate(options.Surface); err != nil {
		return Sphere{}, err
	}
	return Sphere{Center: center, Radius: radius, Options: options}, nil
}

// Intersect returns the distance along the normalized direction to the near
// intersection with the sphere.
//
// Rays starting inside or on the sphere never hit it, and neither do rays
// pointing away from its center. Refracted rays rely on this to leave the
// sphere they were spawned from.
func (s Sphere) Intersect(origin, direction core.Vec3) (float32, bool) {
	if direction.Dot(direction) == 0 {
		return 0, false
	}

	centerOffset := s.Center.Sub(origin)
	normDir := direction.Normalize()
	proj := normDir.Dot(centerOffset)
	perp := centerOffset.Sub(normDir.Mul(proj))
	r2 := s.Radius * s.Radius

	if centerOffset.Dot(centerOffset) <= r2 || proj <= 0 {
		return 0, false
	}

	h2 := perp.Dot(perp)
	if h2 > r2 {
		return 0, false
	}
	return proj - core.Sqrt(r2-h2), true
}

// InwardNormal returns the unit vector from p toward the sphere center
func (s Sphere) InwardNormal(p core.Vec3) core.Vec3 {
	return s.Center.Sub(p).Normalize()
}

// RefractThrough computes the ray leaving a transparent sphere for a ray that
// arrives at ray.Origin on its surface.
//
// The sphere is treated as a thin lens: the ray leaves on the side it entered,
// bent by twice the refraction angle. When the refracted angle has no real
// solution the incoming ray is mirrored about the normal at the entry point.
func (s Sphere) RefractThrough(ray core.Ray) (core.Ray, error) {
	transparent, ok := s.Options.Surface.(material.Transparent)
	if !ok {
		return core.Ray{}, fmt.Errorf("%w: surface is %s", ErrNotTransparent, kindOf(s.Options.Surface))
	}

	n := s.InwardNormal(ray.Origin)
	d := ray.Direction.Normalize()

	cosIncidence := n.Dot(d)
	sinIncidence := core.Sqrt(1 - cosIncidence*cosIncidence)
	sinRefract := sinIncidence * transparent.IndexRatio

	// Total internal reflection
	if sinRefract >= 1 {
		return core.NewRay(ray.Origin, core.Reflect(d, n)), nil
	}

	cosRefract := core.Sqrt(1 - sinRefract*sinRefract)
	reflected := n.Mul(2 * cosIncidence).Sub(d)
	toNormal := unitOrZero(n.Sub(reflected.Mul(cosIncidence)))
	tangent := unitOrZero(d.Sub(n.Mul(cosIncidence)))

	var outDir, outOffset core.Vec3
	denom := cosRefract*cosRefract - sinRefract*sinRefract
	if denom == 0 {
		// tan(2*angle) is infinite, only the tangential components remain
		outDir = toNormal
		outOffset = tangent
	} else {
		tan2 := 2 * sinRefract * cosRefract / denom
		sign := core.Signum(tan2)
		weight := float32(math.Abs(float64(tan2)))
		outDir = reflected.Mul(sign).Add(toNormal.Mul(weight))
		outOffset = n.Mul(sign).Add(tangent.Mul(weight))
	}

	exit := s.Center.Add(outOffset.Normalize().Mul(s.Radius))
	return core.NewRay(exit, outDir), nil
}

func unitOrZero(v core.Vec3) core.Vec3 {
	if v.Dot(v) == 0 {
		return v
	}
	return v.Normalize()
}

func kindOf(s material.Surface) string {
	if s == nil {
		return "<nil>"
	}
	return s.Kind()
}
