package integrator

import (
	"fmt"

	"github.com/df07/go-sphere-raycaster/pkg/core"
	"github.com/df07/go-sphere-raycaster/pkg/geometry"
	"github.com/df07/go-sphere-raycaster/pkg/material"
	"github.com/df07/go-sphere-raycaster/pkg/scene"
)

// RayCastingIntegrator resolves the color of a ray by local Phong-like
// shading, following mirrors and transparent spheres recursively.
// It only reads the scene and is safe for concurrent use.
type RayCastingIntegrator struct {
	scene  *scene.Scene
	config Config
}

// NewRayCastingIntegrator creates a new integrator. A non-positive MaxDepth
// is replaced by the default.
func NewRayCastingIntegrator(s *scene.Scene, config Config) *RayCastingIntegrator {
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultConfig().MaxDepth
	}
	return &RayCastingIntegrator{scene: s, config: config}
}

// Config returns the integrator configuration
func (rc *RayCastingIntegrator) Config() Config {
	return rc.config
}

// ColorAlong returns the color seen from origin along direction, or false when
// the ray hits no sphere.
func (rc *RayCastingIntegrator) ColorAlong(origin, direction core.Vec3) (core.RGB, bool, error) {
	return rc.colorAlong(origin, direction, rc.config.MaxDepth)
}

func (rc *RayCastingIntegrator) colorAlong(origin, direction core.Vec3, depth int) (core.RGB, bool, error) {
	hit, ok := rc.scene.NearestHit(origin, direction)
	if !ok {
		return core.RGB{}, false, nil
	}

	// Out of depth: treat the rest of the path as an endless chain of reflections
	if depth <= 0 {
		return rc.config.ChainMissColor, true, nil
	}

	sphere := rc.scene.Sphere(hit.Index)
	p := core.NewRay(origin, direction).At(hit.Distance)
	brightness := rc.Brightness(hit.Index, p, direction)

	switch surface := sphere.Options.Surface.(type) {
	case material.Opaque:
		return surface.Color.Scale(brightness), true, nil

	case material.Mirror:
		seen, err := rc.mirrorColor(sphere, p, direction, depth)
		if err != nil {
			return core.RGB{}, false, err
		}
		return seen.Scale(brightness + rc.config.SurfaceBonus), true, nil

	case material.Transparent:
		seen, err := rc.transparentColor(sphere, p, direction, depth)
		if err != nil {
			return core.RGB{}, false, err
		}
		return seen.Scale(brightness + rc.config.SurfaceBonus), true, nil

	default:
		return core.RGB{}, false, fmt.Errorf("%w: sphere %d: %w", ErrInvariant, hit.Index, material.ErrUnknownSurface)
	}
}

// mirrorColor follows the reflection of dir at p on mirror through at most
// MirrorBounces mirror steps. Passing through a transparent sphere on the way
// does not use up a step.
func (rc *RayCastingIntegrator) mirrorColor(mirror geometry.Sphere, p, dir core.Vec3, depth int) (core.RGB, error) {
	point := p
	next := core.Reflect(dir.Normalize(), mirror.InwardNormal(p))
	first := true
	bounces, passes := 0, 0

	for bounces < rc.config.MirrorBounces {
		hit, ok := rc.scene.NearestHit(point, next)
		if !ok {
			if first {
				return rc.config.MirrorMissColor, nil
			}
			return rc.config.ChainMissColor, nil
		}
		first = false

		target := rc.scene.Sphere(hit.Index)
		switch target.Options.Surface.(type) {
		case material.Opaque:
			seen, ok, err := rc.colorAlong(point, next, depth-1)
			if err != nil {
				return core.RGB{}, err
			}
			if !ok {
				return core.RGB{}, fmt.Errorf("%w: opaque sphere %d vanished on re-query", ErrInvariant, hit.Index)
			}
			return seen, nil

		case material.Mirror:
			point = core.NewRay(point, next).At(hit.Distance)
			next = core.Reflect(next.Normalize(), target.InwardNormal(point))
			bounces++

		case material.Transparent:
			passes++
			if passes > depth {
				return rc.config.ChainMissColor, nil
			}
			point = core.NewRay(point, next).At(hit.Distance)
			out, err := target.RefractThrough(core.NewRay(point, next))
			if err != nil {
				return core.RGB{}, fmt.Errorf("%w: sphere %d: %w", ErrInvariant, hit.Index, err)
			}
			point, next = out.Origin, out.Direction

		default:
			return core.RGB{}, fmt.Errorf("%w: sphere %d: %w", ErrInvariant, hit.Index, material.ErrUnknownSurface)
		}
	}

	return rc.config.BounceBudgetColor, nil
}

// transparentColor returns the color seen through a transparent sphere
func (rc *RayCastingIntegrator) transparentColor(sphere geometry.Sphere, p, dir core.Vec3, depth int) (core.RGB, error) {
	out, err := sphere.RefractThrough(core.NewRay(p, dir))
	if err != nil {
		return core.RGB{}, fmt.Errorf("%w: %w", ErrInvariant, err)
	}

	seen, ok, err := rc.colorAlong(out.Origin, out.Direction, depth-1)
	if err != nil {
		return core.RGB{}, err
	}
	if !ok {
		return rc.config.TransparentMissColor, nil
	}
	return seen, nil
}
