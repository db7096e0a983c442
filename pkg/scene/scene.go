package scene

import (
	"errors"

	"github.com/df07/go-sphere-raycaster/pkg/core"
	"github.com/df07/go-sphere-raycaster/pkg/geometry"
	"github.com/df07/go-sphere-raycaster/pkg/lights"
)

// ErrUnknownScene is returned when a scene name has no builder
var ErrUnknownScene = errors.New("unknown scene")

// DefaultShadowBias pulls shadow rays slightly toward the center of the shaded
// sphere so the shading point does not occlude itself. Tunable.
const DefaultShadowBias float32 = 0.001

// Scene contains all the elements needed for rendering.
// It is built once and then only read, so concurrent queries are safe.
type Scene struct {
	CameraConfig geometry.CameraConfig
	Width        int // Image width
	Height       int // Image height

	spheres []geometry.Sphere
	lights  []lights.PointLight
}

// Hit is the result of a nearest-hit query
type Hit struct {
	Index    int     // index of the sphere in insertion order
	Distance float32 // distance along the normalized ray direction
}

// New creates an empty scene with the default camera
func New(width, height int) *Scene {
	return &Scene{
		CameraConfig: geometry.DefaultCameraConfig(),
		Width:        width,
		Height:       height,
		spheres:      make([]geometry.Sphere, 0),
		lights:       make([]lights.PointLight, 0),
	}
}

// AddSphere appends a sphere and returns its index
func (s *Scene) AddSphere(sphere geometry.Sphere) int {
	s.spheres = append(s.spheres, sphere)
	return len(s.spheres) - 1
}

// AddLight appends a light
func (s *Scene) AddLight(light lights.PointLight) {
	s.lights = append(s.lights, light)
}

// Spheres returns the spheres in insertion order. Callers must not modify it.
func (s *Scene) Spheres() []geometry.Sphere {
	return s.spheres
}

// Sphere returns the sphere at index i
func (s *Scene) Sphere(i int) geometry.Sphere {
	return s.spheres[i]
}

// Lights returns the lights in insertion order. Callers must not modify it.
func (s *Scene) Lights() []lights.PointLight {
	return s.lights
}

// Camera builds the camera for the scene's image size
func (s *Scene) Camera() *geometry.Camera {
	return geometry.NewCamera(s.CameraConfig, s.Width, s.Height)
}

// NearestHit scans every sphere and returns the one with the smallest
// intersection distance. On exact ties the lower index wins.
func (s *Scene) NearestHit(origin, direction core.Vec3) (Hit, bool) {
	nearest := Hit{Index: -1}
	found := false

	for i, sphere := range s.spheres {
		dist, ok := sphere.Intersect(origin, direction)
		if !ok {
			continue
		}
		if !found || dist < nearest.Distance {
			nearest = Hit{Index: i, Distance: dist}
			found = true
		}
	}

	return nearest, found
}

// Occluded casts a ray from the light toward point p on sphere shaded and
// reports whether a different sphere is hit first. The ray is biased by
// bias*(center - p) so the shaded sphere wins against itself.
//
// A point exactly on the visibility boundary of a light may resolve to the
// wrong sphere; that imprecision is accepted.
func (s *Scene) Occluded(shaded int, p core.Vec3, light lights.PointLight, bias float32) bool {
	center := s.spheres[shaded].Center
	direction := p.Sub(light.Position).Add(center.Sub(p).Mul(bias))

	hit, ok := s.NearestHit(light.Position, direction)
	return ok && hit.Index != shaded
}

// GetPrimitiveCount returns the number of spheres in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.spheres)
}
