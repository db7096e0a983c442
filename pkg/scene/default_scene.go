package scene

import (
	"fmt"

	"github.com/df07/go-sphere-raycaster/pkg/core"
	"github.com/df07/go-sphere-raycaster/pkg/geometry"
	"github.com/df07/go-sphere-raycaster/pkg/lights"
	"github.com/df07/go-sphere-raycaster/pkg/material"
)

// sphereSpec is a sphere before validation
type sphereSpec struct {
	center  core.Vec3
	radius  float32
	options material.SurfaceOptions
}

func (s *Scene) addSpheres(specs []sphereSpec) error {
	for i, spec := range specs {
		sphere, err := geometry.NewSphere(spec.center, spec.radius, spec.options)
		if err != nil {
			return fmt.Errorf("sphere %d: %w", i, err)
		}
		s.AddSphere(sphere)
	}
	return nil
}

// NewDefaultScene creates the reference scene: two colored spheres, two
// mirrors and a small glass sphere close to the camera, lit by two lights.
//
// Surface coefficients are specular, diffuse, ambient, shininess.
// Diffuse 1.0 is neutral, ambient 0.0 keeps a surface black without light,
// larger shininess gives tighter highlights.
func NewDefaultScene() (*Scene, error) {
	s := New(800, 800)

	cyan := material.Opaque{Color: core.NewRGB(77, 248, 255)}
	green := material.Opaque{Color: core.NewRGB(0, 255, 0)}

	err := s.addSpheres([]sphereSpec{
		{core.NewVec3(1.0, 0.3, 0.5), 0.7, material.NewSurfaceOptions(1.3, 1.5, 1.0, 100, cyan)},
		{core.NewVec3(1.0, -0.5, 0.25), 0.5, material.NewSurfaceOptions(0.8, 1.5, 1.0, 2, green)},
		{core.NewVec3(1.5, 0, -0.7), 0.5, material.NewSurfaceOptions(50, 1, 0, 100, material.Mirror{})},
		{core.NewVec3(1.2, -1.7, -1.0), 0.8, material.NewSurfaceOptions(50, 1, 0, 100, material.Mirror{})},
		{core.NewVec3(-0.1, 0.4, 0.2), 0.2, material.NewSurfaceOptions(50, 1, 0, 100, material.Transparent{IndexRatio: 1.3})},
	})
	if err != nil {
		return nil, err
	}

	s.AddLight(lights.NewPointLight(core.NewVec3(-0.6, 0.8, 1.3), lights.NewLightOptions(70, 100, 5)))
	s.AddLight(lights.NewPointLight(core.NewVec3(-1.0, -0.7, 1.0), lights.NewLightOptions(60, 70, 5)))

	return s, nil
}
