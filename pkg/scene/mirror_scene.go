package scene

import (
	"github.com/df07/go-sphere-raycaster/pkg/core"
	"github.com/df07/go-sphere-raycaster/pkg/lights"
	"github.com/df07/go-sphere-raycaster/pkg/material"
)

// NewMirrorScene creates a ring of mirrors around a red and a blue sphere.
// Reflections chain between the mirrors, so it exercises the bounce budget.
func NewMirrorScene() (*Scene, error) {
	s := New(600, 600)
	s.CameraConfig.Origin = core.NewVec3(-1.5, 0, 0.3)

	mirror := material.NewSurfaceOptions(50, 1, 0, 100, material.Mirror{})
	red := material.NewSurfaceOptions(1.0, 1.2, 1.0, 40, material.Opaque{Color: core.NewRGB(230, 40, 40)})
	blue := material.NewSurfaceOptions(0.6, 1.2, 1.0, 8, material.Opaque{Color: core.NewRGB(40, 80, 230)})

	err := s.addSpheres([]sphereSpec{
		{core.NewVec3(1.6, 0.9, 0), 0.6, mirror},
		{core.NewVec3(1.6, -0.9, 0), 0.6, mirror},
		{core.NewVec3(2.4, 0, 0.9), 0.6, mirror},
		{core.NewVec3(2.4, 0, -0.9), 0.6, mirror},
		{core.NewVec3(1.2, 0, 0), 0.3, red},
		{core.NewVec3(3.2, 0, 0), 0.4, blue},
	})
	if err != nil {
		return nil, err
	}

	s.AddLight(lights.NewPointLight(core.NewVec3(-0.5, 1.2, 1.5), lights.NewLightOptions(60, 90, 6)))
	s.AddLight(lights.NewPointLight(core.NewVec3(0.5, -1.5, -1.0), lights.NewLightOptions(30, 50, 4)))

	return s, nil
}
