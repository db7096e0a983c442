package scene

import (
	"github.com/df07/go-sphere-raycaster/pkg/core"
	"github.com/df07/go-sphere-raycaster/pkg/lights"
	"github.com/df07/go-sphere-raycaster/pkg/material"
)

// NewGlassScene places three transparent spheres with different index ratios
// in front of a row of colored spheres.
func NewGlassScene() (*Scene, error) {
	s := New(600, 400)
	s.CameraConfig.YRange = 1.0

	glass := func(ratio float32) material.SurfaceOptions {
		return material.NewSurfaceOptions(50, 1, 0, 100, material.Transparent{IndexRatio: ratio})
	}
	opaque := func(r, g, b uint8) material.SurfaceOptions {
		return material.NewSurfaceOptions(0.9, 1.4, 1.0, 30, material.Opaque{Color: core.NewRGB(r, g, b)})
	}

	err := s.addSpheres([]sphereSpec{
		{core.NewVec3(0.6, 0.7, 0), 0.25, glass(1.1)},
		{core.NewVec3(0.6, 0, 0), 0.25, glass(1.3)},
		{core.NewVec3(0.6, -0.7, 0), 0.25, glass(1.6)},
		{core.NewVec3(2.0, 0.9, 0.2), 0.45, opaque(250, 200, 40)},
		{core.NewVec3(2.0, 0, -0.2), 0.45, opaque(60, 220, 90)},
		{core.NewVec3(2.0, -0.9, 0.2), 0.45, opaque(200, 60, 220)},
	})
	if err != nil {
		return nil, err
	}

	s.AddLight(lights.NewPointLight(core.NewVec3(-0.8, 0.5, 1.4), lights.NewLightOptions(70, 100, 5)))

	return s, nil
}
