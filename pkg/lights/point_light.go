package lights

import "github.com/df07/go-sphere-raycaster/pkg/core"

// LightOptions holds the intensities a light contributes to each shading term
type LightOptions struct {
	Specular float32
	Diffuse  float32
	Ambient  float32
}

// NewLightOptions creates light options
func NewLightOptions(specular, diffuse, ambient float32) LightOptions {
	return LightOptions{Specular: specular, Diffuse: diffuse, Ambient: ambient}
}

// PointLight is an infinitesimal light source at a fixed position
type PointLight struct {
	Position core.Vec3
	Options  LightOptions
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, options LightOptions) PointLight {
	return PointLight{Position: position, Options: options}
}

// AmbientOnly reports whether the light contributes nothing but ambient light
func (l PointLight) AmbientOnly() bool {
	return l.Options.Diffuse == 0 && l.Options.Specular == 0
}
