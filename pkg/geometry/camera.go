package geometry

import "github.com/df07/go-sphere-raycaster/pkg/core"

// CameraConfig describes the fixed viewpoint and field of view.
//
// Pixel (x, y) of a W x H image looks along
// Forward + Horizontal*(XRange - 2*XRange*x/W) + Vertical*(YRange - 2*YRange*y/H).
type CameraConfig struct {
	Origin     core.Vec3 `json:"origin"`
	Forward    core.Vec3 `json:"forward"`
	Horizontal core.Vec3 `json:"horizontal"` // axis swept by image x, from +XRange at x=0
	Vertical   core.Vec3 `json:"vertical"`   // axis swept by image y, from +YRange at y=0
	XRange     float32   `json:"xRange"`
	YRange     float32   `json:"yRange"`
}

// DefaultCameraConfig looks down +X from (-1, 0, 0) with a ±1.5 field on Y and Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Origin:     core.NewVec3(-1, 0, 0),
		Forward:    core.NewVec3(1, 0, 0),
		Horizontal: core.NewVec3(0, 1, 0),
		Vertical:   core.NewVec3(0, 0, 1),
		XRange:     1.5,
		YRange:     1.5,
	}
}

// MergeCameraConfig fills zero fields of override from base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}
	if override.Origin != zero {
		result.Origin = override.Origin
	}
	if override.Forward != zero {
		result.Forward = override.Forward
	}
	if override.Horizontal != zero {
		result.Horizontal = override.Horizontal
	}
	if override.Vertical != zero {
		result.Vertical = override.Vertical
	}
	if override.XRange != 0 {
		result.XRange = override.XRange
	}
	if override.YRange != 0 {
		result.YRange = override.YRange
	}
	return result
}

// Camera generates one ray per pixel
type Camera struct {
	config        CameraConfig
	width, height int
}

// NewCamera creates a camera for a width x height image
func NewCamera(config CameraConfig, width, height int) *Camera {
	return &Camera{config: config, width: width, height: height}
}

// GetRay returns the ray through pixel (x, y)
func (c *Camera) GetRay(x, y int) core.Ray {
	cfg := c.config
	u := cfg.XRange - 2*cfg.XRange*float32(x)/float32(c.width)
	v := cfg.YRange - 2*cfg.YRange*float32(y)/float32(c.height)
	direction := cfg.Forward.
		Add(cfg.Horizontal.Mul(u)).
		Add(cfg.Vertical.Mul(v))
	return core.NewRay(cfg.Origin, direction)
}

// Size returns the image dimensions the camera was built for
func (c *Camera) Size() (width, height int) {
	return c.width, c.height
}
