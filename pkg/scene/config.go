package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-sphere-raycaster/pkg/core"
	"github.com/df07/go-sphere-raycaster/pkg/geometry"
	"github.com/df07/go-sphere-raycaster/pkg/lights"
	"github.com/df07/go-sphere-raycaster/pkg/material"
)

// Default image size for scene files that omit it
const (
	DefaultWidth  = 800
	DefaultHeight = 800
)

// Config is the JSON form of a scene. Vectors are [x, y, z] arrays.
type Config struct {
	Width   int                    `json:"width,omitempty"`
	Height  int                    `json:"height,omitempty"`
	Camera  *geometry.CameraConfig `json:"camera,omitempty"`
	Spheres []SphereCfg            `json:"spheres"`
	Lights  []LightCfg             `json:"lights"`
}

// SphereCfg describes one sphere. Surface is "opaque", "mirror" or "transparent".
type SphereCfg struct {
	Center    core.Vec3 `json:"center"`
	Radius    float32   `json:"radius"`
	Specular  float32   `json:"specular"`
	Diffuse   float32   `json:"diffuse"`
	Ambient   float32   `json:"ambient"`
	Shininess float32   `json:"shininess"`
	Surface   string    `json:"surface"`

	Color      [3]uint8 `json:"color,omitempty"`      // opaque only
	IndexRatio float32  `json:"indexRatio,omitempty"` // transparent only
}

// LightCfg describes one point light
type LightCfg struct {
	Position core.Vec3 `json:"position"`
	Specular float32   `json:"specular"`
	Diffuse  float32   `json:"diffuse"`
	Ambient  float32   `json:"ambient"`
}

// LoadConfig reads a JSON scene file
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes a JSON scene, rejecting unknown fields
func ParseConfig(r io.Reader) (*Config, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	return &cfg, nil
}

// surface converts the surface name and its parameters to a variant
func (c SphereCfg) surface() (material.Surface, error) {
	switch c.Surface {
	case "opaque", "solid":
		return material.Opaque{Color: core.NewRGB(c.Color[0], c.Color[1], c.Color[2])}, nil
	case "mirror":
		return material.Mirror{}, nil
	case "transparent":
		return material.Transparent{IndexRatio: c.IndexRatio}, nil
	default:
		return nil, fmt.Errorf("%w: %q", material.ErrUnknownSurface, c.Surface)
	}
}

// FromConfig builds a scene from its JSON form
func FromConfig(cfg *Config) (*Scene, error) {
	width, height := cfg.Width, cfg.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	s := New(width, height)
	if cfg.Camera != nil {
		s.CameraConfig = geometry.MergeCameraConfig(s.CameraConfig, *cfg.Camera)
	}

	for i, sc := range cfg.Spheres {
		surface, err := sc.surface()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		options := material.NewSurfaceOptions(sc.Specular, sc.Diffuse, sc.Ambient, sc.Shininess, surface)
		sphere, err := geometry.NewSphere(sc.Center, sc.Radius, options)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		s.AddSphere(sphere)
	}

	for _, lc := range cfg.Lights {
		s.AddLight(lights.NewPointLight(lc.Position, lights.NewLightOptions(lc.Specular, lc.Diffuse, lc.Ambient)))
	}

	return s, nil
}

// LoadScene reads and builds a JSON scene file
func LoadScene(path string) (*Scene, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return FromConfig(cfg)
}
