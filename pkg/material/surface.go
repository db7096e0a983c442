package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-sphere-raycaster/pkg/core"
)

// ErrUnknownSurface is returned when a Surface value is not one of the
// variants defined in this package (including a nil Surface).
var ErrUnknownSurface = errors.New("unknown surface variant")

// Surface is the closed set of surface variants: Opaque, Mirror and Transparent.
// The unexported marker method keeps other packages from adding variants, so a
// type switch over the three types below is exhaustive.
type Surface interface {
	surface()
	// Kind returns the variant name used in logs and scene files
	Kind() string
}

// Opaque is a colored surface that terminates light transport
type Opaque struct {
	Color core.RGB
}

// Mirror is an ideal reflector
type Mirror struct{}

// Transparent is a refracting surface. IndexRatio is the ratio of refractive
// indices applied to the sine of the incidence angle.
type Transparent struct {
	IndexRatio float32
}

func (Opaque) surface()      {}
func (Mirror) surface()      {}
func (Transparent) surface() {}

func (Opaque) Kind() string      { return "opaque" }
func (Mirror) Kind() string      { return "mirror" }
func (Transparent) Kind() string { return "transparent" }

// Validate reports ErrUnknownSurface for nil or foreign surfaces
func Validate(s Surface) error {
	switch s.(type) {
	case Opaque, Mirror, Transparent:
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnknownSurface, s)
	}
}

// SurfaceOptions holds the reflectance coefficients of a sphere and its variant.
// Coefficients are non-negative by convention; nothing enforces it.
type SurfaceOptions struct {
	Specular  float32 // specular reflectance
	Diffuse   float32 // diffuse reflectance, only used by Opaque surfaces
	Ambient   float32 // ambient reflectance
	Shininess float32 // specular exponent
	Surface   Surface
}

// NewSurfaceOptions creates surface options
func NewSurfaceOptions(specular, diffuse, ambient, shininess float32, surface Surface) SurfaceOptions {
	return SurfaceOptions{
		Specular:  specular,
		Diffuse:   diffuse,
		Ambient:   ambient,
		Shininess: shininess,
		Surface:   surface,
	}
}

// IsOpaque reports whether the options describe an Opaque surface
func (o SurfaceOptions) IsOpaque() bool {
	_, ok := o.Surface.(Opaque)
	return ok
}
