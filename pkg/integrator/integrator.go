package integrator

import (
	"errors"

	"github.com/df07/go-sphere-raycaster/pkg/core"
)

// ErrInvariant is returned when light transport reaches a state the dispatch
// logic assumes impossible, for example refracting through a sphere that is
// not transparent or losing a hit that was just found.
var ErrInvariant = errors.New("light transport invariant violated")

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// ColorAlong returns the color seen along a ray, false when nothing is hit
	ColorAlong(origin, direction core.Vec3) (core.RGB, bool, error)
}

// Config holds the tunables of the ray casting integrator. The colors and the
// shadow bias are empirical values; changing them alters images but not
// the algorithm.
type Config struct {
	MaxDepth      int     // Ceiling on nested colorAlong calls
	MirrorBounces int     // Mirror-to-mirror steps followed before giving up
	ShadowBias    float32 // Fraction of (center - point) added to shadow rays
	SurfaceBonus  float32 // Brightness added to mirror and transparent surfaces

	MirrorMissColor      core.RGB // Mirror reflects straight into empty space
	ChainMissColor       core.RGB // A chain of reflections ends in empty space, or depth ran out
	BounceBudgetColor    core.RGB // Mirror budget spent without reaching a terminal surface
	TransparentMissColor core.RGB // Ray leaving a transparent sphere hits nothing
}

// DefaultConfig returns the reference tuning
func DefaultConfig() Config {
	return Config{
		MaxDepth:             16,
		MirrorBounces:        4,
		ShadowBias:           0.001,
		SurfaceBonus:         255,
		MirrorMissColor:      core.Gray(5),
		ChainMissColor:       core.Gray(15),
		BounceBudgetColor:    core.Gray(10),
		TransparentMissColor: core.Gray(15),
	}
}
