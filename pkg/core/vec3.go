package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 represents a 3D vector in single precision.
// Add, Sub, Mul, Dot, Cross, Len and Normalize come from mgl32.
// Normalizing a zero vector yields NaN components, so callers must not do it.
type Vec3 = mgl32.Vec3

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// Reflect mirrors d about the line spanned by unit vector n.
// The sign of n does not matter.
func Reflect(d, n Vec3) Vec3 {
	return d.Sub(n.Mul(2 * d.Dot(n)))
}

// Signum returns -1 for negative x and 1 otherwise, including for zero.
func Signum(x float32) float32 {
	if math.Signbit(float64(x)) {
		return -1
	}
	return 1
}

// Pow raises base to exp in single precision
func Pow(base, exp float32) float32 {
	return float32(math.Pow(float64(base), float64(exp)))
}

// Sqrt returns the square root, clamping tiny negative rounding errors to zero
func Sqrt(x float32) float32 {
	if x <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(x)))
}
