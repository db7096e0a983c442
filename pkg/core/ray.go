package core

// Ray represents a ray with an origin and direction.
// Direction need not be normalized.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at distance t along the normalized ray direction
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Normalize().Mul(t))
}
