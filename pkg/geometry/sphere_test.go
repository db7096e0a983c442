package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-sphere-raycaster/pkg/core"
	"github.com/df07/go-sphere-raycaster/pkg/material"
)

func opaqueOptions() material.SurfaceOptions {
	return material.NewSurfaceOptions(1, 1, 1, 10, material.Opaque{Color: core.NewRGB(255, 0, 0)})
}

func glassOptions(ratio float32) material.SurfaceOptions {
	return material.NewSurfaceOptions(50, 1, 0, 100, material.Transparent{IndexRatio: ratio})
}

func mustSphere(t *testing.T, center core.Vec3, radius float32, options material.SurfaceOptions) Sphere {
	t.Helper()
	s, err := NewSphere(center, radius, options)
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}
	return s
}

func assertVecNear(t *testing.T, name string, got, expected core.Vec3, tol float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		if math.Abs(float64(got[i]-expected[i])) > tol {
			t.Errorf("%s: expected %v, got %v", name, expected, got)
			return
		}
	}
}

func TestNewSphere_RadiusValidation(t *testing.T) {
	tests := []struct {
		name    string
		radius  float32
		wantErr bool
	}{
		{"positive", 0.5, false},
		{"tiny positive", 1e-6, false},
		{"zero", 0, true},
		{"negative", -0.24, true},
		{"NaN", float32(math.NaN()), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSphere(core.NewVec3(0, 0, 0), tt.radius, opaqueOptions())
			if tt.wantErr {
				if !errors.Is(err, ErrNonPositiveRadius) {
					t.Errorf("expected ErrNonPositiveRadius, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Radius != tt.radius {
				t.Errorf("expected radius %f, got %f", tt.radius, s.Radius)
			}
		})
	}
}

func TestNewSphere_RejectsUnknownSurface(t *testing.T) {
	_, err := NewSphere(core.NewVec3(0, 0, 0), 1, material.NewSurfaceOptions(1, 1, 1, 1, nil))
	if !errors.Is(err, material.ErrUnknownSurface) {
		t.Errorf("expected ErrUnknownSurface, got %v", err)
	}
}

func TestSphere_Intersect(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(5, 0, 0), 1, opaqueOptions())

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expectHit bool
		expectedT float32
	}{
		{"aimed at center", core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), true, 4},
		{"unnormalized direction", core.NewVec3(0, 0, 0), core.NewVec3(7, 0, 0), true, 4},
		{"glancing", core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), true, 5},
		{"miss above", core.NewVec3(0, 1.5, 0), core.NewVec3(1, 0, 0), false, 0},
		{"sphere behind ray", core.NewVec3(0, 0, 0), core.NewVec3(-1, 0, 0), false, 0},
		{"origin inside", core.NewVec3(5.2, 0.1, 0), core.NewVec3(1, 0, 0), false, 0},
		{"origin at center", core.NewVec3(5, 0, 0), core.NewVec3(0, 1, 0), false, 0},
		{"origin on surface", core.NewVec3(4, 0, 0), core.NewVec3(1, 0, 0), false, 0},
		{"zero direction", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 0), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, hit := sphere.Intersect(tt.origin, tt.direction)
			if hit != tt.expectHit {
				t.Fatalf("expected hit=%t, got hit=%t (t=%f)", tt.expectHit, hit, dist)
			}
			if hit && math.Abs(float64(dist-tt.expectedT)) > 1e-5 {
				t.Errorf("expected t=%f, got t=%f", tt.expectedT, dist)
			}
		})
	}
}

func TestSphere_Intersect_InsideNeverHits(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, 0), 2, opaqueOptions())
	directions := []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 1, 0), core.NewVec3(0, 0, -1),
		core.NewVec3(1, 1, 1), core.NewVec3(-0.3, 0.2, 0.9),
	}
	origins := []core.Vec3{
		core.NewVec3(0, 0, 0), core.NewVec3(1.9, 0, 0), core.NewVec3(-1, 1, 0.5),
	}

	for _, o := range origins {
		for _, d := range directions {
			if dist, hit := sphere.Intersect(o, d); hit {
				t.Errorf("ray from inside %v along %v reported hit at %f", o, d, dist)
			}
		}
	}
}

func TestSphere_RefractThrough_NormalIncidence(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, 0), 1, glassOptions(1.3))
	entry := core.NewRay(core.NewVec3(-1, 0, 0), core.NewVec3(2, 0, 0))

	out, err := sphere.RefractThrough(entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertVecNear(t, "direction", out.Direction.Normalize(), core.NewVec3(1, 0, 0), 1e-6)
	assertVecNear(t, "exit point", out.Origin, core.NewVec3(1, 0, 0), 1e-6)
}

func TestSphere_RefractThrough_TotalInternalReflection(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, 0), 1, glassOptions(1.3))
	entryPoint := core.NewVec3(-0.6, 0.8, 0)
	incoming := core.NewVec3(1, 0, 0)

	out, err := sphere.RefractThrough(core.NewRay(entryPoint, incoming))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Origin != entryPoint {
		t.Errorf("reflection should leave from the entry point, got %v", out.Origin)
	}
	assertVecNear(t, "reflected direction", out.Direction, core.NewVec3(0.28, 0.96, 0), 1e-5)

	if math.Abs(float64(out.Direction.Len()-1)) > 1e-5 {
		t.Errorf("reflected direction should keep unit length, got %f", out.Direction.Len())
	}

	n := sphere.InwardNormal(entryPoint)
	incidence := math.Abs(float64(incoming.Dot(n)))
	reflection := math.Abs(float64(out.Direction.Normalize().Dot(n)))
	if math.Abs(incidence-reflection) > 1e-5 {
		t.Errorf("angle of reflection differs from angle of incidence: cos %f vs %f", reflection, incidence)
	}
}

func TestSphere_RefractThrough_Oblique(t *testing.T) {
	tests := []struct {
		name         string
		center       core.Vec3
		radius       float32
		ratio        float32
		entryDir     core.Vec3 // unit offset of the entry point from the center
		incoming     core.Vec3
		expectedExit core.Vec3
		expectedDir  core.Vec3
	}{
		{
			name:   "small glass sphere, 0.3 rad off axis",
			center: core.NewVec3(-0.1, 0.4, 0.2), radius: 0.2, ratio: 1.3,
			entryDir:     core.NewVec3(-0.9553365, 0.2955202, 0),
			incoming:     core.NewVec3(1, 0, 0),
			expectedExit: core.NewVec3(0.0766, 0.49388, 0.2),
			expectedDir:  core.NewVec3(1.39364, 0.26605, 0),
		},
		{
			name:   "ratio below one bends toward the axis",
			center: core.NewVec3(0, 0, 0), radius: 1, ratio: 0.5,
			entryDir:     core.NewVec3(-0.6, 0.8, 0),
			incoming:     core.NewVec3(1, 0, 0),
			expectedExit: core.NewVec3(0.99457, -0.10407, 0),
			expectedDir:  core.NewVec3(0.75512, -1.26191, 0),
		},
		{
			name:   "refraction past 45 degrees flips the sign",
			center: core.NewVec3(0, 0, 0), radius: 1, ratio: 1.3,
			entryDir:     core.NewVec3(-0.8, 0.6, 0),
			incoming:     core.NewVec3(1, 0, 0),
			expectedExit: core.NewVec3(0.41229, 0.91105, 0),
			expectedDir:  core.NewVec3(4.04273, 2.2208, 0),
		},
		{
			name:   "offset along z",
			center: core.NewVec3(0, 0, 0), radius: 1, ratio: 0.9,
			entryDir:     core.NewVec3(-0.8, 0, 0.6),
			incoming:     core.NewVec3(1, 0, 0),
			expectedExit: core.NewVec3(0.87884, 0, 0.47712),
			expectedDir:  core.NewVec3(2.37366, 0, -0.34935),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := mustSphere(t, tt.center, tt.radius, glassOptions(tt.ratio))
			entryPoint := tt.center.Add(tt.entryDir.Mul(tt.radius))

			out, err := sphere.RefractThrough(core.NewRay(entryPoint, tt.incoming))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			assertVecNear(t, "exit point", out.Origin, tt.expectedExit, 1e-4)
			assertVecNear(t, "direction", out.Direction, tt.expectedDir, 1e-4)

			if dist := out.Origin.Sub(tt.center).Len(); math.Abs(float64(dist-tt.radius)) > 1e-5 {
				t.Errorf("exit point should lie on the sphere, distance from center %f", dist)
			}
		})
	}
}

func TestSphere_RefractThrough_NotTransparent(t *testing.T) {
	tests := []struct {
		name    string
		options material.SurfaceOptions
	}{
		{"opaque", opaqueOptions()},
		{"mirror", material.NewSurfaceOptions(50, 1, 0, 100, material.Mirror{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := mustSphere(t, core.NewVec3(0, 0, 0), 1, tt.options)
			_, err := sphere.RefractThrough(core.NewRay(core.NewVec3(-1, 0, 0), core.NewVec3(1, 0, 0)))
			if !errors.Is(err, ErrNotTransparent) {
				t.Errorf("expected ErrNotTransparent, got %v", err)
			}
		})
	}
}
