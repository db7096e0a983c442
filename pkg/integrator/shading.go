package integrator

import (
	"github.com/df07/go-sphere-raycaster/pkg/core"
)

// Brightness accumulates the ambient, diffuse and specular terms of every
// light at point p on sphere index, seen along dir.
//
// Ambient light is never shadow tested. Diffuse light only reaches opaque
// surfaces; every surface variant receives a specular highlight, even from
// lights behind it.
func (rc *RayCastingIntegrator) Brightness(index int, p, dir core.Vec3) float32 {
	sphere := rc.scene.Sphere(index)
	opts := sphere.Options
	normal := sphere.InwardNormal(p)
	view := dir.Normalize()

	var brightness float32
	for _, light := range rc.scene.Lights() {
		brightness += light.Options.Ambient * opts.Ambient

		// No shadow ray for lights without diffuse or specular intensity
		if light.AmbientOnly() || rc.scene.Occluded(index, p, light, rc.config.ShadowBias) {
			continue
		}

		toPoint := p.Sub(light.Position).Normalize()
		facing := toPoint.Dot(normal)

		if opts.IsOpaque() && facing > 0 {
			diffuse := light.Options.Diffuse * facing * opts.Diffuse
			checkContribution("diffuse", diffuse, light.Options.Diffuse, facing, opts.Diffuse)
			brightness += max(diffuse, 0)
		}

		reflected := normal.Mul(2 * facing).Sub(toPoint)
		specProj := reflected.Normalize().Dot(view)
		if specProj > 0 {
			specular := light.Options.Specular * core.Pow(specProj, opts.Shininess) * opts.Specular
			checkContribution("specular", specular, light.Options.Specular, specProj, opts.Shininess, opts.Specular)
			brightness += max(specular, 0)
		}
	}

	return brightness
}
