package renderer

import (
	"fmt"
	"image"

	"github.com/df07/go-sphere-raycaster/pkg/core"
	"github.com/df07/go-sphere-raycaster/pkg/geometry"
	"github.com/df07/go-sphere-raycaster/pkg/integrator"
)

// TileRenderer renders individual tiles using an integrator
type TileRenderer struct {
	camera     *geometry.Camera
	integrator integrator.Integrator
	background core.RGB
	diagnostic core.RGB
}

// NewTileRenderer creates a new tile renderer
func NewTileRenderer(camera *geometry.Camera, integratorInst integrator.Integrator, background, diagnostic core.RGB) *TileRenderer {
	return &TileRenderer{
		camera:     camera,
		integrator: integratorInst,
		background: background,
		diagnostic: diagnostic,
	}
}

// RenderTileBounds renders the pixels inside bounds into img.
// Tiles never overlap, so concurrent calls on one image are safe.
func (tr *TileRenderer) RenderTileBounds(img *Image, bounds image.Rectangle) RenderStats {
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ray := tr.camera.GetRay(x, y)
			color, ok, err := tr.integrator.ColorAlong(ray.Origin, ray.Direction)

			switch {
			case err != nil:
				// One broken pixel never stops the image
				color = tr.diagnostic
				stats.ErrorPixels++
				if stats.FirstError == nil {
					stats.FirstError = fmt.Errorf("pixel (%d, %d): %w", x, y, err)
				}
			case !ok:
				color = tr.background
				stats.BackgroundPixels++
			default:
				stats.HitPixels++
			}

			img.SetPixel(x, y, color)
		}
	}

	return stats
}
