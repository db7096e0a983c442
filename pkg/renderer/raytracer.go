package renderer

import (
	"context"
	"time"

	"github.com/df07/go-sphere-raycaster/pkg/core"
	"github.com/df07/go-sphere-raycaster/pkg/integrator"
	"github.com/df07/go-sphere-raycaster/pkg/scene"
)

// Config contains rendering configuration
type Config struct {
	Background core.RGB          // Color of pixels whose ray hits nothing
	Diagnostic core.RGB          // Color of pixels whose color could not be resolved
	TileSize   int               // Edge length of the square tiles handed to workers
	NumWorkers int               // Number of parallel workers (0 = use CPU count)
	Integrator integrator.Config // Light transport tunables
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Background: core.Gray(10),
		Diagnostic: core.NewRGB(255, 0, 255),
		TileSize:   64,
		NumWorkers: 0,
		Integrator: integrator.DefaultConfig(),
	}
}

// Raytracer renders a scene into an image. The scene is only read while
// rendering, so tiles run in parallel without locks.
type Raytracer struct {
	scene      *scene.Scene
	config     Config
	integrator integrator.Integrator
	workerPool *WorkerPool
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(s *scene.Scene, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = discardLogger{}
	}
	return &Raytracer{
		scene:      s,
		config:     config,
		integrator: integrator.NewRayCastingIntegrator(s, config.Integrator),
		workerPool: NewWorkerPool(config.NumWorkers),
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// Render renders the whole image. Cancelling ctx skips tiles that have not
// started yet; the partial image is returned together with ctx's error.
func (rt *Raytracer) Render(ctx context.Context) (*Image, RenderStats, error) {
	startTime := time.Now()

	img := NewImage(rt.scene.Width, rt.scene.Height)
	tileRenderer := NewTileRenderer(rt.scene.Camera(), rt.integrator, rt.config.Background, rt.config.Diagnostic)
	tiles := NewTileGrid(rt.scene.Width, rt.scene.Height, rt.config.TileSize)

	rt.logger.Printf("Rendering %dx%d: %d spheres, %d lights, %d tiles on %d workers...\n",
		rt.scene.Width, rt.scene.Height, rt.scene.GetPrimitiveCount(), len(rt.scene.Lights()),
		len(tiles), rt.workerPool.GetNumWorkers())

	// Each task writes only its own slot
	results := make([]RenderStats, len(tiles))
	tasks := make([]func(), len(tiles))
	for i, tile := range tiles {
		tasks[i] = func() {
			if ctx.Err() != nil {
				results[i] = RenderStats{SkippedTiles: 1}
				return
			}
			results[i] = tileRenderer.RenderTileBounds(img, tile.Bounds)
		}
	}
	rt.workerPool.Run(tasks)

	var stats RenderStats
	for _, r := range results {
		stats.merge(r)
	}
	stats.Elapsed = time.Since(startTime)

	if stats.ErrorPixels > 0 {
		rt.logger.Printf("Warning: %d pixels could not be resolved, first error: %v\n", stats.ErrorPixels, stats.FirstError)
	}
	if stats.SkippedTiles > 0 {
		rt.logger.Printf("Render cancelled, %d tiles skipped\n", stats.SkippedTiles)
		return img, stats, ctx.Err()
	}

	rt.logger.Printf("Render completed in %v (%d hit, %d background)\n",
		stats.Elapsed, stats.HitPixels, stats.BackgroundPixels)
	return img, stats, nil
}
