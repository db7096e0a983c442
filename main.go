package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-raycaster/pkg/renderer"
	"github.com/df07/go-sphere-raycaster/pkg/scene"
)

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Built-in scene name")
	configPath := flag.String("config", "", "Path to a JSON scene file (overrides -scene)")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	height := flag.Int("height", 0, "Image height in pixels (0 = scene default)")
	outPath := flag.String("out", "", "Output file (default: output/<scene>/PictureN.<format>)")
	formatName := flag.String("format", "ppm", "Output format: 'ppm' or 'png'")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	maxDepth := flag.Int("max-depth", 0, "Maximum recursion depth (0 = default)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		showHelp()
		return
	}

	format, err := renderer.ParseFormat(*formatName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Starting Sphere Raycaster...")

	selectedScene, err := createScene(*sceneType, *configPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if *width > 0 {
		selectedScene.Width = *width
	}
	if *height > 0 {
		selectedScene.Height = *height
	}

	config := renderer.DefaultConfig()
	config.NumWorkers = *workers
	if *maxDepth > 0 {
		config.Integrator.MaxDepth = *maxDepth
	}

	// Ctrl-C stops the render and keeps what is finished
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	raytracer := renderer.NewRaytracer(selectedScene, config, renderer.NewDefaultLogger())
	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		fmt.Printf("Render interrupted: %v\n", err)
	}

	fmt.Printf("Pixels: %d hit, %d background, %d unresolved\n",
		stats.HitPixels, stats.BackgroundPixels, stats.ErrorPixels)
	fmt.Printf("Average luminance: %.4f\n", renderer.CalculateAverageLuminance(img.RGBA()))

	filename, err := saveImage(img, *outPath, outputDir(*sceneType, *configPath), format)
	if err != nil {
		fmt.Printf("Error saving image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", filename)
}

func showHelp() {
	fmt.Println("Sphere Raycaster")
	fmt.Println("Usage: raycaster [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Printf("  %-8s - %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  raycaster -scene=mirrors -format=png")
	fmt.Println("  raycaster -config=scenes/two-lights.json -width=400 -height=400")
}

// createScene builds a scene from a JSON file when configPath is set,
// otherwise from the named built-in scene
func createScene(sceneType, configPath string) (*scene.Scene, error) {
	if configPath != "" {
		fmt.Printf("Loading scene file %s...\n", configPath)
		return scene.LoadScene(configPath)
	}

	fmt.Printf("Using %s scene...\n", sceneType)
	return scene.NewBuiltinScene(sceneType)
}

// outputDir returns the directory numbered renders go to
func outputDir(sceneType, configPath string) string {
	if configPath != "" {
		name := filepath.Base(configPath)
		return filepath.Join("output", strings.TrimSuffix(name, filepath.Ext(name)))
	}
	return filepath.Join("output", sceneType)
}

// saveImage writes img to outPath, or to the next free PictureN file in dir
// when outPath is empty. It returns the file name written.
func saveImage(img *renderer.Image, outPath, dir string, format renderer.Format) (string, error) {
	if outPath != "" {
		return outPath, img.Save(outPath, format)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	file, filename, err := renderer.CreateNumbered(dir, "Picture", string(format))
	if err != nil {
		return "", err
	}
	if err := img.Encode(file, format); err != nil {
		file.Close()
		return "", err
	}
	return filename, file.Close()
}
