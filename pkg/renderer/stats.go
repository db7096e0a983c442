package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	HitPixels        int           // Pixels that hit a sphere
	BackgroundPixels int           // Pixels whose ray missed every sphere
	ErrorPixels      int           // Pixels painted with the diagnostic color
	SkippedTiles     int           // Tiles not rendered because the render was cancelled
	FirstError       error         // First per-pixel error, if any
	Elapsed          time.Duration // Wall time of the render
}

// merge folds the counts of other into s
func (s *RenderStats) merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.HitPixels += other.HitPixels
	s.BackgroundPixels += other.BackgroundPixels
	s.ErrorPixels += other.ErrorPixels
	s.SkippedTiles += other.SkippedTiles
	if s.FirstError == nil {
		s.FirstError = other.FirstError
	}
}

// CalculateAverageLuminance computes the average Rec. 709 luminance of an
// image, with channels mapped to [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += 0.2126*float64(r)/65535 + 0.7152*float64(g)/65535 + 0.0722*float64(b)/65535
		}
	}
	return total / float64(pixels)
}
