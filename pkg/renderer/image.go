package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/fogleman/gg"

	"github.com/df07/go-sphere-raycaster/pkg/core"
)

// Format selects the output file encoding
type Format string

const (
	FormatPPM Format = "ppm" // binary P6 pixel dump
	FormatPNG Format = "png"
)

// ParseFormat parses a format name, case-insensitively
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatPPM, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want ppm or png)", name)
	}
}

// Image is a rectangular grid of 8-bit RGB pixels
type Image struct {
	rgba *image.RGBA
}

// NewImage creates a black image
func NewImage(width, height int) *Image {
	img := &Image{rgba: image.NewRGBA(image.Rect(0, 0, width, height))}
	img.Fill(core.RGB{})
	return img
}

// Width returns the image width
func (im *Image) Width() int { return im.rgba.Rect.Dx() }

// Height returns the image height
func (im *Image) Height() int { return im.rgba.Rect.Dy() }

// SetPixel stores c at (x, y). Out-of-range coordinates are rejected.
func (im *Image) SetPixel(x, y int, c core.RGB) bool {
	if !image.Pt(x, y).In(im.rgba.Rect) {
		return false
	}
	im.rgba.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
	return true
}

// At returns the pixel at (x, y)
func (im *Image) At(x, y int) (core.RGB, bool) {
	if !image.Pt(x, y).In(im.rgba.Rect) {
		return core.RGB{}, false
	}
	c := im.rgba.RGBAAt(x, y)
	return core.NewRGB(c.R, c.G, c.B), true
}

// Fill sets every pixel to c
func (im *Image) Fill(c core.RGB) {
	for y := 0; y < im.Height(); y++ {
		for x := 0; x < im.Width(); x++ {
			im.SetPixel(x, y, c)
		}
	}
}

// RGBA exposes the underlying image
func (im *Image) RGBA() *image.RGBA {
	return im.rgba
}

// WritePPM writes the image as a binary PPM: "P6 <width> <height> 255\n"
// followed by raw RGB triples, row by row.
func (im *Image) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6 %d %d 255\n", im.Width(), im.Height()); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	row := make([]byte, 3*im.Width())
	for y := 0; y < im.Height(); y++ {
		for x := 0; x < im.Width(); x++ {
			c := im.rgba.RGBAAt(x, y)
			row[3*x], row[3*x+1], row[3*x+2] = c.R, c.G, c.B
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("failed to write PPM data: %w", err)
		}
	}
	return bw.Flush()
}

// WritePNG encodes the image as PNG
func (im *Image) WritePNG(w io.Writer) error {
	return gg.NewContextForRGBA(im.rgba).EncodePNG(w)
}

// Encode writes the image in the given format
func (im *Image) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatPPM:
		return im.WritePPM(w)
	case FormatPNG:
		return im.WritePNG(w)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Save writes the image to path in the given format
func (im *Image) Save(path string, format Format) error {
	if format == FormatPNG {
		return gg.NewContextForRGBA(im.rgba).SavePNG(path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := im.Encode(f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
