// Package imageio writes rendered pixel buffers to image files.
package imageio

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Encoder writes a pixel buffer in one image format
type Encoder func(w io.Writer, pb *renderer.PixelBuffer) error

var encoders = map[string]Encoder{
	".png":  EncodePNG,
	".ppm":  EncodePPM,
	".bmp":  EncodeBMP,
	".tif":  EncodeTIFF,
	".tiff": EncodeTIFF,
}

// EncoderFor returns the encoder matching the file extension of path
func EncoderFor(path string) (Encoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	enc, ok := encoders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported image format %q (use .png, .ppm, .bmp or .tiff)", ext)
	}
	return enc, nil
}

// Save writes pb to path, picking the format from the extension
func Save(path string, pb *renderer.PixelBuffer) error {
	enc, err := EncoderFor(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := enc(file, pb); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}

// EncodePNG writes pb as PNG
func EncodePNG(w io.Writer, pb *renderer.PixelBuffer) error {
	return png.Encode(w, pb.ToImage())
}

// EncodeBMP writes pb as BMP
func EncodeBMP(w io.Writer, pb *renderer.PixelBuffer) error {
	return bmp.Encode(w, pb.ToImage())
}

// EncodeTIFF writes pb as deflate-compressed TIFF
func EncodeTIFF(w io.Writer, pb *renderer.PixelBuffer) error {
	return tiff.Encode(w, pb.ToImage(), &tiff.Options{Compression: tiff.Deflate})
}

// EncodePPM writes pb as a plain-text P3 pixmap, one pixel per line, top row first
func EncodePPM(w io.Writer, pb *renderer.PixelBuffer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", pb.Width, pb.Height)
	for _, p := range pb.Pixels {
		fmt.Fprintf(bw, "%d %d %d\n", p.R, p.G, p.B)
	}
	return bw.Flush()
}
