package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-pathtracer/pkg/core"
)

// maxChannel keeps quantized channels below 256
const maxChannel = 0.999

// Pixel is an 8-bit RGB triple
type Pixel struct {
	R, G, B uint8
}

// PixelBuffer is a row-major image where row 0 is the top of the image
type PixelBuffer struct {
	Width  int
	Height int
	Pixels []Pixel
}

// NewPixelBuffer allocates a black buffer of the given size
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Pixel, width*height),
	}
}

// At returns the pixel at column x, row y
func (pb *PixelBuffer) At(x, y int) Pixel {
	return pb.Pixels[y*pb.Width+x]
}

// Set writes the pixel at column x, row y
func (pb *PixelBuffer) Set(x, y int, p Pixel) {
	pb.Pixels[y*pb.Width+x] = p
}

// ToImage converts the buffer to an opaque RGBA image
func (pb *PixelBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, pb.Width, pb.Height))
	for y := 0; y < pb.Height; y++ {
		for x := 0; x < pb.Width; x++ {
			p := pb.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}

// ToPixel converts a linear color to an 8-bit pixel: gamma 2, clamp, then floor(256*c)
func ToPixel(colorVec core.Vec3) Pixel {
	colorVec = colorVec.GammaCorrect(2.0).Clamp(0.0, maxChannel)

	return Pixel{
		R: uint8(256 * colorVec.X),
		G: uint8(256 * colorVec.Y),
		B: uint8(256 * colorVec.Z),
	}
}
