package imageio

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

func testBuffer() *renderer.PixelBuffer {
	pb := renderer.NewPixelBuffer(2, 2)
	pb.Set(0, 0, renderer.Pixel{R: 255, G: 0, B: 0})
	pb.Set(1, 0, renderer.Pixel{R: 0, G: 255, B: 0})
	pb.Set(0, 1, renderer.Pixel{R: 0, G: 0, B: 255})
	pb.Set(1, 1, renderer.Pixel{R: 57, G: 57, B: 80})
	return pb
}

func assertImageMatches(t *testing.T, img image.Image, pb *renderer.PixelBuffer) {
	t.Helper()
	if img.Bounds().Dx() != pb.Width || img.Bounds().Dy() != pb.Height {
		t.Fatalf("Expected %dx%d image, got %v", pb.Width, pb.Height, img.Bounds())
	}
	for y := 0; y < pb.Height; y++ {
		for x := 0; x < pb.Width; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			p := pb.At(x, y)
			if uint8(r>>8) != p.R || uint8(g>>8) != p.G || uint8(b>>8) != p.B {
				t.Errorf("pixel (%d,%d): expected %v, got (%d,%d,%d)", x, y, p, r>>8, g>>8, b>>8)
			}
		}
	}
}

func TestEncodePPM(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePPM(&buf, testBuffer()); err != nil {
		t.Fatalf("EncodePPM failed: %v", err)
	}

	expected := "P3\n2 2\n255\n255 0 0\n0 255 0\n0 0 255\n57 57 80\n"
	if buf.String() != expected {
		t.Errorf("Unexpected PPM output:\n%s", buf.String())
	}
}

func TestEncodeBMPAndTIFF(t *testing.T) {
	pb := testBuffer()

	tests := []struct {
		name   string
		encode Encoder
		decode func(*bytes.Reader) (image.Image, error)
	}{
		{"bmp", EncodeBMP, func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) }},
		{"tiff", EncodeTIFF, func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.encode(&buf, pb); err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			img, err := tt.decode(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			assertImageMatches(t, img, pb)
		})
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	pb := testBuffer()

	for _, name := range []string{"out.png", "out.ppm", "out.bmp", "out.tiff", "OUT.TIF"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(path, pb); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			info, err := os.Stat(path)
			if err != nil || info.Size() == 0 {
				t.Errorf("Expected non-empty file, got %v %v", info, err)
			}
		})
	}

	// PNG round trip through the standard decoder registry
	file, err := os.Open(filepath.Join(dir, "out.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	img, format, err := image.Decode(file)
	if err != nil || format != "png" {
		t.Fatalf("Expected png, got %q %v", format, err)
	}
	assertImageMatches(t, img, pb)
}

func TestSave_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jpg")
	err := Save(path, testBuffer())
	if err == nil || !strings.Contains(err.Error(), "unsupported image format") {
		t.Errorf("Expected unsupported format error, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("No file should be created for an unsupported format")
	}
}
