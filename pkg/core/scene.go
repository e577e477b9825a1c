package core

// CameraConfig describes a fixed pinhole camera looking down -Z.
// It is populated once per render and read-only while rendering.
type CameraConfig struct {
	Origin         Vec3
	FocalLength    float64
	ViewportHeight float64
	AspectRatio    float64
}

// DefaultCameraConfig returns the camera used when a scene does not specify one
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Origin:         NewVec3(0, 0, 0),
		FocalLength:    1.0,
		ViewportHeight: 2.0,
		AspectRatio:    16.0 / 9.0,
	}
}

// ImageHeight derives the image height for a given width, never less than one row
func (c CameraConfig) ImageHeight(width int) int {
	if c.AspectRatio <= 0 {
		return max(1, width)
	}
	return max(1, int(float64(width)/c.AspectRatio))
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 400,
		MaxDepth:        50,
	}
}

// Merge returns c with every positive field of override applied
func (c SamplingConfig) Merge(override SamplingConfig) SamplingConfig {
	if override.Width > 0 {
		c.Width = override.Width
	}
	if override.Height > 0 {
		c.Height = override.Height
	}
	if override.SamplesPerPixel > 0 {
		c.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth > 0 {
		c.MaxDepth = override.MaxDepth
	}
	return c
}
