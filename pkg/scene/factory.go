package scene

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

var (
	// ErrMissingProperty is returned when a required tag or attribute is absent
	ErrMissingProperty = errors.New("missing property")
	// ErrInvalidNumber is returned when a value cannot be parsed as a number
	ErrInvalidNumber = errors.New("invalid number")
	// ErrUnknownColor is returned for a color name that is not a CSS color
	ErrUnknownColor = errors.New("unknown color name")
	// ErrUnknownObjectType is returned for an unsupported object type
	ErrUnknownObjectType = errors.New("unknown object type")
	// ErrUnknownMaterialType is returned for an unsupported material type
	ErrUnknownMaterialType = errors.New("unknown material type")
)

// NewSceneFromDescription builds a renderable scene from a parsed description.
// Any invalid object, material, camera or setting fails the whole scene.
func NewSceneFromDescription(name string, desc *loaders.SceneDescription) (*Scene, error) {
	camera := core.DefaultCameraConfig()
	if desc.Camera != nil && len(desc.Camera.Properties) > 0 {
		var err error
		if camera, err = parseCamera(desc.Camera.Properties); err != nil {
			return nil, fmt.Errorf("camera: %w", err)
		}
	}

	background := DefaultBackground
	sampling := core.DefaultSamplingConfig()
	sampling.Height = 0

	if settings := desc.GlobalSettings; len(settings) > 0 {
		if _, ok := settings["background_color"]; ok {
			bg, err := parseColor(settings, "background_color")
			if err != nil {
				return nil, fmt.Errorf("global settings: %w", err)
			}
			background = bg
		}

		overrides := []struct {
			tag    string
			target *int
		}{
			{"image_width", &sampling.Width},
			{"samples_per_pixel", &sampling.SamplesPerPixel},
			{"max_depth", &sampling.MaxDepth},
		}
		for _, o := range overrides {
			if _, ok := settings[o.tag]; !ok {
				continue
			}
			v, err := parsePositiveInt(settings, o.tag)
			if err != nil {
				return nil, fmt.Errorf("global settings: %w", err)
			}
			*o.target = v
		}
	}

	s := NewScene(name, camera, background, sampling)

	for i, obj := range desc.Objects {
		shape, err := newShape(obj)
		if err != nil {
			return nil, fmt.Errorf("object %d (%q): %w", i, obj.ID, err)
		}
		s.Add(shape)
	}

	return s, nil
}

// newShape creates the geometry for one object description
func newShape(obj loaders.ObjectDescription) (geometry.Shape, error) {
	mat, err := newMaterial(obj.Material)
	if err != nil {
		return nil, fmt.Errorf("material: %w", err)
	}

	props := obj.Properties
	switch obj.Type {
	case "sphere":
		center, err := parseVec3(props, "position")
		if err != nil {
			return nil, err
		}
		radius, err := parseFloat(props, "radius", "value")
		if err != nil {
			return nil, err
		}
		return geometry.NewSphere(center, radius, mat), nil

	case "plane":
		point, err := parseVec3(props, "position")
		if err != nil {
			return nil, err
		}
		normal, err := parseVec3(props, "normal")
		if err != nil {
			return nil, err
		}
		return geometry.NewPlane(point, normal, mat), nil

	case "quad":
		vs, err := parseVec3s(props, "origin", "u", "v")
		if err != nil {
			return nil, err
		}
		return geometry.NewQuad(vs[0], vs[1], vs[2], mat), nil

	case "parallelepiped":
		vs, err := parseVec3s(props, "origin", "u", "v", "w")
		if err != nil {
			return nil, err
		}
		return geometry.NewParallelepiped(vs[0], vs[1], vs[2], vs[3], mat), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownObjectType, obj.Type)
	}
}

// newMaterial creates the material for one material description
func newMaterial(desc loaders.MaterialDescription) (material.Material, error) {
	props := desc.Properties
	switch desc.Type {
	case "matte":
		albedo, err := parseColor(props, "color")
		if err != nil {
			return nil, err
		}
		return material.NewMatte(albedo), nil

	case "metal":
		albedo, err := parseColor(props, "color")
		if err != nil {
			return nil, err
		}
		fuzz, err := parseFloat(props, "fuzz", "value")
		if err != nil {
			return nil, err
		}
		return material.NewMetal(albedo, fuzz), nil

	case "glass":
		ior, err := parseFloat(props, "ior", "value")
		if err != nil {
			return nil, err
		}
		return material.NewGlass(ior), nil

	case "light":
		intensity, err := parseFloat(props, "intensity", "value")
		if err != nil {
			return nil, err
		}
		return material.NewPointLightIntensity(intensity), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterialType, desc.Type)
	}
}

// parseCamera reads a full camera block; every field is required
func parseCamera(props loaders.PropertyMap) (core.CameraConfig, error) {
	var camera core.CameraConfig
	var err error

	if camera.Origin, err = parseVec3(props, "position"); err != nil {
		return camera, err
	}
	if camera.FocalLength, err = parseFloat(props, "focal_length", "value"); err != nil {
		return camera, err
	}
	if camera.ViewportHeight, err = parseFloat(props, "viewport_height", "value"); err != nil {
		return camera, err
	}
	expr, err := attr(props, "aspect_ratio", "value")
	if err != nil {
		return camera, err
	}
	if camera.AspectRatio, err = ParseAspectRatio(expr); err != nil {
		return camera, err
	}
	return camera, nil
}

// ParseAspectRatio evaluates "16.0/9.0" style ratios or a plain number
func ParseAspectRatio(expr string) (float64, error) {
	num, den, isRatio := strings.Cut(expr, "/")
	if !isRatio {
		return parseNumber(expr)
	}

	n, err := parseNumber(num)
	if err != nil {
		return 0, err
	}
	d, err := parseNumber(den)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, fmt.Errorf("%w: zero denominator in %q", ErrInvalidNumber, expr)
	}
	return n / d, nil
}

// attr looks up an attribute of a child tag
func attr(props loaders.PropertyMap, tag, key string) (string, error) {
	attrs, ok := props[tag]
	if !ok {
		return "", fmt.Errorf("%w: <%s>", ErrMissingProperty, tag)
	}
	value, ok := attrs[key]
	if !ok {
		return "", fmt.Errorf("%w: %s attribute of <%s>", ErrMissingProperty, key, tag)
	}
	return value, nil
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return v, nil
}

func parseFloat(props loaders.PropertyMap, tag, key string) (float64, error) {
	s, err := attr(props, tag, key)
	if err != nil {
		return 0, err
	}
	v, err := parseNumber(s)
	if err != nil {
		return 0, fmt.Errorf("<%s %s>: %w", tag, key, err)
	}
	return v, nil
}

func parsePositiveInt(props loaders.PropertyMap, tag string) (int, error) {
	s, err := attr(props, tag, "value")
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: <%s> must be a positive integer, got %q", ErrInvalidNumber, tag, s)
	}
	return v, nil
}

// parseVec3 reads the x, y and z attributes of a child tag
func parseVec3(props loaders.PropertyMap, tag string) (core.Vec3, error) {
	var c [3]float64
	for i, key := range []string{"x", "y", "z"} {
		v, err := parseFloat(props, tag, key)
		if err != nil {
			return core.Vec3{}, err
		}
		c[i] = v
	}
	return core.NewVec3(c[0], c[1], c[2]), nil
}

func parseVec3s(props loaders.PropertyMap, tags ...string) ([]core.Vec3, error) {
	vs := make([]core.Vec3, len(tags))
	for i, tag := range tags {
		v, err := parseVec3(props, tag)
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	return vs, nil
}

// parseColor reads r, g, b on a 0-255 scale, or a CSS color name
func parseColor(props loaders.PropertyMap, tag string) (core.Vec3, error) {
	if name, err := attr(props, tag, "name"); err == nil {
		rgba, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return core.Vec3{}, fmt.Errorf("%w: %q", ErrUnknownColor, name)
		}
		return core.NewVec3(float64(rgba.R), float64(rgba.G), float64(rgba.B)).Divide(255), nil
	}

	var c [3]float64
	for i, key := range []string{"r", "g", "b"} {
		v, err := parseFloat(props, tag, key)
		if err != nil {
			return core.Vec3{}, err
		}
		c[i] = v
	}
	return core.NewVec3(c[0], c[1], c[2]).Divide(255), nil
}
