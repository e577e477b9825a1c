package loaders

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrMalformedDocument is returned when a scene document is not well-formed
var ErrMalformedDocument = errors.New("malformed scene document")

// PropertyMap maps a child tag name to its attributes, e.g.
// <position x="0" y="1" z="2"/> becomes {"position": {"x": "0", "y": "1", "z": "2"}}
type PropertyMap map[string]map[string]string

// MaterialDescription is the raw <material> block of an object
type MaterialDescription struct {
	Type       string
	Properties PropertyMap
}

// ObjectDescription is a raw <object> block
type ObjectDescription struct {
	ID         string
	Type       string
	Properties PropertyMap
	Material   MaterialDescription
}

// CameraDescription is the raw <camera> block
type CameraDescription struct {
	ID         string
	Type       string
	Properties PropertyMap
}

// SceneDescription contains all parsed scene data. Values are kept as strings;
// converting and validating them is the scene factory's job.
type SceneDescription struct {
	GlobalSettings PropertyMap
	Camera         *CameraDescription // nil when the document has no <camera>
	Objects        []ObjectDescription
}

// xmlProperty captures any self-closing child tag with arbitrary attributes
type xmlProperty struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
}

type xmlMaterial struct {
	Type       string        `xml:"type,attr"`
	Properties []xmlProperty `xml:",any"`
}

type xmlObject struct {
	ID         string        `xml:"id,attr"`
	Type       string        `xml:"type,attr"`
	Material   *xmlMaterial  `xml:"material"`
	Properties []xmlProperty `xml:",any"`
}

type xmlCamera struct {
	ID         string        `xml:"id,attr"`
	Type       string        `xml:"type,attr"`
	Properties []xmlProperty `xml:",any"`
}

type xmlSettings struct {
	Properties []xmlProperty `xml:",any"`
}

type xmlScene struct {
	XMLName        xml.Name     `xml:"scene"`
	GlobalSettings *xmlSettings `xml:"global_settings"`
	Camera         *xmlCamera   `xml:"camera"`
	Objects        []xmlObject  `xml:"object"`
}

// ParseScene parses a scene document from an io.Reader.
// Comments and unknown top-level tags are ignored.
func ParseScene(reader io.Reader) (*SceneDescription, error) {
	var doc xmlScene
	if err := xml.NewDecoder(reader).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrMalformedDocument)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	desc := &SceneDescription{
		GlobalSettings: PropertyMap{},
	}

	if doc.GlobalSettings != nil {
		desc.GlobalSettings = toPropertyMap(doc.GlobalSettings.Properties)
	}

	if doc.Camera != nil {
		desc.Camera = &CameraDescription{
			ID:         doc.Camera.ID,
			Type:       doc.Camera.Type,
			Properties: toPropertyMap(doc.Camera.Properties),
		}
	}

	for _, obj := range doc.Objects {
		od := ObjectDescription{
			ID:         obj.ID,
			Type:       obj.Type,
			Properties: toPropertyMap(obj.Properties),
			Material:   MaterialDescription{Properties: PropertyMap{}},
		}
		if obj.Material != nil {
			od.Material.Type = obj.Material.Type
			od.Material.Properties = toPropertyMap(obj.Material.Properties)
		}
		desc.Objects = append(desc.Objects, od)
	}

	return desc, nil
}

// LoadScene loads and parses a scene file
func LoadScene(filename string) (*SceneDescription, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	desc, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return desc, nil
}

// ValidateScenePath rejects paths that are not plain .xml files, for use
// where the path comes from an untrusted client
func ValidateScenePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	cleanPath := filepath.Clean(filename)

	if filepath.IsAbs(cleanPath) || strings.HasPrefix(cleanPath, "..") {
		return fmt.Errorf("invalid file path: directory traversal not allowed")
	}

	if !strings.EqualFold(filepath.Ext(cleanPath), ".xml") {
		return fmt.Errorf("invalid file type: only .xml files are allowed")
	}

	if len(cleanPath) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}

	return nil
}

// toPropertyMap flattens child tags into a PropertyMap. A repeated tag replaces
// the earlier one.
func toPropertyMap(props []xmlProperty) PropertyMap {
	pm := make(PropertyMap, len(props))
	for _, p := range props {
		attrs := make(map[string]string, len(p.Attrs))
		for _, a := range p.Attrs {
			attrs[a.Name.Local] = a.Value
		}
		pm[p.XMLName.Local] = attrs
	}
	return pm
}
