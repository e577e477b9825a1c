package scene

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/loaders"
)

// ErrUnknownScene is returned when a name is neither a built-in scene nor an .xml file
var ErrUnknownScene = errors.New("unknown scene")

// builtinScenes maps scene IDs to their constructors
var builtinScenes = map[string]func() *Scene{
	"default": NewDefaultScene,
	"ground":  NewGroundScene,
}

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "xml"
	FilePath    string `json:"filePath"`    // Path to the scene file (xml type only)
}

// ListBuiltins returns the sorted names of the built-in scenes
func ListBuiltins() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadNamed returns a built-in scene by name, or loads an .xml scene file
func LoadNamed(nameOrPath string) (*Scene, error) {
	if create, ok := builtinScenes[nameOrPath]; ok {
		return create(), nil
	}

	if strings.EqualFold(filepath.Ext(nameOrPath), ".xml") {
		desc, err := loaders.LoadScene(nameOrPath)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(nameOrPath), filepath.Ext(nameOrPath))
		return NewSceneFromDescription(name, desc)
	}

	return nil, fmt.Errorf("%w: %q (built-in scenes: %s)", ErrUnknownScene, nameOrPath, strings.Join(ListBuiltins(), ", "))
}

// ListXMLScenes scans dir for .xml scene files, sorted by name
func ListXMLScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		// No scenes directory found, return empty list
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := ParseXMLMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseXMLMetadata reads "Scene:" and "Description:" lines from the comments
// at the top of a scene file
func ParseXMLMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:       nameWithoutExt,
		Name:     titleCase(nameWithoutExt),
		Type:     "xml",
		FilePath: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return info, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	inComment := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "<?xml") {
			continue
		}

		if strings.HasPrefix(line, "<!--") {
			inComment = true
			line = strings.TrimSpace(strings.TrimPrefix(line, "<!--"))
		}
		if !inComment {
			break
		}
		if strings.HasSuffix(line, "-->") {
			inComment = false
			line = strings.TrimSpace(strings.TrimSuffix(line, "-->"))
		}

		if value, ok := strings.CutPrefix(line, "Scene:"); ok {
			info.Name = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(line, "Description:"); ok {
			info.Description = strings.TrimSpace(value)
		}
	}

	return info, scanner.Err()
}

// ListAllScenes returns the built-in scenes followed by the scene files in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	var all []SceneInfo
	for _, name := range ListBuiltins() {
		s := builtinScenes[name]()
		all = append(all, SceneInfo{
			ID:          name,
			Name:        titleCase(name),
			Description: fmt.Sprintf("Built-in scene with %d objects", s.GetPrimitiveCount()),
			Type:        "builtin",
		})
	}

	files, err := ListXMLScenes(dir)
	if err != nil {
		return nil, err
	}
	return append(all, files...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
