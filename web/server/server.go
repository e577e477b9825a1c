package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// maxSceneUpload bounds the size of an XML scene posted to /api/render
const maxSceneUpload = 1 << 20

// Server handles web requests for the path tracer
type Server struct {
	port      int
	scenesDir string
}

// NewServer creates a new web server that serves scene files from scenesDir
func NewServer(port int, scenesDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir}
}

// RenderRequest represents a render or inspect request from the client.
// Zero values keep the scene's own settings.
type RenderRequest struct {
	Scene           string `json:"scene"`           // Built-in scene name or scene file ID
	Width           int    `json:"width"`           // Image width
	SamplesPerPixel int    `json:"samplesPerPixel"` // Samples per pixel
	MaxDepth        int    `json:"maxDepth"`        // Maximum bounce depth
	Workers         int    `json:"workers"`         // Number of parallel workers
	Seed            int64  `json:"seed"`            // Base random seed
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/inspect", s.handleInspect)

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the scene files on disk
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r.URL.Query(), req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	sceneObj, err := s.loadScene(req.Scene)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	config := sceneObj.GetSamplingConfig()
	camera := sceneObj.GetCameraConfig()
	response := map[string]interface{}{
		"scene": req.Scene,
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
			"aspectRatio":     camera.AspectRatio,
			"primitiveCount":  sceneObj.GetPrimitiveCount(),
		},
		"limits": map[string]interface{}{
			"width":           map[string]int{"min": 1, "max": 2000},
			"samplesPerPixel": map[string]int{"min": 1, "max": 10000},
			"maxDepth":        map[string]int{"min": 1, "max": 1000},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// parseCommonSceneParams parses the scene selection and sampling overrides
func (s *Server) parseCommonSceneParams(values url.Values, req *RenderRequest) error {
	req.Scene = values.Get("scene")
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, 1, 2000); err != nil {
		return err
	}
	if req.SamplesPerPixel, err = parseIntParam(values, "samples", 0, 1, 10000); err != nil {
		return err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", 0, 1, 1000); err != nil {
		return err
	}
	return nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	values := r.URL.Query()

	if err := s.parseCommonSceneParams(values, req); err != nil {
		return nil, err
	}

	var err error
	if req.Workers, err = parseIntParam(values, "workers", 0, 1, 256); err != nil {
		return nil, err
	}
	if seed := values.Get("seed"); seed != "" {
		if req.Seed, err = strconv.ParseInt(seed, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", seed)
		}
	}

	// Performance warning
	if req.Width > 800 && req.SamplesPerPixel > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// loadScene resolves a built-in scene name or a scene file ID inside the
// scenes directory
func (s *Server) loadScene(name string) (*scene.Scene, error) {
	for _, builtin := range scene.ListBuiltins() {
		if name == builtin {
			return scene.LoadNamed(name)
		}
	}

	relPath := name
	if !strings.HasSuffix(strings.ToLower(relPath), ".xml") {
		relPath += ".xml"
	}
	if err := loaders.ValidateScenePath(relPath); err != nil {
		return nil, fmt.Errorf("invalid scene %q: %w", name, err)
	}
	return scene.LoadNamed(filepath.Join(s.scenesDir, relPath))
}

// createScene builds the scene for a render request. A POST body carries an
// XML scene document; otherwise the scene is looked up by name.
func (s *Server) createScene(r *http.Request, req *RenderRequest) (*scene.Scene, error) {
	var sceneObj *scene.Scene
	if r.Method == http.MethodPost {
		desc, err := loaders.ParseScene(io.LimitReader(r.Body, maxSceneUpload))
		if err != nil {
			return nil, fmt.Errorf("invalid scene document: %w", err)
		}
		if sceneObj, err = scene.NewSceneFromDescription("upload", desc); err != nil {
			return nil, fmt.Errorf("invalid scene document: %w", err)
		}
		req.Scene = sceneObj.Name
	} else {
		var err error
		if sceneObj, err = s.loadScene(req.Scene); err != nil {
			return nil, err
		}
	}

	sceneObj.ApplyOverrides(core.SamplingConfig{
		Width:           req.Width,
		SamplesPerPixel: req.SamplesPerPixel,
		MaxDepth:        req.MaxDepth,
	})
	return sceneObj, nil
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}
