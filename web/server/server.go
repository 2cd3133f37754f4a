package server

import (
	"bytes"
	"embed"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/df07/go-scanline-raytracer/pkg/loaders"
	"github.com/df07/go-scanline-raytracer/pkg/log"
	"github.com/df07/go-scanline-raytracer/pkg/scene"
)

var logger = log.New("server")

// The preview page is compiled into the binary so the server runs from any directory
//
//go:embed static
var staticFiles embed.FS

// Parameter limits shared by the render and inspect endpoints
const (
	minImageSize = 2
	maxImageSize = 2000
	maxSamples   = 10000
	maxDepth     = 1000
)

// Server handles web requests for the scanline raytracer
type Server struct {
	port      int
	scenesDir string
	mux       *http.ServeMux
}

// NewServer creates a new web server. Scene files are looked up in scenesDir.
func NewServer(port int, scenesDir string) *Server {
	s := &Server{port: port, scenesDir: scenesDir, mux: http.NewServeMux()}

	static, _ := fs.Sub(staticFiles, "static")
	s.mux.Handle("/", http.FileServer(http.FS(static)))
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)

	return s
}

// Handler returns the HTTP handler serving every endpoint
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	logger.Noticef("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// SceneRequest holds the parameters shared by every scene-based endpoint
type SceneRequest struct {
	Scene  string `json:"scene"`  // Built-in scene name or "file:<name>"
	Width  int    `json:"width"`  // Image width
	Height int    `json:"height"` // Image height (0 keeps the scene aspect ratio)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		logger.Warningf("Failed to list scenes: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := s.createScene(sceneName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	response := map[string]interface{}{
		"scene":       sceneName,
		"description": sceneObj.Description,
		"defaults": map[string]interface{}{
			"width":           sceneObj.Width,
			"height":          sceneObj.Height,
			"samplesPerPixel": sceneObj.SamplingConfig.SamplesPerPixel,
			"maxDepth":        sceneObj.SamplingConfig.MaxDepth,
		},
		"limits": map[string]interface{}{
			"width":           map[string]int{"min": minImageSize, "max": maxImageSize},
			"height":          map[string]int{"min": minImageSize, "max": maxImageSize},
			"samplesPerPixel": map[string]int{"min": 1, "max": maxSamples},
			"maxDepth":        map[string]int{"min": 0, "max": maxDepth},
		},
		"primitiveCount": sceneObj.GetPrimitiveCount(),
	}

	writeJSON(w, http.StatusOK, response)
}

// parseSceneRequest parses the scene name and image size
func parseSceneRequest(values url.Values) (SceneRequest, error) {
	req := SceneRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, minImageSize, maxImageSize); err != nil {
		return req, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, minImageSize, maxImageSize); err != nil {
		return req, err
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

// parseInt64Param parses a 64-bit integer parameter from URL query
func parseInt64Param(values url.Values, key string, defaultValue int64) (int64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds a built-in scene, or a scene file for names of the form "file:<name>"
func (s *Server) createScene(name string) (*scene.Scene, error) {
	if fileName, ok := strings.CutPrefix(name, "file:"); ok {
		path, err := loaders.ResolveScenePath(s.scenesDir, fileName+".json")
		if err != nil {
			return nil, err
		}
		return loaders.LoadSceneFile(path)
	}
	return scene.Create(name)
}

// createSizedScene builds the requested scene and applies the requested image size
func (s *Server) createSizedScene(req SceneRequest) (*scene.Scene, error) {
	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		return nil, err
	}
	sceneObj.Resize(req.Width, req.Height)
	return sceneObj, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warningf("Error encoding response: %v", err)
	}
}
