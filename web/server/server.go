package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/df07/go-direct-raytracer/pkg/config"
	"github.com/df07/go-direct-raytracer/pkg/scene"
	"github.com/df07/go-direct-raytracer/pkg/storage"
)

// Size limits accepted from clients; 0 keeps the scene's own size
const (
	MinImageSize = 16
	MaxImageSize = 2000
)

// Server handles web requests for the raytracer
type Server struct {
	config config.Config
	sink   storage.Sink // nil when uploads are not configured
}

// NewServer creates a new web server. sink may be nil, in which case
// upload requests are rejected.
func NewServer(cfg config.Config, sink storage.Sink) *Server {
	return &Server{config: cfg, sink: sink}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene     string `json:"scene"`     // Scene name or file
	Width     int    `json:"width"`     // Image width, 0 for the scene default
	Height    int    `json:"height"`    // Image height, 0 for the scene default
	Format    string `json:"format"`    // Output format name
	Thumbnail int    `json:"thumbnail"` // Thumbnail width, 0 for full size
	Upload    bool   `json:"upload"`    // Store via the configured sink
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	log.Printf("Starting web server on %s", s.config.ServerAddress)
	return http.ListenAndServe(s.config.ServerAddress, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes()
	if err != nil {
		log.Printf("Error listing scenes: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to list scenes")
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// parseCommonSceneParams parses the scene name and image size shared by all endpoints
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseSizeParam(query, "width"); err != nil {
		return err
	}
	if req.Height, err = parseSizeParam(query, "height"); err != nil {
		return err
	}
	return nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	req.Format = query.Get("format")
	if req.Format == "" {
		req.Format = s.config.Format
	}

	var err error
	if req.Thumbnail, err = parseIntParam(query, "thumb", 0, 0, MaxImageSize); err != nil {
		return nil, err
	}
	if upload := query.Get("upload"); upload != "" {
		if req.Upload, err = strconv.ParseBool(upload); err != nil {
			return nil, fmt.Errorf("invalid upload: %s", upload)
		}
	}

	return req, nil
}

// parseSizeParam accepts 0 or a size within the allowed limits
func parseSizeParam(values url.Values, key string) (int, error) {
	size, err := parseIntParam(values, key, 0, 0, MaxImageSize)
	if err != nil {
		return 0, err
	}
	if size != 0 && size < MinImageSize {
		return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, MinImageSize, MaxImageSize, size)
	}
	return size, nil
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

// createScene creates a scene based on the request. Only built-in scene IDs
// and base names of files in the scenes directory are accepted; file paths
// are reserved for the CLI.
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	if !isSceneName(req.Scene) {
		return nil, fmt.Errorf("%w: %q", errInvalidSceneName, req.Scene)
	}
	sceneObj, err := scene.Create(req.Scene, req.Width, req.Height)
	if err != nil {
		return nil, err
	}
	if err := checkSceneSize(sceneObj); err != nil {
		return nil, err
	}
	return sceneObj, nil
}

var (
	errInvalidSceneName = errors.New("invalid scene name")
	errSceneTooLarge    = errors.New("scene too large")
)

// isSceneName reports whether name is a plain scene name rather than a path
func isSceneName(name string) bool {
	if name == "" || strings.ContainsAny(name, `/\:`) || strings.Contains(name, "..") {
		return false
	}
	return !strings.HasSuffix(strings.ToLower(name), ".json")
}

// checkSceneSize rejects scenes whose own size exceeds what clients may request
func checkSceneSize(s *scene.Scene) error {
	if s.Width > MaxImageSize || s.Height > MaxImageSize {
		return fmt.Errorf("%w: %dx%d exceeds %dx%d", errSceneTooLarge, s.Width, s.Height, MaxImageSize, MaxImageSize)
	}
	return nil
}

// sceneErrorStatus maps a scene creation error to an HTTP status
func sceneErrorStatus(err error) int {
	if errors.Is(err, scene.ErrUnknownScene) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
