package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/disintegration/imaging"

	"github.com/df07/go-direct-raytracer/pkg/core"
	"github.com/df07/go-direct-raytracer/pkg/imageio"
	"github.com/df07/go-direct-raytracer/pkg/renderer"
	"github.com/df07/go-direct-raytracer/pkg/scene"
	"github.com/df07/go-direct-raytracer/pkg/storage"
)

// maxSceneBodySize bounds POSTed scene descriptions
const maxSceneBodySize = 1 << 20

// postedSceneName names renders of POSTed scenes that carry no scene parameter
const postedSceneName = "custom"

// Stats represents render statistics
type Stats struct {
	TotalPixels        int     `json:"totalPixels"`
	HitPixels          int     `json:"hitPixels"`
	ShadowRays         int     `json:"shadowRays"`
	OccludedShadowRays int     `json:"occludedShadowRays"`
	HitRatio           float64 `json:"hitRatio"`
	ElapsedMs          int64   `json:"elapsedMs"`
	PrimitiveCount     int     `json:"primitiveCount"`
}

// UploadResponse reports where an uploaded render was stored
type UploadResponse struct {
	Outputs []storage.Output `json:"outputs"`
	Stats   Stats            `json:"stats"`
}

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"`
	TileY      int    `json:"tileY"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Completed tile count, 1-based
	TotalTiles int    `json:"totalTiles"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

func newStats(stats renderer.RenderStats, s *scene.Scene) Stats {
	return Stats{
		TotalPixels:        stats.TotalPixels,
		HitPixels:          stats.HitPixels,
		ShadowRays:         stats.ShadowRays,
		OccludedShadowRays: stats.OccludedShadowRays,
		HitRatio:           stats.HitRatio(),
		ElapsedMs:          stats.Duration.Milliseconds(),
		PrimitiveCount:     s.GetPrimitiveCount(),
	}
}

// handleRender renders a scene and returns the encoded image. GET renders a
// named scene; POST renders the JSON scene description in the body. With
// upload set the image is stored and its location returned instead.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	format, err := imageio.ParseFormat(req.Format)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Upload && s.sink == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "Uploads are not configured")
		return
	}

	var sceneObj *scene.Scene
	switch r.Method {
	case http.MethodGet:
		sceneObj, err = s.createScene(req)
	case http.MethodPost:
		if r.URL.Query().Get("scene") == "" {
			req.Scene = postedSceneName
		}
		sceneObj, err = scene.Parse(http.MaxBytesReader(w, r.Body, maxSceneBodySize))
		if err == nil {
			err = checkSceneSize(sceneObj)
		}
	default:
		w.Header().Set("Allow", "GET, POST")
		writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if err != nil {
		writeJSONError(w, sceneErrorStatus(err), err.Error())
		return
	}

	raytracer := renderer.NewParallelRaytracer(sceneObj, s.parallelConfig(), nil)
	frame, renderStats, err := raytracer.Render(r.Context(), nil)
	if err != nil {
		log.Printf("Render of %s abandoned: %v", req.Scene, err)
		writeJSONError(w, http.StatusServiceUnavailable, "Render cancelled")
		return
	}
	stats := newStats(renderStats, sceneObj)
	img := imageio.ToNRGBA(frame)

	if req.Upload {
		outputs, err := storage.Publish(r.Context(), s.sink, req.Scene, img, format, req.Thumbnail, time.Now())
		if err != nil {
			log.Printf("Upload of %s failed: %v", req.Scene, err)
			writeJSONError(w, http.StatusBadGateway, "Upload failed")
			return
		}
		writeJSON(w, http.StatusOK, UploadResponse{Outputs: outputs, Stats: stats})
		return
	}

	var out image.Image = img
	if req.Thumbnail > 0 {
		out = imageio.Thumbnail(img, req.Thumbnail)
	}
	data, err := imageio.EncodeBytes(out, format)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", imageio.ContentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.ElapsedMs, 10))
	w.Header().Set("X-Hit-Pixels", strconv.Itoa(stats.HitPixels))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("Error writing image: %v", err)
	}
}

// handleRenderStream renders a named scene and streams each finished tile via SSE
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Single writer goroutine; the handler waits for it so nothing is written
	// after it returns
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	// Setup console logging and streaming
	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	raytracer := renderer.NewParallelRaytracer(sceneObj, s.parallelConfig(), webLogger)
	_, renderStats, err := raytracer.Render(ctx, func(tile renderer.TileCompletionResult) {
		s.handleTileUpdate(ctx, sseEventChan, tile)
	})

	// The logger is not used once Render returns
	close(consoleChan)
	<-consoleDone

	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	data, err := json.Marshal(newStats(renderStats, sceneObj))
	if err != nil {
		log.Printf("Error marshaling stats: %v", err)
		return
	}
	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: string(data)}:
	case <-ctx.Done():
	}
}

func (s *Server) parallelConfig() renderer.ParallelConfig {
	return renderer.ParallelConfig{
		TileSize:   s.config.TileSize,
		NumWorkers: s.config.Workers,
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// writeSSEEvents writes events until the channel closes or the client goes away
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	clientGone := false

	for event := range sseEventChan {
		// Keep draining so senders never block on a departed client
		if clientGone || ctx.Err() != nil {
			clientGone = true
			continue
		}

		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			clientGone = true
			continue
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan closes
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		}
	}
}

// handleTileUpdate processes and sends tile update events
func (s *Server) handleTileUpdate(ctx context.Context, sseEventChan chan<- SSEEvent, tileResult renderer.TileCompletionResult) {
	if ctx.Err() != nil {
		return
	}

	png, err := imageio.EncodeBytes(imageio.ToNRGBA(tileResult.Tile), imaging.PNG)
	if err != nil {
		log.Printf("Error encoding tile image (%d, %d): %v", tileResult.TileX, tileResult.TileY, err)
		return
	}

	update := TileUpdate{
		TileX:      tileResult.TileX,
		TileY:      tileResult.TileY,
		ImageData:  base64.StdEncoding.EncodeToString(png),
		TileNumber: tileResult.TileNumber,
		TotalTiles: tileResult.TotalTiles,
	}

	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Error marshaling tile update: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "tile", Data: string(data)}:
	case <-ctx.Done():
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
	}
}
