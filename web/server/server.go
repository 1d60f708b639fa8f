package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/bitmap"
	"github.com/df07/go-weekend-raytracer/pkg/config"
	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

const (
	maxImageSize   = 2000
	maxSamples     = 10000
	maxDepth       = 1000
	consoleBacklog = 256
)

// Server renders scenes on request and returns the finished image
type Server struct {
	config      config.Config
	sink        output.Sink // Optional; renders with save=true are written here
	console     *ConsoleLog
	consoleChan chan ConsoleMessage
	nextID      atomic.Int64
}

// NewServer creates a new web server. sink may be nil when saving is not wanted.
func NewServer(cfg config.Config, sink output.Sink) *Server {
	return &Server{
		config:      cfg,
		sink:        sink,
		console:     NewConsoleLog(consoleBacklog),
		consoleChan: make(chan ConsoleMessage, consoleBacklog),
	}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `json:"scene"`   // Scene ID as accepted by scene.CreateScene
	Width   int    `json:"width"`   // 0 keeps the scene default
	Height  int    `json:"height"`  // 0 derives the height from the aspect ratio
	Samples int    `json:"samples"` // 0 keeps the scene default
	Depth   int    `json:"depth"`   // 0 keeps the scene default
	Seed    int64  `json:"seed"`
	Format  string `json:"format"` // "bmp" or "png"
	Save    bool   `json:"save"`   // Also write the frame to the configured sink
}

// Handler returns the server's routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/console", s.handleConsole)
	return mux
}

// Start serves until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	go s.console.Run(ctx, s.consoleChan)

	srv := &http.Server{Addr: s.config.ServerAddress, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Starting web server on %s", s.config.ServerAddress)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the built-in and file scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.config.ScenesDir)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to list scenes: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	json.NewEncoder(w).Encode(scenes)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneID := r.URL.Query().Get("scene")
	if sceneID == "" {
		sceneID = s.config.Scene
	}

	sceneObj, err := scene.CreateScene(sceneID, s.config.ScenesDir)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	sc := sceneObj.SamplingConfig
	response := map[string]interface{}{
		"scene": sceneID,
		"defaults": map[string]interface{}{
			"width":           sc.Width,
			"height":          sc.Height,
			"samplesPerPixel": sc.SamplesPerPixel,
			"maxDepth":        sc.MaxDepth,
			"aspectRatio":     sceneObj.CameraConfig.AspectRatio,
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": 1, "max": maxImageSize},
			"height":  map[string]int{"min": 1, "max": maxImageSize},
			"samples": map[string]int{"min": 1, "max": maxSamples},
			"depth":   map[string]int{"min": 1, "max": maxDepth},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	json.NewEncoder(w).Encode(response)
}

// handleRender renders one frame and writes it as the response body.
// A client disconnect cancels the render through the request context.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	sceneObj, err := scene.CreateScene(req.Scene, s.config.ScenesDir)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := sceneObj.ApplyOverrides(req.Width, req.Height, req.Samples, req.Depth); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	renderID := fmt.Sprintf("render-%d", s.nextID.Add(1))
	logger := NewWebLogger(renderID, s.consoleChan)

	rt, err := renderer.NewRaytracer(sceneObj.Camera, sceneObj.World, sceneObj.RenderConfig(s.config.Workers, req.Seed), logger)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	fb, stats, err := rt.RenderFrame(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Printf("Render cancelled by client\n")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Render error: "+err.Error())
		return
	}

	data, contentType, err := encodeFrame(fb, req.Format)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to encode image: "+err.Error())
		return
	}

	if req.Save && s.sink != nil {
		name := fmt.Sprintf("%s.%s", renderID, req.Format)
		if err := s.sink.Write(r.Context(), name, data, contentType); err != nil {
			writeJSONError(w, http.StatusBadGateway, "Failed to save image: "+err.Error())
			return
		}
		logger.Printf("Saved %s\n", name)
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-ID", renderID)
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// handleConsole returns the most recent render log messages
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	json.NewEncoder(w).Encode(s.console.Recent())
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: s.config.Scene, Format: "bmp"}

	if sceneID := query.Get("scene"); sceneID != "" {
		req.Scene = sceneID
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", 0, 1, maxDepth); err != nil {
		return nil, err
	}

	req.Seed = s.config.Seed
	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	switch format := query.Get("format"); format {
	case "", "bmp":
	case "png":
		req.Format = "png"
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	if value := query.Get("save"); value != "" {
		if req.Save, err = strconv.ParseBool(value); err != nil {
			return nil, fmt.Errorf("invalid save: %s", value)
		}
	}

	if req.Width*req.Height > 800*600 && req.Samples > 100 {
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

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// encodeFrame encodes fb in the requested format
func encodeFrame(fb *bitmap.Framebuffer, format string) ([]byte, string, error) {
	if format == "png" {
		var buf bytes.Buffer
		if err := png.Encode(&buf, fb); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), output.ContentTypePNG, nil
	}
	data, err := bitmap.EncodeBytes(fb)
	return data, output.ContentTypeBMP, err
}

// writeJSONError writes {"error": message} with the given status
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
