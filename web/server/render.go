package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/df07/go-flatland-raytracer/pkg/core"
	"github.com/df07/go-flatland-raytracer/pkg/integrator"
	"github.com/df07/go-flatland-raytracer/pkg/output"
	"github.com/df07/go-flatland-raytracer/pkg/renderer"
	"github.com/df07/go-flatland-raytracer/pkg/scene"
)

// Render defaults used when the request leaves a parameter out
const (
	DefaultTileSize  = 64
	DefaultMaxPasses = 4
	DefaultSeed      = 42
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string `json:"scene"`           // Scene name (e.g., "glass-box")
	Width           int    `json:"width"`           // Image width
	Height          int    `json:"height"`          // Image height
	SamplesPerPixel int    `json:"samplesPerPixel"` // Jittered directions per pixel per pass
	MaxDepth        int    `json:"maxDepth"`        // Maximum scattering depth
	MaxPasses       int    `json:"maxPasses"`       // Number of progressive passes
	Seed            int64  `json:"seed"`            // Base seed for the tile random sources
}

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX       int    `json:"tileX"`
	TileY       int    `json:"tileY"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG of just this tile
	PassNumber  int    `json:"passNumber"`
	TileNumber  int    `json:"tileNumber"`  // Current tile number in this pass (1-based)
	TotalTiles  int    `json:"totalTiles"`  // Total number of tiles in the image
	TotalPasses int    `json:"totalPasses"` // Total number of passes planned
}

// PassUpdate is the payload of a passComplete event
type PassUpdate struct {
	PassNumber     int     `json:"passNumber"`
	TotalPasses    int     `json:"totalPasses"`
	ImageData      string  `json:"imageData"` // Base64 encoded PNG of the whole image
	ElapsedMs      int64   `json:"elapsedMs"`
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MinSamples     int     `json:"minSamples"`
	MaxSamplesUsed int     `json:"maxSamplesUsed"`
	ObjectCount    int     `json:"objectCount"`
	IsLast         bool    `json:"isLast"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "passComplete", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// RenderingPipeline contains the configured scene and raytracer
type RenderingPipeline struct {
	Scene     *scene.Scene
	Raytracer *renderer.ProgressiveRaytracer
	Logger    *WebLogger
}

// handleRender handles progressive rendering with real-time tile streaming via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Every event goes through one channel and one writer
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(ctx, w, sseEventChan)
	}()

	consoleChan, webLogger := s.setupConsoleLogging()
	streamCtx, stopStreaming := context.WithCancel(ctx)
	var streams sync.WaitGroup
	streams.Add(1)
	go func() {
		defer streams.Done()
		s.streamConsoleMessages(streamCtx, consoleChan, sseEventChan)
	}()

	// The writer must see every event before the handler returns and the
	// response is finalized
	defer func() {
		stopStreaming()
		streams.Wait()
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		webLogger.Errorf("Invalid request: %v\n", err)
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	if req.Width*req.Height > 800*600 && req.SamplesPerPixel > 64 {
		webLogger.Warnf("Large image (%dx%d) with %d samples per pixel may render slowly\n",
			req.Width, req.Height, req.SamplesPerPixel)
	}

	pipeline, err := s.setupRenderingPipeline(req, webLogger)
	if err != nil {
		webLogger.Errorf("Render setup failed: %v\n", err)
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	startTime := time.Now()
	renderOptions := renderer.RenderOptions{TileUpdates: true}
	passChan, tileChan, errChan := pipeline.Raytracer.RenderProgressive(ctx, renderOptions)

	s.handleRenderingEvents(ctx, sseEventChan, passChan, tileChan, errChan, pipeline, req, startTime)

	if dropped := webLogger.Dropped(); dropped > 0 {
		log.Printf("[%s] %d console messages dropped", webLogger.RenderID(), dropped)
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
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, *WebLogger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents writes events until the channel is closed. After the client
// disconnects it keeps draining so senders never block.
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	broken := false
	for event := range sseEventChan {
		if broken || ctx.Err() != nil {
			continue
		}

		if err := sendSSEEvent(w, event.Type, event.Data); err != nil {
			broken = true
		}
	}
}

// sendSSEEvent writes one event and flushes it to the client
func sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// streamConsoleMessages forwards console messages until ctx is done, then
// flushes what is still buffered. The SSE writer keeps draining until the
// handler closes its channel, so the final sends cannot block.
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for {
		select {
		case consoleMsg := <-consoleChan:
			data, err := json.Marshal(consoleMsg)
			if err != nil {
				log.Printf("[%s] Error marshaling console message: %v", consoleMsg.RenderID, err)
				continue
			}

			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			case <-ctx.Done():
				return
			default:
				// Channel full, skip message to avoid blocking
			}

		case <-ctx.Done():
			for {
				select {
				case consoleMsg := <-consoleChan:
					if data, err := json.Marshal(consoleMsg); err == nil {
						sseEventChan <- SSEEvent{Type: "console", Data: string(data)}
					}
				default:
					return
				}
			}
		}
	}
}

// setupRenderingPipeline creates and configures the scene and raytracer
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger *WebLogger) (*RenderingPipeline, error) {
	sceneObj, err := scene.NewSceneByName(req.Scene)
	if err != nil {
		return nil, err
	}
	logger.Printf("Loaded scene %s with %d objects\n", sceneObj.Name, sceneObj.Len())

	samplingConfig := core.DefaultSamplingConfig()
	samplingConfig.Width = req.Width
	samplingConfig.Height = req.Height
	samplingConfig.SamplesPerPixel = req.SamplesPerPixel
	samplingConfig.MaxDepth = req.MaxDepth

	config := renderer.ProgressiveConfig{
		TileSize:   DefaultTileSize,
		MaxPasses:  req.MaxPasses,
		NumWorkers: 0, // Auto-detect
		Seed:       req.Seed,
	}
	if err := samplingConfig.Validate(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	tracer := integrator.NewLightTracingIntegrator(core.DefaultTransportConfig(), req.MaxDepth)
	raytracer := renderer.NewRaytracer(sceneObj, tracer, samplingConfig)

	return &RenderingPipeline{
		Scene:     sceneObj,
		Raytracer: renderer.NewProgressiveRaytracer(raytracer, config, logger),
		Logger:    logger,
	}, nil
}

// handleRenderingEvents processes the main rendering event loop
func (s *Server) handleRenderingEvents(ctx context.Context, sseEventChan chan<- SSEEvent,
	passChan <-chan renderer.PassResult, tileChan <-chan renderer.TileCompletionResult, errChan <-chan error,
	pipeline *RenderingPipeline, req *RenderRequest, startTime time.Time) {

	// Run until every channel is closed so a buffered final pass is not lost
	for passChan != nil || tileChan != nil || errChan != nil {
		select {
		case passResult, ok := <-passChan:
			if !ok {
				passChan = nil
				continue
			}
			s.handlePassComplete(ctx, sseEventChan, passResult, req, pipeline, startTime)

		case tileResult, ok := <-tileChan:
			if !ok {
				tileChan = nil
				continue
			}
			s.handleTileUpdate(ctx, sseEventChan, tileResult, pipeline.Logger)

		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			pipeline.Logger.Errorf("Rendering failed: %v\n", err)
			s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
			return

		case <-ctx.Done():
			return
		}
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: "Rendering completed"}:
	case <-ctx.Done():
	}
}

// handlePassComplete processes and sends pass completion events
func (s *Server) handlePassComplete(ctx context.Context, sseEventChan chan<- SSEEvent, passResult renderer.PassResult, req *RenderRequest, pipeline *RenderingPipeline, startTime time.Time) {
	if ctx.Err() != nil {
		return
	}

	imageData, err := s.imageToBase64PNG(passResult.Image)
	if err != nil {
		pipeline.Logger.Errorf("Error encoding pass %d image: %v\n", passResult.PassNumber, err)
		return
	}

	update := PassUpdate{
		PassNumber:     passResult.PassNumber,
		TotalPasses:    req.MaxPasses,
		ImageData:      imageData,
		ElapsedMs:      time.Since(startTime).Milliseconds(),
		TotalPixels:    passResult.Stats.TotalPixels,
		TotalSamples:   passResult.Stats.TotalSamples,
		AverageSamples: passResult.Stats.AverageSamples,
		MinSamples:     passResult.Stats.MinSamples,
		MaxSamplesUsed: passResult.Stats.MaxSamplesUsed,
		ObjectCount:    pipeline.Scene.Len(),
		IsLast:         passResult.IsLast,
	}

	data, err := json.Marshal(update)
	if err != nil {
		pipeline.Logger.Errorf("Error marshaling pass %d update: %v\n", passResult.PassNumber, err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "passComplete", Data: string(data)}:
	case <-ctx.Done():
	}
}

// handleTileUpdate processes and sends tile update events
func (s *Server) handleTileUpdate(ctx context.Context, sseEventChan chan<- SSEEvent, tileResult renderer.TileCompletionResult, logger *WebLogger) {
	if ctx.Err() != nil {
		return
	}

	tileData, err := s.imageToBase64PNG(tileResult.TileImage)
	if err != nil {
		logger.Errorf("Error encoding tile image (%d, %d): %v\n", tileResult.TileX, tileResult.TileY, err)
		return
	}

	update := TileUpdate{
		TileX:       tileResult.TileX,
		TileY:       tileResult.TileY,
		ImageData:   tileData,
		PassNumber:  tileResult.PassNumber,
		TileNumber:  tileResult.TileNumber,
		TotalTiles:  tileResult.TotalTiles,
		TotalPasses: tileResult.TotalPasses,
	}

	data, err := json.Marshal(update)
	if err != nil {
		logger.Errorf("Error marshaling tile update (%d, %d): %v\n", tileResult.TileX, tileResult.TileY, err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "tile", Data: string(data)}:
	case <-ctx.Done():
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	defaults := core.DefaultSamplingConfig()

	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = scene.DefaultSceneName
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", defaults.Width, MinImageSize, MaxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", defaults.Height, MinImageSize, MaxImageSize); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(query, "samplesPerPixel", defaults.SamplesPerPixel, 1, MaxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", defaults.MaxDepth, 0, MaxDepth); err != nil {
		return nil, err
	}
	if req.MaxPasses, err = parseIntParam(query, "maxPasses", DefaultMaxPasses, 1, MaxPasses); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(query, "seed", DefaultSeed, 0, math.MaxInt32)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	return req, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img *image.RGBA) (string, error) {
	var buf bytes.Buffer
	if err := output.EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
