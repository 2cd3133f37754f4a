package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/df07/go-scanline-raytracer/pkg/renderer"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	SceneRequest
	SamplesPerPixel int   `json:"samplesPerPixel"` // 0 keeps the scene default
	MaxDepth        int   `json:"maxDepth"`        // -1 keeps the scene default
	Seed            int64 `json:"seed"`
}

// ProgressUpdate is sent for every scanline, in top-to-bottom order
type ProgressUpdate struct {
	Row           int   `json:"row"`
	RowsCompleted int   `json:"rowsCompleted"`
	TotalRows     int   `json:"totalRows"`
	ElapsedMs     int64 `json:"elapsedMs"`
}

// ImageUpdate carries the finished frame
type ImageUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
}

// Stats represents render statistics
type Stats struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	SamplesPerPixel  int     `json:"samplesPerPixel"`
	MaxDepth         int     `json:"maxDepth"`
	TotalSamples     int64   `json:"totalSamples"`
	Workers          int     `json:"workers"`
	PrimitiveCount   int     `json:"primitiveCount"`
	ElapsedMs        int64   `json:"elapsedMs"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
	AverageLuminance float64 `json:"averageLuminance"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string // "console", "progress", "image", "error", "complete"
	Data string
}

// parseRenderRequest parses request parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	sceneReq, err := parseSceneRequest(values)
	if err != nil {
		return nil, err
	}

	req := &RenderRequest{SceneRequest: sceneReq}
	if req.SamplesPerPixel, err = parseIntParam(values, "spp", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", -1, 0, maxDepth); err != nil {
		return nil, err
	}
	if req.Seed, err = parseInt64Param(values, "seed", renderer.DefaultRenderConfig().Seed); err != nil {
		return nil, err
	}

	return req, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// handleRender renders a scene, streaming row progress and the final image via SSE.
// A client disconnect cancels the render through the request context.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	setSSEHeaders(w)
	ctx := r.Context()

	// A single goroutine owns the response writer
	events := make(chan SSEEvent, 100)
	var writer sync.WaitGroup
	writer.Add(1)
	go func() {
		defer writer.Done()
		writeSSEEvents(ctx, w, events)
	}()
	defer func() {
		close(events)
		writer.Wait()
	}()

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		sendEvent(ctx, events, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createSizedScene(req.SceneRequest)
	if err != nil {
		sendEvent(ctx, events, "error", err.Error())
		return
	}
	if req.SamplesPerPixel > 0 {
		sceneObj.SamplingConfig.SamplesPerPixel = req.SamplesPerPixel
	}
	if req.MaxDepth >= 0 {
		sceneObj.SamplingConfig.MaxDepth = req.MaxDepth
	}

	rt, err := sceneObj.NewRaytracer()
	if err != nil {
		sendEvent(ctx, events, "error", err.Error())
		return
	}

	// Console messages are forwarded until the render finishes
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, logger, consoleChan)
	var forwarder sync.WaitGroup
	forwarder.Add(1)
	go func() {
		defer forwarder.Done()
		streamConsoleMessages(ctx, consoleChan, events)
	}()

	startTime := time.Now()
	config := renderer.RenderConfig{Seed: req.Seed}
	frame, stats, err := renderer.NewScanlineRenderer(rt, config, webLogger).Render(ctx, func(update renderer.RowUpdate) {
		data, _ := json.Marshal(ProgressUpdate{
			Row:           update.Row,
			RowsCompleted: update.RowsCompleted,
			TotalRows:     update.TotalRows,
			ElapsedMs:     time.Since(startTime).Milliseconds(),
		})
		sendEvent(ctx, events, "progress", string(data))
	})

	close(consoleChan)
	forwarder.Wait()

	if err != nil {
		if ctx.Err() != nil {
			logger.Infof("Render %s cancelled: client disconnected", renderID)
			return
		}
		sendEvent(ctx, events, "error", fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	img := frame.Image()
	imageData, err := imageToBase64PNG(img)
	if err != nil {
		sendEvent(ctx, events, "error", fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	data, err := json.Marshal(ImageUpdate{
		ImageData: imageData,
		Stats: Stats{
			Width:            stats.Width,
			Height:           stats.Height,
			SamplesPerPixel:  stats.SamplesPerPixel,
			MaxDepth:         stats.MaxDepth,
			TotalSamples:     stats.TotalSamples,
			Workers:          len(stats.Workers),
			PrimitiveCount:   sceneObj.GetPrimitiveCount(),
			ElapsedMs:        stats.RenderTime.Milliseconds(),
			SamplesPerSecond: stats.SamplesPerSecond(),
			AverageLuminance: renderer.CalculateAverageLuminance(img),
		},
	})
	if err != nil {
		sendEvent(ctx, events, "error", fmt.Sprintf("Failed to encode stats: %v", err))
		return
	}

	sendEvent(ctx, events, "image", string(data))
	sendEvent(ctx, events, "complete", "Rendering completed")
}

// sendEvent queues an event unless the client has gone away
func sendEvent(ctx context.Context, events chan<- SSEEvent, eventType, data string) {
	select {
	case events <- SSEEvent{Type: eventType, Data: data}:
	case <-ctx.Done():
	}
}

// writeSSEEvents writes queued events until the channel is closed or the client disconnects.
// After a failed write the remaining events are drained so senders never block.
func writeSSEEvents(ctx context.Context, w http.ResponseWriter, events <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	broken := false
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if broken {
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				broken = true
				continue
			}
			if flusher != nil {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards console messages as SSE events, dropping them when the queue is full
func streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, events chan<- SSEEvent) {
	for msg := range consoleChan {
		data, err := json.Marshal(msg)
		if err != nil {
			logger.Warningf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case events <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
		}
	}
}
