package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// progressInterval is how often scanline progress is pushed to the client
const progressInterval = 200 * time.Millisecond

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "progress", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// ProgressUpdate reports completed scanlines
type ProgressUpdate struct {
	Completed int   `json:"completed"`
	Total     int   `json:"total"`
	ElapsedMs int64 `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int   `json:"totalPixels"`
	TotalSamples   int   `json:"totalSamples"`
	Workers        int   `json:"workers"`
	Blocks         int   `json:"blocks"`
	PrimitiveCount int   `json:"primitiveCount"`
}

// CompleteUpdate carries the finished image
type CompleteUpdate struct {
	Scene     string `json:"scene"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

type renderResult struct {
	buffer *renderer.PixelBuffer
	stats  renderer.RenderStats
}

// handleRender renders a scene and streams progress, console output and the
// final image via SSE. GET selects a scene by name, POST uploads an XML scene.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	setSSEHeaders(w)
	ctx := r.Context()

	// Single writer goroutine owns the response
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		writeSSEEvents(ctx, w, sseEventChan)
		close(writerDone)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(r, req)
	if err != nil {
		sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Scene error: %v", err))
		return
	}

	// Console logging for this render
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)

	stopConsole := make(chan struct{})
	consoleDone := make(chan struct{})
	go func() {
		streamConsoleMessages(ctx, stopConsole, consoleChan, sseEventChan)
		close(consoleDone)
	}()
	consoleStopped := false
	stopConsoleStream := func() {
		if !consoleStopped {
			consoleStopped = true
			close(stopConsole)
			<-consoleDone
		}
	}
	defer stopConsoleStream()

	raytracer := renderer.NewRaytracer(sceneObj, renderer.RenderConfig{
		BlockSize:  renderer.DefaultBlockSize,
		NumWorkers: req.Workers,
		Seed:       req.Seed,
	}, webLogger)
	progress := raytracer.Progress()

	// The render cannot be interrupted; a disconnected client only stops the stream
	startTime := time.Now()
	done := make(chan renderResult, 1)
	go func() {
		buffer, stats := raytracer.Render()
		done <- renderResult{buffer: buffer, stats: stats}
	}()

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			sendProgress(ctx, sseEventChan, progress, startTime)

		case result := <-done:
			stopConsoleStream()
			sendProgress(ctx, sseEventChan, progress, startTime)

			imageData, err := bufferToBase64PNG(result.buffer)
			if err != nil {
				sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("failed to encode image: %v", err))
				return
			}

			update := CompleteUpdate{
				Scene:     req.Scene,
				Width:     result.buffer.Width,
				Height:    result.buffer.Height,
				ImageData: imageData,
				Stats: Stats{
					TotalPixels:    result.stats.TotalPixels,
					TotalSamples:   result.stats.TotalSamples,
					Workers:        result.stats.Workers,
					Blocks:         result.stats.Blocks,
					PrimitiveCount: sceneObj.GetPrimitiveCount(),
				},
				ElapsedMs: time.Since(startTime).Milliseconds(),
			}
			sendJSONEvent(ctx, sseEventChan, "complete", update)
			return
		}
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents writes all SSE events from a single goroutine until the
// channel is closed or the client disconnects
func writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// sendEvent queues an event unless the client has gone away
func sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, eventType, data string) {
	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: data}:
	case <-ctx.Done():
	}
}

func sendJSONEvent(ctx context.Context, sseEventChan chan<- SSEEvent, eventType string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", eventType, err)
		return
	}
	sendEvent(ctx, sseEventChan, eventType, string(data))
}

func sendProgress(ctx context.Context, sseEventChan chan<- SSEEvent, progress *renderer.Progress, startTime time.Time) {
	sendJSONEvent(ctx, sseEventChan, "progress", ProgressUpdate{
		Completed: progress.Completed(),
		Total:     progress.Total(),
		ElapsedMs: time.Since(startTime).Milliseconds(),
	})
}

// bufferToBase64PNG converts a rendered image to base64-encoded PNG
func bufferToBase64PNG(pb *renderer.PixelBuffer) (string, error) {
	var buf bytes.Buffer
	if err := imageio.EncodePNG(&buf, pb); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
