package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger. Messages are also written to the server log;
// when the console channel is full the web copy is dropped.
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	log.Printf("[%s] %s", wl.renderID, message)

	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     "info",
	}:
	default:
	}
}

// streamConsoleMessages forwards console messages as SSE events until stop is
// closed or the client disconnects. Messages still buffered at stop are flushed.
func streamConsoleMessages(ctx context.Context, stop <-chan struct{}, consoleChan <-chan ConsoleMessage, events chan<- SSEEvent) {
	forward := func(msg ConsoleMessage) bool {
		data, err := json.Marshal(msg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			return true
		}
		select {
		case events <- SSEEvent{Type: "console", Data: string(data)}:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case msg := <-consoleChan:
			if !forward(msg) {
				return
			}
		case <-stop:
			for {
				select {
				case msg := <-consoleChan:
					if !forward(msg) {
						return
					}
				default:
					return
				}
			}
		case <-ctx.Done():
			return
		}
	}
}
