package server

import (
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"
)

// Console message levels
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// ConsoleMessage is one line of render output shown in the browser console
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
}

// WebLogger forwards the log output of one render to its console stream.
// Every line is also written to the server log, prefixed with the render ID.
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	dropped     atomic.Int64
}

// NewWebLogger creates a logger for a render. A nil channel only writes to the server log.
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) *WebLogger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// RenderID returns the ID messages are tagged with
func (wl *WebLogger) RenderID() string {
	return wl.renderID
}

// Printf implements core.Logger, the renderer's pass progress arrives here
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	wl.send(LevelInfo, format, args...)
}

// Warnf logs a message the client should notice but that does not stop the render
func (wl *WebLogger) Warnf(format string, args ...interface{}) {
	wl.send(LevelWarning, format, args...)
}

// Errorf logs a failed pass, tile or request
func (wl *WebLogger) Errorf(format string, args ...interface{}) {
	wl.send(LevelError, format, args...)
}

// Dropped returns how many messages were skipped because the console stream was full
func (wl *WebLogger) Dropped() int64 {
	return wl.dropped.Load()
}

func (wl *WebLogger) send(level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	log.Printf("[%s] %s: %s", wl.renderID, level, strings.TrimRight(message, "\n"))

	if wl.consoleChan == nil {
		return
	}

	// Never block the render on a slow client
	select {
	case wl.consoleChan <- ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
	}:
	default:
		wl.dropped.Add(1)
	}
}
