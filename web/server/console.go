package server

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
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

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	log.Printf("[%s] %s", wl.renderID, message)

	// Non-blocking; messages are dropped while the channel is full
	if wl.consoleChan != nil {
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
}

// ConsoleLog keeps the most recent console messages, oldest first
type ConsoleLog struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	limit    int
}

// NewConsoleLog creates a console log holding at most limit messages
func NewConsoleLog(limit int) *ConsoleLog {
	return &ConsoleLog{limit: max(1, limit)}
}

// Add appends msg, evicting the oldest message when the log is full
func (c *ConsoleLog) Add(msg ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == c.limit {
		copy(c.messages, c.messages[1:])
		c.messages = c.messages[:c.limit-1]
	}
	c.messages = append(c.messages, msg)
}

// Recent returns a copy of the retained messages
func (c *ConsoleLog) Recent() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ConsoleMessage(nil), c.messages...)
}

// Run drains messages into the log until ctx is cancelled or messages is closed
func (c *ConsoleLog) Run(ctx context.Context, messages <-chan ConsoleMessage) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			c.Add(msg)
		}
	}
}
