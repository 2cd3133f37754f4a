package server

import (
	"fmt"
	"time"

	"github.com/df07/go-scanline-raytracer/pkg/log"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "notice", "warning", "error"
}

// WebLogger implements log.Logger by forwarding to a server logger and copying
// messages at Info and above to a browser console channel
type WebLogger struct {
	renderID    string
	next        log.Logger
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render. next may be nil.
func NewWebLogger(renderID string, next log.Logger, consoleChan chan<- ConsoleMessage) *WebLogger {
	if next == nil {
		next = log.Discard()
	}
	return &WebLogger{
		renderID:    renderID,
		next:        next,
		consoleChan: consoleChan,
	}
}

// send never blocks; messages are dropped when the channel is full
func (wl *WebLogger) send(level, message string) {
	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
	}:
	default:
	}
}

// Debug messages stay in the server log
func (wl *WebLogger) Debug(v ...interface{}) { wl.next.Debug(v...) }

func (wl *WebLogger) Debugf(format string, v ...interface{}) { wl.next.Debugf(format, v...) }

func (wl *WebLogger) Info(v ...interface{}) {
	wl.next.Info(v...)
	wl.send("info", fmt.Sprint(v...))
}

func (wl *WebLogger) Infof(format string, v ...interface{}) {
	wl.next.Infof(format, v...)
	wl.send("info", fmt.Sprintf(format, v...))
}

func (wl *WebLogger) Notice(v ...interface{}) {
	wl.next.Notice(v...)
	wl.send("notice", fmt.Sprint(v...))
}

func (wl *WebLogger) Noticef(format string, v ...interface{}) {
	wl.next.Noticef(format, v...)
	wl.send("notice", fmt.Sprintf(format, v...))
}

func (wl *WebLogger) Warning(v ...interface{}) {
	wl.next.Warning(v...)
	wl.send("warning", fmt.Sprint(v...))
}

func (wl *WebLogger) Warningf(format string, v ...interface{}) {
	wl.next.Warningf(format, v...)
	wl.send("warning", fmt.Sprintf(format, v...))
}

func (wl *WebLogger) Error(v ...interface{}) {
	wl.next.Error(v...)
	wl.send("error", fmt.Sprint(v...))
}

func (wl *WebLogger) Errorf(format string, v ...interface{}) {
	wl.next.Errorf(format, v...)
	wl.send("error", fmt.Sprintf(format, v...))
}
