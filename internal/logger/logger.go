package logger

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
)

// Logger writes one JSON object per line to stdout.
type Logger struct{ service string }

func New(service string) *Logger { return &Logger{service: service} }

// GenerateRequestID returns a fresh id to correlate log lines of one request.
func GenerateRequestID() string { return uuid.NewString() }

func (l *Logger) log(level, action, requestID string, fields map[string]any, err error) {
	entry := map[string]any{
		"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		"level":      level,
		"service":    l.service,
		"action":     action,
		"message":    action,
		"hostname":   hostname(),
		"request_id": requestID,
	}
	for k, v := range fields {
		entry[k] = v
	}
	if err != nil {
		entry["error"] = err.Error()
	}
	_ = json.NewEncoder(os.Stdout).Encode(entry)
}

func (l *Logger) Info(action, requestID string, fields map[string]any) {
	l.log("INFO", action, requestID, fields, nil)
}

func (l *Logger) Debug(action, requestID string, fields map[string]any) {
	l.log("DEBUG", action, requestID, fields, nil)
}

func (l *Logger) Error(action, requestID string, err error, fields map[string]any) {
	l.log("ERROR", action, requestID, fields, err)
}

func hostname() string { h, _ := os.Hostname(); return h }
