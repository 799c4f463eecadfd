package api

import (
	"context"
	"net/http"
	"time"

	"tableside/internal/logger"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// RequestID returns the id attached by the logging middleware.
func RequestID(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithLogging tags each request with an id and logs start and completion.
func WithLogging(lg *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey, requestID))

		lg.Debug("request_started", requestID, map[string]any{
			"method": r.Method, "path": r.URL.Path, "remote_addr": r.RemoteAddr,
		})

		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		lg.Debug("request_completed", requestID, map[string]any{
			"method": r.Method, "path": r.URL.Path,
			"status_code": rw.status, "duration_ms": time.Since(start).Milliseconds(),
		})
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
