package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/abelbrown/topicradar/internal/otel"
)

// RequestIDHeader carries the request correlation ID.
const RequestIDHeader = "X-Request-ID"

// withRequestID echoes the caller's request ID or assigns a new one.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		dur := time.Since(start)

		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "dur", dur)
		s.events.Emit(otel.Event{
			Level:  otel.LevelInfo,
			Kind:   otel.KindHTTPRequest,
			Comp:   "server",
			Path:   r.URL.Path,
			Status: rec.status,
			Dur:    dur,
			Extra:  map[string]any{"request_id": r.Header.Get(RequestIDHeader)},
		})
	})
}
