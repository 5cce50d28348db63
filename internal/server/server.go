// Package server exposes the research pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/abelbrown/topicradar/internal/logging"
	"github.com/abelbrown/topicradar/internal/model"
	"github.com/abelbrown/topicradar/internal/otel"
)

// Runner performs one research run. Empty regions mean the defaults.
type Runner interface {
	Run(ctx context.Context, regions []model.Region) (*model.ResearchResponse, error)
}

// Options configures a Server.
type Options struct {
	// RateLimit is requests per second on /api/research; 0 disables it.
	RateLimit float64
	Burst     int
	Logger    *log.Logger
	Events    *otel.Logger
	// Ring backs /debug/events; nil disables the endpoint.
	Ring *otel.RingBuffer
}

// Server routes HTTP requests to the pipeline.
type Server struct {
	runner Runner
	logger *log.Logger
	events *otel.Logger
	ring   *otel.RingBuffer

	mu      sync.RWMutex
	limiter *rate.Limiter

	handler http.Handler
}

// errorBody is the JSON error shape.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// New creates a Server.
func New(runner Runner, opts Options) *Server {
	s := &Server{
		runner: runner,
		logger: logging.Or(opts.Logger).WithPrefix("server"),
		events: opts.Events,
		ring:   opts.Ring,
	}
	s.SetRateLimit(opts.RateLimit, opts.Burst)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/research", s.handleResearch)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /debug/events", s.handleEvents)
	s.handler = s.withRequestID(s.withLogging(mux))
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// SetRateLimit replaces the inbound limiter. rps <= 0 disables limiting.
func (s *Server) SetRateLimit(rps float64, burst int) {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if burst < 1 {
		burst = 1
	}
	s.mu.Lock()
	s.limiter = rate.NewLimiter(limit, burst)
	s.mu.Unlock()
}

func (s *Server) allow() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.limiter.Allow()
}

func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	if !s.allow() {
		w.Header().Set("Retry-After", "1")
		writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "rate_limited", Message: "too many research requests"})
		return
	}

	var regions []model.Region
	if param := r.URL.Query().Get("regions"); param != "" {
		parsed, err := model.ParseRegions(param)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid_regions", Message: err.Error()})
			return
		}
		regions = parsed
	}

	resp, err := s.runner.Run(r.Context(), regions)
	if err != nil {
		if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
			// Client went away; nobody is listening.
			return
		}
		s.logger.Error("research failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "failed", Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.ring == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not_found", Message: "event buffer disabled"})
		return
	}

	events := s.ring.Snapshot()
	if n, err := strconv.Atoi(r.URL.Query().Get("n")); err == nil && n > 0 {
		events = s.ring.Last(n)
	}
	if events == nil {
		events = []otel.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// writeJSON writes v as indented JSON.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(`{"error":"failed","message":"encode response"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// ListenAndServe serves handler on addr until ctx is done, then shuts
// down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, readTimeout, writeTimeout time.Duration, logger *log.Logger) error {
	logger = logging.Or(logger).WithPrefix("server")
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
