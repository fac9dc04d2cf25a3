// Package api implements the HTTP layout service.
//
// The service exposes a single computation endpoint plus health checks:
//
//	POST /v1/layout   compute a layout for a topology document
//	GET  /healthz     liveness probe
//
// Requests and responses are JSON. Binary artifacts (png, pdf) are
// base64-encoded by the standard library's JSON encoding of []byte.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/azsce/schematic/pkg/circuit"
	"github.com/azsce/schematic/pkg/layout"
	"github.com/azsce/schematic/pkg/observability"
	"github.com/azsce/schematic/pkg/pipeline"
)

// Server handles layout requests over HTTP.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	maxBody int64
}

// New creates a server. A maxBody of zero defaults to 1 MiB.
func New(runner *pipeline.Runner, logger *log.Logger, maxBody int64) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	return &Server{runner: runner, logger: logger, maxBody: maxBody}
}

// Router builds the HTTP routing table with standard middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/layout", s.handleLayout)
	return r
}

// LayoutRequest is the body of POST /v1/layout.
type LayoutRequest struct {
	Topology circuit.TopologyJSON `json:"topology"`
	Options  pipeline.Options     `json:"options"`
}

// LayoutResponse is the body of a successful layout computation.
type LayoutResponse struct {
	TopologyHash string             `json:"topology_hash"`
	Graph        *layout.Graph      `json:"graph"`
	Artifacts    map[string][]byte  `json:"artifacts,omitempty"`
	Stats        pipeline.Stats     `json:"stats"`
	Cache        pipeline.CacheInfo `json:"cache"`
}

// ErrorResponse is the body of any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "malformed request: " + err.Error()})
		return
	}

	topo, err := circuit.ToTopology(req.Topology)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	opts := req.Options
	opts.Logger = s.logger
	result, err := s.runner.Execute(r.Context(), topo, opts)
	if err != nil {
		var igErr *layout.InvalidGraphError
		if errors.As(err, &igErr) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: igErr.Reason})
			return
		}
		s.logger.Error("layout failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "layout failed"})
		return
	}

	writeJSON(w, http.StatusOK, LayoutResponse{
		TopologyHash: result.TopologyHash,
		Graph:        result.Graph,
		Artifacts:    result.Artifacts,
		Stats:        result.Stats,
		Cache:        result.CacheInfo,
	})
}

// requestID attaches a UUID to each request for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

type ctxKey int

const requestIDKey ctxKey = 0

// RequestID returns the request's correlation ID, if set.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// logRequests emits one structured log line per request and feeds the API
// observability hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.API().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		observability.API().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", w.Header().Get("X-Request-ID"),
			"duration", duration.Round(time.Millisecond))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
