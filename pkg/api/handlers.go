// Package api exposes the pipeline service over HTTP with JSON payloads.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/your-org/pipelines/internal/metrics"
	"github.com/your-org/pipelines/pkg/action"
	"github.com/your-org/pipelines/pkg/engine"
	"github.com/your-org/pipelines/pkg/pipeline"
)

// Handlers contains HTTP handlers for the pipeline API
type Handlers struct {
	pipeline *pipeline.Pipeline
	logger   *slog.Logger
}

// NewHandlers creates a new handlers instance
func NewHandlers(p *pipeline.Pipeline, logger *slog.Logger) *Handlers {
	return &Handlers{
		pipeline: p,
		logger:   logger,
	}
}

// RegisterRoutes attaches the API routes to a mux
func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/actions", h.instrument("/actions", h.HandleActions))
	mux.HandleFunc("/actions/", h.instrument("/actions/", h.HandleAction))
	mux.HandleFunc("/runs", h.instrument("/runs", h.HandleRuns))
	mux.HandleFunc("/runs/", h.instrument("/runs/", h.HandleRun))
	mux.HandleFunc("/health", h.HandleHealth)
}

// HandleActions handles /actions endpoints
func (h *Handlers) HandleActions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w, r)
		return
	}

	actions, err := h.pipeline.Registry().List()
	if err != nil {
		h.error(w, err, http.StatusInternalServerError)
		return
	}

	h.json(w, ListActionsResponse{Actions: actions})
}

// HandleAction handles /actions/{name} and /actions/{name}/run endpoints
func (h *Handlers) HandleAction(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/actions/")
	if path == "" {
		h.notFound(w, r)
		return
	}

	// Action names contain no slash, so anything after one is a subresource
	name := path
	sub := ""
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		name = path[:idx]
		sub = path[idx+1:]
	}

	switch sub {
	case "":
		if r.Method != http.MethodGet {
			h.methodNotAllowed(w, r)
			return
		}
		h.getAction(w, r, name)
	case "run":
		if r.Method != http.MethodPost {
			h.methodNotAllowed(w, r)
			return
		}
		h.runAction(w, r, name)
	default:
		h.notFound(w, r)
	}
}

// HandleRuns handles /runs endpoints
func (h *Handlers) HandleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w, r)
		return
	}

	records := h.pipeline.Runs().List(r.URL.Query().Get("action"))
	h.json(w, ListRunsResponse{Runs: records})
}

// HandleRun handles /runs/{id} endpoints
func (h *Handlers) HandleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w, r)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/runs/")
	if id == "" {
		h.notFound(w, r)
		return
	}

	rec, err := h.pipeline.Runs().Get(id)
	if err != nil {
		h.error(w, err, http.StatusNotFound)
		return
	}

	h.json(w, rec)
}

// HandleHealth handles health check requests
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	})
}

// getAction returns a single action definition
func (h *Handlers) getAction(w http.ResponseWriter, r *http.Request, name string) {
	def, err := h.pipeline.Registry().Get(name)
	if err != nil {
		if action.IsNotFound(err) {
			h.error(w, err, http.StatusNotFound)
		} else {
			h.error(w, err, http.StatusBadRequest)
		}
		return
	}

	h.json(w, def)
}

// runAction invokes an action and returns its run record
func (h *Handlers) runAction(w http.ResponseWriter, r *http.Request, name string) {
	rec, err := h.pipeline.Invoke(r.Context(), name)
	if err != nil {
		if action.IsNotFound(err) {
			h.error(w, err, http.StatusNotFound)
		} else if engine.IsExecFailed(err) {
			// The engine reported the failure; hand back the failed run
			h.jsonStatus(w, RunActionResponse{Run: rec}, http.StatusBadGateway)
		} else {
			h.error(w, err, http.StatusBadGateway)
		}
		return
	}

	h.json(w, RunActionResponse{Run: rec})
}

// Helper methods

func (h *Handlers) json(w http.ResponseWriter, data interface{}) {
	h.jsonStatus(w, data, http.StatusOK)
}

func (h *Handlers) jsonStatus(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) error(w http.ResponseWriter, err interface{}, status int) {
	h.errorWithCode(w, err, "", status)
}

func (h *Handlers) errorWithCode(w http.ResponseWriter, err interface{}, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := ErrorResponse{
		Code: code,
	}

	switch v := err.(type) {
	case string:
		resp.Error = v
	case error:
		resp.Error = v.Error()
	default:
		resp.Error = "unknown error"
	}

	json.NewEncoder(w).Encode(resp)
}

func (h *Handlers) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.error(w, "method not allowed", http.StatusMethodNotAllowed)
}

func (h *Handlers) notFound(w http.ResponseWriter, r *http.Request) {
	h.error(w, "not found", http.StatusNotFound)
}

// instrument wraps a handler with the request counter
func (h *Handlers) instrument(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		metrics.HTTPRequestsTotal.WithLabelValues(path, r.Method, strconv.Itoa(rec.status)).Inc()
	}
}

// statusRecorder captures the response status for metrics
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
