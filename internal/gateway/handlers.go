package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/flemzord/peerlens/internal/entity"
	"github.com/flemzord/peerlens/internal/resolve"
)

// apiResponse is the envelope for every JSON API response.
type apiResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Data    *entity.Record `json:"data,omitempty"`
}

// handleInfo returns an http.HandlerFunc for GET /api/info?query=.
func (g *Gateway) handleInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("query")

		rec, err := g.lookup(r, raw)
		if err != nil {
			code, msg := classifyError(err)
			writeJSON(w, code, apiResponse{Status: "error", Message: msg})
			return
		}

		writeJSON(w, http.StatusOK, apiResponse{Status: "success", Data: rec})
	}
}

// lookup runs a resolver lookup and records the metric outcome.
func (g *Gateway) lookup(r *http.Request, raw string) (*entity.Record, error) {
	start := time.Now()
	rec, err := g.resolver.Lookup(r.Context(), raw)
	g.metrics.RecordLookup(outcome(err), time.Since(start))
	return rec, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, resolve.ErrInvalidQuery):
		return "invalid"
	case errors.Is(err, resolve.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// classifyError maps resolver errors to an HTTP status and a client-safe
// message.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, resolve.ErrInvalidQuery):
		return http.StatusBadRequest, "query must be a numeric ID or a username"
	case errors.Is(err, resolve.ErrNotFound):
		return http.StatusNotFound, "entity not found"
	default:
		return http.StatusBadGateway, "lookup failed: " + err.Error()
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// HealthResponse is the JSON response for GET /health.
type HealthResponse struct {
	Status   string   `json:"status"`
	Backends []string `json:"backends"`
}

// handleHealth returns an http.HandlerFunc for GET /health. The service
// is degraded when only the Bot API backend is available.
func (g *Gateway) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := HealthResponse{
			Status:   "ok",
			Backends: g.backends,
		}
		if len(resp.Backends) < 2 {
			resp.Status = "degraded"
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// StatusResponse is the JSON response for GET /status.
type StatusResponse struct {
	Uptime   time.Duration   `json:"uptime_seconds"`
	Metrics  MetricsSnapshot `json:"metrics"`
	Backends []string        `json:"backends"`
}

// handleStatus returns an http.HandlerFunc for GET /status.
func (g *Gateway) handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := StatusResponse{
			Uptime:   time.Since(g.startedAt).Truncate(time.Second),
			Metrics:  g.metrics.Snapshot(),
			Backends: g.backends,
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
