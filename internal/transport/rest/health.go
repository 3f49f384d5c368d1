package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/ycsite/siteops/internal/service/assistant"
)

const pingTimeout = 3 * time.Second

type storePinger interface {
	Ping(ctx context.Context) error
}

type aiStatuser interface {
	Status() assistant.Status
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	store   storePinger
	ai      aiStatuser
	version string
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler. ai may be nil.
func NewHealthHandler(store storePinger, ai aiStatuser, version string) *HealthHandler {
	return &HealthHandler{store: store, ai: ai, version: version, now: time.Now}
}

// HealthResponse is the JSON response for /health, /live and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Service    string                `json:"service,omitempty"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now()})
}

// Ready is the readiness probe: 200 when the store answers, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "down", Timestamp: h.now()})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now()})
}

// Health reports every component. Only the store decides the overall
// status; the assistant being offline is expected on a site laptop.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	components := make(map[string]CompStatus, 2)
	overall, code := "healthy", http.StatusOK

	start := time.Now()
	if err := h.store.Ping(ctx); err != nil {
		components["store"] = CompStatus{Status: "down"}
		overall, code = "down", http.StatusServiceUnavailable
	} else {
		components["store"] = CompStatus{Status: "ok", Latency: time.Since(start).String()}
	}

	if h.ai != nil {
		st := h.ai.Status()
		if st.Connected {
			components["ai"] = CompStatus{Status: "ok", Detail: st.Model}
		} else {
			components["ai"] = CompStatus{Status: "offline"}
		}
	}

	writeJSON(w, code, HealthResponse{
		Status:     overall,
		Service:    serviceName,
		Version:    h.version,
		Components: components,
		Timestamp:  h.now(),
	})
}
