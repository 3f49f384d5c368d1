package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ycsite/siteops/internal/adapter/provider/llm"
	"github.com/ycsite/siteops/internal/domain"
	"github.com/ycsite/siteops/internal/service/assistant"
	"github.com/ycsite/siteops/internal/service/dashboard"
	"github.com/ycsite/siteops/internal/service/report"
	"github.com/ycsite/siteops/internal/service/weather"
)

const maxAskBody = 64 << 10

type weatherService interface {
	GetWeather(ctx context.Context, location string) *domain.Weather
}

type dashboardService interface {
	GetDashboard(ctx context.Context) (*dashboard.Dashboard, error)
}

type reportService interface {
	DailyReport(ctx context.Context, date time.Time) (*report.DailyReport, error)
}

type assistantService interface {
	Status() assistant.Status
	Ask(ctx context.Context, input assistant.AskInput) assistant.Reply
}

// APIHandler serves the /api endpoints of the local backend.
type APIHandler struct {
	weather   weatherService
	dashboard dashboardService
	reports   reportService
	assistant assistantService
	log       *slog.Logger
	now       func() time.Time
}

// NewAPIHandler creates an APIHandler.
func NewAPIHandler(
	weather weatherService,
	dashboard dashboardService,
	reports reportService,
	assistant assistantService,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		weather:   weather,
		dashboard: dashboard,
		reports:   reports,
		assistant: assistant,
		log:       logger.With("handler", "api"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// StatusResponse describes the running backend.
type StatusResponse struct {
	Online   bool             `json:"online"`
	Message  string           `json:"message"`
	Features Features         `json:"features"`
	AI       assistant.Status `json:"ai"`
}

// Features lists the capabilities the backend offers.
type Features struct {
	OfflineFirst bool `json:"offlineFirst"`
	AIEnabled    bool `json:"aiEnabled"`
	CloudSync    bool `json:"cloudSync"`
}

// Status reports backend liveness and features.
// GET /api/status
func (h *APIHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Online:   true,
		Message:  "Backend is running",
		Features: Features{OfflineFirst: true, AIEnabled: true},
		AI:       h.assistant.Status(),
	})
}

// WeatherResponse is a reading plus work advice.
type WeatherResponse struct {
	*domain.Weather
	Recommendations []string `json:"recommendations"`
}

// Weather returns the current reading for a location. Upstream failures
// degrade to cached or offline readings, never to an error status.
// GET /api/weather/{location}
func (h *APIHandler) Weather(w http.ResponseWriter, r *http.Request) {
	reading := h.weather.GetWeather(r.Context(), r.PathValue("location"))
	writeJSON(w, http.StatusOK, WeatherResponse{
		Weather:         reading,
		Recommendations: weather.Recommendations(reading),
	})
}

// Dashboard returns the aggregated site metrics.
// GET /api/dashboard
func (h *APIHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.dashboard.GetDashboard(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// DailyReport returns the report of one calendar day, today by default.
// GET /api/reports/daily?date=2006-01-02
func (h *APIHandler) DailyReport(w http.ResponseWriter, r *http.Request) {
	date := h.now()
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := time.ParseInLocation(report.DateLayout, v, time.UTC)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	rep, err := h.reports.DailyReport(r.Context(), date)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// AskRequest is the body of an assistant question.
type AskRequest struct {
	Prompt  string        `json:"prompt"`
	Agent   string        `json:"agent,omitempty"`
	History []llm.Message `json:"history,omitempty"`
}

// Ask forwards a question to the site assistant.
// POST /api/assistant/ask
func (h *APIHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAskBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeServiceError(w, r, h.log, domain.NewValidationError("prompt", "required"))
		return
	}

	agent := domain.AgentType(req.Agent)
	if agent != "" && !agent.IsValid() {
		writeServiceError(w, r, h.log, domain.NewValidationError("agent", "unknown agent"))
		return
	}

	writeJSON(w, http.StatusOK, h.assistant.Ask(r.Context(), assistant.AskInput{
		Prompt:  req.Prompt,
		History: req.History,
		Agent:   agent,
	}))
}

// SyncResponse is returned by the sync placeholders.
type SyncResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Synced  int    `json:"synced"`
}

// Sync accepts a sync request. Cloud sync is not offered; nothing is synced.
// POST /api/sync/logs, POST /api/sync/finance
func (h *APIHandler) Sync(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SyncResponse{
		Success: true,
		Message: "Sync feature coming soon",
		Synced:  0,
	})
}
