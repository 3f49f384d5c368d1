package rest

import (
	"log/slog"
	"net/http"

	"github.com/ycsite/siteops/internal/config"
	"github.com/ycsite/siteops/internal/transport/middleware"
)

// NewRouter mounts all endpoints and wraps them in the middleware chain
// RequestID, Logger, Recovery, CORS. extra runs innermost, around the
// handlers.
func NewRouter(
	health *HealthHandler,
	api *APIHandler,
	cors config.CORSConfig,
	logger *slog.Logger,
	extra ...middleware.Middleware,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)

	mux.HandleFunc("GET /api/status", api.Status)
	mux.HandleFunc("GET /api/weather/{location}", api.Weather)
	mux.HandleFunc("GET /api/dashboard", api.Dashboard)
	mux.HandleFunc("GET /api/reports/daily", api.DailyReport)
	mux.HandleFunc("POST /api/assistant/ask", api.Ask)
	mux.HandleFunc("POST /api/sync/logs", api.Sync)
	mux.HandleFunc("POST /api/sync/finance", api.Sync)

	mux.HandleFunc("/", NotFound)

	chain := append([]middleware.Middleware{
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cors),
	}, extra...)

	return middleware.Chain(chain...)(mux)
}
