package router

import (
	"net/http"

	"github.com/Zakaria-Tajer/fx/internal/handler"
	"github.com/Zakaria-Tajer/fx/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	dealHandler *handler.DealHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Metrics)

	// Health check endpoint (no authentication required)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	}).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/api/deals/import", dealHandler.Import).Methods(http.MethodPost)
	r.HandleFunc("/csv/import", dealHandler.Import).Methods(http.MethodPost)
	r.HandleFunc("/api/deals/{dealId}", dealHandler.GetByDealID).Methods(http.MethodGet)

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = r
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.RequestID(h)
	h = middleware.Recovery(logger)(h)

	return h
}
