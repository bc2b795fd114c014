package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pitchside/strikeplan/internal/events"
	"github.com/pitchside/strikeplan/internal/refdata"
)

func NewRouter(opt Optimizer, registry *refdata.Registry, ev events.Client, allowedOrigins []string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(CORSMiddleware(allowedOrigins))
	r.Use(RateLimitMiddleware(300))

	optimize := NewOptimizeHandler(opt, ev, logger)
	reference := NewReferenceHandler(registry)

	r.Route("/api", func(r chi.Router) {
		r.Post("/optimize", optimize.Optimize)

		r.Route("/reference", func(r chi.Router) {
			r.Get("/players", reference.Players)
			r.Get("/venues", reference.Venues)
			r.Get("/bowler-groups", reference.BowlerGroups)
		})
	})

	// Embedded single-page dashboard
	r.Get("/", serveDashboard)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(dashboardFS)))

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
