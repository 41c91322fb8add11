package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers, limiter *RateLimiter, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (no rate limit)
	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Route("/visitors", func(r chi.Router) {
			r.Get("/", h.ListVisitors)
			r.Post("/", h.CreateVisitor)
			r.Get("/{id}", h.GetVisitor)
			r.Get("/{id}/insight", h.GetVisitorInsight)
			r.Put("/{id}/milestones/{week}", h.UpdateMilestone)
			r.Put("/{id}/status", h.TransitionStatus)
			r.Put("/{id}/monitoring-status", h.TransitionMonitoring)
			r.Put("/{id}/checklist", h.UpdateChecklist)
		})

		// Analytics recompute everything from a fresh snapshot on each
		// request; the limiter bounds that cost.
		r.Group(func(r chi.Router) {
			if limiter != nil {
				r.Use(limiter.Middleware)
			}
			r.Get("/teams/{id}/metrics", h.GetTeamMetrics)
			r.Get("/analytics/performance", h.GetPerformanceBundle)
		})

		r.Post("/actions", h.ActOnRecommendation)
	})

	return r
}
