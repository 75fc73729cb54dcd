package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/arifwid/kantorku/internal/metrics"
)

// healthCheckTimeout bounds the database probe in the health handler.
const healthCheckTimeout = 2 * time.Second

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// Health check (no auth required)
	r.Get("/health", s.handleHealth)

	// Prometheus scrape endpoint (no auth required)
	if s.gatherer != nil {
		r.Handle("/metrics", metrics.Handler(s.gatherer))
	}

	// Credential endpoints (no auth required, rate limited)
	r.Group(func(r chi.Router) {
		r.Use(s.rateLimitMiddleware)
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
	})

	r.Post("/auth/logout", s.handleLogout)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/auth/protected", s.handleProtected)

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", s.handleListMenu)
			r.Post("/", s.handleCreateMenu)
			r.Get("/menu-kategori", s.handleListMenuWithCategory)
			r.Get("/kategori", s.handleListCategories)
			r.Get("/last-id", s.handleMenuLastID)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetMenu)
				r.Put("/", s.handleUpdateMenu)
				r.Delete("/", s.handleDeleteMenu)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.handleListUsers)
			r.Put("/{id}", s.handleUpdateUser)
			r.Delete("/{id}", s.handleDeleteUser)
		})

		r.Route("/absensi", func(r chi.Router) {
			r.Get("/", s.handleListAttendance)
			r.Get("/{id}", s.handleGetAttendance)
			r.Post("/checkin", s.handleCheckIn)
			r.Put("/checkout/{id}", s.handleCheckOut)
			r.Delete("/{id}", s.handleDeleteAttendance)
		})

		r.Get("/audit", s.handleListAudit)
	})

	return r
}

// handleHealth returns the server health status, probing the database
// when one is wired in.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK

	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()
		if err := s.db.HealthCheck(ctx); err != nil {
			s.logger.Error("health check failed", "error", err)
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, code, map[string]any{
		"status":  status,
		"version": s.version,
	})
}
