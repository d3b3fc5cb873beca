// Package api exposes the planning engine over HTTP. All request amounts
// pass through the flexible money codec, so clients may send strings or
// numbers; all response amounts are decimal dollars.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pfennig-app/pfennig/internal/model"
)

// Server serves the planning engine over HTTP.
type Server struct {
	cfg     model.FinancialConfig
	version string

	// now is swappable for tests.
	now func() time.Time
}

// NewServer creates an API server around a loaded configuration.
func NewServer(cfg model.FinancialConfig, version string) *Server {
	return &Server{cfg: cfg, version: version, now: time.Now}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": s.version,
		})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/plan", s.handlePlan)
		r.Post("/fire", s.handleFire)
		r.Post("/payoff", s.handlePayoff)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
