// Package server exposes the read-only dashboard API. Every endpoint
// returns the plain model records as JSON; scores are derived per request
// and never cached.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/compliance-hub/internal/config"
	"github.com/sells-group/compliance-hub/internal/registry"
	"github.com/sells-group/compliance-hub/internal/report"
	"github.com/sells-group/compliance-hub/internal/store"
)

type Server struct {
	cfg     config.ServerConfig
	store   store.Store
	reg     *registry.Registry
	builder *report.Builder
	http    *http.Server
}

func New(cfg config.ServerConfig, st store.Store, reg *registry.Registry) *Server {
	s := &Server{
		cfg:     cfg,
		store:   st,
		reg:     reg,
		builder: report.NewBuilder(st, reg),
	}

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(rateLimit(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst))

	r.Get("/healthz", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/regulations", s.listRegulations)
		r.Get("/assessments", s.listAssessments)

		r.Route("/assessments/{assessmentID}", func(r chi.Router) {
			r.Get("/", s.getAssessment)
			r.Get("/scores", s.getScores)
			r.Get("/pillars", s.getPillars)
			r.Get("/synergies", s.getSynergies)
			r.Get("/roadmap", s.getRoadmap)
			r.Get("/penalty", s.getPenalty)
			r.Get("/trend", s.getTrend)
			r.Get("/report", s.getReport)
		})
	})

	return r
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		zap.L().Info("server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}
