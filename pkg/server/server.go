// Package server exposes the diagram operations over HTTP.
//
// The API mirrors the tool surface of the CLI: diagrams are stored by name
// and the layout, routing, optimization, and arrangement operations run
// against stored diagrams. All request and response bodies are JSON.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"laygrid/pkg/buildinfo"
	"laygrid/pkg/observability"
	"laygrid/pkg/pipeline"
	"laygrid/pkg/store"
)

// Server handles the HTTP API.
type Server struct {
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server over the given store and pipeline runner.
func New(st store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	return &Server{
		store:  st,
		runner: runner,
		logger: logger,
	}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/diagrams", func(r chi.Router) {
		r.Get("/", s.handleListDiagrams)
		r.Post("/", s.handleCreateDiagram)

		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.handleGetDiagram)
			r.Put("/", s.handlePutDiagram)
			r.Delete("/", s.handleDeleteDiagram)

			r.Post("/layout", s.handleLayout)
			r.Post("/relayout", s.handleRelayout)
			r.Post("/route", s.handleRoute)
			r.Post("/optimize", s.handleOptimize)
			r.Post("/tidy", s.handleTidy)
			r.Post("/arrange", s.handleArrange)

			r.Get("/overlaps", s.handleOverlaps)
			r.Post("/overlaps/resolve", s.handleResolveOverlaps)
		})
	})

	return r
}

// logRequests logs each request and feeds the HTTP observability hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", duration)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"built":   buildinfo.Date,
	})
}
