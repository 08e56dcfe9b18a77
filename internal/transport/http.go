// Package transport exposes the dashboard API over HTTP.
package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/arlett/prodboard/internal/domain/mirror"
	"github.com/arlett/prodboard/internal/domain/people"
	"github.com/arlett/prodboard/internal/domain/project"
	"github.com/arlett/prodboard/internal/domain/stats"
)

// Server holds the services the HTTP handlers dispatch to.
type Server struct {
	projects *project.Service
	stats    *stats.Service
	people   *people.Service
	mirror   *mirror.Service
	logger   *slog.Logger
}

// NewServer creates the handler set for the dashboard API.
func NewServer(projects *project.Service, st *stats.Service, ppl *people.Service, mir *mirror.Service, logger *slog.Logger) *Server {
	return &Server{
		projects: projects,
		stats:    st,
		people:   ppl,
		mirror:   mir,
		logger:   logger,
	}
}

// Router builds the chi router with middleware and all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(chimw.CleanPath)
	r.Use(s.requestLogger)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"*"},
	}).Handler)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", s.handleProjects)
		r.Post("/projects/close", s.handleCloseProject)
		r.Get("/personal/{person}", s.handlePersonal)
		r.Get("/stats", s.handleStats)
		r.Get("/stats/annual", s.handleAnnualStats)
		r.Get("/people", s.handlePeople)
		r.Get("/sync", s.handleSyncStatus)
		r.Post("/sync", s.handleSync)
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.projects.ListActive(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

type closeRequest struct {
	ProjectID string `json:"projectId"`
}

func (s *Server) handleCloseProject(w http.ResponseWriter, r *http.Request) {
	var req closeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	err := s.projects.Close(r.Context(), req.ProjectID)
	switch {
	case errors.Is(err, project.ErrInvalidInput):
		s.writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, project.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err)
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func (s *Server) handlePersonal(w http.ResponseWriter, r *http.Request) {
	person := chi.URLParam(r, "person")
	if decoded, err := url.PathUnescape(person); err == nil {
		person = decoded
	}

	view, err := s.stats.Personal(r.Context(), person)
	if errors.Is(err, project.ErrInvalidInput) {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sum, err := s.stats.Current(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleAnnualStats(w http.ResponseWriter, r *http.Request) {
	sum, err := s.stats.Annual(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handlePeople(w http.ResponseWriter, r *http.Request) {
	list, err := s.people.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	last, err := s.mirror.LastSyncedAt(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]*time.Time{"lastSyncedAt": last})
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	result, err := s.mirror.Run(r.Context())
	if err != nil {
		// The result carries the failure details the client needs.
		writeJSON(w, http.StatusInternalServerError, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
