// Package server exposes the jobscout HTTP API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/service"
	"github.com/jobscout/jobscout/internal/store"
)

// Services bundles the service layer the API is built on.
type Services struct {
	Auth         *service.AuthService
	Assistant    *service.AssistantService
	Jobs         *service.JobService
	Matches      *service.MatchService
	Resumes      *service.ResumeService
	Applications *service.ApplicationService
}

// Server is the jobscout HTTP API server.
type Server struct {
	services Services
	repo     store.Repository
	logger   *zap.Logger
	validate *validator.Validate
	http     *http.Server
}

// New creates a Server listening on addr.
func New(addr string, services Services, repo store.Repository, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		services: services,
		repo:     repo,
		logger:   log,
		validate: validator.New(),
	}

	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/api/auth/me", s.handleMe)

		r.Get("/api/jobs", s.handleListJobs)
		r.Get("/api/jobs/{id}", s.handleGetJob)

		r.Post("/api/assistant/chat", s.handleChat)
		r.Get("/api/assistant/conversation", s.handleGetConversation)
		r.Delete("/api/assistant/conversation", s.handleClearConversation)

		r.Post("/api/resume/upload", s.handleUploadResume)
		r.Get("/api/resume", s.handleGetResume)
		r.Delete("/api/resume", s.handleDeleteResume)

		r.Get("/api/matches", s.handleListMatches)
		r.Get("/api/matches/best", s.handleBestMatches)
		r.Get("/api/matches/{jobId}", s.handleGetMatch)
		r.Post("/api/matches/calculate", s.handleCalculateMatches)

		r.Post("/api/applications", s.handleCreateApplication)
		r.Get("/api/applications", s.handleListApplications)
		r.Get("/api/applications/{id}", s.handleGetApplication)
		r.Patch("/api/applications/{id}", s.handleUpdateApplication)
		r.Delete("/api/applications/{id}", s.handleDeleteApplication)
	})

	return r
}

// Start serves requests until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.http.Addr))
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Handler exposes the routing tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Ping(r.Context()); err != nil {
		Error(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
