package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/dgallion1/citeshield/internal/config"
	"github.com/dgallion1/citeshield/internal/pipeline"
	"github.com/dgallion1/citeshield/internal/stats"
)

// Server is the HTTP API server for citeshield.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	briefs       *pipeline.BriefStore
	stats        *stats.Recorder
	limiter      *rate.Limiter
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, rec *stats.Recorder, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		briefs:       orch.Briefs(),
		stats:        rec,
		limiter:      newLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		r.Use(RateLimit(s.limiter))

		r.Post("/api/annotate", s.handleAnnotate)
		r.Post("/api/chunk", s.handleChunk)

		r.Post("/api/briefs", s.handleCreateBrief)
		r.Post("/api/briefs/batch", s.handleBatchBriefs)
		r.Get("/api/jobs/{jobID}", s.handleJobStatus)

		r.Get("/api/briefs", s.handleListBriefs)
		r.Get("/api/briefs/{docID}", s.handleGetBrief)
		r.Delete("/api/briefs/{docID}", s.handleDeleteBrief)

		r.Get("/api/briefs/{docID}/sections", s.handleListSections)
		r.Get("/api/briefs/{docID}/sections/{index}", s.handleGetSection)
		r.Get("/api/briefs/{docID}/search", s.handleSearchSections)

		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
