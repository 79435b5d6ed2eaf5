package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/meur/shortbox/internal/logging"
	"github.com/meur/shortbox/internal/metrics"
	"github.com/meur/shortbox/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options carries the optional server dependencies
type Options struct {
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	AllowedOrigins []string
}

// Server holds the HTTP server dependencies
type Server struct {
	svc     *service.Service
	logger  *zap.Logger
	metrics *metrics.Metrics
	pages   *pageRenderer
	router  chi.Router
}

// New creates a new HTTP server for the collection
func New(svc *service.Service, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		svc:     svc,
		logger:  logger,
		metrics: opts.Metrics,
		pages:   newPageRenderer(),
		router:  chi.NewRouter(),
	}

	s.setupMiddleware(opts.AllowedOrigins)
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware(origins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(logging.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	// Page and form submissions
	s.router.Group(func(r chi.Router) {
		r.Use(middleware.NoCache)
		r.Get("/", s.handleIndex)
		r.Post("/items", s.handleFormCreate)
		r.Post("/items/{id}", s.handleFormUpdate)
		r.Post("/items/{id}/delete", s.handleFormDelete)
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Use(middleware.NoCache)

		// Reads
		r.Get("/conditions", s.handleGetConditions)
		r.Get("/items", s.handleGetItems)
		r.Get("/view", s.handleGetView)

		// Mutations
		r.Post("/items", s.handleCreateItem)
		r.Put("/items/{id}", s.handleUpdateItem)
		r.Delete("/items/{id}", s.handleDeleteItem)
	})

	FileServer(s.router, "/static", staticFS())

	if s.metrics != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	}

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
