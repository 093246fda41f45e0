package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/terra-clan/product-catalog/internal/catalog"
	"github.com/terra-clan/product-catalog/internal/compare"
	"github.com/terra-clan/product-catalog/internal/config"
)

// Server represents the HTTP API server
type Server struct {
	config  config.ServerConfig
	router  *chi.Mux
	store   *catalog.Store
	compare *compare.Manager
	dataDir string
}

// NewServer creates a new API server
func NewServer(
	cfg config.ServerConfig,
	store *catalog.Store,
	compareManager *compare.Manager,
	dataDir string,
) *Server {
	s := &Server{
		config:  cfg,
		store:   store,
		compare: compareManager,
		dataDir: dataDir,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration (open: the import endpoint is called cross-origin)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.MethodNotAllowed(s.handleMethodNotAllowed)

	// Health check
	r.Get("/health", s.handleHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/import", s.handleImport)

		r.Get("/products", s.handleListProducts)
		r.Get("/categories", s.handleListCategories)

		r.Route("/compare", func(r chi.Router) {
			r.Post("/sessions", s.handleCreateCompareSession)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", s.handleGetCompare)
				r.Post("/toggle", s.handleToggleCompare)
				r.Delete("/", s.handleClearCompare)
			})
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
