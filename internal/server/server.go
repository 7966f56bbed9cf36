// Package server exposes the question answering pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Abdul234Malik/NELFUND/internal/agent"
	"github.com/Abdul234Malik/NELFUND/internal/db"
)

// Config holds server configuration.
type Config struct {
	Port        int
	FrontendURL string // additional allowed CORS origin
	AllowAll    bool   // allow all CORS origins (dev mode)
}

// ChatPipeline answers a question. Implementations never return an error;
// failures surface in the answer text.
type ChatPipeline interface {
	Handle(ctx context.Context, query string) agent.Result
}

// Server serves the chat API, session history, and metrics.
type Server struct {
	cfg        Config
	pipeline   ChatPipeline
	sessions   *db.SessionStore
	router     chi.Router
	httpServer *http.Server
}

// New creates a Server. sessions may be nil, in which case session routes
// report that history is disabled.
func New(cfg Config, pipeline ChatPipeline, sessions *db.SessionStore) *Server {
	s := &Server{
		cfg:      cfg,
		pipeline: pipeline,
		sessions: sessions,
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.FrontendURL != "" {
		corsOpts.AllowedOrigins = append(corsOpts.AllowedOrigins, s.cfg.FrontendURL)
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	s.registerRoutes(r)
	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("nelfund server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
