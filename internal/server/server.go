// Package server provides HTTP server setup and handlers
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adboard/internal/ads"
	"adboard/internal/config"
	"adboard/internal/media"
	"adboard/internal/message"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server represents the HTTP server
type Server struct {
	config   *config.Config
	ads      *ads.Service
	media    *media.Store
	messages *message.Store
	router   *chi.Mux
	http     *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, adService *ads.Service, mediaStore *media.Store, messages *message.Store) *Server {
	s := &Server{
		config:   cfg,
		ads:      adService,
		media:    mediaStore,
		messages: messages,
		router:   chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.http = &http.Server{
		Addr:         cfg.Address(),
		Handler:      s.router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Run starts the server and handles graceful shutdown
func (s *Server) Run() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Printf("🚀 Server starting on %s", s.config.Address())
		log.Printf("📁 Debug mode: %v", s.config.Debug)
		serverErrors <- s.http.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Printf("⚠️ Received %v signal, shutting down...", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.http.Shutdown(ctx); err != nil {
			log.Printf("❌ Graceful shutdown failed: %v", err)
			if err := s.http.Close(); err != nil {
				return fmt.Errorf("failed to close server: %w", err)
			}
		}

		log.Println("✅ Server shutdown complete")
	}

	return nil
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware() {
	// Real IP detection (important for logging behind proxies)
	s.router.Use(middleware.RealIP)

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)

	// The front-end may be hosted on another origin
	s.router.Use(s.cors)

	s.router.Use(s.securityHeaders)

	s.router.Use(middleware.Compress(5, "application/json", "text/html", "text/css", "application/javascript"))
}

// GetRouter returns the chi router (useful for testing)
func (s *Server) GetRouter() *chi.Mux {
	return s.router
}
