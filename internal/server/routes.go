package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 60 * time.Second

// setupRoutes configures all application routes
func (s *Server) setupRoutes() {
	r := s.router

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))

		r.Get("/", s.handleIndex)
		r.Handle("/static/*", s.staticHandler())

		r.Get("/health", s.handleHealth)

		// Ads
		r.Get("/api/ads", s.handleListAds)
		r.Post("/api/ads", s.handleCreateAd)
		r.Get("/api/ads/{id:[0-9]+}/qr", s.handleAdQR)
		r.Post("/api/like/{id:[0-9]+}", s.handleLikeAd)

		// Global message
		r.Get("/api/global_message", s.handleGetGlobalMessage)
		r.Delete("/api/global_message", s.handleDeleteGlobalMessage)
	})

	// Media streams can outlast the request timeout
	r.Get("/api/ads/{filename}", s.handleServeMedia)
}

// handleIndex serves the front-end entry page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	index := filepath.Join(filepath.Clean(s.config.Storage.StaticDir), "index.html")
	if _, err := os.Stat(index); err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, index)
}

// staticHandler serves static files with caching
func (s *Server) staticHandler() http.Handler {
	staticDir := filepath.Clean(s.config.Storage.StaticDir)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		urlPath := strings.TrimPrefix(r.URL.Path, "/static/")

		// Clean and validate the path to prevent directory traversal
		cleanPath := filepath.Clean(urlPath)
		if strings.Contains(cleanPath, "..") {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		fullPath := filepath.Join(staticDir, cleanPath)

		absStaticDir, _ := filepath.Abs(staticDir)
		absFullPath, _ := filepath.Abs(fullPath)
		if !strings.HasPrefix(absFullPath, absStaticDir) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		if info, err := os.Stat(fullPath); err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}

		// One week in production
		if !s.config.Debug {
			w.Header().Set("Cache-Control", "public, max-age=604800")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}

		http.ServeFile(w, r, fullPath)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
