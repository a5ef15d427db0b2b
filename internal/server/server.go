// Package server implements the HTTP surface: token lifecycle, webhook
// capture, and log retrieval.
package server

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Server handles all routes. The database handle is the only shared mutable
// resource; it is passed in at construction and shared by reference across
// the token, capture, and retrieval handlers.
type Server struct {
	DB                 *sql.DB
	BaseURL            string
	MaxBodySize        int64
	CORSPermissive     bool
	CORSAllowedOrigins []string
	Logger             *zap.Logger
}

// Handler returns the router for the service.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(s.corsOptions()))

	r.Route("/api/tokens", func(r chi.Router) {
		r.Post("/", s.handleCreateToken)
		r.Get("/", s.handleListTokens)
		r.Delete("/{token}", s.handleDeleteToken)
	})

	r.Get("/{token}/log/{count}", s.handleGetLogs)

	// Webhook inbox: any method, with or without a trailing path.
	r.HandleFunc("/{token}", s.handleCapture)
	r.HandleFunc("/{token}/*", s.handleCapture)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, msgNotFound)
	})

	return r
}

func (s *Server) corsOptions() cors.Options {
	if s.CORSPermissive {
		return cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions, http.MethodHead},
			AllowedHeaders: []string{"*"},
		}
	}
	return cors.Options{
		AllowedOrigins: s.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}
}
