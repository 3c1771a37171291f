// Package router sets up all HTTP routes and middleware chains for the
// CampusBoard API. Read routes are open to anonymous viewers; write
// routes require authentication, and reference-data mutations require
// admin.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusboard/internal/handlers"
	"campusboard/internal/middleware"
	"campusboard/internal/store"
	"campusboard/internal/token"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(tokens *token.Manager, users *store.UserStore, auth *handlers.Auth, posts *handlers.Posts, categories *handlers.Categories, tags *handlers.Tags) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.LoadViewer(tokens, users))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	// Account endpoints.
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", auth.Register)
		r.Post("/login", auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/me", auth.Me)
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Posts — anyone may read, authenticated users may write.
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", posts.List)
			r.Get("/{id}", posts.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", posts.Create)
				r.Put("/{id}", posts.Edit)
				r.Delete("/{id}", posts.Delete)
			})
		})

		// Votes — authenticated only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/votes", posts.CastVote)
		})

		// Categories — reads are public, mutations are admin only.
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.List)
			r.Get("/tree", categories.Tree)
			r.Get("/{id}", categories.Get)
			r.Get("/{id}/path", categories.Path)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Use(middleware.RequireAdmin)
				r.Post("/", categories.Create)
				r.Put("/{id}", categories.Update)
				r.Delete("/{id}", categories.Delete)
			})
		})

		// Tags — reads are public, mutations are admin only.
		r.Route("/tags", func(r chi.Router) {
			r.Get("/", tags.List)
			r.Get("/{id}", tags.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Use(middleware.RequireAdmin)
				r.Post("/", tags.Create)
				r.Put("/{id}", tags.Update)
				r.Delete("/{id}", tags.Delete)
			})
		})
	})

	// User administration.
	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireAdmin)
		r.Put("/{username}/admin", auth.SetAdmin)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
