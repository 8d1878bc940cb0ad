// Package server exposes the resolvers over a JSON HTTP API.
package server

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/writewithwrabit/journal/auth"
	"github.com/writewithwrabit/journal/resolvers"
)

// Resolvers is implemented by *resolvers.Resolver.
type Resolvers interface {
	Query() resolvers.QueryResolver
	Mutation() resolvers.MutationResolver
}

type server struct {
	query    resolvers.QueryResolver
	mutation resolvers.MutationResolver
}

// NewRouter wires every route behind request logging, CORS and token
// verification.
func NewRouter(r Resolvers, verifier auth.TokenVerifier, origins []string) http.Handler {
	s := &server{
		query:    r.Query(),
		mutation: r.Mutation(),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Group(func(router chi.Router) {
		router.Use(auth.Middleware(verifier))

		router.Post("/users", s.createUser)
		router.Post("/users/{id}/complete", s.completeUserSignup)
		router.Get("/me", s.me)
		router.Patch("/me", s.updateUser)

		router.Route("/entries", func(router chi.Router) {
			router.Get("/", s.entries)
			router.Post("/", s.createEntry)
			router.Get("/month", s.entriesByMonth)
			router.Get("/daily", s.dailyEntry)
			router.Get("/{id}", s.entry)
			router.Put("/{id}", s.updateEntry)
			router.Delete("/{id}", s.deleteEntry)
			router.Get("/{id}/insights", s.insights)
			router.Post("/{id}/insights", s.analyzeEntry)
		})

		router.Get("/stats", s.stats)
		router.Get("/word-goal", s.wordGoal)
		router.Post("/prompts", s.prompt)
		router.Post("/chat", s.chat)
	})

	return router
}
