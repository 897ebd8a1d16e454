package main

import (
	"net/http"

	"github.com/Sanjeev-Guntha/synapse/internal/api"
	apiMiddleware "github.com/Sanjeev-Guntha/synapse/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// setupRouter builds the HTTP handler with middleware, the /api routes and
// the health check.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.sessions)
	api.RegisterRoutes(r, api.Handlers{
		Auth:      api.NewAuthHandler(app.sessions),
		Materials: api.NewMaterialHandler(app.learning),
		Study:     api.NewStudyHandler(app.learning),
	}, authMiddleware.Authenticate)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return cors.New(cors.Options{
		AllowedOrigins:   app.config.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Accept", "Origin"},
		ExposedHeaders:   []string{"Location", "X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(r)
}
