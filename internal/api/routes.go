package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers groups the endpoint handlers mounted under /api.
type Handlers struct {
	Auth      *AuthHandler
	Materials *MaterialHandler
	Study     *StudyHandler
}

// RegisterRoutes mounts the /api routes on r. Everything except login and
// signup runs behind authenticate.
func RegisterRoutes(r chi.Router, h Handlers, authenticate func(http.Handler) http.Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/signup", h.Auth.Signup)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/auth/me", h.Auth.Me)
			r.Patch("/auth/profile", h.Auth.UpdateProfile)

			r.Route("/materials", func(r chi.Router) {
				r.Get("/", h.Materials.List)
				r.Post("/", h.Materials.Create)
				r.Post("/upload", h.Materials.Upload)
				r.Post("/youtube", h.Materials.YouTube)
				r.Get("/{id}", h.Materials.Get)
				r.Post("/{id}/generate", h.Materials.Generate)
				r.Get("/{id}/mindmap", h.Materials.MindMap)
				r.Post("/{id}/mindmap/edges", h.Materials.ConnectNodes)
			})

			r.Get("/mindmap", h.Study.LatestMindMap)
			r.Get("/flashcards", h.Study.Flashcards)
			r.Post("/flashcards/{id}/review", h.Study.ReviewFlashcard)
			r.Get("/quizzes", h.Study.Quizzes)
			r.Get("/quizzes/{id}", h.Study.Quiz)
			r.Post("/quizzes/{id}/submit", h.Study.SubmitQuiz)
			r.Get("/progress", h.Study.Progress)
			r.Get("/overview", h.Study.Overview)
		})
	})
}
