package routes

import (
	"github.com/go-chi/chi/v5"

	"linkherald/internal/httpserver/deps"
	"linkherald/internal/httpserver/handlers"
)

func init() { Register(registerLiveness) }

func registerLiveness(r chi.Router, d deps.Deps) {
	r.Get("/", handlers.Liveness(d))
}
