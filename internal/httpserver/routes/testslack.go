package routes

import (
	"github.com/go-chi/chi/v5"

	"linkherald/internal/httpserver/deps"
	"linkherald/internal/httpserver/handlers"
)

func init() { Register(registerTestSlack) }

func registerTestSlack(r chi.Router, d deps.Deps) {
	r.Post("/test-slack", handlers.TestSlack(d))
}
