package routes

import (
	"github.com/go-chi/chi/v5"

	"linkherald/internal/httpserver/deps"
	"linkherald/internal/httpserver/handlers"
	"linkherald/internal/httpserver/mw"
)

func init() { Register(registerWebhook) }

func registerWebhook(r chi.Router, d deps.Deps) {
	r.With(mw.RequireSecret(d.WebhookSecret, d.Logger)).Post("/webhook/linkding", handlers.Webhook(d))
}
