package mw

import (
	"crypto/subtle"
	"net/http"

	"linkherald/internal/logger"
)

// SecretHeader is the inbound header carrying the shared webhook secret.
const SecretHeader = "x-webhook-secret"

// RequireSecret rejects requests whose shared secret does not match the
// configured one. The secret may arrive in the SecretHeader header or the
// "secret" query parameter. An empty configured secret disables the gate
// entirely (passthrough).
func RequireSecret(secret string, log logger.Logger) func(http.Handler) http.Handler {
	if secret == "" {
		log.Debug("RequireSecret: no secret configured, passthrough mode")
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(SecretHeader)
			if provided == "" {
				provided = r.URL.Query().Get("secret")
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				log.Warn("webhook secret mismatch",
					logger.String("path", r.URL.Path),
					logger.String("remote_ip", r.RemoteAddr))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
