package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"linkherald/internal/domain"
	"linkherald/internal/httpserver/deps"
	"linkherald/internal/logger"
	"linkherald/internal/notify"
)

type relayResponse struct {
	Success   bool `json:"success"`
	Duplicate bool `json:"duplicate,omitempty"`
}

// Webhook handles inbound bookmark-creation webhooks: decode, normalize,
// dedupe (when a store is wired), deliver.
func Webhook(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload domain.Payload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			d.Logger.Debug("webhook body is not a JSON object", logger.Error(err))
			writeError(w, http.StatusBadRequest, "request body must be a JSON object")
			return
		}

		bookmark, found := domain.Normalize(payload, d.TimeNow)
		if !found {
			d.Logger.Info("no bookmark found in webhook payload")
			writeError(w, http.StatusBadRequest, "no bookmark found in payload")
			return
		}

		d.Logger.Info("bookmark received",
			logger.String("url", bookmark.URL),
			logger.String("title", bookmark.Title),
			logger.Int("tags", len(bookmark.Tags)))

		// Duplicate suppression is best effort: a store error must never block
		// the relay, only disable dedupe for this request.
		marked := false
		if d.Store != nil {
			first, err := d.Store.MarkSeen(ctx, bookmark.Fingerprint(), d.DedupeTTL)
			switch {
			case err != nil:
				d.Logger.Warn("dedupe check failed, relaying anyway", logger.Error(err))
			case !first:
				d.Logger.Info("duplicate bookmark suppressed",
					logger.String("url", bookmark.URL))
				_ = d.Store.IncrSuppressed(ctx)
				writeJSON(w, http.StatusOK, relayResponse{Success: true, Duplicate: true})
				return
			default:
				marked = true
			}
		}

		if err := d.Notifier.Send(ctx, bookmark); err != nil {
			logDeliveryFailure(d, err)
			if marked {
				// The bookmark was never announced; let the next attempt through.
				_ = d.Store.Forget(ctx, bookmark.Fingerprint())
			}
			if d.Store != nil {
				_ = d.Store.IncrFailed(ctx)
			}
			// Upstream status text stays in the logs, not in the response.
			writeError(w, http.StatusInternalServerError, "failed to deliver notification")
			return
		}

		if d.Store != nil {
			_ = d.Store.IncrRelayed(ctx)
		}
		writeJSON(w, http.StatusOK, relayResponse{Success: true})
	}
}

// TestSlack sends the fixed operator-verification message.
func TestSlack(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Notifier.SendTest(r.Context()); err != nil {
			logDeliveryFailure(d, err)
			writeError(w, http.StatusInternalServerError, "failed to deliver test message")
			return
		}
		writeJSON(w, http.StatusOK, relayResponse{Success: true})
	}
}

func logDeliveryFailure(d deps.Deps, err error) {
	var delivErr *notify.DeliveryError
	switch {
	case errors.Is(err, notify.ErrNotConfigured):
		d.Logger.Error("slack webhook URL is not configured")
	case errors.As(err, &delivErr) && delivErr.StatusCode != 0:
		d.Logger.Error("slack rejected the notification",
			logger.Int("status_code", delivErr.StatusCode),
			logger.String("status", delivErr.Status))
	default:
		d.Logger.Error("slack delivery failed", logger.Error(err))
	}
}
