package handlers

import (
	"context"
	"net/http"
	"time"

	"linkherald/internal/httpserver/deps"
)

type componentStatus struct {
	OK         bool   `json:"ok"`
	Configured *bool  `json:"configured,omitempty"`
	Relayed    *int64 `json:"relayed,omitempty"`
	Failed     *int64 `json:"failed,omitempty"`
	Suppressed *int64 `json:"suppressed,omitempty"`
	Error      string `json:"error,omitempty"`
}

type livenessResponse struct {
	Status        string                     `json:"status"`
	UptimeSeconds float64                    `json:"uptime_seconds"`
	Version       string                     `json:"version,omitempty"`
	Commit        string                     `json:"commit,omitempty"`
	BuildDate     string                     `json:"build_date,omitempty"`
	GoVersion     string                     `json:"go_version,omitempty"`
	Components    map[string]componentStatus `json:"components"`
}

// Liveness reports process health plus the state of the two moving parts:
// whether the Slack endpoint is configured and whether the optional Redis
// relay store is reachable.
func Liveness(d deps.Deps) http.HandlerFunc {
	start := d.StartTime
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")

		configured := d.Notifier != nil && d.Notifier.Configured()
		components := map[string]componentStatus{
			"notifier": {OK: configured, Configured: &configured},
			"dedupe":   checkStore(r.Context(), d),
		}

		writeJSON(w, http.StatusOK, livenessResponse{
			Status:        "ok",
			UptimeSeconds: time.Since(start).Seconds(),
			Version:       d.Version,
			Commit:        d.Commit,
			BuildDate:     d.BuildDate,
			GoVersion:     d.GoVersion,
			Components:    components,
		})
	}
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{OK: true, Error: "disabled"}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(pingCtx); err != nil {
		return componentStatus{OK: false, Error: "unreachable"}
	}

	status := componentStatus{OK: true}
	if relayed, failed, suppressed, err := d.Store.Stats(pingCtx); err == nil {
		status.Relayed = &relayed
		status.Failed = &failed
		status.Suppressed = &suppressed
	}
	return status
}
