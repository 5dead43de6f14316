package handlers

import (
	"net/http"
	"time"

	applog "pureui/internal/log"
)

type healthResponse struct {
	Status string    `json:"status"`
	Theme  string    `json:"theme"`
	Time   time.Time `json:"time"`
}

// Health is a simple readiness handler suitable for infrastructure health checks.
// It reports "degraded" when no theme service is configured.
func Health(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "health check requested", "method", r.Method)

	resp := healthResponse{Status: "ok", Time: time.Now().UTC()}
	if themes == nil {
		resp.Status = "degraded"
	} else {
		resp.Theme = string(themes.Theme(r.Context()))
	}

	writeJSON(w, r, http.StatusOK, resp)
}
