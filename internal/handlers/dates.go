package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"pureui/internal/datefmt"
	applog "pureui/internal/log"
)

type dateResponse struct {
	Input     string `json:"input"`
	Formatted string `json:"formatted"`
	Relative  string `json:"relative,omitempty"`
}

// FormatDate renders ?value= with the display convention. Digit-only values
// are read as Unix milliseconds. ?tz= selects an IANA location.
func FormatDate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	raw := strings.TrimSpace(r.URL.Query().Get("value"))
	formatter := datefmt.Default
	if tz := strings.TrimSpace(r.URL.Query().Get("tz")); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "unknown time zone"})
			return
		}
		formatter.Location = loc
	}


	formatted, err := formatter.Format(raw)
	if errors.Is(err, datefmt.ErrInvalidDate) {
		applog.Debug(r.Context(), "rejected invalid date", "value", raw, "error", err)
		writeJSON(w, r, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		applog.Error(r.Context(), "failed to format date", "error", err)
		writeJSON(w, r, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	resp := dateResponse{Input: raw, Formatted: formatted}
	if r.URL.Query().Get("relative") != "" {
		resp.Relative, _ = formatter.Relative(raw, time.Now())
	}
	writeJSON(w, r, http.StatusOK, resp)
}
