package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	applog "pureui/internal/log"
	"pureui/internal/theme"
	"pureui/internal/toast"
)

type themeResponse struct {
	Theme    string `json:"theme"`
	Resolved string `json:"resolved"`
}

// Theme reports the active theme as JSON.
func Theme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	current, _ := currentTheme(r.Context())
	writeJSON(w, r, http.StatusOK, themeResponse{
		Theme:    string(current),
		Resolved: string(theme.ResolveSystem(current, r.Header.Get("Sec-CH-Prefers-Color-Scheme"))),
	})
}

// UpdateTheme persists and applies the submitted theme.
func UpdateTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		applog.Debug(r.Context(), "theme update with unsupported method", "method", r.Method)
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if themes == nil {
		http.Error(w, "theme service not available", http.StatusServiceUnavailable)
		return
	}

	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse theme form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	value := strings.TrimSpace(r.FormValue("theme"))
	selected, err := themes.SetThemeString(r.Context(), value)
	switch {
	case errors.Is(err, theme.ErrInvalidTheme):
		applog.Debug(r.Context(), "received invalid theme selection", "value", value)
		presenter.Present(r.Context(), "That theme is not available.", toast.AsError())
		respondAfterTheme(w, r, http.StatusBadRequest, "")
		return
	case err != nil:
		presenter.Present(r.Context(), "We could not save your theme. Please try again.", toast.AsError())
		respondAfterTheme(w, r, http.StatusInternalServerError, "")
		return
	}

	presenter.Present(r.Context(), "Theme set to "+string(selected)+".", toast.AsSuccess())
	respondAfterTheme(w, r, http.StatusOK, selected)
}

// respondAfterTheme answers HTMX and JSON clients in place and sends
// full-page form posts back to the home page.
func respondAfterTheme(w http.ResponseWriter, r *http.Request, status int, selected theme.Theme) {
	switch {
	case isHTMX(r):
		if selected != "" {
			trigger, _ := json.Marshal(map[string]themeResponse{
				"themeChanged": {Theme: string(selected), Resolved: string(theme.ResolveSystem(selected, r.Header.Get("Sec-CH-Prefers-Color-Scheme")))},
			})
			w.Header().Set("HX-Trigger", string(trigger))
		}
		w.WriteHeader(status)
	case wantsJSON(r):
		if selected == "" {
			writeJSON(w, r, status, map[string]string{"error": http.StatusText(status)})
			return
		}
		writeJSON(w, r, status, themeResponse{
			Theme:    string(selected),
			Resolved: string(theme.ResolveSystem(selected, r.Header.Get("Sec-CH-Prefers-Color-Scheme"))),
		})
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(r.Context(), "failed to encode json response", "error", err)
	}
}
