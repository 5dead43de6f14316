package handlers

import (
	"net/http"
	"time"

	"pureui/internal/datefmt"
	applog "pureui/internal/log"
	"pureui/internal/theme"
	"pureui/internal/toast"
	"pureui/internal/views/layout"
	"pureui/internal/views/pages"
)

// Home renders the landing page using templ components.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	current, attr := currentTheme(r.Context())
	now := time.Now()

	today, err := datefmt.Format(now)
	if err != nil {
		applog.Error(r.Context(), "failed to format current date", "error", err)
	}

	var updated string
	if changed := themeLastChanged(); !changed.IsZero() {
		updated, _ = datefmt.Relative(changed, now)
	}

	data := pages.HomeData{
		Theme:    string(current),
		Resolved: string(theme.ResolveSystem(current, r.Header.Get("Sec-CH-Prefers-Color-Scheme"))),
		Today:    today,
		Updated:  updated,
	}
	shell := layout.Shell{
		Title:    "pureui",
		Theme:    attr,
		Resolved: data.Resolved,
		Toasts:   toast.Flash(r.Context(), sessionManager),
	}

	w.Header().Set("Accept-CH", "Sec-CH-Prefers-Color-Scheme")
	w.Header().Set("Vary", "Sec-CH-Prefers-Color-Scheme")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := layout.Page(shell, pages.Home(data)).Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render home page", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
