package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"pureui/internal/toast"
)

// ShowToast raises a toast from form values: message, kind and duration
// (milliseconds). Malformed kind or duration fall back to defaults.
func ShowToast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	message := strings.TrimSpace(r.FormValue("message"))
	if message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	opts := []toast.Option{toast.WithKind(toast.ParseKind(r.FormValue("kind")))}
	if ms, err := strconv.Atoi(strings.TrimSpace(r.FormValue("duration"))); err == nil {
		opts = append(opts, toast.WithDuration(time.Duration(ms)*time.Millisecond))
	}
	presenter.Present(r.Context(), message, opts...)

	if isHTMX(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
