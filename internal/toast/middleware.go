package toast

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	applog "pureui/internal/log"
)

const (
	// TriggerEvent is the client-side event name carried in HX-Trigger.
	TriggerEvent = "showToast"

	sessionKey = "toast:pending"
)

// Middleware installs a Queue on every request and delivers whatever was
// queued when the handler starts its response. It must run inside the scs
// LoadAndSave handler so session writes are committed. A nil session manager
// limits delivery to HTMX requests.
func Middleware(sessions *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			queue := &Queue{}
			r = r.WithContext(WithQueue(r.Context(), queue))
			tw := &responseWriter{
				ResponseWriter: w,
				ctx:            r.Context(),
				queue:          queue,
				sessions:       sessions,
				htmx:           r.Header.Get("HX-Request") == "true",
			}
			next.ServeHTTP(tw, r)
			if !tw.wroteHeader {
				tw.WriteHeader(http.StatusOK)
			}
		})
	}
}

// Flash pops toasts stashed in the session by a previous full-page request.
func Flash(ctx context.Context, sessions *scs.SessionManager) []Toast {
	if sessions == nil {
		return nil
	}
	raw := sessions.PopString(ctx, sessionKey)
	if raw == "" {
		return nil
	}
	var toasts []Toast
	if err := json.Unmarshal([]byte(raw), &toasts); err != nil {
		applog.Warn(ctx, "discarding unreadable session toasts", "error", err)
		return nil
	}
	return toasts
}

type responseWriter struct {
	http.ResponseWriter
	ctx         context.Context
	queue       *Queue
	sessions    *scs.SessionManager
	htmx        bool
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.deliver()
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) Flush() {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := w.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, errors.New("toast: underlying ResponseWriter does not support hijacking")
}

func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *responseWriter) deliver() {
	pending := w.queue.Drain()
	if len(pending) == 0 {
		return
	}

	if w.htmx || w.sessions == nil {
		header, err := mergeTrigger(w.Header().Get("HX-Trigger"), pending)
		if err != nil {
			applog.Error(w.ctx, "failed to encode toast trigger", "error", err)
			return
		}
		w.Header().Set("HX-Trigger", header)
		return
	}

	stashed := append(Flash(w.ctx, w.sessions), pending...)
	data, err := json.Marshal(stashed)
	if err != nil {
		applog.Error(w.ctx, "failed to encode session toasts", "error", err)
		return
	}
	w.sessions.Put(w.ctx, sessionKey, string(data))
}

// mergeTrigger adds the toasts to an existing HX-Trigger value, which may be
// empty, a JSON object, or a comma-separated list of event names.
func mergeTrigger(existing string, toasts []Toast) (string, error) {
	events := map[string]any{}
	existing = strings.TrimSpace(existing)
	switch {
	case existing == "":
	case strings.HasPrefix(existing, "{"):
		if err := json.Unmarshal([]byte(existing), &events); err != nil {
			return "", err
		}
	default:
		for _, name := range strings.Split(existing, ",") {
			if name = strings.TrimSpace(name); name != "" {
				events[name] = nil
			}
		}
	}
	events[TriggerEvent] = toasts
	data, err := json.Marshal(events)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
