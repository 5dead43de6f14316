// Package toast queues transient notifications for the browser.
//
// Handlers call Show and move on. The middleware hands queued toasts to the
// client once the response starts: HTMX requests receive them in an
// HX-Trigger header, full page loads pick them up from the session on the
// next render.
package toast

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Kind selects the toast's styling.
type Kind string

const (
	Info    Kind = "info"
	Success Kind = "success"
	Warning Kind = "warning"
	Error   Kind = "error"
)

const (
	// DefaultDuration applies when no usable duration is given.
	DefaultDuration = 4 * time.Second
	// MaxDuration caps how long a toast stays on screen.
	MaxDuration = 30 * time.Second
)

// Toast is a single notification.
type Toast struct {
	ID         string    `json:"id"`
	Message    string    `json:"message"`
	Kind       Kind      `json:"kind"`
	DurationMS int64     `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Duration returns the display duration.
func (t Toast) Duration() time.Duration {
	return time.Duration(t.DurationMS) * time.Millisecond
}

type settings struct {
	kind     Kind
	duration time.Duration
}

// Option configures a toast.
type Option func(*settings)

// WithKind sets the kind. Unknown kinds fall back to Info.
func WithKind(k Kind) Option {
	return func(s *settings) { s.kind = k }
}

// WithDuration sets how long the toast is displayed. Non-positive values fall
// back to DefaultDuration; values above MaxDuration are clamped.
func WithDuration(d time.Duration) Option {
	return func(s *settings) { s.duration = d }
}

func AsSuccess() Option { return WithKind(Success) }
func AsWarning() Option { return WithKind(Warning) }
func AsError() Option   { return WithKind(Error) }

// ParseKind maps free-form input onto a Kind, defaulting to Info.
func ParseKind(raw string) Kind {
	switch k := Kind(strings.ToLower(strings.TrimSpace(raw))); k {
	case Info, Success, Warning, Error:
		return k
	case "warn":
		return Warning
	case "danger", "failure":
		return Error
	default:
		return Info
	}
}

// New builds a toast, normalizing malformed options instead of failing.
// ok is false for blank messages, which are never shown.
func New(message string, opts ...Option) (Toast, bool) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Toast{}, false
	}

	s := settings{kind: Info, duration: DefaultDuration}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}

	switch {
	case s.duration <= 0:
		s.duration = DefaultDuration
	case s.duration > MaxDuration:
		s.duration = MaxDuration
	}

	now := time.Now().UTC()
	return Toast{
		ID:         ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		Message:    message,
		Kind:       ParseKind(string(s.kind)),
		DurationMS: s.duration.Milliseconds(),
		CreatedAt:  now,
	}, true
}
