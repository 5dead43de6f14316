package toast

import (
	"context"
	"sync"

	applog "pureui/internal/log"
)

// Presenter triggers a toast. Present never blocks on the display and never
// reports failure.
type Presenter interface {
	Present(ctx context.Context, message string, opts ...Option)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(ctx context.Context, message string, opts ...Option)

func (f PresenterFunc) Present(ctx context.Context, message string, opts ...Option) {
	f(ctx, message, opts...)
}

// Queue collects the toasts raised while serving one request.
type Queue struct {
	mu     sync.Mutex
	toasts []Toast
}

func (q *Queue) Present(ctx context.Context, message string, opts ...Option) {
	t, ok := New(message, opts...)
	if !ok {
		applog.Debug(ctx, "dropping blank toast")
		return
	}
	q.mu.Lock()
	q.toasts = append(q.toasts, t)
	q.mu.Unlock()
	applog.Debug(ctx, "toast queued", "id", t.ID, "kind", t.Kind)
}

// Len returns the number of pending toasts.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.toasts)
}

// Drain returns and clears the pending toasts.
func (q *Queue) Drain() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	pending := q.toasts
	q.toasts = nil
	return pending
}

type queueKey struct{}

// WithQueue attaches q to ctx.
func WithQueue(ctx context.Context, q *Queue) context.Context {
	return context.WithValue(ctx, queueKey{}, q)
}

// QueueFrom returns the queue attached to ctx, if any.
func QueueFrom(ctx context.Context) (*Queue, bool) {
	if ctx == nil {
		return nil, false
	}
	q, ok := ctx.Value(queueKey{}).(*Queue)
	return q, ok && q != nil
}

// Show queues a toast for the current request. Outside a request carrying a
// queue the toast is logged and dropped.
func Show(ctx context.Context, message string, opts ...Option) {
	q, ok := QueueFrom(ctx)
	if !ok {
		applog.Debug(ctx, "no toast queue in context, dropping toast", "message", message)
		return
	}
	q.Present(ctx, message, opts...)
}

// Default presents through Show.
var Default Presenter = PresenterFunc(Show)
