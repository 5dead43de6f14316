package theme

import (
	"context"
	"sync"

	applog "pureui/internal/log"
)

// Subscriber is invoked with the new theme after every change.
type Subscriber func(Theme)

// Unsubscribe removes a subscriber. Calling it more than once has no effect.
type Unsubscribe func()

type subscription struct {
	id     uint64
	fn     Subscriber
	active bool
}

// Controller is the process-wide theme service. Construct it once with New
// and pass it to whatever needs to read or change the theme.
type Controller struct {
	// writeMu serializes store writes with the state update and apply that
	// follow them. It is released before subscribers run.
	writeMu sync.Mutex

	mu          sync.Mutex
	store       Store
	applier     Applier
	fallback    Theme
	initialized bool
	current     Theme
	subs        []*subscription
	nextID      uint64
}

// Option customizes a Controller.
type Option func(*Controller)

// WithFallback sets the theme reported when nothing has been persisted.
// Invalid values are ignored.
func WithFallback(t Theme) Option {
	return func(c *Controller) {
		if t.Valid() {
			c.fallback = t
		}
	}
}

// WithApplier installs the presentation hook.
func WithApplier(a Applier) Option {
	return func(c *Controller) {
		if a != nil {
			c.applier = a
		}
	}
}

// New builds a Controller backed by store. A nil store keeps the preference
// in memory only.
func New(store Store, opts ...Option) *Controller {
	if store == nil {
		store = NewMemoryStore()
	}
	c := &Controller{
		store:    store,
		applier:  discardApplier{},
		fallback: DefaultTheme,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Theme returns the active theme, loading the persisted preference on first
// use. It never fails: store errors and unknown stored values fall back to
// the configured default.
func (c *Controller) Theme(ctx context.Context) Theme {
	c.mu.Lock()
	if c.initialized {
		current := c.current
		c.mu.Unlock()
		return current
	}
	c.mu.Unlock()

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	if c.initialized {
		// A concurrent SetTheme or Theme call won the race.
		current := c.current
		c.mu.Unlock()
		return current
	}
	c.mu.Unlock()

	loaded := c.load(ctx)

	c.mu.Lock()
	c.initialized = true
	c.current = loaded
	c.mu.Unlock()

	c.applier.Apply(ctx, loaded)
	applog.Debug(ctx, "theme initialized", "theme", loaded)
	return loaded
}

// Initialized reports whether the controller has left the uninitialized state.
func (c *Controller) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

func (c *Controller) load(ctx context.Context) Theme {
	stored, ok, err := c.store.Load(ctx)
	switch {
	case err != nil:
		applog.Warn(ctx, "failed to load persisted theme, using fallback", "error", err, "fallback", c.fallback)
		return c.fallback
	case !ok:
		return c.fallback
	case !stored.Valid():
		applog.Warn(ctx, "ignoring unknown persisted theme", "value", string(stored), "fallback", c.fallback)
		return c.fallback
	}
	return stored
}

// SetTheme validates, persists and applies t, then notifies subscribers in
// registration order. On error the current theme is left unchanged.
//
// A subscriber may call SetTheme itself; the nested change is processed
// immediately and its notifications finish before the outer loop resumes.
func (c *Controller) SetTheme(ctx context.Context, t Theme) error {
	if !t.Valid() {
		return &InvalidThemeError{Value: string(t)}
	}

	c.writeMu.Lock()
	if err := c.store.Save(ctx, t); err != nil {
		c.writeMu.Unlock()
		applog.Error(ctx, "failed to persist theme", "theme", t, "error", err)
		return err
	}

	c.mu.Lock()
	previous := c.current
	c.current = t
	c.initialized = true
	subs := make([]*subscription, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	c.applier.Apply(ctx, t)
	c.writeMu.Unlock()
	applog.Info(ctx, "theme changed", "from", previous, "to", t, "subscribers", len(subs))

	c.notify(subs, t)
	return nil
}

// SetThemeString parses raw and sets the result.
func (c *Controller) SetThemeString(ctx context.Context, raw string) (Theme, error) {
	t, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return t, c.SetTheme(ctx, t)
}

// Reload re-reads the persisted preference and, when it differs from the
// active theme, applies it and notifies subscribers. It is the entry point
// for changes made outside this process.
func (c *Controller) Reload(ctx context.Context) (Theme, error) {
	c.writeMu.Lock()
	stored, ok, err := c.store.Load(ctx)
	if err == nil && !ok {
		stored = c.fallback
	}
	if err == nil && !stored.Valid() {
		err = &InvalidThemeError{Value: string(stored)}
	}
	if err != nil {
		c.writeMu.Unlock()
		return c.Theme(ctx), err
	}

	c.mu.Lock()
	changed := !c.initialized || c.current != stored
	c.current = stored
	c.initialized = true
	subs := make([]*subscription, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	if !changed {
		c.writeMu.Unlock()
		return stored, nil
	}

	c.applier.Apply(ctx, stored)
	c.writeMu.Unlock()
	applog.Info(ctx, "theme reloaded from store", "theme", stored)
	c.notify(subs, stored)
	return stored, nil
}

// Listen registers sub for every subsequent change and returns the handle
// that removes it.
func (c *Controller) Listen(sub Subscriber) Unsubscribe {
	if sub == nil {
		return func() {}
	}

	c.mu.Lock()
	c.nextID++
	s := &subscription{id: c.nextID, fn: sub, active: true}
	c.subs = append(c.subs, s)
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { c.remove(s.id) })
	}
}

// Subscribers returns the number of registered subscribers.
func (c *Controller) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

func (c *Controller) remove(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.subs {
		if s.id == id {
			s.active = false
			c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
			return
		}
	}
}

func (c *Controller) notify(subs []*subscription, t Theme) {
	for _, s := range subs {
		c.mu.Lock()
		active := s.active
		c.mu.Unlock()
		if !active {
			continue
		}
		s.fn(t)
	}
}
