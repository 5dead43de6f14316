package theme

import (
	"context"
	"sync"
)

// Applier mirrors the active theme onto the presentation layer.
type Applier interface {
	Apply(ctx context.Context, t Theme)
}

// ApplierFunc adapts a function to Applier.
type ApplierFunc func(ctx context.Context, t Theme)

func (f ApplierFunc) Apply(ctx context.Context, t Theme) { f(ctx, t) }

type discardApplier struct{}

func (discardApplier) Apply(context.Context, Theme) {}

// AttributeName is the root element attribute stylesheets key off.
const AttributeName = "data-theme"

// RootAttribute holds the value rendered into the data-theme attribute of the
// document's <html> element.
type RootAttribute struct {
	mu    sync.RWMutex
	value string
}

// NewRootAttribute returns a RootAttribute starting at DefaultTheme.
func NewRootAttribute() *RootAttribute {
	return &RootAttribute{value: string(DefaultTheme)}
}

func (a *RootAttribute) Apply(_ context.Context, t Theme) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.value = string(t)
}

// Value returns the current attribute value.
func (a *RootAttribute) Value() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.value
}

// Name returns the attribute name.
func (a *RootAttribute) Name() string {
	return AttributeName
}
