package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/alexedwards/scs/v2"

	applog "pureui/internal/log"
	"pureui/internal/theme"
	"pureui/internal/toast"
)

var (
	sessionManager *scs.SessionManager
	themes         *theme.Controller
	rootAttr       *theme.RootAttribute
	presenter      toast.Presenter = toast.Default

	changedMu   sync.RWMutex
	lastChanged time.Time
	stopListen  theme.Unsubscribe
)

// Dependencies are the services shared by the HTTP handlers.
type Dependencies struct {
	Sessions *scs.SessionManager
	Themes   *theme.Controller
	// Root is the presentation hook the controller applies to. Pages read the
	// data-theme value from it.
	Root      *theme.RootAttribute
	Presenter toast.Presenter
}

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(deps Dependencies) {
	if stopListen != nil {
		stopListen()
		stopListen = nil
	}

	sessionManager = deps.Sessions
	themes = deps.Themes
	rootAttr = deps.Root
	presenter = deps.Presenter
	if presenter == nil {
		presenter = toast.Default
	}

	changedMu.Lock()
	lastChanged = time.Time{}
	changedMu.Unlock()

	if themes != nil {
		stopListen = themes.Listen(func(t theme.Theme) {
			changedMu.Lock()
			lastChanged = time.Now().UTC()
			changedMu.Unlock()
			applog.Debug(context.Background(), "theme change observed by handlers", "theme", t)
		})
	}
}

func themeLastChanged() time.Time {
	changedMu.RLock()
	defer changedMu.RUnlock()
	return lastChanged
}

// currentTheme returns the active theme and the data-theme attribute value.
func currentTheme(ctx context.Context) (theme.Theme, string) {
	if themes == nil {
		return theme.DefaultTheme, string(theme.DefaultTheme)
	}
	current := themes.Theme(ctx)
	if rootAttr != nil {
		return current, rootAttr.Value()
	}
	return current, string(current)
}
