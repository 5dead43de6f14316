package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"pureui/internal/handlers"
	applog "pureui/internal/log"
	"pureui/internal/theme"
	"pureui/internal/toast"
)

// DefaultCookieName names the session cookie when none is configured.
const DefaultCookieName = "pureui_session"

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr    string
	Session SessionConfig
	// Themes is the process-wide theme controller. When nil the server
	// builds an in-memory one.
	Themes *theme.Controller
	// Root must be the applier Themes was built with so rendered pages carry
	// the applied data-theme value.
	Root *theme.RootAttribute
	// StaticDir is served under /assets/. Defaults to web/static.
	StaticDir string
}

// SessionConfig controls session behavior for the HTTP server.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// Server wraps an http.Server and exposes helpers for bootstrapping the web
// service.
type Server struct {
	config     Config
	sessions   *scs.SessionManager
	httpServer *http.Server
}

// New builds a new Server using the provided configuration.
func New(cfg Config) (*Server, error) {
	applog.Debug(context.Background(), "initializing server",
		"addr", cfg.Addr,
		"sessionLifetime", cfg.Session.Lifetime.String(),
		"sessionCookie", cfg.Session.CookieName,
	)

	sessionCfg := cfg.Session
	if sessionCfg.Lifetime <= 0 {
		applog.Debug(context.Background(), "session lifetime not provided, using default")
		sessionCfg.Lifetime = 12 * time.Hour
	}
	if strings.TrimSpace(sessionCfg.CookieName) == "" {
		applog.Debug(context.Background(), "session cookie name not provided, using default")
		sessionCfg.CookieName = DefaultCookieName
	}
	if strings.TrimSpace(cfg.StaticDir) == "" {
		cfg.StaticDir = "web/static"
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = sessionCfg.Lifetime
	sessionManager.Cookie.Name = sessionCfg.CookieName
	sessionManager.Cookie.Domain = sessionCfg.CookieDomain
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = sessionCfg.CookieSecure

	if cfg.Themes == nil {
		applog.Debug(context.Background(), "theme controller not provided, using in-memory store")
		if cfg.Root == nil {
			cfg.Root = theme.NewRootAttribute()
		}
		cfg.Themes = theme.New(theme.NewMemoryStore(), theme.WithApplier(cfg.Root))
	}

	handlers.Configure(handlers.Dependencies{
		Sessions: sessionManager,
		Themes:   cfg.Themes,
		Root:     cfg.Root,
	})
	applog.Debug(context.Background(), "handler dependencies configured")

	// Toast delivery needs the session loaded, so it sits inside LoadAndSave.
	handler := sessionManager.LoadAndSave(toast.Middleware(sessionManager)(newRouter(cfg.StaticDir)))

	return &Server{
		config:   cfg,
		sessions: sessionManager,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Start begins serving HTTP traffic using the underlying http.Server.
func (s *Server) Start() error {
	applog.Debug(context.Background(), "server starting listener", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server with a timeout.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	applog.Debug(ctx, "server initiating graceful shutdown")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Themes returns the theme controller the handlers were configured with.
func (s *Server) Themes() *theme.Controller {
	return s.config.Themes
}
