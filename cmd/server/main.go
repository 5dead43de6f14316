package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gorm.io/gorm"

	"pureui/internal/config"
	"pureui/internal/db"
	"pureui/internal/db/mock"
	applog "pureui/internal/log"
	"pureui/internal/server"
	"pureui/internal/theme"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc       = config.Load
	setLogLevelFunc      = applog.SetLevel
	newMockDatabaseFunc  = func(ctx context.Context) (*gorm.DB, error) { return mock.New(ctx) }
	configureDatabase    = db.Configure
	newServerFunc        = func(cfg server.Config) (serverLifecycle, error) { return server.New(cfg) }
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}
	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}
	applog.Debug(ctx, "configuration loaded", "config", cfg.String())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store, fileStore, err := themeStore(ctx, cfg)
	if err != nil {
		applog.Error(ctx, "failed to prepare theme storage", "error", err)
		return 1
	}

	fallback := theme.DefaultTheme
	if strings.TrimSpace(cfg.Theme.Default) != "" {
		if fallback, err = theme.Parse(cfg.Theme.Default); err != nil {
			applog.Error(ctx, "invalid default theme", "error", err)
			return 1
		}
	}
	root := theme.NewRootAttribute()
	controller := theme.New(store, theme.WithFallback(fallback), theme.WithApplier(root))

	if fileStore != nil && cfg.Theme.Watch {
		watcher, err := theme.NewWatcher(controller, fileStore)
		if err != nil {
			applog.Error(ctx, "failed to create theme watcher", "error", err)
			return 1
		}
		if err := watcher.Start(ctx); err != nil {
			applog.Error(ctx, "failed to start theme watcher", "path", fileStore.Path(), "error", err)
			return 1
		}
		defer func() {
			if err := watcher.Stop(); err != nil {
				applog.Warn(ctx, "theme watcher stop failed", "error", err)
			}
		}()
	}

	srv, err := newServerFunc(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Session.Lifetime,
			CookieName:   cfg.Session.CookieName,
			CookieDomain: cfg.Session.CookieDomain,
			CookieSecure: cfg.Session.CookieSecure,
		},
		Themes: controller,
		Root:   root,
	})
	if err != nil {
		applog.Error(ctx, "failed to create server", "error", err)
		return 1
	}

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		errCh <- srv.Start()
	}()

	sigCh, stopSignals := subscribeShutdownSig()
	defer stopSignals()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-sigCh:
		applog.Info(ctx, "shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
	}

	applog.Info(ctx, "shutting down http server")
	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server exited with error", "error", err)
		return 1
	}
	return 0
}

// themeStore picks where the preference lives. A configured file wins over
// the database; the FileStore is returned separately so it can be watched.
func themeStore(ctx context.Context, cfg config.Config) (theme.Store, *theme.FileStore, error) {
	if path := strings.TrimSpace(cfg.Theme.File); path != "" {
		applog.Debug(ctx, "using file theme store", "path", path)
		fs := theme.NewFileStore(path)
		return fs, fs, nil
	}

	var (
		conn *gorm.DB
		err  error
	)
	if cfg.Database.UseMock {
		applog.Info(ctx, "using in-memory database")
		conn, err = newMockDatabaseFunc(ctx)
	} else {
		conn, err = configureDatabase(cfg.Database)
	}
	if err != nil {
		return nil, nil, err
	}
	return db.NewPreferenceStore(conn, cfg.Theme.StorageKey), nil, nil
}
