package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pureui/internal/config"
	"pureui/internal/db"
	applog "pureui/internal/log"
	"pureui/internal/theme"
)

var errNoStore = errors.New("no persistent theme store configured")

// openController builds a theme controller over the configured store. The
// CLI never uses the in-memory database since nothing would outlive it.
func openController(ctx context.Context, flags *rootFlags) (*theme.Controller, error) {
	cfg, err := config.LoadFile(flags.configPath)
	if err != nil {
		return nil, newCommandError("load configuration", flags.configPath, err, "Check the config file and environment variables.")
	}
	if !flags.verbose {
		if err := applog.SetLevel(cfg.Logging.Level); err != nil {
			return nil, newCommandError("load configuration", "log level", err, "Use debug, info, warn or error.")
		}
	}

	fallback := theme.DefaultTheme
	if strings.TrimSpace(cfg.Theme.Default) != "" {
		if fallback, err = theme.Parse(cfg.Theme.Default); err != nil {
			return nil, newCommandError("load configuration", "default theme", err, "Set THEME_DEFAULT to light, dark or system.")
		}
	}

	store, err := openStore(ctx, cfg, flags)
	if err != nil {
		return nil, err
	}
	return theme.New(store, theme.WithFallback(fallback)), nil
}

func openStore(ctx context.Context, cfg config.Config, flags *rootFlags) (theme.Store, error) {
	if path := firstNonEmpty(flags.themeFile, cfg.Theme.File); path != "" {
		applog.Debug(ctx, "using theme file", "path", path)
		return theme.NewFileStore(path), nil
	}

	dbCfg := cfg.Database
	if url := strings.TrimSpace(flags.databaseURL); url != "" {
		dbCfg.URL = url
		dbCfg.UseMock = false
	}
	if dbCfg.UseMock || dbCfg.URL == "" {
		return nil, newCommandError("open theme store", "resolving storage", errNoStore, "Pass --theme-file or --database, or set THEME_FILE or DATABASE_URL.")
	}

	conn, err := db.Configure(dbCfg)
	if err != nil {
		return nil, newCommandError("open theme store", "connecting to database", err, "Check the database URL and that the server is reachable.")
	}
	return db.NewPreferenceStore(conn, cfg.Theme.StorageKey), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error { return e.cause }
