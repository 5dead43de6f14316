package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Session  SessionConfig
	Theme    ThemeConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr string `validate:"required"`
}

// DatabaseConfig contains the database connection settings.
type DatabaseConfig struct {
	URL             string
	UseMock         bool
	MaxIdleConns    int `validate:"gte=0"`
	MaxOpenConns    int `validate:"gte=0"`
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// LoggingConfig selects the log level.
type LoggingConfig struct {
	Level string `validate:"omitempty,oneof=debug info warn warning error"`
}

// SessionConfig controls the session cookie.
type SessionConfig struct {
	Lifetime     time.Duration `validate:"gte=0"`
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// ThemeConfig controls where the theme preference lives.
//
// When File is set the preference is kept in that TOML file and, with Watch,
// edits made by other processes are picked up live. Otherwise it is stored in
// the database under StorageKey.
type ThemeConfig struct {
	Default    string `validate:"omitempty,oneof=light dark system"`
	StorageKey string `validate:"required"`
	File       string
	Watch      bool
}

// Load inspects the environment, plus the optional file named by
// PUREUI_CONFIG, and builds a validated Config. Environment variables win
// over the file.
func Load() (Config, error) {
	return LoadFile(os.Getenv("PUREUI_CONFIG"))
}

// LoadFile is Load with an explicit config file path. An empty path skips
// the file.
func LoadFile(path string) (Config, error) {
	file, err := readFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			os.Getenv("SERVER_ADDR"),
			os.Getenv("ADDR"),
			file.Server.Addr,
			":8080",
		),
	}

	cfg.Database = DatabaseConfig{
		URL: firstNonEmpty(
			os.Getenv("DATABASE_URL"),
			os.Getenv("DB_URL"),
			file.Database.URL,
		),
		MaxIdleConns:    parseIntWithDefault(os.Getenv("DB_MAX_IDLE_CONNS"), file.Database.MaxIdleConns),
		MaxOpenConns:    parseIntWithDefault(os.Getenv("DB_MAX_OPEN_CONNS"), file.Database.MaxOpenConns),
		ConnMaxLifetime: parseDurationWithDefault(firstNonEmpty(os.Getenv("DB_CONN_MAX_LIFETIME"), file.Database.ConnMaxLifetime), 0),
		ConnMaxIdleTime: parseDurationWithDefault(firstNonEmpty(os.Getenv("DB_CONN_MAX_IDLE_TIME"), file.Database.ConnMaxIdleTime), 0),
	}
	cfg.Database.UseMock = parseBoolWithDefault(os.Getenv("DATABASE_USE_MOCK"), file.Database.UseMock) ||
		strings.TrimSpace(cfg.Database.URL) == ""

	cfg.Logging = LoggingConfig{
		Level: strings.ToLower(firstNonEmpty(os.Getenv("LOG_LEVEL"), file.Logging.Level, "info")),
	}

	cfg.Session = SessionConfig{
		Lifetime:     parseDurationWithDefault(firstNonEmpty(os.Getenv("SESSION_LIFETIME"), file.Session.Lifetime), 12*time.Hour),
		CookieName:   firstNonEmpty(os.Getenv("SESSION_COOKIE_NAME"), file.Session.CookieName, "pureui_session"),
		CookieDomain: firstNonEmpty(os.Getenv("SESSION_COOKIE_DOMAIN"), file.Session.CookieDomain),
		CookieSecure: parseBoolWithDefault(os.Getenv("SESSION_COOKIE_SECURE"), file.Session.CookieSecure),
	}

	cfg.Theme = ThemeConfig{
		Default:    strings.ToLower(firstNonEmpty(os.Getenv("THEME_DEFAULT"), file.Theme.Default, "system")),
		StorageKey: firstNonEmpty(os.Getenv("THEME_STORAGE_KEY"), file.Theme.StorageKey, "theme"),
		File:       firstNonEmpty(os.Getenv("THEME_FILE"), file.Theme.File),
		Watch:      parseBoolWithDefault(os.Getenv("THEME_WATCH"), file.Theme.Watch),
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	if strings.TrimSpace(value) == "" {
		return def
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	if strings.TrimSpace(value) == "" {
		return def
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	if strings.TrimSpace(value) == "" {
		return def
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return parsed
}

// String renders a redacted summary suitable for startup logs.
func (c Config) String() string {
	dbURL := "<unset>"
	if c.Database.URL != "" {
		dbURL = "<redacted>"
	}
	return fmt.Sprintf("addr=%s db=%s mock=%t log=%s theme.default=%s theme.file=%q",
		c.Server.Addr, dbURL, c.Database.UseMock, c.Logging.Level, c.Theme.Default, c.Theme.File)
}
