package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config in the on-disk format. Durations are written as
// Go duration strings ("12h", "90s").
type fileConfig struct {
	Server struct {
		Addr string `toml:"addr" yaml:"addr"`
	} `toml:"server" yaml:"server"`
	Database struct {
		URL             string `toml:"url" yaml:"url"`
		UseMock         bool   `toml:"use_mock" yaml:"use_mock"`
		MaxIdleConns    int    `toml:"max_idle_conns" yaml:"max_idle_conns"`
		MaxOpenConns    int    `toml:"max_open_conns" yaml:"max_open_conns"`
		ConnMaxLifetime string `toml:"conn_max_lifetime" yaml:"conn_max_lifetime"`
		ConnMaxIdleTime string `toml:"conn_max_idle_time" yaml:"conn_max_idle_time"`
	} `toml:"database" yaml:"database"`
	Logging struct {
		Level string `toml:"level" yaml:"level"`
	} `toml:"logging" yaml:"logging"`
	Session struct {
		Lifetime     string `toml:"lifetime" yaml:"lifetime"`
		CookieName   string `toml:"cookie_name" yaml:"cookie_name"`
		CookieDomain string `toml:"cookie_domain" yaml:"cookie_domain"`
		CookieSecure bool   `toml:"cookie_secure" yaml:"cookie_secure"`
	} `toml:"session" yaml:"session"`
	Theme struct {
		Default    string `toml:"default" yaml:"default"`
		StorageKey string `toml:"storage_key" yaml:"storage_key"`
		File       string `toml:"file" yaml:"file"`
		Watch      bool   `toml:"watch" yaml:"watch"`
	} `toml:"theme" yaml:"theme"`
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	if strings.TrimSpace(path) == "" {
		return fc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &fc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		return fc, fmt.Errorf("unsupported config file extension %q", ext)
	}
	if err != nil {
		return fc, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return fc, nil
}
