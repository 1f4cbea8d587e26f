// Package config holds defaults and the optional TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; without it the service runs on the
	// built-in template and the legacy price table.
	DefaultDatabaseURL = ""

	// DefaultRateLimit is the default requests per minute per IP address.
	DefaultRateLimit = 100

	// DefaultCacheTTL is how long catalog reads are reused.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultConfigPath is read when present and no path is given.
	DefaultConfigPath = "flow.toml"
)

// Duration is a time.Duration read from a TOML string such as "90s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// File is the TOML configuration document.
type File struct {
	LogLevel string   `toml:"log_level"`
	Server   Server   `toml:"server"`
	Database Database `toml:"database"`
	Pricing  Pricing  `toml:"pricing"`
}

// Server configures the HTTP listener.
type Server struct {
	Port       string `toml:"port"`
	RateLimit  int    `toml:"rate_limit"`
	TrustProxy bool   `toml:"trust_proxy"`
}

// Database configures PostgreSQL.
type Database struct {
	URL     string `toml:"url"`
	Migrate bool   `toml:"migrate"`
}

// Pricing configures the resolver.
type Pricing struct {
	CacheTTL          Duration `toml:"cache_ttl"`
	DefaultTemplateID string   `toml:"default_template_id"`
	TemplateFile      string   `toml:"template_file"`
}

// Defaults returns a File populated with the default constants.
func Defaults() File {
	return File{
		LogLevel: DefaultLogLevel,
		Server: Server{
			Port:      DefaultPort,
			RateLimit: DefaultRateLimit,
		},
		Database: Database{URL: DefaultDatabaseURL},
		Pricing:  Pricing{CacheTTL: Duration{DefaultCacheTTL}},
	}
}

// Load reads path over the defaults. A missing file at DefaultConfigPath is
// not an error; a missing file at any other path is.
func Load(path string) (File, error) {
	cfg := Defaults()
	if path == "" {
		path = DefaultConfigPath
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultConfigPath {
			return Defaults(), nil
		}
		return File{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return File{}, fmt.Errorf("load config %s: unknown keys %v", path, undecoded)
	}
	if cfg.Server.RateLimit <= 0 {
		return File{}, fmt.Errorf("load config %s: rate_limit must be positive, got %d", path, cfg.Server.RateLimit)
	}
	return cfg, nil
}
