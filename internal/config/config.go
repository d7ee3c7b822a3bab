// Package config loads the server configuration from the environment.
//
// A .env file is read first when present; variables already set in the
// environment win over the file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/kamiweb/router"
)

var (
	// ErrMissingAddress is returned when the listen address is empty.
	ErrMissingAddress = errors.New("server address is required")

	// ErrInvalidLogFormat is returned for a log format other than text or json.
	ErrInvalidLogFormat = errors.New("log format must be text or json")

	// ErrInvalidLogLevel is returned for a level slog does not know.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Config holds the server and router settings.
type Config struct {
	// Server address
	Addr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Timeouts
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Directory served under /static/, disabled when empty
	StaticRoot string `env:"STATIC_ROOT"`

	// Router switches
	RedirectTrailingSlash  bool `env:"ROUTER_REDIRECT_TRAILING_SLASH" envDefault:"true"`
	RedirectFixedPath      bool `env:"ROUTER_REDIRECT_FIXED_PATH" envDefault:"true"`
	HandleMethodNotAllowed bool `env:"ROUTER_HANDLE_METHOD_NOT_ALLOWED" envDefault:"true"`
	HandleOPTIONS          bool `env:"ROUTER_HANDLE_OPTIONS" envDefault:"true"`
	FallbackHEAD           bool `env:"ROUTER_FALLBACK_HEAD" envDefault:"true"`
	SaveMatchedRoutePath   bool `env:"ROUTER_SAVE_MATCHED_ROUTE_PATH" envDefault:"false"`
}

// Load reads the given .env files, ".env" when none is given, and parses
// the environment into a Config. Missing files are ignored.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// MustLoad is like Load but panics on failure.
func MustLoad(files ...string) Config {
	cfg, err := Load(files...)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Validate checks the values env tags can't.
func (c Config) Validate() error {
	if c.Addr == "" {
		return ErrMissingAddress
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Level returns the configured slog level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}

	return level, nil
}

// Logger returns a logger writing to w in the configured format and level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// Apply copies the router switches onto r.
func (c Config) Apply(r *router.Router) {
	r.RedirectTrailingSlash = c.RedirectTrailingSlash
	r.RedirectFixedPath = c.RedirectFixedPath
	r.HandleMethodNotAllowed = c.HandleMethodNotAllowed
	r.HandleOPTIONS = c.HandleOPTIONS
	r.FallbackHEAD = c.FallbackHEAD
	r.SaveMatchedRoutePath = c.SaveMatchedRoutePath
}
