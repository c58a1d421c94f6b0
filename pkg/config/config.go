package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config of the backend service, read from environment variables.
type Config struct {
	BasePath        string        `env:"BASE_PATH" envDefault:"/api"`
	Port            int           `env:"PORT" envDefault:"8080"`
	Timezone        string        `env:"TIMEZONE" envDefault:"Local"`
	SummaryCacheTTL time.Duration `env:"SUMMARY_CACHE_TTL" envDefault:"1m"`
	Logging         Logging
	Postgresql      Postgresql
	Redis           Redis
	Admin           Admin
}

type Logging struct {
	Level  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	Pretty bool       `env:"LOG_PRETTY" envDefault:"false"`
}

type Postgresql struct {
	Host         string `env:"DATABASE_HOST,required"`
	Port         int    `env:"DATABASE_PORT" envDefault:"5432"`
	Username     string `env:"DATABASE_USERNAME,required"`
	Password     string `env:"DATABASE_PASSWORD,required"`
	DatabaseName string `env:"DATABASE_NAME,required"`
}

// Redis is optional. Without a host the analytics summary is computed on every request.
type Redis struct {
	Host     string `env:"REDIS_HOST"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

func (r Redis) Enabled() bool {
	return r.Host != ""
}

// Admin is the administrator account created on startup if no user with that email exists.
type Admin struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

func (a Admin) Enabled() bool {
	return a.Email != "" && a.Password != ""
}

// Location returns the time zone timestamps without zone suffix are interpreted in.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %v", c.Timezone, err)
	}
	return loc, nil
}

func New() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if c.SummaryCacheTTL < 0 {
		return Config{}, fmt.Errorf("SUMMARY_CACHE_TTL must not be negative, got %s", c.SummaryCacheTTL)
	}
	if _, err := c.Location(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Client configures the cuff command line app.
type Client struct {
	APIURL    string        `env:"CUFF_API_URL" envDefault:"http://localhost:8080/api"`
	PrefsPath string        `env:"CUFF_PREFS_PATH" envDefault:"cuff.db"`
	Email     string        `env:"CUFF_EMAIL"`
	Timeout   time.Duration `env:"CUFF_HTTP_TIMEOUT" envDefault:"10s"`
}

func NewClient() (Client, error) {
	var c Client
	if err := env.Parse(&c); err != nil {
		return Client{}, fmt.Errorf("failed to parse client config: %w", err)
	}
	return c, nil
}
