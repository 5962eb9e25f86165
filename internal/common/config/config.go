package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	API struct {
		// Empty means same-origin: the console's own listen address.
		BaseURL string `env:"API_BASE_URL" envDefault:""`
		// Where /api/* is proxied when the console is the same origin.
		UpstreamURL string        `env:"UPSTREAM_API_URL" envDefault:""`
		Timeout     time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	}

	Session struct {
		Backend string        `env:"SESSION_BACKEND" envDefault:"memory"` // memory, redis
		TTL     time.Duration `env:"SESSION_TTL" envDefault:"12h"`
		Cookie  string        `env:"SESSION_COOKIE" envDefault:"ua_session"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// .env is optional; in production the variables are set directly
	}

	cfg, err := Parse()
	if err != nil {
		panic(err)
	}

	return cfg
}

// Parse reads the environment without touching .env files.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	cfg.API.UpstreamURL = strings.TrimRight(cfg.API.UpstreamURL, "/")

	switch cfg.Session.Backend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return nil, fmt.Errorf("invalid SESSION_BACKEND %q", cfg.Session.Backend)
	}

	return cfg, nil
}

// APIBase returns the base URL the console uses for /api/users calls.
func (c *Config) APIBase() string {
	if c.API.BaseURL != "" {
		return c.API.BaseURL
	}
	return fmt.Sprintf("http://127.0.0.1:%d", c.Server.Port)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
