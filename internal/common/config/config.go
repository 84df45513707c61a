package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

var (
	ErrInvalidRPCEndpoint = errors.New("RPC_ENDPOINT must start with '/'")
	ErrInvalidAPIURL      = errors.New("API_URL must be an absolute http(s) URL")
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
)

type LogConfig struct {
	Dir   string `env:"LOG_DIR" env-default:""`
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

type RateLimitConfig struct {
	RequestsPerSecond         float64 `env:"RPC_RATE_LIMIT_RPS" env-default:"50"`
	Burst                     int     `env:"RPC_RATE_LIMIT_BURST" env-default:"100"`
	MutationRequestsPerSecond float64 `env:"RPC_MUTATION_RATE_LIMIT_RPS" env-default:"10"`
	MutationBurst             int     `env:"RPC_MUTATION_RATE_LIMIT_BURST" env-default:"20"`
}

type APIConfig struct {
	HTTPPort       string        `env:"API_HTTP_PORT" env-default:"8080"`
	DatabaseURL    string        `env:"DATABASE_URL" env-required:"true"`
	RPCEndpoint    string        `env:"RPC_ENDPOINT" env-default:"/api/rpc"`
	RequestTimeout time.Duration `env:"API_REQUEST_TIMEOUT" env-default:"5s"`
	MigrateOnStart bool          `env:"MIGRATE_ON_START" env-default:"true"`
	RateLimit      RateLimitConfig
	Log            LogConfig
}

type WebConfig struct {
	HTTPPort       string        `env:"WEB_HTTP_PORT" env-default:"3000"`
	APIURL         string        `env:"API_URL" env-default:"http://localhost:8080"`
	RPCEndpoint    string        `env:"RPC_ENDPOINT" env-default:"/api/rpc"`
	RequestTimeout time.Duration `env:"WEB_REQUEST_TIMEOUT" env-default:"5s"`
	Log            LogConfig
}

func LoadAPIConfig() (APIConfig, error) {
	var cfg APIConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return APIConfig{}, fmt.Errorf("read env: %w", err)
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return APIConfig{}, ErrMissingDatabaseURL
	}
	endpoint, err := normalizeEndpoint(cfg.RPCEndpoint)
	if err != nil {
		return APIConfig{}, err
	}
	cfg.RPCEndpoint = endpoint
	return cfg, nil
}

func LoadWebConfig() (WebConfig, error) {
	var cfg WebConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return WebConfig{}, fmt.Errorf("read env: %w", err)
	}
	endpoint, err := normalizeEndpoint(cfg.RPCEndpoint)
	if err != nil {
		return WebConfig{}, err
	}
	cfg.RPCEndpoint = endpoint

	u, err := url.Parse(strings.TrimSpace(cfg.APIURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return WebConfig{}, fmt.Errorf("%w: got %q", ErrInvalidAPIURL, cfg.APIURL)
	}
	cfg.APIURL = strings.TrimSuffix(u.String(), "/")
	return cfg, nil
}

// normalizeEndpoint trims trailing slashes so "/api/rpc/" and "/api/rpc" mount the same prefix.
func normalizeEndpoint(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "/") {
		return "", fmt.Errorf("%w: got %q", ErrInvalidRPCEndpoint, s)
	}
	s = strings.TrimRight(s, "/")
	if s == "" {
		return "", fmt.Errorf("%w: endpoint cannot be the root path", ErrInvalidRPCEndpoint)
	}
	return s, nil
}
