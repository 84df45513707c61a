package constants

import "time"

const (
	DefaultMaxRequestSize = 1 << 20

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = 1 * time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = 1 * time.Second
	DBPoolMetricsInterval = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultAPIHTTPPort   = "8080"
	DefaultWebHTTPPort   = "3000"
	DefaultRPCEndpoint   = "/api/rpc"
	DefaultRPCInputParam = "input"

	DefaultAPIRequestTimeout = 5 * time.Second
	DefaultWebRequestTimeout = 5 * time.Second

	RateLimitCleanupInterval = 5 * time.Minute

	// RFC 3339 with fixed millisecond precision, always rendered in UTC.
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
	DefaultLogDir    = "/var/log/todo-rpc"
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
