package constants

import "time"

// TraceIDKey is the context key the trace middleware stores the request's
// trace id under. It lives here so both the http layer and the logger can
// read the same key without importing each other.
type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"

const (
	DefaultSessionTTL = 10 * time.Second

	SessionKeyPrefix       = "sessions:"
	ActiveSessionKeyPrefix = "userSessions:"

	MemoryStoreSweepInterval = 1 * time.Second

	DefaultMaxRequestSize = 1 << 20

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = 1 * time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = 1 * time.Second

	RedisPingTimeout = 2 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	RequestTimeout = 5 * time.Second

	RateLimitCleanupInterval = 5 * time.Minute

	LoginRateLimitPerSecond   = 5.0
	LoginRateLimitBurst       = 10
	GeneralRateLimitPerSecond = 50.0
	GeneralRateLimitBurst     = 100
)
