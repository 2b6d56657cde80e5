package constants

import "time"

type ContextKey string

const (
	TraceIDKey ContextKey = "trace_id"
)

const (
	ServerReadHeaderTimeout = 5 * time.Second
	ServerReadTimeout       = 15 * time.Second
	ServerWriteTimeout      = 15 * time.Second
	ServerIdleTimeout       = 60 * time.Second

	DefaultMaxRequestSize int64 = 1 << 20

	DefaultTokenTTL       = 7 * 24 * time.Hour
	DefaultRequestTimeout = 5 * time.Second

	BcryptCost = 12

	MinJWTSecretLength = 32
)
