package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Namespace separates sessions of different profiles sharing one Redis
	Namespace string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// SessionTTL expires stored session keys; zero keeps them until cleared
	SessionTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		Namespace:    "default",
		PoolSize:     2,
		MinIdleConns: 0,
		SessionTTL:   24 * time.Hour,
	}
}
