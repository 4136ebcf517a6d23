package config

import (
	"strconv"
	"time"
)

// CacheConfig defines settings for the response cache middleware. When
// Enabled is false or no Redis client is configured, caching is disabled.
// The cache only ever applies to GET responses; TTL controls entry
// lifetime and Prefix namespaces the keys.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: getenvDefault("CACHE_ENABLED", "true") == "true",
		TTL:     parseDur(getenvDefault("CACHE_TTL", "30s")),
		Prefix:  getenvDefault("CACHE_PREFIX", "cache"),
	}
}

// RateLimitConfig defines settings for the fixed-window rate limiter.
// Limit is the number of requests allowed per Window for one caller.
type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig. Defaults allow 120 requests per minute.
func LoadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled: getenvDefault("RATE_LIMIT_ENABLED", "true") == "true",
		Limit:   atoi(getenvDefault("RATE_LIMIT_MAX", "120")),
		Window:  parseDur(getenvDefault("RATE_LIMIT_WINDOW", "1m")),
	}
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
