package config

import "time"

// CacheConfig controls the Redis response cache on the room listing.
// The cache is invalidation-free: entries simply age out after TTL, so
// an admin edit takes at most TTL to reach clients that only poll the
// list. MaxBodyBytes keeps pathological responses out of Redis.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads the CACHE_* environment variables, with
// defaults suitable for a small deployment.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "roomcache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
