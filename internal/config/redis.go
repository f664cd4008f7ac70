package config

import (
	"context"
	"crypto/tls"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the Redis instance backing the rate
// limiter and the room-list cache. The address comes from REDIS_ADDR,
// or REDIS_HOST/REDIS_PORT, defaulting to localhost:6379; REDIS_PASSWORD,
// REDIS_DB and REDIS_TLS are honored when set.
//
// Redis is optional infrastructure here: when the ping fails the
// function logs and returns nil, and both middlewares degrade to
// pass-through. Bookings stay correct either way, the database
// constraint does not need the limiter.
func NewRedisClient() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		addr = host + ":" + port
	}
	if addr == "" {
		addr = "localhost:6379"
	}

	var tlsConf *tls.Config
	if envBool("REDIS_TLS", false) {
		tlsConf = &tls.Config{InsecureSkipVerify: true}
	}

	client := redis.NewClient(&redis.Options{
		Addr:      addr,
		Password:  os.Getenv("REDIS_PASSWORD"),
		DB:        envInt("REDIS_DB", 0),
		TLSConfig: tlsConf,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis: %s unreachable, caching and rate limiting disabled: %v", addr, err)
		return nil
	}
	return client
}
