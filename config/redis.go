package config

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis connects the analysis-history cache and verifies the connection
// with a ping before anything else uses it.
func InitRedis() error {
	opts, err := redisOptions()
	if err != nil {
		return err
	}
	RedisClient = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return RedisClient.Ping(ctx).Err()
}

// redisOptions resolves the cache address. REDIS_URL or REDIS_URI carry a
// full redis:// (or rediss://) URL; REDIS_ADDR carries a bare host:port with
// the password in REDIS_PASSWORD.
func redisOptions() (*redis.Options, error) {
	for _, key := range []string{"REDIS_URL", "REDIS_URI"} {
		if u := os.Getenv(key); u != "" {
			return redis.ParseURL(u)
		}
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil, errors.New("no Redis address configured, set REDIS_URL or REDIS_ADDR")
	}
	if strings.Contains(addr, "://") {
		return redis.ParseURL(addr)
	}
	return &redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASSWORD")}, nil
}
