package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// NewCacheClient connects to redis for report caching. Caching is
// best-effort: with no REDIS_HOST configured, or an unreachable server,
// it returns nil and the reports run uncached.
func NewCacheClient(cfg RedisConfig) *redis.Client {
	if cfg.Host == "" {
		log.Println("REDIS_HOST not set, report caching disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable, report caching disabled: %v", err)
		return nil
	}

	return rdb
}
