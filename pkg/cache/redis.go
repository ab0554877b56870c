package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/samsoncodes33/Isaac-IT-frontend/pkg/config"
)

// KeyPrefix namespaces every key the portal writes.
const KeyPrefix = "sifms"

// NewRedis returns a Redis client that has answered a ping within five seconds.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// Key joins parts under KeyPrefix, e.g. Key("session", id, "userData").
func Key(parts ...string) string {
	return KeyPrefix + ":" + strings.Join(parts, ":")
}
