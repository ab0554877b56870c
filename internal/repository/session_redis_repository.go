package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/samsoncodes33/Isaac-IT-frontend/internal/models"
	"github.com/samsoncodes33/Isaac-IT-frontend/pkg/cache"
	appErrors "github.com/samsoncodes33/Isaac-IT-frontend/pkg/errors"
)

// RedisSessionRepository stores each session slot as a JSON string under
// sifms:session:<id>:<slot>.
type RedisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSessionRepository constructs a redis-backed store. A ttl of zero keeps keys forever.
func NewRedisSessionRepository(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisSessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSessionRepository{client: client, ttl: ttl, logger: logger}
}

func sessionKey(id, slot string) string {
	return cache.Key("session", id, slot)
}

// Save marshals session and overwrites the slot.
func (r *RedisSessionRepository) Save(ctx context.Context, slot string, session *models.Session) error {
	if session == nil || session.ID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "session id is required")
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", session.ID, err)
	}

	key := sessionKey(session.ID, slot)
	if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}

// Load reads and unmarshals the slot, returning ErrSessionNotFound when the key is absent.
func (r *RedisSessionRepository) Load(ctx context.Context, id, slot string) (*models.Session, error) {
	key := sessionKey(id, slot)

	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, appErrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		r.logger.Warn("discarding unreadable session", zap.String("key", key), zap.Error(err))
		return nil, appErrors.ErrSessionNotFound
	}

	return &session, nil
}

// Clear deletes the slot.
func (r *RedisSessionRepository) Clear(ctx context.Context, id, slot string) error {
	key := sessionKey(id, slot)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (r *RedisSessionRepository) Close() error {
	return r.client.Close()
}
