package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"refdataservice/internal/refdata"
)

var _ refdata.Slot = (*RedisSlot)(nil)

// RedisSlot keeps the payload under a single Redis key with no expiry.
type RedisSlot struct {
	rdb *redis.Client
	key string
}

// NewRedisSlot creates a slot bound to key.
func NewRedisSlot(rdb *redis.Client, key string) *RedisSlot {
	return &RedisSlot{rdb: rdb, key: slotCacheKey(key)}
}

func slotCacheKey(key string) string {
	return "refdata:slot:{" + key + "}"
}

// Load fetches the payload, mapping redis.Nil to found=false.
func (s *RedisSlot) Load(ctx context.Context) ([]byte, bool, error) {
	payload, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return payload, true, nil
}

// Save overwrites the payload.
func (s *RedisSlot) Save(ctx context.Context, payload []byte) error {
	if err := s.rdb.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}
