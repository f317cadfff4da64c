// Package cache puts a Redis read-through cache in front of the tutor catalog.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
	"github.com/Saikirangolkonda/TutorMatch/internal/service/ports"
	"github.com/redis/go-redis/v9"
	"github.com/wb-go/wbf/logger"
)

const (
	DefaultTTL = 5 * time.Minute

	tutorKeyPrefix = "tutormatch:tutor:"
	tutorsListKey  = "tutormatch:tutors"
)

// TutorCache serves catalog reads from Redis and falls through to the wrapped catalog on a
// miss. Redis failures are logged and never surface to the caller.
type TutorCache struct {
	next   ports.TutorCatalog
	rdb    redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewTutorCache(next ports.TutorCatalog, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *TutorCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TutorCache{next: next, rdb: rdb, ttl: ttl, logger: log}
}

func (c *TutorCache) GetTutor(ctx context.Context, id string) (*domain.Tutor, error) {
	key := tutorKeyPrefix + id

	var cached domain.Tutor
	if c.load(ctx, key, &cached) {
		return &cached, nil
	}

	t, err := c.next.GetTutor(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, t)
	return t, nil
}

func (c *TutorCache) ListTutors(ctx context.Context) ([]*domain.Tutor, error) {
	var cached []*domain.Tutor
	if c.load(ctx, tutorsListKey, &cached) {
		return cached, nil
	}

	tutors, err := c.next.ListTutors(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, tutorsListKey, tutors)
	return tutors, nil
}

func (c *TutorCache) load(ctx context.Context, key string, dst any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.logger.Warn("tutor cache read failed", logger.String("key", key), logger.String("error", err.Error()))
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.logger.Warn("tutor cache entry corrupt", logger.String("key", key), logger.String("error", err.Error()))
		return false
	}
	return true
}

func (c *TutorCache) store(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("tutor cache write failed", logger.String("key", key), logger.String("error", err.Error()))
	}
}
