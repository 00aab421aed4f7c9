package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sangkips/barbershop-api/internal/config"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	domainRepo "github.com/sangkips/barbershop-api/internal/domain/repository"
)

// NewRedisClient connects to Redis and verifies connectivity. It returns nil, nil when disabled.
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established (db=%d)", opt.DB)
	return rc, nil
}

type barbershopCache struct {
	rc     *redis.Client
	prefix string
	ttl    time.Duration
}

// NewBarbershopCache caches public slug lookups as JSON under <prefix>:barbershop:slug:<slug>
func NewBarbershopCache(rc *redis.Client, prefix string, ttl time.Duration) domainRepo.BarbershopCache {
	return &barbershopCache{rc: rc, prefix: prefix, ttl: ttl}
}

// SlugKey returns the cache key of a slug
func SlugKey(prefix, slug string) string {
	return prefix + ":barbershop:slug:" + slug
}

func (c *barbershopCache) Get(ctx context.Context, slug string) (*entity.Barbershop, error) {
	bs, err := c.rc.Get(ctx, SlugKey(c.prefix, slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var barbershop cachedBarbershop
	if err := json.Unmarshal(bs, &barbershop); err != nil {
		return nil, err
	}
	return barbershop.toEntity(), nil
}

func (c *barbershopCache) Set(ctx context.Context, barbershop *entity.Barbershop) error {
	bs, err := json.Marshal(fromEntity(barbershop))
	if err != nil {
		return err
	}
	return c.rc.Set(ctx, SlugKey(c.prefix, barbershop.Slug), bs, c.ttl).Err()
}

func (c *barbershopCache) Invalidate(ctx context.Context, slug string) error {
	return c.rc.Del(ctx, SlugKey(c.prefix, slug)).Err()
}
