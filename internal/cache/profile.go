package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"secreto/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const prefixProfile = "profile:"

// ProfileCache caches public profiles by username. Misses and backend
// failures look the same to callers: they fall back to the database.
type ProfileCache interface {
	Get(ctx context.Context, username string) (*models.PublicProfile, bool)
	Set(ctx context.Context, profile *models.PublicProfile)
	Invalidate(ctx context.Context, username string)
}

// NewClient connects to Redis and checks the connection.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

type redisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProfileCache stores profiles as JSON under profile:<username>.
func NewRedisProfileCache(client *redis.Client, ttl time.Duration) ProfileCache {
	return &redisProfileCache{client: client, ttl: ttl}
}

func (c *redisProfileCache) key(username string) string {
	return prefixProfile + username
}

func (c *redisProfileCache) Get(ctx context.Context, username string) (*models.PublicProfile, bool) {
	data, err := c.client.Get(ctx, c.key(username)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Ctx(ctx).Warn().Err(err).Str("username", username).Msg("profile cache read failed")
		}
		return nil, false
	}

	var profile models.PublicProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("username", username).Msg("profile cache entry corrupt")
		return nil, false
	}
	return &profile, true
}

func (c *redisProfileCache) Set(ctx context.Context, profile *models.PublicProfile) {
	data, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(profile.Username), data, c.ttl).Err(); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("username", profile.Username).Msg("profile cache write failed")
	}
}

func (c *redisProfileCache) Invalidate(ctx context.Context, username string) {
	if err := c.client.Del(ctx, c.key(username)).Err(); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("username", username).Msg("profile cache invalidation failed")
	}
}

type noopProfileCache struct{}

// NewNoopProfileCache is used when Redis is not configured.
func NewNoopProfileCache() ProfileCache {
	return noopProfileCache{}
}

func (noopProfileCache) Get(context.Context, string) (*models.PublicProfile, bool) { return nil, false }
func (noopProfileCache) Set(context.Context, *models.PublicProfile)                 {}
func (noopProfileCache) Invalidate(context.Context, string)                         {}
