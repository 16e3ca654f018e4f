package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "user-crud-service/internal/domain/user"
	"user-crud-service/pkg/logger"
)

// keyPrefix namespaces user entries in Redis.
const keyPrefix = "user:"

// UserCache defines the interface for user caching operations.
type UserCache interface {
	// Get retrieves a user from cache by ID.
	// Returns nil if user is not found in cache.
	Get(ctx context.Context, id int64) (*domain.User, error)

	// Set stores a user in cache with the configured TTL.
	Set(ctx context.Context, user *domain.User) error

	// Delete removes a user from cache by ID.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every cached user.
	DeleteAll(ctx context.Context) error
}

// RedisUserCache implements UserCache using Redis as the backing store.
type RedisUserCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisUserCache creates a new Redis-backed user cache.
func NewRedisUserCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisUserCache {
	return &RedisUserCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func cacheKey(id int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, id)
}

// Get retrieves a user from Redis cache.
func (c *RedisUserCache) Get(ctx context.Context, id int64) (*domain.User, error) {
	data, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		logger.WithContext(ctx, c.log).Debug("cache miss", zap.Int64("user_id", id))
		return nil, nil
	}
	if err != nil {
		logger.WithContext(ctx, c.log).Error("failed to get from cache", zap.Int64("user_id", id), zap.Error(err))
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		logger.WithContext(ctx, c.log).Error("failed to unmarshal cached user", zap.Int64("user_id", id), zap.Error(err))
		return nil, err
	}

	logger.WithContext(ctx, c.log).Debug("cache hit", zap.Int64("user_id", id))
	return &user, nil
}

// Set stores a user in Redis cache with TTL.
func (c *RedisUserCache) Set(ctx context.Context, user *domain.User) error {
	if user == nil {
		return fmt.Errorf("cannot cache nil user")
	}

	data, err := json.Marshal(user)
	if err != nil {
		logger.WithContext(ctx, c.log).Error("failed to marshal user for cache", zap.Int64("user_id", user.ID), zap.Error(err))
		return err
	}

	if err := c.client.Set(ctx, cacheKey(user.ID), data, c.ttl).Err(); err != nil {
		logger.WithContext(ctx, c.log).Error("failed to set cache", zap.Int64("user_id", user.ID), zap.Error(err))
		return err
	}

	logger.WithContext(ctx, c.log).Debug("cached user", zap.Int64("user_id", user.ID), zap.Duration("ttl", c.ttl))
	return nil
}

// Delete removes a user from Redis cache.
func (c *RedisUserCache) Delete(ctx context.Context, id int64) error {
	if err := c.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		logger.WithContext(ctx, c.log).Error("failed to delete from cache", zap.Int64("user_id", id), zap.Error(err))
		return err
	}

	logger.WithContext(ctx, c.log).Debug("deleted from cache", zap.Int64("user_id", id))
	return nil
}

// DeleteAll removes every user key. Keys are collected with SCAN so a large
// keyspace does not block the server.
func (c *RedisUserCache) DeleteAll(ctx context.Context) error {
	var keys []string
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.WithContext(ctx, c.log).Error("failed to scan cached users", zap.Error(err))
		return err
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.WithContext(ctx, c.log).Error("failed to delete cached users", zap.Int("count", len(keys)), zap.Error(err))
		return err
	}

	logger.WithContext(ctx, c.log).Debug("deleted all cached users", zap.Int("count", len(keys)))
	return nil
}
