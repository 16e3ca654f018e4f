package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "user-crud-service/internal/domain/user"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client, mr
}

func setupTestCache(t *testing.T) (*RedisUserCache, *redis.Client, *miniredis.Miniredis) {
	client, mr := setupTestRedis(t)
	return NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t)), client, mr
}

func TestRedisUserCache_Set_Success(t *testing.T) {
	cache, client, _ := setupTestCache(t)

	place := "Hue"
	user := &domain.User{
		ID:           1,
		Name:         "Ann",
		Email:        "ann@x.com",
		PlaceOfBirth: &place,
	}

	err := cache.Set(context.Background(), user)
	require.NoError(t, err)

	data, err := client.Get(context.Background(), "user:1").Bytes()
	require.NoError(t, err)

	var cached domain.User
	require.NoError(t, json.Unmarshal(data, &cached))
	assert.Equal(t, *user, cached)
}

func TestRedisUserCache_Set_NilUser(t *testing.T) {
	cache, _, _ := setupTestCache(t)

	err := cache.Set(context.Background(), nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot cache nil user")
}

func TestRedisUserCache_Set_TTL(t *testing.T) {
	cache, _, mr := setupTestCache(t)

	require.NoError(t, cache.Set(context.Background(), &domain.User{ID: 7, Name: "Ann", Email: "ann@x.com"}))
	assert.Equal(t, 5*time.Minute, mr.TTL("user:7"))

	mr.FastForward(6 * time.Minute)
	got, err := cache.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_Get(t *testing.T) {
	cache, _, _ := setupTestCache(t)
	ctx := context.Background()

	got, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got, "miss is not an error")

	require.NoError(t, cache.Set(ctx, &domain.User{ID: 1, Name: "Ann", Email: "ann@x.com"}))

	got, err = cache.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ann", got.Name)
	assert.Nil(t, got.PlaceOfBirth)
}

func TestRedisUserCache_Get_CorruptedData(t *testing.T) {
	cache, _, mr := setupTestCache(t)

	require.NoError(t, mr.Set("user:1", "not-json"))

	got, err := cache.Get(context.Background(), 1)
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_Get_RedisDown(t *testing.T) {
	cache, _, mr := setupTestCache(t)
	mr.Close()

	got, err := cache.Get(context.Background(), 1)
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_Delete(t *testing.T) {
	cache, _, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &domain.User{ID: 1, Name: "Ann", Email: "ann@x.com"}))
	require.NoError(t, cache.Delete(ctx, 1))
	assert.False(t, mr.Exists("user:1"))

	// deleting a missing key is fine
	assert.NoError(t, cache.Delete(ctx, 1))
}

func TestRedisUserCache_DeleteAll(t *testing.T) {
	cache, _, mr := setupTestCache(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		require.NoError(t, cache.Set(ctx, &domain.User{ID: i, Name: "u", Email: "u@x.com"}))
	}
	require.NoError(t, mr.Set("session:1", "keep"))

	require.NoError(t, cache.DeleteAll(ctx))

	assert.False(t, mr.Exists("user:1"))
	assert.False(t, mr.Exists("user:2"))
	assert.False(t, mr.Exists("user:3"))
	assert.True(t, mr.Exists("session:1"))

	// empty keyspace
	assert.NoError(t, cache.DeleteAll(ctx))
}
