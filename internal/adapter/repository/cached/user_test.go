package cached

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"user-crud-service/internal/adapter/cache"
	"user-crud-service/internal/adapter/db/postgres"
	domain "user-crud-service/internal/domain/user"
	pkgerrors "user-crud-service/pkg/errors"
)

type fixture struct {
	repo *CachedUserRepository
	db   *postgres.UserRepoPG
	mr   *miniredis.Miniredis
}

func setup(t *testing.T) fixture {
	t.Helper()
	log := zaptest.NewLogger(t)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	require.NoError(t, postgres.InitSchema(context.Background(), gdb, log))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})

	dbRepo := postgres.NewUserRepoPG(gdb, log)
	return fixture{
		repo: NewCachedUserRepository(dbRepo, cache.NewRedisUserCache(client, time.Minute, log), log),
		db:   dbRepo,
		mr:   mr,
	}
}

func strPtr(s string) *string {
	return &s
}

func TestCachedUserRepository_GetByID_PopulatesCache(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	id, err := f.repo.Create(ctx, &domain.User{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)
	assert.False(t, f.mr.Exists("user:1"), "create does not populate the cache")

	got, err := f.repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)
	assert.True(t, f.mr.Exists("user:1"))

	// served from cache even after the row is gone underneath it
	_, err = f.db.Delete(ctx, id)
	require.NoError(t, err)
	got, err = f.repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)
}

func TestCachedUserRepository_GetByID_NotFoundIsNotCached(t *testing.T) {
	f := setup(t)

	_, err := f.repo.GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, pkgerrors.ErrUserNotFound)
	assert.False(t, f.mr.Exists("user:7"))
}

func TestCachedUserRepository_GetByID_RedisDownFallsBack(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	id, err := f.repo.Create(ctx, &domain.User{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)

	f.mr.Close()

	got, err := f.repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", got.Email)
}

func TestCachedUserRepository_GetByID_Concurrent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	id, err := f.repo.Create(ctx, &domain.User{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := f.repo.GetByID(ctx, id)
			assert.NoError(t, err)
			assert.Equal(t, id, got.ID)
		}()
	}
	wg.Wait()
}

func TestCachedUserRepository_UpdateInvalidates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	id, err := f.repo.Create(ctx, &domain.User{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)
	_, err = f.repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.True(t, f.mr.Exists("user:1"))

	rows, err := f.repo.Update(ctx, id, domain.Patch{Name: strPtr("Anna")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.False(t, f.mr.Exists("user:1"))

	got, err := f.repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.Name)
}

func TestCachedUserRepository_DeleteInvalidates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	id, err := f.repo.Create(ctx, &domain.User{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)
	_, err = f.repo.GetByID(ctx, id)
	require.NoError(t, err)

	rows, err := f.repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	_, err = f.repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, pkgerrors.ErrUserNotFound)
}

func TestCachedUserRepository_DeleteAllClearsCache(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for _, email := range []string{"a@x.com", "b@x.com"} {
		id, err := f.repo.Create(ctx, &domain.User{Name: "u", Email: email})
		require.NoError(t, err)
		_, err = f.repo.GetByID(ctx, id)
		require.NoError(t, err)
	}

	n, err := f.repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Empty(t, f.mr.Keys())

	users, err := f.repo.List(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestCachedUserRepository_NilCache(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	repo := NewCachedUserRepository(f.db, nil, zaptest.NewLogger(t))

	id, err := repo.Create(ctx, &domain.User{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)

	_, err = repo.Update(ctx, id, domain.Patch{Email: strPtr("a2@x.com")})
	require.NoError(t, err)
	_, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	_, err = repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, f.mr.Keys())
}
