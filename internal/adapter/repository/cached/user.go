package cached

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-crud-service/internal/adapter/cache"
	domain "user-crud-service/internal/domain/user"
	"user-crud-service/internal/usecase/user"
	"user-crud-service/pkg/logger"
)

// CachedUserRepository implements user.Repository with caching support.
// It wraps a persistent repository (DB) and a cache implementation.
type CachedUserRepository struct {
	dbRepo user.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
}

// NewCachedUserRepository creates a new instance of CachedUserRepository.
// A nil cache turns every call into a plain delegation.
func NewCachedUserRepository(dbRepo user.Repository, cache cache.UserCache, log *zap.Logger) *CachedUserRepository {
	return &CachedUserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Create delegates to the DB repository.
func (r *CachedUserRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	return r.dbRepo.Create(ctx, u)
}

// GetByID retrieves a user by ID using Cache-Aside pattern.
func (r *CachedUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if r.cache != nil {
		cachedUser, err := r.cache.Get(ctx, id)
		if err != nil {
			logger.WithContext(ctx, r.log).Warn("cache get error, falling back to database", zap.Int64("id", id), zap.Error(err))
		} else if cachedUser != nil {
			return cachedUser, nil
		}
	}

	// concurrent misses for the same id share one database read
	key := fmt.Sprintf("user:%d", id)
	result, err, _ := r.group.Do(key, func() (any, error) {
		u, err := r.dbRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if r.cache != nil {
			if err := r.cache.Set(ctx, u); err != nil {
				logger.WithContext(ctx, r.log).Warn("failed to cache user", zap.Int64("id", id), zap.Error(err))
			}
		}

		return u, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.User), nil
}

// List delegates to the DB repository. Filtered listings are not cached.
func (r *CachedUserRepository) List(ctx context.Context, f domain.Filter) ([]domain.User, error) {
	return r.dbRepo.List(ctx, f)
}

// Update updates the user in DB and invalidates the cache.
func (r *CachedUserRepository) Update(ctx context.Context, id int64, p domain.Patch) (int64, error) {
	rows, err := r.dbRepo.Update(ctx, id, p)
	if err != nil {
		return 0, err
	}

	if rows > 0 {
		r.invalidate(ctx, id, "update")
	}

	return rows, nil
}

// Delete deletes the user from DB and invalidates the cache.
func (r *CachedUserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	rows, err := r.dbRepo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	r.invalidate(ctx, id, "delete")

	return rows, nil
}

// DeleteAll deletes every user from DB and clears the cached entries.
func (r *CachedUserRepository) DeleteAll(ctx context.Context) (int64, error) {
	n, err := r.dbRepo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	if r.cache != nil {
		if err := r.cache.DeleteAll(ctx); err != nil {
			logger.WithContext(ctx, r.log).Warn("failed to clear cache after delete all", zap.Error(err))
		}
	}

	return n, nil
}

func (r *CachedUserRepository) invalidate(ctx context.Context, id int64, op string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, id); err != nil {
		logger.WithContext(ctx, r.log).Warn("failed to invalidate cache after "+op, zap.Int64("id", id), zap.Error(err))
	}
}
