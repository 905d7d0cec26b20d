package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cool-spots/internal/domain"
	"github.com/cool-spots/internal/domain/repository"
)

// Ключи слотов относительно префикса
const (
	SpotsKey         = "spots:all"
	FilterOptionsKey = "spots:filter_options"
)

// spotCacheRepository - кеш спотов во внешнем Redis; TTL задаётся через SET EX
type spotCacheRepository struct {
	redis  *Redis
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewSpotCacheRepository создает Redis-реализацию SpotCacheRepository.
// Ключи строятся от префикса подключения, так что окружения могут делить один Redis.
func NewSpotCacheRepository(redis *Redis, ttl time.Duration) repository.SpotCacheRepository {
	return &spotCacheRepository{
		redis:  redis,
		client: redis.Client(),
		logger: redis.logger,
		ttl:    ttl,
	}
}

func (r *spotCacheRepository) get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *spotCacheRepository) set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Error("Failed to marshal cache value", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", r.ttl))
	return nil
}

func (r *spotCacheRepository) GetSpots(ctx context.Context) ([]domain.Spot, error) {
	data, err := r.get(ctx, r.redis.Key(SpotsKey))
	if err != nil || data == nil {
		return nil, err
	}

	spots := make([]domain.Spot, 0)
	if err := json.Unmarshal(data, &spots); err != nil {
		r.logger.Error("Failed to unmarshal spots from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal spots: %w", err)
	}

	return spots, nil
}

func (r *spotCacheRepository) SetSpots(ctx context.Context, spots []domain.Spot) error {
	return r.set(ctx, r.redis.Key(SpotsKey), spots)
}

func (r *spotCacheRepository) GetFilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	data, err := r.get(ctx, r.redis.Key(FilterOptionsKey))
	if err != nil || data == nil {
		return nil, err
	}

	var options domain.FilterOptions
	if err := json.Unmarshal(data, &options); err != nil {
		r.logger.Error("Failed to unmarshal filter options from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal filter options: %w", err)
	}

	return &options, nil
}

func (r *spotCacheRepository) SetFilterOptions(ctx context.Context, options *domain.FilterOptions) error {
	return r.set(ctx, r.redis.Key(FilterOptionsKey), options)
}

func (r *spotCacheRepository) Clear(ctx context.Context) error {
	keys := []string{r.redis.Key(SpotsKey), r.redis.Key(FilterOptionsKey)}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Error("Failed to clear cache", zap.Strings("keys", keys), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Info("Cache cleared", zap.Strings("keys", keys))
	return nil
}
