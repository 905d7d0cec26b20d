package memory

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cool-spots/internal/domain"
	"github.com/cool-spots/internal/domain/repository"
)

// DefaultTTL - время жизни записей кеша
const DefaultTTL = 2 * time.Hour

// Clock возвращает текущее время; подменяется в тестах
type Clock func() time.Time

type entry[T any] struct {
	data      T
	timestamp time.Time
}

// spotCache - кеш в памяти процесса с двумя независимыми слотами.
// Мьютекс защищает только указатели на слоты: два одновременных промаха
// могут оба загрузить данные, побеждает последняя запись.
type spotCache struct {
	mu            sync.RWMutex
	spots         *entry[[]domain.Spot]
	filterOptions *entry[*domain.FilterOptions]

	ttl    time.Duration
	now    Clock
	logger *zap.Logger
}

// NewSpotCache создает кеш в памяти процесса
func NewSpotCache(ttl time.Duration, now Clock, logger *zap.Logger) repository.SpotCacheRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &spotCache{
		ttl:    ttl,
		now:    now,
		logger: logger,
	}
}

func (c *spotCache) GetSpots(_ context.Context) ([]domain.Spot, error) {
	c.mu.RLock()
	e := c.spots
	c.mu.RUnlock()

	if !isValidEntry(e, c.now(), c.ttl) {
		return nil, nil
	}

	c.logger.Debug("Cache hit", zap.String("slot", "spots"), zap.Int("count", len(e.data)))
	return e.data, nil
}

func (c *spotCache) SetSpots(_ context.Context, spots []domain.Spot) error {
	e := &entry[[]domain.Spot]{data: spots, timestamp: c.now()}

	c.mu.Lock()
	c.spots = e
	c.mu.Unlock()

	c.logger.Debug("Cache set", zap.String("slot", "spots"), zap.Int("count", len(spots)), zap.Duration("ttl", c.ttl))
	return nil
}

func (c *spotCache) GetFilterOptions(_ context.Context) (*domain.FilterOptions, error) {
	c.mu.RLock()
	e := c.filterOptions
	c.mu.RUnlock()

	if !isValidEntry(e, c.now(), c.ttl) {
		return nil, nil
	}

	c.logger.Debug("Cache hit", zap.String("slot", "filter_options"))
	return e.data, nil
}

func (c *spotCache) SetFilterOptions(_ context.Context, options *domain.FilterOptions) error {
	e := &entry[*domain.FilterOptions]{data: options, timestamp: c.now()}

	c.mu.Lock()
	c.filterOptions = e
	c.mu.Unlock()

	c.logger.Debug("Cache set", zap.String("slot", "filter_options"), zap.Duration("ttl", c.ttl))
	return nil
}

func (c *spotCache) Clear(_ context.Context) error {
	c.mu.Lock()
	c.spots = nil
	c.filterOptions = nil
	c.mu.Unlock()

	c.logger.Info("Cache cleared")
	return nil
}

func isValidEntry[T any](e *entry[T], now time.Time, ttl time.Duration) bool {
	return e != nil && now.Sub(e.timestamp) < ttl
}
