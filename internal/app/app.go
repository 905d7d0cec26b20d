// Package app собирает зависимости сервиса из конфигурации.
// Используется обоими бинарниками: api и worker.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cool-spots/internal/config"
	"github.com/cool-spots/internal/domain/repository"
	"github.com/cool-spots/internal/infrastructure/opendata"
	"github.com/cool-spots/internal/pkg/synonyms"
	"github.com/cool-spots/internal/repository/cache"
	"github.com/cool-spots/internal/repository/memory"
	"github.com/cool-spots/internal/usecase"
)

// App - собранные зависимости
type App struct {
	SpotUC *usecase.SpotUseCase

	redis  *cache.Redis
	logger *zap.Logger
}

// New собирает репозитории и use case'ы по конфигурации
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{logger: log}

	// 1. Кеш
	cacheRepo, err := a.newCacheRepository(cfg)
	if err != nil {
		return nil, err
	}

	// 2. Источники открытых данных
	datasetRepo := opendata.NewClient(&cfg.OpenData, log)

	// 3. Таблица синонимов
	table, err := synonyms.Load(cfg.Search.SynonymsFile)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load synonyms: %w", err)
	}
	log.Info("Synonyms loaded",
		zap.String("file", cfg.Search.SynonymsFile),
		zap.Int("keys", table.Len()))

	// 4. Use cases
	aggregator := usecase.NewAggregator(datasetRepo, cacheRepo, cfg.Datasets(), log)
	a.SpotUC = usecase.NewSpotUseCase(
		aggregator,
		usecase.NewSpotSearcher(table),
		datasetRepo,
		cacheRepo,
		log,
	)

	return a, nil
}

func (a *App) newCacheRepository(cfg *config.Config) (repository.SpotCacheRepository, error) {
	if cfg.Cache.Backend != "redis" {
		a.logger.Info("Using in-memory cache", zap.Duration("ttl", cfg.Cache.TTL))
		return memory.NewSpotCache(cfg.Cache.TTL, time.Now, a.logger), nil
	}

	redisClient := cache.NewRedis(&cfg.Redis, cfg.Cache.KeyPrefix, a.logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Health(ctx); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	a.redis = redisClient
	a.logger.Info("Using Redis cache",
		zap.String("addr", cfg.GetRedisAddr()),
		zap.String("key_prefix", cfg.Cache.KeyPrefix),
		zap.Duration("ttl", cfg.Cache.TTL))

	return cache.NewSpotCacheRepository(redisClient, cfg.Cache.TTL), nil
}

// Close освобождает соединения
func (a *App) Close() {
	if a.redis == nil {
		return
	}
	if err := a.redis.Close(); err != nil {
		a.logger.Error("Failed to close Redis connection", zap.Error(err))
	}
}
