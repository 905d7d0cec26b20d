package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cool-spots/internal/domain"
	"github.com/cool-spots/internal/domain/repository"
)

// Aggregator загружает три источника, нормализует и кеширует общую коллекцию
type Aggregator struct {
	datasetRepo repository.DatasetRepository
	cacheRepo   repository.SpotCacheRepository
	datasets    []domain.Dataset
	logger      *zap.Logger
}

// NewAggregator - создание нового Aggregator
func NewAggregator(
	datasetRepo repository.DatasetRepository,
	cacheRepo repository.SpotCacheRepository,
	datasets []domain.Dataset,
	logger *zap.Logger,
) *Aggregator {
	return &Aggregator{
		datasetRepo: datasetRepo,
		cacheRepo:   cacheRepo,
		datasets:    datasets,
		logger:      logger,
	}
}

// Datasets возвращает сконфигурированные источники
func (a *Aggregator) Datasets() []domain.Dataset {
	return a.datasets
}

// FetchAll возвращает всю коллекцию спотов. Ошибки источников не
// пробрасываются: в этом случае возвращается пустая коллекция и ничего не кешируется.
func (a *Aggregator) FetchAll(ctx context.Context) []domain.Spot {
	// 1. Проверяем кеш
	cached, err := a.cacheRepo.GetSpots(ctx)
	if err != nil {
		a.logger.Warn("Failed to get spots from cache", zap.Error(err))
	}
	if cached != nil {
		a.logger.Debug("Spots fetched from cache", zap.Int("count", len(cached)))
		return cached
	}

	// 2. Загружаем источники
	spots, err := a.aggregate(ctx)
	if err != nil {
		a.logger.Error("Failed to aggregate spots", zap.Error(err))
		return []domain.Spot{}
	}

	// 3. Кешируем
	if err := a.cacheRepo.SetSpots(ctx, spots); err != nil {
		a.logger.Warn("Failed to cache spots", zap.Error(err))
	}

	return spots
}

// Rebuild загружает источники в обход кеша и записывает результат в кеш
// только при успешной агрегации. При ошибке кеш не меняется.
func (a *Aggregator) Rebuild(ctx context.Context) ([]domain.Spot, error) {
	spots, err := a.aggregate(ctx)
	if err != nil {
		a.logger.Error("Failed to rebuild spots", zap.Error(err))
		return nil, err
	}

	if err := a.cacheRepo.SetSpots(ctx, spots); err != nil {
		a.logger.Error("Failed to cache rebuilt spots", zap.Error(err))
		return nil, fmt.Errorf("cache spots: %w", err)
	}

	return spots, nil
}

// aggregate загружает все источники параллельно; любая ошибка прерывает агрегацию
func (a *Aggregator) aggregate(ctx context.Context) ([]domain.Spot, error) {
	results := make([][]json.RawMessage, len(a.datasets))

	g, gctx := errgroup.WithContext(ctx)
	for i, ds := range a.datasets {
		i, ds := i, ds
		g.Go(func() error {
			records, err := a.datasetRepo.FetchRecords(gctx, ds)
			if err != nil {
				return fmt.Errorf("dataset %s: %w", ds.ID, err)
			}
			results[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []domain.Spot
	for i, ds := range a.datasets {
		all = append(all, a.normalize(ds, results[i])...)
	}

	spots := uniqueLocatable(all)

	a.logger.Info("Spots aggregated",
		zap.Int("normalized", len(all)),
		zap.Int("unique_locatable", len(spots)))

	return spots, nil
}

func (a *Aggregator) normalize(ds domain.Dataset, records []json.RawMessage) []domain.Spot {
	spots := make([]domain.Spot, 0, len(records))
	skipped := 0

	for _, raw := range records {
		spot, err := TransformRecord(ds.Category, raw)
		if err != nil {
			skipped++
			a.logger.Debug("Skipping malformed record",
				zap.String("dataset", ds.ID),
				zap.Error(err))
			continue
		}
		spots = append(spots, spot)
	}

	if skipped > 0 {
		a.logger.Warn("Malformed records skipped",
			zap.String("dataset", ds.ID),
			zap.Int("skipped", skipped))
	}

	return spots
}

// uniqueLocatable отбрасывает записи без координат и дубликаты по id (первая побеждает)
func uniqueLocatable(spots []domain.Spot) []domain.Spot {
	seen := make(map[string]struct{}, len(spots))
	result := make([]domain.Spot, 0, len(spots))

	for _, s := range spots {
		if !s.Geo.IsLocatable() {
			continue
		}
		if _, dup := seen[s.ID]; dup {
			continue
		}
		seen[s.ID] = struct{}{}
		result = append(result, s)
	}

	return result
}
