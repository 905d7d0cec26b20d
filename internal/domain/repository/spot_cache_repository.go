package repository

import (
	"context"

	"github.com/cool-spots/internal/domain"
)

// SpotCacheRepository - кеш с ограниченным временем жизни для агрегированной
// коллекции спотов и метаданных фильтров. Слоты независимы и атомарны.
type SpotCacheRepository interface {
	// GetSpots возвращает коллекцию или nil при промахе/истечении TTL
	GetSpots(ctx context.Context) ([]domain.Spot, error)

	// SetSpots перезаписывает коллекцию и ставит текущую метку времени
	SetSpots(ctx context.Context, spots []domain.Spot) error

	// GetFilterOptions возвращает метаданные фильтров или nil при промахе
	GetFilterOptions(ctx context.Context) (*domain.FilterOptions, error)

	// SetFilterOptions перезаписывает метаданные фильтров
	SetFilterOptions(ctx context.Context, options *domain.FilterOptions) error

	// Clear сбрасывает оба слота
	Clear(ctx context.Context) error
}
