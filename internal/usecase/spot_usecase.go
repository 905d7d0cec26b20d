package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cool-spots/internal/domain"
	"github.com/cool-spots/internal/domain/repository"
	apperrors "github.com/cool-spots/internal/pkg/errors"
	"github.com/cool-spots/internal/usecase/dto"
)

// SpotUseCase - точка входа для слоя представления:
// фильтрация, поиск, пагинация и метаданные фильтров поверх агрегированной коллекции
type SpotUseCase struct {
	aggregator  *Aggregator
	searcher    *SpotSearcher
	datasetRepo repository.DatasetRepository
	cacheRepo   repository.SpotCacheRepository
	logger      *zap.Logger
}

// NewSpotUseCase - создание нового SpotUseCase
func NewSpotUseCase(
	aggregator *Aggregator,
	searcher *SpotSearcher,
	datasetRepo repository.DatasetRepository,
	cacheRepo repository.SpotCacheRepository,
	logger *zap.Logger,
) *SpotUseCase {
	return &SpotUseCase{
		aggregator:  aggregator,
		searcher:    searcher,
		datasetRepo: datasetRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
	}
}

// Query возвращает страницу спотов после фильтрации и поиска.
// Страница за пределами totalPages возвращает пустой список с корректными метаданными.
func (uc *SpotUseCase) Query(
	ctx context.Context,
	page, pageSize int,
	search string,
	filters *domain.SpotFilters,
) (*domain.PaginatedSpots, error) {
	if page < 1 || pageSize < 1 {
		return nil, apperrors.ErrInvalidPagination.WithDetails(map[string]interface{}{
			"page":      page,
			"page_size": pageSize,
		})
	}

	spots := uc.aggregator.FetchAll(ctx)
	spots = FilterSpots(spots, filters)
	spots = uc.searcher.Search(spots, search)

	return Paginate(spots, page, pageSize), nil
}

// Paginate вырезает страницу [(page-1)*pageSize, page*pageSize) из коллекции
func Paginate(spots []domain.Spot, page, pageSize int) *domain.PaginatedSpots {
	total := len(spots)
	totalPages := 0
	if total > 0 {
		totalPages = (total-1)/pageSize + 1
	}

	// Страницы за последней пустые; проверка до умножения исключает переполнение
	items := make([]domain.Spot, 0)
	if page <= totalPages {
		start := (page - 1) * pageSize
		end := min(start+pageSize, total)
		items = append(items, spots[start:end]...)
	}

	return &domain.PaginatedSpots{
		Items:           items,
		TotalCount:      total,
		TotalPages:      totalPages,
		CurrentPage:     page,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

// GetFilterOptions возвращает метаданные для построения фильтров (с кешированием)
func (uc *SpotUseCase) GetFilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	cached, err := uc.cacheRepo.GetFilterOptions(ctx)
	if err != nil {
		uc.logger.Warn("Failed to get filter options from cache", zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	options := BuildFilterOptions(uc.aggregator.FetchAll(ctx))

	// Пустую коллекцию не кешируем: скорее всего источник был недоступен
	if len(options.Districts) > 0 || len(options.Types) > 0 {
		if err := uc.cacheRepo.SetFilterOptions(ctx, options); err != nil {
			uc.logger.Warn("Failed to cache filter options", zap.Error(err))
		}
	}

	return options, nil
}

// BuildFilterOptions выводит варианты фильтров из коллекции
func BuildFilterOptions(spots []domain.Spot) *domain.FilterOptions {
	categories := make([]domain.FilterOption, 0, len(domain.AllCategories))
	for _, c := range domain.AllCategories {
		categories = append(categories, domain.FilterOption{Value: string(c), Label: c.Label()})
	}

	districtSet := make(map[string]struct{})
	type typeKey struct {
		value    string
		category domain.Category
	}
	typeSet := make(map[typeKey]struct{})

	for _, s := range spots {
		if s.District != "" {
			districtSet[s.District] = struct{}{}
		}
		if s.Type != "" {
			typeSet[typeKey{value: s.Type, category: s.Category}] = struct{}{}
		}
	}

	districtValues := make([]string, 0, len(districtSet))
	for d := range districtSet {
		districtValues = append(districtValues, d)
	}
	sort.Slice(districtValues, func(i, j int) bool {
		return lessDistrict(districtValues[i], districtValues[j])
	})

	districts := make([]domain.FilterOption, 0, len(districtValues))
	for _, d := range districtValues {
		districts = append(districts, domain.FilterOption{Value: d, Label: domain.DistrictLabel(d)})
	}

	types := make([]domain.TypeFilterOption, 0, len(typeSet))
	for k := range typeSet {
		types = append(types, domain.TypeFilterOption{Value: k.value, Label: k.value, Category: k.category})
	}
	sort.Slice(types, func(i, j int) bool {
		if types[i].Value != types[j].Value {
			return types[i].Value < types[j].Value
		}
		return types[i].Category < types[j].Category
	})

	return &domain.FilterOptions{
		Categories: categories,
		Districts:  districts,
		Types:      types,
		Paid: []domain.FilterOption{
			{Value: domain.PaidFilterPaid, Label: "Payant"},
			{Value: domain.PaidFilterFree, Label: "Gratuit"},
		},
	}
}

// lessDistrict: коды 750NN по номеру, затем остальные значения лексикографически
func lessDistrict(a, b string) bool {
	na, aCode := domain.ParseDistrictCode(a)
	nb, bCode := domain.ParseDistrictCode(b)

	switch {
	case aCode && bCode:
		return na < nb
	case aCode:
		return true
	case bCode:
		return false
	}
	return a < b
}

// GetSpotByID ищет спот в агрегированной коллекции
func (uc *SpotUseCase) GetSpotByID(ctx context.Context, id string) (*domain.Spot, error) {
	for _, s := range uc.aggregator.FetchAll(ctx) {
		if s.ID == id {
			spot := s
			return &spot, nil
		}
	}
	return nil, apperrors.ErrSpotNotFound
}

// GetSpotByDataset загружает запись напрямую из источника, минуя агрегат.
// Любая ошибка сводится к "не найдено".
func (uc *SpotUseCase) GetSpotByDataset(ctx context.Context, datasetID, recordID string) (*domain.Spot, error) {
	dataset, ok := uc.findDataset(datasetID)
	if !ok {
		uc.logger.Warn("Unknown dataset requested", zap.String("dataset", datasetID))
		return nil, apperrors.ErrUnknownDataset
	}

	raw, err := uc.datasetRepo.FetchRecord(ctx, dataset, recordID)
	if err != nil {
		if !errors.Is(err, repository.ErrRecordNotFound) {
			uc.logger.Error("Failed to fetch record",
				zap.String("dataset", datasetID),
				zap.String("record_id", recordID),
				zap.Error(err))
		}
		return nil, apperrors.ErrSpotNotFound
	}

	spot, err := TransformRecord(dataset.Category, raw)
	if err != nil {
		uc.logger.Error("Failed to normalize record",
			zap.String("dataset", datasetID),
			zap.String("record_id", recordID),
			zap.Error(err))
		return nil, apperrors.ErrSpotNotFound
	}

	return &spot, nil
}

func (uc *SpotUseCase) findDataset(datasetID string) (domain.Dataset, bool) {
	for _, ds := range uc.aggregator.Datasets() {
		if ds.ID == datasetID {
			return ds, true
		}
	}
	return domain.Dataset{}, false
}

// DatasetIDForCategory возвращает id источника для категории.
// Категория вне перечисления - ошибка программиста, поэтому паника.
func (uc *SpotUseCase) DatasetIDForCategory(category domain.Category) string {
	for _, ds := range uc.aggregator.Datasets() {
		if ds.Category == category {
			return ds.ID
		}
	}
	panic(fmt.Sprintf("unknown category: %q", category))
}

// ClearCache сбрасывает оба слота кеша
func (uc *SpotUseCase) ClearCache(ctx context.Context) error {
	if err := uc.cacheRepo.Clear(ctx); err != nil {
		uc.logger.Error("Failed to clear cache", zap.Error(err))
		return apperrors.ErrCacheError
	}
	uc.logger.Info("Cache cleared")
	return nil
}

// Refresh заново загружает коллекцию в обход кеша и подменяет оба слота.
// Если источник недоступен, прежнее содержимое кеша остаётся нетронутым.
// Возвращает размер новой коллекции.
func (uc *SpotUseCase) Refresh(ctx context.Context) (int, error) {
	spots, err := uc.aggregator.Rebuild(ctx)
	if err != nil {
		return 0, err
	}

	if err := uc.cacheRepo.SetFilterOptions(ctx, BuildFilterOptions(spots)); err != nil {
		uc.logger.Error("Failed to cache filter options", zap.Error(err))
		return len(spots), apperrors.ErrCacheError
	}

	return len(spots), nil
}

// SpotDetail дополняет спот заголовком, описанием и id источника
func (uc *SpotUseCase) SpotDetail(spot *domain.Spot) *dto.SpotDetailResponse {
	return &dto.SpotDetailResponse{
		Spot:        *spot,
		DatasetID:   uc.DatasetIDForCategory(spot.Category),
		Title:       SpotTitle(*spot),
		Description: SpotDescription(*spot),
	}
}

// SpotTitle - заголовок страницы спота: "<name> - <label> à Paris"
func SpotTitle(spot domain.Spot) string {
	label := "Spot"
	switch spot.Category {
	case domain.CategoryActivities:
		label = "Activité"
	case domain.CategoryGreenSpaces:
		label = "Espace vert"
	case domain.CategoryWaterFountains:
		label = "Fontaine"
	}
	return fmt.Sprintf("%s - %s à Paris", spot.Name, label)
}

// SpotDescription - описание спота с учётом округа
func SpotDescription(spot domain.Spot) string {
	base := "Découvrez " + spot.Name

	if spot.District == "" {
		return base + " - Un spot de fraîcheur à Paris."
	}

	if strings.HasPrefix(spot.District, domain.DistrictCodePrefix) {
		if n, ok := domain.ParseDistrictCode(spot.District); ok {
			suffix := "e"
			if n == 1 {
				suffix = "er"
			}
			return fmt.Sprintf("%s dans le %d%s arrondissement de Paris.", base, n, suffix)
		}
	}

	return fmt.Sprintf("%s à %s de Paris.", base, spot.District)
}
