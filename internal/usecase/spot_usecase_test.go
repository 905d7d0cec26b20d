package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cool-spots/internal/domain"
	"github.com/cool-spots/internal/domain/repository"
	apperrors "github.com/cool-spots/internal/pkg/errors"
	"github.com/cool-spots/internal/pkg/synonyms"
	"github.com/cool-spots/internal/repository/memory"
	"github.com/cool-spots/internal/usecase"
)

func newSpotUseCase(t *testing.T, spots []domain.Spot) (*usecase.SpotUseCase, *MockDatasetRepository, repository.SpotCacheRepository) {
	t.Helper()

	logger := zap.NewNop()
	cache := memory.NewSpotCache(time.Hour, nil, logger)
	require.NoError(t, cache.SetSpots(context.Background(), spots))

	datasets := &MockDatasetRepository{}
	agg := usecase.NewAggregator(datasets, cache, testDatasets, logger)
	uc := usecase.NewSpotUseCase(agg, usecase.NewSpotSearcher(synonyms.Default()), datasets, cache, logger)

	return uc, datasets, cache
}

func numberedSpots(n int) []domain.Spot {
	spots := make([]domain.Spot, 0, n)
	for i := 1; i <= n; i++ {
		spots = append(spots, domain.Spot{
			ID:       fmt.Sprintf("s%d", i),
			Category: domain.CategoryWaterFountains,
			Name:     usecase.FountainName,
			Geo:      domain.Geo{Lat: 48.8, Lon: 2.3},
		})
	}
	return spots
}

func TestSpotUseCase_Query_Pagination(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newSpotUseCase(t, numberedSpots(10))

	t.Run("first page of ten items with page size eight", func(t *testing.T) {
		result, err := uc.Query(ctx, 1, 8, "", nil)
		require.NoError(t, err)

		assert.Len(t, result.Items, 8)
		assert.Equal(t, 10, result.TotalCount)
		assert.Equal(t, 2, result.TotalPages)
		assert.Equal(t, 1, result.CurrentPage)
		assert.True(t, result.HasNextPage)
		assert.False(t, result.HasPreviousPage)
	})

	t.Run("second page holds the remainder", func(t *testing.T) {
		result, err := uc.Query(ctx, 2, 8, "", nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"s9", "s10"}, ids(result.Items))
		assert.False(t, result.HasNextPage)
		assert.True(t, result.HasPreviousPage)
	})

	t.Run("page beyond the last is empty but not an error", func(t *testing.T) {
		result, err := uc.Query(ctx, 5, 8, "", nil)
		require.NoError(t, err)

		assert.Empty(t, result.Items)
		assert.Equal(t, 10, result.TotalCount)
		assert.Equal(t, 2, result.TotalPages)
		assert.False(t, result.HasNextPage)
		assert.True(t, result.HasPreviousPage)
	})

	t.Run("pages sum to the total", func(t *testing.T) {
		for _, size := range []int{1, 3, 4, 7, 10, 11} {
			first, err := uc.Query(ctx, 1, size, "", nil)
			require.NoError(t, err)

			seen := 0
			for p := 1; p <= first.TotalPages; p++ {
				page, err := uc.Query(ctx, p, size, "", nil)
				require.NoError(t, err)
				seen += len(page.Items)
			}
			assert.Equal(t, 10, seen, "page size %d", size)
		}
	})

	t.Run("huge page number is empty instead of overflowing", func(t *testing.T) {
		result, err := uc.Query(ctx, math.MaxInt/2+1, 8, "", nil)
		require.NoError(t, err)

		assert.NotNil(t, result.Items)
		assert.Empty(t, result.Items)
		assert.Equal(t, 10, result.TotalCount)
		assert.Equal(t, 2, result.TotalPages)
		assert.False(t, result.HasNextPage)
		assert.True(t, result.HasPreviousPage)
	})

	t.Run("huge page size fits in a single page", func(t *testing.T) {
		result, err := uc.Query(ctx, 1, math.MaxInt, "", nil)
		require.NoError(t, err)

		assert.Len(t, result.Items, 10)
		assert.Equal(t, 1, result.TotalPages)
	})

	t.Run("invalid pagination", func(t *testing.T) {
		_, err := uc.Query(ctx, 0, 8, "", nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidPagination)

		_, err = uc.Query(ctx, 1, 0, "", nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidPagination)
	})
}

func TestPaginate_EmptyCollection(t *testing.T) {
	result := usecase.Paginate(nil, 1, 8)

	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
	assert.Equal(t, 0, result.TotalCount)
	assert.Equal(t, 0, result.TotalPages)
	assert.False(t, result.HasNextPage)
	assert.False(t, result.HasPreviousPage)
}

func TestPaginate_PageFarPastTheEnd(t *testing.T) {
	var result *domain.PaginatedSpots
	require.NotPanics(t, func() {
		result = usecase.Paginate(make([]domain.Spot, 10), 1<<62, 8)
	})

	assert.Empty(t, result.Items)
	assert.Equal(t, 2, result.TotalPages)
	assert.Equal(t, 1<<62, result.CurrentPage)
}

func TestSpotUseCase_Query_FilterThenSearch(t *testing.T) {
	ctx := context.Background()
	spots := []domain.Spot{
		{ID: "p1", Category: domain.CategoryActivities, Type: "Piscine", Name: "Piscine Pailleron", District: "75019", IsPaid: domain.FlagTrue},
		{ID: "p2", Category: domain.CategoryActivities, Type: "Piscine", Name: "Piscine Keller", District: "75015", IsPaid: domain.FlagTrue},
		{ID: "p3", Category: domain.CategoryActivities, Type: "Piscine", Name: "Piscine Blomet", District: "75015"},
		{ID: "g1", Category: domain.CategoryGreenSpaces, Type: "Parc", Name: "Parc André Citroën", District: "75015"},
	}
	uc, _, _ := newSpotUseCase(t, spots)

	result, err := uc.Query(ctx, 1, 8, "piscine", &domain.SpotFilters{
		Districts: []string{"75015"},
		Paid:      domain.PaidFilterPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, ids(result.Items))
	assert.Equal(t, 1, result.TotalCount)

	result, err = uc.Query(ctx, 1, 8, "15e arrondissement", &domain.SpotFilters{
		Categories: []domain.Category{domain.CategoryActivities},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p3"}, ids(result.Items))
}

func TestSpotUseCase_GetFilterOptions(t *testing.T) {
	ctx := context.Background()
	spots := []domain.Spot{
		{ID: "1", Category: domain.CategoryActivities, Type: "Piscine", District: "75015"},
		{ID: "2", Category: domain.CategoryGreenSpaces, Type: "Jardin", District: "75001"},
		{ID: "3", Category: domain.CategoryActivities, Type: "Piscine", District: "75015"},
		{ID: "4", Category: domain.CategoryGreenSpaces, Type: "Piscine", District: "VINCENNES"},
		{ID: "5", Category: domain.CategoryWaterFountains, District: "BOULOGNE-BILLANCOURT"},
		{ID: "6", Category: domain.CategoryWaterFountains, District: "75004"},
	}
	uc, _, cache := newSpotUseCase(t, spots)

	options, err := uc.GetFilterOptions(ctx)
	require.NoError(t, err)

	assert.Equal(t, []domain.FilterOption{
		{Value: "activities", Label: "Activités"},
		{Value: "green_spaces", Label: "Espaces verts"},
		{Value: "water_fountains", Label: "Fontaines"},
	}, options.Categories)

	assert.Equal(t, []domain.FilterOption{
		{Value: "75001", Label: "1er arrondissement"},
		{Value: "75004", Label: "4e arrondissement"},
		{Value: "75015", Label: "15e arrondissement"},
		{Value: "BOULOGNE-BILLANCOURT", Label: "BOULOGNE-BILLANCOURT"},
		{Value: "VINCENNES", Label: "VINCENNES"},
	}, options.Districts)

	assert.Equal(t, []domain.TypeFilterOption{
		{Value: "Jardin", Label: "Jardin", Category: domain.CategoryGreenSpaces},
		{Value: "Piscine", Label: "Piscine", Category: domain.CategoryActivities},
		{Value: "Piscine", Label: "Piscine", Category: domain.CategoryGreenSpaces},
	}, options.Types)

	assert.Equal(t, []domain.FilterOption{
		{Value: "payant", Label: "Payant"},
		{Value: "gratuit", Label: "Gratuit"},
	}, options.Paid)

	cached, err := cache.GetFilterOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, options, cached)
}

func TestSpotUseCase_GetFilterOptions_CacheHit(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	mockCache := &MockSpotCacheRepository{}
	datasets := &MockDatasetRepository{}

	cached := &domain.FilterOptions{Districts: []domain.FilterOption{{Value: "75001", Label: "1er arrondissement"}}}
	mockCache.On("GetFilterOptions", mock.Anything).Return(cached, nil).Once()

	agg := usecase.NewAggregator(datasets, mockCache, testDatasets, logger)
	uc := usecase.NewSpotUseCase(agg, usecase.NewSpotSearcher(nil), datasets, mockCache, logger)

	options, err := uc.GetFilterOptions(ctx)
	require.NoError(t, err)
	assert.Same(t, cached, options)
	mockCache.AssertNotCalled(t, "GetSpots", mock.Anything)
}

func TestSpotUseCase_GetSpotByID(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newSpotUseCase(t, numberedSpots(3))

	spot, err := uc.GetSpotByID(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, "s2", spot.ID)

	_, err = uc.GetSpotByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrSpotNotFound)
}

func TestSpotUseCase_GetSpotByDataset(t *testing.T) {
	ctx := context.Background()
	fountains := testDatasets[2]

	t.Run("record is normalized", func(t *testing.T) {
		uc, datasets, _ := newSpotUseCase(t, nil)
		datasets.On("FetchRecord", mock.Anything, fountains, "42").Return(rawRecords(
			`{"gid":42,"voie":"RUE DE RIVOLI","commune":"PARIS 1ER ARRONDISSEMENT","dispo":"OUI","geo_point_2d":{"lat":48.86,"lon":2.34}}`,
		)[0], nil)

		spot, err := uc.GetSpotByDataset(ctx, fountains.ID, "42")
		require.NoError(t, err)
		assert.Equal(t, "42", spot.ID)
		assert.Equal(t, "75001", spot.District)
		assert.Equal(t, domain.FlagTrue, spot.IsAvailable)
	})

	t.Run("missing record", func(t *testing.T) {
		uc, datasets, _ := newSpotUseCase(t, nil)
		datasets.On("FetchRecord", mock.Anything, fountains, "0").Return(nil, repository.ErrRecordNotFound)

		_, err := uc.GetSpotByDataset(ctx, fountains.ID, "0")
		assert.ErrorIs(t, err, apperrors.ErrSpotNotFound)
	})

	t.Run("upstream failure collapses to not found", func(t *testing.T) {
		uc, datasets, _ := newSpotUseCase(t, nil)
		datasets.On("FetchRecord", mock.Anything, fountains, "1").Return(nil, errors.New("503"))

		_, err := uc.GetSpotByDataset(ctx, fountains.ID, "1")
		assert.ErrorIs(t, err, apperrors.ErrSpotNotFound)
	})

	t.Run("unknown dataset", func(t *testing.T) {
		uc, datasets, _ := newSpotUseCase(t, nil)

		_, err := uc.GetSpotByDataset(ctx, "velib", "1")
		assert.ErrorIs(t, err, apperrors.ErrUnknownDataset)
		datasets.AssertNotCalled(t, "FetchRecord", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSpotUseCase_DatasetIDForCategory(t *testing.T) {
	uc, _, _ := newSpotUseCase(t, nil)

	for _, ds := range testDatasets {
		assert.Equal(t, ds.ID, uc.DatasetIDForCategory(ds.Category))
	}
	assert.Panics(t, func() { uc.DatasetIDForCategory(domain.Category("museums")) })
}

func TestSpotUseCase_ClearCache(t *testing.T) {
	ctx := context.Background()
	uc, _, cache := newSpotUseCase(t, numberedSpots(2))

	require.NoError(t, uc.ClearCache(ctx))

	spots, err := cache.GetSpots(ctx)
	require.NoError(t, err)
	assert.Nil(t, spots)
}

func TestSpotUseCase_SpotDetail(t *testing.T) {
	uc, _, _ := newSpotUseCase(t, nil)
	spot := &domain.Spot{ID: "9", Category: domain.CategoryGreenSpaces, Name: "Parc Monceau", District: "75008"}

	detail := uc.SpotDetail(spot)
	assert.Equal(t, "9", detail.ID)
	assert.Equal(t, testDatasets[1].ID, detail.DatasetID)
	assert.Equal(t, "Parc Monceau - Espace vert à Paris", detail.Title)
	assert.Equal(t, "Découvrez Parc Monceau dans le 8e arrondissement de Paris.", detail.Description)
}

func TestSpotDescription(t *testing.T) {
	tests := []struct {
		name string
		spot domain.Spot
		want string
	}{
		{"first district", domain.Spot{Name: "Piscine", District: "75001"}, "Découvrez Piscine dans le 1er arrondissement de Paris."},
		{"district code", domain.Spot{Name: "Piscine", District: "75016"}, "Découvrez Piscine dans le 16e arrondissement de Paris."},
		{"raw district label", domain.Spot{Name: "Bois", District: "VINCENNES"}, "Découvrez Bois à VINCENNES de Paris."},
		{"no district", domain.Spot{Name: "Fontaine à boire"}, "Découvrez Fontaine à boire - Un spot de fraîcheur à Paris."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.SpotDescription(tt.spot))
		})
	}
}

func TestSpotTitle(t *testing.T) {
	assert.Equal(t, "Fontaine à boire - Fontaine à Paris",
		usecase.SpotTitle(domain.Spot{Name: "Fontaine à boire", Category: domain.CategoryWaterFountains}))
	assert.Equal(t, "X - Spot à Paris", usecase.SpotTitle(domain.Spot{Name: "X"}))
}

func TestSpotUseCase_Refresh(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("replaces the warm cache", func(t *testing.T) {
		cache := memory.NewSpotCache(time.Hour, nil, logger)
		require.NoError(t, cache.SetSpots(ctx, numberedSpots(1)))

		datasets := &MockDatasetRepository{}
		datasets.On("FetchRecords", mock.Anything, testDatasets[0]).Return(rawRecords(
			`{"identifiant":"A1","type":"PISCINE","arrondissement":"75012","geo_point_2d":{"lat":48.84,"lon":2.39}}`,
		), nil)
		datasets.On("FetchRecords", mock.Anything, testDatasets[1]).Return(rawRecords(), nil)
		datasets.On("FetchRecords", mock.Anything, testDatasets[2]).Return(rawRecords(), nil)

		agg := usecase.NewAggregator(datasets, cache, testDatasets, logger)
		uc := usecase.NewSpotUseCase(agg, usecase.NewSpotSearcher(nil), datasets, cache, logger)

		count, err := uc.Refresh(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		spots, err := cache.GetSpots(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"A1"}, ids(spots))

		options, err := cache.GetFilterOptions(ctx)
		require.NoError(t, err)
		require.NotNil(t, options)
		assert.Equal(t, "75012", options.Districts[0].Value)
	})

	t.Run("upstream outage keeps the previous collection", func(t *testing.T) {
		cache := memory.NewSpotCache(time.Hour, nil, logger)
		require.NoError(t, cache.SetSpots(ctx, numberedSpots(3)))
		previousOptions := &domain.FilterOptions{Districts: []domain.FilterOption{{Value: "75001"}}}
		require.NoError(t, cache.SetFilterOptions(ctx, previousOptions))

		datasets := &MockDatasetRepository{}
		datasets.On("FetchRecords", mock.Anything, mock.Anything).Return(nil, errors.New("upstream down"))

		agg := usecase.NewAggregator(datasets, cache, testDatasets, logger)
		uc := usecase.NewSpotUseCase(agg, usecase.NewSpotSearcher(nil), datasets, cache, logger)

		count, err := uc.Refresh(ctx)
		assert.Error(t, err)
		assert.Zero(t, count)

		spots, err := cache.GetSpots(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"s1", "s2", "s3"}, ids(spots))

		options, err := cache.GetFilterOptions(ctx)
		require.NoError(t, err)
		assert.Same(t, previousOptions, options)
	})
}
