package usecase_test

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/cool-spots/internal/domain"
)

// MockDatasetRepository is a mock of DatasetRepository
type MockDatasetRepository struct {
	mock.Mock
}

func (m *MockDatasetRepository) FetchRecords(ctx context.Context, dataset domain.Dataset) ([]json.RawMessage, error) {
	args := m.Called(ctx, dataset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

func (m *MockDatasetRepository) FetchRecord(ctx context.Context, dataset domain.Dataset, recordID string) (json.RawMessage, error) {
	args := m.Called(ctx, dataset, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// MockSpotCacheRepository is a mock of SpotCacheRepository
type MockSpotCacheRepository struct {
	mock.Mock
}

func (m *MockSpotCacheRepository) GetSpots(ctx context.Context) ([]domain.Spot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Spot), args.Error(1)
}

func (m *MockSpotCacheRepository) SetSpots(ctx context.Context, spots []domain.Spot) error {
	args := m.Called(ctx, spots)
	return args.Error(0)
}

func (m *MockSpotCacheRepository) GetFilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FilterOptions), args.Error(1)
}

func (m *MockSpotCacheRepository) SetFilterOptions(ctx context.Context, options *domain.FilterOptions) error {
	args := m.Called(ctx, options)
	return args.Error(0)
}

func (m *MockSpotCacheRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var testDatasets = []domain.Dataset{
	{ID: "ilots-de-fraicheur-equipements-activites", Category: domain.CategoryActivities},
	{ID: "ilots-de-fraicheur-espaces-verts-frais", Category: domain.CategoryGreenSpaces},
	{ID: "fontaines-a-boire", Category: domain.CategoryWaterFountains},
}

func rawRecords(records ...string) []json.RawMessage {
	result := make([]json.RawMessage, 0, len(records))
	for _, r := range records {
		result = append(result, json.RawMessage(r))
	}
	return result
}
