package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/cool-spots/internal/domain"
)

// ErrRecordNotFound возвращается, когда источник не содержит запрошенной записи
var ErrRecordNotFound = errors.New("record not found")

// DatasetRepository - доступ к источникам открытых данных
type DatasetRepository interface {
	// FetchRecords загружает полную выгрузку датасета в виде сырых записей
	FetchRecords(ctx context.Context, dataset domain.Dataset) ([]json.RawMessage, error)

	// FetchRecord загружает одну запись по её идентификатору в источнике
	FetchRecord(ctx context.Context, dataset domain.Dataset, recordID string) (json.RawMessage, error)
}
