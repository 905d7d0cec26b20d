package opendata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/cool-spots/internal/config"
	"github.com/cool-spots/internal/domain"
	"github.com/cool-spots/internal/domain/repository"
)

const maxErrorBodySize = 1024

type client struct {
	httpClient *retryablehttp.Client
	logger     *zap.Logger
}

// recordsResponse - ответ эндпоинта /records
type recordsResponse struct {
	TotalCount int               `json:"total_count"`
	Results    []json.RawMessage `json:"results"`
}

// NewClient создает клиент для API opendatasoft (opendata.paris.fr).
// Таймаут обязателен: зависший запрос считается ошибкой загрузки.
func NewClient(cfg *config.OpenDataConfig, logger *zap.Logger) repository.DatasetRepository {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{Timeout: timeout}
	rc.RetryMax = cfg.RetryMax
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = &leveledLogger{logger: logger.Sugar()}

	return &client{
		httpClient: rc,
		logger:     logger,
	}
}

// FetchRecords загружает полную JSON-выгрузку датасета
func (c *client) FetchRecords(ctx context.Context, dataset domain.Dataset) ([]json.RawMessage, error) {
	c.logger.Debug("Fetching dataset export",
		zap.String("dataset", dataset.ID),
		zap.String("url", dataset.URL))

	var records []json.RawMessage
	if err := c.getJSON(ctx, dataset.URL, &records); err != nil {
		return nil, fmt.Errorf("fetch dataset %s: %w", dataset.ID, err)
	}

	c.logger.Debug("Dataset export fetched",
		zap.String("dataset", dataset.ID),
		zap.Int("records", len(records)))

	return records, nil
}

// FetchRecord загружает одну запись по идентификатору источника
func (c *client) FetchRecord(ctx context.Context, dataset domain.Dataset, recordID string) (json.RawMessage, error) {
	// Идентификатор попадает в ODSQL как строковый литерал
	if !dataset.ValidRecordID(recordID) {
		c.logger.Debug("Rejected record id",
			zap.String("dataset", dataset.ID),
			zap.String("record_id", recordID))
		return nil, repository.ErrRecordNotFound
	}

	query := url.Values{}
	query.Set("where", fmt.Sprintf(`%s="%s"`, dataset.IDField(), recordID))
	query.Set("limit", "1")
	endpoint := fmt.Sprintf("%s/%s/records?%s", dataset.BaseURL, url.PathEscape(dataset.ID), query.Encode())

	var resp recordsResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("fetch record %s/%s: %w", dataset.ID, recordID, err)
	}

	if len(resp.Results) == 0 {
		return nil, repository.ErrRecordNotFound
	}

	return resp.Results[0], nil
}

func (c *client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.String("url", endpoint), zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		c.logger.Error("Open data API returned error",
			zap.String("url", endpoint),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("open data API error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode response", zap.String("url", endpoint), zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// leveledLogger адаптирует zap к retryablehttp.LeveledLogger
type leveledLogger struct {
	logger *zap.SugaredLogger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, keysAndValues...)
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Infow(msg, keysAndValues...)
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warnw(msg, keysAndValues...)
}
