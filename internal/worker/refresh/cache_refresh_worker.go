package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/cool-spots/internal/worker"
)

// refreshTimeout ограничивает один прогон обновления
const refreshTimeout = 5 * time.Minute

// CacheRefresher сбрасывает кеш и заново наполняет его
type CacheRefresher interface {
	Refresh(ctx context.Context) (int, error)
}

// CacheRefreshWorker по расписанию cron прогревает кеш спотов
type CacheRefreshWorker struct {
	*worker.BaseWorker
	refresher CacheRefresher
	schedule  string
	onStart   bool
}

// NewCacheRefreshWorker создает новый CacheRefreshWorker.
// schedule - стандартное выражение cron из пяти полей или дескриптор вида "@every 1h".
func NewCacheRefreshWorker(
	refresher CacheRefresher,
	schedule string,
	refreshOnStart bool,
	logger *zap.Logger,
) *CacheRefreshWorker {
	return &CacheRefreshWorker{
		BaseWorker: worker.NewBaseWorker("cache-refresh", logger),
		refresher:  refresher,
		schedule:   schedule,
		onStart:    refreshOnStart,
	}
}

// Start регистрирует задачу в планировщике и блокируется до остановки
func (w *CacheRefreshWorker) Start(ctx context.Context) error {
	logger := w.Logger()

	c := cron.New()
	if _, err := c.AddFunc(w.schedule, func() { w.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", w.schedule, err)
	}

	logger.Info("Starting CacheRefreshWorker", zap.String("schedule", w.schedule))

	if w.onStart {
		w.RunOnce(ctx)
	}

	c.Start()
	defer func() {
		// ждём завершения текущего прогона
		<-c.Stop().Done()
	}()

	select {
	case <-w.StopChan():
		logger.Info("Worker stopped")
		return nil
	case <-ctx.Done():
		logger.Info("Context cancelled")
		return ctx.Err()
	}
}

// RunOnce выполняет одно обновление кеша; ошибки только логируются
func (w *CacheRefreshWorker) RunOnce(ctx context.Context) {
	logger := w.Logger()
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	count, err := w.refresher.Refresh(ctx)
	w.RecordRun(err)
	if err != nil {
		logger.Error("Cache refresh failed", zap.Error(err))
		return
	}

	logger.Info("Cache refreshed",
		zap.Int("spots", count),
		zap.Duration("duration", time.Since(start)))
}
