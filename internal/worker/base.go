package worker

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// BaseWorker - общая часть воркеров: сигнал остановки и учёт прогонов
type BaseWorker struct {
	name     string
	logger   *zap.Logger
	stopChan chan struct{}
	now      func() time.Time

	mu        sync.Mutex
	stopped   bool
	runs      int
	failures  int
	lastRunAt time.Time
	lastErr   error
}

// NewBaseWorker создает новый BaseWorker
func NewBaseWorker(name string, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name:     name,
		logger:   logger.With(zap.String("worker", name)),
		stopChan: make(chan struct{}),
		now:      time.Now,
	}
}

func (w *BaseWorker) Name() string {
	return w.name
}

// Stop закрывает канал остановки; повторный вызов ничего не делает
func (w *BaseWorker) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}

	w.logger.Info("Stopping worker", zap.Int("runs", w.runs), zap.Int("failures", w.failures))
	close(w.stopChan)
	w.stopped = true

	return nil
}

func (w *BaseWorker) IsStopped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped
}

func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}

// RecordRun учитывает завершённый прогон; err == nil означает успех
func (w *BaseWorker) RecordRun(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.runs++
	w.lastRunAt = w.now()
	w.lastErr = err
	if err != nil {
		w.failures++
	}
}

func (w *BaseWorker) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := Status{
		Name:      w.name,
		Runs:      w.runs,
		Failures:  w.failures,
		LastRunAt: w.lastRunAt,
		Stopped:   w.stopped,
	}
	if w.lastErr != nil {
		s.LastError = w.lastErr.Error()
	}
	return s
}
