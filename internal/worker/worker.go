package worker

import (
	"context"
	"time"
)

// Worker - фоновая задача, управляемая WorkerManager
type Worker interface {
	// Start блокируется до остановки воркера или отмены ctx
	Start(ctx context.Context) error

	// Stop сигнализирует воркеру о завершении
	Stop() error

	// Name возвращает имя воркера
	Name() string

	// Status возвращает снимок счётчиков прогонов
	Status() Status
}

// Status - состояние воркера для логов и --once режима
type Status struct {
	Name      string    `json:"name"`
	Runs      int       `json:"runs"`
	Failures  int       `json:"failures"`
	LastRunAt time.Time `json:"last_run_at,omitempty"`
	LastError string    `json:"last_error,omitempty"`
	Stopped   bool      `json:"stopped"`
}
