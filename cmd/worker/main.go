package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/cool-spots/internal/app"
	"github.com/cool-spots/internal/config"
	"github.com/cool-spots/internal/pkg/logger"
	"github.com/cool-spots/internal/worker"
	"github.com/cool-spots/internal/worker/refresh"
)

// Отдельный процесс прогрева кеша. Имеет смысл с CACHE_BACKEND=redis,
// когда кеш общий для нескольких экземпляров api.
func main() {
	configPath := pflag.StringP("config", "c", ".env", "path to the .env configuration file")
	once := pflag.Bool("once", false, "refresh the cache once and exit")
	pflag.Parse()

	// 1. Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled && !*once {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(logger.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "cool-spots-worker",
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Cache Refresh Worker")
	log.Info("Configuration loaded",
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.String("schedule", cfg.Worker.RefreshSchedule))

	if cfg.Cache.Backend != "redis" {
		log.Warn("In-memory cache is local to this process; the api will not see refreshed data")
	}

	// 3. Repositories and use cases
	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer application.Close()

	refreshWorker := refresh.NewCacheRefreshWorker(
		application.SpotUC,
		cfg.Worker.RefreshSchedule,
		cfg.Worker.RefreshOnStart,
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *once {
		refreshWorker.RunOnce(ctx)
		if st := refreshWorker.Status(); st.Failures > 0 {
			// os.Exit пропускает defer
			application.Close()
			_ = log.Sync()
			os.Exit(1)
		}
		return
	}

	// 4. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(worker.DefaultShutdownTimeout, log)
	workerManager.Register(refreshWorker)

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Cancel context to stop workers
	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
