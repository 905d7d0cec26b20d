package main

// @title Cool Spots API
// @version 1.0.0
// @description Сервис «прохладных мест» Парижа на основе открытых данных: оборудование и активности, зелёные зоны и питьевые фонтанчики.
// @description
// @description Основные возможности:
// @description - Постраничный список спотов с фильтрами по категории, округу, типу и оплате
// @description - Поиск с учётом округов (75015, 15e, 15ème arrondissement) и синонимов
// @description - Варианты фильтров, выведенные из данных
// @description - Загрузка отдельной записи напрямую из источника

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	_ "github.com/cool-spots/docs"
	"github.com/cool-spots/internal/app"
	"github.com/cool-spots/internal/config"
	httpDelivery "github.com/cool-spots/internal/delivery/http"
	"github.com/cool-spots/internal/delivery/http/handler"
	"github.com/cool-spots/internal/pkg/logger"
	"github.com/cool-spots/internal/worker"
	"github.com/cool-spots/internal/worker/refresh"
)

func main() {
	configPath := pflag.StringP("config", "c", ".env", "path to the .env configuration file")
	pflag.Parse()

	// 1. Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(logger.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "cool-spots-api",
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Cool Spots API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	// 3. Repositories and use cases
	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer application.Close()

	log.Info("Use cases initialized")

	// 4. Optional in-process cache refresh
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var workerManager *worker.WorkerManager
	if cfg.Worker.Enabled {
		workerManager = worker.NewWorkerManager(worker.DefaultShutdownTimeout, log)
		workerManager.Register(refresh.NewCacheRefreshWorker(
			application.SpotUC,
			cfg.Worker.RefreshSchedule,
			cfg.Worker.RefreshOnStart,
			log,
		))
		if err := workerManager.Start(ctx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	// 5. Initialize HTTP Handlers and Server
	spotHandler := handler.NewSpotHandler(application.SpotUC, cfg.Server.DefaultPageSize, log)
	server := httpDelivery.NewServer(cfg, log, spotHandler)

	log.Info("HTTP server initialized")

	// 6. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 7. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	cancel()
	if workerManager != nil {
		if err := workerManager.Stop(); err != nil {
			log.Error("Error stopping workers", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
