package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Totarae/VideoService/internal/config"
	"github.com/Totarae/VideoService/internal/database"
	"github.com/Totarae/VideoService/internal/handlers"
	"github.com/Totarae/VideoService/internal/repositories"
	"github.com/Totarae/VideoService/internal/router"
	"github.com/Totarae/VideoService/internal/service"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// Инициализация конфигурации
	cfg := config.NewConfig()

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	db, err := database.NewDB(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("Ошибка подключения к БД: ", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.PgMigrationsPath, logger); err != nil {
		logger.Fatal("Ошибка применения миграций: ", zap.Error(err))
	}

	repo := repositories.NewVideoRepository(db.Pool)
	videoService := service.NewVideoService(repo, logger)
	handler := handlers.NewHandler(videoService, logger)

	r := router.NewRouter(handler, logger)

	server := &http.Server{
		Addr:    cfg.Address(),
		Handler: r,
	}

	go func() {
		logger.Info("Сервер запущен на ", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка при запуске сервера: ", zap.Error(err))
		}
	}()

	// Ожидаем сигнал и останавливаем сервер, не обрывая активные запросы
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Остановка сервера")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Ошибка при остановке сервера: ", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	logger, err := cfg.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}
