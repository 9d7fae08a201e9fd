package router

import (
	"github.com/Totarae/VideoService/internal/handlers"
	"github.com/Totarae/VideoService/internal/middleware"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NewRouter создаёт и настраивает маршрутизатор.
// Ресурс videos доступен и по короткому пути, и под префиксом /api/v1.
func NewRouter(handler *handlers.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware(logger)) // Подключаем логирование
	r.Use(middleware.GzipMiddleware)            // Gzip-сжатие

	r.Get("/", handler.Index)
	r.Get("/ping", handler.Ping)

	r.Route("/videos", videoRoutes(handler))
	r.Route("/api/v1/videos", videoRoutes(handler))

	return r
}

func videoRoutes(handler *handlers.Handler) func(r chi.Router) {
	return func(r chi.Router) {
		r.Post("/", handler.CreateVideo)
		r.Get("/", handler.ListVideos)
		r.Get("/{id}", handler.GetVideo)
		r.Put("/{id}", handler.UpdateVideo)
		r.Delete("/{id}", handler.DeleteVideo)
	}
}
