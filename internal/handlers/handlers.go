package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Totarae/VideoService/internal/apperrors"
	"github.com/Totarae/VideoService/internal/model"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// VideoService описывает методы сервисного слоя, нужные обработчикам.
type VideoService interface {
	CreateVideo(ctx context.Context, req *model.CreateVideoRequest) (*model.VideoResponse, error)
	GetVideo(ctx context.Context, id int64) (*model.VideoResponse, error)
	UpdateVideo(ctx context.Context, id int64, req *model.UpdateVideoRequest) (*model.VideoResponse, error)
	DeleteVideo(ctx context.Context, id int64) error
	ListVideos(ctx context.Context, query model.ListVideosQuery) (*model.PaginatedVideosResponse, error)
	Ping(ctx context.Context) error
}

// Handler связывает HTTP-запросы с вызовами сервиса.
// Бизнес-логики здесь нет, только разбор запроса и рендер ответа.
type Handler struct {
	Service VideoService
	Logger  *zap.Logger
}

func NewHandler(service VideoService, logger *zap.Logger) *Handler {
	return &Handler{Service: service, Logger: logger}
}

// Index возвращает текстовый баннер сервиса.
func (h *Handler) Index(res http.ResponseWriter, req *http.Request) {
	res.Header().Set("Content-Type", "text/plain")
	res.WriteHeader(http.StatusOK)
	res.Write([]byte("Hello world!"))
}

// Ping проверяет доступность хранилища.
func (h *Handler) Ping(res http.ResponseWriter, req *http.Request) {
	if err := h.Service.Ping(req.Context()); err != nil {
		h.Logger.Error("Ping failed", zap.Error(err))
		h.writeError(res, http.StatusInternalServerError, "internal server error")
		return
	}
	res.WriteHeader(http.StatusOK)
}

// CreateVideo создаёт новое видео из JSON-тела запроса.
func (h *Handler) CreateVideo(res http.ResponseWriter, req *http.Request) {
	var createReq model.CreateVideoRequest
	if err := json.NewDecoder(req.Body).Decode(&createReq); err != nil {
		h.writeError(res, http.StatusBadRequest, "invalid request body")
		return
	}

	video, err := h.Service.CreateVideo(req.Context(), &createReq)
	if err != nil {
		h.writeServiceError(res, err)
		return
	}
	h.writeJSON(res, http.StatusCreated, video)
}

// GetVideo возвращает видео по идентификатору из пути.
func (h *Handler) GetVideo(res http.ResponseWriter, req *http.Request) {
	id, ok := h.videoID(res, req)
	if !ok {
		return
	}

	video, err := h.Service.GetVideo(req.Context(), id)
	if err != nil {
		h.writeServiceError(res, err)
		return
	}
	h.writeJSON(res, http.StatusOK, video)
}

// UpdateVideo применяет частичное обновление видео.
func (h *Handler) UpdateVideo(res http.ResponseWriter, req *http.Request) {
	id, ok := h.videoID(res, req)
	if !ok {
		return
	}

	var updateReq model.UpdateVideoRequest
	if err := json.NewDecoder(req.Body).Decode(&updateReq); err != nil {
		h.writeError(res, http.StatusBadRequest, "invalid request body")
		return
	}

	video, err := h.Service.UpdateVideo(req.Context(), id, &updateReq)
	if err != nil {
		h.writeServiceError(res, err)
		return
	}
	h.writeJSON(res, http.StatusOK, video)
}

// DeleteVideo помечает видео удалённым.
func (h *Handler) DeleteVideo(res http.ResponseWriter, req *http.Request) {
	id, ok := h.videoID(res, req)
	if !ok {
		return
	}

	if err := h.Service.DeleteVideo(req.Context(), id); err != nil {
		h.writeServiceError(res, err)
		return
	}
	res.WriteHeader(http.StatusNoContent)
}

// ListVideos возвращает страницу видео по параметрам запроса.
func (h *Handler) ListVideos(res http.ResponseWriter, req *http.Request) {
	params := req.URL.Query()

	query := model.ListVideosQuery{
		Search:         params.Get("search"),
		OrderBy:        params.Get("order_by"),
		OrderDirection: params.Get("order_direction"),
	}
	// Некорректные числа игнорируем, Normalize подставит значения по умолчанию
	query.Page, _ = strconv.Atoi(params.Get("page"))
	query.PerPage, _ = strconv.Atoi(params.Get("per_page"))

	videos, err := h.Service.ListVideos(req.Context(), query)
	if err != nil {
		h.writeServiceError(res, err)
		return
	}
	h.writeJSON(res, http.StatusOK, videos)
}

// videoID извлекает идентификатор видео из пути запроса.
func (h *Handler) videoID(res http.ResponseWriter, req *http.Request) (int64, bool) {
	raw := chi.URLParam(req, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		h.writeError(res, http.StatusBadRequest, "invalid video id")
		return 0, false
	}
	return id, true
}

// writeServiceError транслирует ошибку сервиса в HTTP-статус и тело ошибки.
// Детали ошибок хранилища клиенту не отдаются, только в лог.
func (h *Handler) writeServiceError(res http.ResponseWriter, err error) {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeValidation:
		h.writeError(res, http.StatusBadRequest, errMessage(err))
	case apperrors.CodeNotFound:
		h.writeError(res, http.StatusNotFound, errMessage(err))
	case apperrors.CodeConflict:
		h.writeError(res, http.StatusConflict, errMessage(err))
	default:
		h.Logger.Error("Storage error", zap.Error(err))
		h.writeError(res, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) writeJSON(res http.ResponseWriter, status int, body any) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	if err := json.NewEncoder(res).Encode(body); err != nil {
		h.Logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *Handler) writeError(res http.ResponseWriter, status int, message string) {
	h.writeJSON(res, status, model.ErrorResponse{Error: message})
}

func errMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
