package service

import (
	"context"
	"fmt"

	"github.com/Totarae/VideoService/internal/apperrors"
	"github.com/Totarae/VideoService/internal/model"
	"go.uber.org/zap"
)

// Repository описывает методы хранилища, нужные сервису.
type Repository interface {
	Create(ctx context.Context, title, youtubeID string) (*model.Video, error)
	GetByID(ctx context.Context, id int64) (*model.Video, error)
	Update(ctx context.Context, id int64, title, youtubeID *string) (*model.Video, error)
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, query model.ListVideosQuery) ([]*model.Video, int64, error)
	Ping(ctx context.Context) error
}

// VideoService реализует бизнес-логику работы с видео:
// валидация входа, вызовы репозитория, ошибки "не найдено".
type VideoService struct {
	Repo   Repository
	Logger *zap.Logger
}

func NewVideoService(repo Repository, logger *zap.Logger) *VideoService {
	return &VideoService{
		Repo:   repo,
		Logger: logger,
	}
}

// CreateVideo валидирует запрос и сохраняет новое видео.
// Ошибка валидации возвращается до обращения к хранилищу.
func (s *VideoService) CreateVideo(ctx context.Context, req *model.CreateVideoRequest) (*model.VideoResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	video, err := s.Repo.Create(ctx, req.Title, req.YoutubeID)
	if err != nil {
		return nil, err
	}
	return toVideoResponse(video), nil
}

// GetVideo возвращает активное видео по идентификатору.
func (s *VideoService) GetVideo(ctx context.Context, id int64) (*model.VideoResponse, error) {
	video, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, notFound(id)
	}
	return toVideoResponse(video), nil
}

// UpdateVideo применяет частичное обновление: проверяются только переданные поля.
func (s *VideoService) UpdateVideo(ctx context.Context, id int64, req *model.UpdateVideoRequest) (*model.VideoResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	video, err := s.Repo.Update(ctx, id, req.Title, req.YoutubeID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, notFound(id)
	}
	return toVideoResponse(video), nil
}

// DeleteVideo помечает видео удалённым. Повторное удаление — ошибка "не найдено",
// а не тихий успех.
func (s *VideoService) DeleteVideo(ctx context.Context, id int64) error {
	deleted, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound(id)
	}
	return nil
}

// ListVideos возвращает страницу видео с общим числом совпадений и числом страниц.
func (s *VideoService) ListVideos(ctx context.Context, query model.ListVideosQuery) (*model.PaginatedVideosResponse, error) {
	query.Normalize()

	videos, total, err := s.Repo.List(ctx, query)
	if err != nil {
		s.Logger.Error("Failed to list videos", zap.Error(err))
		return nil, err
	}

	responses := make([]model.VideoResponse, 0, len(videos))
	for _, v := range videos {
		responses = append(responses, *toVideoResponse(v))
	}

	totalPages := int((total + int64(query.PerPage) - 1) / int64(query.PerPage))

	return &model.PaginatedVideosResponse{
		Videos:     responses,
		Total:      total,
		Page:       query.Page,
		PerPage:    query.PerPage,
		TotalPages: totalPages,
	}, nil
}

// Ping проверяет доступность хранилища.
func (s *VideoService) Ping(ctx context.Context) error {
	return s.Repo.Ping(ctx)
}

func notFound(id int64) error {
	return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("video with id %d not found", id))
}

func toVideoResponse(v *model.Video) *model.VideoResponse {
	return &model.VideoResponse{
		ID:        v.ID,
		Title:     v.Title,
		YoutubeID: v.YoutubeID,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
		DeletedAt: v.DeletedAt,
	}
}
