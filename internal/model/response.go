package model

import "time"

// VideoResponse представляет структуру ответа с данными видео.
// DeletedAt всегда null в обычных ответах, но поле присутствует для симметрии API.
type VideoResponse struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	YoutubeID string     `json:"youtube_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

// PaginatedVideosResponse представляет страницу списка видео.
type PaginatedVideosResponse struct {
	Videos     []VideoResponse `json:"videos"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
	TotalPages int             `json:"total_pages"`
}

// ErrorResponse представляет тело ошибки.
type ErrorResponse struct {
	Error string `json:"error"`
}
