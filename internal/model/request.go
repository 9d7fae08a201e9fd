package model

// CreateVideoRequest представляет структуру запроса на создание видео.
type CreateVideoRequest struct {
	Title     string `json:"title"`
	YoutubeID string `json:"youtube_id"`
}

// UpdateVideoRequest представляет структуру запроса на частичное обновление видео.
// Поля-указатели: nil означает, что поле не передано и не меняется.
type UpdateVideoRequest struct {
	Title     *string `json:"title"`
	YoutubeID *string `json:"youtube_id"`
}

// ListVideosQuery содержит параметры выборки списка видео.
type ListVideosQuery struct {
	Page           int
	PerPage        int
	Search         string
	OrderBy        string
	OrderDirection string
}

// Значения пагинации по умолчанию.
const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// Normalize приводит параметры пагинации к допустимым значениям.
// Сервис и репозиторий считают страницы от одних и тех же чисел.
func (q *ListVideosQuery) Normalize() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
}
