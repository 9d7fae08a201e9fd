package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Totarae/VideoService/internal/apperrors"
	"github.com/Totarae/VideoService/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Pool описывает используемое подмножество методов pgxpool.Pool.
// Вынесено в интерфейс, чтобы в тестах подставлять pgxmock.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// VideoRepositoryInterface определяет методы репозитория видео.
type VideoRepositoryInterface interface {
	Create(ctx context.Context, title, youtubeID string) (*model.Video, error)
	GetByID(ctx context.Context, id int64) (*model.Video, error)
	Update(ctx context.Context, id int64, title, youtubeID *string) (*model.Video, error)
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, query model.ListVideosQuery) ([]*model.Video, int64, error)
	Ping(ctx context.Context) error
}

// activeOnly — единый предикат мягкого удаления. Все читающие запросы
// обязаны строиться через него, чтобы удалённые записи нигде не всплывали.
const activeOnly = "deleted_at IS NULL"

const videoColumns = "id, title, youtube_id, created_at, updated_at, deleted_at"

const uniqueViolationCode = "23505"

// VideoRepository реализует VideoRepositoryInterface с использованием PostgreSQL.
type VideoRepository struct {
	pool Pool
}

// NewVideoRepository создаёт новый экземпляр VideoRepository.
func NewVideoRepository(pool Pool) *VideoRepository {
	return &VideoRepository{pool: pool}
}

// Create сохраняет новое видео. created_at и updated_at получают одно и то же значение.
func (r *VideoRepository) Create(ctx context.Context, title, youtubeID string) (*model.Video, error) {
	now := time.Now().UTC()
	video := &model.Video{
		Title:     title,
		YoutubeID: youtubeID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `INSERT INTO videos (title, youtube_id, created_at, updated_at)
              VALUES ($1, $2, $3, $3)
              RETURNING id`

	err := r.pool.QueryRow(ctx, query, title, youtubeID, now).Scan(&video.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, apperrors.Wrap(err, apperrors.CodeConflict, "youtube_id already exists")
		}
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "database insert error")
	}
	return video, nil
}

// GetByID извлекает активное видео по идентификатору.
// Возвращает (nil, nil), если активной записи нет.
func (r *VideoRepository) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	query := fmt.Sprintf(`SELECT %s FROM videos WHERE id = $1 AND %s`, videoColumns, activeOnly)

	video := &model.Video{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&video.ID, &video.Title, &video.YoutubeID, &video.CreatedAt, &video.UpdatedAt, &video.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "database query error")
	}
	return video, nil
}

// Update применяет частичное обновление активного видео: nil-поля не меняются.
// Возвращает (nil, nil), если активной записи нет.
func (r *VideoRepository) Update(ctx context.Context, id int64, title, youtubeID *string) (*model.Video, error) {
	query := fmt.Sprintf(`UPDATE videos
              SET title = COALESCE($2, title),
                  youtube_id = COALESCE($3, youtube_id),
                  updated_at = $4
              WHERE id = $1 AND %s
              RETURNING %s`, activeOnly, videoColumns)

	video := &model.Video{}
	err := r.pool.QueryRow(ctx, query, id, title, youtubeID, time.Now().UTC()).Scan(
		&video.ID, &video.Title, &video.YoutubeID, &video.CreatedAt, &video.UpdatedAt, &video.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, apperrors.Wrap(err, apperrors.CodeConflict, "youtube_id already exists")
		}
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "database update error")
	}
	return video, nil
}

// Delete помечает активное видео как удалённое. Повторное удаление не срабатывает:
// предикат activeOnly исключает уже удалённую запись, и метод вернёт false.
func (r *VideoRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`UPDATE videos SET deleted_at = $2 WHERE id = $1 AND %s`, activeOnly)

	tag, err := r.pool.Exec(ctx, query, id, time.Now().UTC())
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.CodeStorage, "database delete error")
	}
	return tag.RowsAffected() > 0, nil
}

// List возвращает страницу активных видео и общее число совпадений до пагинации.
func (r *VideoRepository) List(ctx context.Context, query model.ListVideosQuery) ([]*model.Video, int64, error) {
	query.Normalize()

	where := activeOnly
	args := make([]any, 0, 3)
	if query.Search != "" {
		where += " AND (title LIKE $1 OR youtube_id LIKE $1)"
		args = append(args, "%"+query.Search+"%")
	}

	var total int64
	countSQL := fmt.Sprintf(`SELECT COUNT(*) FROM videos WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.Wrap(err, apperrors.CodeStorage, "database count error")
	}

	listSQL := fmt.Sprintf(`SELECT %s FROM videos WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		videoColumns, where, orderColumn(query.OrderBy), orderDirection(query.OrderDirection),
		len(args)+1, len(args)+2)
	args = append(args, query.PerPage, (query.Page-1)*query.PerPage)

	rows, err := r.pool.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, apperrors.CodeStorage, "database list error")
	}
	defer rows.Close()

	videos := make([]*model.Video, 0, query.PerPage)
	for rows.Next() {
		video := &model.Video{}
		err := rows.Scan(&video.ID, &video.Title, &video.YoutubeID, &video.CreatedAt, &video.UpdatedAt, &video.DeletedAt)
		if err != nil {
			return nil, 0, apperrors.Wrap(err, apperrors.CodeStorage, "failed to scan video row")
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Wrap(err, apperrors.CodeStorage, "failed to iterate video rows")
	}

	return videos, total, nil
}

// Ping проверяет доступность базы данных.
func (r *VideoRepository) Ping(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "SELECT 1")
	return err
}

// orderColumn сводит поле сортировки к разрешённому списку колонок.
func orderColumn(field string) string {
	switch field {
	case "title", "youtube_id", "created_at":
		return field
	default:
		return "created_at"
	}
}

// orderDirection сводит направление сортировки к ASC/DESC.
func orderDirection(direction string) string {
	switch direction {
	case "asc":
		return "ASC"
	case "desc":
		return "DESC"
	default:
		return "DESC"
	}
}
