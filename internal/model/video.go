package model

import "time"

// Video представляет запись видео в таблице videos.
// DeletedAt задаётся только при мягком удалении, nil означает активную запись.
type Video struct {
	tableName struct{}   `pg:"videos"`
	ID        int64      `pg:"id,notnull,pk"`
	Title     string     `pg:"title,notnull"`
	YoutubeID string     `pg:"youtube_id,notnull,unique"`
	CreatedAt time.Time  `pg:"created_at,notnull"`
	UpdatedAt time.Time  `pg:"updated_at,notnull"`
	DeletedAt *time.Time `pg:"deleted_at"`
}
