package model

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Totarae/VideoService/internal/apperrors"
)

const (
	titleMinLen     = 1
	titleMaxLen     = 100
	youtubeIDLength = 11
)

func validateTitle(title string) string {
	n := utf8.RuneCountInString(title)
	if n < titleMinLen || n > titleMaxLen {
		return fmt.Sprintf("title: length must be between %d and %d", titleMinLen, titleMaxLen)
	}
	return ""
}

func validateYoutubeID(id string) string {
	if utf8.RuneCountInString(id) != youtubeIDLength {
		return fmt.Sprintf("youtube_id: length must be exactly %d", youtubeIDLength)
	}
	return ""
}

// Validate проверяет поля запроса на создание. Оба поля обязательны.
func (r *CreateVideoRequest) Validate() error {
	var violations []string
	if msg := validateTitle(r.Title); msg != "" {
		violations = append(violations, msg)
	}
	if msg := validateYoutubeID(r.YoutubeID); msg != "" {
		violations = append(violations, msg)
	}
	if len(violations) > 0 {
		return apperrors.New(apperrors.CodeValidation, strings.Join(violations, "; "))
	}
	return nil
}

// Validate проверяет только переданные поля запроса на обновление.
func (r *UpdateVideoRequest) Validate() error {
	var violations []string
	if r.Title != nil {
		if msg := validateTitle(*r.Title); msg != "" {
			violations = append(violations, msg)
		}
	}
	if r.YoutubeID != nil {
		if msg := validateYoutubeID(*r.YoutubeID); msg != "" {
			violations = append(violations, msg)
		}
	}
	if len(violations) > 0 {
		return apperrors.New(apperrors.CodeValidation, strings.Join(violations, "; "))
	}
	return nil
}
