// Package apperrors содержит типы ошибок приложения и их коды.
package apperrors

import (
	"errors"
	"fmt"
)

// Коды ошибок
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT" // нарушение уникального индекса
	CodeStorage    = "STORAGE_ERROR"
)

// AppError представляет ошибку приложения с кодом и сообщением.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New создаёт новую AppError.
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap оборачивает ошибку с кодом и сообщением.
func Wrap(err error, code, message string) *AppError {
	return &AppError{Code: code, Message: message, Cause: err}
}

// CodeOf возвращает код ошибки или CodeStorage, если ошибка не AppError.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeStorage
}

// Is сообщает, имеет ли ошибка указанный код.
func Is(err error, code string) bool {
	return CodeOf(err) == code
}
