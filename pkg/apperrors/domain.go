package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для ошибок предметной области: оценки, модерация, поиск.
*/

// =========================================================================
// Фабричные ФУНКЦИИ
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrInvalidInput - фабрика для невалидного ввода (400)
func ErrInvalidInput(domain, message string) *AppError {
	return New(CodeValidationFailed, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ
// =========================================================================

// --- Оценки ---

var ErrInvalidScore = New(CodeValidationFailed, "rating", "Score must be an integer between 1 and 5", http.StatusBadRequest)

var ErrInvalidTargetType = New(CodeValidationFailed, "rating", "Target type must be 'work' or 'collection'", http.StatusBadRequest)

var ErrTargetNotFound = New(CodeNotFound, "rating", "Rated target not found", http.StatusNotFound)

var ErrRatingNotFound = New(CodeNotFound, "rating", "Rating not found", http.StatusNotFound)

var ErrRatingForbidden = New(CodeForbidden, "rating", "Role is not allowed to rate", http.StatusForbidden)

var ErrNotRatingOwner = New(CodeForbidden, "rating", "Only the original rater can delete this rating", http.StatusForbidden)

// --- Модерация ---

var ErrWorkNotFound = New(CodeNotFound, "work", "Work not found", http.StatusNotFound)

var ErrReviewerForbidden = New(CodeForbidden, "moderation", "Only admins and museums can review works", http.StatusForbidden)

var ErrEmptyBatch = New(CodeValidationFailed, "moderation", "Batch must contain at least one work id", http.StatusBadRequest)

var ErrInvalidDecision = New(CodeValidationFailed, "moderation", "Decision must be one of approve, reject, award", http.StatusBadRequest)

var ErrEmptyComment = New(CodeValidationFailed, "moderation", "Comment must not be empty", http.StatusBadRequest)

// ErrInvalidTransition - переход статуса не разрешен таблицей переходов (409)
var ErrInvalidTransition = New(CodeInvalidStatus, "moderation", "Status transition is not allowed", http.StatusConflict)

// --- Пользователи ---

var ErrUnknownUser = New(CodeForbidden, "auth", "Unknown user", http.StatusForbidden)

var ErrDesignerNotFound = New(CodeNotFound, "user", "Designer not found", http.StatusNotFound)

// --- Поиск и пагинация ---

var ErrInvalidPage = New(CodeValidationFailed, "search", "Page must be greater than or equal to 1", http.StatusBadRequest)

var ErrInvalidPageSize = New(CodeValidationFailed, "search", "Page size must be between 1 and 100", http.StatusBadRequest)

var ErrInvalidLimit = New(CodeValidationFailed, "search", "Limit must be a positive integer", http.StatusBadRequest)
