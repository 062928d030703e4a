package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для доменных ошибок приложения.
*/

// =========================================================================
// Предопределенные доменные ошибки
// =========================================================================

var (
	// ErrInvalidCredentials - единое сообщение для "нет такого пользователя"
	// и "неверный пароль", чтобы не раскрывать существование email
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)

	// ErrInvalidRefreshToken - единое сообщение для всех причин отказа:
	// неверный токен, чужой токен, истекший токен, несуществующий пользователь
	ErrInvalidRefreshToken = New(CodeInvalidToken, "auth", "Invalid refresh token.", http.StatusBadRequest)

	// ErrPermissionDenied - фиксированное сообщение авторизации.
	// Не раскрывает ни существование проекта, ни требуемую роль
	ErrPermissionDenied = New(CodeForbidden, "authorization", "You don't have permission for this operation", http.StatusForbidden)

	// ErrEmailAlreadyExists возвращается при регистрации с занятым email
	ErrEmailAlreadyExists = New(CodeAlreadyExists, "user", "Email already exists", http.StatusConflict)

	// ErrProjectNameTaken - имя проекта уникально глобально
	ErrProjectNameTaken = New(CodeAlreadyExists, "project", "Project name already exists", http.StatusConflict)

	// ErrTaskTitleTaken - название задачи уникально внутри проекта
	ErrTaskTitleTaken = New(CodeAlreadyExists, "task", "Task title already exists in this project", http.StatusConflict)

	// ErrWeakPassword возвращается при слишком коротком пароле
	ErrWeakPassword = New(CodeValidationFailed, "user", "Password is too weak", http.StatusBadRequest)
)

// =========================================================================
// Фабричные функции (оборачивание ошибок, напр. из репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}
