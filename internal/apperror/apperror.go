// Package apperror — типизированные ошибки приложения с маппингом в HTTP статусы.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType int

const (
	UnknownError ErrorType = iota
	// ValidationError — некорректный ввод (пустое поле, плохой email, слабый пароль)
	ValidationError
	// AuthError — проблема аутентификации (нет/невалидный токен, неверные креды)
	AuthError
	// UnauthorizedError — аутентифицирован, но нет прав на операцию
	UnauthorizedError
	// NotFoundError — сущность не найдена
	NotFoundError
	// ConflictError — конфликт (например, email уже занят)
	ConflictError
	// InternalError — ошибка хранилища/транзакции, частичное состояние откатано
	InternalError
)

type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode возвращает HTTP статус, соответствующий типу ошибки
func (e *AppError) StatusCode() int {
	switch e.Type {
	case ValidationError:
		return http.StatusBadRequest
	case AuthError:
		return http.StatusUnauthorized
	case UnauthorizedError:
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case ConflictError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func New(errType ErrorType, message string, err error) *AppError {
	return &AppError{Type: errType, Message: message, Err: err}
}

func NewValidationError(message string, err error) *AppError {
	return New(ValidationError, message, err)
}

func NewAuthError(message string, err error) *AppError {
	return New(AuthError, message, err)
}

func NewUnauthorizedError(message string, err error) *AppError {
	return New(UnauthorizedError, message, err)
}

func NewNotFoundError(message string, err error) *AppError {
	return New(NotFoundError, message, err)
}

func NewConflictError(message string, err error) *AppError {
	return New(ConflictError, message, err)
}

func NewInternalError(message string, err error) *AppError {
	return New(InternalError, message, err)
}

// AsAppError достает *AppError из цепочки ошибок (nil, если его там нет)
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType проверяет тип ошибки в цепочке
func IsType(err error, errType ErrorType) bool {
	appErr := AsAppError(err)
	return appErr != nil && appErr.Type == errType
}
