package errors

import (
	"fmt"
	"net/http"
)

var (
	// Авторизация и сессии
	ErrUnauthorized       = fmt.Errorf("неавторизован")
	ErrInvalidCredentials = fmt.Errorf("неверные учётные данные")
	ErrSessionNotFound    = fmt.Errorf("сессия не найдена или истекла")
	ErrEmptySessionCookie = fmt.Errorf("cookie сессии отсутствует")

	// Сброс пароля
	ErrResetTokenInvalid = fmt.Errorf("недействительный или истёкший токен сброса пароля")
	ErrWrongPassword     = fmt.Errorf("текущий пароль указан неверно")

	// Контекст
	ErrUserIDNotFoundInContext = fmt.Errorf("UserID не найден в контексте запроса")
	ErrInvalidUserID           = fmt.Errorf("недопустимый UserID")

	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")
	ErrConflict   = fmt.Errorf("конфликт уникальности")
)

// HttpError - доменная ошибка, которая уже знает свой HTTP-статус и сообщение
// для клиента. Внутренняя причина (Err) в ответ не попадает, только в лог.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

// NewFieldConflictError - конфликт уникальности с указанием поля-виновника,
// чтобы фронт мог подсветить конкретный input.
func NewFieldConflictError(field, message string, err error) *HttpError {
	return &HttpError{
		Code:    http.StatusConflict,
		Message: message,
		Err:     err,
		Details: map[string]interface{}{"field": field},
	}
}

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// ErrorList - маппинг sentinel-ошибок на HTTP-статусы для utils.ErrorResponse.
var ErrorList = map[error]int{
	ErrNotFound:                http.StatusNotFound,
	ErrBadRequest:              http.StatusBadRequest,
	ErrConflict:                http.StatusConflict,
	ErrUnauthorized:            http.StatusUnauthorized,
	ErrInvalidCredentials:      http.StatusUnauthorized,
	ErrSessionNotFound:         http.StatusUnauthorized,
	ErrEmptySessionCookie:      http.StatusUnauthorized,
	ErrResetTokenInvalid:       http.StatusBadRequest,
	ErrWrongPassword:           http.StatusBadRequest,
	ErrUserIDNotFoundInContext: http.StatusUnauthorized,
	ErrInvalidUserID:           http.StatusUnauthorized,
}
