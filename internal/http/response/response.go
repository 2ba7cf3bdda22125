// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов, ошибок и сообщений валидации в едином формате конверта:
// timestamp, status, error, message, path, плюс карта ошибок валидации по полям.
package response

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
type Response struct {
	Timestamp time.Time           `json:"timestamp"`        // Время формирования ответа
	Status    int                 `json:"status"`           // HTTP-статус
	Error     string              `json:"error,omitempty"`  // Краткое имя ошибки, при неуспехе
	Message   string              `json:"message,omitempty"` // Человеко-читаемое сообщение
	Path      string              `json:"path,omitempty"`   // Путь запроса, при неуспехе
	Errors    map[string][]string `json:"errors,omitempty"` // Ошибки валидации по полям
	Data      any                 `json:"data,omitempty"`   // Данные ответа, при успехе
}

// OK возвращает успешный Response без данных.
func OK() Response {
	return Response{
		Timestamp: time.Now().UTC(),
		Status:    http.StatusOK,
	}
}

// OKWithData возвращает успешный Response с переданными данными.
func OKWithData(data any) Response {
	return Response{
		Timestamp: time.Now().UTC(),
		Status:    http.StatusOK,
		Data:      data,
	}
}

// Error возвращает Response с ошибкой для данного запроса.
func Error(r *http.Request, status int, msg string) Response {
	return Response{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   msg,
		Path:      r.URL.Path,
	}
}

// ValidationError формирует Response на основе ошибок валидации запроса.
// Каждое нарушение превращается в человеко‑читаемый текст и складывается
// в карту по имени поля.
func ValidationError(r *http.Request, errs validator.ValidationErrors) Response {
	fieldErrs := make(map[string][]string, len(errs))

	for _, err := range errs {
		var msg string
		switch err.ActualTag() {
		case "required":
			msg = fmt.Sprintf("field %s is a required field", err.Field())
		case "email":
			msg = fmt.Sprintf("field %s must be a valid email", err.Field())
		case "min":
			msg = fmt.Sprintf("field %s is too short", err.Field())
		case "max":
			msg = fmt.Sprintf("field %s is too long", err.Field())
		default:
			msg = fmt.Sprintf("field %s is not valid", err.Field())
		}
		fieldErrs[err.Field()] = append(fieldErrs[err.Field()], msg)
	}

	return Response{
		Timestamp: time.Now().UTC(),
		Status:    http.StatusUnprocessableEntity,
		Error:     http.StatusText(http.StatusUnprocessableEntity),
		Message:   "validation failed",
		Path:      r.URL.Path,
		Errors:    fieldErrs,
	}
}
