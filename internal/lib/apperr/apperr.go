// Package apperr определяет закрытый набор доменных ошибок приложения
// и их отображение в HTTP-статусы. Ошибки сравниваются через errors.Is,
// обработчики не разбирают текст. Все ошибки терминальные, повторов
// внутри сервисов нет. Неклассифицированная ошибка отображается в 500,
// чтобы клиент мог отличить "запрос невалиден" от "система сломалась".
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized — запрос без аутентифицированного пользователя.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials — неверная пара логин/пароль при входе.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden — пользователь аутентифицирован, но не владеет ресурсом.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound — поездка, номер или другой ресурс не найден.
	ErrNotFound = errors.New("not found")
	// ErrUnitUnavailable — номер занят на запрошенные даты.
	ErrUnitUnavailable = errors.New("unit not available for these dates")
	// ErrBadDates — нарушен инвариант дат start <= end.
	ErrBadDates = errors.New("start date is after end date")
	// ErrBadDateFormat — дата в запросе не разбирается как 2006-01-02.
	ErrBadDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
	// ErrConflict — попытка повторной регистрации существующего email.
	ErrConflict = errors.New("already exists")
)

// Status возвращает HTTP-статус для доменной ошибки.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnitUnavailable), errors.Is(err, ErrBadDates), errors.Is(err, ErrBadDateFormat):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message возвращает текст для клиента: для доменных ошибок — их сообщение,
// для прочих — нейтральное описание без деталей внутреннего сбоя.
func Message(err error) string {
	for _, domain := range []error{
		ErrUnauthorized, ErrInvalidCredentials, ErrForbidden,
		ErrNotFound, ErrUnitUnavailable, ErrBadDates, ErrBadDateFormat, ErrConflict,
	} {
		if errors.Is(err, domain) {
			return domain.Error()
		}
	}
	return "internal server error"
}
