// Package middlewarectx содержит HTTP middleware для аутентификации запросов.
//
// PrincipalMiddleware извлекает JWT из заголовка Authorization и при успешной
// проверке добавляет пользователя в контекст запроса. Любая ошибка проверки
// не прерывает обработку: запрос продолжается анонимным, а решение об отказе
// принимает RequireAuthMiddleware на защищённых маршрутах.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magelanov/travel-booking/internal/http/response"
	"github.com/magelanov/travel-booking/internal/lib/sl"
	"github.com/magelanov/travel-booking/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// Principal — ключ для аутентифицированного пользователя в контексте.
const Principal Key = "principal"

// Authenticator описывает интерфейс сервиса для проверки токена.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// UserFromContext возвращает пользователя из контекста запроса, если запрос
// был аутентифицирован.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(Principal).(*models.User)
	return user, ok && user != nil
}

// PrincipalMiddleware возвращает HTTP middleware, который разбирает JWT
// из заголовка Authorization и кладёт пользователя в контекст запроса.
//
// Отсутствующий, испорченный или просроченный токен не является ошибкой
// на этом уровне: запрос пропускается дальше без пользователя в контексте.
func PrincipalMiddleware(auth Authenticator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.PrincipalMiddleware"

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := auth.Authenticate(r.Context(), tokenStr)
			if err != nil {
				log.Debug("request stays anonymous",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), Principal, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuthMiddleware возвращает HTTP middleware, который отклоняет запросы
// без аутентифицированного пользователя в контексте со статусом 401.
func RequireAuthMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireAuthMiddleware"

			if _, ok := UserFromContext(r.Context()); !ok {
				log.Info("unauthorized request rejected",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("path", r.URL.Path))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(r, http.StatusUnauthorized, "authentication required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
