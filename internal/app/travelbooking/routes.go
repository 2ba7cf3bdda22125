// Package travelbooking собирает основное HTTP-приложение: хранилище,
// кэш, сервисы и маршруты публичного API.
package travelbooking

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magelanov/travel-booking/internal/http/handlers/auth/login"
	"github.com/magelanov/travel-booking/internal/http/handlers/auth/register"
	"github.com/magelanov/travel-booking/internal/http/handlers/catalog/citysearch"
	"github.com/magelanov/travel-booking/internal/http/handlers/catalog/staylist"
	"github.com/magelanov/travel-booking/internal/http/handlers/catalog/stayread"
	"github.com/magelanov/travel-booking/internal/http/handlers/health"
	reservationcreate "github.com/magelanov/travel-booking/internal/http/handlers/reservation/create"
	reservationlist "github.com/magelanov/travel-booking/internal/http/handlers/reservation/list"
	reservationremove "github.com/magelanov/travel-booking/internal/http/handlers/reservation/remove"
	tripcreate "github.com/magelanov/travel-booking/internal/http/handlers/trip/create"
	triplist "github.com/magelanov/travel-booking/internal/http/handlers/trip/list"
	tripread "github.com/magelanov/travel-booking/internal/http/handlers/trip/read"
	tripremove "github.com/magelanov/travel-booking/internal/http/handlers/trip/remove"
	tripupdate "github.com/magelanov/travel-booking/internal/http/handlers/trip/update"
	"github.com/magelanov/travel-booking/internal/http/middlewarectx"
	authservice "github.com/magelanov/travel-booking/internal/services/auth"
	catalogservice "github.com/magelanov/travel-booking/internal/services/catalog"
	reservationservice "github.com/magelanov/travel-booking/internal/services/reservation"
	tripservice "github.com/magelanov/travel-booking/internal/services/trip"
	"github.com/magelanov/travel-booking/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
//
// Открытые конечные точки: регистрация, вход, поиск по каталогу, health.
// Поездки и брони закрыты аутентификацией: PrincipalMiddleware разбирает
// токен на всех маршрутах, RequireAuthMiddleware отклоняет анонимные
// запросы только в защищённой группе.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	db *repository.Storage,
	authService *authservice.AuthService,
	tripService *tripservice.TripService,
	reservationService *reservationservice.ReservationService,
	catalogService *catalogservice.CatalogService,
) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.PrincipalMiddleware(authService, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/cities/search", citysearch.New(logger, catalogService).ServeHTTP)
		r.Get("/cities/{cityID}/stays", staylist.New(logger, catalogService).ServeHTTP)
		r.Get("/stays/{stayID}", stayread.New(logger, catalogService).ServeHTTP)

		// Группа, доступная только аутентифицированным пользователям
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireAuthMiddleware(logger))
			r.Post("/trips", tripcreate.New(logger, tripService).ServeHTTP)
			r.Get("/trips", triplist.New(logger, tripService).ServeHTTP)
			r.Get("/trips/{tripID}", tripread.New(logger, tripService).ServeHTTP)
			r.Put("/trips/{tripID}", tripupdate.New(logger, tripService).ServeHTTP)
			r.Delete("/trips/{tripID}", tripremove.New(logger, tripService).ServeHTTP)
			r.Post("/trips/{tripID}/reservations", reservationcreate.New(logger, reservationService).ServeHTTP)
			r.Get("/trips/{tripID}/reservations", reservationlist.New(logger, reservationService).ServeHTTP)
			r.Delete("/trips/{tripID}/reservations/{unitID}", reservationremove.New(logger, reservationService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
