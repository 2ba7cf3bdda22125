// Package citysearch реализует HTTP-обработчик поиска городов.
//
// Поддерживаются два режима, выбираемых query-параметрами: поиск по части
// названия (name) и поиск в радиусе от точки (lat, lon, radius_km).
// Маршрут открытый, аутентификация не требуется.
package citysearch

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magelanov/travel-booking/internal/http/response"
	"github.com/magelanov/travel-booking/internal/lib/apperr"
	"github.com/magelanov/travel-booking/internal/lib/sl"
	"github.com/magelanov/travel-booking/internal/models"
)

// Handler обрабатывает запросы на поиск городов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики поиска городов.
type Service interface {
	SearchCities(ctx context.Context, namePart string, limit int) ([]*models.City, error)
	SearchCitiesNear(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]*models.City, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.citysearch"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()

	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}

	var cities []*models.City
	switch {
	case q.Get("name") != "":
		cities, err = h.service.SearchCities(r.Context(), q.Get("name"), limit)
	case q.Get("lat") != "" && q.Get("lon") != "":
		var lat, lon, radiusKm float64
		lat, err = strconv.ParseFloat(q.Get("lat"), 64)
		if err == nil {
			lon, err = strconv.ParseFloat(q.Get("lon"), 64)
		}
		if err != nil {
			log.Error("invalid coordinates", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(r, http.StatusBadRequest, "invalid coordinates"))
			return
		}
		radiusKm, err = strconv.ParseFloat(q.Get("radius_km"), 64)
		if err != nil || radiusKm <= 0 {
			radiusKm = 50
		}
		cities, err = h.service.SearchCitiesNear(r.Context(), lat, lon, radiusKm, limit)
	default:
		log.Error("missing search parameters")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(r, http.StatusBadRequest, "either name or lat/lon is required"))
		return
	}
	if err != nil {
		log.Error("failed to search cities", sl.Err(err))
		status := apperr.Status(err)
		render.Status(r, status)
		render.JSON(w, r, response.Error(r, status, apperr.Message(err)))
		return
	}

	log.Info("cities found", slog.Int("count", len(cities)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count": len(cities),
		"cities":     cities,
	}))
}
