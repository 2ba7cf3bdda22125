// Package read реализует HTTP-обработчик получения поездки по идентификатору.
//
// Handler извлекает ID из URL, определяет текущего пользователя и делегирует
// чтение бизнес-логике. Чужая поездка возвращает 403, несуществующая — 404.
package read

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magelanov/travel-booking/internal/http/middlewarectx"
	"github.com/magelanov/travel-booking/internal/http/response"
	"github.com/magelanov/travel-booking/internal/lib/apperr"
	"github.com/magelanov/travel-booking/internal/lib/sl"
	"github.com/magelanov/travel-booking/internal/models"
)

// Handler обрабатывает запросы на чтение поездки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения поездки.
type Service interface {
	Read(ctx context.Context, user *models.User, tripID int64) (*models.Trip, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.trip.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(r, http.StatusUnauthorized, "authentication required"))
		return
	}

	tripID, err := strconv.ParseInt(chi.URLParam(r, "tripID"), 10, 64)
	if err != nil {
		log.Error("failed to decode trip id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(r, http.StatusBadRequest, "invalid trip id"))
		return
	}

	trip, err := h.service.Read(r.Context(), user, tripID)
	if err != nil {
		log.Error("failed to read trip", sl.Err(err))
		status := apperr.Status(err)
		render.Status(r, status)
		render.JSON(w, r, response.Error(r, status, apperr.Message(err)))
		return
	}

	log.Info("trip read", slog.Int64("trip_id", trip.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"trip": tripView(trip),
	}))
}

func tripView(t *models.Trip) map[string]any {
	return map[string]any{
		"id":         t.ID,
		"city_id":    t.CityID,
		"city_name":  t.CityName,
		"name":       t.Name,
		"start_date": t.StartDate.Format("2006-01-02"),
		"end_date":   t.EndDate.Format("2006-01-02"),
	}
}
