// Package list реализует HTTP-обработчик получения всех броней поездки.
// Брони возвращаются вместе со сводкой по номеру, отсортированные по дате заезда.
package list

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

// Handler обрабатывает запросы на список броней поездки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка броней.
type Service interface {
	List(ctx context.Context, user *models.User, tripID int64) ([]*models.Reservation, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reservation.list"

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

	reservations, err := h.service.List(r.Context(), user, tripID)
	if err != nil {
		log.Error("failed to list reservations", sl.Err(err))
		status := apperr.Status(err)
		render.Status(r, status)
		render.JSON(w, r, response.Error(r, status, apperr.Message(err)))
		return
	}

	views := make([]map[string]any, 0, len(reservations))
	for _, res := range reservations {
		v := map[string]any{
			"trip_id":    res.TripID,
			"unit_id":    res.UnitID,
			"start_date": res.StartDate.Format("2006-01-02"),
			"end_date":   res.EndDate.Format("2006-01-02"),
		}
		if res.Unit != nil {
			v["unit"] = res.Unit
		}
		views = append(views, v)
	}

	log.Info("reservations listed", slog.Int("count", len(views)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count":   len(views),
		"reservations": views,
	}))
}
