// Package remove реализует HTTP-обработчик снятия брони номера в поездке.
// Операция идемпотентна: удаление отсутствующей брони тоже завершается успехом.
package remove

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

// Handler обрабатывает запросы на снятие брони.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики снятия брони.
type Service interface {
	Remove(ctx context.Context, user *models.User, tripID, unitID int64) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reservation.remove"

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

	unitID, err := strconv.ParseInt(chi.URLParam(r, "unitID"), 10, 64)
	if err != nil {
		log.Error("failed to decode unit id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(r, http.StatusBadRequest, "invalid unit id"))
		return
	}

	if err := h.service.Remove(r.Context(), user, tripID, unitID); err != nil {
		log.Error("failed to delete reservation", sl.Err(err))
		status := apperr.Status(err)
		render.Status(r, status)
		render.JSON(w, r, response.Error(r, status, apperr.Message(err)))
		return
	}

	log.Info("reservation deleted",
		slog.Int64("trip_id", tripID),
		slog.Int64("unit_id", unitID))
	render.JSON(w, r, response.OK())
}
