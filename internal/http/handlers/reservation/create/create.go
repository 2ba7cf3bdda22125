// Package create реализует HTTP-обработчик создания брони номера в поездке.
//
// Handler декодирует и валидирует JSON-запрос, извлекает ID поездки из URL
// и делегирует бронирование бизнес-логике. Занятый на запрошенные даты номер
// (границы диапазонов включительно) возвращает 400, чужая поездка — 403.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magelanov/travel-booking/internal/http/middlewarectx"
	"github.com/magelanov/travel-booking/internal/http/response"
	"github.com/magelanov/travel-booking/internal/lib/apperr"
	"github.com/magelanov/travel-booking/internal/lib/sl"
	"github.com/magelanov/travel-booking/internal/models"
)

// Handler обрабатывает запросы на создание брони.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики бронирования.
type Service interface {
	Add(ctx context.Context, user *models.User, tripID int64, req models.DummyReservation) (*models.Reservation, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Бронирование номера в поездке
// @Description Добавляет бронь номера на диапазон дат. Пересечение с существующей бронью этого номера дает 400.
// @Tags Reservations
// @Accept  json
// @Produce  json
// @Param tripID path int true "Идентификатор поездки"
// @Param request body models.DummyReservation true "Данные брони"
// @Success 200 {object} response.Response "Созданная бронь"
// @Failure 400 {object} response.Response "Номер занят или даты невалидны"
// @Failure 401 {object} response.Response "Нет аутентификации"
// @Failure 403 {object} response.Response "Поездка принадлежит другому пользователю"
// @Failure 404 {object} response.Response "Поездка или номер не найдены"
// @Security BearerAuth
// @Router /trips/{tripID}/reservations [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reservation.create"

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

	var req models.DummyReservation
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(r, http.StatusBadRequest, "invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(r, err.(validator.ValidationErrors)))
		return
	}

	res, err := h.service.Add(r.Context(), user, tripID, req)
	if err != nil {
		log.Error("failed to create reservation", sl.Err(err))
		status := apperr.Status(err)
		render.Status(r, status)
		render.JSON(w, r, response.Error(r, status, apperr.Message(err)))
		return
	}

	log.Info("reservation created",
		slog.Int64("trip_id", res.TripID),
		slog.Int64("unit_id", res.UnitID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"reservation": reservationView(res),
	}))
}

func reservationView(res *models.Reservation) map[string]any {
	v := map[string]any{
		"trip_id":    res.TripID,
		"unit_id":    res.UnitID,
		"start_date": res.StartDate.Format("2006-01-02"),
		"end_date":   res.EndDate.Format("2006-01-02"),
	}
	if res.Unit != nil {
		v["unit"] = res.Unit
	}
	return v
}
