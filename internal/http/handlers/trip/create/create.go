// Package create реализует HTTP-обработчик создания поездки.
//
// Handler декодирует и валидирует JSON-запрос, определяет владельца из
// контекста запроса и делегирует создание бизнес-логике. В ответе
// возвращается идентификатор новой поездки.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magelanov/travel-booking/internal/http/middlewarectx"
	"github.com/magelanov/travel-booking/internal/http/response"
	"github.com/magelanov/travel-booking/internal/lib/apperr"
	"github.com/magelanov/travel-booking/internal/lib/sl"
	"github.com/magelanov/travel-booking/internal/models"
)

// Handler обрабатывает запросы на создание поездки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания поездки.
type Service interface {
	Create(ctx context.Context, user *models.User, req models.DummyTrip) (int64, error)
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
// @Summary Создание поездки
// @Description Создает поездку для текущего пользователя. Пустое название заменяется названием города.
// @Tags Trips
// @Accept  json
// @Produce  json
// @Param request body models.DummyTrip true "Данные поездки"
// @Success 200 {object} response.Response "Идентификатор созданной поездки"
// @Failure 400 {object} response.Response "Некорректный JSON или даты"
// @Failure 401 {object} response.Response "Нет аутентификации"
// @Failure 404 {object} response.Response "Город не найден"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Security BearerAuth
// @Router /trips [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.trip.create"

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

	var req models.DummyTrip
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

	id, err := h.service.Create(r.Context(), user, req)
	if err != nil {
		log.Error("failed to create trip", sl.Err(err))
		status := apperr.Status(err)
		render.Status(r, status)
		render.JSON(w, r, response.Error(r, status, apperr.Message(err)))
		return
	}

	log.Info("trip created", slog.Int64("trip_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"trip_id": id,
	}))
}
