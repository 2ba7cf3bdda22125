// Package stayread реализует HTTP-обработчик получения размещения по ID
// вместе с его номерным фондом. Маршрут открытый.
package stayread

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magelanov/travel-booking/internal/http/response"
	"github.com/magelanov/travel-booking/internal/lib/apperr"
	"github.com/magelanov/travel-booking/internal/lib/sl"
	"github.com/magelanov/travel-booking/internal/models"
)

// Handler обрабатывает запросы на чтение размещения.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения размещения.
type Service interface {
	GetStay(ctx context.Context, id int64) (*models.Stay, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.stayread"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stayID, err := strconv.ParseInt(chi.URLParam(r, "stayID"), 10, 64)
	if err != nil {
		log.Error("failed to decode stay id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(r, http.StatusBadRequest, "invalid stay id"))
		return
	}

	stay, err := h.service.GetStay(r.Context(), stayID)
	if err != nil {
		log.Error("failed to read stay", sl.Err(err))
		status := apperr.Status(err)
		render.Status(r, status)
		render.JSON(w, r, response.Error(r, status, apperr.Message(err)))
		return
	}

	log.Info("stay read", slog.Int64("stay_id", stay.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"stay": stay,
	}))
}
