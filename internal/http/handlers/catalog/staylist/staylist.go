// Package staylist реализует HTTP-обработчик списка размещений в городе
// с пагинацией через query-параметры limit и offset. Маршрут открытый.
package staylist

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

// Handler обрабатывает запросы на список размещений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка размещений.
type Service interface {
	ListStays(ctx context.Context, cityID int64, limit, offset int) ([]*models.Stay, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.staylist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	cityID, err := strconv.ParseInt(chi.URLParam(r, "cityID"), 10, 64)
	if err != nil {
		log.Error("failed to decode city id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(r, http.StatusBadRequest, "invalid city id"))
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	stays, err := h.service.ListStays(r.Context(), cityID, limit, offset)
	if err != nil {
		log.Error("failed to list stays", sl.Err(err))
		status := apperr.Status(err)
		render.Status(r, status)
		render.JSON(w, r, response.Error(r, status, apperr.Message(err)))
		return
	}

	log.Info("stays listed", slog.Int("count", len(stays)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count": len(stays),
		"stays":      stays,
	}))
}
