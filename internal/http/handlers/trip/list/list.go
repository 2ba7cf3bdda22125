// Package list реализует HTTP-обработчик получения списка поездок
// текущего пользователя с пагинацией через query-параметры limit и offset.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magelanov/travel-booking/internal/http/middlewarectx"
	"github.com/magelanov/travel-booking/internal/http/response"
	"github.com/magelanov/travel-booking/internal/lib/apperr"
	"github.com/magelanov/travel-booking/internal/lib/sl"
	"github.com/magelanov/travel-booking/internal/models"
)

// Handler обрабатывает запросы на список поездок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка поездок.
type Service interface {
	List(ctx context.Context, user *models.User, limit, offset int) ([]*models.Trip, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.trip.list"

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

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	trips, err := h.service.List(r.Context(), user, limit, offset)
	if err != nil {
		log.Error("failed to list trips", sl.Err(err))
		status := apperr.Status(err)
		render.Status(r, status)
		render.JSON(w, r, response.Error(r, status, apperr.Message(err)))
		return
	}

	views := make([]map[string]any, 0, len(trips))
	for _, t := range trips {
		views = append(views, map[string]any{
			"id":         t.ID,
			"city_id":    t.CityID,
			"city_name":  t.CityName,
			"name":       t.Name,
			"start_date": t.StartDate.Format("2006-01-02"),
			"end_date":   t.EndDate.Format("2006-01-02"),
		})
	}

	log.Info("trips listed", slog.Int("count", len(views)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count": len(views),
		"trips":      views,
	}))
}
