// Package register реализует HTTP-обработчик регистрации пользователей.
//
// В нём определяется структура Request для входных данных, выполняется
// декодирование JSON, валидация полей и делегирование операции регистрации
// сервису аутентификации. При успехе возвращается JWT для нового пользователя,
// повторная регистрация занятого email завершается статусом 409.
package register

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magelanov/travel-booking/internal/http/response"
	"github.com/magelanov/travel-booking/internal/lib/apperr"
	"github.com/magelanov/travel-booking/internal/lib/sl"
)

// Request — структура входных данных для регистрации.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Surname  string `json:"surname" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=6"`
}

// Handler обрабатывает HTTP-запросы на регистрацию.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, email, name, surname, rawPassword string) (string, error)
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает учетную запись и возвращает JWT. Повторный email дает 409.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные новой учетной записи"
// @Success 200 {object} response.Response "Успешная регистрация"
// @Failure 400 {object} response.Response "Некорректный JSON"
// @Failure 409 {object} response.Response "Email уже занят"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	token, err := h.service.Register(r.Context(), req.Email, req.Name, req.Surname, req.Password)
	if err != nil {
		log.Error("register failed", sl.Err(err))
		status := apperr.Status(err)
		render.Status(r, status)
		render.JSON(w, r, response.Error(r, status, apperr.Message(err)))
		return
	}

	log.Info("user registered", slog.String("email", req.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token": token,
		"email": req.Email,
	}))
}
