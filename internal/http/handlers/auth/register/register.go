// Package register реализует HTTP-обработчик регистрации пользователя.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/parking-service/internal/http/response"
	"github.com/magabrotheeeer/parking-service/internal/lib/sl"
	"github.com/magabrotheeeer/parking-service/internal/models"
	"github.com/magabrotheeeer/parking-service/internal/services/auth"
	"github.com/magabrotheeeer/parking-service/internal/storage"
)

// Service описывает бизнес-логику регистрации.
type Service interface {
	Register(ctx context.Context, email, username, phoneNumber, password string) (string, *models.User, error)
}

// Handler обрабатывает HTTP-запросы на регистрацию.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создаёт пользователя без подписки и возвращает токен сессии и профиль.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.DummyUser true "Данные пользователя"
// @Success 200 {object} response.Response "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Email, имя или телефон уже заняты"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyUser
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			render.JSON(w, r, response.ValidationError(vErrs))
			return
		}
		render.JSON(w, r, response.Error("validation failed"))
		return
	}

	token, user, err := h.service.Register(r.Context(), req.Email, req.Username, req.PhoneNumber, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("email is already in use"))
		case errors.Is(err, auth.ErrUsernameTaken):
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("username is already in use"))
		case errors.Is(err, auth.ErrPhoneTaken):
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("phone number is already in use"))
		case errors.Is(err, storage.ErrUserExists):
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("user already exists"))
		case errors.Is(err, auth.ErrMissingFields):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("required fields are missing"))
		default:
			log.Error("failed to register user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal server error"))
		}
		return
	}

	log.Info("user registered", sl.UserID(user.UUID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token": token,
		"user":  user.Public(),
	}))
}
