// Package activate реализует HTTP-обработчик оформления premium-подписки.
package activate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/parking-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/parking-service/internal/http/response"
	"github.com/magabrotheeeer/parking-service/internal/lib/sl"
	"github.com/magabrotheeeer/parking-service/internal/models"
	"github.com/magabrotheeeer/parking-service/internal/storage"
)

// Request: тип подписки: month или year.
type Request struct {
	PremiumType string `json:"premium_type" validate:"required"`
}

// Service описывает оформление подписки.
type Service interface {
	Activate(ctx context.Context, userUID, premiumType string) (models.Premium, error)
}

// Handler обрабатывает POST /users/me/premium.
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
// @Summary Оформление premium
// @Description Включает подписку с текущего момента на календарный месяц или год. Повторная активация начинает период заново.
// @Tags Premium
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Тип подписки"
// @Success 200 {object} response.Response "Подписка активна"
// @Failure 400 {object} response.ErrorResponse "Неизвестный тип подписки"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/me/premium [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.premium.activate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Unauthorized"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("premium_type is required"))
		return
	}

	p, err := h.service.Activate(r.Context(), userID, req.PremiumType)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidPremiumType):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("premium_type must be month or year"))
		case errors.Is(err, storage.ErrUserNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		default:
			log.Error("failed to activate premium", sl.Err(err), sl.UserID(userID))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal server error"))
		}
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{"subscription": p}))
}
