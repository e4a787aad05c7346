// Package avatar реализует HTTP-обработчик смены аватара.
package avatar

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
	"github.com/magabrotheeeer/parking-service/internal/services/users"
	"github.com/magabrotheeeer/parking-service/internal/storage"
)

// Request: новый аватар: URL или строка base64.
type Request struct {
	Avatar string `json:"avatar" validate:"required"`
}

// Service описывает смену аватара.
type Service interface {
	UpdateAvatar(ctx context.Context, userUID, avatar string) error
}

// Handler обрабатывает POST /users/me/avatar.
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
// @Summary Смена аватара
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Аватар"
// @Success 200 {object} response.Response "Аватар обновлён"
// @Failure 400 {object} response.ErrorResponse "Аватар не передан"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/me/avatar [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.avatar"

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
		render.JSON(w, r, response.Error("avatar is required"))
		return
	}

	if err := h.service.UpdateAvatar(r.Context(), userID, req.Avatar); err != nil {
		switch {
		case errors.Is(err, users.ErrAvatarRequired):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("avatar is required"))
		case errors.Is(err, storage.ErrUserNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		default:
			log.Error("failed to update avatar", sl.Err(err), sl.UserID(userID))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal server error"))
		}
		return
	}

	log.Info("avatar updated", sl.UserID(userID))
	render.JSON(w, r, response.OKWithData(map[string]any{"avatar": req.Avatar}))
}
