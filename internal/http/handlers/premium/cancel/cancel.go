// Package cancel реализует HTTP-обработчик запроса отмены premium.
//
// Отмена не отключает подписку сразу: она остаётся активной до конца
// оплаченного периода, после чего её сбрасывает плановая сверка.
package cancel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/parking-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/parking-service/internal/http/response"
	"github.com/magabrotheeeer/parking-service/internal/lib/sl"
	"github.com/magabrotheeeer/parking-service/internal/models"
	"github.com/magabrotheeeer/parking-service/internal/storage"
)

// Service описывает запрос отмены подписки.
type Service interface {
	RequestCancellation(ctx context.Context, userUID string) (models.Premium, error)
}

// Handler обрабатывает POST /users/me/premium/cancel.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отмена premium
// @Description Помечает подписку к отмене в конце текущего периода.
// @Tags Premium
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "Отмена запрошена"
// @Failure 400 {object} response.ErrorResponse "Нет активной подписки"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/me/premium/cancel [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.premium.cancel"

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

	p, err := h.service.RequestCancellation(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNoActiveSubscription):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("no active premium subscription"))
		case errors.Is(err, storage.ErrUserNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		default:
			log.Error("failed to cancel premium", sl.Err(err), sl.UserID(userID))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal server error"))
		}
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{"subscription": p}))
}
