// Package list реализует HTTP-обработчик списка машин пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/parking-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/parking-service/internal/http/response"
	"github.com/magabrotheeeer/parking-service/internal/lib/sl"
	"github.com/magabrotheeeer/parking-service/internal/models"
)

// Service описывает получение машин пользователя.
type Service interface {
	ListVehicles(ctx context.Context, userUID string) ([]*models.Vehicle, error)
}

// Handler обрабатывает GET /vehicles.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Машины пользователя
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.Vehicle} "Список машин"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /vehicles [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.vehicles.list"

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

	vehicles, err := h.service.ListVehicles(r.Context(), userID)
	if err != nil {
		log.Error("failed to list vehicles", sl.Err(err), sl.UserID(userID))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	log.Debug("vehicles listed", slog.Int("count", len(vehicles)))
	render.JSON(w, r, response.OKWithData(vehicles))
}
