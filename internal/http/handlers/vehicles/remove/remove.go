// Package remove реализует HTTP-обработчик удаления машины.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/parking-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/parking-service/internal/http/response"
	"github.com/magabrotheeeer/parking-service/internal/lib/sl"
	"github.com/magabrotheeeer/parking-service/internal/storage"
)

// Service описывает удаление машины.
type Service interface {
	RemoveVehicle(ctx context.Context, userUID, vehicleID string) error
}

// Handler обрабатывает DELETE /vehicles/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удаление машины
// @Description Удаляет машину текущего пользователя. Чужая машина считается отсутствующей.
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID машины"
// @Success 200 {object} response.Response "Машина удалена"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Машина не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /vehicles/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.vehicles.remove"

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

	vehicleID := chi.URLParam(r, "id")
	if err := h.service.RemoveVehicle(r.Context(), userID, vehicleID); err != nil {
		if errors.Is(err, storage.ErrVehicleNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("vehicle not found"))
			return
		}
		log.Error("failed to remove vehicle", sl.Err(err), slog.String("vehicle_id", vehicleID))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	log.Info("vehicle removed", slog.String("vehicle_id", vehicleID))
	render.JSON(w, r, response.OKWithData(map[string]any{"id": vehicleID}))
}
