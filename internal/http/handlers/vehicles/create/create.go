// Package create реализует HTTP-обработчик добавления машины.
package create

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

// Service описывает добавление машины.
type Service interface {
	CreateVehicle(ctx context.Context, userUID string, in models.DummyVehicle) (*models.Vehicle, error)
}

// Handler обрабатывает POST /vehicles.
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
// @Summary Добавление машины
// @Tags Vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DummyVehicle true "Машина"
// @Success 201 {object} response.Response{data=models.Vehicle} "Машина добавлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 409 {object} response.ErrorResponse "Госномер уже зарегистрирован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /vehicles [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.vehicles.create"

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

	var req models.DummyVehicle
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

	v, err := h.service.CreateVehicle(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, storage.ErrPlateExists) {
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("vehicle with this plate already exists"))
			return
		}
		log.Error("failed to create vehicle", sl.Err(err), sl.UserID(userID))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	log.Info("vehicle created", slog.String("vehicle_id", v.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithData(v))
}
