// Package parking содержит операции с транспортными средствами и парковочными билетами.
package parking

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/parking-service/internal/models"
	"github.com/magabrotheeeer/parking-service/internal/storage"
)

// Repository описывает операции хранилища с машинами и билетами.
type Repository interface {
	CreateVehicle(ctx context.Context, v models.Vehicle) (*models.Vehicle, error)
	ListVehicles(ctx context.Context, userUID string) ([]*models.Vehicle, error)
	RemoveVehicle(ctx context.Context, userUID, vehicleID string) error
	CreateTicket(ctx context.Context, t models.Ticket) (*models.Ticket, error)
	ListTickets(ctx context.Context, userUID string) ([]*models.Ticket, error)
}

// Service: операции парковки от имени пользователя.
type Service struct {
	repo Repository
}

// NewService создаёт сервис парковки.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NormalizePlate приводит госномер к единому виду: без пробелов и дефисов, в верхнем регистре.
func NormalizePlate(plate string) string {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	return strings.NewReplacer(" ", "", "-", "").Replace(plate)
}

// CreateVehicle добавляет машину пользователю. Госномер уникален во всей системе.
func (s *Service) CreateVehicle(ctx context.Context, userUID string, in models.DummyVehicle) (*models.Vehicle, error) {
	const op = "parking.CreateVehicle"
	v, err := s.repo.CreateVehicle(ctx, models.Vehicle{
		UserID: userUID,
		Brand:  strings.TrimSpace(in.Brand),
		Model:  strings.TrimSpace(in.Model),
		Year:   in.Year,
		Plate:  NormalizePlate(in.Plate),
		Color:  strings.TrimSpace(in.Color),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

// ListVehicles возвращает машины пользователя.
func (s *Service) ListVehicles(ctx context.Context, userUID string) ([]*models.Vehicle, error) {
	const op = "parking.ListVehicles"
	list, err := s.repo.ListVehicles(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// RemoveVehicle удаляет машину пользователя. Чужая или несуществующая машина
// даёт storage.ErrVehicleNotFound.
func (s *Service) RemoveVehicle(ctx context.Context, userUID, vehicleID string) error {
	const op = "parking.RemoveVehicle"
	if _, err := uuid.Parse(vehicleID); err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrVehicleNotFound)
	}
	if err := s.repo.RemoveVehicle(ctx, userUID, vehicleID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CreateTicket оформляет билет на пользователя.
func (s *Service) CreateTicket(ctx context.Context, userUID string, in models.DummyTicket) (*models.Ticket, error) {
	const op = "parking.CreateTicket"
	t, err := s.repo.CreateTicket(ctx, models.Ticket{
		UserID:          userUID,
		Type:            strings.TrimSpace(in.Type),
		Price:           in.Price,
		Availability:    in.Availability,
		Location:        strings.TrimSpace(in.Location),
		DurationMinutes: in.DurationMinutes,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// ListTickets возвращает билеты пользователя.
func (s *Service) ListTickets(ctx context.Context, userUID string) ([]*models.Ticket, error) {
	const op = "parking.ListTickets"
	list, err := s.repo.ListTickets(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}
