package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/parking-service/internal/models"
	"github.com/magabrotheeeer/parking-service/internal/storage"
)

// CreateVehicle добавляет транспортное средство пользователю.
func (s *Storage) CreateVehicle(ctx context.Context, v models.Vehicle) (*models.Vehicle, error) {
	const op = "storage.CreateVehicle"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO vehicles (user_uid, brand, model, year, plate, color)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, created_at`
	err := s.DB.QueryRowContext(ctx, query,
		v.UserID, v.Brand, v.Model, v.Year, v.Plate, sql.NullString{String: v.Color, Valid: v.Color != ""},
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrPlateExists)
		}
		return nil, unavailable(op, err)
	}
	return &v, nil
}

// ListVehicles возвращает транспортные средства пользователя, новые первыми.
func (s *Storage) ListVehicles(ctx context.Context, userUID string) ([]*models.Vehicle, error) {
	const op = "storage.ListVehicles"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, user_uid, brand, model, year, plate, color, created_at
			  FROM vehicles
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, unavailable(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []*models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		var color sql.NullString
		if err := rows.Scan(&v.ID, &v.UserID, &v.Brand, &v.Model, &v.Year, &v.Plate, &color, &v.CreatedAt); err != nil {
			return nil, unavailable(op, err)
		}
		v.Color = color.String
		result = append(result, &v)
	}
	if err = rows.Err(); err != nil {
		return nil, unavailable(op, err)
	}
	return result, nil
}

// RemoveVehicle удаляет транспортное средство, если оно принадлежит пользователю.
func (s *Storage) RemoveVehicle(ctx context.Context, userUID, vehicleID string) error {
	const op = "storage.RemoveVehicle"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1 AND user_uid = $2`, vehicleID, userUID)
	return expectOneRow(op, res, err, storage.ErrVehicleNotFound)
}
