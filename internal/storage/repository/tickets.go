package repository

import (
	"context"
	"database/sql"

	"github.com/magabrotheeeer/parking-service/internal/models"
)

// CreateTicket сохраняет купленный билет.
func (s *Storage) CreateTicket(ctx context.Context, t models.Ticket) (*models.Ticket, error) {
	const op = "storage.CreateTicket"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO tickets (user_uid, type, price, availability, location, duration_minutes)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, created_at`
	location := sql.NullString{String: t.Location, Valid: t.Location != ""}
	duration := sql.NullInt64{Int64: int64(t.DurationMinutes), Valid: t.DurationMinutes > 0}
	if err := s.DB.QueryRowContext(ctx, query,
		t.UserID, t.Type, t.Price, t.Availability, location, duration,
	).Scan(&t.ID, &t.CreatedAt); err != nil {
		return nil, unavailable(op, err)
	}
	return &t, nil
}

// ListTickets возвращает билеты пользователя, новые первыми.
func (s *Storage) ListTickets(ctx context.Context, userUID string) ([]*models.Ticket, error) {
	const op = "storage.ListTickets"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, user_uid, type, price, availability, location, duration_minutes, created_at
			  FROM tickets
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, unavailable(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []*models.Ticket{}
	for rows.Next() {
		var (
			t        models.Ticket
			location sql.NullString
			duration sql.NullInt64
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Price, &t.Availability,
			&location, &duration, &t.CreatedAt); err != nil {
			return nil, unavailable(op, err)
		}
		t.Location = location.String
		t.DurationMinutes = int(duration.Int64)
		result = append(result, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, unavailable(op, err)
	}
	return result, nil
}
