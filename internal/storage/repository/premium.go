package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/parking-service/internal/models"
	"github.com/magabrotheeeer/parking-service/internal/storage"
)

func nullType(t models.PremiumType) sql.NullString {
	if t == "" || t == models.PremiumNone {
		return sql.NullString{}
	}
	return sql.NullString{String: string(t), Valid: true}
}

// SavePremium записывает все поля подписки одним UPDATE.
func (s *Storage) SavePremium(ctx context.Context, userUID string, p models.Premium) error {
	const op = "storage.SavePremium"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	c := p.Columns()
	query := `UPDATE users
			  SET premium = $2,
			      premium_type = $3,
			      premium_start_date = $4,
			      premium_end_date = $5,
			      premium_cancel_pending = $6
			  WHERE uid = $1`
	res, err := s.DB.ExecContext(ctx, query,
		userUID, c.Premium, nullType(c.Type), c.StartDate, c.EndDate, c.CancelPending)
	return expectOneRow(op, res, err, storage.ErrUserNotFound)
}

// MarkPremiumCancelPending выставляет флаг отмены только у пользователя с активной подпиской.
func (s *Storage) MarkPremiumCancelPending(ctx context.Context, userUID string) error {
	const op = "storage.MarkPremiumCancelPending"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `UPDATE users
			  SET premium_cancel_pending = TRUE
			  WHERE uid = $1 AND premium = TRUE`, userUID)
	if err != nil {
		return unavailable(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable(op, err)
	}
	if n > 0 {
		return nil
	}

	var exists bool
	if err = s.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE uid = $1)`, userUID).Scan(&exists); err != nil {
		return unavailable(op, err)
	}
	if !exists {
		return fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	return fmt.Errorf("%s: %w", op, models.ErrNoActiveSubscription)
}

// ResetExpiredPremium очищает подписку, если она истекла к моменту now.
// Условие повторяет правило истечения, поэтому параллельная повторная активация
// не затирается, а повторный сброс ничего не меняет. reset = false, если строка не изменилась.
func (s *Storage) ResetExpiredPremium(ctx context.Context, userUID string, now time.Time) (bool, error) {
	const op = "storage.ResetExpiredPremium"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	query := `UPDATE users
			  SET premium = FALSE,
			      premium_type = NULL,
			      premium_start_date = NULL,
			      premium_end_date = NULL,
			      premium_cancel_pending = FALSE
			  WHERE uid = $1
			    AND premium = TRUE
			    AND (premium_end_date IS NULL OR premium_end_date <= $2)`
	res, err := s.DB.ExecContext(ctx, query, userUID, now)
	if err != nil {
		return false, unavailable(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, unavailable(op, err)
	}
	return n > 0, nil
}

// FindPremiumDueForReset возвращает пользователей с запрошенной отменой,
// у которых период закончился к моменту now.
func (s *Storage) FindPremiumDueForReset(ctx context.Context, now time.Time) ([]*models.User, error) {
	const op = "storage.FindPremiumDueForReset"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE premium = TRUE
			    AND premium_cancel_pending = TRUE
			    AND premium_end_date <= $1
			  ORDER BY premium_end_date`
	rows, err := s.DB.QueryContext(ctx, query, now)
	if err != nil {
		return nil, unavailable(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, unavailable(op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, unavailable(op, err)
	}
	return result, nil
}
