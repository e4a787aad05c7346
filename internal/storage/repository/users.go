package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/parking-service/internal/models"
	"github.com/magabrotheeeer/parking-service/internal/storage"
)

const userColumns = `uid, email, username, phone_number, password_hash, avatar,
			      premium, premium_type, premium_start_date, premium_end_date,
			      premium_cancel_pending, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u                   models.User
		avatar, premiumType sql.NullString
		start, end          sql.NullTime
		cols                models.PremiumColumns
	)
	if err := row.Scan(&u.UUID, &u.Email, &u.Username, &u.PhoneNumber, &u.PasswordHash, &avatar,
		&cols.Premium, &premiumType, &start, &end, &cols.CancelPending, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Avatar = avatar.String
	cols.Type = models.PremiumNone
	if premiumType.Valid {
		cols.Type = models.PremiumType(premiumType.String)
	}
	if start.Valid {
		cols.StartDate = &start.Time
	}
	if end.Valid {
		cols.EndDate = &end.Time
	}
	u.Premium = models.RestorePremium(cols)
	return &u, nil
}

// CreateUser сохраняет нового пользователя без подписки и возвращает его с присвоенным UID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.CreateUser"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO users (email, username, phone_number, password_hash)
			  VALUES ($1, $2, $3, $4)
			  RETURNING uid, created_at`
	err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PhoneNumber, user.PasswordHash).Scan(&user.UUID, &user.CreatedAt)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			return nil, fmt.Errorf("%s: %w (%s)", op, storage.ErrUserExists, constraint)
		}
		return nil, unavailable(op, err)
	}
	user.Premium = models.NoPremium()
	return &user, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return nil, unavailable(op, err)
	}
	return u, nil
}

// GetUserByPhone возвращает пользователя по номеру телефона.
func (s *Storage) GetUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error) {
	const op = "storage.GetUserByPhone"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, phoneNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return nil, unavailable(op, err)
	}
	return u, nil
}

// ExistsUserBy проверяет, занято ли значение уникального поля.
func (s *Storage) ExistsUserBy(ctx context.Context, field models.UserField, value string) (bool, error) {
	const op = "storage.ExistsUserBy"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	var column string
	switch field {
	case models.UserFieldEmail:
		column = "email"
	case models.UserFieldUsername:
		column = "username"
	case models.UserFieldPhone:
		column = "phone_number"
	default:
		return false, fmt.Errorf("%s: unknown field %q", op, field)
	}

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE ` + column + ` = $1)`
	if err := s.DB.QueryRowContext(ctx, query, value).Scan(&exists); err != nil {
		return false, unavailable(op, err)
	}
	return exists, nil
}

// UpdateAvatar заменяет аватар пользователя.
func (s *Storage) UpdateAvatar(ctx context.Context, userUID, avatar string) error {
	const op = "storage.UpdateAvatar"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `UPDATE users SET avatar = $2 WHERE uid = $1`, userUID, avatar)
	return expectOneRow(op, res, err, storage.ErrUserNotFound)
}

// UpdatePassword заменяет хэш пароля пользователя.
func (s *Storage) UpdatePassword(ctx context.Context, userUID, passwordHash string) error {
	const op = "storage.UpdatePassword"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `UPDATE users SET password_hash = $2 WHERE uid = $1`, userUID, passwordHash)
	return expectOneRow(op, res, err, storage.ErrUserNotFound)
}

func expectOneRow(op string, res sql.Result, err error, notFound error) error {
	if err != nil {
		return unavailable(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, notFound)
	}
	return nil
}
