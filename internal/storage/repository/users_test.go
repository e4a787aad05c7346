package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/parking-service/internal/models"
	"github.com/magabrotheeeer/parking-service/internal/storage"
)

func TestStorage_CreateUser(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	input := models.User{Email: "a@example.com", Username: "alice", PhoneNumber: "+100", PasswordHash: "hash"}

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "created",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("INSERT INTO users").
					WithArgs("a@example.com", "alice", "+100", "hash").
					WillReturnRows(sqlmock.NewRows([]string{"uid", "created_at"}).AddRow("u-1", created))
			},
		},
		{
			name: "duplicate",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("INSERT INTO users").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"})
			},
			wantErr: storage.ErrUserExists,
		},
		{
			name: "db down",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("INSERT INTO users").WillReturnError(errors.New("connection refused"))
			},
			wantErr: storage.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMockStorage(t)
			tt.setup(mock)

			got, err := s.CreateUser(context.Background(), input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "u-1", got.UUID)
			assert.Equal(t, created, got.CreatedAt)
			assert.False(t, got.Premium.IsActive())
		})
	}
}

func TestStorage_GetUser(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	t.Run("premium row", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery("SELECT (.+) FROM users WHERE uid = \\$1").
			WithArgs("u-1").
			WillReturnRows(sqlmock.NewRows(userTestColumns).AddRow(
				"u-1", "a@example.com", "alice", "+100", "hash", "http://img",
				true, "month", start, end, true, created))

		u, err := s.GetUser(context.Background(), "u-1")
		require.NoError(t, err)
		assert.Equal(t, "http://img", u.Avatar)
		assert.Equal(t, models.PremiumStatusCancelPending, u.Premium.Status())
		assert.Equal(t, models.PremiumMonth, u.Premium.Type())
		assert.Equal(t, end, u.Premium.EndDate())
	})

	t.Run("plain row", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery("SELECT (.+) FROM users WHERE uid = \\$1").
			WithArgs("u-2").
			WillReturnRows(sqlmock.NewRows(userTestColumns).AddRow(plainUserRow("u-2", created)...))

		u, err := s.GetUser(context.Background(), "u-2")
		require.NoError(t, err)
		assert.Empty(t, u.Avatar)
		assert.Equal(t, models.PremiumNone, u.Premium.Type())
		assert.False(t, u.Premium.IsActive())
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery("SELECT (.+) FROM users").WillReturnRows(sqlmock.NewRows(userTestColumns))

		_, err := s.GetUser(context.Background(), "missing")
		require.ErrorIs(t, err, storage.ErrUserNotFound)
	})

	t.Run("cancelled context", func(t *testing.T) {
		s, _ := newMockStorage(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := s.GetUser(ctx, "u-1")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestStorage_GetUserByPhone(t *testing.T) {
	s, mock := newMockStorage(t)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM users WHERE phone_number = \\$1").
		WithArgs("+7u-3").
		WillReturnRows(sqlmock.NewRows(userTestColumns).AddRow(plainUserRow("u-3", created)...))

	u, err := s.GetUserByPhone(context.Background(), "+7u-3")
	require.NoError(t, err)
	assert.Equal(t, "u-3", u.UUID)
}

func TestStorage_ExistsUserBy(t *testing.T) {
	tests := []struct {
		field  models.UserField
		column string
	}{
		{models.UserFieldEmail, "email"},
		{models.UserFieldUsername, "username"},
		{models.UserFieldPhone, "phone_number"},
	}
	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			s, mock := newMockStorage(t)
			mock.ExpectQuery("WHERE " + tt.column + " = \\$1").
				WithArgs("value").
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

			exists, err := s.ExistsUserBy(context.Background(), tt.field, "value")
			require.NoError(t, err)
			assert.True(t, exists)
		})
	}

	t.Run("unknown field", func(t *testing.T) {
		s, _ := newMockStorage(t)
		_, err := s.ExistsUserBy(context.Background(), models.UserField("role; DROP TABLE users"), "x")
		require.Error(t, err)
	})
}

func TestStorage_UpdateAvatarAndPassword(t *testing.T) {
	t.Run("avatar updated", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectExec("UPDATE users SET avatar").
			WithArgs("u-1", "data:image/png;base64,AAAA").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.UpdateAvatar(context.Background(), "u-1", "data:image/png;base64,AAAA"))
	})

	t.Run("avatar user missing", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectExec("UPDATE users SET avatar").WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.UpdateAvatar(context.Background(), "u-1", "x")
		require.ErrorIs(t, err, storage.ErrUserNotFound)
	})

	t.Run("password db error", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectExec("UPDATE users SET password_hash").WillReturnError(errors.New("timeout"))

		err := s.UpdatePassword(context.Background(), "u-1", "hash")
		require.ErrorIs(t, err, storage.ErrUnavailable)
	})
}
