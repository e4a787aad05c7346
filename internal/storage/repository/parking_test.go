package repository

import (
	"context"
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

func TestStorage_CreateVehicle(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	v := models.Vehicle{UserID: "u-1", Brand: "Lada", Model: "Vesta", Year: 2020, Plate: "A123BC"}

	t.Run("created", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery("INSERT INTO vehicles").
			WithArgs("u-1", "Lada", "Vesta", 2020, "A123BC", nil).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("v-1", created))

		got, err := s.CreateVehicle(context.Background(), v)
		require.NoError(t, err)
		assert.Equal(t, "v-1", got.ID)
		assert.Equal(t, "u-1", got.UserID)
	})

	t.Run("plate taken", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery("INSERT INTO vehicles").
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "vehicles_plate_key"})

		_, err := s.CreateVehicle(context.Background(), v)
		require.ErrorIs(t, err, storage.ErrPlateExists)
	})
}

func TestStorage_ListVehicles(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s, mock := newMockStorage(t)
	mock.ExpectQuery("FROM vehicles\\s+WHERE user_uid = \\$1").
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_uid", "brand", "model", "year", "plate", "color", "created_at"}).
			AddRow("v-1", "u-1", "Lada", "Vesta", 2020, "A123BC", "white", created).
			AddRow("v-2", "u-1", "Kia", "Rio", 2018, "B456CD", nil, created))

	got, err := s.ListVehicles(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "white", got[0].Color)
	assert.Empty(t, got[1].Color)
}

func TestStorage_RemoveVehicle(t *testing.T) {
	t.Run("removed", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectExec("DELETE FROM vehicles WHERE id = \\$1 AND user_uid = \\$2").
			WithArgs("v-1", "u-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.RemoveVehicle(context.Background(), "u-1", "v-1"))
	})

	t.Run("foreign or missing", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectExec("DELETE FROM vehicles").WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.RemoveVehicle(context.Background(), "u-2", "v-1")
		require.ErrorIs(t, err, storage.ErrVehicleNotFound)
	})
}

func TestStorage_Tickets(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("create", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery("INSERT INTO tickets").
			WithArgs("u-1", "hourly", int64(15000), 1, "Main st. 1", 60).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("t-1", created))

		got, err := s.CreateTicket(context.Background(), models.Ticket{
			UserID: "u-1", Type: "hourly", Price: 15000, Availability: 1,
			Location: "Main st. 1", DurationMinutes: 60,
		})
		require.NoError(t, err)
		assert.Equal(t, "t-1", got.ID)
	})

	t.Run("list", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery("FROM tickets").
			WithArgs("u-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_uid", "type", "price", "availability", "location", "duration_minutes", "created_at"}).
				AddRow("t-1", "u-1", "daily", int64(50000), 2, nil, nil, created))

		got, err := s.ListTickets(context.Background(), "u-1")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(50000), got[0].Price)
		assert.Zero(t, got[0].DurationMinutes)
	})

	t.Run("list empty is not nil", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery("FROM tickets").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_uid", "type", "price", "availability", "location", "duration_minutes", "created_at"}))

		got, err := s.ListTickets(context.Background(), "u-1")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
