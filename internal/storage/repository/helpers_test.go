package repository

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var userTestColumns = []string{
	"uid", "email", "username", "phone_number", "password_hash", "avatar",
	"premium", "premium_type", "premium_start_date", "premium_end_date",
	"premium_cancel_pending", "created_at",
}

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewWithDB(db), mock
}

func plainUserRow(id string, created time.Time) []driver.Value {
	return []driver.Value{id, id + "@example.com", "user-" + id, "+7" + id, "hash", nil,
		false, nil, nil, nil, false, created}
}
