package cancel

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/parking-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/parking-service/internal/models"
	"github.com/magabrotheeeer/parking-service/internal/storage"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) RequestCancellation(ctx context.Context, userUID string) (models.Premium, error) {
	args := m.Called(ctx, userUID)
	return args.Get(0).(models.Premium), args.Error(1)
}

func TestCancelHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	active, err := models.NewPremium(models.PremiumYear, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	pending, err := active.Cancel()
	require.NoError(t, err)

	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "отмена запрошена",
			setupMock: func(m *MockService) {
				m.On("RequestCancellation", mock.Anything, "u-1").Return(pending, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"premium_cancel_pending":true`,
		},
		{
			name: "нет подписки",
			setupMock: func(m *MockService) {
				m.On("RequestCancellation", mock.Anything, "u-1").Return(models.Premium{}, models.ErrNoActiveSubscription)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `no active premium subscription`,
		},
		{
			name: "пользователь не найден",
			setupMock: func(m *MockService) {
				m.On("RequestCancellation", mock.Anything, "u-1").Return(models.Premium{}, storage.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `user not found`,
		},
		{
			name: "ошибка хранилища",
			setupMock: func(m *MockService) {
				m.On("RequestCancellation", mock.Anything, "u-1").Return(models.Premium{}, storage.ErrUnavailable)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `internal server error`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodPost, "/users/me/premium/cancel", nil)
			req = req.WithContext(middlewarectx.WithUserID(req.Context(), "u-1"))
			rr := httptest.NewRecorder()

			New(logger, mockService).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
