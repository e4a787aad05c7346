package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/magabrotheeeer/parking-service/internal/lib/jwt"
	"github.com/magabrotheeeer/parking-service/internal/lib/password"
	"github.com/magabrotheeeer/parking-service/internal/models"
	"github.com/magabrotheeeer/parking-service/internal/services/auth"
	"github.com/magabrotheeeer/parking-service/internal/storage"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) ExistsUserBy(ctx context.Context, field models.UserField, value string) (bool, error) {
	args := m.Called(ctx, field, value)
	return args.Bool(0), args.Error(1)
}

type ReconcilerMock struct {
	mock.Mock
}

func (m *ReconcilerMock) Reconcile(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

func expectFree(r *UserRepoMock, fields ...models.UserField) {
	for _, f := range fields {
		r.On("ExistsUserBy", mock.Anything, f, mock.Anything).Return(false, nil).Once()
	}
}

func TestService_Register(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantErr    error
	}{
		{
			name: "successful registration",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				expectFree(r, models.UserFieldEmail, models.UserFieldUsername, models.UserFieldPhone)
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Email == "test@example.com" &&
						u.Username == "testuser" &&
						u.PhoneNumber == "+31600000000" &&
						u.PasswordHash != "" && u.PasswordHash != "password123" &&
						!u.Premium.IsActive()
				})).Return(&models.User{UUID: "u-1", Email: "test@example.com"}, nil).Once()
				j.On("GenerateToken", "u-1").Return("token", nil).Once()
			},
		},
		{
			name: "email taken",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("ExistsUserBy", mock.Anything, models.UserFieldEmail, "test@example.com").Return(true, nil).Once()
			},
			wantErr: auth.ErrEmailTaken,
		},
		{
			name: "username taken",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				expectFree(r, models.UserFieldEmail)
				r.On("ExistsUserBy", mock.Anything, models.UserFieldUsername, "testuser").Return(true, nil).Once()
			},
			wantErr: auth.ErrUsernameTaken,
		},
		{
			name: "phone taken",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				expectFree(r, models.UserFieldEmail, models.UserFieldUsername)
				r.On("ExistsUserBy", mock.Anything, models.UserFieldPhone, "+31600000000").Return(true, nil).Once()
			},
			wantErr: auth.ErrPhoneTaken,
		},
		{
			name: "lost race on insert",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				expectFree(r, models.UserFieldEmail, models.UserFieldUsername, models.UserFieldPhone)
				r.On("CreateUser", mock.Anything, mock.Anything).Return(nil, storage.ErrUserExists).Once()
			},
			wantErr: storage.ErrUserExists,
		},
		{
			name: "repository error",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("ExistsUserBy", mock.Anything, mock.Anything, mock.Anything).Return(false, storage.ErrUnavailable).Once()
			},
			wantErr: storage.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			svc := auth.NewService(repo, new(ReconcilerMock), jwtMock)
			tt.setupMocks(repo, jwtMock)

			token, user, err := svc.Register(context.Background(), "test@example.com", "testuser", "+31600000000", "password123")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "token", token)
				assert.Equal(t, "u-1", user.UUID)
			}
			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestService_Register_MissingFields(t *testing.T) {
	svc := auth.NewService(new(UserRepoMock), new(ReconcilerMock), new(JwtMakerMock))

	_, _, err := svc.Register(context.Background(), "a@b.c", " ", "+1", "pw")
	require.ErrorIs(t, err, auth.ErrMissingFields)

	_, _, err = svc.Register(context.Background(), "a@b.c", "user", "+1", "")
	require.ErrorIs(t, err, auth.ErrMissingFields)
}

func TestService_Login(t *testing.T) {
	rawPassword := "correctpassword"
	hash, err := password.Hash(rawPassword)
	require.NoError(t, err)

	t.Run("successful login reconciles before issuing token", func(t *testing.T) {
		repo := new(UserRepoMock)
		rec := new(ReconcilerMock)
		jwtMock := new(JwtMakerMock)
		svc := auth.NewService(repo, rec, jwtMock)

		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		stored := &models.User{
			UUID:         "u-1",
			PasswordHash: hash,
			Premium: models.RestorePremium(models.PremiumColumns{
				Premium: true, Type: models.PremiumMonth, StartDate: &start, EndDate: &end,
			}),
		}
		reset := &models.User{UUID: "u-1", PasswordHash: hash, Premium: models.NoPremium()}

		repo.On("GetUserByPhone", mock.Anything, "+100").Return(stored, nil).Once()
		rec.On("Reconcile", mock.Anything, stored).Return(reset, nil).Once()
		jwtMock.On("GenerateToken", "u-1").Return("token", nil).Once()

		token, user, err := svc.Login(context.Background(), "+100", rawPassword)
		require.NoError(t, err)
		assert.Equal(t, "token", token)
		assert.False(t, user.Premium.IsActive())

		repo.AssertExpectations(t)
		rec.AssertExpectations(t)
		jwtMock.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(UserRepoMock)
		rec := new(ReconcilerMock)
		svc := auth.NewService(repo, rec, new(JwtMakerMock))
		repo.On("GetUserByPhone", mock.Anything, "+100").Return(&models.User{UUID: "u-1", PasswordHash: hash}, nil).Once()

		_, _, err := svc.Login(context.Background(), "+100", "wrong")
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
		rec.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything)
	})

	t.Run("unknown phone", func(t *testing.T) {
		repo := new(UserRepoMock)
		svc := auth.NewService(repo, new(ReconcilerMock), new(JwtMakerMock))
		repo.On("GetUserByPhone", mock.Anything, "+999").Return(nil, storage.ErrUserNotFound).Once()

		_, _, err := svc.Login(context.Background(), "+999", rawPassword)
		require.ErrorIs(t, err, storage.ErrUserNotFound)
	})

	t.Run("reconcile failure blocks the token", func(t *testing.T) {
		repo := new(UserRepoMock)
		rec := new(ReconcilerMock)
		jwtMock := new(JwtMakerMock)
		svc := auth.NewService(repo, rec, jwtMock)
		u := &models.User{UUID: "u-1", PasswordHash: hash}
		repo.On("GetUserByPhone", mock.Anything, "+100").Return(u, nil).Once()
		rec.On("Reconcile", mock.Anything, u).Return(nil, storage.ErrUnavailable).Once()

		_, _, err := svc.Login(context.Background(), "+100", rawPassword)
		require.ErrorIs(t, err, storage.ErrUnavailable)
		jwtMock.AssertNotCalled(t, "GenerateToken", mock.Anything)
	})

	t.Run("missing phone", func(t *testing.T) {
		svc := auth.NewService(new(UserRepoMock), new(ReconcilerMock), new(JwtMakerMock))
		_, _, err := svc.Login(context.Background(), "", rawPassword)
		require.ErrorIs(t, err, auth.ErrMissingFields)
	})
}

func TestService_ValidateToken(t *testing.T) {
	t.Run("with real maker", func(t *testing.T) {
		maker := customjwt.NewJWTMaker("secret", time.Hour)
		svc := auth.NewService(new(UserRepoMock), new(ReconcilerMock), maker)

		token, err := maker.GenerateToken("u-1")
		require.NoError(t, err)

		userID, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "u-1", userID)

		_, err = svc.ValidateToken("garbage")
		require.ErrorIs(t, err, customjwt.ErrInvalidToken)
	})

	t.Run("parse error propagates", func(t *testing.T) {
		jwtMock := new(JwtMakerMock)
		svc := auth.NewService(new(UserRepoMock), new(ReconcilerMock), jwtMock)
		jwtMock.On("ParseToken", "bad").Return(nil, errors.Join(customjwt.ErrInvalidToken, errors.New("expired"))).Once()

		_, err := svc.ValidateToken("bad")
		require.ErrorIs(t, err, customjwt.ErrInvalidToken)
	})
}
