// Package auth содержит регистрацию, вход по номеру телефона и проверку токенов сессии.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/parking-service/internal/lib/jwt"
	"github.com/magabrotheeeer/parking-service/internal/lib/password"
	"github.com/magabrotheeeer/parking-service/internal/models"
)

var (
	ErrEmailTaken         = errors.New("email is already in use")
	ErrUsernameTaken      = errors.New("username is already in use")
	ErrPhoneTaken         = errors.New("phone number is already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("required fields are missing")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его с присвоенным UID.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)

	// GetUserByPhone возвращает пользователя по номеру телефона или storage.ErrUserNotFound.
	GetUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error)

	// ExistsUserBy проверяет, занято ли значение уникального поля.
	ExistsUserBy(ctx context.Context, field models.UserField, value string) (bool, error)
}

// Reconciler сбрасывает истёкшую подписку до выдачи токена.
type Reconciler interface {
	Reconcile(ctx context.Context, user *models.User) (*models.User, error)
}

// Service отвечает за регистрацию, авторизацию и валидацию JWT.
type Service struct {
	users      UserRepository
	reconciler Reconciler
	jwtMaker   jwt.Maker
}

// NewService создает новый экземпляр Service.
func NewService(users UserRepository, reconciler Reconciler, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:      users,
		reconciler: reconciler,
		jwtMaker:   jwtMaker,
	}
}

// Register создаёт пользователя без подписки и сразу выдаёт ему токен.
// Email, username и телефон проверяются на уникальность по отдельности.
func (s *Service) Register(ctx context.Context, email, username, phoneNumber, rawPassword string) (string, *models.User, error) {
	const op = "auth.Register"

	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	phoneNumber = strings.TrimSpace(phoneNumber)
	if email == "" || username == "" || phoneNumber == "" || rawPassword == "" {
		return "", nil, fmt.Errorf("%s: %w", op, ErrMissingFields)
	}

	checks := []struct {
		field models.UserField
		value string
		err   error
	}{
		{models.UserFieldEmail, email, ErrEmailTaken},
		{models.UserFieldUsername, username, ErrUsernameTaken},
		{models.UserFieldPhone, phoneNumber, ErrPhoneTaken},
	}
	for _, c := range checks {
		taken, err := s.users.ExistsUserBy(ctx, c.field, c.value)
		if err != nil {
			return "", nil, fmt.Errorf("%s: %w", op, err)
		}
		if taken {
			return "", nil, fmt.Errorf("%s: %w", op, c.err)
		}
	}

	hashed, err := password.Hash(rawPassword)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	user, err := s.users.CreateUser(ctx, models.User{
		Email:        email,
		Username:     username,
		PhoneNumber:  phoneNumber,
		PasswordHash: hashed,
		Premium:      models.NoPremium(),
	})
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(user.UUID)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// Login проверяет пароль, сбрасывает истёкшую подписку и выдаёт токен.
func (s *Service) Login(ctx context.Context, phoneNumber, rawPassword string) (string, *models.User, error) {
	const op = "auth.Login"

	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return "", nil, fmt.Errorf("%s: %w", op, ErrMissingFields)
	}

	user, err := s.users.GetUserByPhone(ctx, phoneNumber)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = password.Compare(user.PasswordHash, rawPassword); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err = s.reconciler.Reconcile(ctx, user)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(user.UUID)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// ValidateToken проверяет JWT и возвращает идентификатор пользователя.
// Любая ошибка проверки оборачивает jwt.ErrInvalidToken.
func (s *Service) ValidateToken(token string) (string, error) {
	const op = "auth.ValidateToken"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return claims.UserID, nil
}
