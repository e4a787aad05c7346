// Package users реализует операции с профилем пользователя.
// Профиль кэшируется в Redis и сверяется с правилом истечения подписки при чтении.
package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/magabrotheeeer/parking-service/internal/cache"
	"github.com/magabrotheeeer/parking-service/internal/lib/password"
	"github.com/magabrotheeeer/parking-service/internal/lib/sl"
	"github.com/magabrotheeeer/parking-service/internal/models"
)

// ErrAvatarRequired: пустой аватар.
var ErrAvatarRequired = errors.New("avatar is required")

// Repository описывает операции хранилища с пользователями.
type Repository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	UpdateAvatar(ctx context.Context, userUID, avatar string) error
	UpdatePassword(ctx context.Context, userUID, passwordHash string) error
	ListTickets(ctx context.Context, userUID string) ([]*models.Ticket, error)
}

// Cache описывает кэш профилей.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Reconciler сбрасывает истёкшую подписку.
type Reconciler interface {
	Reconcile(ctx context.Context, user *models.User) (*models.User, error)
}

// Service: операции с профилем текущего пользователя.
type Service struct {
	repo       Repository
	cache      Cache
	reconciler Reconciler
	clock      clockwork.Clock
	cacheTTL   time.Duration
	log        *slog.Logger
}

// NewService создаёт сервис профилей.
func NewService(repo Repository, cache Cache, reconciler Reconciler, clock clockwork.Clock, cacheTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		cache:      cache,
		reconciler: reconciler,
		clock:      clock,
		cacheTTL:   cacheTTL,
		log:        log,
	}
}

// Profile возвращает профиль пользователя без хэша пароля.
// Закэшированный профиль с истёкшей подпиской не отдаётся: он перечитывается и сверяется.
func (s *Service) Profile(ctx context.Context, userUID string) (models.PublicUser, error) {
	const op = "users.Profile"
	key := cache.UserKey(userUID)

	var cached models.PublicUser
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("profile cache read failed", sl.UserID(userUID), sl.Err(err))
	}
	if found && !cached.Premium.ExpiredAt(s.clock.Now()) {
		return cached, nil
	}

	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("%s: %w", op, err)
	}
	user, err = s.reconciler.Reconcile(ctx, user)
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("%s: %w", op, err)
	}

	profile := user.Public()
	if err = s.cache.Set(ctx, key, profile, s.cacheTTL); err != nil {
		s.log.Warn("profile cache write failed", sl.UserID(userUID), sl.Err(err))
	}
	return profile, nil
}

// UpdateAvatar сохраняет аватар (URL или строку base64).
func (s *Service) UpdateAvatar(ctx context.Context, userUID, avatar string) error {
	const op = "users.UpdateAvatar"
	avatar = strings.TrimSpace(avatar)
	if avatar == "" {
		return fmt.Errorf("%s: %w", op, ErrAvatarRequired)
	}
	if err := s.repo.UpdateAvatar(ctx, userUID, avatar); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, userUID)
	return nil
}

// ChangePassword заменяет пароль пользователя.
func (s *Service) ChangePassword(ctx context.Context, userUID, newPassword string) error {
	const op = "users.ChangePassword"
	hashed, err := password.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = s.repo.UpdatePassword(ctx, userUID, hashed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, userUID)
	return nil
}

// Tickets возвращает билеты пользователя.
func (s *Service) Tickets(ctx context.Context, userUID string) ([]*models.Ticket, error) {
	const op = "users.Tickets"
	tickets, err := s.repo.ListTickets(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tickets, nil
}

func (s *Service) invalidate(ctx context.Context, userUID string) {
	if err := s.cache.Invalidate(ctx, cache.UserKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate profile cache", sl.UserID(userUID), sl.Err(err))
	}
}
