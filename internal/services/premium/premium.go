// Package premium управляет жизненным циклом premium-подписки пользователя:
// активация, запрос отмены и сброс истёкшей подписки.
package premium

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/magabrotheeeer/parking-service/internal/cache"
	"github.com/magabrotheeeer/parking-service/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/parking-service/internal/lib/sl"
	"github.com/magabrotheeeer/parking-service/internal/metrics"
	"github.com/magabrotheeeer/parking-service/internal/models"
)

// Repository описывает операции хранилища, нужные менеджеру подписок.
type Repository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	SavePremium(ctx context.Context, userUID string, p models.Premium) error
	MarkPremiumCancelPending(ctx context.Context, userUID string) error
	ResetExpiredPremium(ctx context.Context, userUID string, now time.Time) (bool, error)
}

// CacheInvalidator сбрасывает закэшированный профиль.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, key string) error
}

// Publisher отправляет доменные события.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Event: событие жизненного цикла подписки.
type Event struct {
	UserID     string               `json:"user_id"`
	Status     models.PremiumStatus `json:"premium_status"`
	Type       models.PremiumType   `json:"premium_type"`
	EndDate    *time.Time           `json:"premium_end_date,omitempty"`
	OccurredAt time.Time            `json:"occurred_at"`
}

// Manager: единственный писатель полей подписки.
type Manager struct {
	repo      Repository
	cache     CacheInvalidator
	publisher Publisher
	clock     clockwork.Clock
	log       *slog.Logger
}

// NewManager создаёт менеджер. cache и publisher могут быть nil.
func NewManager(repo Repository, cache CacheInvalidator, publisher Publisher, clock clockwork.Clock, log *slog.Logger) *Manager {
	return &Manager{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		clock:     clock,
		log:       log,
	}
}

// ReconcileOne применяет правило истечения к снимку пользователя.
// Если подписка активна, а дата окончания отсутствует или наступила, возвращает
// пустую подписку и changed = true. Иначе возвращает подписку без изменений.
func ReconcileOne(user *models.User, now time.Time) (models.Premium, bool) {
	if user.Premium.ExpiredAt(now) {
		return models.NoPremium(), true
	}
	return user.Premium, false
}

// Activate включает подписку типа premiumType с текущего момента.
// Повторная активация начинает период заново и снимает запрос отмены.
func (m *Manager) Activate(ctx context.Context, userUID, premiumType string) (models.Premium, error) {
	const op = "premium.Activate"

	plan, err := models.ParsePremiumType(premiumType)
	if err != nil {
		return models.Premium{}, fmt.Errorf("%s: %w", op, err)
	}
	p, err := models.NewPremium(plan, m.clock.Now())
	if err != nil {
		return models.Premium{}, fmt.Errorf("%s: %w", op, err)
	}
	if err = m.repo.SavePremium(ctx, userUID, p); err != nil {
		return models.Premium{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.PremiumActivations.WithLabelValues(string(plan)).Inc()
	m.invalidate(ctx, userUID)
	m.publish(ctx, rabbitmq.RoutingPremiumActivated, m.event(userUID, p))
	m.log.Info("premium activated",
		sl.UserID(userUID),
		slog.String("premium_type", string(plan)),
		slog.Time("end_date", p.EndDate()))
	return p, nil
}

// RequestCancellation помечает активную подписку к отмене. Доступ сохраняется
// до конца периода. Устаревшая подписка сначала сбрасывается, затем запрос
// отклоняется с models.ErrNoActiveSubscription.
func (m *Manager) RequestCancellation(ctx context.Context, userUID string) (models.Premium, error) {
	const op = "premium.RequestCancellation"

	user, err := m.repo.GetUser(ctx, userUID)
	if err != nil {
		return models.Premium{}, fmt.Errorf("%s: %w", op, err)
	}
	if user.Premium.ExpiredAt(m.clock.Now()) {
		reset, err := m.ResetExpired(ctx, user, metrics.SourceLazy)
		if err != nil {
			return models.Premium{}, fmt.Errorf("%s: %w", op, err)
		}
		// Без сброса user уже перечитан: подписку могли продлить параллельно.
		if reset {
			return models.Premium{}, fmt.Errorf("%s: %w", op, models.ErrNoActiveSubscription)
		}
	}

	cancelled, err := user.Premium.Cancel()
	if err != nil {
		return models.Premium{}, fmt.Errorf("%s: %w", op, err)
	}
	if err = m.repo.MarkPremiumCancelPending(ctx, userUID); err != nil {
		return models.Premium{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.PremiumCancellations.Inc()
	m.invalidate(ctx, userUID)
	m.publish(ctx, rabbitmq.RoutingPremiumCancelRequested, m.event(userUID, cancelled))
	m.log.Info("premium cancellation requested",
		sl.UserID(userUID),
		slog.Time("end_date", cancelled.EndDate()))
	return cancelled, nil
}

// ResetExpired сбрасывает подписку пользователя, если она истекла.
// На успешный сброс user обновляется на месте. Если строку уже изменил
// другой процесс, актуальное состояние перечитывается из хранилища.
func (m *Manager) ResetExpired(ctx context.Context, user *models.User, source string) (bool, error) {
	const op = "premium.ResetExpired"

	now := m.clock.Now()
	next, changed := ReconcileOne(user, now)
	if !changed {
		return false, nil
	}

	reset, err := m.repo.ResetExpiredPremium(ctx, user.UUID, now)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if !reset {
		fresh, err := m.repo.GetUser(ctx, user.UUID)
		if err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		user.Premium = fresh.Premium
		return false, nil
	}

	expired := user.Premium
	user.Premium = next
	metrics.PremiumResets.WithLabelValues(source).Inc()
	m.invalidate(ctx, user.UUID)
	event := m.event(user.UUID, expired)
	event.Status = models.PremiumStatusNone
	m.publish(ctx, rabbitmq.RoutingPremiumExpired, event)
	m.log.Info("premium expired",
		sl.UserID(user.UUID),
		slog.String("source", source),
		slog.Time("end_date", expired.EndDate()))
	return true, nil
}

// Reconcile: ленивая проверка при входе и чтении профиля.
func (m *Manager) Reconcile(ctx context.Context, user *models.User) (*models.User, error) {
	const op = "premium.Reconcile"
	if _, err := m.ResetExpired(ctx, user, metrics.SourceLazy); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func (m *Manager) invalidate(ctx context.Context, userUID string) {
	if m.cache == nil {
		return
	}
	if err := m.cache.Invalidate(ctx, cache.UserKey(userUID)); err != nil {
		m.log.Warn("failed to invalidate profile cache", sl.UserID(userUID), sl.Err(err))
	}
}

func (m *Manager) event(userUID string, p models.Premium) Event {
	c := p.Columns()
	return Event{
		UserID:     userUID,
		Status:     p.Status(),
		Type:       c.Type,
		EndDate:    c.EndDate,
		OccurredAt: m.clock.Now(),
	}
}

func (m *Manager) publish(ctx context.Context, routingKey string, event Event) {
	if m.publisher == nil {
		return
	}
	if err := m.publisher.Publish(ctx, routingKey, event); err != nil && !errors.Is(err, context.Canceled) {
		m.log.Error("failed to publish premium event",
			sl.UserID(event.UserID),
			slog.String("routing_key", routingKey),
			sl.Err(err))
	}
}
