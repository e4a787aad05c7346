// Package scheduler запускает ежедневную сверку premium-подписок.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"

	"github.com/magabrotheeeer/parking-service/internal/lib/sl"
	"github.com/magabrotheeeer/parking-service/internal/metrics"
	"github.com/magabrotheeeer/parking-service/internal/models"
)

// Repository находит подписки, которые пора сбросить.
type Repository interface {
	FindPremiumDueForReset(ctx context.Context, now time.Time) ([]*models.User, error)
}

// Resetter сбрасывает истёкшую подписку одного пользователя.
type Resetter interface {
	ResetExpired(ctx context.Context, user *models.User, source string) (bool, error)
}

// Result: итог одного прохода.
type Result struct {
	Found   int // пользователей попало в выборку
	Reset   int // подписок сброшено
	Skipped int // строка уже изменена другим процессом
	Failed  int // сброс завершился ошибкой
}

// Sweeper сбрасывает подписки с запрошенной отменой, срок которых закончился.
// Подписки без запроса отмены не трогаются: продления в системе нет.
type Sweeper struct {
	repo     Repository
	resetter Resetter
	clock    clockwork.Clock
	log      *slog.Logger
}

// NewSweeper создаёт планировщик сверки.
func NewSweeper(repo Repository, resetter Resetter, clock clockwork.Clock, log *slog.Logger) *Sweeper {
	return &Sweeper{
		repo:     repo,
		resetter: resetter,
		clock:    clock,
		log:      log,
	}
}

// Sweep выполняет один проход. Ошибка выборки делает проход пустым, он повторится
// при следующем запуске. Ошибка по одному пользователю не прерывает проход.
func (s *Sweeper) Sweep(ctx context.Context) (Result, error) {
	const op = "scheduler.Sweep"
	started := time.Now()
	defer func() { metrics.SweepDuration.Observe(time.Since(started).Seconds()) }()

	var res Result
	now := s.clock.Now()
	s.log.Info("starting premium sweep", slog.Time("now", now))

	users, err := s.repo.FindPremiumDueForReset(ctx, now)
	if err != nil {
		metrics.SweepRuns.WithLabelValues("failed").Inc()
		s.log.Error("failed to find expired subscriptions", sl.Err(err))
		return res, fmt.Errorf("%s: %w", op, err)
	}
	res.Found = len(users)
	if len(users) == 0 {
		metrics.SweepRuns.WithLabelValues("ok").Inc()
		s.log.Info("no expired subscriptions found")
		return res, nil
	}

	for _, u := range users {
		if err = ctx.Err(); err != nil {
			metrics.SweepRuns.WithLabelValues("interrupted").Inc()
			return res, fmt.Errorf("%s: %w", op, err)
		}
		reset, err := s.resetter.ResetExpired(ctx, u, metrics.SourceSweep)
		switch {
		case err != nil:
			res.Failed++
			metrics.SweepUserFailures.Inc()
			s.log.Error("failed to reset premium", sl.UserID(u.UUID), sl.Err(err))
		case reset:
			res.Reset++
		default:
			res.Skipped++
		}
	}

	metrics.SweepRuns.WithLabelValues("ok").Inc()
	s.log.Info("premium sweep finished",
		slog.Int("found", res.Found),
		slog.Int("reset", res.Reset),
		slog.Int("skipped", res.Skipped),
		slog.Int("failed", res.Failed))
	return res, nil
}

// Run запускает Sweep по cron-расписанию в часовом поясе loc и блокируется до отмены ctx.
// При runOnStart первый проход выполняется сразу. Проходы не перекрываются.
func (s *Sweeper) Run(ctx context.Context, schedule string, loc *time.Location, runOnStart bool) error {
	const op = "scheduler.Run"

	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(schedule, func() { _, _ = s.Sweep(ctx) }); err != nil {
		return fmt.Errorf("%s: invalid schedule %q: %w", op, schedule, err)
	}

	if runOnStart {
		_, _ = s.Sweep(ctx)
	}

	c.Start()
	s.log.Info("premium sweeper started", slog.String("schedule", schedule), slog.String("timezone", loc.String()))

	<-ctx.Done()
	<-c.Stop().Done()
	s.log.Info("premium sweeper stopped")
	return nil
}
