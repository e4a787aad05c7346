// Package premiumsweeper собирает процесс плановой сверки premium-подписок.
package premiumsweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/parking-service/internal/cache"
	"github.com/magabrotheeeer/parking-service/internal/config"
	"github.com/magabrotheeeer/parking-service/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/parking-service/internal/lib/sl"
	"github.com/magabrotheeeer/parking-service/internal/services/premium"
	"github.com/magabrotheeeer/parking-service/internal/services/scheduler"
	"github.com/magabrotheeeer/parking-service/internal/storage/repository"
)

const (
	dbReadyAttempts = 10
	dbReadyDelay    = 3 * time.Second
)

// App представляет приложение планировщика.
type App struct {
	sweeper    *scheduler.Sweeper
	schedule   string
	location   *time.Location
	runOnStart bool
	db         *repository.Storage
	cache      *cache.Cache
	conn       *amqp.Connection
	ch         *amqp.Channel
	logger     *slog.Logger
}

func waitForDB(ctx context.Context, db *repository.Storage, logger *slog.Logger) error {
	var err error
	for range dbReadyAttempts {
		if err = db.CheckDatabaseReady(ctx); err == nil {
			return nil
		}
		logger.Warn("database is not ready yet", sl.Err(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dbReadyDelay):
		}
	}
	return fmt.Errorf("database not ready after retries: %w", err)
}

// New создает новый экземпляр приложения планировщика.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	loc, err := time.LoadLocation(cfg.Sweeper.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid sweeper timezone: %w", err)
	}

	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}
	if err = waitForDB(ctx, db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache not initialized: %w", err)
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		_ = cacheRedis.Close()
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.Exchange, rabbitmq.GetPremiumQueues())
	if err != nil {
		_ = conn.Close()
		_ = cacheRedis.Close()
		_ = db.Close()
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	clock := clockwork.NewRealClock()
	manager := premium.NewManager(db, cacheRedis, rabbitmq.NewPublisher(ch, rabbitmq.Exchange), clock, logger)

	return &App{
		sweeper:    scheduler.NewSweeper(db, manager, clock, logger),
		schedule:   cfg.Sweeper.Schedule,
		location:   loc,
		runOnStart: !cfg.Sweeper.SkipOnStart,
		db:         db,
		cache:      cacheRedis,
		conn:       conn,
		ch:         ch,
		logger:     logger,
	}, nil
}

// Run запускает планировщик и блокируется до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	err := a.sweeper.Run(ctx, a.schedule, a.location, a.runOnStart)

	a.logger.Info("shutting down premium sweeper")
	if cErr := a.ch.Close(); cErr != nil {
		a.logger.Error("failed to close channel", sl.Err(cErr))
	}
	if cErr := a.conn.Close(); cErr != nil {
		a.logger.Error("failed to close connection", sl.Err(cErr))
	}
	if cErr := a.cache.Close(); cErr != nil {
		a.logger.Error("failed to close redis", sl.Err(cErr))
	}
	if cErr := a.db.Close(); cErr != nil {
		a.logger.Error("failed to close storage", sl.Err(cErr))
	}
	return err
}
