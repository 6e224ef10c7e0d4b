package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"campus-webapps/internal/config"
	"campus-webapps/internal/logging"
	"campus-webapps/internal/model"
	mysqlClient "campus-webapps/internal/platform/mysql"
	rabbitmqClient "campus-webapps/internal/platform/rabbitmq"
	redisClient "campus-webapps/internal/platform/redis"
	"campus-webapps/internal/repository"
	"campus-webapps/internal/session"
	"campus-webapps/internal/view"
	"campus-webapps/internal/worker"
)

// App holds the process-wide resources of one server binary. Fields that a
// binary does not use stay nil.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	MySQL    *gorm.DB
	Renderer view.Renderer

	Redis        *redis.Client
	SessionStore session.Store

	MQConn      *amqp.Connection
	Events      *rabbitmqClient.EventPublisher
	EventWorker *worker.AuthEventWorker

	StartedAt time.Time

	// stops background loops owned by the app
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewAuth wires the user registration and login app.
func NewAuth(ctx context.Context) (*App, error) {
	a, err := newBase(ctx, func(cfg *config.Config) string { return cfg.MySQLDSN() },
		&model.User{}, &model.AuthEvent{})
	if err != nil {
		return nil, err
	}

	if err := a.openSessionStore(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	if err := a.openEvents(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// NewStudents wires the student records app.
func NewStudents(ctx context.Context) (*App, error) {
	return newBase(ctx, func(cfg *config.Config) string { return cfg.StudentDSN() },
		&model.Student{})
}

func newBase(ctx context.Context, dsn func(*config.Config) string, models ...any) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	logger := logging.New(cfg.Log)

	renderer, err := view.NewTemplates()
	if err != nil {
		return nil, err
	}

	mysqlDB, err := mysqlClient.New(ctx, dsn(cfg))
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(models...); err != nil {
		closeGorm(mysqlDB)
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	return &App{
		Config:    cfg,
		Logger:    logger,
		MySQL:     mysqlDB,
		Renderer:  renderer,
		StartedAt: time.Now(),
	}, nil
}

func (a *App) openSessionStore(ctx context.Context) error {
	switch a.Config.Session.Driver {
	case config.SessionDriverMemory:
		store := session.NewMemoryStore()
		a.SessionStore = store
		runCtx, cancel := context.WithCancel(context.Background())
		a.cancel = cancel
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			store.RunSweeper(runCtx, a.Config.SweepInterval())
		}()
		a.Logger.Warn("using in-memory session store; sessions are lost on restart")
	default:
		redisCli, err := redisClient.New(ctx, a.Config.Redis)
		if err != nil {
			return err
		}
		a.Redis = redisCli
		a.SessionStore = session.NewRedisStore(redisCli, a.Config.Redis.KeyPrefix)
	}
	return nil
}

func (a *App) openEvents(ctx context.Context) error {
	if !a.Config.RabbitMQ.Enabled {
		return nil
	}

	mqConn, err := rabbitmqClient.New(ctx, a.Config.RabbitMQ.URL)
	if err != nil {
		return err
	}
	a.MQConn = mqConn
	a.Events = rabbitmqClient.NewEventPublisher(mqConn, a.Config.RabbitMQ.AuthEventQueue)

	eventRepo := repository.NewAuthEventRepository(a.MySQL)
	a.EventWorker = worker.NewAuthEventWorker(mqConn, eventRepo, a.Config.RabbitMQ.AuthEventQueue, a.Logger)
	if err := a.EventWorker.Start(context.Background()); err != nil {
		return fmt.Errorf("start auth event worker failed: %w", err)
	}
	return nil
}

func (a *App) Close() error {
	var errs []error
	if a.cancel != nil {
		a.cancel()
	}
	a.wg.Wait()

	if a.EventWorker != nil {
		a.EventWorker.Close()
	}
	if a.Events != nil {
		if err := a.Events.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.MQConn != nil && !a.MQConn.IsClosed() {
		if err := a.MQConn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func closeGorm(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

