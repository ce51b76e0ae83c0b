package http

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"loginapp/internal/adapter/cache/redis"
	"loginapp/internal/adapter/crypto"
	"loginapp/internal/adapter/database"
	"loginapp/internal/adapter/database/memory"
	"loginapp/internal/adapter/database/postgres"
	pgrepository "loginapp/internal/adapter/database/postgres/repository"
	"loginapp/internal/adapter/database/sqlite"
	sqliterepository "loginapp/internal/adapter/database/sqlite/repository"
	"loginapp/internal/adapter/http/handler"
	"loginapp/internal/adapter/http/validation"
	"loginapp/internal/adapter/token"
	"loginapp/internal/core/port"
	"loginapp/internal/core/service"
	"loginapp/internal/core/telemetry"
	"loginapp/pkg/config"
)

type Container struct {
	UserRepo       port.UserRepository
	TokenPersister port.TokenPersister

	AuthUseCase         *service.AuthService
	RegistrationUseCase *service.RegistrationService

	AuthHandler *handler.AuthHandler
	UserHandler *handler.UserHandler

	closers []io.Closer
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Observability is optional. A nil Probe or Metrics disables the matching
// instrumentation.
type Observability struct {
	Probe   port.Telemetry
	Metrics *telemetry.AppMetrics
	Logger  *zap.Logger
}

// NewContainer wires storage, token persistence and services from cfg.
// A misconfigured service is reported as an error instead of surfacing on
// the first request.
func NewContainer(ctx context.Context, cfg *config.AppConfig, obs Observability) (*Container, error) {
	c := &Container{}

	userRepo, err := c.openUserRepository(ctx, cfg.Database)

	if err != nil {
		return nil, err
	}

	if obs.Metrics != nil {
		userRepo = database.NewMetricsRepository(userRepo, obs.Metrics)
	}

	c.UserRepo = userRepo
	c.TokenPersister = userRepo

	if cfg.Token.Store == "redis" {
		client, err := redis.NewClient(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err != nil {
			c.Close()
			return nil, err
		}

		c.closers = append(c.closers, client)
		c.TokenPersister = redis.NewTokenStore(client, cfg.Token.TTL)
	}

	issuer, err := token.NewJWT(cfg.Token.Secret, cfg.Token.Issuer, cfg.Token.TTL)

	if err != nil {
		c.Close()
		return nil, err
	}

	c.AuthUseCase = service.NewAuthService(service.AuthDeps{
		Store:     c.UserRepo,
		Verifier:  crypto.NewVerifier(),
		Issuer:    issuer,
		Persister: c.TokenPersister,
		Telemetry: obs.Probe,
	})

	c.RegistrationUseCase = service.NewRegistrationService(
		c.UserRepo,
		crypto.NewHasher(cfg.Password.Algorithm, cfg.Password.BcryptCost),
	)

	for _, svcErr := range []error{c.AuthUseCase.Err(), c.RegistrationUseCase.Err()} {
		if svcErr != nil {
			c.Close()
			return nil, svcErr
		}
	}

	validator := validation.New()

	c.AuthHandler = handler.NewAuthHandler(c.AuthUseCase, validator, obs.Logger)
	c.UserHandler = handler.NewUserHandler(c.RegistrationUseCase, validator, obs.Logger)

	return c, nil
}

func (c *Container) openUserRepository(ctx context.Context, cfg config.DatabaseConfig) (port.UserRepository, error) {
	switch cfg.Driver {
	case "sqlite":
		db, err := sqlite.NewDB(sqlite.Config{Path: cfg.Path, LogQueries: cfg.LogQueries})

		if err != nil {
			return nil, fmt.Errorf("error opening sqlite database: %w", err)
		}

		c.closers = append(c.closers, db)

		return sqliterepository.NewUserRepository(db), nil
	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.URL)

		if err != nil {
			return nil, fmt.Errorf("error opening postgres database: %w", err)
		}

		c.closers = append(c.closers, closerFunc(func() error {
			db.Close()
			return nil
		}))

		return pgrepository.NewUserRepository(db), nil
	case "memory":
		return memory.NewUserStore(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// Close releases storage connections in reverse order of opening.
func (c *Container) Close() error {
	var firstErr error

	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	c.closers = nil

	return firstErr
}
