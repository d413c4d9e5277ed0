package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	deckCommands "github.com/felixgeelhaar/deckctl/internal/deck/application/commands"
	identitySettings "github.com/felixgeelhaar/deckctl/internal/identity/application/settings"
	identityDomain "github.com/felixgeelhaar/deckctl/internal/identity/domain"
	identityPersistence "github.com/felixgeelhaar/deckctl/internal/identity/infrastructure/persistence"
	"github.com/felixgeelhaar/deckctl/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/deckctl/internal/shared/infrastructure/database/postgres"
	_ "github.com/felixgeelhaar/deckctl/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/deckctl/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/deckctl/internal/shared/infrastructure/resilience"
	"github.com/felixgeelhaar/deckctl/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Infrastructure
	DBConn      database.Connection
	RedisClient *redis.Client

	// Repositories
	UserRepo       identityDomain.UserRepository
	PreferenceRepo identityDomain.PreferenceRepository

	// Services
	SettingsService *identitySettings.Service

	// Deck Command Handlers
	SetCalendarOptOutHandler *deckCommands.SetCalendarOptOutHandler
}

// DatabaseConfig maps application configuration to the database factory configuration.
func DatabaseConfig(cfg *config.Config) (database.Config, error) {
	driver, err := database.ParseDriver(cfg.DatabaseDriver)
	if err != nil {
		return database.Config{}, err
	}
	return database.Config{
		Driver:     driver,
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
		MaxConns:   cfg.DatabaseMaxConns,
	}, nil
}

// NewContainer opens the database, applies migrations and wires all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	dbCfg, err := DatabaseConfig(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := database.NewConnection(ctx, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DBConn = conn
	logger.Info("connected to database", "driver", conn.Driver().String())

	if err := migrations.Run(ctx, conn); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	factory := NewRepositoryFactory(conn)
	if c.UserRepo, err = factory.UserRepository(); err != nil {
		c.Close()
		return nil, err
	}

	if err := c.wirePreferences(ctx, factory); err != nil {
		c.Close()
		return nil, err
	}

	c.SettingsService = identitySettings.NewService(c.PreferenceRepo)
	c.SetCalendarOptOutHandler = deckCommands.NewSetCalendarOptOutHandler(c.UserRepo, c.SettingsService, logger)

	return c, nil
}

// wirePreferences selects the preference store. Redis is used when configured;
// in development an unreachable Redis falls back to the database.
func (c *Container) wirePreferences(ctx context.Context, factory *RepositoryFactory) error {
	if c.Config.SettingsBackend == config.SettingsBackendRedis {
		client, err := connectRedis(ctx, c.Config.RedisURL)
		if err == nil {
			c.RedisClient = client
			breaker := resilience.NewBreaker("redis-preferences", resilience.DefaultBreakerConfig(), c.Logger)
			c.PreferenceRepo = identityPersistence.NewGuardedPreferenceRepository(
				identityPersistence.NewRedisPreferenceRepository(client),
				breaker,
			)
			c.Logger.Info("connected to Redis", "settings_backend", config.SettingsBackendRedis)
			return nil
		}
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.Logger.Warn("Redis not available, preferences will use the database", "error", err)
	}

	repo, err := factory.PreferenceRepository()
	if err != nil {
		return err
	}
	c.PreferenceRepo = repo
	return nil
}

func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// Close releases all resources.
func (c *Container) Close() {
	var errs []error
	if c.RedisClient != nil {
		errs = append(errs, c.RedisClient.Close())
	}
	if c.DBConn != nil {
		errs = append(errs, c.DBConn.Close())
	}
	if err := errors.Join(errs...); err != nil {
		c.Logger.Warn("error closing container", "error", err)
	}
}
