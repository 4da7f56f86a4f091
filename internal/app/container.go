package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/application/commands"
	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/application/queries"
	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/domain"
	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/persistence"
	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/services"
	"github.com/giovannadias1704-collab/medplanner-sub000/internal/completion"
	"github.com/giovannadias1704-collab/medplanner-sub000/internal/shared/infrastructure/convert"
	"github.com/giovannadias1704-collab/medplanner-sub000/internal/shared/infrastructure/database"
	"github.com/giovannadias1704-collab/medplanner-sub000/pkg/config"
	"github.com/giovannadias1704-collab/medplanner-sub000/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.InMemoryMetrics
	Health  *observability.HealthRegistry

	// UserID owns everything captured through the local surfaces.
	UserID uuid.UUID

	// Store
	Driver      database.Driver
	SQLDB       *sql.DB
	DB          *pgxpool.Pool
	RedisClient *redis.Client
	ItemRepo    domain.ItemRepository

	// Completion chain, nil when no API key is configured
	Breaker   *completion.BreakerCompleter
	Completer services.Completer

	Parser *services.Parser

	// Command handlers
	CaptureItemHandler *commands.CaptureItemHandler
	ParseHandler       *commands.ParseHandler
	ConfirmItemHandler *commands.ConfirmItemHandler

	// Query handlers
	ListItemsHandler *queries.ListItemsHandler
	GetItemHandler   *queries.GetItemHandler
}

// NewContainer opens the configured store and wires the capture flow.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID %q: %w", cfg.UserID, err)
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewInMemoryMetrics(),
		Health:  observability.NewHealthRegistry(),
		UserID:  userID,
		Driver:  database.ResolveDriver(cfg.CaptureStore, cfg.DatabaseURL),
	}

	if err := c.openStore(ctx); err != nil {
		return nil, err
	}
	if err := c.wireCompletion(); err != nil {
		c.Close()
		return nil, err
	}

	scoring := services.Scoring{
		BaseConfidence:        cfg.BaseConfidence,
		DateWeight:            cfg.DateWeight,
		AmountWeight:          cfg.AmountWeight,
		TimeWeight:            cfg.TimeWeight,
		ConfirmationThreshold: cfg.ConfidenceThreshold,
	}
	classifier := services.NewClassifier(services.NewDateResolver(services.NewWhenExtractor()), scoring)
	c.Parser = services.NewParser(classifier, c.Completer, logger, services.WithMetrics(c.Metrics))

	c.CaptureItemHandler = commands.NewCaptureItemHandler(c.Parser, c.ItemRepo, logger, c.Metrics)
	c.ParseHandler = commands.NewParseHandler(c.Parser)
	c.ConfirmItemHandler = commands.NewConfirmItemHandler(c.ItemRepo, logger, c.Metrics)
	c.ListItemsHandler = queries.NewListItemsHandler(c.ItemRepo)
	c.GetItemHandler = queries.NewGetItemHandler(c.ItemRepo)

	c.registerHealthChecks()
	return c, nil
}

func (c *Container) openStore(ctx context.Context) error {
	switch c.Driver {
	case database.DriverPostgres:
		pool, err := database.OpenPostgres(ctx, c.Config.DatabaseURL)
		if err != nil {
			return err
		}
		c.DB = pool
		c.ItemRepo = persistence.NewPostgresItemRepository(pool)
		c.Logger.Info("connected to database", "driver", c.Driver)

	case database.DriverRedis:
		url := c.Config.RedisURL
		if database.DetectDriver(c.Config.DatabaseURL) == database.DriverRedis {
			url = c.Config.DatabaseURL
		}
		client, err := database.OpenRedis(ctx, url)
		if err != nil {
			return err
		}
		c.RedisClient = client
		c.ItemRepo = persistence.NewRedisItemRepository(client)
		c.Logger.Info("connected to Redis")

	case database.DriverSQLite:
		path := c.Config.SQLitePath
		if path == "" && c.Config.DatabaseURL != "" {
			path = c.Config.DatabaseURL
		}
		db, err := database.OpenSQLite(ctx, path)
		if err != nil {
			return err
		}
		c.SQLDB = db
		c.ItemRepo = persistence.NewSQLiteItemRepository(db)
		c.Logger.Debug("opened local database", "driver", c.Driver)

	default:
		return fmt.Errorf("unsupported capture store: %s", c.Driver)
	}
	return nil
}

// wireCompletion builds cache -> breaker -> anthropic when an API key is set.
func (c *Container) wireCompletion() error {
	cfg := c.Config
	if !cfg.AIEnabled() {
		c.Logger.Debug("no Anthropic API key configured, low-confidence parses stay local")
		return nil
	}

	anthropicCompleter := completion.NewAnthropicCompleter(completion.AnthropicConfig{
		APIKey:    cfg.AnthropicAPIKey,
		Model:     cfg.AnthropicModel,
		MaxTokens: int64(cfg.AIMaxTokens),
		Timeout:   cfg.AITimeout,
	})
	c.Breaker = completion.NewBreakerCompleter(anthropicCompleter, completion.BreakerConfig{
		MaxFailures: convert.IntToUint32Clamped(cfg.AIBreakerFailures),
		OpenTimeout: cfg.AIBreakerTimeout,
	}, c.Logger, c.Metrics)

	cache, err := completion.NewCachingCompleter(c.Breaker, completion.CacheConfig{
		Size: cfg.AICacheSize,
		TTL:  cfg.AICacheTTL,
		Validate: func(reply string) error {
			_, err := services.DecodeRemoteOutcome(reply, cfg.ConfidenceThreshold)
			return err
		},
	}, c.Metrics)
	if err != nil {
		return fmt.Errorf("failed to create completion cache: %w", err)
	}
	c.Completer = cache
	return nil
}

func (c *Container) registerHealthChecks() {
	switch {
	case c.SQLDB != nil:
		c.Health.Register("store", observability.PingChecker("sqlite", observability.HealthStatusUnhealthy, c.SQLDB.PingContext))
	case c.DB != nil:
		c.Health.Register("store", observability.PingChecker("postgres", observability.HealthStatusUnhealthy, c.DB.Ping))
	case c.RedisClient != nil:
		c.Health.Register("store", observability.PingChecker("redis", observability.HealthStatusUnhealthy, func(ctx context.Context) error {
			return c.RedisClient.Ping(ctx).Err()
		}))
	}

	c.Health.Register("ai", func(ctx context.Context) observability.HealthCheckResult {
		if c.Breaker == nil {
			return observability.HealthCheckResult{Status: observability.HealthStatusDegraded, Message: "not configured, local parsing only"}
		}
		state := c.Breaker.State()
		if state != "closed" {
			return observability.HealthCheckResult{Status: observability.HealthStatusDegraded, Message: "circuit " + state}
		}
		return observability.HealthCheckResult{Status: observability.HealthStatusHealthy, Message: "circuit closed"}
	})
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
		c.Logger.Debug("PostgreSQL connection closed")
	}

	if c.SQLDB != nil {
		if err := c.SQLDB.Close(); err != nil {
			c.Logger.Warn("error closing SQLite connection", "error", err)
		}
	}
}
