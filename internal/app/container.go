// Package app wires the application together.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite" // SQLite driver for local mode

	identityServices "github.com/ascendhq/ascend/internal/identity/application/services"
	identityDomain "github.com/ascendhq/ascend/internal/identity/domain"
	identityPersistence "github.com/ascendhq/ascend/internal/identity/infrastructure/persistence"
	insightsCommands "github.com/ascendhq/ascend/internal/insights/application/commands"
	insightsQueries "github.com/ascendhq/ascend/internal/insights/application/queries"
	insightsServices "github.com/ascendhq/ascend/internal/insights/application/services"
	insightsDomain "github.com/ascendhq/ascend/internal/insights/domain"
	insightsCache "github.com/ascendhq/ascend/internal/insights/infrastructure/cache"
	insightsPersistence "github.com/ascendhq/ascend/internal/insights/infrastructure/persistence"
	scheduleCommands "github.com/ascendhq/ascend/internal/scheduling/application/commands"
	scheduleQueries "github.com/ascendhq/ascend/internal/scheduling/application/queries"
	schedulingDomain "github.com/ascendhq/ascend/internal/scheduling/domain"
	schedulePersistence "github.com/ascendhq/ascend/internal/scheduling/infrastructure/persistence"
	sharedApplication "github.com/ascendhq/ascend/internal/shared/application"
	sharedDomain "github.com/ascendhq/ascend/internal/shared/domain"
	"github.com/ascendhq/ascend/internal/shared/infrastructure/eventbus"
	"github.com/ascendhq/ascend/internal/shared/infrastructure/migrations"
	"github.com/ascendhq/ascend/internal/shared/infrastructure/outbox"
	sharedPersistence "github.com/ascendhq/ascend/internal/shared/infrastructure/persistence"
	taskCommands "github.com/ascendhq/ascend/internal/tasks/application/commands"
	taskQueries "github.com/ascendhq/ascend/internal/tasks/application/queries"
	taskServices "github.com/ascendhq/ascend/internal/tasks/application/services"
	"github.com/ascendhq/ascend/internal/tasks/domain/task"
	taskPersistence "github.com/ascendhq/ascend/internal/tasks/infrastructure/persistence"
	"github.com/ascendhq/ascend/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	DB          *pgxpool.Pool
	SQLiteDB    *sql.DB
	RedisClient *redis.Client

	// Repositories
	TaskRepo         task.Repository
	ScheduleRepo     schedulingDomain.ScheduleRepository
	WorkingHoursRepo identityDomain.WorkingHoursRepository
	HistoryRepo      insightsDomain.HistoryRepository
	OutboxRepo       outbox.Repository
	UnitOfWork       sharedApplication.UnitOfWork

	// Eventing
	EventPublisher  eventbus.Publisher
	OutboxProcessor *outbox.Processor

	// Services
	Clock            sharedDomain.Clock
	SettingsService  *identityServices.SettingsService
	UrgencyEngine    *taskServices.UrgencyEngine
	SuggestionEngine *insightsServices.SuggestionEngine

	// Task handlers
	CreateTaskHandler   *taskCommands.CreateTaskHandler
	CompleteTaskHandler *taskCommands.CompleteTaskHandler
	ListTasksHandler    *taskQueries.ListTasksHandler

	// Scheduling handlers
	ScheduleTaskHandler       *scheduleCommands.ScheduleTaskHandler
	RescheduleTaskHandler     *scheduleCommands.RescheduleTaskHandler
	FindAvailableSlotsHandler *scheduleQueries.FindAvailableSlotsHandler
	GetScheduleHandler        *scheduleQueries.GetScheduleHandler

	// Insights handlers
	RecordCompletionHandler *insightsCommands.RecordCompletionHandler
	SuggestTimeBlockHandler *insightsQueries.SuggestTimeBlockHandler

	// Current user (configured per environment)
	CurrentUserID uuid.UUID
}

// NewContainer creates and wires all application dependencies. Local mode
// runs entirely on embedded SQLite; server mode uses PostgreSQL with
// optional Redis and RabbitMQ.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
		Clock:  sharedDomain.SystemClock{},
	}

	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid ASCEND_USER_ID: %w", err)
	}
	c.CurrentUserID = userID

	if cfg.LocalMode {
		if err := c.initSQLite(ctx); err != nil {
			return nil, err
		}
	} else {
		if err := c.initPostgres(ctx); err != nil {
			return nil, err
		}
	}

	c.initEventPublisher()
	c.initRedis(ctx)
	c.initServices()
	c.initHandlers()

	c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, outbox.ProcessorConfig{
		PollInterval: cfg.OutboxPollInterval,
		BatchSize:    cfg.OutboxBatchSize,
		MaxRetries:   cfg.OutboxMaxRetries,
	}, logger)

	return c, nil
}

func (c *Container) initSQLite(ctx context.Context) error {
	if dir := filepath.Dir(c.Config.LocalDBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", c.Config.LocalDBPath)
	if err != nil {
		return fmt.Errorf("failed to open local database: %w", err)
	}
	// modernc SQLite is single-writer.
	db.SetMaxOpenConns(1)

	if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	c.SQLiteDB = db
	c.Logger.Info("using local database", "path", c.Config.LocalDBPath)

	c.TaskRepo = taskPersistence.NewSQLiteTaskRepository(db)
	c.ScheduleRepo = schedulePersistence.NewSQLiteScheduleRepository(db)
	c.WorkingHoursRepo = identityPersistence.NewSQLiteWorkingHoursRepository(db)
	c.HistoryRepo = insightsPersistence.NewSQLiteHistoryRepository(db)
	c.OutboxRepo = outbox.NewSQLiteRepository(db)
	c.UnitOfWork = sharedPersistence.NewSQLiteUnitOfWork(db)

	return nil
}

func (c *Container) initPostgres(ctx context.Context) error {
	pool, err := pgxpool.New(ctx, c.Config.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	c.DB = pool
	c.Logger.Info("connected to database")

	c.TaskRepo = taskPersistence.NewPostgresTaskRepository(pool)
	c.ScheduleRepo = schedulePersistence.NewPostgresScheduleRepository(pool)
	c.WorkingHoursRepo = identityPersistence.NewPostgresWorkingHoursRepository(pool)
	c.HistoryRepo = insightsPersistence.NewPostgresHistoryRepository(pool)
	c.OutboxRepo = outbox.NewPostgresRepository(pool)
	c.UnitOfWork = sharedPersistence.NewPostgresUnitOfWork(pool)

	return nil
}

func (c *Container) initEventPublisher() {
	if c.Config.LocalMode || c.Config.RabbitMQURL == "" {
		c.EventPublisher = eventbus.NewInProcessBus(c.Logger)
		return
	}

	publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
	if err != nil {
		if c.Config.IsDevelopment() {
			c.Logger.Warn("RabbitMQ not available, using in-process bus", "error", err)
			c.EventPublisher = eventbus.NewInProcessBus(c.Logger)
			return
		}
		c.Logger.Error("failed to connect to RabbitMQ", "error", err)
		c.EventPublisher = eventbus.NewInProcessBus(c.Logger)
		return
	}
	c.EventPublisher = publisher
}

// initRedis connects to Redis when configured. Redis is optional; without
// it suggestions rebuild the pattern from history on every call.
func (c *Container) initRedis(ctx context.Context) {
	if c.Config.LocalMode || c.Config.RedisURL == "" {
		return
	}

	opt, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		c.Logger.Warn("invalid Redis URL, pattern cache disabled", "error", err)
		return
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		c.Logger.Warn("Redis not available, pattern cache disabled", "error", err)
		return
	}

	c.RedisClient = client
	c.Logger.Info("connected to Redis")
}

func (c *Container) initServices() {
	c.SettingsService = identityServices.NewSettingsService(c.WorkingHoursRepo, c.Logger)
	c.UrgencyEngine = taskServices.NewUrgencyEngine(taskServices.DefaultUrgencyEngineConfig(), c.Clock)

	var patterns insightsDomain.PatternProvider = insightsServices.NewHistoryPatternProvider(c.HistoryRepo)
	if c.RedisClient != nil {
		patterns = insightsCache.NewRedisPatternCache(c.RedisClient, patterns, c.Config.PatternCacheTTL, c.Logger)
	}

	c.SuggestionEngine = insightsServices.NewSuggestionEngine(patterns, c.Clock, insightsServices.SuggestionConfig{
		DurationDecayMinutes: c.Config.SuggestionDecayMinutes,
		ConfidenceSaturation: c.Config.SuggestionConfidenceSamples,
	}, c.Logger)
}

func (c *Container) initHandlers() {
	c.RecordCompletionHandler = insightsCommands.NewRecordCompletionHandler(c.HistoryRepo, c.Logger)

	c.CreateTaskHandler = taskCommands.NewCreateTaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork)
	c.CompleteTaskHandler = taskCommands.NewCompleteTaskHandler(
		c.TaskRepo, c.RecordCompletionHandler, c.OutboxRepo, c.UnitOfWork, c.Logger)
	c.ListTasksHandler = taskQueries.NewListTasksHandler(c.TaskRepo, c.UrgencyEngine)

	c.ScheduleTaskHandler = scheduleCommands.NewScheduleTaskHandler(
		c.TaskRepo, c.ScheduleRepo, c.SettingsService, c.OutboxRepo, c.UnitOfWork, c.Clock, c.Logger)
	c.RescheduleTaskHandler = scheduleCommands.NewRescheduleTaskHandler(c.ScheduleTaskHandler, c.Logger)
	c.FindAvailableSlotsHandler = scheduleQueries.NewFindAvailableSlotsHandler(c.ScheduleRepo, c.SettingsService)
	c.GetScheduleHandler = scheduleQueries.NewGetScheduleHandler(c.ScheduleRepo)

	c.SuggestTimeBlockHandler = insightsQueries.NewSuggestTimeBlockHandler(c.TaskRepo, c.SuggestionEngine)
}

// Close releases all resources.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("failed to close event publisher", "error", err)
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("failed to close Redis client", "error", err)
		}
	}
	if c.SQLiteDB != nil {
		if err := c.SQLiteDB.Close(); err != nil {
			c.Logger.Warn("failed to close local database", "error", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
