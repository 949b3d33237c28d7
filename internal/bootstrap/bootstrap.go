package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/unishare/internal/app/auth"
	appControllers "github.com/yigit/unishare/internal/app/controllers"
	appMigrations "github.com/yigit/unishare/internal/app/migrations"
	appRepos "github.com/yigit/unishare/internal/app/repositories"
	appRoutes "github.com/yigit/unishare/internal/app/routes"
	appServices "github.com/yigit/unishare/internal/app/services"
	"github.com/yigit/unishare/internal/config"
	"github.com/yigit/unishare/internal/db"
	appMiddleware "github.com/yigit/unishare/internal/middleware"
	pkgAuth "github.com/yigit/unishare/internal/pkg/auth"
	"github.com/yigit/unishare/internal/pkg/cache"
	"github.com/yigit/unishare/internal/pkg/helpers"
	"github.com/yigit/unishare/internal/pkg/logger"
	"github.com/yigit/unishare/internal/pkg/notify"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Database   *db.PostgresDB
	Repos      *appRepos.Repositories
	PageCache  cache.PageCache
	Dispatcher *notify.Dispatcher
	Tracker    appServices.CounterTracker

	StatsService    appServices.StatsService
	ResourceService appServices.ResourceService
	RatingService   appServices.RatingService
	CommentService  appServices.CommentService
	ReactionService appServices.ReactionService
	ReportService   appServices.ReportService

	ResourceController *appControllers.ResourceController
	CommentController  *appControllers.CommentController
	HealthController   *appControllers.HealthController

	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := database.Ping(pingCtx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Str("dir", cfg.Database.MigrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.Migrate(ctx, appMigrations.Source(cfg.Database.MigrationsDir)); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// SetupPageCache connects to redis when enabled. Any failure falls back to serving
// pages straight from the database.
func SetupPageCache(cfg *config.Config, lgr zerolog.Logger) cache.PageCache {
	if !cfg.Redis.Enabled {
		lgr.Info().Msg("Resource page cache disabled")
		return cache.NewNoopCache()
	}

	pages, err := cache.NewRedisCache(cache.Config{
		URL: cfg.Redis.URL,
		TTL: helpers.ParseDuration(cfg.Redis.PageTTL, 5*time.Minute),
	}, lgr)
	if err != nil {
		lgr.Warn().Err(err).Msg("Redis unavailable, resource page cache disabled")
		return cache.NewNoopCache()
	}

	lgr.Info().Msg("Resource page cache connected")
	return pages
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, pages cache.PageCache, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{
		Database:  database,
		PageCache: pages,
		Logger:    lgr,
	}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.Dispatcher = notify.NewDispatcher(deps.Repos.NotificationRepository, notify.Config{
		Workers:         cfg.Notifications.Workers,
		QueueSize:       cfg.Notifications.QueueSize,
		MaxRetries:      cfg.Notifications.MaxRetries,
		InitialInterval: helpers.ParseDuration(cfg.Notifications.InitialInterval, 200*time.Millisecond),
	}, lgr)
	deps.Dispatcher.Start()

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenIssuer: cfg.JWT.Issuer,
	})
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	actors := appAuth.NewActorResolver(deps.Repos.UserRepository)

	deps.Tracker = appServices.NewCounterTracker(
		deps.Repos.ResourceRepository,
		pages,
		helpers.ParseDuration(cfg.Tracking.Timeout, 5*time.Second),
		lgr,
	)
	deps.StatsService = appServices.NewStatsService(
		deps.Repos.ResourceRepository,
		deps.Repos.RatingRepository,
		deps.Repos.CommentRepository,
		lgr,
	)
	deps.ResourceService = appServices.NewResourceService(
		deps.Repos.ResourceRepository,
		deps.StatsService,
		deps.Tracker,
		pages,
		lgr,
	)
	deps.RatingService = appServices.NewRatingService(
		deps.Repos.ResourceRepository,
		deps.Repos.RatingRepository,
		actors,
		deps.Dispatcher,
		lgr,
	)
	deps.CommentService = appServices.NewCommentService(
		deps.Repos.ResourceRepository,
		deps.Repos.CommentRepository,
		deps.Repos.ReactionRepository,
		actors,
		deps.Dispatcher,
		lgr,
	)
	deps.ReactionService = appServices.NewReactionService(
		database,
		deps.Repos.CommentRepository,
		deps.Repos.ReactionRepository,
		lgr,
	)
	deps.ReportService = appServices.NewReportService(
		deps.Repos.ResourceRepository,
		deps.Repos.ReportRepository,
		lgr,
	)

	deps.ResourceController = appControllers.NewResourceController(
		deps.ResourceService,
		deps.StatsService,
		deps.RatingService,
		deps.ReportService,
	)
	deps.CommentController = appControllers.NewCommentController(deps.CommentService, deps.ReactionService)

	var cachePinger appControllers.Pinger
	if cfg.Redis.Enabled {
		cachePinger = pages
	}
	deps.HealthController = appControllers.NewHealthController(database, cachePinger)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	appRoutes.SetupRouter(router,
		deps.ResourceController,
		deps.CommentController,
		deps.HealthController,
		deps.AuthMiddleware,
	)

	return router
}

// corsConfig allows the configured origins; an empty list or "*" opens the API to all.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", appMiddleware.RequestIDHeader},
		ExposeHeaders: []string{appMiddleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, origin := range origins {
		if origin == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}

	c.AllowOrigins = origins
	return c
}
