package bootstrap

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/nexusai/nexus-backend/internal/app/controllers"
	appRepos "github.com/nexusai/nexus-backend/internal/app/repositories"
	appRoutes "github.com/nexusai/nexus-backend/internal/app/routes"
	appServices "github.com/nexusai/nexus-backend/internal/app/services"
	"github.com/nexusai/nexus-backend/internal/config"
	"github.com/nexusai/nexus-backend/internal/db"
	appMiddleware "github.com/nexusai/nexus-backend/internal/middleware"
	"github.com/nexusai/nexus-backend/internal/pkg/logger"
	"github.com/nexusai/nexus-backend/internal/pkg/metrics"
	ws "github.com/nexusai/nexus-backend/internal/pkg/websocket"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	JobService        appServices.JobService
	UserService       appServices.UserService
	JobController     *appControllers.JobController
	UserController    *appControllers.UserController
	CollegeController *appControllers.CollegeController
	Repos             *appRepos.Repositories
	Hub               *ws.Hub
	WSHandler         *ws.Handler
	Metrics           *metrics.Collector
	Registry          *prometheus.Registry
	Logger            zerolog.Logger
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

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore elects the active backend exactly once. When a Mongo URI is
// configured the document store is tried within its bounded timeout; on
// failure or absent configuration the local SQLite fallback is opened. The
// election holds for the process lifetime, there is no retry or re-election.
func SetupStore(cfg *config.Config, lgr zerolog.Logger) (*appRepos.Repositories, func(), error) {
	if cfg.Mongo.URI != "" {
		mdb, err := db.NewMongoDB(cfg)
		if err == nil {
			lgr.Info().Str("database", cfg.Mongo.Database).Msg("Connected to MongoDB, document store active")
			closer := func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := mdb.Close(ctx); err != nil {
					lgr.Error().Err(err).Msg("Failed to disconnect from MongoDB")
				}
			}
			return appRepos.NewMongoRepositories(mdb), closer, nil
		}
		lgr.Warn().Err(err).Msg("MongoDB connection failed, falling back to local SQLite")
	} else {
		lgr.Warn().Msg("No MongoDB URI configured, using local SQLite store")
	}

	sqlDB, err := db.NewSQLiteDB(cfg.SQLite.Path)
	if err != nil {
		lgr.Error().Err(err).Str("path", cfg.SQLite.Path).Msg("Failed to open SQLite store")
		return nil, nil, err
	}

	lgr.Info().Str("path", cfg.SQLite.Path).Msg("SQLite fallback store active")
	closer := func() {
		if err := sqlDB.Close(); err != nil {
			lgr.Error().Err(err).Msg("Failed to close SQLite store")
		}
	}
	return appRepos.NewSQLiteRepositories(sqlDB), closer, nil
}

// BuildDependencies initializes metrics, the notifier hub, services, and
// controllers on top of the elected store.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Repos: repos, Logger: lgr}

	deps.Registry = prometheus.NewRegistry()
	deps.Metrics = metrics.NewCollector(deps.Registry)

	deps.Hub = ws.NewHub(lgr, deps.Metrics)
	deps.WSHandler = ws.NewHandler(deps.Hub, lgr)

	deps.JobService = appServices.NewJobService(repos.Jobs, deps.Hub, lgr)
	deps.UserService = appServices.NewUserService(repos.Users, lgr)

	deps.JobController = appControllers.NewJobController(deps.JobService, deps.UserService, lgr)
	deps.UserController = appControllers.NewUserController(deps.UserService, lgr)
	deps.CollegeController = appControllers.NewCollegeController(deps.UserService, lgr)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(deps.Metrics.Middleware())
	router.Use(cors.Default())

	appRoutes.SetupRouter(router,
		deps.JobController,
		deps.UserController,
		deps.CollegeController,
		deps.WSHandler,
	)

	router.GET("/metrics", metrics.HTTPHandler(deps.Registry))

	return router
}
