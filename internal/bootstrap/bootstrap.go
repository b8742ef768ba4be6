package bootstrap

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/gradebook/internal/app/controllers"
	appRepos "github.com/yigit/gradebook/internal/app/repositories"
	appRoutes "github.com/yigit/gradebook/internal/app/routes"
	appServices "github.com/yigit/gradebook/internal/app/services"
	"github.com/yigit/gradebook/internal/config"
	appMiddleware "github.com/yigit/gradebook/internal/middleware"
	"github.com/yigit/gradebook/internal/pkg/logger"
	"github.com/yigit/gradebook/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                *appRepos.Repositories
	UserService          appServices.UserService       // Interface type
	CourseService        appServices.CourseService     // Interface type
	AssignmentService    appServices.AssignmentService // Interface type
	UserController       *appControllers.UserController
	CourseController     *appControllers.CourseController
	AssignmentController *appControllers.AssignmentController
	SystemController     *appControllers.SystemController
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore creates the in-memory store and, when enabled, seeds the demo users.
func SetupStore(cfg *config.Config, lgr zerolog.Logger) (*appRepos.Repositories, error) {
	store := appRepos.NewStore(appRepos.StoreOptions{
		MaxReaders:  cfg.Store.MaxReaders,
		LockTimeout: cfg.Store.LockTimeout,
		Logger:      logger.Component("store"),
	})
	repos := appRepos.NewRepositories(store)

	lgr.Info().
		Int("maxReaders", cfg.Store.MaxReaders).
		Dur("lockTimeout", cfg.Store.LockTimeout).
		Msg("In-memory store ready")

	if cfg.Store.SeedDemoData {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := seed.CreateDefaultData(ctx, repos, lgr); err != nil {
			return nil, err
		}
	}
	return repos, nil
}

// BuildDependencies initializes application services and controllers.
func BuildDependencies(repos *appRepos.Repositories, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Repos: repos, Logger: lgr}

	deps.UserService = appServices.NewUserService(repos.UserRepository, lgr)
	deps.CourseService = appServices.NewCourseService(repos.CourseRepository, lgr)
	deps.AssignmentService = appServices.NewAssignmentService(repos.AssignmentRepository, lgr)

	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.AssignmentController = appControllers.NewAssignmentController(deps.AssignmentService)
	deps.SystemController = appControllers.NewSystemController(repos.Store)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	// Store lock waits end when the client goes away
	router.ContextWithFallback = true
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(logger.Component("http")))

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router, appRoutes.Controllers{
		User:       deps.UserController,
		Course:     deps.CourseController,
		Assignment: deps.AssignmentController,
		System:     deps.SystemController,
	})

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
