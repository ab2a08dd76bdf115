package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/coursehub/backend/docs" // generated swagger docs
	appControllers "github.com/coursehub/backend/internal/app/controllers"
	appMigrations "github.com/coursehub/backend/internal/app/migrations"
	appRepos "github.com/coursehub/backend/internal/app/repositories"
	appRoutes "github.com/coursehub/backend/internal/app/routes"
	appServices "github.com/coursehub/backend/internal/app/services"
	"github.com/coursehub/backend/internal/config"
	"github.com/coursehub/backend/internal/db"
	appMiddleware "github.com/coursehub/backend/internal/middleware"
	pkgAuth "github.com/coursehub/backend/internal/pkg/auth"
	"github.com/coursehub/backend/internal/pkg/logger"
	"github.com/coursehub/backend/internal/pkg/respcache"
	"github.com/coursehub/backend/internal/seed"
)

// Response cache shapes: short-lived list caches and a slightly longer
// ratings cache, each bounded to 25 entries.
const (
	listCacheTTL    = 30 * time.Second
	ratingsCacheTTL = 60 * time.Second
	cacheCapacity   = 25
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	CourseService        appServices.CourseService
	EnrollmentService    appServices.EnrollmentService
	RatingAggregator     *appServices.RatingAggregator
	CourseController     *appControllers.CourseController
	EnrollmentController *appControllers.EnrollmentController
	HealthController     *appControllers.HealthController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	Health               *db.Health
	Logger               zerolog.Logger
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

// SetupDatabase establishes the connection pool and runs migrations. An
// unreachable database is not fatal: the pool is returned anyway and the
// request gate serves degraded responses until it recovers. Migrations are
// retried on the next start in that case.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to configure database pool")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.ApplyDirectory(ctx, migrationsDir); err != nil {
		lgr.Warn().Err(err).Msg("Migrations not applied, starting degraded")
		return dbPool, nil
	}
	lgr.Info().Msg("Database migrations applied")

	if cfg.Seed.Courses {
		if err := seed.CreateDefaultCourses(ctx, dbPool, lgr); err != nil {
			lgr.Warn().Err(err).Msg("Course seeding failed")
		}
	}

	return dbPool, nil
}

// BuildDependencies wires repositories, services, controllers and middleware
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.Health = db.NewHealth(dbPool, cfg.ConnectTimeout(), logger.With("db"))

	verifier, err := buildVerifier(cfg, lgr)
	if err != nil {
		return nil, err
	}

	deps.RatingAggregator, err = appServices.NewRatingAggregator(
		deps.Repos.EnrollmentRepository,
		deps.Repos.CourseRepository,
		cfg.Ratings.QueueSize,
		cfg.Ratings.SweepSchedule,
		logger.With("ratings"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build rating aggregator: %w", err)
	}

	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, logger.With("courses"))
	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.EnrollmentRepository,
		deps.Repos.CourseRepository,
		deps.RatingAggregator,
		logger.With("enrollments"),
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(verifier)

	deps.CourseController = appControllers.NewCourseController(
		deps.CourseService,
		respcache.New(listCacheTTL, cacheCapacity),
	)
	deps.EnrollmentController = appControllers.NewEnrollmentController(
		deps.EnrollmentService,
		respcache.New(listCacheTTL, cacheCapacity),
		respcache.New(ratingsCacheTTL, cacheCapacity),
	)
	deps.HealthController = appControllers.NewHealthController(deps.Health)

	return deps, nil
}

// buildVerifier selects the token verifier. Production always verifies
// against the identity provider; config validation guarantees a project id is
// set there. Without one, development falls back to decoding tokens without
// signature checks.
func buildVerifier(cfg *config.Config, lgr zerolog.Logger) (pkgAuth.Verifier, error) {
	if cfg.Auth.ProjectID != "" {
		verifier, err := pkgAuth.NewFirebaseVerifier(cfg.Auth.ProjectID, cfg.Auth.CertsURL, lgr)
		if err != nil {
			return nil, fmt.Errorf("failed to build token verifier: %w", err)
		}
		lgr.Info().Str("projectId", cfg.Auth.ProjectID).Msg("Token verification enabled")
		return verifier, nil
	}
	if cfg.IsProduction() {
		return nil, fmt.Errorf("token verification requires FIREBASE_PROJECT_ID in production")
	}
	return pkgAuth.NewUnverifiedVerifier(lgr), nil
}

// SetupRouter configures the gin engine and mounts all routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	router.Use(appMiddleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(appMiddleware.DatabaseStatus(deps.Health))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.CourseController,
		deps.EnrollmentController,
		deps.HealthController,
		deps.AuthMiddleware,
	)

	return router
}
