package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/coursehub/internal/app/auth"
	appControllers "github.com/yigit/coursehub/internal/app/controllers"
	appMigrations "github.com/yigit/coursehub/internal/app/migrations"
	"github.com/yigit/coursehub/internal/app/models/dto"
	appRepos "github.com/yigit/coursehub/internal/app/repositories"
	appRoutes "github.com/yigit/coursehub/internal/app/routes"
	appServices "github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/config"
	"github.com/yigit/coursehub/internal/db"
	appMiddleware "github.com/yigit/coursehub/internal/middleware"
	pkgAuth "github.com/yigit/coursehub/internal/pkg/auth"
	"github.com/yigit/coursehub/internal/pkg/logger"
	"github.com/yigit/coursehub/internal/seed"
)

// DefaultConfigPath is used when no --config flag is given
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services             *appServices.Services
	HealthController     *appControllers.HealthController
	AuthController       *appControllers.AuthController
	CourseController     *appControllers.CourseController
	StudentController    *appControllers.StudentController
	EnrollmentController *appControllers.EnrollmentController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	PasswordHasher       *pkgAuth.PasswordHasher
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().
		Str("mode", cfg.App.Mode).
		Str("logLevel", string(logLevel)).
		Str("logFormat", cfg.Logging.Format).
		Msg("Logger configured")
	lgr.Debug().Str("config", cfg.String()).Msg("Configuration loaded")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and applies the
// embedded migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// BuildDependencies initializes services, middleware and controllers on
// top of the given repositories. database is only used for health checks
// and may be nil.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, database appControllers.Pinger, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Repos: repos, Logger: lgr}

	var err error
	deps.JWTService, err = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		Algorithm:      cfg.JWT.Algorithm,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	deps.PasswordHasher, err = pkgAuth.NewPasswordHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	deps.Services = appServices.NewServices(repos, deps.PasswordHasher, deps.JWTService, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(appAuth.NewGuard(deps.JWTService))

	deps.HealthController = appControllers.NewHealthController(database, cfg.App.Mode, cfg.App.Version)
	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService)
	deps.CourseController = appControllers.NewCourseController(deps.Services.CourseService)
	deps.StudentController = appControllers.NewStudentController(deps.Services.StudentService, deps.Services.EnrollmentService)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.Services.EnrollmentService)

	return deps, nil
}

// SeedDefaultAdmin creates the configured bootstrap admin if missing.
func SeedDefaultAdmin(ctx context.Context, cfg *config.Config, deps *Dependencies) error {
	seedCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := seed.SeedDefaultAdmin(seedCtx, deps.Repos.AdminRepository, deps.PasswordHasher,
		cfg.Seed.AdminUsername, cfg.Seed.AdminPassword, deps.Logger)
	return err
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.CORS(cfg.Server.CORSOrigins))

	appRoutes.SetupRouter(router,
		deps.HealthController,
		deps.AuthController,
		deps.CourseController,
		deps.StudentController,
		deps.EnrollmentController,
		deps.AuthMiddleware,
	)

	router.NoRoute(func(c *gin.Context) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found").
			WithDetails(c.Request.Method + " " + c.Request.URL.Path)
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
	})

	return router
}
