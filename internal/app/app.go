package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"museworks_backend/database"
	"museworks_backend/internal/auth"
	"museworks_backend/internal/authz"
	"museworks_backend/internal/config"
	"museworks_backend/internal/email"
	"museworks_backend/internal/handlers"
	"museworks_backend/internal/logger"
	"museworks_backend/internal/middleware"
	"museworks_backend/internal/models"
	"museworks_backend/internal/repositories"
	"museworks_backend/internal/routes"
	"museworks_backend/internal/services"
	"museworks_backend/internal/validator"
	"museworks_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const tokenIssuer = "museworks"

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(database.Options{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		Debug:           !cfg.IsProduction(),
	})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	defer sqlDB.Close()
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("Failed to run migrations", "error", err)
		}
		logger.Info("Database migrations applied")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := seedFirstAdmin(ctx, gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	guard := newGuard(cfg)
	ginRouter, err := SetupRouter(cfg, gormDB, guard)
	if err != nil {
		logger.Fatal("Failed to set up router", "error", err)
	}

	collectionWorker := workers.NewCollectionWorker(gormDB, guard, repositories.NewCollectionRepository(), cfg.Workers.CollectionSweepInterval)
	collectionWorker.Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:    address,
		Handler: ginRouter,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		return
	}
	logger.Info("Server stopped")
}

func newGuard(cfg *config.Config) *database.Guard {
	return database.NewGuard(database.GuardSettings{
		Name:             "storage",
		QueryTimeout:     cfg.Database.QueryTimeout,
		MaxRequests:      cfg.Breaker.MaxRequests,
		Interval:         cfg.Breaker.Interval,
		Timeout:          cfg.Breaker.Timeout,
		FailureThreshold: cfg.Breaker.FailureThreshold,
	})
}

// SetupRouter собирает сервисы, хэндлеры и маршруты поверх готового подключения
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, guard *database.Guard) (*gin.Engine, error) {
	enforcer, err := authz.NewEnforcer(cfg.Authz.PolicyPath)
	if err != nil {
		return nil, fmt.Errorf("load authorization policy: %w", err)
	}

	emailProvider, err := newEmailProvider(cfg)
	if err != nil {
		return nil, err
	}

	// 1. Инициализируем сервисы
	serviceContainer := initializeServices(gormDB, guard, enforcer, emailProvider)

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(cfg, serviceContainer, gormDB, guard)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter()

	// 4. Регистрация маршрутов
	tokens := auth.NewTokenManager(cfg.JWT.Secret, tokenIssuer)
	routes.RegisterRoutes(ginRouter, appHandlers, middleware.AuthMiddleware(tokens))

	return ginRouter, nil
}

func newEmailProvider(cfg *config.Config) (email.Provider, error) {
	if !cfg.Email.Enabled {
		logger.Warn("Email is disabled, notifications are only logged")
		return &LogEmailProvider{}, nil
	}

	provider := email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})
	if err := provider.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email configuration: %w", err)
	}
	return provider, nil
}

func initializeServices(gormDB *gorm.DB, guard *database.Guard, authorizer authz.Authorizer, emailProvider email.Provider) *services.ServiceContainer {
	// --- Инициализация репозиториев ---
	userRepo := repositories.NewUserRepository()
	workRepo := repositories.NewWorkRepository()
	collectionRepo := repositories.NewCollectionRepository()
	ratingRepo := repositories.NewRatingRepository()
	reviewRepo := repositories.NewReviewRepository()

	// --- Инициализация сервисов ---
	roleResolver := services.NewRoleResolver(gormDB, guard, userRepo)
	notificationService := services.NewNotificationService(gormDB, guard, userRepo, emailProvider, email.NewTemplateManager())
	reviewService := services.NewReviewService(gormDB, guard, reviewRepo, workRepo, roleResolver, authorizer)
	moderationService := services.NewModerationService(gormDB, guard, workRepo, reviewRepo, reviewService, roleResolver, authorizer, notificationService)
	ratingService := services.NewRatingService(gormDB, guard, ratingRepo, workRepo, collectionRepo, roleResolver, authorizer)
	relatednessService := services.NewRelatednessService(gormDB, guard, workRepo)
	workService := services.NewWorkService(gormDB, guard, workRepo, collectionRepo, userRepo)
	searchService := services.NewSearchService(gormDB, guard, workRepo, collectionRepo)

	return &services.ServiceContainer{
		RoleResolver:        roleResolver,
		RatingService:       ratingService,
		ReviewService:       reviewService,
		ModerationService:   moderationService,
		RelatednessService:  relatednessService,
		WorkService:         workService,
		SearchService:       searchService,
		NotificationService: notificationService,
	}
}

func initializeHandlers(cfg *config.Config, services *services.ServiceContainer, gormDB *gorm.DB, guard *database.Guard) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		RatingHandler: handlers.NewRatingHandler(baseHandler, services.RatingService),
		ReviewHandler: handlers.NewReviewHandler(baseHandler, services.ModerationService, services.ReviewService),
		WorkHandler: handlers.NewWorkHandler(baseHandler, services.WorkService, services.RelatednessService,
			cfg.Relatedness.DefaultLimit, cfg.Relatedness.MaxLimit),
		SearchHandler: handlers.NewSearchHandler(baseHandler, services.SearchService),
		HealthHandler: handlers.NewHealthHandler(gormDB, guard),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	return router
}

// seedFirstAdmin создает администратора из конфигурации, если в системе нет ни одного
func seedFirstAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" {
		logger.Warn("FIRST_ADMIN_EMAIL is not set. Skipping admin seeding.")
		return nil
	}

	userRepo := repositories.NewUserRepository()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		admins, err := userRepo.CountByRole(tx, models.UserRoleAdmin)
		if err != nil {
			return fmt.Errorf("failed to count admin users: %w", err)
		}
		if admins > 0 {
			logger.Info("Admin user already exists. Skipping creation.")
			return nil
		}

		admin := &models.User{
			DisplayName: cfg.FirstAdminName,
			Email:       cfg.FirstAdminEmail,
			Role:        models.UserRoleAdmin,
		}
		if err := userRepo.Create(tx, admin); err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		logger.Info("Created first admin user", "email", admin.Email, "id", admin.ID)
		return nil
	})
}
