package app

import (
	"fmt"

	"taskhub_backend/internal/config"
	"taskhub_backend/internal/database"
	"taskhub_backend/internal/handlers"
	"taskhub_backend/internal/logger"
	"taskhub_backend/internal/middleware"
	"taskhub_backend/internal/observability/metrics"
	"taskhub_backend/internal/repositories"
	"taskhub_backend/internal/routes"
	"taskhub_backend/internal/services"
	"taskhub_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("AutoMigrate failed", "error", err)
	}

	metrics.MustRegister()

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	// 1. Инициализируем сервисы
	serviceContainer := initializeServices()

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(serviceContainer)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(cfg, gormDB)

	// 4. Делегируем регистрацию маршрутов пакету 'routes'
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices() *services.ServiceContainer {
	// --- Инициализация репозиториев ---
	userRepo := repositories.NewUserRepository()
	projectRepo := repositories.NewProjectRepository()
	taskRepo := repositories.NewTaskRepository()

	// --- Инициализация сервисов ---
	tokenService := services.NewTokenService(userRepo)
	authService := services.NewAuthService(userRepo, tokenService)
	authzService := services.NewProjectAuthorizationService(projectRepo)
	projectService := services.NewProjectService(projectRepo, userRepo, authzService)
	taskService := services.NewTaskService(taskRepo, projectRepo, authzService)

	return &services.ServiceContainer{
		AuthService:          authService,
		TokenService:         tokenService,
		AuthorizationService: authzService,
		ProjectService:       projectService,
		TaskService:          taskService,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:    handlers.NewAuthHandler(baseHandler, services.AuthService),
		ProjectHandler: handlers.NewProjectHandler(baseHandler, services.ProjectService),
		TaskHandler:    handlers.NewTaskHandler(baseHandler, services.TaskService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.DBMiddleware(db))

	return router
}
