package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"taskhive/internal/config"
	ai_controllers "taskhive/internal/features/ai/controllers"
	"taskhive/internal/features/analytics"
	notifications_controllers "taskhive/internal/features/notifications/controllers"
	notifications_services "taskhive/internal/features/notifications/services"
	projects_controllers "taskhive/internal/features/projects/controllers"
	projects_services "taskhive/internal/features/projects/services"
	"taskhive/internal/features/realtime"
	sprints_controllers "taskhive/internal/features/sprints/controllers"
	sprints_services "taskhive/internal/features/sprints/services"
	system_healthcheck "taskhive/internal/features/system/healthcheck"
	tasks_controllers "taskhive/internal/features/tasks/controllers"
	tasks_services "taskhive/internal/features/tasks/services"
	users_controllers "taskhive/internal/features/users/controllers"
	users_middleware "taskhive/internal/features/users/middleware"
	users_services "taskhive/internal/features/users/services"
	"taskhive/internal/storage"
	cache_utils "taskhive/internal/util/cache"
	env_utils "taskhive/internal/util/env"
	"taskhive/internal/util/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title TaskHive API
// @version 1.0
// @description Multi-tenant project management API

// @host localhost:4010
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log := logger.GetLogger()

	setUpDependencies()

	cache_utils.TestCacheConnection()
	runMigrations(log)

	go generateSwaggerDocs(log)

	gin.SetMode(gin.ReleaseMode)
	ginApp := gin.Default()

	ginApp.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedExtensions(
			[]string{".png", ".gif", ".jpeg", ".jpg", ".ico", ".svg", ".pdf", ".mp4"},
		),
	))

	enableCors(ginApp)
	setUpRoutes(ginApp)

	startServerWithGracefulShutdown(log, ginApp)
}

// setUpDependencies wires the cross-feature pieces that cannot be
// linked at package init without a cycle: the notification gateway
// listens for lifecycle events and fans out through the websocket hub.
func setUpDependencies() {
	gateway := notifications_services.GetGateway()
	gateway.SetDispatcher(realtime.GetHub())

	projects_services.SetupDependencies(gateway)
	tasks_services.SetupDependencies(gateway)
	sprints_services.SetupDependencies()
}

func setUpRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	// Mount Swagger UI
	v1.GET("/docs/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes: registration, login, OAuth handoff, healthcheck.
	// Websocket routes authenticate in-handler because browsers cannot
	// set headers on websocket upgrades.
	authController := users_controllers.GetAuthController()
	authController.RegisterRoutes(v1)
	system_healthcheck.GetHealthcheckController().RegisterRoutes(v1)
	realtime.GetController().RegisterRoutes(v1)

	userService := users_services.GetUserService()
	authMiddleware := users_middleware.AuthMiddleware(userService)

	protected := v1.Group("")
	protected.Use(authMiddleware)

	authController.RegisterProtectedRoutes(protected)
	projects_controllers.GetProjectController().RegisterRoutes(protected)
	projects_controllers.GetMembershipController().RegisterRoutes(protected)
	tasks_controllers.GetTaskController().RegisterRoutes(protected)
	sprints_controllers.GetSprintController().RegisterRoutes(protected)
	notifications_controllers.GetNotificationController().RegisterRoutes(protected)
	analytics.GetAnalyticsController().RegisterRoutes(protected)
	ai_controllers.GetAIController().RegisterRoutes(protected)
}

func runMigrations(log *slog.Logger) {
	log.Info("Running database migrations...")

	// The first connection runs AutoMigrate.
	storage.GetDb()

	log.Info("Database migrations completed successfully")
}

func startServerWithGracefulShutdown(log *slog.Logger, app *gin.Engine) {
	host := ""
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		// for dev we use localhost to avoid firewall
		// requests on each run for Windows
		host = "127.0.0.1"
	}

	srv := &http.Server{
		Addr:    host + ":" + config.GetEnv().ServerPort,
		Handler: app,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen:", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	// The context is used to inform the server it has 10 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown:", "error", err)
	}

	log.Info("Server gracefully stopped")
}

// Keep in mind: docs appear after second launch, because Swagger
// is generated into Go files. So if we changed files, we generate
// new docs, but still need to restart the server to see them.
func generateSwaggerDocs(log *slog.Logger) {
	if config.GetEnv().EnvMode == env_utils.EnvModeProduction {
		return
	}

	currentDir, err := os.Getwd()
	if err != nil {
		log.Error("Failed to get current directory", "error", err)
		return
	}

	cmd := exec.Command("swag", "init", "-d", currentDir, "-g", "cmd/main.go", "-o", "swagger")

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Error("Failed to generate Swagger docs", "error", err, "output", string(output))
		return
	}

	log.Info("Swagger documentation generated successfully")
}

func enableCors(ginApp *gin.Engine) {
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		ginApp.Use(cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowHeaders: []string{
				"Origin",
				"Content-Length",
				"Content-Type",
				"Authorization",
				"Accept",
				"Accept-Language",
				"Accept-Encoding",
				"Access-Control-Request-Method",
				"Access-Control-Request-Headers",
				"Access-Control-Allow-Methods",
				"Access-Control-Allow-Headers",
				"Access-Control-Allow-Origin",
			},
			AllowCredentials: true,
		}))
	}
}
