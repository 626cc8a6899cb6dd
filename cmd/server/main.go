package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard-api/internal/config"
	"github.com/yukikurage/taskboard-api/internal/database"
	"github.com/yukikurage/taskboard-api/internal/handlers"
	"github.com/yukikurage/taskboard-api/internal/jobs"
	"github.com/yukikurage/taskboard-api/internal/logger"
	"github.com/yukikurage/taskboard-api/internal/middleware"
	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/repository"
	"github.com/yukikurage/taskboard-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Init(cfg.GinMode)
	slogger := logger.Get()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	exceptionRepo := repository.NewExceptionLogRepository(db)

	// Services
	passwordSvc := services.NewPasswordService()
	tokenSvc := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTokenMinutes)
	authService := services.NewAuthService(userRepo, passwordSvc, tokenSvc)
	userService := services.NewUserService(userRepo, passwordSvc)
	taskService := services.NewTaskService(taskRepo)
	cleanupService := services.NewCleanupService(taskRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Background jobs
	scheduler, err := jobs.NewScheduler(cleanupService, slogger)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize Gin router
	r := gin.Default()
	r.Use(middleware.ExceptionLogging(exceptionRepo, slogger))

	requireAuth := middleware.RequireAuth(tokenSvc)
	requireAdmin := middleware.RequireRole(models.RoleAdmin)
	requireEmployee := middleware.RequireRole(models.RoleEmployee)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Management API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh-token", authHandler.RefreshToken)
			auth.POST("/change-password", requireAuth, authHandler.ChangePassword)
			auth.GET("/profile", requireAuth, authHandler.GetProfile)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.POST("", requireAdmin, userHandler.CreateUser)
			users.GET("/created", requireAdmin, userHandler.ListCreatedUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", requireAdmin, userHandler.UpdateUser)
			users.DELETE("/:id", requireAdmin, userHandler.DeleteUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.POST("", requireAdmin, taskHandler.CreateTask)
			tasks.GET("/created", requireAdmin, taskHandler.ListCreatedTasks)
			tasks.GET("/assigned", requireEmployee, taskHandler.ListAssignedTasks)
			tasks.GET("/:id", requireAdmin, taskHandler.GetTask)
			tasks.PUT("/:id", requireAdmin, taskHandler.UpdateTask)
			tasks.PATCH("/:id/status", requireEmployee, taskHandler.UpdateTaskStatus)
			tasks.DELETE("/:id", requireAdmin, taskHandler.DeleteTask)
			tasks.POST("/:id/assign", requireAdmin, taskHandler.AssignUsers)
		}
	}

	// Start server
	slogger.Info("server starting", "addr", ":8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
