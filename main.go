package main

import (
	"log"
	"net/http"

	"taskflow-be/internal/cache"
	"taskflow-be/internal/config"
	"taskflow-be/internal/controllers"
	"taskflow-be/internal/database"
	"taskflow-be/internal/jwt"
	"taskflow-be/internal/middleware"
	"taskflow-be/internal/repository"
	"taskflow-be/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var userCache cache.Cache
	if cfg.RedisURL != "" {
		userCache, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
			userCache = nil
		} else {
			log.Println("Connected to Redis cache")
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, cfg.QueryTimeout)
	taskRepo := repository.NewTaskRepository(db, cfg.QueryTimeout)
	noteRepo := repository.NewNoteRepository(db, cfg.QueryTimeout)
	postRepo := repository.NewPostRepository(db, cfg.QueryTimeout)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, userCache)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	userController := controllers.NewUserController(authService)
	taskController := controllers.NewTaskController(taskRepo)
	noteController := controllers.NewNoteController(noteRepo)
	postController := controllers.NewPostController(postRepo)
	healthController := controllers.NewHealthController(db, cfg.QueryTimeout)

	// Create a Gin router
	router := gin.Default()
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "TaskFlow API is running",
			"version": "1.0.0",
		})
	})
	router.GET("/health", healthController.Check)

	router.POST("/auth/signup", authController.Signup)
	router.POST("/auth/login", authController.Login)

	// Protected routes - require a valid bearer token
	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService, userRepo, userCache))
	{
		protected.GET("/user/profile", userController.GetProfile)
		protected.PUT("/user/profile", userController.UpdateProfile)

		protected.POST("/tasks", taskController.Create)
		protected.GET("/tasks", taskController.List)
		protected.GET("/tasks/:id", taskController.Get)
		protected.PUT("/tasks/:id", taskController.Update)
		protected.DELETE("/tasks/:id", taskController.Delete)

		protected.POST("/notes", noteController.Create)
		protected.GET("/notes", noteController.List)
		protected.GET("/notes/:id", noteController.Get)
		protected.PUT("/notes/:id", noteController.Update)
		protected.DELETE("/notes/:id", noteController.Delete)

		protected.POST("/posts", postController.Create)
		protected.GET("/posts", postController.List)
		protected.GET("/posts/:id", postController.Get)
		protected.PUT("/posts/:id", postController.Update)
		protected.DELETE("/posts/:id", postController.Delete)
	}

	// Token-introspection endpoints: off unless explicitly enabled
	if cfg.EnableDebug {
		log.Println("Warning: debug endpoints are enabled")
		debugController := controllers.NewDebugController(jwtService)
		debug := router.Group("/debug")
		debug.POST("/decode-token", debugController.DecodeToken)
		debug.GET("/token-info",
			middleware.AuthMiddleware(jwtService, userRepo, userCache),
			debugController.TokenInfo,
		)
	}

	log.Printf("Server starting on http://localhost:%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
