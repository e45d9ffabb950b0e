package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizzie-backend/config"
	"quizzie-backend/internal/handlers"
	"quizzie-backend/internal/middleware"
	"quizzie-backend/internal/repository"
	"quizzie-backend/internal/service"
	"quizzie-backend/pkg/cache"
	"quizzie-backend/pkg/database"
	"quizzie-backend/pkg/messaging"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	log.Println("Configuration loaded")

	pgClient, err := database.NewPostgresClient(&cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	log.Println("Connected to PostgreSQL")
	defer pgClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := pgClient.InitSchema(ctx); err != nil {
		log.Printf("Warning: Failed to initialize PostgreSQL schema: %v", err)
	} else {
		log.Println("PostgreSQL schema initialized")
	}
	cancel()

	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v", err)
		redisClient = nil
	} else {
		log.Println("Connected to Redis")
		defer redisClient.Close()
	}

	rabbitClient, err := messaging.NewRabbitMQClient(&cfg.RabbitMQ)
	if err != nil {
		log.Printf("Warning: Failed to connect to RabbitMQ: %v", err)
		rabbitClient = nil
	} else {
		log.Println("Connected to RabbitMQ")
		defer rabbitClient.Close()
	}

	userRepo := repository.NewUserRepository(pgClient.GetDB())
	quizRepo := repository.NewQuizRepository(pgClient.GetDB())

	var shareRepo service.ShareStore
	if redisClient != nil {
		shareRepo = repository.NewShareRepository(redisClient)
	}

	var publisher service.Publisher
	if rabbitClient != nil {
		publisher = rabbitClient
	}

	authService := service.NewAuthService(userRepo, publisher, cfg.JWT.Secret)
	userService := service.NewUserService(userRepo, quizRepo)
	quizService := service.NewQuizService(quizRepo, userRepo, shareRepo, publisher, cfg.Quiz.PublicMinImpressions)
	takeService := service.NewTakeService(quizRepo, publisher)

	userHandler := handlers.NewUserHandler(authService, userService)
	quizHandler := handlers.NewQuizHandler(quizService, takeService)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "quizzie-backend",
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		if pgClient == nil || redisClient == nil || rabbitClient == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ready",
		})
	})

	userGroup := router.Group("/user")
	{
		userGroup.POST("/signup", userHandler.Signup)
		userGroup.POST("/login", userHandler.Login)
		userGroup.GET("/:id/analytics", userHandler.GetAnalytics)
	}

	userProtected := router.Group("/user")
	userProtected.Use(middleware.JWTAuth(authService))
	{
		userProtected.GET("/profile", userHandler.GetProfile)
		userProtected.PUT("/profile", userHandler.UpdateProfile)
	}

	quizGroup := router.Group("/quiz")
	{
		quizGroup.POST("/create", quizHandler.CreateQuiz)
		quizGroup.GET("/all", quizHandler.GetAllQuizzes)
		quizGroup.GET("/share/:code", quizHandler.ResolveShare)
		quizGroup.POST("/:id/share", quizHandler.ShareQuiz)
		quizGroup.POST("/:id/take", quizHandler.TakeQuiz)
		quizGroup.GET("/:id", quizHandler.GetQuiz)
		quizGroup.PUT("/:id", quizHandler.UpdateQuiz)
		quizGroup.DELETE("/:id", quizHandler.DeleteQuiz)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Quizzie backend HTTP server starting on port %s...", cfg.Server.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: HTTP server shutdown: %v", err)
	}

	log.Println("Quizzie backend stopped")
}
