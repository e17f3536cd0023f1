package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yourusername/bookstore-api/internal/config"
	"github.com/yourusername/bookstore-api/internal/handler"
	"github.com/yourusername/bookstore-api/internal/middleware"
	pgRepo "github.com/yourusername/bookstore-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/bookstore-api/internal/repository/redis"
	"github.com/yourusername/bookstore-api/internal/service"
	"github.com/yourusername/bookstore-api/pkg/auth"
	"github.com/yourusername/bookstore-api/pkg/database"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Loading configuration from %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Repositories
	userRepo := pgRepo.NewUserRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	userQuizRepo := pgRepo.NewUserQuizRepo(db)
	couponRepo := pgRepo.NewCouponRepo(db)
	orderRepo := pgRepo.NewOrderRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Services
	quizService := service.NewQuizService(quizRepo, userQuizRepo, couponRepo, cacheRepo)
	couponService := service.NewCouponService(couponRepo)
	paymentService := service.NewPaymentService(orderRepo, couponService)
	analyticsService := service.NewAnalyticsService(userRepo, orderRepo, quizRepo)

	// Seed or heal the active quiz before serving traffic.
	if err := quizService.EnsureDefaultQuiz(); err != nil {
		log.Printf("Failed to ensure default quiz: %v", err)
		os.Exit(1)
	}

	// Handlers
	quizHandler := handler.NewQuizHandler(quizService)
	couponHandler := handler.NewCouponHandler(couponService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		quiz := api.Group("/quiz")
		{
			quiz.GET("/active", authMiddleware.OptionalAuth(), quizHandler.GetActiveQuiz)

			authed := quiz.Group("/")
			authed.Use(authMiddleware.RequireAuth())
			{
				authed.POST("/submit", quizHandler.SubmitQuiz)
				authed.POST("/reset-my-completion", quizHandler.ResetMyCompletion)
			}

			admin := quiz.Group("/")
			admin.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
			{
				admin.GET("/all", quizHandler.ListQuizzes)
				admin.POST("/create", quizHandler.CreateQuiz)
				admin.DELETE("/:id", middleware.ExtractUintParam("id", "quizID"), quizHandler.DeleteQuiz)
				admin.PATCH("/:id/activate", middleware.ExtractUintParam("id", "quizID"), quizHandler.ActivateQuiz)
				admin.GET("/debug/user-quizzes", quizHandler.DebugUserQuizzes)
			}
		}

		coupons := api.Group("/coupons")
		coupons.Use(authMiddleware.RequireAuth())
		{
			coupons.GET("/active", couponHandler.GetActiveCoupon)
			coupons.POST("/validate", couponHandler.ValidateCoupon)
		}

		payments := api.Group("/payments")
		payments.Use(authMiddleware.RequireAuth())
		{
			payments.POST("/checkout", paymentHandler.Checkout)
			payments.GET("/orders", paymentHandler.ListOrders)
			payments.GET("/orders/:id", middleware.ExtractUintParam("id", "orderID"), paymentHandler.GetOrder)
		}

		analytics := api.Group("/analytics")
		analytics.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			analytics.GET("", analyticsHandler.Summary)
			analytics.GET("/daily-sales", analyticsHandler.DailySales)
			analytics.GET("/export", analyticsHandler.ExportOrders)
		}
	}

	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Failed to close Redis client: %v", err)
	}
	if sqlDB, err := database.GetSQLDB(db); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Failed to close database connection: %v", err)
		}
	}

	log.Println("Server stopped")
}
