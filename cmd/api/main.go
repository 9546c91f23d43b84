package main

import (
	_ "backend/api/swagger" // swagger docs
	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handler"
	"backend/internal/logger"
	"backend/internal/middleware"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/internal/tips"
	"backend/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           CrediBook API
// @version         1.0
// @description     Financial management API for freelancers: invoices, receipts, client feedback, goals and the CrediScore.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	if err := logger.Setup(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		log.Fatal().Err(err).Msg("Invalid logging configuration")
	}

	db, err := database.NewConnection(cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Database migration failed")
	}
	log.Info().Msg("Connected to PostgreSQL successfully")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	goalRepo := repository.NewGoalRepository(db)

	crediScoreService := service.NewCrediScoreService(invoiceRepo, receiptRepo, feedbackRepo, userRepo, wsHub)
	invoiceService := service.NewInvoiceService(invoiceRepo, crediScoreService, txManager)
	receiptService := service.NewReceiptService(receiptRepo, crediScoreService, txManager)
	feedbackService := service.NewFeedbackService(feedbackRepo, invoiceRepo, crediScoreService)
	goalService := service.NewGoalService(goalRepo)
	userService := service.NewUserService(userRepo)
	tipsProvider := tips.NewOpenAIProvider(cfg.OpenAIAPIKey)
	dashboardService := service.NewDashboardService(invoiceRepo, receiptRepo, crediScoreService, tipsProvider)

	// Initialize Handlers
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	receiptHandler := handler.NewReceiptHandler(receiptService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)
	goalHandler := handler.NewGoalHandler(goalService)
	userHandler := handler.NewUserHandler(userService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, crediScoreService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.CORSOrigin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint for live CrediScore updates
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	invoiceHandler.RegisterRoutes(router.Group(""))
	receiptHandler.RegisterRoutes(router.Group(""))
	feedbackHandler.RegisterRoutes(router.Group(""))
	goalHandler.RegisterRoutes(router.Group(""))
	userHandler.RegisterRoutes(router.Group(""))
	dashboardHandler.RegisterRoutes(router.Group(""))

	log.Info().Str("port", cfg.Port).Msg("Server listening")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
