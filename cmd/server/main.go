package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopverse/shopverse-backend/config"
	"github.com/shopverse/shopverse-backend/internal/app/controller"
	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/internal/app/service"
	"github.com/shopverse/shopverse-backend/internal/db"
	"github.com/shopverse/shopverse-backend/internal/middleware"
	"github.com/shopverse/shopverse-backend/internal/router"
	"github.com/shopverse/shopverse-backend/internal/scheduler"
	"github.com/shopverse/shopverse-backend/internal/storage"
	"github.com/shopverse/shopverse-backend/internal/websocket"
	"github.com/shopverse/shopverse-backend/pkg/logger"
	"github.com/shopverse/shopverse-backend/pkg/payment/mockpay"
	"github.com/shopverse/shopverse-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting SHOPVERSE Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize Redis (guest carts, token blacklist)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize the mock payment gateway
	gateway, err := mockpay.NewClient(mockpay.Config{
		MerchantID:      cfg.Payment.Gateway.MerchantID,
		ProcessingDelay: cfg.Payment.Gateway.ProcessingDelay,
		DeclinedCards:   cfg.Payment.Gateway.DeclinedCards,
	})
	if err != nil {
		logger.Fatal("Failed to initialize payment gateway", err)
	}

	// Initialize S3 storage for presigned uploads
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Start the notification hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	variantRepo := repository.NewProductVariantRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	guestCartStore := repository.NewGuestCartStore(redis.GetClient())
	wishlistRepo := repository.NewWishlistRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	paymentRepo := repository.NewPaymentRepository(db.GetDB())
	couponRepo := repository.NewCouponRepository(db.GetDB())
	notificationRepo := repository.NewNotificationRepository(db.GetDB())
	warehouseRepo := repository.NewWarehouseRepository(db.GetDB())
	departmentRepo := repository.NewDepartmentRepository(db.GetDB())
	integrationRepo := repository.NewIntegrationRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	productService := service.NewProductService(productRepo, variantRepo)
	cartService := service.NewCartService(cartRepo, productRepo, variantRepo, guestCartStore)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo)
	orderService := service.NewOrderService(db.GetDB(), orderRepo, cartRepo, couponRepo)
	couponService := service.NewCouponService(couponRepo)
	notificationService := service.NewNotificationService(notificationRepo, hub)
	paymentService := service.NewPaymentService(gateway, paymentRepo, orderRepo, notificationService)
	userService := service.NewUserService(userRepo)
	warehouseService := service.NewWarehouseService(warehouseRepo)
	departmentService := service.NewDepartmentService(departmentRepo)
	integrationService := service.NewIntegrationService(integrationRepo)
	reportService := service.NewReportService(orderRepo, departmentRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService, cartService)
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService)
	wishlistController := controller.NewWishlistController(wishlistService)
	orderController := controller.NewOrderController(orderService, notificationService)
	paymentController := controller.NewPaymentController(paymentService)
	couponController := controller.NewCouponController(couponService)
	notificationController := controller.NewNotificationController(notificationService, hub)
	userController := controller.NewUserController(userService)
	warehouseController := controller.NewWarehouseController(warehouseService)
	departmentController := controller.NewDepartmentController(departmentService)
	integrationController := controller.NewIntegrationController(integrationService)
	reportController := controller.NewReportController(reportService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the stale order cleanup scheduler
	orderExpiryScheduler := scheduler.NewOrderExpiryScheduler(orderService, cfg.Payment.PendingExpiry)
	if err := orderExpiryScheduler.Start(); err != nil {
		logger.Fatal("Failed to start order expiry scheduler", err)
	}
	defer orderExpiryScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		cartController,
		wishlistController,
		orderController,
		paymentController,
		couponController,
		notificationController,
		userController,
		warehouseController,
		departmentController,
		integrationController,
		reportController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
