package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopverse/shopverse-backend/config"
	"github.com/shopverse/shopverse-backend/internal/app/controller"
	"github.com/shopverse/shopverse-backend/internal/middleware"
)

type Router struct {
	authController         *controller.AuthController
	productController      *controller.ProductController
	cartController         *controller.CartController
	wishlistController     *controller.WishlistController
	orderController        *controller.OrderController
	paymentController      *controller.PaymentController
	couponController       *controller.CouponController
	notificationController *controller.NotificationController
	userController         *controller.UserController
	warehouseController    *controller.WarehouseController
	departmentController   *controller.DepartmentController
	integrationController  *controller.IntegrationController
	reportController       *controller.ReportController
	uploadController       *controller.UploadController
	authMiddleware         *middleware.AuthMiddleware
	config                 *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	wishlistController *controller.WishlistController,
	orderController *controller.OrderController,
	paymentController *controller.PaymentController,
	couponController *controller.CouponController,
	notificationController *controller.NotificationController,
	userController *controller.UserController,
	warehouseController *controller.WarehouseController,
	departmentController *controller.DepartmentController,
	integrationController *controller.IntegrationController,
	reportController *controller.ReportController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:         authController,
		productController:      productController,
		cartController:         cartController,
		wishlistController:     wishlistController,
		orderController:        orderController,
		paymentController:      paymentController,
		couponController:       couponController,
		notificationController: notificationController,
		userController:         userController,
		warehouseController:    warehouseController,
		departmentController:   departmentController,
		integrationController:  integrationController,
		reportController:       reportController,
		uploadController:       uploadController,
		authMiddleware:         authMiddleware,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     r.config.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "SHOPVERSE API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authController.Logout)
			auth.POST("/refresh", r.authController.Refresh)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetProfile)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/filters", r.productController.GetFilters)
			products.GET("/:id", r.productController.GetProduct)
			products.GET("/:id/variants", r.productController.ListVariants)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("/:category/products", r.productController.GetCategoryProducts)
		}

		// Guest carts live in Redis, keyed by a client-generated session ID.
		guestCart := v1.Group("/guest-cart")
		{
			guestCart.GET("/:session_id", r.cartController.GetGuestCart)
			guestCart.POST("/:session_id/items", r.cartController.AddToGuestCart)
		}

		coupons := v1.Group("/coupons")
		{
			coupons.POST("/quote", r.couponController.QuoteCoupon)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/:id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		wishlist := v1.Group("/wishlist")
		wishlist.Use(r.authMiddleware.Authenticate())
		{
			wishlist.GET("", r.wishlistController.GetWishlist)
			wishlist.POST("/toggle", r.wishlistController.ToggleWishlist)
			wishlist.GET("/:product_id", r.wishlistController.CheckWishlist)
			wishlist.DELETE("/:product_id", r.wishlistController.RemoveFromWishlist)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.POST("", r.orderController.CreateOrder)
			orders.GET("", r.orderController.GetOrders)
			orders.GET("/:id", r.orderController.GetOrder)
			orders.POST("/:id/cancel", r.orderController.CancelOrder)
			orders.GET("/:id/payments", r.paymentController.GetOrderPayments)
		}

		payments := v1.Group("/payments")
		payments.Use(r.authMiddleware.Authenticate())
		{
			payments.POST("/checkout", r.paymentController.Checkout)
			payments.GET("", r.paymentController.GetPaymentHistory)
		}

		notifications := v1.Group("/notifications")
		notifications.Use(r.authMiddleware.Authenticate())
		{
			notifications.GET("", r.notificationController.GetNotifications)
			notifications.GET("/unread-count", r.notificationController.GetUnreadCount)
			notifications.PUT("/:id/read", r.notificationController.MarkAsRead)
			notifications.PUT("/read-all", r.notificationController.MarkAllAsRead)
			notifications.GET("/ws", r.notificationController.Connect)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate())
		admin.Use(r.authMiddleware.RequireRole("admin"))
		{
			adminProducts := admin.Group("/products")
			{
				adminProducts.POST("", r.productController.CreateProduct)
				adminProducts.PUT("/:id", r.productController.UpdateProduct)
				adminProducts.DELETE("/:id", r.productController.DeleteProduct)
				adminProducts.POST("/:id/variants", r.productController.CreateVariant)
				adminProducts.DELETE("/:id/variants/:variant_id", r.productController.DeleteVariant)
			}

			adminOrders := admin.Group("/orders")
			{
				adminOrders.GET("", r.orderController.ListAllOrders)
				adminOrders.PUT("/:id/status", r.orderController.UpdateOrderStatus)
			}

			adminCoupons := admin.Group("/coupons")
			{
				adminCoupons.GET("", r.couponController.ListCoupons)
				adminCoupons.POST("", r.couponController.CreateCoupon)
				adminCoupons.PUT("/:id", r.couponController.UpdateCoupon)
				adminCoupons.DELETE("/:id", r.couponController.DeleteCoupon)
			}

			adminUsers := admin.Group("/users")
			{
				adminUsers.GET("", r.userController.ListUsers)
				adminUsers.GET("/:id", r.userController.GetUser)
				adminUsers.PUT("/:id/role", r.userController.UpdateUserRole)
				adminUsers.DELETE("/:id", r.userController.DeleteUser)
			}

			adminWarehouses := admin.Group("/warehouses")
			{
				adminWarehouses.GET("", r.warehouseController.ListWarehouses)
				adminWarehouses.GET("/:id", r.warehouseController.GetWarehouse)
				adminWarehouses.POST("", r.warehouseController.CreateWarehouse)
				adminWarehouses.PUT("/:id", r.warehouseController.UpdateWarehouse)
				adminWarehouses.DELETE("/:id", r.warehouseController.DeleteWarehouse)
			}

			adminDepartments := admin.Group("/departments")
			{
				adminDepartments.GET("", r.departmentController.ListDepartments)
				adminDepartments.GET("/:id", r.departmentController.GetDepartment)
				adminDepartments.POST("", r.departmentController.CreateDepartment)
				adminDepartments.PUT("/:id", r.departmentController.UpdateDepartment)
				adminDepartments.DELETE("/:id", r.departmentController.DeleteDepartment)
			}

			adminEmployees := admin.Group("/employees")
			{
				adminEmployees.GET("", r.departmentController.ListEmployees)
				adminEmployees.POST("", r.departmentController.CreateEmployee)
				adminEmployees.PUT("/:id", r.departmentController.UpdateEmployee)
				adminEmployees.DELETE("/:id", r.departmentController.DeleteEmployee)
			}

			adminIntegrations := admin.Group("/integrations")
			{
				adminIntegrations.GET("", r.integrationController.ListIntegrations)
				adminIntegrations.POST("", r.integrationController.ConnectIntegration)
				adminIntegrations.DELETE("/:id", r.integrationController.DisconnectIntegration)
			}

			adminReports := admin.Group("/reports")
			{
				adminReports.GET("/orders", r.reportController.ExportOrders)
				adminReports.GET("/salaries", r.reportController.ExportSalaries)
			}

			adminUploads := admin.Group("/uploads")
			{
				adminUploads.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
			}
		}
	}

	return router
}
