// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/stockadoodle/backend/internal/config"
	"github.com/stockadoodle/backend/internal/handlers"
	"github.com/stockadoodle/backend/internal/middleware"
	"github.com/stockadoodle/backend/internal/models"
	"github.com/stockadoodle/backend/internal/services"
	"github.com/stockadoodle/backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	activityService := services.NewActivityService(db)
	notificationService := services.NewNotificationService(cfg)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg, activityService)
	mfaService := services.NewMFAService(cfg, notificationService)
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	productService := services.NewProductService(db, activityService)
	inventoryService := services.NewInventoryService(db, activityService)
	salesService := services.NewSalesService(db, activityService)
	metricsService := services.NewMetricsService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, mfaService)
	userHandler := handlers.NewUserHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService, inventoryService, storageService)
	saleHandler := handlers.NewSaleHandler(salesService)
	metricsHandler := handlers.NewMetricsHandler(metricsService)
	logHandler := handlers.NewLogHandler(activityService)
	dashboardHandler := handlers.NewDashboardHandler(productService, inventoryService, salesService, userService, metricsService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	adminOnly := middleware.RoleRequired(string(models.RoleAdmin))
	managerUp := middleware.RoleRequired(string(models.RoleAdmin), string(models.RoleManager))

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.PrometheusMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.ActivityLogMiddleware(activityService))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/mfa/send", authHandler.SendMFACode)
			auth.POST("/mfa/verify", authHandler.VerifyMFACode)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// User management (admin only)
		users := v1.Group("/users")
		users.Use(middleware.AuthRequired(), adminOnly)
		{
			users.GET("", userHandler.GetUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		// Category routes
		categories := v1.Group("/categories")
		{
			categories.GET("", middleware.OptionalAuth(), categoryHandler.GetCategories)

			protected := categories.Group("")
			protected.Use(middleware.AuthRequired(), managerUp)
			{
				protected.POST("", categoryHandler.CreateCategory)
				protected.PUT("/:id", categoryHandler.UpdateCategory)
				protected.DELETE("/:id", categoryHandler.DeleteCategory)
			}
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), productHandler.GetProducts)
			products.GET("/low-stock", middleware.AuthRequired(), productHandler.GetLowStock)
			products.GET("/expiring", middleware.AuthRequired(), productHandler.GetExpiring)
			products.GET("/:id", middleware.OptionalAuth(), productHandler.GetProduct)

			protected := products.Group("")
			protected.Use(middleware.AuthRequired(), managerUp)
			{
				protected.POST("", productHandler.CreateProduct)
				protected.PUT("/:id", productHandler.UpdateProduct)
				protected.DELETE("/:id", productHandler.DeleteProduct)
				protected.POST("/:id/restock", productHandler.RestockProduct)
				protected.POST("/:id/dispose", productHandler.DisposeProduct)
				protected.POST("/:id/image", middleware.UploadRateLimit(), productHandler.UploadProductImage)
			}
		}

		// Sale routes
		sales := v1.Group("/sales")
		sales.Use(middleware.AuthRequired())
		{
			sales.POST("", saleHandler.RecordSale)
			sales.GET("/report", managerUp, saleHandler.GetSalesReport)
			sales.GET("/:id", saleHandler.GetSale)
			sales.DELETE("/:id", managerUp, saleHandler.UndoSale)
		}

		// Retailer metrics routes
		metricsGroup := v1.Group("/metrics")
		metricsGroup.Use(middleware.AuthRequired())
		{
			metricsGroup.GET("/leaderboard", metricsHandler.GetLeaderboard)
			metricsGroup.GET("/retailers/:id", metricsHandler.GetRetailerMetrics)
		}

		// Activity log routes
		logs := v1.Group("/logs")
		logs.Use(middleware.AuthRequired())
		{
			// Desktop clients record local actions here
			logs.POST("/desktop", logHandler.RecordDesktopAction)

			// Reading the trail is for managers and admins
			logs.GET("", managerUp, logHandler.GetLogs)
			logs.GET("/products/:id", managerUp, logHandler.GetProductLogs)
			logs.GET("/users/:id", managerUp, logHandler.GetUserLogs)
		}

		// Dashboard routes
		dashboard := v1.Group("/dashboard")
		dashboard.Use(middleware.AuthRequired())
		{
			dashboard.GET("/admin", adminOnly, dashboardHandler.GetAdminDashboard)
			dashboard.GET("/manager", managerUp, dashboardHandler.GetManagerDashboard)
			dashboard.GET("/retailer", dashboardHandler.GetRetailerDashboard)
		}
	}

	return r
}
