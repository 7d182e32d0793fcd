// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/buyx/backend/internal/config"
	"github.com/buyx/backend/internal/handlers"
	"github.com/buyx/backend/internal/middleware"
	"github.com/buyx/backend/internal/models"
	"github.com/buyx/backend/internal/services"
	"github.com/buyx/backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(cfg)
	storageService, _ := services.NewStorageService(cfg)
	buyNowStore := services.NewBuyNowStore(30 * time.Minute)

	authService := services.NewAuthService(db, cfg, notificationService)
	productService := services.NewProductService(db)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, cartService, notificationService, buyNowStore)
	reviewService := services.NewReviewService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, reviewService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	distributorHandler := handlers.NewDistributorHandler(productService, orderService, storageService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/distributor/login", authHandler.DistributorLogin)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Catalog routes
		products := v1.Group("/products")
		{
			products.GET("", productHandler.ListProducts)
			products.GET("/:id", middleware.OptionalAuth(), productHandler.GetProduct)
			products.GET("/:id/reviews", productHandler.GetReviews)
			products.POST("/:id/reviews", middleware.AuthRequired(), productHandler.AddReview)
		}

		// Brand list (fixed catalog taxonomy)
		v1.GET("/brands", getBrandsHandler)

		// Cart routes
		cart := v1.Group("/cart")
		cart.Use(middleware.AuthRequired())
		{
			cart.GET("", cartHandler.GetCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:id", cartHandler.UpdateItem)
			cart.DELETE("/items/:id", cartHandler.RemoveItem)
		}

		// Order routes
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.GET("", orderHandler.ListOrders)
			orders.POST("/checkout", middleware.CheckoutRateLimit(), orderHandler.Checkout)
			orders.POST("/buy-now", orderHandler.BuyNow)
			orders.POST("/buy-now/checkout", middleware.CheckoutRateLimit(), orderHandler.CheckoutBuyNow)
			orders.GET("/:number", orderHandler.GetOrder)
			orders.POST("/:number/payment", middleware.CheckoutRateLimit(), orderHandler.ProcessPayment)
		}

		// Distributor console
		distributor := v1.Group("/distributor")
		distributor.Use(middleware.AuthRequired(), middleware.DistributorRequired())
		{
			distributor.GET("/products", distributorHandler.ListProducts)
			distributor.POST("/products", distributorHandler.CreateProduct)
			distributor.PUT("/products/:id", distributorHandler.UpdateProduct)
			distributor.DELETE("/products/:id", distributorHandler.DeleteProduct)
			distributor.POST("/products/upload-images", middleware.UploadRateLimit(), distributorHandler.UploadImages)
			distributor.GET("/orders", distributorHandler.ListOrders)
			distributor.PUT("/orders/:id/status", distributorHandler.UpdateOrderStatus)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}

// Helper handlers for simple endpoints
func getBrandsHandler(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"brands": models.Brands,
	})
}
