// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eshopdev/eshop-backend/internal/config"
	"github.com/eshopdev/eshop-backend/internal/handlers"
	"github.com/eshopdev/eshop-backend/internal/middleware"
	"github.com/eshopdev/eshop-backend/internal/models"
	"github.com/eshopdev/eshop-backend/internal/services"
	"github.com/eshopdev/eshop-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService := services.NewStorageService(cfg)
	paymentService := services.NewPaymentService(&cfg.Payment)

	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	adminService := services.NewAdminService(db, userService)
	categoryService := services.NewCategoryService(db)
	productService := services.NewProductService(db)
	storeService := services.NewStoreService(db)
	supplierService := services.NewSupplierService(db)
	reviewService := services.NewReviewService(db)
	saleService := services.NewSaleService(db, paymentService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	adminHandler := handlers.NewAdminHandler(adminService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	storeHandler := handlers.NewStoreHandler(storeService)
	supplierHandler := handlers.NewSupplierHandler(supplierService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	saleHandler := handlers.NewSaleHandler(saleService)
	enumHandler := handlers.NewEnumHandler()
	uploadHandler := handlers.NewUploadHandler(storageService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.GeneralRateLimit())

	// Without S3 the storage service writes uploads to local disk, so
	// serve that directory under the URLs it hands out.
	if cfg.AWS.AccessKeyID == "" {
		r.Static("/uploads", cfg.Server.UploadDir)
	}

	admins := middleware.RolesRequired(models.RoleAdmin)
	adminsAndEmployees := middleware.RolesRequired(models.RoleAdmin, models.RoleEmployee)
	adminsAndManagers := middleware.RolesRequired(models.RoleAdmin, models.RoleSupplierManager)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Authentication routes
	auth := r.Group("/auth")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", middleware.AuthRequired(db), authHandler.Logout)
		auth.GET("/profile", middleware.AuthRequired(db), authHandler.Profile)
	}

	// User routes
	users := r.Group("/users")
	users.Use(middleware.AuthRequired(db))
	{
		users.GET("", userHandler.GetAllUsers)
		users.PATCH("/me", userHandler.UpdateCurrentUser)
		users.DELETE("/me", userHandler.DeleteCurrentUser)
		users.GET("/:id", userHandler.GetUserByID)
	}

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(db), admins)
	{
		admin.GET("/statistics", adminHandler.GetStatistics)
		admin.PATCH("/ban/:id", adminHandler.BanUser)
		admin.PATCH("/restore/:id", adminHandler.RestoreUser)
		admin.PATCH("/roles/:id", adminHandler.ChangeRole)
	}

	// Category routes
	categories := r.Group("/categories")
	{
		categories.GET("", categoryHandler.GetAllCategories)
		categories.GET("/:id", categoryHandler.GetCategoryByID)

		protected := categories.Group("")
		protected.Use(middleware.AuthRequired(db), admins)
		{
			protected.POST("", categoryHandler.CreateCategory)
			protected.PATCH("/:id", categoryHandler.UpdateCategory)
			protected.DELETE("/:id", categoryHandler.DeleteCategory)
		}
	}

	// Product routes
	products := r.Group("/products")
	{
		products.GET("", productHandler.GetAllProducts)
		products.GET("/:id", productHandler.GetProductByID)

		protected := products.Group("")
		protected.Use(middleware.AuthRequired(db), admins)
		{
			protected.POST("", productHandler.CreateProduct)
			protected.PATCH("/:id", productHandler.UpdateProduct)
			protected.DELETE("/:id", productHandler.DeleteProduct)
		}
	}

	// Store routes
	stores := r.Group("/stores")
	{
		stores.GET("", storeHandler.GetAllStores)
		stores.GET("/:id", storeHandler.GetStoreByID)

		protected := stores.Group("")
		protected.Use(middleware.AuthRequired(db), admins)
		{
			protected.POST("", storeHandler.CreateStore)
			protected.PATCH("/:id", storeHandler.UpdateStore)
			protected.DELETE("/:id", storeHandler.DeleteStore)
		}
	}

	// Supplier routes
	suppliers := r.Group("/suppliers")
	{
		suppliers.GET("", supplierHandler.GetAllSuppliers)
		suppliers.GET("/:id", supplierHandler.GetSupplierByID)

		protected := suppliers.Group("")
		protected.Use(middleware.AuthRequired(db))
		{
			protected.POST("", adminsAndManagers, supplierHandler.CreateSupplier)
			protected.PATCH("/:id", adminsAndManagers, supplierHandler.UpdateSupplier)
			protected.DELETE("/:id", admins, supplierHandler.DeleteSupplier)
		}
	}

	// Review routes
	reviews := r.Group("/reviews")
	{
		reviews.GET("/product/:productId", reviewHandler.GetReviewsByProduct)
		reviews.GET("/:id", reviewHandler.GetReviewByID)

		protected := reviews.Group("")
		protected.Use(middleware.AuthRequired(db))
		{
			protected.GET("/my", reviewHandler.GetMyReviews)
			protected.GET("/user/:userId", admins, reviewHandler.GetReviewsByUser)
			protected.POST("", reviewHandler.CreateReview)
			protected.PATCH("/:id", reviewHandler.UpdateReview)
			protected.DELETE("/:id", reviewHandler.DeleteReview)
		}
	}

	// Sale routes
	sales := r.Group("/sales")
	sales.Use(middleware.AuthRequired(db))
	{
		sales.GET("", adminsAndEmployees, saleHandler.GetAllSales)
		sales.GET("/:id", adminsAndEmployees, saleHandler.GetSaleByID)
		sales.POST("", middleware.RolesRequired(models.RoleEmployee), saleHandler.CreateSale)
		sales.PATCH("/:id", adminsAndEmployees, saleHandler.UpdateSale)
	}

	// Enum routes
	enums := r.Group("/enums")
	{
		enums.GET("/roles", enumHandler.GetRoles)
		enums.GET("/statuses", enumHandler.GetStatuses)
		enums.GET("/payment-methods", enumHandler.GetPaymentMethods)
		enums.GET("/payment-statuses", enumHandler.GetPaymentStatuses)
	}

	// Upload routes
	uploads := r.Group("/uploads")
	uploads.Use(middleware.AuthRequired(db), middleware.UploadRateLimit())
	{
		uploads.POST("", uploadHandler.UploadFile)
	}

	return r
}
