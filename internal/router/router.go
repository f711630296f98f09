// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/recipebox/recipebox-backend/internal/cache"
	"github.com/recipebox/recipebox-backend/internal/config"
	"github.com/recipebox/recipebox-backend/internal/handlers"
	"github.com/recipebox/recipebox-backend/internal/middleware"
	"github.com/recipebox/recipebox-backend/internal/services"
	"github.com/recipebox/recipebox-backend/internal/utils"
)

func Initialize(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *gin.Engine {
	// Initialize services
	revoker := cache.NewTokenRevoker(redisClient)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg, revoker)
	userService := services.NewUserService(db)
	followService := services.NewFollowService(db)
	catalogService := services.NewCatalogService(db)
	recipeService := services.NewRecipeService(db, storageService)
	membershipService := services.NewMembershipService(db)
	shoppingListService := services.NewShoppingListService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, followService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	recipeHandler := handlers.NewRecipeHandler(recipeService, membershipService, shoppingListService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.RequestLogMiddleware())

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
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(revoker), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(revoker), authHandler.GetProfile)
		}

		// User routes
		users := v1.Group("/users")
		{
			users.GET("", middleware.OptionalAuth(revoker), userHandler.ListUsers)
			users.GET("/me", middleware.AuthRequired(revoker), userHandler.GetMe)
			users.GET("/subscriptions", middleware.AuthRequired(revoker), userHandler.Subscriptions)
			users.GET("/:id", middleware.OptionalAuth(revoker), userHandler.GetUser)

			// Authenticated user routes
			protected := users.Group("")
			protected.Use(middleware.AuthRequired(revoker))
			{
				protected.POST("/:id/subscribe", userHandler.Subscribe)
				protected.DELETE("/:id/subscribe", userHandler.Unsubscribe)
			}
		}

		// Tag routes
		tags := v1.Group("/tags")
		{
			tags.GET("", catalogHandler.ListTags)
			tags.GET("/:id", catalogHandler.GetTag)
			tags.POST("", middleware.AuthRequired(revoker), middleware.AdminRequired(), catalogHandler.CreateTag)
		}

		// Ingredient routes
		ingredients := v1.Group("/ingredients")
		{
			ingredients.GET("", catalogHandler.ListIngredients)
			ingredients.GET("/:id", catalogHandler.GetIngredient)
			ingredients.POST("", middleware.AuthRequired(revoker), middleware.AdminRequired(), catalogHandler.CreateIngredient)
		}

		// Recipe routes
		recipes := v1.Group("/recipes")
		{
			recipes.GET("", middleware.OptionalAuth(revoker), recipeHandler.ListRecipes)
			recipes.GET("/download_shopping_cart", middleware.AuthRequired(revoker), recipeHandler.DownloadShoppingCart)
			recipes.GET("/:id", middleware.OptionalAuth(revoker), recipeHandler.GetRecipe)

			// Authenticated routes
			protected := recipes.Group("")
			protected.Use(middleware.AuthRequired(revoker))
			{
				protected.POST("", middleware.UploadRateLimit(), recipeHandler.CreateRecipe)
				protected.PUT("/:id", recipeHandler.UpdateRecipe)
				protected.PATCH("/:id", recipeHandler.UpdateRecipe)
				protected.DELETE("/:id", recipeHandler.DeleteRecipe)
				protected.POST("/:id/favorite", recipeHandler.AddFavorite)
				protected.DELETE("/:id/favorite", recipeHandler.RemoveFavorite)
				protected.POST("/:id/shopping_cart", recipeHandler.AddToShoppingCart)
				protected.DELETE("/:id/shopping_cart", recipeHandler.RemoveFromShoppingCart)
			}
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/media", "./uploads/media")
	}

	return r
}
