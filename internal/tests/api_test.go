// internal/tests/api_test.go
package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipebox/recipebox-backend/internal/cache"
	"github.com/recipebox/recipebox-backend/internal/config"
	"github.com/recipebox/recipebox-backend/internal/database"
	"github.com/recipebox/recipebox-backend/internal/handlers"
	"github.com/recipebox/recipebox-backend/internal/i18n"
	"github.com/recipebox/recipebox-backend/internal/middleware"
	"github.com/recipebox/recipebox-backend/internal/models"
	"github.com/recipebox/recipebox-backend/internal/services"
	"github.com/recipebox/recipebox-backend/internal/utils"
)

type APITestSuite struct {
	suite.Suite
	db      *gorm.DB
	router  *gin.Engine
	revoker *cache.TokenRevoker

	author      *models.User
	authorToken string
	fan         *models.User
	fanToken    string
	adminToken  string

	flour *models.Ingredient
}

func (suite *APITestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	suite.Require().NoError(err)
	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	suite.db = db

	suite.Require().NoError(database.RunMigrations(db))
	suite.Require().NoError(database.SeedInitialData(db))

	suite.Require().NoError(i18n.Initialize("../i18n/locales"))

	mr := miniredis.RunT(suite.T())
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	suite.revoker = cache.NewTokenRevoker(redisClient)

	cfg := &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "api-test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
		Media: config.MediaConfig{
			BaseURL:     "http://localhost:8080/media",
			MaxImageKiB: 2048,
		},
	}
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	suite.router = suite.buildRouter(cfg)

	suite.author = suite.createUser("author")
	suite.authorToken = suite.tokenFor(suite.author)
	suite.fan = suite.createUser("fan")
	suite.fanToken = suite.tokenFor(suite.fan)

	var admin models.User
	suite.Require().NoError(db.Where("is_staff = ?", true).First(&admin).Error)
	suite.adminToken = suite.tokenFor(&admin)

	suite.flour = &models.Ingredient{Name: "flour", MeasurementUnit: "g"}
	suite.Require().NoError(db.Create(suite.flour).Error)
}

// buildRouter mirrors the production route layout without the rate limiters.
func (suite *APITestSuite) buildRouter(cfg *config.Config) *gin.Engine {
	storageService, err := services.NewStorageService(cfg)
	suite.Require().NoError(err)

	authService := services.NewAuthService(suite.db, cfg, suite.revoker)
	userService := services.NewUserService(suite.db)
	followService := services.NewFollowService(suite.db)
	catalogService := services.NewCatalogService(suite.db)
	recipeService := services.NewRecipeService(suite.db, storageService)
	membershipService := services.NewMembershipService(suite.db)
	shoppingListService := services.NewShoppingListService(suite.db)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, followService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	recipeHandler := handlers.NewRecipeHandler(recipeService, membershipService, shoppingListService)

	r := gin.New()
	r.Use(middleware.I18nMiddleware())

	v1 := r.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", middleware.AuthRequired(suite.revoker), authHandler.Logout)
	auth.POST("/refresh", authHandler.RefreshToken)
	auth.GET("/me", middleware.AuthRequired(suite.revoker), authHandler.GetProfile)

	users := v1.Group("/users")
	users.GET("", middleware.OptionalAuth(suite.revoker), userHandler.ListUsers)
	users.GET("/me", middleware.AuthRequired(suite.revoker), userHandler.GetMe)
	users.GET("/subscriptions", middleware.AuthRequired(suite.revoker), userHandler.Subscriptions)
	users.GET("/:id", middleware.OptionalAuth(suite.revoker), userHandler.GetUser)
	users.POST("/:id/subscribe", middleware.AuthRequired(suite.revoker), userHandler.Subscribe)
	users.DELETE("/:id/subscribe", middleware.AuthRequired(suite.revoker), userHandler.Unsubscribe)

	tags := v1.Group("/tags")
	tags.GET("", catalogHandler.ListTags)
	tags.GET("/:id", catalogHandler.GetTag)
	tags.POST("", middleware.AuthRequired(suite.revoker), middleware.AdminRequired(), catalogHandler.CreateTag)

	ingredients := v1.Group("/ingredients")
	ingredients.GET("", catalogHandler.ListIngredients)
	ingredients.GET("/:id", catalogHandler.GetIngredient)
	ingredients.POST("", middleware.AuthRequired(suite.revoker), middleware.AdminRequired(), catalogHandler.CreateIngredient)

	recipes := v1.Group("/recipes")
	recipes.GET("", middleware.OptionalAuth(suite.revoker), recipeHandler.ListRecipes)
	recipes.GET("/download_shopping_cart", middleware.AuthRequired(suite.revoker), recipeHandler.DownloadShoppingCart)
	recipes.GET("/:id", middleware.OptionalAuth(suite.revoker), recipeHandler.GetRecipe)
	protected := recipes.Group("", middleware.AuthRequired(suite.revoker))
	protected.POST("", recipeHandler.CreateRecipe)
	protected.PUT("/:id", recipeHandler.UpdateRecipe)
	protected.PATCH("/:id", recipeHandler.UpdateRecipe)
	protected.DELETE("/:id", recipeHandler.DeleteRecipe)
	protected.POST("/:id/favorite", recipeHandler.AddFavorite)
	protected.DELETE("/:id/favorite", recipeHandler.RemoveFavorite)
	protected.POST("/:id/shopping_cart", recipeHandler.AddToShoppingCart)
	protected.DELETE("/:id/shopping_cart", recipeHandler.RemoveFromShoppingCart)

	return r
}

func (suite *APITestSuite) createUser(username string) *models.User {
	user := &models.User{
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Email:     username + "@example.com",
		IsActive:  true,
	}
	suite.Require().NoError(user.SetPassword("password123"))
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *APITestSuite) tokenFor(user *models.User) string {
	token, err := utils.GenerateJWT(user.ID, user.Username, user.IsStaff, 1)
	suite.Require().NoError(err)
	return token
}

func (suite *APITestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, path, &buf)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func (suite *APITestSuite) seededTagID() uint {
	var tag models.Tag
	suite.Require().NoError(suite.db.Where("slug = ?", "breakfast").First(&tag).Error)
	return tag.ID
}

func (suite *APITestSuite) recipeBody(name string) map[string]interface{} {
	return map[string]interface{}{
		"name":         name,
		"text":         "Mix and cook.",
		"image":        "https://example.com/" + name + ".png",
		"cooking_time": 15,
		"tags":         []uint{suite.seededTagID()},
		"ingredients": []map[string]interface{}{
			{"id": suite.flour.ID, "amount": 250},
		},
	}
}

func (suite *APITestSuite) TestAuthFlow() {
	// Register
	w := suite.request("POST", "/v1/auth/register", "", map[string]interface{}{
		"username":   "fresh",
		"first_name": "Fresh",
		"last_name":  "User",
		"email":      "fresh@example.com",
		"password":   "password123",
	})
	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	response := suite.decode(w)
	assert.True(suite.T(), response["success"].(bool))

	// Duplicate registration
	w = suite.request("POST", "/v1/auth/register", "", map[string]interface{}{
		"username":   "fresh2",
		"first_name": "Fresh",
		"last_name":  "User",
		"email":      "fresh@example.com",
		"password":   "password123",
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	// Login
	w = suite.request("POST", "/v1/auth/login", "", map[string]interface{}{
		"email":    "fresh@example.com",
		"password": "password123",
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data := suite.decode(w)["data"].(map[string]interface{})
	token := data["token"].(string)

	// Wrong password
	w = suite.request("POST", "/v1/auth/login", "", map[string]interface{}{
		"email":    "fresh@example.com",
		"password": "wrong-password",
	})
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	// The fresh token works
	w = suite.request("GET", "/v1/users/me", token, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	w = suite.request("GET", "/v1/auth/me", token, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// Logout revokes it
	w = suite.request("POST", "/v1/auth/logout", token, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.request("GET", "/v1/users/me", token, nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *APITestSuite) TestRecipeLifecycle() {
	// Anonymous creation is rejected
	w := suite.request("POST", "/v1/recipes", "", suite.recipeBody("anon"))
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	// Create
	w = suite.request("POST", "/v1/recipes", suite.authorToken, suite.recipeBody("Pancakes"))
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	data := suite.decode(w)["data"].(map[string]interface{})
	recipe := data["recipe"].(map[string]interface{})
	recipeID := uint(recipe["id"].(float64))
	assert.Equal(suite.T(), "Pancakes", recipe["name"])

	path := fmt.Sprintf("/v1/recipes/%d", recipeID)

	// Read
	w = suite.request("GET", path, "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// Non-owner updates are forbidden
	w = suite.request("PUT", path, suite.fanToken, suite.recipeBody("Hijacked"))
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	// Owner update
	w = suite.request("PATCH", path, suite.authorToken, suite.recipeBody("Better pancakes"))
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// Favorite: add, duplicate add, remove, remove again
	w = suite.request("POST", path+"/favorite", suite.fanToken, nil)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	w = suite.request("POST", path+"/favorite", suite.fanToken, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	w = suite.request("DELETE", path+"/favorite", suite.fanToken, nil)
	assert.Equal(suite.T(), http.StatusNoContent, w.Code)
	w = suite.request("DELETE", path+"/favorite", suite.fanToken, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	// Shopping cart and the rendered list
	w = suite.request("POST", path+"/shopping_cart", suite.fanToken, nil)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	w = suite.request("GET", "/v1/recipes/download_shopping_cart", suite.fanToken, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Header().Get("Content-Disposition"), "fan-shopping-list.txt")
	assert.Contains(suite.T(), w.Body.String(), "1. flour 250 g.")

	// Delete, then the recipe and its memberships are gone
	w = suite.request("DELETE", path, suite.authorToken, nil)
	assert.Equal(suite.T(), http.StatusNoContent, w.Code)
	w = suite.request("GET", path, "", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.request("GET", "/v1/recipes/download_shopping_cart", suite.fanToken, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Your shopping cart is empty.")
}

func (suite *APITestSuite) TestCatalogEndpoints() {
	w := suite.request("GET", "/v1/tags", "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// Only staff may extend the catalog
	body := map[string]interface{}{"name": "Snack", "color": "#AA00FF", "slug": "snack"}
	w = suite.request("POST", "/v1/tags", suite.fanToken, body)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.request("POST", "/v1/tags", suite.adminToken, body)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	w = suite.request("POST", "/v1/ingredients", suite.adminToken, map[string]interface{}{
		"name": "saffron", "measurement_unit": "g",
	})
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	w = suite.request("GET", "/v1/ingredients?name=saff", "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data := suite.decode(w)["data"].(map[string]interface{})
	assert.Len(suite.T(), data["ingredients"], 1)
}

func (suite *APITestSuite) TestSubscriptionEndpoints() {
	authorPath := fmt.Sprintf("/v1/users/%d/subscribe", suite.author.ID)
	fanSelfPath := fmt.Sprintf("/v1/users/%d/subscribe", suite.fan.ID)

	// Self subscription is rejected
	w := suite.request("POST", fanSelfPath, suite.fanToken, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.request("POST", authorPath, suite.fanToken, nil)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	w = suite.request("POST", authorPath, suite.fanToken, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.request("GET", "/v1/users/subscriptions", suite.fanToken, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.request("DELETE", authorPath, suite.fanToken, nil)
	assert.Equal(suite.T(), http.StatusNoContent, w.Code)

	w = suite.request("DELETE", authorPath, suite.fanToken, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
