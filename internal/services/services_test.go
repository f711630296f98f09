// internal/services/services_test.go
package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipebox/recipebox-backend/internal/config"
	"github.com/recipebox/recipebox-backend/internal/models"
)

// newTestDB opens an in-memory database migrated to the full schema.
// A single connection keeps every query on the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.ShoppingCart{},
	))

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
		Media: config.MediaConfig{
			BaseURL:     "http://localhost:8080/media",
			MaxImageKiB: 2048,
		},
	}
}

func newTestStorageService(t *testing.T) *StorageService {
	t.Helper()
	storageService, err := NewStorageService(newTestConfig())
	require.NoError(t, err)
	return storageService
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Email:     username + "@example.com",
		IsActive:  true,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestTag(t *testing.T, db *gorm.DB, name, slug string) *models.Tag {
	t.Helper()

	tag := &models.Tag{Name: name, Color: "#49B64E", Slug: slug}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

func createTestIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()

	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

func newRecipeRequest(name string, tagIDs []uint, ingredients []IngredientAmountRequest) *RecipeRequest {
	return &RecipeRequest{
		Name:        name,
		Text:        "Mix everything and cook.",
		Image:       "https://example.com/images/" + name + ".png",
		CookingTime: 30,
		Tags:        tagIDs,
		Ingredients: ingredients,
	}
}

func createTestRecipe(t *testing.T, db *gorm.DB, authorID uint, name string, tagIDs []uint, ingredients []IngredientAmountRequest) *RecipeResponse {
	t.Helper()

	svc := NewRecipeService(db, newTestStorageService(t))
	recipe, err := svc.CreateRecipe(authorID, newRecipeRequest(name, tagIDs, ingredients))
	require.NoError(t, err)
	return recipe
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}
