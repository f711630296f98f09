// internal/database/ingredients_test.go
package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipebox/recipebox-backend/internal/models"
)

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

	require.NoError(t, db.AutoMigrate(&models.Ingredient{}))
	return db
}

func writeIngredientsFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ingredients.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadIngredients(t *testing.T) {
	db := newTestDB(t)

	path := writeIngredientsFile(t, `[
		{"name": "flour", "measurement_unit": "g"},
		{"name": "flour", "measurement_unit": "kg"},
		{"name": "milk", "measurement_unit": "ml"}
	]`)

	require.NoError(t, LoadIngredients(db, path))

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestLoadIngredientsIdempotent(t *testing.T) {
	db := newTestDB(t)

	path := writeIngredientsFile(t, `[{"name": "flour", "measurement_unit": "g"}]`)

	require.NoError(t, LoadIngredients(db, path))
	require.NoError(t, LoadIngredients(db, path))

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLoadIngredientsSkipsMalformed(t *testing.T) {
	db := newTestDB(t)

	path := writeIngredientsFile(t, `[
		{"name": "", "measurement_unit": "g"},
		{"name": "salt"},
		{"name": "pepper", "measurement_unit": "g"}
	]`)

	require.NoError(t, LoadIngredients(db, path))

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLoadIngredientsMissingFile(t *testing.T) {
	db := newTestDB(t)
	assert.Error(t, LoadIngredients(db, "/does/not/exist.json"))
}
