// internal/services/catalog_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTag(t *testing.T) {
	svc := NewCatalogService(newTestDB(t))

	tag, err := svc.CreateTag(&CreateTagRequest{Name: "Breakfast", Color: "#49B64E", Slug: "breakfast"})
	require.NoError(t, err)
	assert.Equal(t, "Breakfast", tag.Name)
	assert.Equal(t, "#49B64E", tag.Color)

	// Color defaults when omitted
	plain, err := svc.CreateTag(&CreateTagRequest{Name: "Dinner", Slug: "dinner"})
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", plain.Color)

	_, err = svc.CreateTag(&CreateTagRequest{Name: "Breakfast", Slug: "breakfast-2"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = svc.CreateTag(&CreateTagRequest{Name: "Brunch", Color: "not-a-color", Slug: "brunch"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.CreateTag(&CreateTagRequest{Name: "Brunch", Slug: "Bad Slug"})
	assert.ErrorAs(t, err, &verr)
}

func TestGetTag(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	tag := createTestTag(t, db, "Lunch", "lunch")

	found, err := svc.GetTag(tag.ID)
	require.NoError(t, err)
	assert.Equal(t, tag.Slug, found.Slug)

	_, err = svc.GetTag(tag.ID + 100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateIngredient(t *testing.T) {
	svc := NewCatalogService(newTestDB(t))

	_, err := svc.CreateIngredient(&CreateIngredientRequest{Name: "flour", MeasurementUnit: "g"})
	require.NoError(t, err)

	// Same name with a different unit is a distinct ingredient
	_, err = svc.CreateIngredient(&CreateIngredientRequest{Name: "flour", MeasurementUnit: "kg"})
	require.NoError(t, err)

	_, err = svc.CreateIngredient(&CreateIngredientRequest{Name: "flour", MeasurementUnit: "g"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestListIngredientsSearch(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	createTestIngredient(t, db, "wheat flour", "g")
	createTestIngredient(t, db, "Flour", "kg")
	createTestIngredient(t, db, "milk", "ml")

	all, err := svc.ListIngredients("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	matches, err := svc.ListIngredients("flour")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	// Ordered by name, then unit
	assert.Equal(t, "Flour", matches[0].Name)
	assert.Equal(t, "wheat flour", matches[1].Name)

	none, err := svc.ListIngredients("saffron")
	require.NoError(t, err)
	assert.Empty(t, none)
}
