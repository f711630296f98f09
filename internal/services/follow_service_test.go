// internal/services/follow_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebox/recipebox-backend/internal/utils"
)

func TestSubscribe(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)

	reader := createTestUser(t, db, "reader")
	author := createTestUser(t, db, "writer")

	subscription, err := svc.Subscribe(reader.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, author.ID, subscription.ID)
	assert.True(t, subscription.IsSubscribed)

	_, err = svc.Subscribe(reader.ID, author.ID)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestSubscribeSelf(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)

	reader := createTestUser(t, db, "reader")

	_, err := svc.Subscribe(reader.ID, reader.ID)
	assert.ErrorIs(t, err, ErrSelfFollow)
}

func TestSubscribeUnknownAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)

	reader := createTestUser(t, db, "reader")

	_, err := svc.Subscribe(reader.ID, reader.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnsubscribe(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)

	reader := createTestUser(t, db, "reader")
	author := createTestUser(t, db, "writer")

	err := svc.Unsubscribe(reader.ID, author.ID)
	assert.ErrorIs(t, err, ErrNotMember)

	_, err = svc.Subscribe(reader.ID, author.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Unsubscribe(reader.ID, author.ID))

	err = svc.Unsubscribe(reader.ID, author.ID)
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestSubscriptions(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)

	reader := createTestUser(t, db, "reader")
	writer := createTestUser(t, db, "writer")
	other := createTestUser(t, db, "other")

	tag := createTestTag(t, db, "Lunch", "lunch")
	flour := createTestIngredient(t, db, "flour", "g")
	for _, name := range []string{"Bread", "Buns", "Bagels"} {
		createTestRecipe(t, db, writer.ID, name, []uint{tag.ID}, []IngredientAmountRequest{
			{ID: flour.ID, Amount: 100},
		})
	}

	_, err := svc.Subscribe(reader.ID, writer.ID)
	require.NoError(t, err)

	params := utils.PaginationParams{Page: 1, Limit: 20}

	subscriptions, total, err := svc.Subscriptions(reader.ID, params, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, subscriptions, 1)
	assert.Equal(t, writer.ID, subscriptions[0].ID)
	assert.EqualValues(t, 3, subscriptions[0].RecipesCount)
	assert.Len(t, subscriptions[0].Recipes, 3)

	// recipes_limit trims the embedded list but not the count
	subscriptions, _, err = svc.Subscriptions(reader.ID, params, 2)
	require.NoError(t, err)
	require.Len(t, subscriptions, 1)
	assert.EqualValues(t, 3, subscriptions[0].RecipesCount)
	assert.Len(t, subscriptions[0].Recipes, 2)

	// Followers of nobody see an empty page
	subscriptions, total, err = svc.Subscriptions(other.ID, params, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, subscriptions)
}
