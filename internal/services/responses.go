// internal/services/responses.go
package services

import (
	"gorm.io/gorm"

	"github.com/recipebox/recipebox-backend/internal/models"
)

// Response shapes returned to handlers. Recipes carry per-viewer flags
// (is_favorited, is_in_shopping_cart, author.is_subscribed), so models are
// never serialized directly.

type UserResponse struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	IsSubscribed bool   `json:"is_subscribed"`
}

type RecipeIngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type RecipeResponse struct {
	ID               uint                       `json:"id"`
	Tags             []models.Tag               `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

type ShortRecipeResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

type SubscriptionResponse struct {
	UserResponse
	Recipes      []ShortRecipeResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}

func newUserResponse(user *models.User, isSubscribed bool) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		IsSubscribed: isSubscribed,
	}
}

func newShortRecipeResponse(recipe *models.Recipe) ShortRecipeResponse {
	return ShortRecipeResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

// viewerFlags holds per-viewer membership lookups for a batch of recipes.
type viewerFlags struct {
	favorited  map[uint]bool
	inCart     map[uint]bool
	subscribed map[uint]bool
}

// loadViewerFlags gathers the viewer's favorites, cart entries and
// subscriptions for the given recipes with three IN queries.
func loadViewerFlags(db *gorm.DB, recipes []models.Recipe, viewerID *uint) (*viewerFlags, error) {
	flags := &viewerFlags{
		favorited:  make(map[uint]bool),
		inCart:     make(map[uint]bool),
		subscribed: make(map[uint]bool),
	}
	if viewerID == nil || len(recipes) == 0 {
		return flags, nil
	}

	recipeIDs := make([]uint, 0, len(recipes))
	authorIDs := make([]uint, 0, len(recipes))
	for _, recipe := range recipes {
		recipeIDs = append(recipeIDs, recipe.ID)
		authorIDs = append(authorIDs, recipe.AuthorID)
	}

	var favoriteIDs []uint
	if err := db.Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id IN ?", *viewerID, recipeIDs).
		Pluck("recipe_id", &favoriteIDs).Error; err != nil {
		return nil, err
	}
	for _, id := range favoriteIDs {
		flags.favorited[id] = true
	}

	var cartIDs []uint
	if err := db.Model(&models.ShoppingCart{}).
		Where("user_id = ? AND recipe_id IN ?", *viewerID, recipeIDs).
		Pluck("recipe_id", &cartIDs).Error; err != nil {
		return nil, err
	}
	for _, id := range cartIDs {
		flags.inCart[id] = true
	}

	var followedIDs []uint
	if err := db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id IN ?", *viewerID, authorIDs).
		Pluck("author_id", &followedIDs).Error; err != nil {
		return nil, err
	}
	for _, id := range followedIDs {
		flags.subscribed[id] = true
	}

	return flags, nil
}

// buildRecipeResponses converts preloaded recipes into response bodies.
// Recipes must carry Author, Tags and RecipeIngredients.Ingredient.
func buildRecipeResponses(db *gorm.DB, recipes []models.Recipe, viewerID *uint) ([]RecipeResponse, error) {
	flags, err := loadViewerFlags(db, recipes, viewerID)
	if err != nil {
		return nil, err
	}

	responses := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		recipe := &recipes[i]

		ingredients := make([]RecipeIngredientResponse, 0, len(recipe.RecipeIngredients))
		for _, ri := range recipe.RecipeIngredients {
			ingredients = append(ingredients, RecipeIngredientResponse{
				ID:              ri.IngredientID,
				Name:            ri.Ingredient.Name,
				MeasurementUnit: ri.Ingredient.MeasurementUnit,
				Amount:          ri.Amount,
			})
		}

		tags := recipe.Tags
		if tags == nil {
			tags = []models.Tag{}
		}

		responses = append(responses, RecipeResponse{
			ID:               recipe.ID,
			Tags:             tags,
			Author:           newUserResponse(&recipe.Author, flags.subscribed[recipe.AuthorID]),
			Ingredients:      ingredients,
			IsFavorited:      flags.favorited[recipe.ID],
			IsInShoppingCart: flags.inCart[recipe.ID],
			Name:             recipe.Name,
			Image:            recipe.Image,
			Text:             recipe.Text,
			CookingTime:      recipe.CookingTime,
		})
	}

	return responses, nil
}
