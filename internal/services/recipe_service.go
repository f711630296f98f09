// internal/services/recipe_service.go
package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/recipebox/recipebox-backend/internal/models"
	"github.com/recipebox/recipebox-backend/internal/utils"
)

// RecipeService validates and persists recipes together with their tag and
// ingredient associations. Validation runs before any write; the row and all
// association rows commit in one transaction or not at all.
type RecipeService struct {
	db             *gorm.DB
	storageService *StorageService
}

type IngredientAmountRequest struct {
	ID     uint `json:"id" validate:"required"`
	Amount int  `json:"amount" validate:"required,min=1,max=32000"`
}

type RecipeRequest struct {
	Name        string                    `json:"name" validate:"required,max=200"`
	Text        string                    `json:"text" validate:"required"`
	Image       string                    `json:"image" validate:"required"`
	CookingTime int                       `json:"cooking_time" validate:"required,min=1,max=32000"`
	Tags        []uint                    `json:"tags" validate:"required,min=1"`
	Ingredients []IngredientAmountRequest `json:"ingredients" validate:"required,min=1,dive"`
}

type RecipeFilterParams struct {
	utils.PaginationParams
	TagSlugs         []string
	Author           string // author id or "me"
	IsFavorited      bool
	IsInShoppingCart bool
}

func NewRecipeService(db *gorm.DB, storageService *StorageService) *RecipeService {
	return &RecipeService{
		db:             db,
		storageService: storageService,
	}
}

// validateRequest checks structure and duplicates, then resolves every
// referenced tag and ingredient id. Pure reads only; no writes happen here.
func (s *RecipeService) validateRequest(req *RecipeRequest) ([]models.Tag, []models.Ingredient, error) {
	if err := utils.ValidateStruct(req); err != nil {
		verr := &ValidationError{}
		for _, fe := range utils.GetValidationErrors(err) {
			verr.Fields = append(verr.Fields, FieldError{Field: fe.Field, Message: fe.Message})
		}
		return nil, nil, verr
	}

	seenTags := make(map[uint]bool, len(req.Tags))
	for _, id := range req.Tags {
		if seenTags[id] {
			return nil, nil, newValidationError("tags", fmt.Sprintf("duplicate tag id %d", id))
		}
		seenTags[id] = true
	}

	seenIngredients := make(map[uint]bool, len(req.Ingredients))
	for _, item := range req.Ingredients {
		if seenIngredients[item.ID] {
			return nil, nil, newValidationError("ingredients", fmt.Sprintf("duplicate ingredient id %d", item.ID))
		}
		seenIngredients[item.ID] = true
	}

	var tags []models.Tag
	if err := s.db.Where("id IN ?", req.Tags).Find(&tags).Error; err != nil {
		return nil, nil, fmt.Errorf("database error: %w", err)
	}
	if len(tags) != len(req.Tags) {
		return nil, nil, newValidationError("tags", "one or more tag ids do not exist")
	}

	ingredientIDs := make([]uint, 0, len(req.Ingredients))
	for _, item := range req.Ingredients {
		ingredientIDs = append(ingredientIDs, item.ID)
	}
	var ingredients []models.Ingredient
	if err := s.db.Where("id IN ?", ingredientIDs).Find(&ingredients).Error; err != nil {
		return nil, nil, fmt.Errorf("database error: %w", err)
	}
	if len(ingredients) != len(req.Ingredients) {
		return nil, nil, newValidationError("ingredients", "one or more ingredient ids do not exist")
	}

	return tags, ingredients, nil
}

func (s *RecipeService) CreateRecipe(authorID uint, req *RecipeRequest) (*RecipeResponse, error) {
	tags, _, err := s.validateRequest(req)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.storageService.StoreImage(req.Image)
	if err != nil {
		return nil, newValidationError("image", err.Error())
	}

	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Image:       imageURL,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}

		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return fmt.Errorf("failed to link tags: %w", err)
		}

		return createRecipeIngredients(tx, recipe.ID, req.Ingredients)
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(recipe.ID, &authorID)
}

func (s *RecipeService) UpdateRecipe(recipeID, actorID uint, isStaff bool, req *RecipeRequest) (*RecipeResponse, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if recipe.AuthorID != actorID && !isStaff {
		return nil, ErrPermissionDenied
	}

	tags, _, err := s.validateRequest(req)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.storageService.StoreImage(req.Image)
	if err != nil {
		return nil, newValidationError("image", err.Error())
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":         req.Name,
			"text":         req.Text,
			"image":        imageURL,
			"cooking_time": req.CookingTime,
		}
		if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}

		// Associations are replaced wholesale, never merged
		if err := tx.Model(&recipe).Association("Tags").Replace(tags); err != nil {
			return fmt.Errorf("failed to replace tags: %w", err)
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).
			Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to clear recipe ingredients: %w", err)
		}

		return createRecipeIngredients(tx, recipe.ID, req.Ingredients)
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(recipe.ID, &actorID)
}

func (s *RecipeService) DeleteRecipe(recipeID, actorID uint, isStaff bool) error {
	var recipe models.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if recipe.AuthorID != actorID && !isStaff {
		return ErrPermissionDenied
	}

	// Referential cleanup: associations and membership rows go with the recipe
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to delete recipe ingredients: %w", err)
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Favorite{}).Error; err != nil {
			return fmt.Errorf("failed to delete favorites: %w", err)
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.ShoppingCart{}).Error; err != nil {
			return fmt.Errorf("failed to delete shopping cart entries: %w", err)
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return fmt.Errorf("failed to unlink tags: %w", err)
		}
		if err := tx.Delete(&recipe).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
}

func (s *RecipeService) GetRecipe(recipeID uint, viewerID *uint) (*RecipeResponse, error) {
	var recipe models.Recipe
	err := s.db.Preload("Author").Preload("Tags").
		Preload("RecipeIngredients.Ingredient").
		First(&recipe, recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	responses, err := buildRecipeResponses(s.db, []models.Recipe{recipe}, viewerID)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &responses[0], nil
}

func (s *RecipeService) ListRecipes(params RecipeFilterParams, viewerID *uint) ([]RecipeResponse, int64, error) {
	query := s.db.Model(&models.Recipe{})

	if len(params.TagSlugs) > 0 {
		query = query.Where(
			"recipes.id IN (?)",
			s.db.Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", params.TagSlugs),
		)
	}

	if params.Author != "" {
		if params.Author == "me" {
			if viewerID != nil {
				query = query.Where("recipes.author_id = ?", *viewerID)
			}
		} else if authorID, err := strconv.ParseUint(params.Author, 10, 64); err == nil {
			query = query.Where("recipes.author_id = ?", authorID)
		}
	}

	if params.IsFavorited && viewerID != nil {
		query = query.Where(
			"recipes.id IN (?)",
			s.db.Model(&models.Favorite{}).Select("recipe_id").Where("user_id = ?", *viewerID),
		)
	}

	if params.IsInShoppingCart && viewerID != nil {
		query = query.Where(
			"recipes.id IN (?)",
			s.db.Model(&models.ShoppingCart{}).Select("recipe_id").Where("user_id = ?", *viewerID),
		)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(recipes.name) LIKE ?", searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	query = query.Order("recipes.created_at DESC")
	query = utils.ApplyPagination(query, params.PaginationParams)

	var recipes []models.Recipe
	err := query.Preload("Author").Preload("Tags").
		Preload("RecipeIngredients.Ingredient").
		Find(&recipes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch recipes: %w", err)
	}

	responses, err := buildRecipeResponses(s.db, recipes, viewerID)
	if err != nil {
		return nil, 0, fmt.Errorf("database error: %w", err)
	}
	return responses, total, nil
}

func createRecipeIngredients(tx *gorm.DB, recipeID uint, items []IngredientAmountRequest) error {
	rows := make([]models.RecipeIngredient, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
	}

	if err := tx.Create(&rows).Error; err != nil {
		if isUniqueViolation(err) {
			return newValidationError("ingredients", "duplicate ingredient for recipe")
		}
		return fmt.Errorf("failed to create recipe ingredients: %w", err)
	}
	return nil
}
