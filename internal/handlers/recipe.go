// internal/handlers/recipe.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/recipebox-backend/internal/i18n"
	"github.com/recipebox/recipebox-backend/internal/services"
	"github.com/recipebox/recipebox-backend/internal/utils"
)

type RecipeHandler struct {
	recipeService       *services.RecipeService
	membershipService   *services.MembershipService
	shoppingListService *services.ShoppingListService
}

func NewRecipeHandler(recipeService *services.RecipeService, membershipService *services.MembershipService, shoppingListService *services.ShoppingListService) *RecipeHandler {
	return &RecipeHandler{
		recipeService:       recipeService,
		membershipService:   membershipService,
		shoppingListService: shoppingListService,
	}
}

// GET /recipes
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	params := services.RecipeFilterParams{
		PaginationParams: utils.GetPaginationParams(c),
		TagSlugs:         c.QueryArray("tags"),
		Author:           c.Query("author"),
		IsFavorited:      c.Query("is_favorited") == "1" || c.Query("is_favorited") == "true",
		IsInShoppingCart: c.Query("is_in_shopping_cart") == "1" || c.Query("is_in_shopping_cart") == "true",
	}

	recipes, total, err := h.recipeService.ListRecipes(params, viewerID(c))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(recipes, total, params.PaginationParams))
}

// GET /recipes/:id
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipeID, ok := parseIDParam(c, "recipe")
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(recipeID, viewerID(c))
	if err != nil {
		serviceErrorResponse(c, err, "recipe")
		return
	}

	utils.SuccessResponse(c, gin.H{"recipe": recipe})
}

// POST /recipes
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	recipe, err := h.recipeService.CreateRecipe(userID, &req)
	if err != nil {
		serviceErrorResponse(c, err, "recipe")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyRecipeCreated),
		"recipe":  recipe,
	})
}

// PUT /recipes/:id, PATCH /recipes/:id
//
// Both verbs replace the recipe wholesale, associations included.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	recipeID, ok := parseIDParam(c, "recipe")
	if !ok {
		return
	}

	var req services.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(recipeID, userID, utils.GetIsStaffFromContext(c), &req)
	if err != nil {
		serviceErrorResponse(c, err, "recipe")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyRecipeUpdated),
		"recipe":  recipe,
	})
}

// DELETE /recipes/:id
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	recipeID, ok := parseIDParam(c, "recipe")
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(recipeID, userID, utils.GetIsStaffFromContext(c)); err != nil {
		serviceErrorResponse(c, err, "recipe")
		return
	}

	utils.NoContentResponse(c)
}

// POST /recipes/:id/favorite
func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	h.addMembership(c, h.membershipService.AddFavorite, i18n.KeyFavoriteExists)
}

// DELETE /recipes/:id/favorite
func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	h.removeMembership(c, h.membershipService.RemoveFavorite, i18n.KeyFavoriteNotFound)
}

// POST /recipes/:id/shopping_cart
func (h *RecipeHandler) AddToShoppingCart(c *gin.Context) {
	h.addMembership(c, h.membershipService.AddToShoppingCart, i18n.KeyShoppingCartExists)
}

// DELETE /recipes/:id/shopping_cart
func (h *RecipeHandler) RemoveFromShoppingCart(c *gin.Context) {
	h.removeMembership(c, h.membershipService.RemoveFromShoppingCart, i18n.KeyShoppingCartNotFound)
}

func (h *RecipeHandler) addMembership(c *gin.Context, add func(userID, recipeID uint) (*services.ShortRecipeResponse, error), existsKey string) {
	lang := utils.GetLangFromContext(c)

	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	recipeID, ok := parseIDParam(c, "recipe")
	if !ok {
		return
	}

	recipe, err := add(userID, recipeID)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyExists) {
			utils.BadRequestResponse(c, i18n.T(lang, existsKey), nil)
			return
		}
		serviceErrorResponse(c, err, "recipe")
		return
	}

	utils.CreatedResponse(c, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) removeMembership(c *gin.Context, remove func(userID, recipeID uint) error, missingKey string) {
	lang := utils.GetLangFromContext(c)

	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	recipeID, ok := parseIDParam(c, "recipe")
	if !ok {
		return
	}

	if err := remove(userID, recipeID); err != nil {
		if errors.Is(err, services.ErrNotMember) {
			utils.BadRequestResponse(c, i18n.T(lang, missingKey), nil)
			return
		}
		serviceErrorResponse(c, err, "recipe")
		return
	}

	utils.NoContentResponse(c)
}

// GET /recipes/download_shopping_cart
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	doc, err := h.shoppingListService.BuildShoppingList(userID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(doc.Content))
}
