// internal/handlers/catalog.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/recipebox/recipebox-backend/internal/i18n"
	"github.com/recipebox/recipebox-backend/internal/services"
	"github.com/recipebox/recipebox-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// GET /tags
func (h *CatalogHandler) ListTags(c *gin.Context) {
	tags, err := h.catalogService.ListTags()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"tags": tags})
}

// GET /tags/:id
func (h *CatalogHandler) GetTag(c *gin.Context) {
	tagID, ok := parseIDParam(c, "tag")
	if !ok {
		return
	}

	tag, err := h.catalogService.GetTag(tagID)
	if err != nil {
		serviceErrorResponse(c, err, "tag")
		return
	}

	utils.SuccessResponse(c, gin.H{"tag": tag})
}

// POST /tags (admin)
func (h *CatalogHandler) CreateTag(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	tag, err := h.catalogService.CreateTag(&req)
	if err != nil {
		serviceErrorResponse(c, err, "tag")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTagCreated),
		"tag":     tag,
	})
}

// GET /ingredients
func (h *CatalogHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.catalogService.ListIngredients(c.Query("name"))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"ingredients": ingredients})
}

// GET /ingredients/:id
func (h *CatalogHandler) GetIngredient(c *gin.Context) {
	ingredientID, ok := parseIDParam(c, "ingredient")
	if !ok {
		return
	}

	ingredient, err := h.catalogService.GetIngredient(ingredientID)
	if err != nil {
		serviceErrorResponse(c, err, "ingredient")
		return
	}

	utils.SuccessResponse(c, gin.H{"ingredient": ingredient})
}

// POST /ingredients (admin)
func (h *CatalogHandler) CreateIngredient(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	ingredient, err := h.catalogService.CreateIngredient(&req)
	if err != nil {
		serviceErrorResponse(c, err, "ingredient")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyIngredientCreated),
		"ingredient": ingredient,
	})
}
