// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/recipebox/recipebox-backend/internal/models"
	"github.com/recipebox/recipebox-backend/internal/utils"
)

// CatalogService serves the read-mostly tag and ingredient reference data.
// Creation is admin curation, gated before this service runs.
type CatalogService struct {
	db *gorm.DB
}

type CreateTagRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Color string `json:"color" validate:"omitempty,tag_color"`
	Slug  string `json:"slug" validate:"required,tag_slug"`
}

type CreateIngredientRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" validate:"required,max=200"`
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListTags() ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Order("id").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tags: %w", err)
	}
	return tags, nil
}

func (s *CatalogService) GetTag(id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &tag, nil
}

func (s *CatalogService) CreateTag(req *CreateTagRequest) (*models.Tag, error) {
	if err := utils.ValidateStruct(req); err != nil {
		verr := &ValidationError{}
		for _, fe := range utils.GetValidationErrors(err) {
			verr.Fields = append(verr.Fields, FieldError{Field: fe.Field, Message: fe.Message})
		}
		return nil, verr
	}

	tag := &models.Tag{
		Name:  req.Name,
		Color: req.Color,
		Slug:  req.Slug,
	}
	if tag.Color == "" {
		tag.Color = "#ffffff"
	}

	if err := s.db.Create(tag).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

// ListIngredients returns ingredients whose name contains the given
// fragment, case-insensitively. No pagination: the catalog is small and
// clients autocomplete against it.
func (s *CatalogService) ListIngredients(name string) ([]models.Ingredient, error) {
	query := s.db.Order("name, measurement_unit")
	if name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var ingredients []models.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch ingredients: %w", err)
	}
	return ingredients, nil
}

func (s *CatalogService) GetIngredient(id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &ingredient, nil
}

func (s *CatalogService) CreateIngredient(req *CreateIngredientRequest) (*models.Ingredient, error) {
	if err := utils.ValidateStruct(req); err != nil {
		verr := &ValidationError{}
		for _, fe := range utils.GetValidationErrors(err) {
			verr.Fields = append(verr.Fields, FieldError{Field: fe.Field, Message: fe.Message})
		}
		return nil, verr
	}

	ingredient := &models.Ingredient{
		Name:            req.Name,
		MeasurementUnit: req.MeasurementUnit,
	}

	if err := s.db.Create(ingredient).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}
	return ingredient, nil
}
