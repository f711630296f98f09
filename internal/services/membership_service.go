// internal/services/membership_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/recipebox/recipebox-backend/internal/models"
)

// MembershipService manages the favorite and shopping-cart sets. Duplicate
// detection is delegated to the store's unique constraints so concurrent
// adds of the same pair resolve to exactly one success.
type MembershipService struct {
	db *gorm.DB
}

func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{db: db}
}

func (s *MembershipService) AddFavorite(userID, recipeID uint) (*ShortRecipeResponse, error) {
	return s.add(userID, recipeID, func() error {
		return s.db.Create(&models.Favorite{UserID: userID, RecipeID: recipeID}).Error
	})
}

func (s *MembershipService) RemoveFavorite(userID, recipeID uint) error {
	return s.remove(userID, recipeID, &models.Favorite{})
}

func (s *MembershipService) AddToShoppingCart(userID, recipeID uint) (*ShortRecipeResponse, error) {
	return s.add(userID, recipeID, func() error {
		return s.db.Create(&models.ShoppingCart{UserID: userID, RecipeID: recipeID}).Error
	})
}

func (s *MembershipService) RemoveFromShoppingCart(userID, recipeID uint) error {
	return s.remove(userID, recipeID, &models.ShoppingCart{})
}

func (s *MembershipService) add(userID, recipeID uint, insert func() error) (*ShortRecipeResponse, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := insert(); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	response := newShortRecipeResponse(&recipe)
	return &response, nil
}

func (s *MembershipService) remove(userID, recipeID uint, model interface{}) error {
	var recipe models.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	result := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(model)
	if result.Error != nil {
		return fmt.Errorf("failed to delete membership: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Removing a pair that was never added is an error, not a no-op
		return ErrNotMember
	}
	return nil
}
