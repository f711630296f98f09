// internal/services/follow_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/recipebox/recipebox-backend/internal/models"
	"github.com/recipebox/recipebox-backend/internal/utils"
)

// FollowService manages directed subscriptions between users.
type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

func (s *FollowService) Subscribe(userID, authorID uint) (*SubscriptionResponse, error) {
	if userID == authorID {
		return nil, ErrSelfFollow
	}

	var author models.User
	if err := s.db.First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Create(&models.Follow{UserID: userID, AuthorID: authorID}).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	return s.buildSubscriptionResponse(&author, 0)
}

func (s *FollowService) Unsubscribe(userID, authorID uint) error {
	var author models.User
	if err := s.db.First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	result := s.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotMember
	}
	return nil
}

// Subscriptions lists the authors the user follows, newest subscription
// first, each with their recipes (optionally trimmed by recipesLimit) and
// total recipe count.
func (s *FollowService) Subscriptions(userID uint, params utils.PaginationParams, recipesLimit int) ([]SubscriptionResponse, int64, error) {
	followedIDs := s.db.Model(&models.Follow{}).
		Select("author_id").
		Where("user_id = ?", userID)

	query := s.db.Model(&models.User{}).Where("id IN (?)", followedIDs)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	var authors []models.User
	err := utils.ApplyPagination(query.Order("id"), params).Find(&authors).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch subscriptions: %w", err)
	}

	responses := make([]SubscriptionResponse, 0, len(authors))
	for i := range authors {
		response, err := s.buildSubscriptionResponse(&authors[i], recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, *response)
	}

	return responses, total, nil
}

func (s *FollowService) buildSubscriptionResponse(author *models.User, recipesLimit int) (*SubscriptionResponse, error) {
	var recipesCount int64
	if err := s.db.Model(&models.Recipe{}).
		Where("author_id = ?", author.ID).
		Count(&recipesCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count recipes: %w", err)
	}

	recipesQuery := s.db.Where("author_id = ?", author.ID).Order("created_at DESC")
	if recipesLimit > 0 {
		recipesQuery = recipesQuery.Limit(recipesLimit)
	}

	var recipes []models.Recipe
	if err := recipesQuery.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recipes: %w", err)
	}

	shortRecipes := make([]ShortRecipeResponse, 0, len(recipes))
	for i := range recipes {
		shortRecipes = append(shortRecipes, newShortRecipeResponse(&recipes[i]))
	}

	return &SubscriptionResponse{
		UserResponse: newUserResponse(author, true),
		Recipes:      shortRecipes,
		RecipesCount: recipesCount,
	}, nil
}
