// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/recipebox/recipebox-backend/internal/models"
	"github.com/recipebox/recipebox-backend/internal/utils"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetUser(userID uint, viewerID *uint) (*UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	isSubscribed, err := s.isSubscribed(viewerID, user.ID)
	if err != nil {
		return nil, err
	}

	response := newUserResponse(&user, isSubscribed)
	return &response, nil
}

func (s *UserService) ListUsers(params utils.PaginationParams, viewerID *uint) ([]UserResponse, int64, error) {
	query := s.db.Model(&models.User{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	if err := utils.ApplyPagination(query.Order("id"), params).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	subscribed := make(map[uint]bool)
	if viewerID != nil && len(users) > 0 {
		userIDs := make([]uint, 0, len(users))
		for _, user := range users {
			userIDs = append(userIDs, user.ID)
		}
		var followedIDs []uint
		if err := s.db.Model(&models.Follow{}).
			Where("user_id = ? AND author_id IN ?", *viewerID, userIDs).
			Pluck("author_id", &followedIDs).Error; err != nil {
			return nil, 0, fmt.Errorf("database error: %w", err)
		}
		for _, id := range followedIDs {
			subscribed[id] = true
		}
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, newUserResponse(&users[i], subscribed[users[i].ID]))
	}

	return responses, total, nil
}

func (s *UserService) isSubscribed(viewerID *uint, authorID uint) (bool, error) {
	if viewerID == nil {
		return false, nil
	}
	var count int64
	if err := s.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", *viewerID, authorID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}
