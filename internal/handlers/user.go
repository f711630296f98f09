// internal/handlers/user.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/recipebox-backend/internal/i18n"
	"github.com/recipebox/recipebox-backend/internal/services"
	"github.com/recipebox/recipebox-backend/internal/utils"
)

type UserHandler struct {
	userService   *services.UserService
	followService *services.FollowService
}

func NewUserHandler(userService *services.UserService, followService *services.FollowService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		followService: followService,
	}
}

// viewerID returns the authenticated user id, if any.
func viewerID(c *gin.Context) *uint {
	if id, ok := utils.GetUserIDFromContext(c); ok {
		return &id
	}
	return nil
}

// GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.ListUsers(params, viewerID(c))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(users, total, params))
}

// GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "user")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(userID, viewerID(c))
	if err != nil {
		serviceErrorResponse(c, err, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}

// GET /users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	user, err := h.userService.GetUser(userID, &userID)
	if err != nil {
		serviceErrorResponse(c, err, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}

// POST /users/:id/subscribe
func (h *UserHandler) Subscribe(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	authorID, ok := parseIDParam(c, "user")
	if !ok {
		return
	}

	subscription, err := h.followService.Subscribe(userID, authorID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfFollow):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFollowSelf), nil)
		case errors.Is(err, services.ErrAlreadyExists):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFollowExists), nil)
		default:
			serviceErrorResponse(c, err, "user")
		}
		return
	}

	utils.CreatedResponse(c, gin.H{"subscription": subscription})
}

// DELETE /users/:id/subscribe
func (h *UserHandler) Unsubscribe(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	authorID, ok := parseIDParam(c, "user")
	if !ok {
		return
	}

	if err := h.followService.Unsubscribe(userID, authorID); err != nil {
		if errors.Is(err, services.ErrNotMember) {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFollowNotFound), nil)
			return
		}
		serviceErrorResponse(c, err, "user")
		return
	}

	utils.NoContentResponse(c)
}

// GET /users/subscriptions
func (h *UserHandler) Subscriptions(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	recipesLimit, _ := strconv.Atoi(c.DefaultQuery("recipes_limit", "0"))

	subscriptions, total, err := h.followService.Subscriptions(userID, params, recipesLimit)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(subscriptions, total, params))
}
