// internal/handlers/handlers.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/recipebox-backend/internal/i18n"
	"github.com/recipebox/recipebox-backend/internal/services"
	"github.com/recipebox/recipebox-backend/internal/utils"
)

// serviceErrorResponse maps the common service errors onto HTTP responses.
// Handlers translate membership-specific errors themselves before falling
// back to this.
func serviceErrorResponse(c *gin.Context, err error, resource string) {
	lang := utils.GetLangFromContext(c)

	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		fields := make([]utils.ValidationError, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			fields = append(fields, utils.ValidationError{Field: f.Field, Message: f.Message})
		}
		utils.ValidationErrorResponse(c, fields)
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.Is(err, services.ErrAlreadyExists):
		utils.BadRequestResponse(c, i18n.T(lang, resource+".exists"), nil)
	case errors.Is(err, services.ErrPermissionDenied):
		utils.ForbiddenResponse(c, "")
	case errors.Is(err, services.ErrUnauthenticated):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
	default:
		utils.InternalErrorResponse(c, "")
	}
}

// parseIDParam reads the ":id" path parameter as a positive integer.
// An unparseable id behaves like a missing resource.
func parseIDParam(c *gin.Context, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.NotFoundResponse(c, resource)
		return 0, false
	}
	return uint(id), true
}
