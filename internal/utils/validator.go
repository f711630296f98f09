// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	usernameRegexp = regexp.MustCompile(`^[\w.@+-]+$`)
	hexColorRegexp = regexp.MustCompile(`^#[a-fA-F0-9]{6}$`)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("username", validateUsername)
	validate.RegisterValidation("tag_color", validateTagColor)
	validate.RegisterValidation("tag_slug", validateTagSlug)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateUsername(fl validator.FieldLevel) bool {
	username := fl.Field().String()

	if len(username) < 3 || len(username) > 150 {
		return false
	}

	return usernameRegexp.MatchString(username)
}

func validateTagColor(fl validator.FieldLevel) bool {
	return hexColorRegexp.MatchString(fl.Field().String())
}

func validateTagSlug(fl validator.FieldLevel) bool {
	slug := fl.Field().String()
	if slug == "" || len(slug) > 100 {
		return false
	}
	for _, r := range slug {
		if !(r == '-' || r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "username":
		return "Username must be 3-150 characters of letters, numbers and .@+-_"
	case "tag_color":
		return "Color must be a HEX value such as #49B64E"
	case "tag_slug":
		return "Slug may contain only lowercase letters, numbers, hyphens and underscores"
	default:
		return e.Field() + " is invalid"
	}
}
