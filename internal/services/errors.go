// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Sentinel errors handlers translate into HTTP responses.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrAlreadyExists    = errors.New("resource already exists")
	ErrNotMember        = errors.New("membership record not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrSelfFollow       = errors.New("self subscription is not allowed")
	ErrUnauthenticated  = errors.New("authentication required")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports malformed input discovered before any write.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// isUniqueViolation reports whether err came from a store-level unique
// constraint. The constraint is the source of truth for "already exists";
// services never pre-check and insert.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	// SQLite used by the test suite reports unique violations as plain text.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
