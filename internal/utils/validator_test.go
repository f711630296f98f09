// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type usernameProbe struct {
	Username string `validate:"required,username"`
}

type tagProbe struct {
	Color string `validate:"omitempty,tag_color"`
	Slug  string `validate:"required,tag_slug"`
}

func TestUsernameValidation(t *testing.T) {
	valid := []string{"alice", "alice.bob", "user@host", "a_b-c+d", "abc"}
	for _, username := range valid {
		err := ValidateStruct(&usernameProbe{Username: username})
		assert.NoError(t, err, "username %q", username)
	}

	invalid := []string{"ab", "has spaces", "bad!char", "emoji😀"}
	for _, username := range invalid {
		err := ValidateStruct(&usernameProbe{Username: username})
		assert.Error(t, err, "username %q", username)
	}
}

func TestTagColorValidation(t *testing.T) {
	assert.NoError(t, ValidateStruct(&tagProbe{Color: "#49B64E", Slug: "breakfast"}))
	assert.NoError(t, ValidateStruct(&tagProbe{Color: "", Slug: "breakfast"}))
	assert.Error(t, ValidateStruct(&tagProbe{Color: "49B64E", Slug: "breakfast"}))
	assert.Error(t, ValidateStruct(&tagProbe{Color: "#49B64", Slug: "breakfast"}))
	assert.Error(t, ValidateStruct(&tagProbe{Color: "#49B64EFF", Slug: "breakfast"}))
}

func TestTagSlugValidation(t *testing.T) {
	valid := []string{"breakfast", "second-breakfast", "tag_1"}
	for _, slug := range valid {
		assert.NoError(t, ValidateStruct(&tagProbe{Slug: slug}), "slug %q", slug)
	}

	invalid := []string{"Breakfast", "has space", "tag/1", "café"}
	for _, slug := range invalid {
		assert.Error(t, ValidateStruct(&tagProbe{Slug: slug}), "slug %q", slug)
	}
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(&usernameProbe{Username: ""})
	errors := GetValidationErrors(err)

	assert.Len(t, errors, 1)
	assert.Equal(t, "username", errors[0].Field)
	assert.Equal(t, "required", errors[0].Tag)
}
