// internal/models/catalog.go
package models

// Tag is admin-curated reference data used to classify recipes.
type Tag struct {
	BaseModel
	Name  string `json:"name" gorm:"size:200;not null;uniqueIndex;uniqueIndex:idx_tag_name_slug"`
	Color string `json:"color" gorm:"size:7;default:'#ffffff'"`
	Slug  string `json:"slug" gorm:"size:100;not null;uniqueIndex;uniqueIndex:idx_tag_name_slug"`
}

// Ingredient is immutable reference data, unique per (name, measurement_unit).
type Ingredient struct {
	BaseModel
	Name            string `json:"name" gorm:"size:200;not null;index;uniqueIndex:idx_ingredient_name_unit"`
	MeasurementUnit string `json:"measurement_unit" gorm:"size:200;not null;uniqueIndex:idx_ingredient_name_unit"`
}
